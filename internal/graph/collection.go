package graph

import (
	"math/rand/v2"
	"path"
	"regexp"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"
)

// Collection source types. Roster, tag, and query are reserved extension
// points; they currently resolve to an empty candidate set.
const (
	SourceFolder      = "folder"
	SourceMediaFolder = "media_folder"
	SourceRoster      = "roster"
	SourceTag         = "tag"
	SourceQuery       = "query"
)

const (
	defaultPageSize     = 24
	defaultMediaPattern = "*.mp3"
)

// Top-level content directories. A media_folder path whose first segment
// is one of these is absolute from the content root; anything else is
// relative to the node currently rendering the collection.
var contentRootDirs = map[string]struct{}{
	"server":  {},
	"artists": {},
	"pages":   {},
}

// CollectionQuery carries the parameters of one collection resolution.
// Zero values mean "not set" and are coerced to the documented defaults;
// malformed caller input never produces an error.
type CollectionQuery struct {
	Source   string
	Path     string
	Pattern  string
	Page     int
	PageSize int
	Sort     string
	Limit    int
	Card     string
	// LayoutMode is an optional layout hint (grid|list|carousel) merged
	// over the built-in defaults for that mode.
	LayoutMode string
	// CurrentNodePath anchors relative media_folder paths.
	CurrentNodePath string
}

// PagingInfo is the paging metadata attached to every collection payload.
type PagingInfo struct {
	Enabled    bool   `json:"enabled"`
	Mode       string `json:"mode"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	HasMore    bool   `json:"has_more"`
}

// CollectionPayload is the response shape of the collection endpoint.
type CollectionPayload struct {
	Type   string           `json:"type"`
	Source string           `json:"source"`
	Path   string           `json:"path"`
	Card   string           `json:"card,omitempty"`
	Sort   string           `json:"sort,omitempty"`
	Layout CollectionLayout `json:"layout"`
	Items  []any            `json:"items"`
	Paging PagingInfo       `json:"paging"`
}

// HydratedCollection is a collection block expanded in place inside a page
// payload: the authored block fields plus merged layout, page-1 items, and
// paging metadata.
type HydratedCollection struct {
	Type        string               `json:"type"`
	Source      string               `json:"source"`
	Path        string               `json:"path,omitempty"`
	Pattern     string               `json:"pattern,omitempty"`
	Card        string               `json:"card,omitempty"`
	Media       *CollectionMedia     `json:"media,omitempty"`
	Thumbnail   *CollectionThumbnail `json:"thumbnail,omitempty"`
	Sort        string               `json:"sort,omitempty"`
	SortOptions []SortOption         `json:"sort_options,omitempty"`
	Limit       int                  `json:"limit,omitempty"`
	Filters     map[string]any       `json:"filters,omitempty"`
	EmptyState  map[string]string    `json:"empty_state,omitempty"`
	Layout      CollectionLayout     `json:"layout"`
	Items       []any                `json:"items"`
	Paging      PagingInfo           `json:"paging"`
}

// NodeItem is the lightweight projection rendered for folder candidates.
type NodeItem struct {
	Path        string       `json:"path"`
	Layout      string       `json:"layout,omitempty"`
	Slug        string       `json:"slug,omitempty"`
	DisplayName string       `json:"display_name,omitempty"`
	Preview     *NodePreview `json:"preview"`
}

// MediaItem is the projection rendered for media_folder candidates.
type MediaItem struct {
	Type      string `json:"type"`
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Extension string `json:"extension"`
}

// CollectionResolver turns a source + path into a sorted, limited,
// paginated item payload. Kept separate from ContentGraph so new sources
// (roster, tags, queries) slot in without bloating the graph type.
type CollectionResolver struct {
	graph *ContentGraph
	// content is the chroot-bounded content root used by the media_folder
	// source. Nil means no filesystem: media collections resolve empty.
	content billy.Filesystem
}

func NewCollectionResolver(g *ContentGraph, content billy.Filesystem) *CollectionResolver {
	return &CollectionResolver{graph: g, content: content}
}

// Resolve runs the full pipeline for a query-driven collection request:
// candidates, sort, limit, paginate, shape.
func (r *CollectionResolver) Resolve(q CollectionQuery) *CollectionPayload {
	source := q.Source
	if source == "" {
		source = SourceFolder
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	switch {
	case pageSize == 0:
		pageSize = defaultPageSize
	case pageSize < 1:
		pageSize = 1
	}

	var hint *CollectionLayout
	if q.LayoutMode != "" {
		hint = &CollectionLayout{Mode: q.LayoutMode}
	}
	mode := q.LayoutMode
	if mode == "" {
		mode = LayoutGrid
	}
	layout := MergeLayout(DefaultLayout(mode), hint)

	candidates := r.candidates(source, q.Path, q.Pattern, q.CurrentNodePath)
	candidates = r.applySort(candidates, q.Sort, q.Path)
	if q.Limit > 0 && q.Limit < len(candidates) {
		candidates = candidates[:q.Limit]
	}

	total := len(candidates)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	end := start + pageSize

	items := make([]any, 0, pageSize)
	for _, c := range sliceRange(candidates, start, end) {
		items = append(items, r.itemPayload(c, source))
	}

	return &CollectionPayload{
		Type:   BlockCollection,
		Source: source,
		Path:   q.Path,
		Card:   q.Card,
		Sort:   q.Sort,
		Layout: layout,
		Items:  items,
		Paging: PagingInfo{
			Enabled:    true,
			Mode:       "load_more",
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
			HasMore:    end < total,
		},
	}
}

// HydrateBlock expands an authored collection block embedded in a page.
// Same pipeline as Resolve, but parameters come from the block and only
// page 1 is rendered; deep-linking into page N of an embedded collection
// goes through the collection endpoint instead.
func (r *CollectionResolver) HydrateBlock(b *CollectionBlock, currentNodePath string) *HydratedCollection {
	mode := LayoutGrid
	if b.Layout != nil && b.Layout.Mode != "" {
		mode = b.Layout.Mode
	}
	layout := MergeLayout(DefaultLayout(mode), b.Layout)

	candidates := r.candidates(b.Source, b.Path, b.Pattern, currentNodePath)
	candidates = r.applySort(candidates, b.Sort, b.Path)
	if b.Limit > 0 && b.Limit < len(candidates) {
		candidates = candidates[:b.Limit]
	}
	total := len(candidates)

	pagingEnabled := false
	pagingMode := "load_more"
	pageSize := 0
	if b.Paging != nil {
		pagingEnabled = b.Paging.Enabled
		if b.Paging.Mode != "" {
			pagingMode = b.Paging.Mode
		}
		pageSize = b.Paging.PageSize
	}
	if pagingEnabled {
		if pageSize <= 0 {
			pageSize = defaultPageSize
		}
	} else {
		// Paging disabled: the initial payload carries everything.
		pageSize = total
	}

	end := pageSize
	items := make([]any, 0, len(candidates))
	for _, c := range sliceRange(candidates, 0, end) {
		items = append(items, r.itemPayload(c, b.Source))
	}

	totalPages := 1
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &HydratedCollection{
		Type:        BlockCollection,
		Source:      b.Source,
		Path:        b.Path,
		Pattern:     b.Pattern,
		Card:        b.Card,
		Media:       b.Media,
		Thumbnail:   b.Thumbnail,
		Sort:        b.Sort,
		SortOptions: b.SortOptions,
		Limit:       b.Limit,
		Filters:     b.Filters,
		EmptyState:  b.EmptyState,
		Layout:      layout,
		Items:       items,
		Paging: PagingInfo{
			Enabled:    pagingEnabled,
			Mode:       pagingMode,
			Page:       1,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
			HasMore:    pageSize > 0 && end < total,
		},
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug reduces an item identifier (typically a filename) to a
// URL-safe slug: extension stripped, non-alphanumeric runs collapsed to a
// single dash, leading/trailing dashes trimmed, lowercased.
func NormalizeSlug(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	slug := slugRe.ReplaceAllString(strings.ToLower(base), "-")
	return strings.Trim(slug, "-")
}

// FindItemPage resolves the 1-based page an item lands on under the given
// query, matching candidates by normalized filename slug. The second
// return is false when no candidate matches.
func (r *CollectionResolver) FindItemPage(q CollectionQuery, item string) (int, bool) {
	source := q.Source
	if source == "" {
		source = SourceFolder
	}
	pageSize := q.PageSize
	switch {
	case pageSize == 0:
		pageSize = defaultPageSize
	case pageSize < 1:
		pageSize = 1
	}

	candidates := r.candidates(source, q.Path, q.Pattern, q.CurrentNodePath)
	candidates = r.applySort(candidates, q.Sort, q.Path)
	if q.Limit > 0 && q.Limit < len(candidates) {
		candidates = candidates[:q.Limit]
	}

	want := NormalizeSlug(item)
	if want == "" {
		return 0, false
	}
	for i, c := range candidates {
		if NormalizeSlug(path.Base(c)) == want {
			return i/pageSize + 1, true
		}
	}
	return 0, false
}

// candidates resolves the raw candidate identifiers for a source. Unknown
// sources, missing paths, and missing directories all yield an empty set.
func (r *CollectionResolver) candidates(source, p, pattern, currentNodePath string) []string {
	switch source {
	case SourceFolder:
		return r.folderCandidates(p)
	case SourceMediaFolder:
		return r.mediaFolderCandidates(p, pattern, currentNodePath)
	}
	return nil
}

// folderCandidates returns the direct children of a graph path. The parent
// index is authoritative when present; otherwise a prefix scan recovers
// syntactic direct children of parents that were never registered.
func (r *CollectionResolver) folderCandidates(p string) []string {
	if p == "" {
		return nil
	}
	base := strings.Trim(p, "/")

	if children, ok := r.graph.Children(base); ok {
		return children
	}

	prefix := base + "/"
	var out []string
	for _, candidate := range r.graph.Paths() {
		rest, ok := strings.CutPrefix(candidate, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		out = append(out, candidate)
	}
	sort.Strings(out)
	return out
}

// mediaFolderCandidates enumerates files directly under a content
// directory matching the glob pattern. Results are paths relative to the
// content root; directories are never candidates.
func (r *CollectionResolver) mediaFolderCandidates(p, pattern, currentNodePath string) []string {
	if p == "" || r.content == nil {
		return nil
	}
	if pattern == "" {
		pattern = defaultMediaPattern
	}

	first, _, _ := strings.Cut(p, "/")
	dir := p
	if _, absolute := contentRootDirs[first]; !absolute && currentNodePath != "" {
		dir = path.Join(currentNodePath, p)
	}

	entries, err := r.content.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := path.Match(pattern, entry.Name()); ok {
			out = append(out, path.Join(dir, entry.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// applySort orders a candidate list. Priority: explicit sort token, then
// the parent node's collection_order, then name_asc.
func (r *CollectionResolver) applySort(candidates []string, sortToken, parentPath string) []string {
	out := make([]string, len(candidates))
	copy(out, candidates)

	switch sortToken {
	case "random":
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	case "name_asc":
		r.sortByTitle(out, false)
		return out
	case "name_desc":
		r.sortByTitle(out, true)
		return out
	}

	if parentPath != "" {
		if parent := r.graph.lookup(parentPath); parent != nil && len(parent.Meta.CollectionOrder) > 0 {
			r.sortByCollectionOrder(out, parent.Meta.CollectionOrder)
			return out
		}
	}

	r.sortByTitle(out, false)
	return out
}

func (r *CollectionResolver) sortByTitle(paths []string, desc bool) {
	keys := make(map[string]string, len(paths))
	for _, p := range paths {
		keys[p] = strings.ToLower(r.sortTitle(p))
	}
	sort.SliceStable(paths, func(i, j int) bool {
		if desc {
			return keys[paths[i]] > keys[paths[j]]
		}
		return keys[paths[i]] < keys[paths[j]]
	})
}

// sortByCollectionOrder applies the parent's explicit child ordering:
// listed slugs first in list position, unlisted candidates after them in
// alphabetical title order.
func (r *CollectionResolver) sortByCollectionOrder(paths []string, order []string) {
	position := make(map[string]int, len(order))
	for i, slug := range order {
		position[slug] = i
	}
	type key struct {
		listed int
		index  int
		title  string
	}
	keys := make(map[string]key, len(paths))
	for _, p := range paths {
		slug := p[strings.LastIndex(p, "/")+1:]
		if idx, ok := position[slug]; ok {
			keys[p] = key{listed: 0, index: idx}
		} else {
			keys[p] = key{listed: 1, title: strings.ToLower(r.sortTitle(p))}
		}
	}
	sort.SliceStable(paths, func(i, j int) bool {
		a, b := keys[paths[i]], keys[paths[j]]
		if a.listed != b.listed {
			return a.listed < b.listed
		}
		if a.index != b.index {
			return a.index < b.index
		}
		return a.title < b.title
	})
}

// sortTitle is the case-folded sort key source for a candidate: preview
// title, then node title, then the raw path. Media files have no node, so
// they key on their path (the filename stem in practice).
func (r *CollectionResolver) sortTitle(p string) string {
	node := r.graph.lookup(p)
	if node == nil {
		return p
	}
	if node.Preview != nil && node.Preview.Title != "" {
		return node.Preview.Title
	}
	if node.Title != "" {
		return node.Title
	}
	return p
}

// itemPayload shapes one candidate for the response.
func (r *CollectionResolver) itemPayload(id, source string) any {
	if source == SourceMediaFolder {
		name := path.Base(id)
		ext := path.Ext(name)
		return &MediaItem{
			Type:      "media_file",
			Filename:  name,
			Path:      id,
			Title:     strings.TrimSuffix(name, ext),
			Extension: ext,
		}
	}

	node := r.graph.lookup(id)
	if node == nil {
		return &NodeItem{Path: id}
	}
	return &NodeItem{
		Path:        node.Meta.Path,
		Layout:      node.Meta.Layout,
		Slug:        node.Meta.Slug,
		DisplayName: node.Meta.DisplayName,
		Preview:     node.Preview,
	}
}

func sliceRange(s []string, start, end int) []string {
	if start > len(s) {
		start = len(s)
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		return nil
	}
	return s[start:end]
}
