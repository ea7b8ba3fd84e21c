package graph

import (
	"log/slog"

	billy "github.com/go-git/go-billy/v5"
)

// AutoChildrenFromSubpages expands a nav entry from the target node's own
// nav-flagged subpage blocks.
const AutoChildrenFromSubpages = "from_subpages"

// NavEntry is one declarative navigation config entry.
type NavEntry struct {
	Ref          string `yaml:"ref" json:"ref"`
	Label        string `yaml:"label,omitempty" json:"label,omitempty"`
	AutoChildren string `yaml:"auto_children,omitempty" json:"auto_children,omitempty"`
}

// NavConfig is the external navigation configuration (nav.yaml).
type NavConfig struct {
	Items []NavEntry `yaml:"items" json:"items"`
}

// NavItem is one rendered link in the navigation tree.
type NavItem struct {
	Label    string    `json:"label"`
	Href     string    `json:"href"`
	Children []NavItem `json:"children"`
}

// NavPayload is the response shape of the nav endpoint.
type NavPayload struct {
	Items []NavItem `json:"items"`
}

/// GraphOps composes the query surface over one immutable graph: nav tree
// construction, page assembly, and collection resolution.
type GraphOps struct {
	graph       *ContentGraph
	nav         NavConfig
	collections *CollectionResolver
}

// NewGraphOps wires the query surface. content is the chroot-bounded
// content root for media collections; nil disables the media_folder
// source.
func NewGraphOps(g *ContentGraph, nav NavConfig, content billy.Filesystem) *GraphOps {
	return &GraphOps{
		graph:       g,
		nav:         nav,
		collections: NewCollectionResolver(g, content),
	}
}

func (o *GraphOps) Graph() *ContentGraph { return o.graph }

// ResolveRef maps a nav config ref to a node path. The self tokens "." and
// "./" resolve to the graph's root content path; anything else is a
// literal path that must exist. Failed resolution reports false and the
// caller drops the entry.
func (o *GraphOps) ResolveRef(ref string) (string, bool) {
	p := ref
	if ref == "." || ref == "./" {
		p = o.graph.RootContentPath()
	}
	if o.graph.lookup(p) == nil {
		slog.Debug("nav ref did not resolve", "ref", ref, "path", p)
		return "", false
	}
	return p, true
}

// HrefForPath renders the public href for a node path; the root content
// path maps to "/".
func (o *GraphOps) HrefForPath(p string) string {
	if p == o.graph.RootContentPath() {
		return "/"
	}
	return "/" + p
}

// GetNav builds the navigation payload from the nav config. Entries whose
// ref does not resolve are dropped silently.
func (o *GraphOps) GetNav() NavPayload {
	items := []NavItem{}
	for _, entry := range o.nav.Items {
		if item, ok := o.navItemFromEntry(entry); ok {
			items = append(items, item)
		}
	}
	return NavPayload{Items: items}
}

func (o *GraphOps) navItemFromEntry(entry NavEntry) (NavItem, bool) {
	if entry.Ref == "" {
		return NavItem{}, false
	}
	p, ok := o.ResolveRef(entry.Ref)
	if !ok {
		return NavItem{}, false
	}
	node := o.graph.lookup(p)
	if node == nil {
		return NavItem{}, false
	}

	children := []NavItem{}
	if entry.AutoChildren == AutoChildrenFromSubpages {
		children = o.buildNavTree(node, map[string]struct{}{})
	}

	return NavItem{
		Label:    effectiveLabel(entry.Label, node),
		Href:     o.HrefForPath(node.Meta.Path),
		Children: children,
	}, true
}

// buildNavTree collects the node's nav-flagged subpage references in block
// declaration order and recurses into each target. The visited set spans
// one top-level expansion: revisiting a path returns an empty child list,
// so authored reference cycles terminate instead of looping.
func (o *GraphOps) buildNavTree(node *ContentNode, visited map[string]struct{}) []NavItem {
	if _, seen := visited[node.Meta.Path]; seen {
		return []NavItem{}
	}
	visited[node.Meta.Path] = struct{}{}

	children := []NavItem{}
	for _, sp := range navSubpages(node.Content) {
		if sp.Ref == "" {
			continue
		}
		target := o.graph.lookup(sp.Ref)
		if target == nil {
			continue
		}
		children = append(children, NavItem{
			Label:    effectiveLabel(sp.Label, target),
			Href:     o.HrefForPath(target.Meta.Path),
			Children: o.buildNavTree(target, visited),
		})
	}
	return children
}

// navSubpages walks a block list depth-first, descending into sections,
// and returns the subpage blocks flagged for nav. Other block types are
// not navigable and are skipped.
func navSubpages(blocks []Block) []*SubpageBlock {
	var out []*SubpageBlock
	for _, b := range blocks {
		switch bb := b.(type) {
		case *SubpageBlock:
			if bb.Nav {
				out = append(out, bb)
			}
		case *SectionBlock:
			out = append(out, navSubpages(bb.Blocks)...)
		}
	}
	return out
}

// effectiveLabel picks the first non-empty of: explicit label, display
// name, node title, slug, path.
func effectiveLabel(label string, node *ContentNode) string {
	for _, candidate := range []string{label, node.Meta.DisplayName, node.Title, node.Meta.Slug} {
		if candidate != "" {
			return candidate
		}
	}
	return node.Meta.Path
}

// GetCollection resolves a query-driven collection request.
func (o *GraphOps) GetCollection(q CollectionQuery) *CollectionPayload {
	if q.CurrentNodePath == "" {
		q.CurrentNodePath = o.graph.RootContentPath()
	}
	return o.collections.Resolve(q)
}

// FindItemPage locates the page number of a collection item by its
// slug-normalized identifier.
func (o *GraphOps) FindItemPage(q CollectionQuery, item string) (int, bool) {
	if q.CurrentNodePath == "" {
		q.CurrentNodePath = o.graph.RootContentPath()
	}
	return o.collections.FindItemPage(q, item)
}
