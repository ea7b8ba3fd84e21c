package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/awakefm/artist-node/internal/graph"
)

// Builder walks an authored content tree and produces a ContentGraph.
// Every directory holding an index.yaml becomes a node; _meta.yaml files
// supply folder-level metadata. The filesystem is billy so tests can run
// the builder against memfs.
type Builder struct {
	fs billy.Filesystem
}

func NewBuilder(content billy.Filesystem) *Builder {
	return &Builder{fs: content}
}

// Build walks the content root and registers every authored node.
func (b *Builder) Build() (*graph.ContentGraph, error) {
	rootMeta, err := b.loadYAML("_meta.yaml")
	if err != nil {
		return nil, err
	}
	rootContent := "server"
	if s, ok := rootMeta["root_content"].(string); ok && s != "" {
		rootContent = s
	}
	rootTheme, _ := rootMeta["theme"].(string)

	g := graph.NewContentGraph(rootContent, rootTheme)
	if err := b.walk(".", g); err != nil {
		return nil, err
	}
	classifyArtists(g)

	slog.Info("content graph built", "nodes", g.Len(), "root", rootContent)
	return g, nil
}

// walk visits directories top-down in lexical order so registration order
// (and with it the parent index) is deterministic.
func (b *Builder) walk(dir string, g *graph.ContentGraph) error {
	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read content dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	hasIndex := false
	for _, e := range entries {
		if !e.IsDir() && e.Name() == "index.yaml" {
			hasIndex = true
		}
	}
	if hasIndex {
		node, err := b.buildNode(dir, g.RootContentPath())
		if err != nil {
			return err
		}
		g.RegisterNode(node)
	}

	for _, e := range entries {
		if e.IsDir() {
			if err := b.walk(path.Join(dir, e.Name()), g); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildNode assembles one ContentNode from a directory's index.yaml and
// _meta.yaml.
func (b *Builder) buildNode(dir, rootContentPath string) (*graph.ContentNode, error) {
	rel := path.Clean(dir)
	var pathStr, parentPath string
	if rel != "." {
		pathStr = rel
		if i := strings.LastIndex(rel, "/"); i >= 0 {
			parentPath = rel[:i]
		}
	}

	indexData, err := b.loadYAML(path.Join(dir, "index.yaml"))
	if err != nil {
		return nil, err
	}
	folderMeta, err := b.loadYAML(path.Join(dir, "_meta.yaml"))
	if err != nil {
		return nil, err
	}

	layout, _ := folderMeta["layout"].(string)
	if layout == "" {
		layout = inferLayout(pathStr)
	}

	nodePath := pathStr
	if nodePath == "" {
		nodePath = rootContentPath
	}

	effects := stringList(folderMeta["effects"])
	if effects == nil {
		effects = []string{}
	}
	meta := graph.NodeMeta{
		Path:            nodePath,
		ParentPath:      parentPath,
		Layout:          layout,
		Slug:            str(folderMeta["slug"]),
		DisplayName:     str(folderMeta["display_name"]),
		Theme:           str(folderMeta["theme"]),
		Effects:         effects,
		CollectionOrder: stringList(folderMeta["collection_order"]),
	}

	var preview *graph.NodePreview
	if raw, ok := indexData["preview"].(map[string]any); ok {
		title := str(raw["title"])
		if title == "" {
			title = meta.DisplayName
		}
		preview = &graph.NodePreview{
			Title:    title,
			Subtitle: str(raw["subtitle"]),
			Image:    str(raw["image"]),
			Badge:    str(raw["badge"]),
			Blurb:    str(raw["blurb"]),
		}
	}

	var content []graph.Block
	if rawBlocks, ok := indexData["content"].([]any); ok {
		for _, rb := range rawBlocks {
			if m, ok := rb.(map[string]any); ok {
				content = append(content, normalizeBlock(graph.BlockFromMap(m)))
			}
		}
	}

	return &graph.ContentNode{
		Meta:       meta,
		Title:      str(indexData["title"]),
		Tagline:    str(indexData["tagline"]),
		Background: NormalizeMediaPath(str(indexData["background"])),
		Preview:    preview,
		Content:    content,
	}, nil
}

// loadYAML reads a YAML mapping; a missing file is an empty mapping.
func (b *Builder) loadYAML(p string) (map[string]any, error) {
	data, err := util.ReadFile(b.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return out, nil
}

// inferLayout picks a fallback layout from the path shape when the folder
// meta does not declare one.
func inferLayout(pathStr string) string {
	if pathStr == "" || pathStr == "server" {
		return "server"
	}
	parts := strings.Split(pathStr, "/")
	if len(parts) == 2 && parts[0] == "artists" {
		return "artist"
	}
	for _, p := range parts {
		switch p {
		case "albums":
			return "album"
		case "tracks":
			return "track"
		case "sets":
			return "set"
		}
	}
	return "page"
}

// NormalizeMediaPath makes authored media paths resolvable by the
// frontend: backslashes become slashes, site-root relative assets gain a
// leading slash, full URLs pass through untouched.
func NormalizeMediaPath(p string) string {
	if p == "" {
		return p
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// normalizeBlock applies media path normalization to authored blocks,
// descending into sections.
func normalizeBlock(b graph.Block) graph.Block {
	switch bb := b.(type) {
	case *graph.HeroBlock:
		bb.Background = NormalizeMediaPath(bb.Background)
	case *graph.SectionBlock:
		for _, child := range bb.Blocks {
			normalizeBlock(child)
		}
	case *graph.AudioPlayerBlock:
		bb.Artwork = NormalizeMediaPath(bb.Artwork)
	}
	return b
}

// classifyArtists runs the extra index pass over the registered nodes.
func classifyArtists(g *graph.ContentGraph) {
	paths := g.Paths()
	sort.Strings(paths)
	for _, p := range paths {
		parts := strings.Split(p, "/")
		if len(parts) == 2 && parts[0] == "artists" {
			g.AddArtist(p)
		}
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
