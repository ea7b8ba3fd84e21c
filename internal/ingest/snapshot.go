package ingest

import (
	"fmt"
	"os"
	"sort"

	"github.com/ohler55/ojg/oj"

	"github.com/awakefm/artist-node/api"
	"github.com/awakefm/artist-node/internal/graph"
)

// LoadSnapshot reads and decodes a serialized graph snapshot from disk.
func LoadSnapshot(path string) (*graph.ContentGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses a snapshot document into a ContentGraph. A corrupt
// top-level document is the only fatal condition; individual node records
// degrade per the authoring-error policy.
func DecodeSnapshot(data []byte) (*graph.ContentGraph, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("snapshot root is not an object")
	}
	rootPath, _ := root["root_content_path"].(string)
	if rootPath == "" {
		return nil, fmt.Errorf("snapshot missing root_content_path")
	}
	rootTheme, _ := root["root_theme"].(string)

	g := graph.NewContentGraph(rootPath, rootTheme)

	nodes, _ := root["nodes"].(map[string]any)
	// Register in sorted path order: JSON objects carry no order and the
	// parent index must come out deterministic when the snapshot did not
	// persist its own.
	paths := make([]string, 0, len(nodes))
	for p := range nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		record, ok := nodes[p].(map[string]any)
		if !ok {
			continue
		}
		g.RegisterNode(graph.NodeFromMap(p, record))
	}

	if rawIndex, ok := root["children_by_parent"].(map[string]any); ok {
		index := make(map[string][]string, len(rawIndex))
		for parent, children := range rawIndex {
			list, _ := children.([]any)
			out := make([]string, 0, len(list))
			for _, c := range list {
				if s, ok := c.(string); ok {
					out = append(out, s)
				}
			}
			index[parent] = out
		}
		g.SetChildrenIndex(index)
	}

	if artists, ok := root["artists"].([]any); ok {
		for _, a := range artists {
			if s, ok := a.(string); ok {
				g.AddArtist(s)
			}
		}
	}

	return g, nil
}

// EncodeSnapshot serializes a graph into the snapshot document consumed by
// DecodeSnapshot.
func EncodeSnapshot(g *graph.ContentGraph) []byte {
	// Parents are keyed by the children's parent pointers, not by node
	// paths: a parent directory without its own index record still owns an
	// index entry.
	index := make(map[string][]string)
	for _, p := range g.Paths() {
		node, err := g.GetNode(p)
		if err != nil || node.Meta.ParentPath == "" {
			continue
		}
		parent := node.Meta.ParentPath
		if _, done := index[parent]; done {
			continue
		}
		if children, ok := g.Children(parent); ok {
			index[parent] = children
		}
	}

	snap := api.Snapshot{
		RootContentPath:  g.RootContentPath(),
		RootTheme:        g.RootTheme(),
		Nodes:            make(map[string]api.NodeRecord),
		ChildrenByParent: index,
		Artists:          g.Artists(),
	}
	for _, p := range g.Paths() {
		node, err := g.GetNode(p)
		if err != nil {
			continue
		}
		snap.Nodes[p] = nodeRecord(node)
	}
	return []byte(oj.JSON(&snap, 2))
}

func nodeRecord(n *graph.ContentNode) api.NodeRecord {
	effects := n.Meta.Effects
	if effects == nil {
		effects = []string{}
	}
	record := api.NodeRecord{
		Meta: api.MetaRecord{
			Path:            n.Meta.Path,
			ParentPath:      n.Meta.ParentPath,
			Layout:          n.Meta.Layout,
			Slug:            n.Meta.Slug,
			DisplayName:     n.Meta.DisplayName,
			Theme:           n.Meta.Theme,
			Effects:         effects,
			CollectionOrder: n.Meta.CollectionOrder,
			Extra:           n.Meta.Extra,
		},
		Title:      n.Title,
		Tagline:    n.Tagline,
		Background: n.Background,
		Content:    make([]any, 0, len(n.Content)),
	}
	if n.Preview != nil {
		record.Preview = &api.PreviewRecord{
			Title:    n.Preview.Title,
			Subtitle: n.Preview.Subtitle,
			Image:    n.Preview.Image,
			Badge:    n.Preview.Badge,
			Blurb:    n.Preview.Blurb,
		}
	}
	for _, b := range n.Content {
		record.Content = append(record.Content, b)
	}
	return record
}
