package graph

import (
	"errors"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("node not found")

// ContentGraph owns the full node set plus the derived indexes. It is built
// once (by the offline builder or the snapshot loader) and is read-only at
// serve time, so any number of requests may traverse it concurrently. The
// mutex only guards the construction phase.
type ContentGraph struct {
	mu sync.RWMutex

	rootContentPath string
	rootTheme       string

	nodes            map[string]*ContentNode
	childrenByParent map[string][]string

	// Classification indexes, populated by the builder's extra passes.
	// Only artists is computed today; the album/track maps are reserved.
	artists        []string
	albumsByArtist map[string][]string
	tracksByAlbum  map[string][]string
}

func NewContentGraph(rootContentPath, rootTheme string) *ContentGraph {
	return &ContentGraph{
		rootContentPath:  rootContentPath,
		rootTheme:        rootTheme,
		nodes:            make(map[string]*ContentNode),
		childrenByParent: make(map[string][]string),
		albumsByArtist:   make(map[string][]string),
		tracksByAlbum:    make(map[string][]string),
	}
}

func (g *ContentGraph) RootContentPath() string { return g.rootContentPath }
func (g *ContentGraph) RootTheme() string       { return g.rootTheme }

// RegisterNode inserts a node into the path map and appends it to the
// parent index when the node declares a parent. Registration order is
// preserved in the index; there is no update or delete.
func (g *ContentGraph) RegisterNode(n *ContentNode) {
	g.mu.Lock()
	defer g.mu.Unlock()

	path := n.Meta.Path
	g.nodes[path] = n
	if parent := n.Meta.ParentPath; parent != "" {
		g.childrenByParent[parent] = append(g.childrenByParent[parent], path)
	}
}

// SetChildrenIndex replaces the parent index wholesale. Used when a
// snapshot persisted its own index; order is taken as authored.
func (g *ContentGraph) SetChildrenIndex(index map[string][]string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.childrenByParent = index
}

// GetNode returns the node at an exact path. Unknown paths report
// ErrNotFound; callers treat absence as a normal outcome.
func (g *ContentGraph) GetNode(path string) (*ContentNode, error) {
	if n := g.lookup(path); n != nil {
		return n, nil
	}
	return nil, ErrNotFound
}

func (g *ContentGraph) lookup(path string) *ContentNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[path]
}

// Children returns the indexed direct children of a parent path in
// registration order, and whether the parent is present in the index.
func (g *ContentGraph) Children(parent string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	children, ok := g.childrenByParent[parent]
	if !ok {
		return nil, false
	}
	out := make([]string, len(children))
	copy(out, children)
	return out, true
}

// Paths returns every registered node path. Order is unspecified.
func (g *ContentGraph) Paths() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.nodes))
	for p := range g.nodes {
		out = append(out, p)
	}
	return out
}

func (g *ContentGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// AddArtist records a node path in the artist classification index.
func (g *ContentGraph) AddArtist(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.artists = append(g.artists, path)
}

func (g *ContentGraph) Artists() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.artists))
	copy(out, g.artists)
	return out
}

// ResolveTheme walks a node's ancestry for the nearest theme override,
// falling back to the graph's root theme. When an intermediate node was
// never registered (or carries no parent pointer), the parent is
// synthesized by truncating the last path segment. The walk follows the
// literal path string, not a verified ancestor chain, so sparse
// registration does not break inheritance.
func (g *ContentGraph) ResolveTheme(path string) string {
	current := path
	for current != "" {
		node := g.lookup(current)
		if node != nil && node.Meta.Theme != "" {
			return node.Meta.Theme
		}
		switch {
		case node != nil && node.Meta.ParentPath != "":
			current = node.Meta.ParentPath
		case strings.Contains(current, "/"):
			current = current[:strings.LastIndex(current, "/")]
		default:
			return g.rootTheme
		}
	}
	return g.rootTheme
}
