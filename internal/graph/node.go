package graph

// NodeMeta carries the addressing and presentation metadata for a node.
// Path is the unique hierarchical identifier ("server", "artists/zol", ...).
type NodeMeta struct {
	Path        string `json:"path"`
	ParentPath  string `json:"parent_path,omitempty"`
	Layout      string `json:"layout"`
	Slug        string `json:"slug,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	// Theme overrides the inherited theme for this subtree. Empty means
	// inherit from the nearest ancestor (see ContentGraph.ResolveTheme).
	Theme   string   `json:"theme,omitempty"`
	Effects []string `json:"effects"`
	// CollectionOrder is an explicit ordering of child slugs, consulted by
	// the collection resolver when no explicit sort is requested.
	CollectionOrder []string       `json:"collection_order,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// NodePreview is the small card projection rendered for collection items.
type NodePreview struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	Badge    string `json:"badge,omitempty"`
	Blurb    string `json:"blurb,omitempty"`
}

// ContentNode is one addressable content unit in the graph.
type ContentNode struct {
	Meta       NodeMeta
	Title      string
	Tagline    string
	Background string
	Preview    *NodePreview
	Content    []Block
}
