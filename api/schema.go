package api

// Snapshot is the serialized content graph produced by the offline builder
// and loaded once at process start. Content blocks stay in generic form
// here; the graph package decodes them, degrading unknown block types
// instead of failing the load.
type Snapshot struct {
	// RootContentPath is the path of the node served at "/".
	RootContentPath string `json:"root_content_path"`
	// RootTheme is the default theme when no ancestor overrides it.
	RootTheme string `json:"root_theme,omitempty"`
	// Nodes maps node path to its record.
	Nodes map[string]NodeRecord `json:"nodes"`
	// ChildrenByParent is the persisted parent index. Optional: when
	// absent it is rebuilt from the node records' parent paths.
	ChildrenByParent map[string][]string `json:"children_by_parent,omitempty"`
	// Artists lists the node paths classified as artist roots.
	Artists []string `json:"artists,omitempty"`
}

// NodeRecord is one serialized content node.
type NodeRecord struct {
	Meta       MetaRecord     `json:"meta"`
	Title      string         `json:"title,omitempty"`
	Tagline    string         `json:"tagline,omitempty"`
	Background string         `json:"background,omitempty"`
	Preview    *PreviewRecord `json:"preview,omitempty"`
	// Content is the ordered block tree. Each entry carries a "type" tag.
	Content []any `json:"content"`
}

// MetaRecord is the addressing and presentation metadata of a node.
type MetaRecord struct {
	Path            string         `json:"path"`
	ParentPath      string         `json:"parent_path,omitempty"`
	Layout          string         `json:"layout"`
	Slug            string         `json:"slug,omitempty"`
	DisplayName     string         `json:"display_name,omitempty"`
	Theme           string         `json:"theme,omitempty"`
	Effects         []string       `json:"effects"`
	CollectionOrder []string       `json:"collection_order,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// PreviewRecord is the card projection of a node.
type PreviewRecord struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	Badge    string `json:"badge,omitempty"`
	Blurb    string `json:"blurb,omitempty"`
}
