package graph

// PageMeta is the metadata section of a page payload. EffectiveTheme is
// computed at render time by walking the node's ancestry.
type PageMeta struct {
	Layout         string         `json:"layout"`
	Slug           string         `json:"slug,omitempty"`
	DisplayName    string         `json:"display_name,omitempty"`
	Theme          string         `json:"theme,omitempty"`
	EffectiveTheme string         `json:"effective_theme,omitempty"`
	Effects        []string       `json:"effects"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// PagePayload is the response shape of the page endpoint: the node's own
// fields with content blocks recursively hydrated.
type PagePayload struct {
	Path       string       `json:"path"`
	Meta       PageMeta     `json:"meta"`
	Title      string       `json:"title,omitempty"`
	Tagline    string       `json:"tagline,omitempty"`
	Background string       `json:"background,omitempty"`
	Preview    *NodePreview `json:"preview"`
	Content    []any        `json:"content"`
}

// hydratedSection mirrors SectionBlock with its children hydrated.
type hydratedSection struct {
	Type   string         `json:"type"`
	ID     string         `json:"id,omitempty"`
	Label  string         `json:"label,omitempty"`
	Align  map[string]any `json:"align,omitempty"`
	Blocks []any          `json:"blocks"`
}

// GetPage returns the page payload for a node path. An empty path serves
// the graph's root content node; an unknown path reports ErrNotFound.
func (o *GraphOps) GetPage(path string) (*PagePayload, error) {
	if path == "" {
		path = o.graph.RootContentPath()
	}
	node := o.graph.lookup(path)
	if node == nil {
		return nil, ErrNotFound
	}

	effects := node.Meta.Effects
	if effects == nil {
		effects = []string{}
	}

	content := make([]any, 0, len(node.Content))
	for _, b := range node.Content {
		content = append(content, o.hydrateBlock(b, path))
	}

	return &PagePayload{
		Path: node.Meta.Path,
		Meta: PageMeta{
			Layout:         node.Meta.Layout,
			Slug:           node.Meta.Slug,
			DisplayName:    node.Meta.DisplayName,
			Theme:          node.Meta.Theme,
			EffectiveTheme: o.graph.ResolveTheme(path),
			Effects:        effects,
			Extra:          node.Meta.Extra,
		},
		Title:      node.Title,
		Tagline:    node.Tagline,
		Background: node.Background,
		Preview:    node.Preview,
		Content:    content,
	}, nil
}

// hydrateBlock expands one block for page output: sections recurse into
// their children, collections resolve their items, and every other block
// passes through as authored.
func (o *GraphOps) hydrateBlock(b Block, currentNodePath string) any {
	switch bb := b.(type) {
	case *SectionBlock:
		inner := make([]any, 0, len(bb.Blocks))
		for _, child := range bb.Blocks {
			inner = append(inner, o.hydrateBlock(child, currentNodePath))
		}
		return &hydratedSection{
			Type:   bb.Type,
			ID:     bb.ID,
			Label:  bb.Label,
			Align:  bb.Align,
			Blocks: inner,
		}
	case *CollectionBlock:
		return o.collections.HydrateBlock(bb, currentNodePath)
	default:
		return b
	}
}
