package graph

import "fmt"

// Decoding from the generic map form shared by the JSON snapshot and the
// YAML authoring records. Every accessor tolerates absent or mistyped
// values; authoring mistakes degrade instead of failing the load.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asIntPtr(v any) *int {
	if n, ok := asInt(v); ok {
		return &n
	}
	return nil
}

func asBoolPtr(v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asStringSlice(v any) []string {
	raw := asSlice(v)
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(v any) map[string]string {
	raw := asMap(v)
	if raw == nil {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, e := range raw {
		if s, ok := e.(string); ok {
			out[k] = s
		}
	}
	return out
}

func stringOr(v any, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

// BlockFromMap decodes one content block from its generic map form.
// Unrecognized block types degrade to an inert markdown placeholder so a
// single bad record never fails a whole page.
func BlockFromMap(raw map[string]any) Block {
	switch asString(raw["type"]) {
	case BlockHero:
		return heroFromMap(raw)
	case BlockSection:
		return sectionFromMap(raw)
	case BlockMarkdown:
		return &MarkdownBlock{Type: BlockMarkdown, Body: asString(raw["body"])}
	case BlockSubpage:
		return subpageFromMap(raw)
	case BlockCollection:
		return collectionFromMap(raw)
	case BlockAudioPlayer:
		return audioPlayerFromMap(raw)
	}
	return &MarkdownBlock{Type: BlockMarkdown, Body: fmt.Sprint(raw)}
}

func heroFromMap(raw map[string]any) *HeroBlock {
	b := &HeroBlock{
		Type:       BlockHero,
		Heading:    asString(raw["heading"]),
		Subheading: asString(raw["subheading"]),
		Body:       asString(raw["body"]),
		CTA:        asStringMap(raw["cta"]),
		Background: asString(raw["background"]),
	}
	if sigil := asMap(raw["sigil"]); sigil != nil {
		b.Sigil = &SigilConfig{
			Type:    stringOr(sigil["type"], "p5"),
			ID:      asString(sigil["id"]),
			Src:     asString(sigil["src"]),
			Alt:     asString(sigil["alt"]),
			Options: asMap(sigil["options"]),
		}
	}
	return b
}

func sectionFromMap(raw map[string]any) *SectionBlock {
	inner := asSlice(raw["blocks"])
	blocks := make([]Block, 0, len(inner))
	for _, e := range inner {
		if m := asMap(e); m != nil {
			blocks = append(blocks, BlockFromMap(m))
		}
	}
	return &SectionBlock{
		Type:   BlockSection,
		ID:     asString(raw["id"]),
		Label:  asString(raw["label"]),
		Blocks: blocks,
		Align:  asMap(raw["align"]),
	}
}

func subpageFromMap(raw map[string]any) *SubpageBlock {
	return &SubpageBlock{
		Type:       BlockSubpage,
		Ref:        asString(raw["ref"]),
		Label:      asString(raw["label"]),
		Title:      asString(raw["title"]),
		Badge:      asString(raw["badge"]),
		Nav:        asBool(raw["nav"]),
		Align:      asString(raw["align"]),
		Size:       asString(raw["size"]),
		Weight:     asString(raw["weight"]),
		Decoration: asString(raw["decoration"]),
		Transform:  asString(raw["transform"]),
		Font:       asString(raw["font"]),
		Icon:       asString(raw["icon"]),
	}
}

func collectionFromMap(raw map[string]any) *CollectionBlock {
	b := &CollectionBlock{
		Type:    BlockCollection,
		Source:  stringOr(raw["source"], SourceFolder),
		Path:    asString(raw["path"]),
		Pattern: asString(raw["pattern"]),
		Card:    asString(raw["card"]),
		Sort:    asString(raw["sort"]),
		Filters: asMap(raw["filters"]),
	}
	if n, ok := asInt(raw["limit"]); ok {
		b.Limit = n
	}
	if layout := asMap(raw["layout"]); layout != nil {
		b.Layout = LayoutFromMap(layout)
	}
	if paging := asMap(raw["paging"]); paging != nil {
		b.Paging = &CollectionPaging{
			Enabled: asBool(paging["enabled"]),
			Mode:    stringOr(paging["mode"], "load_more"),
		}
		if n, ok := asInt(paging["page_size"]); ok {
			b.Paging.PageSize = n
		}
	}
	if media := asMap(raw["media"]); media != nil {
		b.Media = &CollectionMedia{
			Type:       stringOr(media["type"], "audio"),
			Player:     asMap(media["player"]),
			Visualizer: asMap(media["visualizer"]),
		}
	}
	if thumb := asMap(raw["thumbnail"]); thumb != nil {
		b.Thumbnail = &CollectionThumbnail{
			Type:      stringOr(thumb["type"], "generative_from_seed"),
			SeedImage: asString(thumb["seedImage"]),
			Style:     asMap(thumb["style"]),
			SeedFrom:  asString(thumb["seedFrom"]),
		}
	}
	for _, e := range asSlice(raw["sort_options"]) {
		if m := asMap(e); m != nil {
			b.SortOptions = append(b.SortOptions, SortOption{
				Key:   asString(m["key"]),
				Label: asString(m["label"]),
			})
		}
	}
	if es := asStringMap(raw["empty_state"]); es != nil {
		b.EmptyState = es
	}
	return b
}

func audioPlayerFromMap(raw map[string]any) *AudioPlayerBlock {
	b := &AudioPlayerBlock{
		Type:    BlockAudioPlayer,
		Src:     asString(raw["src"]),
		Title:   asString(raw["title"]),
		Artist:  asString(raw["artist"]),
		Artwork: asString(raw["artwork"]),
	}
	if vis := asMap(raw["visualizer"]); vis != nil {
		b.Visualizer = &VisualizerConfig{
			Type:    stringOr(vis["type"], "p5"),
			ID:      stringOr(vis["id"], "spectrum-bars"),
			Options: asMap(vis["options"]),
		}
	}
	return b
}

// LayoutFromMap decodes a layout config into its typed form.
func LayoutFromMap(raw map[string]any) *CollectionLayout {
	l := &CollectionLayout{
		Mode:      stringOr(raw["mode"], LayoutGrid),
		MaxRows:   asIntPtr(raw["max_rows"]),
		Dense:     asBoolPtr(raw["dense"]),
		MaxItems:  asIntPtr(raw["max_items"]),
		Spacing:   asString(raw["spacing"]),
		Loop:      asBoolPtr(raw["loop"]),
		SnapAlign: asString(raw["snap_align"]),
		MaxWidth:  asString(raw["max_width"]),
	}
	l.ShowDividers = asBoolPtr(raw["show_dividers"])
	l.ShowAvatar = asBoolPtr(raw["show_avatar"])
	l.ShowMeta = asBoolPtr(raw["show_meta"])
	if cols := asMap(raw["columns"]); cols != nil {
		l.Columns = breakpointsFromMap(cols)
	}
	if spv := asMap(raw["slides_per_view"]); spv != nil {
		l.SlidesPerView = breakpointsFromMap(spv)
	}
	if gap := asMap(raw["gap"]); gap != nil {
		l.Gap = &LayoutGap{Row: asString(gap["row"]), Column: asString(gap["column"])}
	}
	if align := asMap(raw["align"]); align != nil {
		l.Align = &LayoutAlign{
			Horizontal: asString(align["horizontal"]),
			Vertical:   asString(align["vertical"]),
		}
	}
	if pg := asMap(raw["pagination"]); pg != nil {
		l.Pagination = &PaginationConfig{Enabled: asBoolPtr(pg["enabled"])}
	}
	if ap := asMap(raw["autoplay"]); ap != nil {
		l.Autoplay = &AutoplayConfig{
			Enabled:      asBoolPtr(ap["enabled"]),
			IntervalMS:   asIntPtr(ap["interval_ms"]),
			PauseOnHover: asBoolPtr(ap["pause_on_hover"]),
		}
	}
	if ctl := asMap(raw["controls"]); ctl != nil {
		l.Controls = &ControlsConfig{
			Arrows: asBoolPtr(ctl["arrows"]),
			Dots:   asBoolPtr(ctl["dots"]),
		}
	}
	return l
}

func breakpointsFromMap(raw map[string]any) *LayoutBreakpoints {
	return &LayoutBreakpoints{
		XL: asIntPtr(raw["xl"]),
		LG: asIntPtr(raw["lg"]),
		MD: asIntPtr(raw["md"]),
		SM: asIntPtr(raw["sm"]),
		XS: asIntPtr(raw["xs"]),
	}
}

// NodeFromMap decodes one node record. The path key of the enclosing
// snapshot map wins over any path embedded in the record's meta.
func NodeFromMap(path string, raw map[string]any) *ContentNode {
	meta := asMap(raw["meta"])
	effects := asStringSlice(meta["effects"])
	if effects == nil {
		effects = []string{}
	}
	node := &ContentNode{
		Meta: NodeMeta{
			Path:            stringOr(meta["path"], path),
			ParentPath:      asString(meta["parent_path"]),
			Layout:          asString(meta["layout"]),
			Slug:            asString(meta["slug"]),
			DisplayName:     asString(meta["display_name"]),
			Theme:           asString(meta["theme"]),
			Effects:         effects,
			CollectionOrder: asStringSlice(meta["collection_order"]),
			Extra:           asMap(meta["extra"]),
		},
		Title:      asString(raw["title"]),
		Tagline:    asString(raw["tagline"]),
		Background: asString(raw["background"]),
	}
	if preview := asMap(raw["preview"]); preview != nil {
		node.Preview = &NodePreview{
			Title:    asString(preview["title"]),
			Subtitle: asString(preview["subtitle"]),
			Image:    asString(preview["image"]),
			Badge:    asString(preview["badge"]),
			Blurb:    asString(preview["blurb"]),
		}
	}
	for _, e := range asSlice(raw["content"]) {
		if m := asMap(e); m != nil {
			node.Content = append(node.Content, BlockFromMap(m))
		}
	}
	return node
}
