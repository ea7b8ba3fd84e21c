package graph

// Collection layout modes.
const (
	LayoutGrid     = "grid"
	LayoutList     = "list"
	LayoutCarousel = "carousel"
)

func intp(n int) *int    { return &n }
func boolp(b bool) *bool { return &b }

// DefaultLayout returns the built-in layout configuration for a mode.
// Unknown modes fall back to the grid defaults. The result is a fresh
// value; callers may merge over it freely.
func DefaultLayout(mode string) CollectionLayout {
	switch mode {
	case LayoutList:
		return CollectionLayout{
			Mode:         LayoutList,
			Dense:        boolp(false),
			ShowDividers: boolp(true),
			ShowAvatar:   boolp(true),
			ShowMeta:     boolp(true),
			Align:        &LayoutAlign{Vertical: "center"},
		}
	case LayoutCarousel:
		return CollectionLayout{
			Mode:          LayoutCarousel,
			SlidesPerView: &LayoutBreakpoints{XL: intp(5), LG: intp(4), MD: intp(3), SM: intp(2), XS: intp(1)},
			Spacing:       "1rem",
			Loop:          boolp(true),
			Autoplay:      &AutoplayConfig{Enabled: boolp(true), IntervalMS: intp(8000), PauseOnHover: boolp(true)},
			Controls:      &ControlsConfig{Arrows: boolp(true), Dots: boolp(true)},
			SnapAlign:     "center",
			MaxWidth:      "100%",
		}
	default:
		return CollectionLayout{
			Mode:    LayoutGrid,
			Columns: &LayoutBreakpoints{XL: intp(5), LG: intp(4), MD: intp(3), SM: intp(2), XS: intp(1)},
			Gap:     &LayoutGap{Row: "1.5rem", Column: "1.5rem"},
			Align:   &LayoutAlign{Horizontal: "stretch", Vertical: "start"},
		}
	}
}

// MergeLayout lays a caller-provided layout over the defaults for its
// mode. Caller-set fields win at every nesting level; recursion descends
// into the nested config records only.
func MergeLayout(defaults CollectionLayout, over *CollectionLayout) CollectionLayout {
	out := defaults
	if over == nil {
		return out
	}
	if over.Mode != "" {
		out.Mode = over.Mode
	}
	out.Columns = mergeBreakpoints(out.Columns, over.Columns)
	out.Gap = mergeGap(out.Gap, over.Gap)
	out.Align = mergeAlign(out.Align, over.Align)
	if over.MaxRows != nil {
		out.MaxRows = over.MaxRows
	}
	if over.Pagination != nil {
		out.Pagination = mergePagination(out.Pagination, over.Pagination)
	}
	if over.Dense != nil {
		out.Dense = over.Dense
	}
	if over.ShowDividers != nil {
		out.ShowDividers = over.ShowDividers
	}
	if over.ShowAvatar != nil {
		out.ShowAvatar = over.ShowAvatar
	}
	if over.ShowMeta != nil {
		out.ShowMeta = over.ShowMeta
	}
	if over.MaxItems != nil {
		out.MaxItems = over.MaxItems
	}
	out.SlidesPerView = mergeBreakpoints(out.SlidesPerView, over.SlidesPerView)
	if over.Spacing != "" {
		out.Spacing = over.Spacing
	}
	if over.Loop != nil {
		out.Loop = over.Loop
	}
	out.Autoplay = mergeAutoplay(out.Autoplay, over.Autoplay)
	out.Controls = mergeControls(out.Controls, over.Controls)
	if over.SnapAlign != "" {
		out.SnapAlign = over.SnapAlign
	}
	if over.MaxWidth != "" {
		out.MaxWidth = over.MaxWidth
	}
	return out
}

func mergeBreakpoints(base, over *LayoutBreakpoints) *LayoutBreakpoints {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.XL != nil {
		out.XL = over.XL
	}
	if over.LG != nil {
		out.LG = over.LG
	}
	if over.MD != nil {
		out.MD = over.MD
	}
	if over.SM != nil {
		out.SM = over.SM
	}
	if over.XS != nil {
		out.XS = over.XS
	}
	return &out
}

func mergeGap(base, over *LayoutGap) *LayoutGap {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.Row != "" {
		out.Row = over.Row
	}
	if over.Column != "" {
		out.Column = over.Column
	}
	return &out
}

func mergeAlign(base, over *LayoutAlign) *LayoutAlign {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.Horizontal != "" {
		out.Horizontal = over.Horizontal
	}
	if over.Vertical != "" {
		out.Vertical = over.Vertical
	}
	return &out
}

func mergePagination(base, over *PaginationConfig) *PaginationConfig {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.Enabled != nil {
		out.Enabled = over.Enabled
	}
	return &out
}

func mergeAutoplay(base, over *AutoplayConfig) *AutoplayConfig {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.Enabled != nil {
		out.Enabled = over.Enabled
	}
	if over.IntervalMS != nil {
		out.IntervalMS = over.IntervalMS
	}
	if over.PauseOnHover != nil {
		out.PauseOnHover = over.PauseOnHover
	}
	return &out
}

func mergeControls(base, over *ControlsConfig) *ControlsConfig {
	if over == nil {
		return base
	}
	if base == nil {
		out := *over
		return &out
	}
	out := *base
	if over.Arrows != nil {
		out.Arrows = over.Arrows
	}
	if over.Dots != nil {
		out.Dots = over.Dots
	}
	return &out
}
