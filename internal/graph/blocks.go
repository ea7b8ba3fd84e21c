package graph

// Block kind tags as they appear in authored records and snapshots.
const (
	BlockHero        = "hero"
	BlockSection     = "section"
	BlockMarkdown    = "markdown"
	BlockSubpage     = "subpage"
	BlockCollection  = "collection"
	BlockAudioPlayer = "audio_player"
)

// Block is the closed sum of content block variants. Hydration and nav
// traversal dispatch on the concrete type; section is the only recursive
// variant. Unknown tags never produce a new implementation — they decode
// to an inert MarkdownBlock.
type Block interface {
	isBlock()
}

// SigilConfig configures a visual sigil (p5 sketch or static image).
type SigilConfig struct {
	Type    string         `json:"type"`
	ID      string         `json:"id,omitempty"`
	Src     string         `json:"src,omitempty"`
	Alt     string         `json:"alt,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type HeroBlock struct {
	Type       string            `json:"type"`
	Heading    string            `json:"heading"`
	Subheading string            `json:"subheading,omitempty"`
	Body       string            `json:"body,omitempty"`
	CTA        map[string]string `json:"cta,omitempty"`
	Sigil      *SigilConfig      `json:"sigil,omitempty"`
	Background string            `json:"background,omitempty"`
}

type SectionBlock struct {
	Type   string         `json:"type"`
	ID     string         `json:"id,omitempty"`
	Label  string         `json:"label,omitempty"`
	Blocks []Block        `json:"blocks"`
	Align  map[string]any `json:"align,omitempty"`
}

type MarkdownBlock struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

// SubpageBlock is a navigable link to another node. Nav opts the link into
// navbar auto-expansion; the remaining fields are display hints.
type SubpageBlock struct {
	Type       string `json:"type"`
	Ref        string `json:"ref"`
	Label      string `json:"label,omitempty"`
	Title      string `json:"title,omitempty"`
	Badge      string `json:"badge,omitempty"`
	Nav        bool   `json:"nav"`
	Align      string `json:"align,omitempty"`
	Size       string `json:"size,omitempty"`
	Weight     string `json:"weight,omitempty"`
	Decoration string `json:"decoration,omitempty"`
	Transform  string `json:"transform,omitempty"`
	Font       string `json:"font,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

// LayoutBreakpoints maps responsive breakpoints to a count (columns or
// slides per view).
type LayoutBreakpoints struct {
	XL *int `json:"xl,omitempty"`
	LG *int `json:"lg,omitempty"`
	MD *int `json:"md,omitempty"`
	SM *int `json:"sm,omitempty"`
	XS *int `json:"xs,omitempty"`
}

type LayoutGap struct {
	Row    string `json:"row,omitempty"`
	Column string `json:"column,omitempty"`
}

type LayoutAlign struct {
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
}

type AutoplayConfig struct {
	Enabled      *bool `json:"enabled,omitempty"`
	IntervalMS   *int  `json:"interval_ms,omitempty"`
	PauseOnHover *bool `json:"pause_on_hover,omitempty"`
}

type ControlsConfig struct {
	Arrows *bool `json:"arrows,omitempty"`
	Dots   *bool `json:"dots,omitempty"`
}

type PaginationConfig struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// CollectionLayout is the per-mode layout configuration. Fields are
// pointers so that a caller-provided config can be deep-merged over the
// built-in defaults: nil means "not set, take the default".
type CollectionLayout struct {
	Mode string `json:"mode"`

	// grid
	Columns    *LayoutBreakpoints `json:"columns,omitempty"`
	Gap        *LayoutGap         `json:"gap,omitempty"`
	Align      *LayoutAlign       `json:"align,omitempty"`
	MaxRows    *int               `json:"max_rows,omitempty"`
	Pagination *PaginationConfig  `json:"pagination,omitempty"`

	// list
	Dense        *bool `json:"dense,omitempty"`
	ShowDividers *bool `json:"show_dividers,omitempty"`
	ShowAvatar   *bool `json:"show_avatar,omitempty"`
	ShowMeta     *bool `json:"show_meta,omitempty"`
	MaxItems     *int  `json:"max_items,omitempty"`

	// carousel
	SlidesPerView *LayoutBreakpoints `json:"slides_per_view,omitempty"`
	Spacing       string             `json:"spacing,omitempty"`
	Loop          *bool              `json:"loop,omitempty"`
	Autoplay      *AutoplayConfig    `json:"autoplay,omitempty"`
	Controls      *ControlsConfig    `json:"controls,omitempty"`
	SnapAlign     string             `json:"snap_align,omitempty"`
	MaxWidth      string             `json:"max_width,omitempty"`
}

type CollectionPaging struct {
	Enabled  bool   `json:"enabled"`
	PageSize int    `json:"page_size,omitempty"`
	Mode     string `json:"mode"`
}

type CollectionMedia struct {
	Type       string         `json:"type"`
	Player     map[string]any `json:"player,omitempty"`
	Visualizer map[string]any `json:"visualizer,omitempty"`
}

type CollectionThumbnail struct {
	Type      string         `json:"type"`
	SeedImage string         `json:"seedImage,omitempty"`
	Style     map[string]any `json:"style,omitempty"`
	SeedFrom  string         `json:"seedFrom,omitempty"`
}

type SortOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CollectionBlock declares an item list: where candidates come from and how
// they are shaped, sorted, and paged.
type CollectionBlock struct {
	Type      string               `json:"type"`
	Source    string               `json:"source"`
	Path      string               `json:"path,omitempty"`
	Pattern   string               `json:"pattern,omitempty"`
	Layout    *CollectionLayout    `json:"layout,omitempty"`
	Card      string               `json:"card,omitempty"`
	Media     *CollectionMedia     `json:"media,omitempty"`
	Thumbnail *CollectionThumbnail `json:"thumbnail,omitempty"`

	Sort        string            `json:"sort,omitempty"`
	SortOptions []SortOption      `json:"sort_options,omitempty"`
	Limit       int               `json:"limit,omitempty"`
	Filters     map[string]any    `json:"filters,omitempty"`
	Paging      *CollectionPaging `json:"paging,omitempty"`
	EmptyState  map[string]string `json:"empty_state,omitempty"`
}

type VisualizerConfig struct {
	Type    string         `json:"type"`
	ID      string         `json:"id"`
	Options map[string]any `json:"options,omitempty"`
}

type AudioPlayerBlock struct {
	Type       string            `json:"type"`
	Src        string            `json:"src"`
	Title      string            `json:"title,omitempty"`
	Artist     string            `json:"artist,omitempty"`
	Artwork    string            `json:"artwork,omitempty"`
	Visualizer *VisualizerConfig `json:"visualizer,omitempty"`
}

func (*HeroBlock) isBlock()        {}
func (*SectionBlock) isBlock()     {}
func (*MarkdownBlock) isBlock()    {}
func (*SubpageBlock) isBlock()     {}
func (*CollectionBlock) isBlock()  {}
func (*AudioPlayerBlock) isBlock() {}
