package models

// SlideContent is the raw content of a single slide as produced by the
// content generation step. Every field is optional: a slide with nothing but
// a title, or nothing at all, is still valid input. Numeric-looking values
// inside charts and tables may arrive as strings or other scalar types;
// consumers coerce what they can and ignore the rest.
type SlideContent struct {
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Paragraph   string   `yaml:"paragraph,omitempty" json:"paragraph,omitempty"`
	Bullets     []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
	Quote       string   `yaml:"quote,omitempty" json:"quote,omitempty"`
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`

	Left  *Column `yaml:"left,omitempty" json:"left,omitempty"`
	Right *Column `yaml:"right,omitempty" json:"right,omitempty"`

	Chart           *Chart           `yaml:"chart,omitempty" json:"chart,omitempty"`
	Table           *Table           `yaml:"table,omitempty" json:"table,omitempty"`
	ComparisonTable *ComparisonTable `yaml:"comparison_table,omitempty" json:"comparisonTable,omitempty"`
	Timeline        []TimelineEntry  `yaml:"timeline,omitempty" json:"timeline,omitempty"`
	Images          []ImageRef       `yaml:"images,omitempty" json:"images,omitempty"`

	SpeakerNotes string `yaml:"speaker_notes,omitempty" json:"speakerNotes,omitempty"`
}

// Column holds the content of one side of a two-column slide.
type Column struct {
	Heading   string   `yaml:"heading,omitempty" json:"heading,omitempty"`
	Paragraph string   `yaml:"paragraph,omitempty" json:"paragraph,omitempty"`
	Bullets   []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// Chart is a categorical data series block. Data points are kept untyped so
// that malformed input degrades instead of failing to parse.
type Chart struct {
	Title      string   `yaml:"title,omitempty" json:"title,omitempty"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
	Series     []Series `yaml:"series,omitempty" json:"series,omitempty"`
}

// Series is one named run of chart data points.
type Series struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Data []any  `yaml:"data,omitempty" json:"data,omitempty"`
}

// Table is a plain data table. Cells are untyped for the same reason chart
// points are.
type Table struct {
	Headers []string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Rows    [][]any  `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// ComparisonTable is a table whose first column names the thing being
// compared and whose remaining columns are the alternatives.
type ComparisonTable struct {
	Label   string   `yaml:"label,omitempty" json:"label,omitempty"`
	Headers []string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Rows    [][]any  `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// TimelineEntry is a single dated milestone.
type TimelineEntry struct {
	Date        string `yaml:"date,omitempty" json:"date,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ImageRef points at an image by URL or local path. The engine never opens
// it; only presence and alt text matter here.
type ImageRef struct {
	URL     string `yaml:"url,omitempty" json:"url,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
	Alt     string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Caption string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

// IsEmpty reports whether the slide carries no content at all.
func (c SlideContent) IsEmpty() bool {
	return c.Title == "" && c.Subtitle == "" && c.Paragraph == "" &&
		len(c.Bullets) == 0 && c.Quote == "" &&
		c.Left == nil && c.Right == nil &&
		c.Chart == nil && c.Table == nil && c.ComparisonTable == nil &&
		len(c.Timeline) == 0 && len(c.Images) == 0
}
