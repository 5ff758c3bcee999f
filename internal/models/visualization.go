package models

// VisualizationType classifies how a slide's data is best shown.
type VisualizationType string

const (
	VisualizationChart VisualizationType = "chart"
	VisualizationTable VisualizationType = "table"
	VisualizationText  VisualizationType = "text"
	VisualizationMixed VisualizationType = "mixed"
)

// ChartHint suggests a concrete chart treatment.
type ChartHint struct {
	Kind        string `json:"kind"`
	SeriesCount int    `json:"seriesCount"`
	PointCount  int    `json:"pointCount"`
}

// Chart kinds for ChartHint.
const (
	ChartKindBar  = "bar"
	ChartKindLine = "line"
	ChartKindPie  = "pie"
)

// TableHint suggests a concrete table treatment.
type TableHint struct {
	Kind    string `json:"kind"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// Table kinds for TableHint.
const (
	TableKindData       = "data"
	TableKindComparison = "comparison"
)

// VisualizationRecommendation is the visualization detector's verdict for
// one slide. Confidence is on the 0 to 100 scale and stays there; callers
// that need the engine's 0 to 1 scale convert at the boundary.
type VisualizationRecommendation struct {
	Type       VisualizationType `json:"type"`
	Confidence int               `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
	ChartHint  *ChartHint        `json:"chartHint,omitempty"`
	TableHint  *TableHint        `json:"tableHint,omitempty"`
	TextHints  []string          `json:"textHints,omitempty"`
}
