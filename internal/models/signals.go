package models

// TextDensity buckets the amount of prose on a slide.
type TextDensity string

const (
	DensityLow    TextDensity = "low"
	DensityMedium TextDensity = "medium"
	DensityHigh   TextDensity = "high"
)

// ContentIntent is the inferred communicative purpose of a slide.
type ContentIntent string

const (
	IntentInform   ContentIntent = "inform"
	IntentPersuade ContentIntent = "persuade"
	IntentExplain  ContentIntent = "explain"
	IntentShowcase ContentIntent = "showcase"
)

// ContentSignals is the feature vector extracted from one slide's content.
// It is a pure function of the content: recomputed for every slide, never
// carried over between slides, and safe to share because it is a value.
type ContentSignals struct {
	TextDensity        TextDensity   `json:"textDensity"`
	BulletCount        int           `json:"bulletCount"`
	HasNumericData     bool          `json:"hasNumericData"`
	HasImages          bool          `json:"hasImages"`
	HasCharts          bool          `json:"hasCharts"`
	HasTables          bool          `json:"hasTables"`
	HasTimeline        bool          `json:"hasTimeline"`
	HasQuotes          bool          `json:"hasQuotes"`
	HasComparativeData bool          `json:"hasComparativeData"`
	HasSequentialData  bool          `json:"hasSequentialData"`
	ComplexityScore    float64       `json:"complexityScore"`
	ReadabilityScore   float64       `json:"readabilityScore"`
	PrimaryIntent      ContentIntent `json:"primaryIntent"`
}
