package models

// Optimization types emitted by the recommendation builder.
const (
	OptimizationSpacing       = "spacing"
	OptimizationHierarchy     = "hierarchy"
	OptimizationReadability   = "readability"
	OptimizationSplitContent  = "split-content"
	OptimizationAccessibility = "accessibility"
)

// Optimization impact levels.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// LayoutScore is the scored outcome for one candidate layout. RawScore is
// the sum of the weights of every rule that proposed the layout; Confidence
// is RawScore divided by the highest RawScore of the evaluation, so the top
// candidate always sits at 1.0. Reasoning lists the rationale of each
// contributing rule in rule-table order.
type LayoutScore struct {
	LayoutID   string   `json:"layoutId"`
	RawScore   float64  `json:"rawScore"`
	Confidence float64  `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
}

// Alternative is a runner-up layout with its strongest single reason.
type Alternative struct {
	LayoutID   string  `json:"layoutId"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Optimization is a content adjustment suggested alongside the layout
// choice. Impact is one of low, medium or high.
type Optimization struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Recommendation is the full layout decision for one slide: exactly one
// primary layout, up to three alternatives in descending confidence, and
// zero or more content optimizations. Confidence here is always on the
// 0 to 1 scale.
type Recommendation struct {
	Primary       LayoutScore    `json:"primary"`
	Alternatives  []Alternative  `json:"alternatives,omitempty"`
	Optimizations []Optimization `json:"optimizations"`
}

// IsFallback reports whether the recommendation came from the no-rule
// fallback path rather than from scored candidates.
func (r Recommendation) IsFallback() bool {
	return r.Primary.LayoutID == FallbackLayout &&
		r.Primary.RawScore == 0 &&
		len(r.Alternatives) == 0
}
