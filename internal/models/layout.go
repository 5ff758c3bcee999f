package models

// Canonical layout identifiers. Rule tables and deck options refer to
// layouts by these strings.
const (
	LayoutTitle            = "title"
	LayoutHero             = "hero"
	LayoutTitleBullets     = "title-bullets"
	LayoutTitleParagraph   = "title-paragraph"
	LayoutTwoColumn        = "two-column"
	LayoutQuote            = "quote"
	LayoutImageRight       = "image-right"
	LayoutImageFull        = "image-full"
	LayoutChart            = "chart"
	LayoutTable            = "table"
	LayoutComparisonTable  = "comparison-table"
	LayoutTimeline         = "timeline"
	LayoutProcessFlow      = "process-flow"
	LayoutMetricsDashboard = "metrics-dashboard"
	LayoutTabbed           = "tabbed"
)

// FallbackLayout is recommended when no rule matches at all.
const FallbackLayout = LayoutTitleBullets

// Layout describes one entry in the layout catalog. ImageRegionRatio is the
// width:height ratio of the layout's image region, or 0 when the layout has
// none; it is the handoff value for the image fitting step.
type Layout struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ImageRegionRatio float64 `json:"imageRegionRatio,omitempty"`
}

// catalog order is load-bearing: when candidates tie on every scoring
// criterion, the one earlier in the catalog wins.
var catalog = []Layout{
	{ID: LayoutTitle, Name: "Title", Description: "Large centered title with optional subtitle"},
	{ID: LayoutHero, Name: "Hero", Description: "Full-bleed statement slide for a single idea"},
	{ID: LayoutTitleBullets, Name: "Title and Bullets", Description: "Heading over a bulleted list"},
	{ID: LayoutTitleParagraph, Name: "Title and Paragraph", Description: "Heading over a prose block"},
	{ID: LayoutTwoColumn, Name: "Two Column", Description: "Side-by-side content halves"},
	{ID: LayoutQuote, Name: "Quote", Description: "Pull quote with attribution"},
	{ID: LayoutImageRight, Name: "Image Right", Description: "Text on the left, image on the right", ImageRegionRatio: 0.75},
	{ID: LayoutImageFull, Name: "Image Full", Description: "Edge-to-edge image with overlay text", ImageRegionRatio: 1.778},
	{ID: LayoutChart, Name: "Chart", Description: "Single chart with a short caption", ImageRegionRatio: 1.333},
	{ID: LayoutTable, Name: "Table", Description: "Data table with heading"},
	{ID: LayoutComparisonTable, Name: "Comparison Table", Description: "Feature-by-feature comparison grid"},
	{ID: LayoutTimeline, Name: "Timeline", Description: "Dated milestones on a horizontal axis"},
	{ID: LayoutProcessFlow, Name: "Process Flow", Description: "Ordered steps with connectors"},
	{ID: LayoutMetricsDashboard, Name: "Metrics Dashboard", Description: "Grid of figures and small charts"},
	{ID: LayoutTabbed, Name: "Tabbed", Description: "Dense content split across tabs"},
}

var catalogIndex = buildCatalogIndex()

func buildCatalogIndex() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, l := range catalog {
		idx[l.ID] = i
	}
	return idx
}

// Catalog returns the ordered layout catalog. The returned slice is a copy.
func Catalog() []Layout {
	out := make([]Layout, len(catalog))
	copy(out, catalog)
	return out
}

// LayoutByID looks up a catalog entry.
func LayoutByID(id string) (Layout, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Layout{}, false
	}
	return catalog[i], true
}

// KnownLayout reports whether id names a catalog entry.
func KnownLayout(id string) bool {
	_, ok := catalogIndex[id]
	return ok
}

// CatalogRank returns the position of id in the catalog, or the catalog
// length for unknown ids so they sort last.
func CatalogRank(id string) int {
	if i, ok := catalogIndex[id]; ok {
		return i
	}
	return len(catalog)
}
