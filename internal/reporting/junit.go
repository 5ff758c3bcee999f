package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/salscrudato/deckard/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one analyzed deck.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one slide.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a slide that failed the confidence gate.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a slide the rules had nothing to say about.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a DeckOutcome to JUnit XML format. Slides below
// the confidence gate become failures; fallback slides become skips so CI
// reports show them without failing the build twice over.
func ConvertToJUnit(outcome *models.DeckOutcome) *JUnitTestSuites {
	durationSec := float64(outcome.Digest.DurationMs) / 1000.0
	failures := outcome.Digest.Flagged - outcome.Digest.Fallbacks

	suite := JUnitTestSuite{
		Name:      outcome.DeckName,
		Tests:     outcome.Digest.SlideCount,
		Failures:  failures,
		Skipped:   outcome.Digest.Fallbacks,
		Time:      durationSec,
		Timestamp: outcome.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "engine_version", Value: outcome.Setup.EngineVersion},
			{Name: "ruleset", Value: outcome.Setup.RulesetFingerprint},
			{Name: "min_confidence", Value: fmt.Sprintf("%.2f", outcome.Setup.MinConfidence)},
			{Name: "avg_confidence", Value: fmt.Sprintf("%.4f", outcome.Digest.AvgConfidence)},
		},
	}

	for i := range outcome.Slides {
		suite.TestCases = append(suite.TestCases, convertSlide(outcome.DeckName, &outcome.Slides[i]))
	}

	return &JUnitTestSuites{
		Tests:      outcome.Digest.SlideCount,
		Failures:   failures,
		Skipped:    outcome.Digest.Fallbacks,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertSlide(deckName string, a *models.SlideAnalysis) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      a.SlideID,
		Classname: deckName,
		Time:      float64(a.DurationMs) / 1000.0,
	}

	switch a.Status {
	case models.StatusLowConfidence:
		tc.Failure = buildFailure(a)
	case models.StatusFallback:
		tc.Skipped = &JUnitSkipped{
			Message: fmt.Sprintf("no rule matched; fell back to %s", a.Recommendation.Primary.LayoutID),
		}
	}

	return tc
}

func buildFailure(a *models.SlideAnalysis) *JUnitFailure {
	var body string
	if a.PinnedLayout != "" {
		body = fmt.Sprintf("pinned to %s; the rules preferred %s\n", a.PinnedLayout, a.Recommendation.Primary.LayoutID)
	}
	for _, reason := range a.Recommendation.Primary.Reasoning {
		body += fmt.Sprintf("[RULE] %s\n", reason)
	}

	return &JUnitFailure{
		Message: fmt.Sprintf("%s: confidence below gate for layout %s", a.SlideID, a.EffectiveLayout()),
		Type:    "LowConfidence",
		Body:    body,
	}
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(outcome *models.DeckOutcome, path string) error {
	suites := ConvertToJUnit(outcome)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
