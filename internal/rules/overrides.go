package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadWeightOverrides reads a flat YAML map of rule id to weight, e.g.
//
//	bullet-heavy: 2.7
//	quote-content: 3.0
//
// Validation against the actual rule set happens in NewRegistry.
func LoadWeightOverrides(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]float64)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing weight overrides %s: %w", path, err)
	}
	return overrides, nil
}
