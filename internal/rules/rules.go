// Package rules holds the declarative layout rule table. A rule is data:
// a predicate over extracted signals, the layouts it argues for, and a
// weight. Changing layout behavior means editing the table, not the
// evaluator.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/salscrudato/deckard/internal/models"
)

// Rule is one layout heuristic. When fires on the extracted signals only;
// it must not touch raw content, clocks, or anything outside its argument.
// Layouts lists the candidate layout ids the rule argues for, strongest
// first. Weight is added to every listed layout when the rule fires.
type Rule struct {
	ID        string
	When      func(models.ContentSignals) bool
	Layouts   []string
	Weight    float64
	Rationale string
}

// Registry is an immutable, validated rule set. Construct one at startup
// and hand it to the engine; weights are fixed for the life of the process.
type Registry struct {
	rules       []Rule
	fingerprint string
}

type registryOptions struct {
	rules           []Rule
	weightOverrides map[string]float64
}

// Option configures registry construction.
type Option func(*registryOptions)

// WithRules replaces the builtin table entirely.
func WithRules(rules []Rule) Option {
	return func(o *registryOptions) {
		o.rules = rules
	}
}

// WithWeightOverrides adjusts the weights of named rules. Every key must
// name an existing rule and every value must be positive.
func WithWeightOverrides(overrides map[string]float64) Option {
	return func(o *registryOptions) {
		o.weightOverrides = overrides
	}
}

// NewRegistry builds and validates a registry from the builtin table and
// any options.
func NewRegistry(opts ...Option) (*Registry, error) {
	options := registryOptions{rules: Builtin()}
	for _, opt := range opts {
		opt(&options)
	}

	rules := make([]Rule, len(options.rules))
	copy(rules, options.rules)

	if len(options.weightOverrides) > 0 {
		byID := make(map[string]int, len(rules))
		for i, r := range rules {
			byID[r.ID] = i
		}
		for id, weight := range options.weightOverrides {
			i, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("weight override names unknown rule %q", id)
			}
			if weight <= 0 {
				return nil, fmt.Errorf("weight override for %q must be positive, got %v", id, weight)
			}
			rules[i].Weight = weight
		}
	}

	if err := validateRules(rules); err != nil {
		return nil, err
	}

	return &Registry{
		rules:       rules,
		fingerprint: fingerprintRules(rules),
	}, nil
}

// Rules returns the rule set in table order. The slice is a copy.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Fingerprint identifies the rule set: same rules, layouts and weights
// always produce the same value. It feeds analysis cache keys so tuning a
// weight invalidates stale entries.
func (r *Registry) Fingerprint() string {
	return r.fingerprint
}

func validateRules(rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("rule set is empty")
	}
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.ID == "" {
			return fmt.Errorf("rule %d has no id", i)
		}
		if seen[rule.ID] {
			return fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = true
		if rule.When == nil {
			return fmt.Errorf("rule %q has no condition", rule.ID)
		}
		if rule.Weight <= 0 {
			return fmt.Errorf("rule %q has non-positive weight %v", rule.ID, rule.Weight)
		}
		if len(rule.Layouts) == 0 {
			return fmt.Errorf("rule %q proposes no layouts", rule.ID)
		}
		for _, id := range rule.Layouts {
			if !models.KnownLayout(id) {
				return fmt.Errorf("rule %q proposes unknown layout %q", rule.ID, id)
			}
		}
	}
	return nil
}

func fingerprintRules(rules []Rule) string {
	h := sha256.New()
	for _, rule := range rules {
		h.Write([]byte(rule.ID))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(rule.Weight, 'g', -1, 64)))
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(rule.Layouts, ",")))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
