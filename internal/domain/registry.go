package domain

import (
	"fmt"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// Registry is the lookup table from strategy id to rule. It is populated once
// by NewRegistry and read-only afterwards.
type Registry struct {
	rules map[m.StrategyID]rules.Rule
	order []m.StrategyID
}

// NewRegistry registers rs in order. Duplicate or empty ids are rejected.
func NewRegistry(rs ...rules.Rule) (*Registry, error) {
	r := &Registry{rules: make(map[m.StrategyID]rules.Rule, len(rs))}

	for _, rule := range rs {
		if err := r.register(rule); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewDefaultRegistry registers the built-in rule set.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(rules.Defaults()...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Registry) register(rule rules.Rule) error {
	id := rule.ID()
	if id == "" {
		return fmt.Errorf("rule %T has an empty id", rule)
	}

	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("rule %q registered twice", id)
	}

	r.rules[id] = rule
	r.order = append(r.order, id)

	return nil
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id m.StrategyID) (rules.Rule, bool) {
	rule, ok := r.rules[id]

	return rule, ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []m.StrategyID {
	return append([]m.StrategyID(nil), r.order...)
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []rules.Rule {
	out := make([]rules.Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}

	return out
}
