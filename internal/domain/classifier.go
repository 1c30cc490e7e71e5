package domain

import (
	"fmt"
	"regexp"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// ClassRule maps messages matching Pattern onto a category, priority and strategy.
type ClassRule struct {
	Pattern  *regexp.Regexp
	Category m.Category
	Priority m.Priority
	Strategy m.StrategyID
}

// NewClassRule compiles pattern into a ClassRule.
func NewClassRule(pattern string, category m.Category, priority m.Priority, strategy m.StrategyID) (ClassRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ClassRule{}, fmt.Errorf("invalid classifier pattern %q: %w", pattern, err)
	}

	return ClassRule{Pattern: re, Category: category, Priority: priority, Strategy: strategy}, nil
}

func mustClassRule(pattern string, category m.Category, priority m.Priority, strategy m.StrategyID) ClassRule {
	rule, err := NewClassRule(pattern, category, priority, strategy)
	if err != nil {
		panic(err)
	}

	return rule
}

// DefaultClassRules is the built-in table, tuned for PHPStan and PHP_CodeSniffer
// messages. Order is significant: the first match wins.
func DefaultClassRules() []ClassRule {
	return []ClassRule{
		mustClassRule(`^Method .+::\w+\(\) is unused\.?$`, "unused_methods", m.PriorityLow, ""),
		mustClassRule(`^(Property|Constant) .+ is (unused|never read)`, "unused_properties", m.PriorityLow, ""),
		mustClassRule(`^Property .+ has no value type specified in iterable type`, "missing_generics", m.PriorityMedium, rules.VarDocblockID),
		mustClassRule(`has no value type specified in iterable type`, "missing_generics", m.PriorityMedium, ""),
		mustClassRule(`^Method .+::\w+\(\) has no return type specified`, "missing_return_type", m.PriorityMedium, rules.ReturnTypeID),
		mustClassRule(`^(Unused use statement|Unused import|Type \S+ is not used in this file)`, "unused_imports", m.PriorityLow, rules.RemoveUnusedUseID),
		mustClassRule(`^(Class|Interface|Trait) \S+ not found`, "undefined_symbols", m.PriorityHigh, ""),
		mustClassRule(`^(Call to an undefined|Access to an undefined)`, "undefined_symbols", m.PriorityHigh, ""),
		mustClassRule(`(should return .+ but returns|expects .+, .+ given|does not accept)`, "type_mismatch", m.PriorityHigh, rules.IgnoreNextLineID),
	}
}

// Classifier annotates diagnostics with category, priority and strategy.
type Classifier interface {
	Classify(d m.Diagnostic) m.Diagnostic
	Rules() []ClassRule
}

type classifier struct {
	rules []ClassRule
}

// NewClassifier creates a Classifier that evaluates rules in the given order.
func NewClassifier(rules []ClassRule) Classifier {
	return &classifier{rules: append([]ClassRule(nil), rules...)}
}

// Classify returns an annotated copy of d. Unmatched messages become UNKNOWN
// and unfixable.
func (c *classifier) Classify(d m.Diagnostic) m.Diagnostic {
	for _, rule := range c.rules {
		if !rule.Pattern.MatchString(d.Message) {
			continue
		}

		d.Category = rule.Category
		d.Priority = rule.Priority
		d.StrategyID = rule.Strategy
		d.Fixable = rule.Strategy != ""

		return d
	}

	d.Category = m.CategoryUnknown
	d.Priority = m.PriorityUnknown
	d.StrategyID = ""
	d.Fixable = false

	return d
}

func (c *classifier) Rules() []ClassRule {
	return append([]ClassRule(nil), c.rules...)
}

// ClassifyAll classifies every diagnostic, preserving order.
func ClassifyAll(c Classifier, diags []m.Diagnostic) []m.Diagnostic {
	out := make([]m.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, c.Classify(d))
	}

	return out
}
