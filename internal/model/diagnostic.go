package model

import "fmt"

// Category is the classification bucket of a diagnostic.
type Category string

// CategoryUnknown is assigned when no classifier rule matches.
const CategoryUnknown Category = "UNKNOWN"

// Priority is the urgency tier assigned during classification.
type Priority string

const (
	// PriorityHigh marks diagnostics that usually break the build or runtime.
	PriorityHigh Priority = "HIGH"
	// PriorityMedium marks type-quality issues.
	PriorityMedium Priority = "MEDIUM"
	// PriorityLow marks cosmetic or dead-code issues.
	PriorityLow Priority = "LOW"
	// PriorityUnknown is assigned when no classifier rule matches.
	PriorityUnknown Priority = "UNKNOWN"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityUnknown}

// Rank orders priorities; lower is more urgent.
func (p Priority) Rank() int {
	for i, candidate := range Priorities {
		if candidate == p {
			return i
		}
	}

	return len(Priorities)
}

// ParsePriority converts a case-sensitive priority name, falling back to PriorityUnknown.
func ParsePriority(s string) Priority {
	for _, p := range Priorities {
		if string(p) == s {
			return p
		}
	}

	return PriorityUnknown
}

// StrategyID names a registered transformation rule.
type StrategyID string

// Diagnostic is one issue reported by an external analyzer.
// Values are treated as immutable once classified.
type Diagnostic struct {
	File       Path       `json:"file" yaml:"file"`
	Line       int        `json:"line" yaml:"line"`
	Message    string     `json:"message" yaml:"message"`
	Category   Category   `json:"category" yaml:"category"`
	Priority   Priority   `json:"priority" yaml:"priority"`
	Fixable    bool       `json:"fixable" yaml:"fixable"`
	StrategyID StrategyID `json:"strategyId,omitempty" yaml:"strategyId,omitempty"`
}

// DiagnosticKey is the identity of a diagnostic.
type DiagnosticKey struct {
	File    Path
	Line    int
	Message string
}

// Key returns the (file, line, message) identity tuple.
func (d Diagnostic) Key() DiagnosticKey {
	return DiagnosticKey{File: d.File, Line: d.Line, Message: d.Message}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}
