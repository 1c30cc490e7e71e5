// Package rules provides the built-in text rewrite strategies.
package rules

import (
	"errors"

	m "github.com/mouse-blink/mender/internal/model"
)

// ErrAlreadyApplied is returned by a rule whose fix is already present in the text.
var ErrAlreadyApplied = errors.New("rule already applied")

// ErrNoMatch is returned when the rule cannot locate its target region.
var ErrNoMatch = errors.New("target region not found")

// FileContext is the read-only view of the file a diagnostic points into.
type FileContext struct {
	Path  m.Path
	Lines []string
}

// Edit replaces the 1-based line range [Start, End) with Lines.
// Start == End inserts Lines above line Start.
type Edit struct {
	Start int
	End   int
	Lines []string
}

// IsInsertion reports whether the edit only adds lines.
func (e Edit) IsInsertion() bool {
	return e.End <= e.Start
}

// Span returns the inclusive range of existing lines the edit touches.
// An insertion touches the line it is anchored to.
func (e Edit) Span() (int, int) {
	if e.IsInsertion() {
		return e.Start, e.Start
	}

	return e.Start, e.End - 1
}

// Rule is a registered, idempotent rewrite strategy.
type Rule interface {
	ID() m.StrategyID
	Description() string
	// Applies is a cheap predicate evaluated before Edit.
	Applies(d m.Diagnostic, fc FileContext) bool
	// Edit computes the change for d. It must return ErrAlreadyApplied when
	// the text already carries the fix, so a second pass changes nothing.
	Edit(lines []string, d m.Diagnostic) (Edit, error)
}

// Rewriter is a whole-file rewrite that is not driven by diagnostics.
type Rewriter interface {
	ID() m.StrategyID
	// Rewrite returns the new content and the number of rewritten sites.
	Rewrite(content string) (string, int, error)
}
