package rules

import (
	m "github.com/mouse-blink/mender/internal/model"
)

// IgnoreNextLineID is the strategy id of IgnoreNextLine.
const IgnoreNextLineID m.StrategyID = "ignore-next-line"

const ignoreNextLineComment = "// @phpstan-ignore-next-line"

// IgnoreNextLine suppresses a diagnostic by annotating the line above it.
type IgnoreNextLine struct{}

// NewIgnoreNextLine creates the rule.
func NewIgnoreNextLine() *IgnoreNextLine {
	return &IgnoreNextLine{}
}

// ID implements Rule.
func (r *IgnoreNextLine) ID() m.StrategyID { return IgnoreNextLineID }

// Description implements Rule.
func (r *IgnoreNextLine) Description() string {
	return "insert " + ignoreNextLineComment + " above the reported line"
}

// Applies implements Rule.
func (r *IgnoreNextLine) Applies(d m.Diagnostic, fc FileContext) bool {
	return d.Line >= 1 && d.Line <= len(fc.Lines)
}

// Edit implements Rule.
func (r *IgnoreNextLine) Edit(lines []string, d m.Diagnostic) (Edit, error) {
	return insertAbove(lines, d.Line, ignoreNextLineComment)
}
