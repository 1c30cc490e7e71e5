package rules

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// VarDocblockID is the strategy id of VarDocblock.
const VarDocblockID m.StrategyID = "var-docblock"

var propertyDeclPattern = regexp.MustCompile(`^\s*(?:(?:public|protected|private|readonly|static|var)\s+)+[^$]*\$\w+`)

// VarDocblock documents an iterable property with a @var docblock instead of
// changing its declared type.
type VarDocblock struct {
	typ string
}

// NewVarDocblock creates the rule; an empty type defaults to array<string, mixed>.
func NewVarDocblock(typ string) *VarDocblock {
	if typ == "" {
		typ = "array<string, mixed>"
	}

	return &VarDocblock{typ: typ}
}

// ID implements Rule.
func (r *VarDocblock) ID() m.StrategyID { return VarDocblockID }

// Description implements Rule.
func (r *VarDocblock) Description() string {
	return "insert /** @var " + r.typ + " */ above the property"
}

// Applies implements Rule.
func (r *VarDocblock) Applies(d m.Diagnostic, fc FileContext) bool {
	line, ok := lineAt(fc.Lines, d.Line)

	return ok && propertyDeclPattern.MatchString(line)
}

// Edit implements Rule.
func (r *VarDocblock) Edit(lines []string, d m.Diagnostic) (Edit, error) {
	if prev, ok := lineAt(lines, d.Line-1); ok && strings.Contains(prev, "@var") {
		return Edit{}, ErrAlreadyApplied
	}

	return insertAbove(lines, d.Line, "/** @var "+r.typ+" */")
}
