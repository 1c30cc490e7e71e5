package rules

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// RemoveUnusedUseID is the strategy id of RemoveUnusedUse.
const RemoveUnusedUseID m.StrategyID = "remove-unused-use"

var qualifiedNameInMessage = regexp.MustCompile(`\\?([A-Za-z_][A-Za-z0-9_]*(?:\\[A-Za-z_][A-Za-z0-9_]*)+)`)

// RemoveUnusedUse deletes a `use` import named by the diagnostic.
type RemoveUnusedUse struct{}

// NewRemoveUnusedUse creates the rule.
func NewRemoveUnusedUse() *RemoveUnusedUse {
	return &RemoveUnusedUse{}
}

// ID implements Rule.
func (r *RemoveUnusedUse) ID() m.StrategyID { return RemoveUnusedUseID }

// Description implements Rule.
func (r *RemoveUnusedUse) Description() string {
	return "delete the unused use statement"
}

// Applies implements Rule.
func (r *RemoveUnusedUse) Applies(d m.Diagnostic, _ FileContext) bool {
	return qualifiedNameInMessage.MatchString(d.Message)
}

// Edit implements Rule.
func (r *RemoveUnusedUse) Edit(lines []string, d m.Diagnostic) (Edit, error) {
	match := qualifiedNameInMessage.FindStringSubmatch(d.Message)
	if match == nil {
		return Edit{}, ErrNoMatch
	}

	stmt := regexp.MustCompile(`^\s*use\s+\\?` + regexp.QuoteMeta(match[1]) + `(\s+as\s+\w+)?\s*;\s*$`)

	if text, ok := lineAt(lines, d.Line); ok && stmt.MatchString(text) {
		return Edit{Start: d.Line, End: d.Line + 1}, nil
	}

	// Earlier edits or a stale report may have moved the statement.
	for i, text := range lines {
		if stmt.MatchString(strings.TrimRight(text, "\r")) {
			return Edit{Start: i + 1, End: i + 2}, nil
		}
	}

	// A grouped or otherwise unusual import still names the type.
	if stillReferenced(lines, match[1]) {
		return Edit{}, ErrNoMatch
	}

	return Edit{}, ErrAlreadyApplied
}

// stillReferenced reports whether any line mentions fqn or its short name.
func stillReferenced(lines []string, fqn string) bool {
	short := fqn[strings.LastIndex(fqn, `\`)+1:]
	word := regexp.MustCompile(`(^|[^A-Za-z0-9_$])` + regexp.QuoteMeta(short) + `([^A-Za-z0-9_]|$)`)

	for _, text := range lines {
		if strings.Contains(text, fqn) || word.MatchString(text) {
			return true
		}
	}

	return false
}
