package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// Engine applies rules to the content of a single file. It never touches the
// filesystem.
type Engine interface {
	// Apply fixes the diagnostics of one file.
	Apply(path m.Path, content []byte, diags []m.Diagnostic) m.FileChangeSet
	// Rewrite runs whole-file rewriters in order.
	Rewrite(path m.Path, content []byte, rewriters ...rules.Rewriter) m.FileChangeSet
}

type engine struct {
	registry *Registry
}

// NewEngine creates an Engine backed by registry.
func NewEngine(registry *Registry) Engine {
	return &engine{registry: registry}
}

// Apply processes diagnostics bottom-up so that line insertions never shift
// the lines of diagnostics still waiting to be processed. An edit that
// reaches into a region claimed by an earlier edit is recorded as a conflict
// and skipped.
func (e *engine) Apply(path m.Path, content []byte, diags []m.Diagnostic) m.FileChangeSet {
	cs := m.FileChangeSet{
		Path:           path,
		Original:       content,
		AppliedRuleIDs: []string{},
		Diagnostics:    diags,
	}

	lines := rules.SplitLines(string(content))
	ignores := buildIgnoreIndex(lines)
	lowestClaimed := math.MaxInt

	for _, d := range orderForApply(diags) {
		unfixed := m.UnfixedDiagnostic{Line: d.Line, Message: d.Message, StrategyID: d.StrategyID}

		rule, ok := e.registry.Lookup(d.StrategyID)
		if d.StrategyID == "" || !ok {
			unfixed.Reason = m.ReasonNoRule
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		if ignores.ignores(d.Line, rule.ID()) {
			unfixed.Reason = m.ReasonInapplicable
			unfixed.Detail = "suppressed by mender:ignore"
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		if !rule.Applies(d, rules.FileContext{Path: path, Lines: lines}) {
			unfixed.Reason = m.ReasonInapplicable
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		edit, err := safeEdit(rule, lines, d)

		switch {
		case errors.Is(err, rules.ErrAlreadyApplied):
			continue
		case errors.Is(err, rules.ErrNoMatch):
			unfixed.Reason = m.ReasonInapplicable
			unfixed.Detail = err.Error()
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		case err != nil:
			unfixed.Reason = m.ReasonRuleError
			unfixed.Detail = err.Error()
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		if err := checkBounds(edit, len(lines)); err != nil {
			unfixed.Reason = m.ReasonRuleError
			unfixed.Detail = err.Error()
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		first, last := edit.Span()
		if last >= lowestClaimed {
			unfixed.Reason = m.ReasonConflict
			unfixed.Detail = fmt.Sprintf("lines %d-%d overlap an edit already applied at line %d", first, last, lowestClaimed)
			cs.Unfixed = append(cs.Unfixed, unfixed)

			continue
		}

		lines = rules.Splice(lines, edit)
		lowestClaimed = first
		cs.AppliedRuleIDs = append(cs.AppliedRuleIDs, string(rule.ID()))
	}

	cs.Working = []byte(rules.JoinLines(lines))
	sortUnfixed(cs.Unfixed)

	return cs
}

func (e *engine) Rewrite(path m.Path, content []byte, rewriters ...rules.Rewriter) m.FileChangeSet {
	cs := m.FileChangeSet{
		Path:           path,
		Original:       content,
		AppliedRuleIDs: []string{},
	}

	working := string(content)

	for _, rw := range rewriters {
		rewritten, hits, err := rw.Rewrite(working)
		if err != nil {
			cs.Unfixed = append(cs.Unfixed, m.UnfixedDiagnostic{
				StrategyID: rw.ID(),
				Reason:     m.ReasonRuleError,
				Detail:     err.Error(),
			})

			continue
		}

		if hits == 0 || rewritten == working {
			continue
		}

		working = rewritten
		cs.AppliedRuleIDs = append(cs.AppliedRuleIDs, string(rw.ID()))
	}

	if working == string(content) {
		cs.Working = content
	} else {
		cs.Working = []byte(working)
	}

	return cs
}

// orderForApply dedupes diagnostics by identity and sorts them by descending
// line. Ties are broken by message and strategy so the order never depends on
// the input order.
func orderForApply(diags []m.Diagnostic) []m.Diagnostic {
	seen := make(map[m.DiagnosticKey]struct{}, len(diags))
	ordered := make([]m.Diagnostic, 0, len(diags))

	for _, d := range diags {
		if _, dup := seen[d.Key()]; dup {
			continue
		}

		seen[d.Key()] = struct{}{}
		ordered = append(ordered, d)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Line != b.Line {
			return a.Line > b.Line
		}

		if a.Message != b.Message {
			return a.Message < b.Message
		}

		return a.StrategyID < b.StrategyID
	})

	return ordered
}

func sortUnfixed(unfixed []m.UnfixedDiagnostic) {
	sort.SliceStable(unfixed, func(i, j int) bool {
		if unfixed[i].Line != unfixed[j].Line {
			return unfixed[i].Line < unfixed[j].Line
		}

		return unfixed[i].Message < unfixed[j].Message
	})
}

// safeEdit turns a panicking rule into an error.
func safeEdit(rule rules.Rule, lines []string, d m.Diagnostic) (edit rules.Edit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s panicked: %v", rule.ID(), r)
		}
	}()

	return rule.Edit(lines, d)
}

func checkBounds(edit rules.Edit, lineCount int) error {
	if edit.Start < 1 || edit.Start > lineCount+1 {
		return fmt.Errorf("edit start %d outside file of %d lines", edit.Start, lineCount)
	}

	if !edit.IsInsertion() && edit.End > lineCount+1 {
		return fmt.Errorf("edit end %d outside file of %d lines", edit.End, lineCount)
	}

	return nil
}
