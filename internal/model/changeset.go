package model

// UnfixedReason explains why a diagnostic was left untouched.
type UnfixedReason string

const (
	// ReasonNoRule means the strategy is unknown or empty.
	ReasonNoRule UnfixedReason = "no_rule"
	// ReasonInapplicable means the rule declined the diagnostic.
	ReasonInapplicable UnfixedReason = "inapplicable"
	// ReasonConflict means the edit overlapped one already applied.
	ReasonConflict UnfixedReason = "conflict"
	// ReasonRuleError means the rule failed or panicked.
	ReasonRuleError UnfixedReason = "rule_error"
)

// UnfixedDiagnostic records a diagnostic that the engine did not fix.
type UnfixedDiagnostic struct {
	Line       int           `json:"line" yaml:"line"`
	Message    string        `json:"message" yaml:"message"`
	StrategyID StrategyID    `json:"strategyId,omitempty" yaml:"strategyId,omitempty"`
	Reason     UnfixedReason `json:"reason" yaml:"reason"`
	Detail     string        `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// FileChangeSet is the in-memory record of one file's rewrite during a run.
type FileChangeSet struct {
	Path             Path
	Original         []byte
	Working          []byte
	AppliedRuleIDs   []string
	Unfixed          []UnfixedDiagnostic
	Diagnostics      []Diagnostic
	Valid            bool
	Written          bool
	ValidationDetail string
}

// Changed reports whether the working buffer differs from the original.
func (cs *FileChangeSet) Changed() bool {
	return string(cs.Original) != string(cs.Working)
}

// Discard drops the working buffer so only the original stays authoritative.
func (cs *FileChangeSet) Discard() {
	cs.Working = append([]byte(nil), cs.Original...)
}

// Summary projects the change set onto its report form.
func (cs *FileChangeSet) Summary() FileSummary {
	return FileSummary{
		Path:           cs.Path,
		AppliedRuleIDs: append([]string(nil), cs.AppliedRuleIDs...),
		Unfixed:        append([]UnfixedDiagnostic(nil), cs.Unfixed...),
		Valid:          cs.Valid,
		Written:        cs.Written,
		Changed:        cs.Changed(),
		Detail:         cs.ValidationDetail,
	}
}
