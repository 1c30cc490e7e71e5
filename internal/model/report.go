package model

import "time"

// Mode selects the run flavor.
type Mode string

const (
	// ModeValidate runs the pipeline without writing.
	ModeValidate Mode = "validate"
	// ModeExecute writes validated change sets.
	ModeExecute Mode = "execute"
	// ModeRollback restores the most recent snapshot.
	ModeRollback Mode = "rollback"
)

// RunState is a state of the run controller.
type RunState string

// Run controller states.
const (
	StateIdle             RunState = "idle"
	StateValidating       RunState = "validating"
	StateValidationFailed RunState = "validation_failed"
	StateValidationPassed RunState = "validation_passed"
	StateExecuting        RunState = "executing"
	StateRollingBack      RunState = "rolling_back"
	StateCompleted        RunState = "completed"
	StateFailed           RunState = "failed"
)

// FileSummary is the report view of a FileChangeSet.
type FileSummary struct {
	Path           Path                `json:"path" yaml:"path"`
	AppliedRuleIDs []string            `json:"appliedRuleIds" yaml:"appliedRuleIds"`
	Unfixed        []UnfixedDiagnostic `json:"unfixed,omitempty" yaml:"unfixed,omitempty"`
	Valid          bool                `json:"valid" yaml:"valid"`
	Written        bool                `json:"written" yaml:"written"`
	Changed        bool                `json:"changed" yaml:"changed"`
	Detail         string              `json:"detail,omitempty" yaml:"detail,omitempty"`
	Diff           string              `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// NeedsAttention reports whether the file still has work left after the run.
func (s FileSummary) NeedsAttention() bool {
	return !s.Valid || len(s.Unfixed) > 0
}

// RunReport aggregates the outcome of one invocation.
type RunReport struct {
	ID               string           `json:"id" yaml:"id"`
	Mode             Mode             `json:"mode" yaml:"mode"`
	State            RunState         `json:"state" yaml:"state"`
	Root             Path             `json:"root" yaml:"root"`
	StartedAt        time.Time        `json:"startedAt" yaml:"startedAt"`
	FinishedAt       time.Time        `json:"finishedAt" yaml:"finishedAt"`
	PerFile          []FileSummary    `json:"perFile" yaml:"perFile"`
	CountsByCategory map[Category]int `json:"countsByCategory" yaml:"countsByCategory"`
	CountsByPriority map[Priority]int `json:"countsByPriority" yaml:"countsByPriority"`
	Errors           []string         `json:"errors" yaml:"errors"`
	Snapshot         *BackupSnapshot  `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
}

// NewRunReport creates an empty report for the given mode.
func NewRunReport(id string, mode Mode, root Path) *RunReport {
	return &RunReport{
		ID:               id,
		Mode:             mode,
		State:            StateIdle,
		Root:             root,
		PerFile:          []FileSummary{},
		CountsByCategory: map[Category]int{},
		CountsByPriority: map[Priority]int{},
		Errors:           []string{},
	}
}

// Changed returns the files whose content was rewritten (or would be, in validate mode).
func (r *RunReport) Changed() []FileSummary {
	var out []FileSummary

	for _, f := range r.PerFile {
		if f.Changed && f.Valid {
			out = append(out, f)
		}
	}

	return out
}

// Unfixed returns the files that still need manual work.
func (r *RunReport) Unfixed() []FileSummary {
	var out []FileSummary

	for _, f := range r.PerFile {
		if f.NeedsAttention() {
			out = append(out, f)
		}
	}

	return out
}
