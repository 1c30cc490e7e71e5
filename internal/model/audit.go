package model

import "time"

// AuditEntry is one row of run history.
type AuditEntry struct {
	RunID      string    `json:"runId" yaml:"runId"`
	Mode       Mode      `json:"mode" yaml:"mode"`
	State      RunState  `json:"state" yaml:"state"`
	Root       Path      `json:"root" yaml:"root"`
	StartedAt  time.Time `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time `json:"finishedAt" yaml:"finishedAt"`
	Changed    int       `json:"changed" yaml:"changed"`
	Unfixed    int       `json:"unfixed" yaml:"unfixed"`
	Errors     int       `json:"errors" yaml:"errors"`
	Snapshot   string    `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
}
