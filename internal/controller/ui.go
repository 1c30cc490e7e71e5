// Package controller provides the output adapters that present run progress and reports.
package controller

import (
	m "github.com/mouse-blink/mender/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  m.Mode
	total int
}

// WithMode sets the run mode shown in headings.
func WithMode(mode m.Mode) StartOption {
	return func(c *StartConfig) {
		c.mode = mode
	}
}

// WithTotal sets the number of files the run will process.
func WithTotal(total int) StartOption {
	return func(c *StartConfig) {
		c.total = total
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: m.ModeValidate}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines how progress, reports and listings are presented.
// Implementations can use different output methods (simple text, TUI, JSON, YAML).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayFileResult(summary m.FileSummary)
	DisplayReport(report *m.RunReport) error
	DisplayReports(reports []m.RunReport) error
	DisplayRules(rules []m.RuleInfo, table []m.ClassRuleInfo) error
	DisplayHistory(entries []m.AuditEntry) error
}
