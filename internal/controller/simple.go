package controller

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/mender/internal/model"
)

// SimpleUI implements UI with plain text tables written to the command output.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, config: newStartConfig()}
}

// Start records the run mode and announces the run.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.config = newStartConfig(options...)
	if s.config.total > 0 {
		s.printf("%s: %d file(s)\n", s.config.mode, s.config.total)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplayFileResult prints one progress line per processed file.
func (s *SimpleUI) DisplayFileResult(summary m.FileSummary) {
	s.printf("  %-8s %s\n", fileStatus(summary, s.config.mode), summary.Path)
}

// DisplayReport prints the run summary tables.
func (s *SimpleUI) DisplayReport(report *m.RunReport) error {
	var b strings.Builder

	b.WriteString("\n" + reportHeading(report) + "\n\n")
	renderReportBody(&b, report)
	s.printf("%s", b.String())

	return nil
}

// DisplayReports lists persisted reports.
func (s *SimpleUI) DisplayReports(reports []m.RunReport) error {
	var b strings.Builder

	renderReportList(&b, reports)
	s.printf("%s", b.String())

	return nil
}

// DisplayRules prints the registered strategies and the classification table.
func (s *SimpleUI) DisplayRules(rules []m.RuleInfo, table []m.ClassRuleInfo) error {
	var b strings.Builder

	renderRules(&b, rules, table)
	s.printf("%s", b.String())

	return nil
}

// DisplayHistory prints the audit history.
func (s *SimpleUI) DisplayHistory(entries []m.AuditEntry) error {
	var b strings.Builder

	renderHistory(&b, entries)
	s.printf("%s", b.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// fileStatus is the one-word outcome of a file in the given mode.
func fileStatus(summary m.FileSummary, mode m.Mode) string {
	switch {
	case !summary.Valid:
		return "invalid"
	case summary.Written:
		return "written"
	case summary.Changed && mode == m.ModeExecute:
		return "unwritten"
	case summary.Changed:
		return "fixable"
	case len(summary.Unfixed) > 0:
		return "unfixed"
	default:
		return "clean"
	}
}
