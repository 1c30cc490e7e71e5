package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/mender/internal/model"
)

func newBufferedCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	return cmd, &buf
}

func assertContainsAll(t *testing.T, output string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func sampleReport() *m.RunReport {
	report := m.NewRunReport("3f9c2a7b1d", m.ModeExecute, "/srv/app")
	report.State = m.StateCompleted
	report.StartedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report.FinishedAt = report.StartedAt.Add(2 * time.Second)
	report.Snapshot = &m.BackupSnapshot{Timestamp: "20260301T120000.000000000Z"}
	report.CountsByCategory["unused_imports"] = 2
	report.CountsByCategory["unused_methods"] = 1
	report.CountsByPriority[m.PriorityHigh] = 2
	report.CountsByPriority[m.PriorityLow] = 1
	report.PerFile = []m.FileSummary{
		{
			Path:           "src/A.php",
			AppliedRuleIDs: []string{"remove-unused-use", "return-type"},
			Valid:          true,
			Written:        true,
			Changed:        true,
			Diff:           "--- a/src/A.php\n+++ b/src/A.php\n@@ -1 +1 @@\n-old\n+new\n",
		},
		{
			Path:  "src/B.php",
			Valid: true,
			Unfixed: []m.UnfixedDiagnostic{
				{Line: 12, Message: "Method B::legacy() is unused.", Reason: m.ReasonNoRule},
			},
		},
	}
	report.Errors = []string{"src/C.php: permission denied"}

	return report
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	if err := ui.DisplayReport(sampleReport()); err != nil {
		t.Fatalf("DisplayReport() error = %v", err)
	}

	assertContainsAll(t, buf.String(),
		"execute run 3f9c2a7b: completed (snapshot 20260301T120000.000000000Z)",
		"PATH",
		"src/A.php",
		"TOTAL FILES 2",
		"unused_imports",
		"HIGH",
		"Method B::legacy() is unused.",
		"no_rule",
		"error: src/C.php: permission denied",
		"+new",
	)
}

func TestSimpleUI_Progress(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	if err := ui.Start(WithMode(m.ModeExecute), WithTotal(3)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayFileResult(m.FileSummary{Path: "a.php", Valid: true, Changed: true, Written: true})
	ui.DisplayFileResult(m.FileSummary{Path: "b.php", Valid: true, Changed: true})
	ui.DisplayFileResult(m.FileSummary{Path: "c.php", Valid: false, Changed: true})
	ui.Close()

	assertContainsAll(t, buf.String(),
		"execute: 3 file(s)",
		"written  a.php",
		"unwritten b.php",
		"invalid  c.php",
	)
}

func TestSimpleUI_EmptyListings(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	if err := ui.DisplayReports(nil); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	if err := ui.DisplayHistory(nil); err != nil {
		t.Fatalf("DisplayHistory() error = %v", err)
	}

	assertContainsAll(t, buf.String(), "No reports found.", "No runs recorded.")
}

func TestSimpleUI_DisplayRulesAndHistory(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	rules := []m.RuleInfo{{ID: "return-type", Description: "adds a return type"}}
	table := []m.ClassRuleInfo{
		{Pattern: "^Method .+ is unused", Category: "unused_methods", Priority: m.PriorityLow},
	}

	if err := ui.DisplayRules(rules, table); err != nil {
		t.Fatalf("DisplayRules() error = %v", err)
	}

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []m.AuditEntry{{
		RunID:      "abcdef0123456789",
		Mode:       m.ModeValidate,
		State:      m.StateValidationPassed,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Changed:    4,
	}}

	if err := ui.DisplayHistory(entries); err != nil {
		t.Fatalf("DisplayHistory() error = %v", err)
	}

	assertContainsAll(t, buf.String(),
		"return-type",
		"TOTAL STRATEGIES 1",
		"unused_methods",
		"abcdef01",
		"validation_passed",
		"2026-03-01 12:00:00",
		"1.5s",
	)
}

func TestFileStatus(t *testing.T) {
	tests := []struct {
		summary m.FileSummary
		mode    m.Mode
		want    string
	}{
		{m.FileSummary{Valid: false}, m.ModeExecute, "invalid"},
		{m.FileSummary{Valid: true, Written: true}, m.ModeExecute, "written"},
		{m.FileSummary{Valid: true, Changed: true}, m.ModeExecute, "unwritten"},
		{m.FileSummary{Valid: true, Changed: true}, m.ModeValidate, "fixable"},
		{m.FileSummary{Valid: true, Unfixed: []m.UnfixedDiagnostic{{Line: 1}}}, m.ModeValidate, "unfixed"},
		{m.FileSummary{Valid: true}, m.ModeValidate, "clean"},
	}

	for _, tt := range tests {
		if got := fileStatus(tt.summary, tt.mode); got != tt.want {
			t.Errorf("fileStatus(%+v, %s) = %q, want %q", tt.summary, tt.mode, got, tt.want)
		}
	}
}
