package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

func TestValidateCmd_FileAndFilter(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newValidateCmd())
	input := writeInput(t, "phpstan.txt", phpstanOutput)

	mockWorkflow.On("Validate", mock.Anything, mock.MatchedBy(func(args domain.ValidateArgs) bool {
		return args.Diagnostics == phpstanOutput &&
			args.Root == m.Path(".") &&
			args.Parallel == 1 &&
			args.Diff &&
			args.Filter.MinPriority == m.PriorityMedium &&
			len(args.Filter.Categories) == 2 &&
			args.Filter.Categories[0] == "unused_imports" &&
			args.Filter.Categories[1] == "missing_return_type"
	})).Return(reportIn(m.ModeValidate, m.StateValidationPassed), nil)

	cmd.SetArgs([]string{"validate", input,
		"--only-category", "unused_imports",
		"--only-category", "missing_return_type",
		"--min-priority", "MEDIUM",
		"--diff",
	})
	require.NoError(t, cmd.Execute())
}

func TestValidateCmd_Stdin(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newValidateCmd())

	mockWorkflow.On("Validate", mock.Anything, mock.MatchedBy(func(args domain.ValidateArgs) bool {
		return args.Diagnostics == phpstanOutput && args.Parallel == 4
	})).Return(reportIn(m.ModeValidate, m.StateValidationFailed), nil)

	cmd.SetIn(strings.NewReader(phpstanOutput))
	cmd.SetArgs([]string{"validate", "-", "--parallel", "4"})
	require.NoError(t, cmd.Execute())
}

func TestValidateCmd_UnknownPriority(t *testing.T) {
	cmd, _ := newTestCmd(t, newValidateCmd())

	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"validate", "--min-priority", "URGENT"})

	assert.ErrorContains(t, cmd.Execute(), `unknown priority "URGENT"`)
}

func TestValidateCmd_MissingInputFile(t *testing.T) {
	cmd, _ := newTestCmd(t, newValidateCmd())

	cmd.SetArgs([]string{"validate", "/nonexistent/phpstan.txt"})

	assert.ErrorContains(t, cmd.Execute(), "read analyzer output")
}

func TestExecuteCmd_NoBackup(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newExecuteCmd())
	input := writeInput(t, "phpstan.txt", phpstanOutput)

	mockWorkflow.On("Execute", mock.Anything, mock.MatchedBy(func(args domain.ExecuteArgs) bool {
		return !args.Backup && args.Diagnostics == phpstanOutput && args.Parallel == 2
	})).Return(reportIn(m.ModeExecute, m.StateCompleted), nil)

	cmd.SetArgs([]string{"execute", input, "--backup=false", "-p", "2"})
	require.NoError(t, cmd.Execute())
}

func TestExecuteCmd_UnfixedFilesExitNonZero(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newExecuteCmd())

	report := reportIn(m.ModeExecute, m.StateCompleted)
	report.PerFile = append(report.PerFile, m.FileSummary{
		Path:    "src/Invoice.php",
		Valid:   true,
		Unfixed: []m.UnfixedDiagnostic{{Line: 12, Reason: m.ReasonNoRule}},
	})

	mockWorkflow.On("Execute", mock.Anything, mock.MatchedBy(func(args domain.ExecuteArgs) bool {
		return args.Backup
	})).Return(report, nil)

	cmd.SetIn(strings.NewReader(phpstanOutput))
	cmd.SetArgs([]string{"execute"})

	var exitErr *ExitError
	require.ErrorAs(t, cmd.Execute(), &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestExecuteCmd_WorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newExecuteCmd())

	mockWorkflow.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"execute"})

	assert.EqualError(t, cmd.Execute(), "boom")
}

func TestRenameCmd_MapFile(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newRenameCmd())
	symbols := writeInput(t, "symbols.yaml", "App\\Old\\Thing: App\\New\\Thing\n")

	mockWorkflow.On("Rename", mock.Anything, mock.MatchedBy(func(args domain.RenameArgs) bool {
		return len(args.Entries) == 1 &&
			args.Entries[0] == m.SymbolEntry{Old: `App\Old\Thing`, New: `App\New\Thing`} &&
			len(args.Extensions) == 2 &&
			args.Extensions[0] == ".php" &&
			args.Extensions[1] == ".phtml" &&
			args.Root == "."
	})).Return(reportIn(m.ModeExecute, m.StateCompleted), nil)

	cmd.SetArgs([]string{"rename", "--map", symbols, "--ext", ".php,.phtml"})
	require.NoError(t, cmd.Execute())
}

func TestRenameCmd_ConfigEntriesAndDefaults(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newRenameCmd())
	symbols := writeInput(t, "symbols.json", `{"App\\A": "App\\B"}`)
	configFile := writeInput(t, "mender.yaml", "symbols:\n  file: "+symbols+"\n  entries:\n    - old: App\\C\n      new: App\\D\n")

	mockWorkflow.On("Rename", mock.Anything, mock.MatchedBy(func(args domain.RenameArgs) bool {
		return len(args.Entries) == 2 &&
			args.Entries[0].Old == `App\A` &&
			args.Entries[1].Old == `App\C` &&
			len(args.Extensions) == 1 && args.Extensions[0] == ".php"
	})).Return(reportIn(m.ModeExecute, m.StateCompleted), nil)

	cmd.SetArgs([]string{"--config", configFile, "rename"})
	require.NoError(t, cmd.Execute())
}

func TestRenameCmd_NoMap(t *testing.T) {
	cmd, _ := newTestCmd(t, newRenameCmd())

	cmd.SetArgs([]string{"rename"})

	assert.ErrorContains(t, cmd.Execute(), "no symbol map")
}

func TestRollbackCmd(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newRollbackCmd())

	failed := reportIn(m.ModeRollback, m.StateFailed)
	failed.Errors = append(failed.Errors, "no snapshot found")

	mockWorkflow.On("Rollback", mock.Anything, domain.RollbackArgs{
		Root:     ".",
		Snapshot: "20260301T120000.000000000Z",
	}).Return(failed, nil)

	cmd.SetArgs([]string{"rollback", "--snapshot", "20260301T120000.000000000Z"})

	var exitErr *ExitError
	require.ErrorAs(t, cmd.Execute(), &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestRulesCmd(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newRulesCmd())

	mockWorkflow.On("Rules").Return(nil)

	cmd.SetArgs([]string{"rules"})
	require.NoError(t, cmd.Execute())
}

func TestReportCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.ReportArgs
	}{
		{
			name: "latest",
			args: []string{"report"},
			want: domain.ReportArgs{Reports: ".mender/reports", Limit: 20},
		},
		{
			name: "by id",
			args: []string{"report", "3f9c"},
			want: domain.ReportArgs{Reports: ".mender/reports", ID: "3f9c", Limit: 20},
		},
		{
			name: "list",
			args: []string{"--reports", "/tmp/reports", "report", "--list"},
			want: domain.ReportArgs{Reports: "/tmp/reports", List: true, Limit: 20},
		},
		{
			name: "history",
			args: []string{"report", "--history", "-n", "5"},
			want: domain.ReportArgs{Reports: ".mender/reports", History: true, Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow := newTestCmd(t, newReportCmd())

			mockWorkflow.On("Report", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}
