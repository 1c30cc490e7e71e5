package controller

import (
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/mender/internal/model"
)

// TUI implements UI using Bubble Tea for live progress and lipgloss headings
// for the final tables.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress view.
func (t *TUI) Start(options ...StartOption) error {
	return t.startWithModel(newRunModel(newStartConfig(options...)))
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(nil))
	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	t.program = program
	t.done = done

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// Wait blocks until the progress view has exited.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close stops the progress view and waits for it to exit.
func (t *TUI) Close() {
	t.send(finishMsg{})
	t.Wait()

	t.mu.Lock()
	t.program = nil
	t.done = nil
	t.mu.Unlock()
}

// DisplayFileResult advances the progress view.
func (t *TUI) DisplayFileResult(summary m.FileSummary) {
	t.send(fileDoneMsg{summary: summary})
}

// DisplayReport renders the final summary below a styled heading.
func (t *TUI) DisplayReport(report *m.RunReport) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render(reportHeading(report)) + "\n\n")
	renderReportBody(&b, report)
	_, _ = fmt.Fprint(t.output, b.String())

	return nil
}

// DisplayReports lists persisted reports.
func (t *TUI) DisplayReports(reports []m.RunReport) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Reports") + "\n\n")
	renderReportList(&b, reports)
	_, _ = fmt.Fprint(t.output, b.String())

	return nil
}

// DisplayRules prints the registered strategies and the classification table.
func (t *TUI) DisplayRules(rules []m.RuleInfo, table []m.ClassRuleInfo) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Strategies") + "\n\n")
	renderRules(&b, rules, table)
	_, _ = fmt.Fprint(t.output, b.String())

	return nil
}

// DisplayHistory prints the audit history.
func (t *TUI) DisplayHistory(entries []m.AuditEntry) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("History") + "\n\n")
	renderHistory(&b, entries)
	_, _ = fmt.Fprint(t.output, b.String())

	return nil
}
