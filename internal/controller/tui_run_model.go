package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/mender/internal/model"
)

const recentResults = 6

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusColors = map[string]lipgloss.Color{
		"written":   lipgloss.Color("2"),
		"fixable":   lipgloss.Color("2"),
		"clean":     lipgloss.Color("8"),
		"unfixed":   lipgloss.Color("11"),
		"unwritten": lipgloss.Color("1"),
		"invalid":   lipgloss.Color("1"),
	}
)

func statusStyle(status string) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("8")
	}

	return lipgloss.NewStyle().Foreground(color).Bold(true).Width(10)
}

// runModel shows a spinner, a progress bar and the latest file outcomes.
type runModel struct {
	spinner  spinner.Model
	progress progress.Model
	mode     m.Mode
	total    int
	done     int
	recent   []string
	finished bool
}

func newRunModel(cfg StartConfig) runModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return runModel{
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		mode:     cfg.mode,
		total:    cfg.total,
	}
}

func (r runModel) Init() tea.Cmd {
	return r.spinner.Tick
}

func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.finished = true
			return r, tea.Quit
		}
	case tea.WindowSizeMsg:
		r.progress.Width = max(10, min(60, msg.Width-20))
	case fileDoneMsg:
		r.done++
		status := fileStatus(msg.summary, r.mode)
		r.recent = append(r.recent, fmt.Sprintf("%s %s",
			statusStyle(status).Render(status), pathStyle.Render(string(msg.summary.Path))))

		if len(r.recent) > recentResults {
			r.recent = r.recent[len(r.recent)-recentResults:]
		}
	case finishMsg:
		r.finished = true
		return r, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)

		return r, cmd
	}

	return r, nil
}

func (r runModel) percent() float64 {
	if r.total <= 0 {
		return 0
	}

	return float64(r.done) / float64(r.total)
}

func (r runModel) View() string {
	if r.finished {
		return ""
	}

	var b strings.Builder

	b.WriteString(headingStyle.Render(fmt.Sprintf("mender %s", r.mode)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s %s\n\n",
		r.spinner.View(),
		r.progress.ViewAs(r.percent()),
		mutedStyle.Render(fmt.Sprintf("%d/%d files", r.done, r.total))))

	for _, line := range r.recent {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}
