package controller

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	m "github.com/mouse-blink/mender/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func renderFiles(w io.Writer, report *m.RunReport) {
	if len(report.PerFile) == 0 {
		_, _ = fmt.Fprintln(w, "No files processed.")
		return
	}

	table := newTable(w, "Path", "Applied", "Unfixed", "Valid", "Written")

	for _, f := range report.PerFile {
		table.Append([]string{
			string(f.Path),
			fmt.Sprintf("%d", len(f.AppliedRuleIDs)),
			fmt.Sprintf("%d", len(f.Unfixed)),
			yesNo(f.Valid),
			yesNo(f.Written),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.PerFile)),
		fmt.Sprintf("%d", countApplied(report)),
		fmt.Sprintf("%d", countUnfixed(report)),
		"",
		"",
	})
	table.Render()
}

func countApplied(report *m.RunReport) int {
	total := 0
	for _, f := range report.PerFile {
		total += len(f.AppliedRuleIDs)
	}

	return total
}

func countUnfixed(report *m.RunReport) int {
	total := 0
	for _, f := range report.PerFile {
		total += len(f.Unfixed)
	}

	return total
}

func renderCounts(w io.Writer, report *m.RunReport) {
	if len(report.CountsByCategory) == 0 && len(report.CountsByPriority) == 0 {
		return
	}

	categories := make([]string, 0, len(report.CountsByCategory))
	for c := range report.CountsByCategory {
		categories = append(categories, string(c))
	}

	sort.Strings(categories)

	table := newTable(w, "Category", "Diagnostics")
	for _, c := range categories {
		table.Append([]string{c, fmt.Sprintf("%d", report.CountsByCategory[m.Category(c)])})
	}

	table.Render()

	_, _ = fmt.Fprintln(w)

	table = newTable(w, "Priority", "Diagnostics")

	for _, p := range m.Priorities {
		if n, ok := report.CountsByPriority[p]; ok {
			table.Append([]string{string(p), fmt.Sprintf("%d", n)})
		}
	}

	table.Render()
}

func renderUnfixed(w io.Writer, report *m.RunReport) {
	attention := report.Unfixed()
	if len(attention) == 0 {
		return
	}

	table := newTable(w, "Path", "Line", "Reason", "Message")

	for _, f := range attention {
		if !f.Valid {
			table.Append([]string{string(f.Path), "-", "invalid", "needs manual fix: " + f.Detail})
		}

		for _, u := range f.Unfixed {
			table.Append([]string{string(f.Path), fmt.Sprintf("%d", u.Line), string(u.Reason), u.Message})
		}
	}

	table.Render()
}

func renderErrors(w io.Writer, report *m.RunReport) {
	for _, e := range report.Errors {
		_, _ = fmt.Fprintf(w, "error: %s\n", e)
	}
}

func renderDiffs(w io.Writer, report *m.RunReport) {
	for _, f := range report.PerFile {
		if f.Diff == "" {
			continue
		}

		_, _ = fmt.Fprint(w, f.Diff)
		if !strings.HasSuffix(f.Diff, "\n") {
			_, _ = fmt.Fprintln(w)
		}
	}
}

func reportHeading(report *m.RunReport) string {
	heading := fmt.Sprintf("%s run %s: %s", report.Mode, shortID(report.ID), report.State)
	if report.Snapshot != nil {
		heading += fmt.Sprintf(" (snapshot %s)", report.Snapshot.Timestamp)
	}

	return heading
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

func renderReportBody(w io.Writer, report *m.RunReport) {
	renderFiles(w, report)
	_, _ = fmt.Fprintln(w)
	renderCounts(w, report)

	if len(report.Unfixed()) > 0 {
		_, _ = fmt.Fprintln(w)
		renderUnfixed(w, report)
	}

	if len(report.Errors) > 0 {
		_, _ = fmt.Fprintln(w)
		renderErrors(w, report)
	}

	renderDiffs(w, report)
}

func renderRules(w io.Writer, rules []m.RuleInfo, classTable []m.ClassRuleInfo) {
	table := newTable(w, "Strategy", "Description")
	for _, r := range rules {
		table.Append([]string{string(r.ID), r.Description})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Strategies %d", len(rules)), ""})
	table.Render()

	_, _ = fmt.Fprintln(w)

	table = newTable(w, "#", "Pattern", "Category", "Priority", "Strategy")
	for i, r := range classTable {
		strategy := string(r.Strategy)
		if strategy == "" {
			strategy = "-"
		}

		table.Append([]string{fmt.Sprintf("%d", i+1), r.Pattern, string(r.Category), string(r.Priority), strategy})
	}

	table.Render()
}

func renderReportList(w io.Writer, reports []m.RunReport) {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(w, "No reports found.")
		return
	}

	table := newTable(w, "ID", "Mode", "State", "Started", "Changed", "Unfixed")
	for i := range reports {
		r := &reports[i]
		table.Append([]string{
			shortID(r.ID),
			string(r.Mode),
			string(r.State),
			formatTime(r.StartedAt),
			fmt.Sprintf("%d", len(r.Changed())),
			fmt.Sprintf("%d", len(r.Unfixed())),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Reports %d", len(reports)), "", "", "", "", ""})
	table.Render()
}

func renderHistory(w io.Writer, entries []m.AuditEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No runs recorded.")
		return
	}

	table := newTable(w, "Run", "Mode", "State", "Started", "Duration", "Changed", "Unfixed", "Errors", "Snapshot")
	for _, e := range entries {
		table.Append([]string{
			shortID(e.RunID),
			string(e.Mode),
			string(e.State),
			formatTime(e.StartedAt),
			e.FinishedAt.Sub(e.StartedAt).Round(time.Millisecond).String(),
			fmt.Sprintf("%d", e.Changed),
			fmt.Sprintf("%d", e.Unfixed),
			fmt.Sprintf("%d", e.Errors),
			e.Snapshot,
		})
	}

	table.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.UTC().Format(timeLayout)
}
