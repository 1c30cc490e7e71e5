package rules

import (
	"regexp"
	"strings"
)

// searchWindow bounds the localized search that starts at a diagnostic line.
const searchWindow = 8

// Splice applies e to lines and returns the new slice. Out-of-range edits
// return lines unchanged.
func Splice(lines []string, e Edit) []string {
	start, end := e.Start-1, e.End-1
	if e.IsInsertion() {
		end = start
	}

	if start < 0 || end < start || end > len(lines) {
		return lines
	}

	spliced := make([]string, 0, len(lines)-(end-start)+len(e.Lines))
	spliced = append(spliced, lines[:start]...)
	spliced = append(spliced, e.Lines...)
	spliced = append(spliced, lines[end:]...)

	return spliced
}

// SplitLines splits content so that JoinLines restores it byte for byte.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func lineAt(lines []string, line int) (string, bool) {
	if line < 1 || line > len(lines) {
		return "", false
	}

	return lines[line-1], true
}

// findLine returns the first line at or after from (within the search window)
// matching re.
func findLine(lines []string, from int, re *regexp.Regexp) (int, bool) {
	for line := from; line <= len(lines) && line < from+searchWindow; line++ {
		if line < 1 {
			continue
		}

		if re.MatchString(lines[line-1]) {
			return line, true
		}
	}

	return 0, false
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// carriageReturn returns "\r" when the line uses CRLF endings.
func carriageReturn(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}

	return ""
}

// insertAbove builds an insertion of text above line, matching its indentation
// and line ending. It returns ErrAlreadyApplied when the previous line already
// carries text.
func insertAbove(lines []string, line int, text string) (Edit, error) {
	target, ok := lineAt(lines, line)
	if !ok {
		return Edit{}, ErrNoMatch
	}

	if strings.TrimSpace(target) == text {
		return Edit{}, ErrAlreadyApplied
	}

	if prev, ok := lineAt(lines, line-1); ok && strings.TrimSpace(prev) == text {
		return Edit{}, ErrAlreadyApplied
	}

	return Edit{
		Start: line,
		End:   line,
		Lines: []string{indentOf(target) + text + carriageReturn(target)},
	}, nil
}
