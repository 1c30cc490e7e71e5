package domain

import (
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// Analyzer output shapes understood by the parser. Anything else is skipped.
var (
	// ------ -----------------------------
	rulerPattern = regexp.MustCompile(`^\s*-{3,}(?:\s+-{3,})*\s*$`)
	// Line   app/Foo.php
	tableHeaderPattern = regexp.MustCompile(`^\s*Line\s+(\S.*?)\s*$`)
	// FILE: app/Foo.php
	fileHeaderPattern = regexp.MustCompile(`^\s*FILE:\s+(\S.*?)\s*$`)
	// app/Foo.php:10: message  or  app/Foo.php:10:4: message
	compactPattern = regexp.MustCompile(`^([^\s:]+\.[A-Za-z][A-Za-z0-9]*):(\d+):(?:\d+:)?\s*(\S.*?)\s*$`)
	// 10     message
	entryPattern = regexp.MustCompile(`^\s*(\d+)\s+(\S.*?)\s*$`)
	// app/Foo.php, bin/console, app/My Service.php
	pathHeaderPattern = regexp.MustCompile(`^(\S.*?)\s*$`)
	// a trailing file extension
	extensionPattern = regexp.MustCompile(`\.[A-Za-z][A-Za-z0-9]*$`)
)

// DiagnosticParser turns raw analyzer output into diagnostics.
type DiagnosticParser interface {
	Parse(raw string) []m.Diagnostic
	ParseDetailed(raw string) ParseResult
}

// ParseResult carries parsed diagnostics and the 1-based input lines that
// looked like diagnostics but could not be attached to a file.
type ParseResult struct {
	Diagnostics []m.Diagnostic
	Skipped     []int
}

type diagnosticParser struct{}

// NewDiagnosticParser creates a DiagnosticParser.
func NewDiagnosticParser() DiagnosticParser {
	return &diagnosticParser{}
}

// Parse returns every diagnostic found in raw. Empty input yields an empty slice.
func (p *diagnosticParser) Parse(raw string) []m.Diagnostic {
	return p.ParseDetailed(raw).Diagnostics
}

func (p *diagnosticParser) ParseDetailed(raw string) ParseResult {
	result := ParseResult{Diagnostics: []m.Diagnostic{}}

	var current m.Path

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || rulerPattern.MatchString(line) {
			continue
		}

		if match := tableHeaderPattern.FindStringSubmatch(line); match != nil {
			current = m.Path(match[1])
			continue
		}

		if match := fileHeaderPattern.FindStringSubmatch(line); match != nil {
			current = m.Path(match[1])
			continue
		}

		if match := compactPattern.FindStringSubmatch(line); match != nil {
			if d, ok := newDiagnostic(m.Path(match[1]), match[2], match[3]); ok {
				result.Diagnostics = append(result.Diagnostics, d)
			}

			continue
		}

		if match := entryPattern.FindStringSubmatch(line); match != nil {
			d, ok := newDiagnostic(current, match[1], match[2])
			if !ok {
				result.Skipped = append(result.Skipped, i+1)
				continue
			}

			result.Diagnostics = append(result.Diagnostics, d)

			continue
		}

		// Any other line at column zero closes the current block, so rows
		// after an unrecognized header are skipped instead of misattributed.
		if match := pathHeaderPattern.FindStringSubmatch(line); match != nil {
			current = ""
			if looksLikePath(match[1]) {
				current = m.Path(match[1])
			}
		}
	}

	return result
}

// looksLikePath accepts headers with a directory separator or a file extension.
func looksLikePath(header string) bool {
	return strings.ContainsAny(header, `/\`) || extensionPattern.MatchString(header)
}

func newDiagnostic(file m.Path, line, message string) (m.Diagnostic, bool) {
	if file == "" {
		return m.Diagnostic{}, false
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 {
		return m.Diagnostic{}, false
	}

	return m.Diagnostic{
		File:     file,
		Line:     n,
		Message:  message,
		Category: m.CategoryUnknown,
		Priority: m.PriorityUnknown,
	}, true
}
