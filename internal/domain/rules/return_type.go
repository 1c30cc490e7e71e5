package rules

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// ReturnTypeID is the strategy id of ReturnType.
const ReturnTypeID m.StrategyID = "add-return-type"

var methodNamePattern = regexp.MustCompile(`::(\w+)\(\)`)

// ReturnType appends a return type to a method signature that has none.
type ReturnType struct {
	typ string
}

// NewReturnType creates the rule; an empty type defaults to mixed.
func NewReturnType(typ string) *ReturnType {
	if typ == "" {
		typ = "mixed"
	}

	return &ReturnType{typ: typ}
}

// ID implements Rule.
func (r *ReturnType) ID() m.StrategyID { return ReturnTypeID }

// Description implements Rule.
func (r *ReturnType) Description() string {
	return "append `: " + r.typ + "` to methods without a return type"
}

// Applies implements Rule.
func (r *ReturnType) Applies(d m.Diagnostic, fc FileContext) bool {
	name := methodName(d.Message)
	if name == "" || strings.HasPrefix(name, "__construct") || name == "__destruct" {
		return false
	}

	return d.Line >= 1 && d.Line <= len(fc.Lines)
}

// Edit implements Rule.
func (r *ReturnType) Edit(lines []string, d m.Diagnostic) (Edit, error) {
	name := methodName(d.Message)
	signature := regexp.MustCompile(`\bfunction\s+&?` + regexp.QuoteMeta(name) + `\s*\(`)

	start, ok := findLine(lines, d.Line, signature)
	if !ok {
		return Edit{}, ErrNoMatch
	}

	loc := signature.FindStringIndex(lines[start-1])
	depth := 0

	for line := start; line <= len(lines) && line < start+searchWindow; line++ {
		text := lines[line-1]

		offset := 0
		if line == start {
			offset = loc[1] - 1
		}

		for i := offset; i < len(text); i++ {
			switch text[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return r.closeSignature(lines, start, line, i)
				}
			}
		}
	}

	return Edit{}, ErrNoMatch
}

// closeSignature inserts the return type after the parameter list closing at
// lines[end-1][col].
func (r *ReturnType) closeSignature(lines []string, start, end, col int) (Edit, error) {
	text := lines[end-1]
	rest := strings.TrimLeft(text[col+1:], " \t")

	if strings.HasPrefix(rest, ":") {
		return Edit{}, ErrAlreadyApplied
	}

	if rest == "" || rest == "\r" {
		// The colon may sit on the next line in wrapped signatures.
		if next, ok := lineAt(lines, end+1); ok && strings.HasPrefix(strings.TrimSpace(next), ":") {
			return Edit{}, ErrAlreadyApplied
		}
	}

	replaced := append([]string(nil), lines[start-1:end]...)
	replaced[len(replaced)-1] = text[:col+1] + ": " + r.typ + text[col+1:]

	return Edit{Start: start, End: end + 1, Lines: replaced}, nil
}

func methodName(message string) string {
	match := methodNamePattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}

	return match[1]
}
