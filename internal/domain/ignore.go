package domain

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// directivePattern finds `mender:ignore [ids]` inside //, # or /* */ comments.
var directivePattern = regexp.MustCompile(`(?://|#|/\*)\s*mender:ignore\b([^\n]*)`)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(id m.StrategyID) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[strings.ToLower(string(id))]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective parses the text following `mender:ignore`.
// An empty list ignores every rule.
func parseIgnoreDirective(rest string) ignoreRule {
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "*/"))
	if rest == "" {
		return ignoreRule{all: true}
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		return ignoreRule{all: true}
	}

	return rule
}

type ignoreIndex struct {
	file ignoreRule
	line map[int]ignoreRule
}

func (ix ignoreIndex) ignores(line int, id m.StrategyID) bool {
	return ix.file.ignores(id) || ix.line[line].ignores(id)
}

// buildIgnoreIndex scans lines for directives. A directive before the first
// code line applies to the whole file; a directive alone on a line applies to
// the next line; a trailing directive applies to its own line.
func buildIgnoreIndex(lines []string) ignoreIndex {
	ix := ignoreIndex{line: make(map[int]ignoreRule)}
	inPreamble := true

	for i, text := range lines {
		lineNo := i + 1
		loc := directivePattern.FindStringSubmatchIndex(text)

		if loc == nil {
			if inPreamble && !isPreambleLine(text) {
				inPreamble = false
			}

			continue
		}

		rule := parseIgnoreDirective(text[loc[2]:loc[3]])
		leading := strings.TrimSpace(text[:loc[0]]) == ""

		switch {
		case leading && inPreamble:
			mergeIgnoreRule(&ix.file, rule)
		case leading:
			target := ix.line[lineNo+1]
			mergeIgnoreRule(&target, rule)
			ix.line[lineNo+1] = target
		default:
			inPreamble = false
			target := ix.line[lineNo]
			mergeIgnoreRule(&target, rule)
			ix.line[lineNo] = target
		}
	}

	return ix
}

func isPreambleLine(text string) bool {
	s := strings.TrimSpace(text)

	return s == "" || s == "<?php" || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "#") ||
		strings.HasPrefix(s, "/*") || strings.HasPrefix(s, "*") || strings.HasPrefix(s, "declare(")
}
