// Package diff renders unified diffs of pending rewrites.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Stat counts changed lines.
type Stat struct {
	Added   int
	Deleted int
}

type opKind byte

const (
	opEqual  opKind = ' '
	opDelete opKind = '-'
	opInsert opKind = '+'
)

type lineOp struct {
	kind opKind
	text string
}

// Unified returns a unified diff of oldContent against newContent for path.
// Identical inputs produce an empty string.
func Unified(path, oldContent, newContent string) (string, Stat, error) {
	if oldContent == newContent {
		return "", Stat{}, nil
	}

	fd := &godiff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
		Hunks:    buildHunks(lineOps(oldContent, newContent), DefaultContext),
	}

	out, err := godiff.PrintFileDiff(fd)
	if err != nil {
		return "", Stat{}, fmt.Errorf("print diff for %s: %w", path, err)
	}

	stat := fd.Stat()

	return string(out), Stat{
		Added:   int(stat.Added + stat.Changed),
		Deleted: int(stat.Deleted + stat.Changed),
	}, nil
}

// Parse reads a unified diff back and returns its line statistics.
func Parse(unified string) (Stat, error) {
	fds, err := godiff.ParseMultiFileDiff([]byte(unified))
	if err != nil {
		return Stat{}, fmt.Errorf("parse diff: %w", err)
	}

	var total Stat

	for _, fd := range fds {
		s := fd.Stat()
		total.Added += int(s.Added + s.Changed)
		total.Deleted += int(s.Deleted + s.Changed)
	}

	return total, nil
}

func lineOps(oldContent, newContent string) []lineOp {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lineArray := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	ops := make([]lineOp, 0, len(diffs))

	for _, d := range diffs {
		kind := opEqual

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = opDelete
		case diffmatchpatch.DiffInsert:
			kind = opInsert
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range splitKeepEOL(d.Text) {
			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}

	return ops
}

func splitKeepEOL(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// buildHunks groups changed lines with up to context lines of surroundings,
// merging groups whose context would overlap.
func buildHunks(ops []lineOp, context int) []*godiff.Hunk {
	hunks := make([]*godiff.Hunk, 0)

	oldLine, newLine := make([]int, len(ops)), make([]int, len(ops))
	o, n := 1, 1

	for i, op := range ops {
		oldLine[i], newLine[i] = o, n

		if op.kind != opInsert {
			o++
		}

		if op.kind != opDelete {
			n++
		}
	}

	for i := 0; i < len(ops); {
		if ops[i].kind == opEqual {
			i++
			continue
		}

		start := max(0, i-context)
		end := i

		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}

			run := end
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}

			if run == len(ops) || run-end > 2*context {
				end = min(len(ops), end+context)
				break
			}

			end = run
		}

		hunks = append(hunks, makeHunk(ops[start:end], oldLine[start], newLine[start]))
		i = end
	}

	return hunks
}

func makeHunk(ops []lineOp, oldStart, newStart int) *godiff.Hunk {
	var (
		body               strings.Builder
		oldCount, newCount int
	)

	for _, op := range ops {
		body.WriteByte(byte(op.kind))
		body.WriteString(op.text)

		if !strings.HasSuffix(op.text, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}

		if op.kind != opInsert {
			oldCount++
		}

		if op.kind != opDelete {
			newCount++
		}
	}

	h := &godiff.Hunk{
		OrigStartLine: int32(oldStart),
		OrigLines:     int32(oldCount),
		NewStartLine:  int32(newStart),
		NewLines:      int32(newCount),
		Body:          []byte(body.String()),
	}

	if oldCount == 0 {
		h.OrigStartLine = int32(oldStart - 1)
	}

	if newCount == 0 {
		h.NewStartLine = int32(newStart - 1)
	}

	return h
}
