package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"

	m "github.com/mouse-blink/mender/internal/model"
)

// Verdict is the outcome of a syntax check.
type Verdict struct {
	Valid  bool
	Detail string
}

// SyntaxValidator checks rewritten content before it may be written.
type SyntaxValidator interface {
	Validate(ctx context.Context, path m.Path, content []byte) (Verdict, error)
}

// ErrUnsupportedLanguage is returned for a tree-sitter language with no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

const maxReportedSyntaxErrors = 5

// TreeSitterValidator parses content in-process and rejects any tree that
// contains ERROR or MISSING nodes.
type TreeSitterValidator struct {
	language string
	grammar  *sitter.Language
}

// NewTreeSitterValidator returns a validator for the named grammar.
func NewTreeSitterValidator(language string) (*TreeSitterValidator, error) {
	grammar := grammarFor(language)
	if grammar == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	return &TreeSitterValidator{language: language, grammar: grammar}, nil
}

func grammarFor(language string) *sitter.Language {
	switch strings.ToLower(language) {
	case "php", "":
		return php.GetLanguage()
	case "go":
		return golang.GetLanguage()
	case "python":
		return python.GetLanguage()
	case "javascript":
		return javascript.GetLanguage()
	default:
		return nil
	}
}

// Validate parses content and reports the first few syntax errors.
func (v *TreeSitterValidator) Validate(ctx context.Context, _ m.Path, content []byte) (Verdict, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(v.grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return Verdict{}, fmt.Errorf("parse %s: %w", v.language, err)
	}
	defer tree.Close()

	problems := make([]string, 0)
	collectSyntaxErrors(tree.RootNode(), &problems, 0)

	if len(problems) == 0 {
		return Verdict{Valid: true}, nil
	}

	return Verdict{Valid: false, Detail: strings.Join(problems, "; ")}, nil
}

func collectSyntaxErrors(node *sitter.Node, problems *[]string, depth int) {
	if node == nil || depth > 1000 || len(*problems) >= maxReportedSyntaxErrors {
		return
	}

	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()

		kind := "syntax error"
		if node.IsMissing() {
			kind = "missing " + node.Type()
		}

		*problems = append(*problems, fmt.Sprintf("line %d col %d: %s", point.Row+1, point.Column+1, kind))
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectSyntaxErrors(node.Child(i), problems, depth+1)
	}
}

// CommandValidator pipes content to an external lint command, for example
// "php -l". A zero exit status means the content is valid.
type CommandValidator struct {
	command string
	args    []string
}

// NewCommandValidator returns a validator that runs command with args.
func NewCommandValidator(command string, args ...string) *CommandValidator {
	return &CommandValidator{command: command, args: args}
}

// Validate runs the command with content on stdin.
func (v *CommandValidator) Validate(ctx context.Context, _ m.Path, content []byte) (Verdict, error) {
	// #nosec G204 - the command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, v.command, v.args...)
	cmd.Stdin = bytes.NewReader(content)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		return Verdict{Valid: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Verdict{Valid: false, Detail: strings.TrimSpace(output.String())}, nil
	}

	return Verdict{}, fmt.Errorf("run %s: %w", v.command, err)
}
