package rules

import (
	"fmt"
	"regexp"

	m "github.com/mouse-blink/mender/internal/model"
)

// GenericContainerID is the strategy id of GenericContainerType.
const GenericContainerID m.StrategyID = "generic-container-type"

// DefaultGenericArgs are the type arguments used when none are configured.
const DefaultGenericArgs = "string, string"

var (
	propertyNamePattern  = regexp.MustCompile(`\$(\w+)`)
	typedPropertyPattern = regexp.MustCompile(
		`^(\s*(?:(?:public|protected|private|readonly|static|var)\s+)+\??)(array|iterable)(\s+\$(\w+))`)
	genericPropertyPattern = regexp.MustCompile(
		`^\s*(?:(?:public|protected|private|readonly|static|var)\s+)+\??(?:array|iterable)<[^>]*>\s+\$(\w+)`)
)

// GenericContainerType adds type arguments to an untyped array property:
// `private array $headers;` becomes `private array<string, string> $headers;`.
type GenericContainerType struct {
	args string
}

// NewGenericContainerType creates the rule with the given type arguments.
func NewGenericContainerType(args string) *GenericContainerType {
	if args == "" {
		args = DefaultGenericArgs
	}

	return &GenericContainerType{args: args}
}

// ID implements Rule.
func (r *GenericContainerType) ID() m.StrategyID { return GenericContainerID }

// Description implements Rule.
func (r *GenericContainerType) Description() string {
	return fmt.Sprintf("add <%s> to array/iterable typed properties", r.args)
}

// Applies implements Rule.
func (r *GenericContainerType) Applies(d m.Diagnostic, fc FileContext) bool {
	return d.Line >= 1 && d.Line <= len(fc.Lines)
}

// Edit implements Rule.
func (r *GenericContainerType) Edit(lines []string, d m.Diagnostic) (Edit, error) {
	name := propertyName(d.Message)

	for line := d.Line; line <= len(lines) && line < d.Line+searchWindow; line++ {
		text := lines[line-1]

		if match := genericPropertyPattern.FindStringSubmatch(text); match != nil && (name == "" || match[1] == name) {
			return Edit{}, ErrAlreadyApplied
		}

		match := typedPropertyPattern.FindStringSubmatchIndex(text)
		if match == nil {
			continue
		}

		if name != "" && text[match[8]:match[9]] != name {
			continue
		}

		rewritten := text[:match[5]] + "<" + r.args + ">" + text[match[5]:]

		return Edit{Start: line, End: line + 1, Lines: []string{rewritten}}, nil
	}

	return Edit{}, ErrNoMatch
}

// propertyName extracts the `$name` mentioned in a diagnostic message.
func propertyName(message string) string {
	match := propertyNamePattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}

	return match[1]
}
