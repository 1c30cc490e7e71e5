package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// stubRule is a configurable rule for engine tests.
type stubRule struct {
	id   m.StrategyID
	edit func(lines []string, d m.Diagnostic) (rules.Edit, error)
}

func (r *stubRule) ID() m.StrategyID { return r.id }

func (r *stubRule) Description() string { return "stub" }

func (r *stubRule) Applies(m.Diagnostic, rules.FileContext) bool { return true }

func (r *stubRule) Edit(lines []string, d m.Diagnostic) (rules.Edit, error) {
	return r.edit(lines, d)
}

const invoiceSource = `<?php
namespace App\Model;

use App\Support\Unused;

class Invoice
{
    private array $lines = [];

    public function total()
    {
        return 0;
    }
}
`

func invoiceDiagnostics() []m.Diagnostic {
	c := NewClassifier(DefaultClassRules())

	return ClassifyAll(c, []m.Diagnostic{
		{File: "Invoice.php", Line: 4, Message: `Type App\Support\Unused is not used in this file.`},
		{File: "Invoice.php", Line: 8, Message: `Property App\Model\Invoice::$lines type has no value type specified in iterable type array.`},
		{File: "Invoice.php", Line: 10, Message: `Method App\Model\Invoice::total() has no return type specified.`},
	})
}

func TestEngine_AppliesBottomUp(t *testing.T) {
	e := NewEngine(NewDefaultRegistry())

	cs := e.Apply("Invoice.php", []byte(invoiceSource), invoiceDiagnostics())

	want := `<?php
namespace App\Model;


class Invoice
{
    /** @var array<string, mixed> */
    private array $lines = [];

    public function total(): mixed
    {
        return 0;
    }
}
`
	assert.Equal(t, want, string(cs.Working))
	assert.Equal(t, invoiceSource, string(cs.Original))
	assert.Equal(t, []string{
		string(rules.ReturnTypeID),
		string(rules.VarDocblockID),
		string(rules.RemoveUnusedUseID),
	}, cs.AppliedRuleIDs)
	assert.Empty(t, cs.Unfixed)
	assert.True(t, cs.Changed())
}

func TestEngine_Idempotent(t *testing.T) {
	e := NewEngine(NewDefaultRegistry())
	diags := invoiceDiagnostics()

	first := e.Apply("Invoice.php", []byte(invoiceSource), diags)
	second := e.Apply("Invoice.php", first.Working, diags)

	assert.Equal(t, string(first.Working), string(second.Working))
	assert.Empty(t, second.AppliedRuleIDs)
	assert.False(t, second.Changed())
}

func TestEngine_InputOrderDoesNotMatter(t *testing.T) {
	e := NewEngine(NewDefaultRegistry())
	diags := invoiceDiagnostics()
	reversed := []m.Diagnostic{diags[2], diags[0], diags[1]}

	a := e.Apply("Invoice.php", []byte(invoiceSource), diags)
	b := e.Apply("Invoice.php", []byte(invoiceSource), reversed)

	assert.Equal(t, a.Working, b.Working)
	assert.Equal(t, a.AppliedRuleIDs, b.AppliedRuleIDs)
}

func TestEngine_NoRule(t *testing.T) {
	e := NewEngine(NewDefaultRegistry())
	diags := []m.Diagnostic{
		{Line: 3, Message: "Method A::b() is unused."},
		{Line: 1, Message: "custom", StrategyID: "not-registered", Fixable: true},
	}

	cs := e.Apply("a.php", []byte("<?php\n\nfunction b() {}\n"), diags)

	assert.False(t, cs.Changed())
	require.Len(t, cs.Unfixed, 2)
	assert.Equal(t, 1, cs.Unfixed[0].Line)
	assert.Equal(t, m.ReasonNoRule, cs.Unfixed[0].Reason)
	assert.Equal(t, m.StrategyID("not-registered"), cs.Unfixed[0].StrategyID)
	assert.Equal(t, 3, cs.Unfixed[1].Line)
	assert.Equal(t, m.ReasonNoRule, cs.Unfixed[1].Reason)
}

func TestEngine_Conflict(t *testing.T) {
	wide := &stubRule{id: "wide", edit: func(_ []string, d m.Diagnostic) (rules.Edit, error) {
		return rules.Edit{Start: d.Line, End: d.Line + 3, Lines: []string{"merged"}}, nil
	}}
	registry, err := NewRegistry(wide, rules.NewIgnoreNextLine())
	require.NoError(t, err)

	diags := []m.Diagnostic{
		{Line: 2, Message: "wide", StrategyID: "wide"},
		{Line: 3, Message: "narrow", StrategyID: rules.IgnoreNextLineID},
	}

	cs := NewEngine(registry).Apply("a.php", []byte("a\nb\nc\nd\ne"), diags)

	assert.Equal(t, "a\nb\n// @phpstan-ignore-next-line\nc\nd\ne", string(cs.Working))
	assert.Equal(t, []string{string(rules.IgnoreNextLineID)}, cs.AppliedRuleIDs)
	require.Len(t, cs.Unfixed, 1)
	assert.Equal(t, m.ReasonConflict, cs.Unfixed[0].Reason)
	assert.Equal(t, 2, cs.Unfixed[0].Line)
}

func TestEngine_RuleFailures(t *testing.T) {
	panicking := &stubRule{id: "panics", edit: func([]string, m.Diagnostic) (rules.Edit, error) {
		panic("boom")
	}}
	outOfRange := &stubRule{id: "far", edit: func([]string, m.Diagnostic) (rules.Edit, error) {
		return rules.Edit{Start: 40, End: 41}, nil
	}}
	registry, err := NewRegistry(panicking, outOfRange, rules.NewGenericContainerType(""))
	require.NoError(t, err)

	diags := []m.Diagnostic{
		{Line: 1, Message: "p", StrategyID: "panics"},
		{Line: 2, Message: "f", StrategyID: "far"},
		{Line: 3, Message: "Property A::$x type has no value type", StrategyID: rules.GenericContainerID},
	}

	cs := NewEngine(registry).Apply("a.php", []byte("a\nb\nc"), diags)

	assert.False(t, cs.Changed())
	require.Len(t, cs.Unfixed, 3)
	assert.Equal(t, m.ReasonRuleError, cs.Unfixed[0].Reason)
	assert.Contains(t, cs.Unfixed[0].Detail, "panicked")
	assert.Equal(t, m.ReasonRuleError, cs.Unfixed[1].Reason)
	assert.Equal(t, m.ReasonInapplicable, cs.Unfixed[2].Reason)
}

func TestEngine_IgnoreDirective(t *testing.T) {
	src := "<?php\nclass A\n{\n    // mender:ignore generic-container-type\n    private array $x;\n}\n"
	d := m.Diagnostic{
		Line:       5,
		Message:    "Property A::$x type has no value type specified in iterable type array.",
		StrategyID: rules.GenericContainerID,
	}

	cs := NewEngine(NewDefaultRegistry()).Apply("a.php", []byte(src), []m.Diagnostic{d})

	assert.False(t, cs.Changed())
	require.Len(t, cs.Unfixed, 1)
	assert.Equal(t, m.ReasonInapplicable, cs.Unfixed[0].Reason)
	assert.Contains(t, cs.Unfixed[0].Detail, "mender:ignore")
}

func TestEngine_DedupesDiagnostics(t *testing.T) {
	d := m.Diagnostic{Line: 2, Message: "x", StrategyID: rules.IgnoreNextLineID}

	cs := NewEngine(NewDefaultRegistry()).Apply("a.php", []byte("a\nb\n"), []m.Diagnostic{d, d})

	assert.Equal(t, "a\n// @phpstan-ignore-next-line\nb\n", string(cs.Working))
	assert.Len(t, cs.AppliedRuleIDs, 1)
}

func TestEngine_RewriteSymbols(t *testing.T) {
	symbols, err := NewSymbolMap([]m.SymbolEntry{{Old: `App\Old\Thing`, New: `App\New\Thing`}})
	require.NoError(t, err)

	e := NewEngine(NewDefaultRegistry())
	rw := rules.NewSymbolRename(symbols)

	touched := e.Rewrite("a.php", []byte("<?php\nuse App\\Old\\Thing;\n"), rw)
	assert.Equal(t, "<?php\nuse App\\New\\Thing;\n", string(touched.Working))
	assert.Equal(t, []string{string(rules.SymbolRenameID)}, touched.AppliedRuleIDs)

	original := []byte("<?php\nuse App\\Other\\Thing;\n")
	untouched := e.Rewrite("b.php", original, rw)
	assert.False(t, untouched.Changed())
	assert.Equal(t, original, untouched.Working)
	assert.Empty(t, untouched.AppliedRuleIDs)
}
