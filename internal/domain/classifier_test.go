package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

func TestClassifier_UnusedMethod(t *testing.T) {
	c := NewClassifier(DefaultClassRules())
	d := m.Diagnostic{File: "app/Foo.php", Line: 10, Message: "Method Foo::bar() is unused."}

	got := c.Classify(d)

	assert.Equal(t, m.Category("unused_methods"), got.Category)
	assert.Equal(t, m.PriorityLow, got.Priority)
	assert.False(t, got.Fixable)
	assert.Equal(t, d.Key(), got.Key())
}

func TestClassifier_DefaultTable(t *testing.T) {
	c := NewClassifier(DefaultClassRules())

	tests := []struct {
		message  string
		category m.Category
		priority m.Priority
		strategy m.StrategyID
	}{
		{
			message:  `Property App\Model\Invoice::$lines type has no value type specified in iterable type array.`,
			category: "missing_generics",
			priority: m.PriorityMedium,
			strategy: rules.VarDocblockID,
		},
		{
			message:  `Method App\Model\Invoice::total() has no return type specified.`,
			category: "missing_return_type",
			priority: m.PriorityMedium,
			strategy: rules.ReturnTypeID,
		},
		{
			message:  `Type App\Support\Unused is not used in this file.`,
			category: "unused_imports",
			priority: m.PriorityLow,
			strategy: rules.RemoveUnusedUseID,
		},
		{
			message:  `Class App\Missing not found.`,
			category: "undefined_symbols",
			priority: m.PriorityHigh,
		},
		{
			message:  `Method App\A::b() should return int but returns string.`,
			category: "type_mismatch",
			priority: m.PriorityHigh,
			strategy: rules.IgnoreNextLineID,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := c.Classify(m.Diagnostic{File: "a.php", Line: 1, Message: tt.message})

			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.priority, got.Priority)
			assert.Equal(t, tt.strategy, got.StrategyID)
			assert.Equal(t, tt.strategy != "", got.Fixable)
		})
	}
}

func TestClassifier_Unknown(t *testing.T) {
	c := NewClassifier(DefaultClassRules())
	d := m.Diagnostic{File: "a.php", Line: 2, Message: "Something nobody has seen", StrategyID: "stale", Fixable: true}

	got := c.Classify(d)

	assert.Equal(t, m.CategoryUnknown, got.Category)
	assert.Equal(t, m.PriorityUnknown, got.Priority)
	assert.Empty(t, got.StrategyID)
	assert.False(t, got.Fixable)
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	first, err := NewClassRule(`unused`, "first", m.PriorityHigh, "")
	require.NoError(t, err)
	second, err := NewClassRule(`is unused`, "second", m.PriorityLow, "")
	require.NoError(t, err)

	got := NewClassifier([]ClassRule{first, second}).Classify(m.Diagnostic{Message: "x is unused"})
	assert.Equal(t, m.Category("first"), got.Category)

	got = NewClassifier([]ClassRule{second, first}).Classify(m.Diagnostic{Message: "x is unused"})
	assert.Equal(t, m.Category("second"), got.Category)
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier(DefaultClassRules())
	diags := NewDiagnosticParser().Parse(phpstanTable)

	assert.Equal(t, ClassifyAll(c, diags), ClassifyAll(c, diags))
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	c := NewClassifier(DefaultClassRules())
	diags := []m.Diagnostic{
		{File: "b.php", Line: 9, Message: "z"},
		{File: "a.php", Line: 1, Message: "Method A::b() is unused."},
	}

	got := ClassifyAll(c, diags)

	require.Len(t, got, 2)
	assert.Equal(t, m.Path("b.php"), got[0].File)
	assert.Equal(t, m.Category("unused_methods"), got[1].Category)
	assert.Equal(t, m.Category(""), diags[1].Category)
}

func TestNewClassRule_InvalidPattern(t *testing.T) {
	_, err := NewClassRule(`(`, "x", m.PriorityLow, "")

	assert.Error(t, err)
}
