package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

func TestDefaultRegistry_Order(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []m.StrategyID{
		rules.GenericContainerID,
		rules.ReturnTypeID,
		rules.RemoveUnusedUseID,
		rules.IgnoreNextLineID,
		rules.VarDocblockID,
	}, r.IDs())
	assert.Len(t, r.Rules(), 5)

	rule, ok := r.Lookup(rules.ReturnTypeID)
	require.True(t, ok)
	assert.Equal(t, rules.ReturnTypeID, rule.ID())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(rules.NewIgnoreNextLine(), rules.NewIgnoreNextLine())

	assert.ErrorContains(t, err, "registered twice")
}

func TestNewRegistry_RejectsEmptyID(t *testing.T) {
	_, err := NewRegistry(&stubRule{})

	assert.ErrorContains(t, err, "empty id")
}
