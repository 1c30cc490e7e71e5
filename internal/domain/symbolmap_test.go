package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

func TestSymbolMap_Resolve(t *testing.T) {
	sm, err := NewSymbolMap([]m.SymbolEntry{
		{Old: `App\Old\Thing`, New: `App\New\Thing`},
		{Old: `\App\Legacy`, New: `App\Modern`},
		{Old: `App\Legacy\Mailer`, New: `Mail`},
		{Old: `Vendor\`, New: `Lib\Vendor\`},
	})
	require.NoError(t, err)

	tests := []struct {
		symbol string
		want   string
		ok     bool
	}{
		{symbol: `App\Old\Thing`, want: `App\New\Thing`, ok: true},
		{symbol: `\App\Old\Thing`, want: `App\New\Thing`, ok: true},
		{symbol: `App\Legacy\Mailer\SmtpMailer`, want: `App\Modern\Mailer\SmtpMailer`, ok: true},
		{symbol: `App\Legacy\Mailer`, want: `Mail`, ok: true},
		{symbol: `App\LegacyTools\X`, ok: false},
		{symbol: `Vendor\Pkg\Client`, want: `Lib\Vendor\Pkg\Client`, ok: true},
		{symbol: `App\Old\ThingFactory`, ok: false},
		{symbol: ``, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, ok := sm.Resolve(tt.symbol)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSymbolMap_KeepsInsertionOrder(t *testing.T) {
	entries := []m.SymbolEntry{
		{Old: `Zeta\A`, New: `Z`},
		{Old: `\Alpha\B`, New: `\A`},
	}

	sm, err := NewSymbolMap(entries)
	require.NoError(t, err)

	assert.Equal(t, 2, sm.Len())
	assert.Equal(t, []m.SymbolEntry{{Old: `Zeta\A`, New: `Z`}, {Old: `Alpha\B`, New: `A`}}, sm.Entries())
}

func TestNewSymbolMap_Rejects(t *testing.T) {
	_, err := NewSymbolMap([]m.SymbolEntry{{Old: " ", New: "X"}})
	assert.ErrorContains(t, err, "empty key")

	_, err = NewSymbolMap([]m.SymbolEntry{{Old: `A\B`, New: "X"}, {Old: `\A\B`, New: "Y"}})
	assert.ErrorContains(t, err, "mapped twice")
}

func TestSymbolMap_TargetInsideOldNamespace(t *testing.T) {
	sm, err := NewSymbolMap([]m.SymbolEntry{
		{Old: `App\Old`, New: `App\Old\Legacy`},
		{Old: `App\Mailer`, New: `App\Mailer\Smtp`},
	})
	require.NoError(t, err)

	got, ok := sm.Resolve(`App\Old\Thing`)
	assert.True(t, ok)
	assert.Equal(t, `App\Old\Legacy\Thing`, got)

	_, ok = sm.Resolve(`App\Old\Legacy\Thing`)
	assert.False(t, ok)

	got, ok = sm.Resolve(`App\Mailer`)
	assert.True(t, ok)
	assert.Equal(t, `App\Mailer\Smtp`, got)

	_, ok = sm.Resolve(`App\Mailer\Smtp`)
	assert.False(t, ok)
}

func TestSymbolRename_NestedTargetIsIdempotent(t *testing.T) {
	sm, err := NewSymbolMap([]m.SymbolEntry{{Old: `App\Old`, New: `App\Old\Legacy`}})
	require.NoError(t, err)

	rename := rules.NewSymbolRename(sm)
	content := "<?php\nuse App\\Old\\Thing;\n\n$t = new \\App\\Old\\Thing();\n"

	once, hits, err := rename.Rewrite(content)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
	assert.Contains(t, once, "use App\\Old\\Legacy\\Thing;\n")

	twice, hits, err := rename.Rewrite(once)
	require.NoError(t, err)
	assert.Zero(t, hits)
	assert.Equal(t, once, twice)
}
