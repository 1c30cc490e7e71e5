package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/mender/internal/model"
)

const phpstanTable = ` ------ ----------------------------------------------------------
  Line   src/Model/Invoice.php
 ------ ----------------------------------------------------------
  6      Type App\Support\Unused is not used in this file.
  10     Property App\Model\Invoice::$lines type has no value type specified in iterable type array.
 ------ ----------------------------------------------------------

 ------ ----------------------------------------------------------
  Line   src/Http/Controller.php
 ------ ----------------------------------------------------------
  18     Method App\Http\Controller::index() has no return type specified.
 ------ ----------------------------------------------------------

 [ERROR] Found 3 errors
`

func TestParser_PHPStanTable(t *testing.T) {
	got := NewDiagnosticParser().Parse(phpstanTable)

	require.Len(t, got, 3)
	assert.Equal(t, m.Diagnostic{
		File:     "src/Model/Invoice.php",
		Line:     6,
		Message:  `Type App\Support\Unused is not used in this file.`,
		Category: m.CategoryUnknown,
		Priority: m.PriorityUnknown,
	}, got[0])
	assert.Equal(t, m.Path("src/Model/Invoice.php"), got[1].File)
	assert.Equal(t, 10, got[1].Line)
	assert.Equal(t, m.Path("src/Http/Controller.php"), got[2].File)
	assert.Equal(t, 18, got[2].Line)
}

func TestParser_CompactLines(t *testing.T) {
	raw := "app/Foo.php:10: Method Foo::bar() is unused.\r\napp/Bar.php:3:7: Unused use statement\n"

	got := NewDiagnosticParser().Parse(raw)

	require.Len(t, got, 2)
	assert.Equal(t, m.Path("app/Foo.php"), got[0].File)
	assert.Equal(t, 10, got[0].Line)
	assert.Equal(t, "Method Foo::bar() is unused.", got[0].Message)
	assert.Equal(t, m.Path("app/Bar.php"), got[1].File)
	assert.Equal(t, 3, got[1].Line)
	assert.Equal(t, "Unused use statement", got[1].Message)
}

func TestParser_FileHeaderBlocks(t *testing.T) {
	raw := `FILE: /srv/app/src/Foo.php
----------------------------------------------------------------------
 12 | ERROR | Missing doc comment
----------------------------------------------------------------------
src/Bar.php
  4   Unused import App\Thing
`

	got := NewDiagnosticParser().Parse(raw)

	require.Len(t, got, 2)
	assert.Equal(t, m.Path("/srv/app/src/Foo.php"), got[0].File)
	assert.Equal(t, 12, got[0].Line)
	assert.Equal(t, "| ERROR | Missing doc comment", got[0].Message)
	assert.Equal(t, m.Path("src/Bar.php"), got[1].File)
	assert.Equal(t, `Unused import App\Thing`, got[1].Message)
}

func TestParser_EmptyInput(t *testing.T) {
	got := NewDiagnosticParser().Parse("")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParser_SkipsUnattachedEntries(t *testing.T) {
	raw := "noise before any file\n  12   orphan message\nsrc/A.php:0: zero line\n"

	result := NewDiagnosticParser().ParseDetailed(raw)

	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, []int{2}, result.Skipped)
}

func TestParser_PlainHeaders(t *testing.T) {
	raw := "app/Foo.php\n10 first\nbin/console\n20 second\napp/My Service.php\n30 third\n"

	got := NewDiagnosticParser().Parse(raw)

	require.Len(t, got, 3)
	assert.Equal(t, m.Path("app/Foo.php"), got[0].File)
	assert.Equal(t, m.Path("bin/console"), got[1].File)
	assert.Equal(t, 20, got[1].Line)
	assert.Equal(t, m.Path("app/My Service.php"), got[2].File)
	assert.Equal(t, "third", got[2].Message)
}

func TestParser_HeadersInARow(t *testing.T) {
	raw := "src/Empty.php\nsrc/Next.php\n  7   Unused import App\\Thing\n"

	got := NewDiagnosticParser().Parse(raw)

	require.Len(t, got, 1)
	assert.Equal(t, m.Path("src/Next.php"), got[0].File)
	assert.Equal(t, 7, got[0].Line)
}

func TestParser_UnrecognizedHeaderClosesBlock(t *testing.T) {
	raw := "src/A.php\n  3   kept\nSummary of results\n  4   orphan\n"

	result := NewDiagnosticParser().ParseDetailed(raw)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, m.Path("src/A.php"), result.Diagnostics[0].File)
	assert.Equal(t, []int{4}, result.Skipped)
}

func TestParser_TableHeaderWithSpaces(t *testing.T) {
	raw := " ------ ------\n  Line   app/My Service.php\n ------ ------\n  9      Dead code.\n"

	got := NewDiagnosticParser().Parse(raw)

	require.Len(t, got, 1)
	assert.Equal(t, m.Path("app/My Service.php"), got[0].File)
}
