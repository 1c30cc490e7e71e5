package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPHP = `<?php

namespace App;

final class Invoice
{
    private array $lines = [];

    public function total(): int
    {
        return count($this->lines);
    }
}
`

func TestTreeSitterValidator(t *testing.T) {
	validator, err := NewTreeSitterValidator("php")
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{name: "well formed", content: validPHP, valid: true},
		{name: "missing closing brace", content: validPHP[:len(validPHP)-2], valid: false},
		{name: "dangling expression", content: "<?php\n$x = ;\n", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := validator.Validate(context.Background(), "Invoice.php", []byte(tt.content))
			require.NoError(t, err)

			assert.Equal(t, tt.valid, verdict.Valid)

			if !tt.valid {
				assert.Contains(t, verdict.Detail, "line ")
			}
		})
	}
}

func TestTreeSitterValidator_OtherGrammars(t *testing.T) {
	validator, err := NewTreeSitterValidator("go")
	require.NoError(t, err)

	verdict, err := validator.Validate(context.Background(), "main.go", []byte("package main\n\nfunc main() {}\n"))
	require.NoError(t, err)
	assert.True(t, verdict.Valid)

	_, err = NewTreeSitterValidator("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestCommandValidator(t *testing.T) {
	ctx := context.Background()

	verdict, err := NewCommandValidator("cat").Validate(ctx, "a.php", []byte(validPHP))
	require.NoError(t, err)
	assert.True(t, verdict.Valid)

	verdict, err = NewCommandValidator("sh", "-c", "cat >/dev/null; echo 'Parse error on line 3'; exit 255").
		Validate(ctx, "a.php", []byte("<?php"))
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "Parse error on line 3", verdict.Detail)

	_, err = NewCommandValidator("mender-no-such-linter").Validate(ctx, "a.php", nil)
	assert.ErrorContains(t, err, "run mender-no-such-linter")
}
