package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_Identical(t *testing.T) {
	out, stat, err := Unified("a.php", "same\n", "same\n")

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, Stat{}, stat)
}

func TestUnified_SingleChange(t *testing.T) {
	oldContent := "<?php\nuse App\\Old\\Thing;\n\n$x = 1;\n"
	newContent := "<?php\nuse App\\New\\Thing;\n\n$x = 1;\n"

	out, stat, err := Unified("src/A.php", oldContent, newContent)
	require.NoError(t, err)

	want := "--- a/src/A.php\n" +
		"+++ b/src/A.php\n" +
		"@@ -1,4 +1,4 @@\n" +
		" <?php\n" +
		"-use App\\Old\\Thing;\n" +
		"+use App\\New\\Thing;\n" +
		" \n" +
		" $x = 1;\n"
	assert.Equal(t, want, out)
	assert.Equal(t, Stat{Added: 1, Deleted: 1}, stat)
}

func TestUnified_Insertion(t *testing.T) {
	out, stat, err := Unified("a.php", "a\nb\n", "a\n// x\nb\n")
	require.NoError(t, err)

	assert.Contains(t, out, "@@ -1,2 +1,3 @@\n a\n+// x\n b\n")
	assert.Equal(t, Stat{Added: 1}, stat)
}

func TestUnified_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string

	for i := 1; i <= 30; i++ {
		line := fmt.Sprintf("line %d", i)
		oldLines = append(oldLines, line)

		if i == 2 || i == 28 {
			line += " changed"
		}

		newLines = append(newLines, line)
	}

	out, stat, err := Unified("a.txt", strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "@@ -"))
	assert.Contains(t, out, "@@ -1,5 +1,5 @@")
	assert.Contains(t, out, "@@ -25,6 +25,6 @@")
	assert.Equal(t, Stat{Added: 2, Deleted: 2}, stat)
}

func TestUnified_MissingTrailingNewline(t *testing.T) {
	out, _, err := Unified("a.php", "a\nb", "a\nc")
	require.NoError(t, err)

	assert.Contains(t, out, "-b\n\\ No newline at end of file\n+c\n\\ No newline at end of file\n")
}

func TestParse_RoundTrip(t *testing.T) {
	out, stat, err := Unified("a.php", "a\nb\nc\n", "a\nB\nc\nd\n")
	require.NoError(t, err)

	parsed, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, stat, parsed)
	assert.Equal(t, Stat{Added: 2, Deleted: 1}, parsed)
}
