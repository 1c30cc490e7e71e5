package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/mender/internal/model"
)

func newReport(id string, started time.Time) *m.RunReport {
	report := m.NewRunReport(id, m.ModeExecute, "/srv/app")
	report.State = m.StateCompleted
	report.StartedAt = started
	report.FinishedAt = started.Add(time.Second)
	report.CountsByCategory[m.Category("unused_imports")] = 2
	report.CountsByPriority[m.Priority("HIGH")] = 2
	report.PerFile = append(report.PerFile, m.FileSummary{
		Path:           "/srv/app/src/A.php",
		AppliedRuleIDs: []string{"remove-unused-use"},
		Valid:          true,
		Written:        true,
		Changed:        true,
		Diff:           "--- a/src/A.php\n+++ b/src/A.php\n",
	})
	report.Snapshot = &m.BackupSnapshot{Timestamp: "20260301T120000.000000000Z", Root: "/srv/app", Manifest: []string{"src/A.php"}}

	return report
}

func TestLocalReportStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewReportStore()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	report := newReport("8c1f0d2e", started)

	path, err := store.SaveReport(dir, report)
	require.NoError(t, err)
	assert.Equal(t, "20260301T120000-8c1f0d2e.yaml", filepath.Base(string(path)))

	loaded, err := store.LoadReport(dir, "8c1f0d2e")
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, m.StateCompleted, loaded.State)
	assert.True(t, report.StartedAt.Equal(loaded.StartedAt))
	assert.Equal(t, report.PerFile, loaded.PerFile)
	assert.Equal(t, report.CountsByCategory, loaded.CountsByCategory)
	require.NotNil(t, loaded.Snapshot)
	assert.Equal(t, report.Snapshot.Manifest, loaded.Snapshot.Manifest)
}

func TestLocalReportStore_LoadReportsOldestFirst(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewReportStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"ccc", "aaa", "bbb"} {
		_, err := store.SaveReport(dir, newReport(id, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	require.NoError(t, os.WriteFile(filepath.Join(string(dir), "notes.txt"), []byte("x"), 0o600))

	reports, err := store.LoadReports(dir)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, []string{"ccc", "aaa", "bbb"}, []string{reports[0].ID, reports[1].ID, reports[2].ID})

	newest, err := store.LoadReport(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "bbb", newest.ID)
}

func TestLocalReportStore_LoadReportByPrefix(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewReportStore()

	_, err := store.SaveReport(dir, newReport("5f2a9c", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	report, err := store.LoadReport(dir, "5f2")
	require.NoError(t, err)
	assert.Equal(t, "5f2a9c", report.ID)

	_, err = store.LoadReport(dir, "zzz")
	require.ErrorIs(t, err, ErrReportNotFound)
	assert.Contains(t, err.Error(), "zzz")
}

func TestLocalReportStore_MissingDirectory(t *testing.T) {
	t.Parallel()

	dir := m.Path(filepath.Join(t.TempDir(), "absent"))
	store := NewReportStore()

	reports, err := store.LoadReports(dir)
	require.NoError(t, err)
	assert.Empty(t, reports)

	_, err = store.LoadReport(dir, "")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestLocalReportStore_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewReportStore()

	_, err := store.SaveReport(m.Path(dir), nil)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: [unterminated"), 0o600))

	_, err = store.LoadReports(m.Path(dir))
	assert.ErrorContains(t, err, "decode report")
}
