package domain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/mender/internal/adapter"
	m "github.com/mouse-blink/mender/internal/model"
)

// SnapshotTimeLayout names snapshot directories; it sorts lexicographically.
const SnapshotTimeLayout = "20060102T150405.000000000Z"

const (
	manifestName   = "manifest.yaml"
	snapshotFiles  = "files"
	stagingPrefix  = ".staging-"
	manifestPerm   = 0o600
	manifestHeader = "# mender backup manifest\n"
)

// BackupManager owns timestamped snapshots of a source tree.
type BackupManager interface {
	// Snapshot copies every regular file under root into a new snapshot.
	Snapshot(root m.Path) (m.BackupSnapshot, error)
	// Restore replaces root with the snapshot contents, or changes nothing.
	Restore(snapshot m.BackupSnapshot) error
	// Latest returns the newest snapshot taken of root.
	Latest(root m.Path) (m.BackupSnapshot, error)
	// Find returns the snapshot with the given timestamp.
	Find(timestamp string) (m.BackupSnapshot, error)
	// List returns every snapshot, oldest first.
	List() ([]m.BackupSnapshot, error)
}

// BackupOption configures a BackupManager.
type BackupOption func(*backupManager)

// WithClock overrides the time source used for snapshot timestamps.
func WithClock(now func() time.Time) BackupOption {
	return func(b *backupManager) {
		b.now = now
	}
}

// WithExcludes keeps additional files or directories (for example the
// reports directory) out of snapshots and restores.
func WithExcludes(paths ...m.Path) BackupOption {
	return func(b *backupManager) {
		b.excludes = append(b.excludes, paths...)
	}
}

type backupManager struct {
	mu       sync.Mutex
	fs       adapter.FileSystem
	dir      m.Path
	excludes []m.Path
	now      func() time.Time
	log      *zap.Logger
}

// NewBackupManager stores snapshots under dir.
func NewBackupManager(fs adapter.FileSystem, dir m.Path, log *zap.Logger, opts ...BackupOption) BackupManager {
	if log == nil {
		log = zap.NewNop()
	}

	b := &backupManager{
		fs:  fs,
		dir: dir,
		now: time.Now,
		log: log,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *backupManager) Snapshot(root m.Path) (m.BackupSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	absRoot, err := b.fs.Abs(root)
	if err != nil {
		return m.BackupSnapshot{}, m.NewRunError(m.KindBackup, root, err)
	}

	excluded, err := b.excluded()
	if err != nil {
		return m.BackupSnapshot{}, m.NewRunError(m.KindBackup, b.dir, err)
	}

	absDir, _ := b.fs.Abs(b.dir)
	timestamp := b.now().UTC().Format(SnapshotTimeLayout)
	snapDir := b.fs.JoinPath(string(absDir), timestamp)

	if _, err := b.fs.FileInfo(snapDir); err == nil {
		return m.BackupSnapshot{}, m.NewRunError(m.KindBackup, snapDir, errors.New("snapshot already exists"))
	}

	snapshot := m.BackupSnapshot{
		Timestamp: timestamp,
		Root:      absRoot,
		Dir:       snapDir,
		Manifest:  []string{},
	}

	filesDir := b.fs.JoinPath(string(snapDir), snapshotFiles)

	err = b.fs.Walk(absRoot, func(dir m.Path) bool { return isExcluded(dir, excluded) },
		func(path m.Path, _ os.FileInfo) error {
			if isExcluded(path, excluded) {
				return nil
			}

			rel, err := b.fs.RelPath(absRoot, path)
			if err != nil {
				return err
			}

			if err := b.fs.CopyFile(path, b.fs.JoinPath(string(filesDir), string(rel))); err != nil {
				return err
			}

			snapshot.Manifest = append(snapshot.Manifest, filepath.ToSlash(string(rel)))

			return nil
		})
	if err == nil {
		err = b.writeManifest(snapshot)
	}

	if err != nil {
		if cleanupErr := b.fs.RemoveAll(snapDir); cleanupErr != nil {
			err = multierr.Append(err, cleanupErr)
		}

		return m.BackupSnapshot{}, m.NewRunError(m.KindBackup, absRoot, err)
	}

	b.log.Info("snapshot created",
		zap.String("timestamp", timestamp),
		zap.String("root", string(absRoot)),
		zap.Int("files", len(snapshot.Manifest)))

	return snapshot, nil
}

// writeManifest is written last; a snapshot without a manifest is incomplete
// and never listed.
func (b *backupManager) writeManifest(snapshot m.BackupSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	path := b.fs.JoinPath(string(snapshot.Dir), manifestName)
	if err := b.fs.MkdirAll(snapshot.Dir); err != nil {
		return err
	}

	return b.fs.WriteFile(path, append([]byte(manifestHeader), data...))
}

func (b *backupManager) Restore(snapshot m.BackupSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if snapshot.Dir == "" {
		return m.NewRunError(m.KindBackup, "", m.ErrNoSnapshot)
	}

	filesDir := b.fs.JoinPath(string(snapshot.Dir), snapshotFiles)

	for _, entry := range snapshot.Manifest {
		if !validManifestEntry(entry) {
			return m.NewRunError(m.KindBackup, snapshot.Dir, fmt.Errorf("invalid manifest entry %q", entry))
		}

		info, err := b.fs.FileInfo(b.fs.JoinPath(string(filesDir), filepath.FromSlash(entry)))
		if err != nil {
			return m.NewRunError(m.KindBackup, snapshot.Dir, fmt.Errorf("manifest entry %s: %w", entry, err))
		}

		if !info.Mode().IsRegular() {
			return m.NewRunError(m.KindBackup, snapshot.Dir, fmt.Errorf("manifest entry %s is not a regular file", entry))
		}
	}

	excluded, err := b.excluded()
	if err != nil {
		return m.NewRunError(m.KindBackup, b.dir, err)
	}

	absDir, _ := b.fs.Abs(b.dir)
	staging := b.fs.JoinPath(string(absDir), stagingPrefix+snapshot.Timestamp)

	if err := b.stage(filesDir, staging, snapshot.Manifest); err != nil {
		return m.NewRunError(m.KindBackup, snapshot.Dir, multierr.Append(err, b.fs.RemoveAll(staging)))
	}

	if err := b.fs.MkdirAll(snapshot.Root); err != nil {
		return m.NewRunError(m.KindIO, snapshot.Root, multierr.Append(err, b.fs.RemoveAll(staging)))
	}

	if err := b.clear(snapshot.Root, excluded); err != nil {
		return m.NewRunError(m.KindIO, snapshot.Root, multierr.Append(err, b.fs.RemoveAll(staging)))
	}

	// Root is already cleared here, so a failed move falls back to copying
	// from the snapshot itself before the entry is given up on.
	var moveErr error

	for _, entry := range snapshot.Manifest {
		rel := filepath.FromSlash(entry)
		dst := b.fs.JoinPath(string(snapshot.Root), rel)

		if err := b.fs.Move(b.fs.JoinPath(string(staging), rel), dst); err != nil {
			b.log.Warn("staged move failed, copying from snapshot",
				zap.String("file", entry),
				zap.Error(err))

			if copyErr := b.fs.CopyFile(b.fs.JoinPath(string(filesDir), rel), dst); copyErr != nil {
				moveErr = multierr.Append(moveErr, multierr.Append(err, copyErr))
			}
		}
	}

	if err := b.fs.RemoveAll(staging); err != nil {
		b.log.Warn("failed to remove staging directory", zap.String("path", string(staging)), zap.Error(err))
	}

	if moveErr != nil {
		return m.NewRunError(m.KindIO, snapshot.Root, moveErr)
	}

	b.log.Info("snapshot restored",
		zap.String("timestamp", snapshot.Timestamp),
		zap.String("root", string(snapshot.Root)),
		zap.Int("files", len(snapshot.Manifest)))

	return nil
}

func (b *backupManager) stage(filesDir, staging m.Path, manifest []string) error {
	if err := b.fs.RemoveAll(staging); err != nil {
		return err
	}

	if err := b.fs.MkdirAll(staging); err != nil {
		return err
	}

	for _, entry := range manifest {
		rel := filepath.FromSlash(entry)
		if err := b.fs.CopyFile(b.fs.JoinPath(string(filesDir), rel), b.fs.JoinPath(string(staging), rel)); err != nil {
			return err
		}
	}

	return nil
}

// clear removes the contents of dir, descending into directories that hold
// an excluded path instead of removing them.
func (b *backupManager) clear(dir m.Path, excluded []m.Path) error {
	children, err := b.fs.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, child := range children {
		path := b.fs.JoinPath(string(dir), child.Name())

		switch {
		case isExcluded(path, excluded):
			continue
		case child.IsDir() && containsExcluded(path, excluded):
			if err := b.clear(path, excluded); err != nil {
				return err
			}
		default:
			if err := b.fs.RemoveAll(path); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *backupManager) Latest(root m.Path) (m.BackupSnapshot, error) {
	absRoot, err := b.fs.Abs(root)
	if err != nil {
		return m.BackupSnapshot{}, m.NewRunError(m.KindBackup, root, err)
	}

	snapshots, err := b.List()
	if err != nil {
		return m.BackupSnapshot{}, err
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		if snapshots[i].Root == absRoot {
			return snapshots[i], nil
		}
	}

	return m.BackupSnapshot{}, m.ErrNoSnapshot
}

func (b *backupManager) Find(timestamp string) (m.BackupSnapshot, error) {
	snapshots, err := b.List()
	if err != nil {
		return m.BackupSnapshot{}, err
	}

	for _, snapshot := range snapshots {
		if snapshot.Timestamp == timestamp {
			return snapshot, nil
		}
	}

	return m.BackupSnapshot{}, fmt.Errorf("%w: %s", m.ErrNoSnapshot, timestamp)
}

func (b *backupManager) List() ([]m.BackupSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	absDir, err := b.fs.Abs(b.dir)
	if err != nil {
		return nil, m.NewRunError(m.KindBackup, b.dir, err)
	}

	entries, err := b.fs.ReadDir(absDir)
	if errors.Is(err, os.ErrNotExist) {
		return []m.BackupSnapshot{}, nil
	}

	if err != nil {
		return nil, m.NewRunError(m.KindBackup, absDir, err)
	}

	snapshots := make([]m.BackupSnapshot, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), stagingPrefix) {
			continue
		}

		snapDir := b.fs.JoinPath(string(absDir), entry.Name())

		data, err := b.fs.ReadFile(b.fs.JoinPath(string(snapDir), manifestName))
		if errors.Is(err, os.ErrNotExist) {
			b.log.Debug("skipping incomplete snapshot", zap.String("dir", string(snapDir)))
			continue
		}

		if err != nil {
			return nil, m.NewRunError(m.KindBackup, snapDir, err)
		}

		var snapshot m.BackupSnapshot
		if err := yaml.Unmarshal(data, &snapshot); err != nil {
			return nil, m.NewRunError(m.KindBackup, snapDir, fmt.Errorf("decode manifest: %w", err))
		}

		snapshot.Dir = snapDir
		snapshots = append(snapshots, snapshot)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp < snapshots[j].Timestamp
	})

	return snapshots, nil
}

func (b *backupManager) excluded() ([]m.Path, error) {
	paths := make([]m.Path, 0, len(b.excludes)+1)

	for _, p := range append([]m.Path{b.dir}, b.excludes...) {
		abs, err := b.fs.Abs(p)
		if err != nil {
			return nil, err
		}

		paths = append(paths, abs)
	}

	return paths, nil
}

func isExcluded(path m.Path, excluded []m.Path) bool {
	for _, ex := range excluded {
		if path == ex {
			return true
		}
	}

	return false
}

func containsExcluded(dir m.Path, excluded []m.Path) bool {
	prefix := string(dir) + string(filepath.Separator)

	for _, ex := range excluded {
		if strings.HasPrefix(string(ex), prefix) {
			return true
		}
	}

	return false
}

func validManifestEntry(entry string) bool {
	if entry == "" || filepath.IsAbs(entry) || strings.HasPrefix(entry, "/") {
		return false
	}

	for _, part := range strings.Split(entry, "/") {
		if part == ".." {
			return false
		}
	}

	return true
}
