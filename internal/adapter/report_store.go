package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/mender/internal/model"
)

const reportFileExt = ".yaml"

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(dir m.Path, report *m.RunReport) (m.Path, error)
	LoadReports(dir m.Path) ([]m.RunReport, error)
	LoadReport(dir m.Path, id string) (*m.RunReport, error)
}

// ErrReportNotFound is returned when no report matches the requested id.
var ErrReportNotFound = errors.New("report not found")

// LocalReportStore writes one YAML file per run into a reports directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report as <started>-<id>.yaml so lexical order is chronological.
func (rs *LocalReportStore) SaveReport(dir m.Path, report *m.RunReport) (m.Path, error) {
	if report == nil {
		return "", errors.New("nil report")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report %s: %w", report.ID, err)
	}

	name := report.StartedAt.UTC().Format("20060102T150405") + "-" + report.ID + reportFileExt
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	return m.Path(path), nil
}

// LoadReports reads every report in dir, oldest first. A missing directory
// yields no reports.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if errors.Is(err, os.ErrNotExist) {
		return []m.RunReport{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != reportFileExt {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	reports := make([]m.RunReport, 0, len(names))

	for _, name := range names {
		report, err := readReport(filepath.Join(string(dir), name))
		if err != nil {
			return nil, err
		}

		reports = append(reports, *report)
	}

	return reports, nil
}

// LoadReport returns the report with the given id, or the newest one when id is empty.
func (rs *LocalReportStore) LoadReport(dir m.Path, id string) (*m.RunReport, error) {
	reports, err := rs.LoadReports(dir)
	if err != nil {
		return nil, err
	}

	for i := len(reports) - 1; i >= 0; i-- {
		if id == "" || reports[i].ID == id || strings.HasPrefix(reports[i].ID, id) {
			return &reports[i], nil
		}
	}

	if id == "" {
		return nil, ErrReportNotFound
	}

	return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
}

func readReport(path string) (*m.RunReport, error) {
	// #nosec G304 - path is inside the reports directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return &report, nil
}
