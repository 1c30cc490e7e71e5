package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/mender/internal/adapter"
	"github.com/mouse-blink/mender/internal/controller"
	"github.com/mouse-blink/mender/internal/diff"
	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// Filter narrows which classified diagnostics are applied.
type Filter struct {
	Categories  []m.Category
	MinPriority m.Priority
}

func (f Filter) keep(d m.Diagnostic) bool {
	if f.MinPriority != "" && d.Priority.Rank() > f.MinPriority.Rank() {
		return false
	}

	if len(f.Categories) == 0 {
		return true
	}

	for _, c := range f.Categories {
		if c == d.Category {
			return true
		}
	}

	return false
}

// ValidateArgs holds the inputs of a validate run.
type ValidateArgs struct {
	Root        m.Path
	Diagnostics string
	Filter      Filter
	Parallel    int
	Diff        bool
}

// ExecuteArgs holds the inputs of an execute run.
type ExecuteArgs struct {
	ValidateArgs
	Backup bool
}

// RenameArgs holds the inputs of a symbol rename run.
type RenameArgs struct {
	Root       m.Path
	Entries    []m.SymbolEntry
	Extensions []string
	Parallel   int
	Diff       bool
}

// RollbackArgs holds the inputs of a rollback run. An empty Snapshot selects
// the latest snapshot of Root.
type RollbackArgs struct {
	Root     m.Path
	Snapshot string
}

// ReportArgs selects what the report command shows.
type ReportArgs struct {
	Reports m.Path
	ID      string
	List    bool
	History bool
	Limit   int
}

// Workflow runs validate, execute, rename and rollback operations and
// presents their reports.
type Workflow interface {
	Validate(ctx context.Context, args ValidateArgs) (*m.RunReport, error)
	Execute(ctx context.Context, args ExecuteArgs) (*m.RunReport, error)
	Rename(ctx context.Context, args RenameArgs) (*m.RunReport, error)
	Rollback(ctx context.Context, args RollbackArgs) (*m.RunReport, error)
	Rules() error
	Report(ctx context.Context, args ReportArgs) error
}

// Dependencies are the collaborators a Workflow is built from. Audit may be nil.
type Dependencies struct {
	FS           adapter.FileSystem
	Parser       DiagnosticParser
	Classifier   Classifier
	Registry     *Registry
	Orchestrator Orchestrator
	Backups      BackupManager
	Reports      adapter.ReportStore
	Audit        adapter.AuditStore
	UI           controller.UI
	Logger       *zap.Logger
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithReportsDir sets where run reports are persisted. Empty disables persistence.
func WithReportsDir(dir m.Path) WorkflowOption {
	return func(w *workflow) {
		w.reportsDir = dir
	}
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(next func() string) WorkflowOption {
	return func(w *workflow) {
		w.newID = next
	}
}

// WithNow overrides the clock used for report timestamps.
func WithNow(now func() time.Time) WorkflowOption {
	return func(w *workflow) {
		w.now = now
	}
}

// WithSkipDirs keeps directories out of the rename walk.
func WithSkipDirs(dirs ...m.Path) WorkflowOption {
	return func(w *workflow) {
		w.skipDirs = append(w.skipDirs, dirs...)
	}
}

type workflow struct {
	Dependencies

	reportsDir m.Path
	skipDirs   []m.Path
	newID      func() string
	now        func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(deps Dependencies, opts ...WorkflowOption) Workflow {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	w := &workflow{
		Dependencies: deps,
		newID:        uuid.NewString,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// transitions lists the legal state changes of a run.
var transitions = map[m.RunState][]m.RunState{
	m.StateIdle:             {m.StateValidating, m.StateRollingBack},
	m.StateValidating:       {m.StateValidationPassed, m.StateValidationFailed, m.StateFailed},
	m.StateValidationPassed: {m.StateExecuting},
	m.StateExecuting:        {m.StateCompleted, m.StateFailed},
	m.StateRollingBack:      {m.StateCompleted, m.StateFailed},
}

// ErrIllegalTransition is returned when a run would skip a state.
var ErrIllegalTransition = errors.New("illegal state transition")

// ErrForeignSnapshot is returned when a snapshot was taken under another root.
var ErrForeignSnapshot = errors.New("snapshot belongs to another root")

type run struct {
	report *m.RunReport
	log    *zap.Logger
}

func (r *run) transition(to m.RunState) error {
	for _, allowed := range transitions[r.report.State] {
		if allowed == to {
			r.log.Debug("state", zap.String("from", string(r.report.State)), zap.String("to", string(to)))
			r.report.State = to

			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.report.State, to)
}

func (r *run) fail(err error) {
	r.report.Errors = append(r.report.Errors, err.Error())
	r.log.Error("run failed", zap.Error(err))
	_ = r.transition(m.StateFailed)
}

func (w *workflow) begin(mode m.Mode, root m.Path) (*run, error) {
	absRoot, err := w.FS.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	report := m.NewRunReport(w.newID(), mode, absRoot)
	report.StartedAt = w.now().UTC()

	return &run{
		report: report,
		log:    w.Logger.With(zap.String("run", report.ID), zap.String("mode", string(mode))),
	}, nil
}

// finish stamps, persists, audits and displays the report.
func (w *workflow) finish(ctx context.Context, r *run) *m.RunReport {
	report := r.report
	report.FinishedAt = w.now().UTC()

	if w.reportsDir != "" {
		if path, err := w.Reports.SaveReport(w.reportsDir, report); err != nil {
			r.log.Warn("failed to save report", zap.Error(err))
		} else {
			r.log.Debug("report saved", zap.String("path", string(path)))
		}
	}

	if w.Audit != nil {
		if err := w.Audit.Record(ctx, report); err != nil {
			r.log.Warn("failed to record audit entry", zap.Error(err))
		}
	}

	r.log.Info("run finished",
		zap.String("state", string(report.State)),
		zap.Int("files", len(report.PerFile)),
		zap.Int("changed", len(report.Changed())),
		zap.Int("unfixed", len(report.Unfixed())),
		zap.Int("errors", len(report.Errors)))

	if err := w.UI.DisplayReport(report); err != nil {
		r.log.Warn("failed to display report", zap.Error(err))
	}

	return report
}

// fileJob is one target file with the diagnostics that point at it.
type fileJob struct {
	path  m.Path
	rel   m.Path
	diags []m.Diagnostic
}

type fileOutcome struct {
	cs  m.FileChangeSet
	err error
}

// target is a prepared file waiting for the execute phase.
type target struct {
	job     fileJob
	outcome fileOutcome
}

func (w *workflow) Validate(ctx context.Context, args ValidateArgs) (*m.RunReport, error) {
	r, err := w.begin(m.ModeValidate, args.Root)
	if err != nil {
		return nil, err
	}

	targets := w.validatePhase(ctx, r, args)
	w.record(r, targets, args.Diff, false)
	w.UI.Close()

	return w.finish(ctx, r), nil
}

func (w *workflow) Execute(ctx context.Context, args ExecuteArgs) (*m.RunReport, error) {
	r, err := w.begin(m.ModeExecute, args.ValidateArgs.Root)
	if err != nil {
		return nil, err
	}

	targets := w.validatePhase(ctx, r, args.ValidateArgs)
	if r.report.State == m.StateValidationPassed {
		w.executePhase(r, targets, args.Backup)
	}

	w.record(r, targets, args.Diff, false)
	w.UI.Close()

	return w.finish(ctx, r), nil
}

// validatePhase rewrites and validates every target file without writing.
func (w *workflow) validatePhase(ctx context.Context, r *run, args ValidateArgs) []target {
	if err := r.transition(m.StateValidating); err != nil {
		r.fail(err)
		return nil
	}

	parsed := w.Parser.ParseDetailed(args.Diagnostics)
	for _, line := range parsed.Skipped {
		r.log.Debug("skipped analyzer line", zap.Int("line", line))
	}

	diags := ClassifyAll(w.Classifier, parsed.Diagnostics)
	for _, d := range diags {
		r.report.CountsByCategory[d.Category]++
		r.report.CountsByPriority[d.Priority]++
	}

	jobs := w.groupByFile(r, diags, args.Filter)

	_ = w.UI.Start(controller.WithMode(r.report.Mode), controller.WithTotal(len(jobs)))

	outcomes := w.prepareAll(ctx, len(jobs), args.Parallel, func(ctx context.Context, i int) (m.FileChangeSet, error) {
		return w.Orchestrator.Prepare(ctx, jobs[i].path, jobs[i].diags)
	})

	targets := make([]target, len(jobs))
	for i := range jobs {
		targets[i] = target{job: jobs[i], outcome: outcomes[i]}
	}

	w.concludeValidation(r, targets)

	return targets
}

// groupByFile resolves diagnostic paths against the root and groups them in
// stable path order. Diagnostics outside the root are reported and dropped.
func (w *workflow) groupByFile(r *run, diags []m.Diagnostic, filter Filter) []fileJob {
	byPath := make(map[m.Path]*fileJob)

	for _, d := range diags {
		if !filter.keep(d) {
			continue
		}

		path := d.File
		if !filepath.IsAbs(string(path)) {
			path = w.FS.JoinPath(string(r.report.Root), string(path))
		}

		rel, err := w.FS.RelPath(r.report.Root, path)
		if err != nil || strings.HasPrefix(string(rel), "..") {
			r.report.Errors = append(r.report.Errors,
				m.NewRunError(m.KindIO, d.File, errors.New("outside of root")).Error())

			continue
		}

		job, ok := byPath[path]
		if !ok {
			job = &fileJob{path: path, rel: rel}
			byPath[path] = job
		}

		job.diags = append(job.diags, d)
	}

	jobs := make([]fileJob, 0, len(byPath))
	for _, job := range byPath {
		jobs = append(jobs, *job)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].rel < jobs[j].rel })

	return jobs
}

// prepareAll runs prepare for every index with at most parallel workers.
// Each outcome lands in its own slot, so results keep job order.
func (w *workflow) prepareAll(ctx context.Context, n, parallel int,
	prepare func(ctx context.Context, i int) (m.FileChangeSet, error)) []fileOutcome {
	outcomes := make([]fileOutcome, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallel))

	for i := range n {
		g.Go(func() error {
			cs, err := prepare(gctx, i)
			outcomes[i] = fileOutcome{cs: cs, err: err}

			return nil
		})
	}

	_ = g.Wait()

	return outcomes
}

// concludeValidation folds prepared files into the report and picks the
// validation verdict: it fails only when changes were produced and none of
// them passed the syntax check.
func (w *workflow) concludeValidation(r *run, targets []target) {
	var changed, rejected int

	for i := range targets {
		t := &targets[i]
		cs := &t.outcome.cs

		if t.outcome.err != nil {
			r.report.Errors = append(r.report.Errors, t.outcome.err.Error())
			r.log.Warn("file skipped", zap.String("path", string(t.job.rel)), zap.Error(t.outcome.err))

			continue
		}

		switch {
		case !cs.Valid:
			rejected++
			r.report.Errors = append(r.report.Errors,
				m.NewRunError(m.KindValidation, t.job.rel, errors.New(cs.ValidationDetail)).Error())
			r.log.Warn("validation failed, changes discarded",
				zap.String("path", string(t.job.rel)), zap.String("detail", cs.ValidationDetail))
		case cs.Changed():
			changed++
		}

		for _, u := range cs.Unfixed {
			r.log.Debug("diagnostic left unfixed",
				zap.String("path", string(t.job.rel)),
				zap.Int("line", u.Line),
				zap.String("reason", string(u.Reason)))
		}
	}

	if rejected > 0 && changed == 0 {
		_ = r.transition(m.StateValidationFailed)
		return
	}

	_ = r.transition(m.StateValidationPassed)
	r.log.Debug("validation passed", zap.Int("changed", changed), zap.Int("rejected", rejected))
}

// executePhase snapshots the root when asked to and there is something to
// write, then writes every valid, changed file. A snapshot failure aborts before anything is written.
func (w *workflow) executePhase(r *run, targets []target, backup bool) {
	if err := r.transition(m.StateExecuting); err != nil {
		r.fail(err)
		return
	}

	if backup && anyPending(targets) {
		snapshot, err := w.Backups.Snapshot(r.report.Root)
		if err != nil {
			r.fail(err)
			return
		}

		r.report.Snapshot = &snapshot
	}

	for i := range targets {
		t := &targets[i]
		if t.outcome.err != nil {
			continue
		}

		if err := w.Orchestrator.Commit(&t.outcome.cs); err != nil {
			r.report.Errors = append(r.report.Errors, err.Error())
			r.log.Warn("write failed", zap.String("path", string(t.job.rel)), zap.Error(err))

			continue
		}

		if t.outcome.cs.Written {
			r.log.Info("file written",
				zap.String("path", string(t.job.rel)),
				zap.Strings("rules", t.outcome.cs.AppliedRuleIDs))
		}
	}

	_ = r.transition(m.StateCompleted)
}

func anyPending(targets []target) bool {
	for i := range targets {
		cs := &targets[i].outcome.cs
		if targets[i].outcome.err == nil && cs.Valid && cs.Changed() {
			return true
		}
	}

	return false
}

// record appends the summaries of targets to the report in order. With
// onlyTouched, files no rule touched are left out.
func (w *workflow) record(r *run, targets []target, withDiff, onlyTouched bool) {
	for i := range targets {
		t := &targets[i]

		var summary m.FileSummary

		if t.outcome.err != nil {
			summary = m.FileSummary{Path: t.job.rel, Detail: t.outcome.err.Error()}
		} else {
			cs := &t.outcome.cs
			if onlyTouched && cs.Valid && len(cs.AppliedRuleIDs) == 0 && len(cs.Unfixed) == 0 {
				continue
			}

			summary = cs.Summary()
			summary.Path = t.job.rel

			if withDiff && cs.Changed() {
				unified, _, err := diff.Unified(filepath.ToSlash(string(t.job.rel)), string(cs.Original), string(cs.Working))
				if err != nil {
					r.log.Warn("failed to render diff", zap.String("path", string(t.job.rel)), zap.Error(err))
				}

				summary.Diff = unified
			}
		}

		if summary.AppliedRuleIDs == nil {
			summary.AppliedRuleIDs = []string{}
		}

		r.report.PerFile = append(r.report.PerFile, summary)
		w.UI.DisplayFileResult(summary)
	}
}

func (w *workflow) Rename(ctx context.Context, args RenameArgs) (*m.RunReport, error) {
	symbols, err := NewSymbolMap(args.Entries)
	if err != nil {
		return nil, err
	}

	r, err := w.begin(m.ModeExecute, args.Root)
	if err != nil {
		return nil, err
	}

	if err := r.transition(m.StateValidating); err != nil {
		return nil, err
	}

	files, err := w.sourceFiles(r.report.Root, args.Extensions)
	if err != nil {
		r.fail(m.NewRunError(m.KindIO, r.report.Root, err))
		w.UI.Close()

		return w.finish(ctx, r), nil
	}

	jobs := make([]fileJob, 0, len(files))
	for _, path := range files {
		rel, _ := w.FS.RelPath(r.report.Root, path)
		jobs = append(jobs, fileJob{path: path, rel: rel})
	}

	_ = w.UI.Start(controller.WithMode(m.ModeExecute), controller.WithTotal(len(jobs)))

	rewriter := rules.NewSymbolRename(symbols)
	outcomes := w.prepareAll(ctx, len(jobs), args.Parallel, func(ctx context.Context, i int) (m.FileChangeSet, error) {
		return w.Orchestrator.PrepareRewrite(ctx, jobs[i].path, rewriter)
	})

	targets := make([]target, len(jobs))
	for i := range jobs {
		targets[i] = target{job: jobs[i], outcome: outcomes[i]}
	}

	w.concludeValidation(r, targets)
	if r.report.State == m.StateValidationPassed {
		w.executePhase(r, targets, true)
	}

	w.record(r, targets, args.Diff, true)
	w.UI.Close()

	return w.finish(ctx, r), nil
}

// sourceFiles lists files under root with one of the extensions, skipping
// hidden directories and the configured skip list.
func (w *workflow) sourceFiles(root m.Path, extensions []string) ([]m.Path, error) {
	skip := make(map[m.Path]bool, len(w.skipDirs))

	for _, dir := range w.skipDirs {
		if abs, err := w.FS.Abs(dir); err == nil {
			skip[abs] = true
		}
	}

	files := make([]m.Path, 0)

	err := w.FS.Walk(root, func(dir m.Path) bool {
		return skip[dir] || strings.HasPrefix(filepath.Base(string(dir)), ".")
	}, func(path m.Path, _ os.FileInfo) error {
		if hasExtension(path, extensions) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func hasExtension(path m.Path, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(string(path)))
	for _, want := range extensions {
		if strings.ToLower(want) == ext {
			return true
		}
	}

	return false
}

func (w *workflow) Rollback(ctx context.Context, args RollbackArgs) (*m.RunReport, error) {
	r, err := w.begin(m.ModeRollback, args.Root)
	if err != nil {
		return nil, err
	}

	if err := r.transition(m.StateRollingBack); err != nil {
		return nil, err
	}

	var snapshot m.BackupSnapshot

	if args.Snapshot != "" {
		snapshot, err = w.Backups.Find(args.Snapshot)
		if err == nil && snapshot.Root != r.report.Root {
			err = m.NewRunError(m.KindBackup, r.report.Root, fmt.Errorf("%w: %s was taken under %s", ErrForeignSnapshot, snapshot.Timestamp, snapshot.Root))
		}
	} else {
		snapshot, err = w.Backups.Latest(r.report.Root)
	}

	if err == nil {
		r.report.Snapshot = &snapshot
		err = w.Backups.Restore(snapshot)
	}

	if err != nil {
		r.fail(err)
		return w.finish(ctx, r), nil
	}

	for _, entry := range snapshot.Manifest {
		r.report.PerFile = append(r.report.PerFile, m.FileSummary{
			Path:           m.Path(entry),
			AppliedRuleIDs: []string{},
			Valid:          true,
			Written:        true,
		})
	}

	_ = r.transition(m.StateCompleted)

	return w.finish(ctx, r), nil
}

func (w *workflow) Rules() error {
	infos := make([]m.RuleInfo, 0, len(w.Registry.Rules()))
	for _, rule := range w.Registry.Rules() {
		infos = append(infos, m.RuleInfo{ID: rule.ID(), Description: rule.Description()})
	}

	table := make([]m.ClassRuleInfo, 0, len(w.Classifier.Rules()))
	for _, rule := range w.Classifier.Rules() {
		table = append(table, m.ClassRuleInfo{
			Pattern:  rule.Pattern.String(),
			Category: rule.Category,
			Priority: rule.Priority,
			Strategy: rule.Strategy,
		})
	}

	return w.UI.DisplayRules(infos, table)
}

func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	switch {
	case args.History:
		if w.Audit == nil {
			return errors.New("audit history is disabled")
		}

		entries, err := w.Audit.History(ctx, args.Limit)
		if err != nil {
			return err
		}

		return w.UI.DisplayHistory(entries)
	case args.List:
		reports, err := w.Reports.LoadReports(args.Reports)
		if err != nil {
			return err
		}

		return w.UI.DisplayReports(reports)
	default:
		report, err := w.Reports.LoadReport(args.Reports, args.ID)
		if err != nil {
			return err
		}

		return w.UI.DisplayReport(report)
	}
}

// ExitCode maps a finished report to the process exit status. Validate runs
// only fail when the run itself failed; execute runs also fail when any
// targeted file was left unfixed, invalid or unwritten.
func ExitCode(report *m.RunReport) int {
	if report == nil || report.State == m.StateFailed {
		return 1
	}

	if report.Mode != m.ModeExecute {
		return 0
	}

	if report.State != m.StateCompleted || len(report.Errors) > 0 {
		return 1
	}

	for _, f := range report.PerFile {
		if f.NeedsAttention() || (f.Changed && !f.Written) {
			return 1
		}
	}

	return 0
}
