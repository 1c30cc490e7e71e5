// Package cmd provides the root command and CLI setup for mender.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mouse-blink/mender/internal/adapter"
	"github.com/mouse-blink/mender/internal/config"
	"github.com/mouse-blink/mender/internal/controller"
	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

// Wired in PersistentPreRunE unless a test has already replaced them.
var workflow domain.Workflow
var ui controller.UI
var logger *zap.Logger
var cfg *config.Config
var closers []func() error

var configFlag string
var rootFlag string
var backupsFlag string
var reportsOutputDirFlag string
var formatFlag string
var verboseFlag bool
var noAuditFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mender",
		Short: "Diagnostic-driven source remediation",
		Long: `Mender reads static-analysis output, classifies every diagnostic and
applies registered, idempotent rewrite strategies to the affected files.

Rewritten files are syntax-checked before anything is written; files that
fail the check are left untouched and reported. Destructive operations take
a timestamped snapshot first, and "mender rollback" restores it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "config file (default .mender.yaml in the working directory)")
	flags.StringVarP(&rootFlag, "root", "r", "", "project root the diagnostics refer to")
	flags.StringVar(&backupsFlag, "backups", "", "snapshot directory")
	flags.StringVar(&reportsOutputDirFlag, "reports", "", "directory for persisted run reports")
	flags.StringVarP(&formatFlag, "format", "f", controller.FormatText, "output format: text, json or yaml")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&noAuditFlag, "no-audit", false, "do not record the run in the audit database")

	return cmd
}

// setup loads configuration and wires the workflow for the command about to run.
func setup(cmd *cobra.Command, _ []string) error {
	if err := initLogger(); err != nil {
		return err
	}

	v := viper.New()
	bindings := map[string]string{
		"root":        "root",
		"backups.dir": "backups",
		"reports.dir": "reports",
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	loaded, err := config.Load(v, configFlag)
	if err != nil {
		return err
	}

	cfg = loaded

	if workflow != nil {
		return nil
	}

	return wire(cmd)
}

func initLogger() error {
	if logger != nil {
		return nil
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if verboseFlag {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	built, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger = built

	return nil
}

func wire(cmd *cobra.Command) error {
	var err error

	ui, err = controller.NewUI(cmd, formatFlag, formatFlag == controller.FormatText && controller.IsTTY(os.Stdout))
	if err != nil {
		return err
	}

	validator, err := newValidator(cfg.Validator)
	if err != nil {
		return err
	}

	classRules, err := classRulesFromConfig(cfg.Classifier.Rules)
	if err != nil {
		return err
	}

	fs := adapter.NewLocalFileSystem()
	registry := domain.NewDefaultRegistry()
	backupsDir := m.Path(cfg.Backups.Dir)
	reportsDir := m.Path(cfg.Reports.Dir)

	deps := domain.Dependencies{
		FS:           fs,
		Parser:       domain.NewDiagnosticParser(),
		Classifier:   domain.NewClassifier(classRules),
		Registry:     registry,
		Orchestrator: domain.NewOrchestrator(fs, domain.NewEngine(registry), validator),
		Backups:      domain.NewBackupManager(fs, backupsDir, logger, domain.WithExcludes(append([]m.Path{reportsDir}, auditFiles()...)...)),
		Reports:      adapter.NewReportStore(),
		UI:           ui,
		Logger:       logger,
	}

	if cfg.Audit.Enabled && !noAuditFlag {
		store, err := adapter.OpenAuditStore(m.Path(cfg.Audit.Path))
		if err != nil {
			logger.Warn("audit history unavailable", zap.Error(err))
		} else {
			deps.Audit = store
			closers = append(closers, store.Close)
		}
	}

	workflow = domain.NewWorkflow(deps,
		domain.WithReportsDir(reportsDir),
		domain.WithSkipDirs(backupsDir, reportsDir))

	return nil
}

// auditFiles are the SQLite database and its sidecar files.
func auditFiles() []m.Path {
	path := filepath.Clean(cfg.Audit.Path)

	return []m.Path{m.Path(path), m.Path(path + "-wal"), m.Path(path + "-shm")}
}

func newValidator(vc config.ValidatorConfig) (adapter.SyntaxValidator, error) {
	if vc.Kind == config.ValidatorCommand {
		return adapter.NewCommandValidator(vc.Command, vc.Args...), nil
	}

	return adapter.NewTreeSitterValidator(vc.Language)
}

func classRulesFromConfig(rows []config.ClassRule) ([]domain.ClassRule, error) {
	if len(rows) == 0 {
		return domain.DefaultClassRules(), nil
	}

	out := make([]domain.ClassRule, 0, len(rows))

	for i, row := range rows {
		rule, err := domain.NewClassRule(row.Pattern, m.Category(row.Category),
			m.ParsePriority(row.Priority), m.StrategyID(row.Strategy))
		if err != nil {
			return nil, fmt.Errorf("classifier.rules[%d]: %w", i, err)
		}

		out = append(out, rule)
	}

	return out, nil
}

func teardown() error {
	var err error

	for _, closeFn := range closers {
		err = multierr.Append(err, closeFn())
	}

	closers = nil

	if logger != nil {
		_ = logger.Sync()
	}

	return err
}

// ExitError carries a non-zero exit status for a run whose report has
// already been displayed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitFor turns a finished report into a command result.
func exitFor(report *m.RunReport) error {
	if code := domain.ExitCode(report); code != 0 {
		return &ExitError{Code: code}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
