package domain

import (
	"bytes"
	"context"
	"errors"

	"github.com/mouse-blink/mender/internal/adapter"
	"github.com/mouse-blink/mender/internal/domain/rules"
	m "github.com/mouse-blink/mender/internal/model"
)

// ErrModifiedOnDisk is returned by Commit when a file changed after it was read.
var ErrModifiedOnDisk = errors.New("file modified on disk since it was read")

// Orchestrator drives one file through rewrite, validation and write.
// A change set only reaches the disk when the validator accepted it.
type Orchestrator interface {
	// Prepare reads path, applies the diagnostics and validates the result.
	Prepare(ctx context.Context, path m.Path, diags []m.Diagnostic) (m.FileChangeSet, error)
	// PrepareRewrite is Prepare for whole-file rewriters such as symbol renaming.
	PrepareRewrite(ctx context.Context, path m.Path, rewriters ...rules.Rewriter) (m.FileChangeSet, error)
	// Commit writes a valid, changed change set.
	Commit(cs *m.FileChangeSet) error
}

type orchestrator struct {
	fs        adapter.FileSystem
	engine    Engine
	validator adapter.SyntaxValidator
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem, rewrite engine and syntax validator.
func NewOrchestrator(fs adapter.FileSystem, engine Engine, validator adapter.SyntaxValidator) Orchestrator {
	return &orchestrator{
		fs:        fs,
		engine:    engine,
		validator: validator,
	}
}

func (o *orchestrator) Prepare(ctx context.Context, path m.Path, diags []m.Diagnostic) (m.FileChangeSet, error) {
	content, err := o.fs.ReadFile(path)
	if err != nil {
		return m.FileChangeSet{Path: path}, m.NewRunError(m.KindIO, path, err)
	}

	cs := o.engine.Apply(path, content, diags)
	o.validate(ctx, &cs)

	return cs, nil
}

func (o *orchestrator) PrepareRewrite(ctx context.Context, path m.Path, rewriters ...rules.Rewriter) (m.FileChangeSet, error) {
	content, err := o.fs.ReadFile(path)
	if err != nil {
		return m.FileChangeSet{Path: path}, m.NewRunError(m.KindIO, path, err)
	}

	cs := o.engine.Rewrite(path, content, rewriters...)
	o.validate(ctx, &cs)

	return cs, nil
}

// validate marks unchanged files valid without consulting the validator.
// A rejected change set is discarded so the original stays authoritative.
func (o *orchestrator) validate(ctx context.Context, cs *m.FileChangeSet) {
	if !cs.Changed() {
		cs.Valid = true
		return
	}

	verdict, err := o.validator.Validate(ctx, cs.Path, cs.Working)
	if err != nil {
		verdict = adapter.Verdict{Valid: false, Detail: err.Error()}
	}

	cs.Valid = verdict.Valid
	cs.ValidationDetail = verdict.Detail

	if !cs.Valid {
		cs.Discard()
	}
}

func (o *orchestrator) Commit(cs *m.FileChangeSet) error {
	if !cs.Valid || !cs.Changed() {
		return nil
	}

	current, err := o.fs.ReadFile(cs.Path)
	if err != nil {
		return m.NewRunError(m.KindIO, cs.Path, err)
	}

	if !bytes.Equal(current, cs.Original) {
		return m.NewRunError(m.KindIO, cs.Path, ErrModifiedOnDisk)
	}

	if err := o.fs.WriteFile(cs.Path, cs.Working); err != nil {
		return m.NewRunError(m.KindIO, cs.Path, err)
	}

	cs.Written = true

	return nil
}
