package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Phase is the lifecycle position of a driver run.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseSetup
	PhasePassesConfigured
	PhasePreprocessed
	PhasePostprocessed
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseSetup:
		return "setup"
	case PhasePassesConfigured:
		return "passes-configured"
	case PhasePreprocessed:
		return "preprocessed"
	case PhasePostprocessed:
		return "postprocessed"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Backend performs the native parsing and code emission on behalf of the driver.
type Backend interface {
	Parse(ctx context.Context, d *Driver) (*ASTContext, error)
	Emit(ctx context.Context, d *Driver, ast *ASTContext) error
}

// ErrAlreadyRun is returned when Run is called on a driver that has already
// started a run.
var ErrAlreadyRun = errors.New("driver already ran")

// Driver owns the option sets and sequences one generation run.
type Driver struct {
	Options       Options
	ParserOptions ParserOptions

	backend Backend
	logger  *slog.Logger
	phase   Phase
	started bool
}

func NewDriver(backend Backend, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{backend: backend, logger: logger}
}

// Phase returns the last lifecycle phase the run completed.
func (d *Driver) Phase() Phase { return d.phase }

func (d *Driver) Logger() *slog.Logger { return d.logger }

// Run performs a single generation run: setup, pass setup, parse,
// pre-process, emit, post-process. A setup failure aborts before the backend
// is touched. Backend failures come back as *ToolchainError.
func (d *Driver) Run(ctx context.Context, lib Library) error {
	if d.started {
		return ErrAlreadyRun
	}
	d.started = true

	d.logger.Debug("Running setup hook")
	if err := lib.OnSetup(d); err != nil {
		return err
	}
	d.phase = PhaseSetup

	d.logger.Debug("Running pass setup hook")
	if err := lib.OnConfigurePasses(d); err != nil {
		return err
	}
	d.phase = PhasePassesConfigured

	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.Info("Parsing native headers",
		"modules", len(d.Options.modules),
		"generator", d.Options.GeneratorKind,
		"rtti", d.ParserOptions.EnableRTTI)
	ast, err := d.backend.Parse(ctx, d)
	if err != nil {
		return asToolchainError("parse", err)
	}

	if err := lib.OnPreprocess(d, ast); err != nil {
		return err
	}
	d.phase = PhasePreprocessed

	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.Info("Emitting bindings", "output", d.Options.OutputDir)
	if err := d.backend.Emit(ctx, d, ast); err != nil {
		return asToolchainError("emit", err)
	}

	if err := lib.OnPostprocess(d, ast); err != nil {
		return err
	}
	d.phase = PhasePostprocessed

	d.phase = PhaseDone
	return nil
}

func asToolchainError(stage string, err error) error {
	var te *ToolchainError
	if errors.As(err, &te) {
		return err
	}
	return &ToolchainError{Stage: stage, Err: err}
}
