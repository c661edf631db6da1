// Package coordinator implements the hook set the toolchain driver calls
// back into for one CubbyFlow binding run.
package coordinator

import (
	"errors"
	"log/slog"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/toolchain"
)

// RunConfig parameterizes one generation run.
type RunConfig struct {
	WorkingDirectory string
	Flavor           bindgen.Flavor
	Layout           bindgen.Layout
	Headers          []string
	OutputDir        string
}

var errSetupTwice = errors.New("setup already ran for this run")

// Coordinator installs the module descriptor during setup and leaves the
// remaining hooks empty.
type Coordinator struct {
	toolchain.NopHooks

	cfg    RunConfig
	logger *slog.Logger

	descriptor *bindgen.ModuleDescriptor
	options    bindgen.GenerationOptions
}

func New(cfg RunConfig, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{cfg: cfg, logger: logger}
}

// OnSetup builds the descriptor and installs it with the generation options
// on the driver. Errors are returned unchanged.
func (c *Coordinator) OnSetup(d *toolchain.Driver) error {
	if c.descriptor != nil {
		return errSetupTwice
	}

	desc, err := bindgen.BuildConfig(bindgen.Config{
		WorkingDirectory: c.cfg.WorkingDirectory,
		Flavor:           c.cfg.Flavor,
		Layout:           c.cfg.Layout,
		Headers:          c.cfg.Headers,
	})
	if err != nil {
		return err
	}
	opts := bindgen.OptionsFor(c.cfg.Flavor)

	if err := d.Options.AddModule(desc); err != nil {
		return err
	}
	d.Options.GeneratorKind = toolchain.GeneratorFor(opts.Flavor)
	if c.cfg.OutputDir != "" {
		d.Options.OutputDir = c.cfg.OutputDir
	}
	if opts.EnableRTTI {
		d.ParserOptions.EnableRTTI = true
	}

	c.descriptor = desc
	c.options = opts
	c.logger.Info("Module descriptor installed",
		"module", desc.Name(),
		"flavor", opts.Flavor,
		"headers", len(desc.Headers()),
		"includeDirs", desc.IncludeDirs(),
		"fingerprint", desc.Fingerprint())
	return nil
}

// Descriptor returns the descriptor built during setup, or nil before it.
func (c *Coordinator) Descriptor() *bindgen.ModuleDescriptor { return c.descriptor }

// Options returns the generation options chosen during setup.
func (c *Coordinator) Options() bindgen.GenerationOptions { return c.options }
