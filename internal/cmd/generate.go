package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/configpaths"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/coordinator"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/log"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/toolchain"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/version"
)

type Generate struct {
	Selection `embed:""`

	Toolchain     string   `help:"Binding generator CLI to invoke" default:"CppSharp.CLI" env:"CUBBYFLOW_BINDGEN_TOOLCHAIN"`
	ToolchainArgs []string `name:"toolchain-arg" help:"Extra argument passed through to the generator CLI (repeatable)"`
	Output        string   `help:"Directory the generator writes wrappers to" env:"CUBBYFLOW_BINDGEN_OUTPUT"`
	Manifest      string   `help:"Write the resolved descriptor to this file (.json, .yaml or .toml)" env:"CUBBYFLOW_BINDGEN_MANIFEST"`
	DryRun        bool     `help:"Resolve and check everything but do not invoke the generator" env:"CUBBYFLOW_BINDGEN_DRY_RUN"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, transcript log.Transcript) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := g.RunConfig()
	if err != nil {
		return err
	}
	if g.Output != "" {
		if cfg.OutputDir, err = filepath.Abs(g.Output); err != nil {
			return err
		}
	}

	logger.Info("Starting binding generation",
		"workdir", cfg.WorkingDirectory,
		"flavor", cfg.Flavor,
		"toolchain", g.Toolchain,
		"dryRun", g.DryRun)

	coord := coordinator.New(cfg, logger)
	backend := &toolchain.ExecBackend{
		Program:    g.Toolchain,
		ExtraArgs:  g.ToolchainArgs,
		Transcript: transcript,
		DryRun:     g.DryRun,
	}
	driver := toolchain.NewDriver(backend, logger)
	if err := driver.Run(ctx, coord); err != nil {
		return err
	}

	if g.Manifest != "" {
		if err := writeManifest(g.Manifest, coord.Descriptor(), coord.Options()); err != nil {
			return err
		}
		logger.Info("Wrote manifest", "path", g.Manifest)
	}

	logger.Info("Binding generation complete", "module", coord.Descriptor().Name(), "phase", driver.Phase())
	return nil
}

func writeManifest(path string, d *bindgen.ModuleDescriptor, opts bindgen.GenerationOptions) error {
	m := bindgen.NewManifest(d, opts)
	v, err := version.Get()
	if err != nil {
		return err
	}
	m.Version = v

	format := normalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "json"
	}
	data, err := m.Encode(format)
	if err != nil {
		return err
	}
	if err := configpaths.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
