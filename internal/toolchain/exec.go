package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/log"
)

// DefaultProgram is the generator CLI looked up on PATH when none is configured.
const DefaultProgram = "CppSharp.CLI"

// ExecBackend runs an external generator CLI. Parse only resolves headers
// against the include directories; the CLI does the real parsing during Emit.
type ExecBackend struct {
	Program    string
	ExtraArgs  []string
	Transcript log.Transcript

	// DryRun logs the command line instead of executing it.
	DryRun bool
}

func (b *ExecBackend) Parse(ctx context.Context, d *Driver) (*ASTContext, error) {
	mods := d.Options.Modules()
	if len(mods) == 0 {
		return nil, fmt.Errorf("no modules configured")
	}
	var units []TranslationUnit
	for _, m := range mods {
		includeDirs := m.IncludeDirs()
		for _, h := range m.Headers() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p, ok := resolveHeader(includeDirs, h)
			if !ok {
				return nil, fmt.Errorf("module %s: header %q not found in include dirs %v", m.Name(), h, includeDirs)
			}
			units = append(units, TranslationUnit{Module: m.Name(), Header: h, Path: p})
		}
	}
	d.Logger().Debug("Resolved headers", "count", len(units))
	return NewASTContext(units), nil
}

func resolveHeader(includeDirs []string, header string) (string, bool) {
	for _, dir := range includeDirs {
		p := filepath.Join(dir, filepath.FromSlash(header))
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

func (b *ExecBackend) Emit(ctx context.Context, d *Driver, _ *ASTContext) error {
	program := b.Program
	if program == "" {
		program = DefaultProgram
	}
	args := append(Args(d), b.ExtraArgs...)

	if b.DryRun {
		d.Logger().Info("Dry run; skipping toolchain", "program", program, "args", strings.Join(args, " "))
		return nil
	}

	if d.Options.OutputDir != "" {
		if err := os.MkdirAll(d.Options.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	t := b.Transcript
	if t == nil {
		t = log.NewTranscript(nil)
	}
	stdout := log.StreamWriter(t, "stdout")
	stderr := log.StreamWriter(t, "stderr")
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	d.Logger().Debug("Starting toolchain", "program", program, "args", args)
	err := cmd.Run()
	_ = stdout.Close()
	_ = stderr.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", program, err)
	}
	return nil
}

// Args renders the driver options as generator CLI arguments. Headers come
// last, in descriptor order.
func Args(d *Driver) []string {
	var args []string
	args = append(args, "--generator", d.Options.GeneratorKind.String())
	if d.ParserOptions.EnableRTTI {
		args = append(args, "--rtti")
	}
	if d.Options.OutputDir != "" {
		args = append(args, "--output", d.Options.OutputDir)
	}
	for _, m := range d.Options.Modules() {
		args = append(args, "--module", m.Name())
		for _, dir := range m.IncludeDirs() {
			args = append(args, "-I"+dir)
		}
		for _, dir := range m.LibraryDirs() {
			args = append(args, "-L"+dir)
		}
		for _, lib := range m.Libraries() {
			args = append(args, "-l"+lib)
		}
		args = append(args, m.Headers()...)
	}
	return args
}
