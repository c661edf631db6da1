package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type fakeBackend struct {
	rec      *recorder
	parseErr error
	emitErr  error
}

func (f *fakeBackend) Parse(context.Context, *Driver) (*ASTContext, error) {
	f.rec.add("parse")
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return NewASTContext([]TranslationUnit{{Module: "m", Header: "a.h", Path: "/inc/a.h"}}), nil
}

func (f *fakeBackend) Emit(_ context.Context, _ *Driver, ast *ASTContext) error {
	f.rec.add("emit")
	if ast == nil {
		return errors.New("nil ast")
	}
	return f.emitErr
}

type fakeLibrary struct {
	rec      *recorder
	setupErr error
	seenAST  *ASTContext
}

func (l *fakeLibrary) OnSetup(d *Driver) error {
	l.rec.add("setup")
	return l.setupErr
}

func (l *fakeLibrary) OnConfigurePasses(*Driver) error {
	l.rec.add("passes")
	return nil
}

func (l *fakeLibrary) OnPreprocess(_ *Driver, ast *ASTContext) error {
	l.rec.add("preprocess")
	l.seenAST = ast
	return nil
}

func (l *fakeLibrary) OnPostprocess(_ *Driver, ast *ASTContext) error {
	l.rec.add("postprocess")
	if ast != l.seenAST {
		return errors.New("post-process saw a different ast")
	}
	return nil
}

func TestDriver_RunOrder(t *testing.T) {
	rec := &recorder{}
	d := NewDriver(&fakeBackend{rec: rec}, nil)

	require.NoError(t, d.Run(context.Background(), &fakeLibrary{rec: rec}))
	assert.Equal(t, []string{"setup", "passes", "parse", "preprocess", "emit", "postprocess"}, rec.calls)
	assert.Equal(t, PhaseDone, d.Phase())
}

func TestDriver_SetupFailureAborts(t *testing.T) {
	rec := &recorder{}
	sentinel := errors.New("bad layout")
	d := NewDriver(&fakeBackend{rec: rec}, nil)

	err := d.Run(context.Background(), &fakeLibrary{rec: rec, setupErr: sentinel})
	assert.Same(t, sentinel, err)
	assert.Equal(t, []string{"setup"}, rec.calls)
	assert.Equal(t, PhaseUninitialized, d.Phase())
}

func TestDriver_BackendErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("parse", func(t *testing.T) {
		rec := &recorder{}
		d := NewDriver(&fakeBackend{rec: rec, parseErr: boom}, nil)
		err := d.Run(context.Background(), &fakeLibrary{rec: rec})

		var te *ToolchainError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "parse", te.Stage)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"setup", "passes", "parse"}, rec.calls)
		assert.Equal(t, PhasePassesConfigured, d.Phase())
	})

	t.Run("emit", func(t *testing.T) {
		rec := &recorder{}
		d := NewDriver(&fakeBackend{rec: rec, emitErr: boom}, nil)
		err := d.Run(context.Background(), &fakeLibrary{rec: rec})

		var te *ToolchainError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "emit", te.Stage)
		assert.Equal(t, []string{"setup", "passes", "parse", "preprocess", "emit"}, rec.calls)
		assert.Equal(t, PhasePreprocessed, d.Phase())
	})

	t.Run("already wrapped", func(t *testing.T) {
		rec := &recorder{}
		inner := &ToolchainError{Stage: "emit", Err: boom}
		d := NewDriver(&fakeBackend{rec: rec, parseErr: inner}, nil)
		err := d.Run(context.Background(), &fakeLibrary{rec: rec})
		assert.Same(t, inner, err)
	})
}

func TestDriver_RunsOnce(t *testing.T) {
	rec := &recorder{}
	d := NewDriver(&fakeBackend{rec: rec}, nil)
	require.NoError(t, d.Run(context.Background(), &fakeLibrary{rec: rec}))

	err := d.Run(context.Background(), &fakeLibrary{rec: rec})
	assert.ErrorIs(t, err, ErrAlreadyRun)
	assert.Len(t, rec.calls, 6)
}

func TestDriver_CanceledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(&fakeBackend{rec: rec}, nil)
	err := d.Run(ctx, &fakeLibrary{rec: rec})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"setup", "passes"}, rec.calls)
}

type setupOnly struct {
	NopHooks

	desc *bindgen.ModuleDescriptor
}

func (s *setupOnly) OnSetup(d *Driver) error {
	d.Options.GeneratorKind = GeneratorEmbedded
	d.ParserOptions.EnableRTTI = true
	return d.Options.AddModule(s.desc)
}

func TestNopHooks_LeaveDriverUntouched(t *testing.T) {
	desc := buildDescriptor(t, bindgen.FlavorManaged)
	d := NewDriver(&fakeBackend{rec: &recorder{}}, nil)
	lib := &setupOnly{desc: desc}
	require.NoError(t, lib.OnSetup(d))

	before := *d
	ast := NewASTContext(nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, lib.OnConfigurePasses(d))
		require.NoError(t, lib.OnPreprocess(d, ast))
		require.NoError(t, lib.OnPostprocess(d, ast))
	}
	assert.Equal(t, before.Options.GeneratorKind, d.Options.GeneratorKind)
	assert.Equal(t, before.ParserOptions, d.ParserOptions)
	assert.Equal(t, before.Options.Modules(), d.Options.Modules())
	assert.Equal(t, desc.Headers(), d.Options.Modules()[0].Headers())
}

func TestOptions_AddModule(t *testing.T) {
	desc := buildDescriptor(t, bindgen.FlavorManaged)
	var o Options
	require.NoError(t, o.AddModule(desc))
	assert.Error(t, o.AddModule(desc), "duplicate module name")
	assert.Error(t, o.AddModule(nil))
	assert.Len(t, o.Modules(), 1)
}

func TestGeneratorFor(t *testing.T) {
	assert.Equal(t, GeneratorCSharp, GeneratorFor(bindgen.FlavorManaged))
	assert.Equal(t, GeneratorEmbedded, GeneratorFor(bindgen.FlavorEmbedded))
}

// buildDescriptor creates a repository layout with every header of the
// flavor present and returns its descriptor.
func buildDescriptor(t *testing.T, flavor bindgen.Flavor) *bindgen.ModuleDescriptor {
	t.Helper()
	root := t.TempDir()
	wd := filepath.Join(root, "a", "b", "c", "d", "e")
	require.NoError(t, os.MkdirAll(wd, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Libraries", "boost"), 0o755))
	for _, h := range flavor.Headers() {
		p := filepath.Join(root, "Includes", filepath.FromSlash(h))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("#pragma once\n"), 0o644))
	}
	desc, err := bindgen.Build(wd, flavor)
	require.NoError(t, err)
	return desc
}
