package bindgen

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// ModuleName names the generated wrapper module.
	ModuleName = "CubbyFlowSharp"
	// LibraryName is the native artifact the wrappers link against.
	LibraryName = "CubbyFlow.lib"
)

// Config parameterizes one descriptor build.
type Config struct {
	WorkingDirectory string
	Flavor           Flavor
	Layout           Layout

	// Headers replaces the flavor's fixed header set when non-empty.
	Headers []string
}

// GenerationOptions are the run-wide switches that are not part of a module.
type GenerationOptions struct {
	Flavor     Flavor
	EnableRTTI bool
}

// OptionsFor returns the generation options implied by the flavor.
func OptionsFor(flavor Flavor) GenerationOptions {
	return GenerationOptions{Flavor: flavor, EnableRTTI: flavor.EnableRTTI()}
}

// ModuleDescriptor is one binding-generation unit. It is immutable once
// built; accessors hand out copies.
type ModuleDescriptor struct {
	name        string
	includeDirs []string
	headers     []string
	libraryDirs []string
	libraries   []string
}

func (d *ModuleDescriptor) Name() string {
	return d.name
}

// IncludeDirs returns the include roots in search order.
func (d *ModuleDescriptor) IncludeDirs() []string {
	return slices.Clone(d.includeDirs)
}

// Headers returns the header identifiers in generation order.
func (d *ModuleDescriptor) Headers() []string {
	return slices.Clone(d.headers)
}

func (d *ModuleDescriptor) LibraryDirs() []string {
	return slices.Clone(d.libraryDirs)
}

func (d *ModuleDescriptor) Libraries() []string {
	return slices.Clone(d.libraries)
}

// Build assembles the descriptor for a working directory using the legacy
// repository layout.
func Build(workingDirectory string, flavor Flavor) (*ModuleDescriptor, error) {
	return BuildConfig(Config{WorkingDirectory: workingDirectory, Flavor: flavor, Layout: DefaultLayout()})
}

// BuildConfig assembles the descriptor described by cfg. It either returns a
// complete descriptor or an error; the only side effects are existence and
// readability checks.
func BuildConfig(cfg Config) (*ModuleDescriptor, error) {
	wd := cfg.WorkingDirectory
	if wd == "" {
		return nil, &PathResolutionError{Role: "working directory", Path: wd, Err: errors.New("empty path")}
	}
	if !filepath.IsAbs(wd) {
		return nil, &PathResolutionError{Role: "working directory", Path: wd, Err: errors.New("path is not absolute")}
	}
	wd = filepath.Clean(wd)
	if cfg.Layout.AscendLevels < 0 {
		return nil, &PathResolutionError{Role: "repository root", Path: wd, Err: fmt.Errorf("negative ascend levels %d", cfg.Layout.AscendLevels)}
	}
	if err := checkDir("working directory", wd); err != nil {
		return nil, err
	}

	includeDirs := cfg.Layout.IncludeDirs(wd, cfg.Flavor)
	roles := []string{"include root", "third-party include root"}
	for i, dir := range includeDirs {
		if err := checkDir(roles[i], dir); err != nil {
			return nil, err
		}
	}

	headers := cfg.Flavor.Headers()
	if len(cfg.Headers) > 0 {
		var err error
		if headers, err = normalizeHeaders(cfg.Headers); err != nil {
			return nil, err
		}
	}

	return &ModuleDescriptor{
		name:        ModuleName,
		includeDirs: includeDirs,
		headers:     headers,
		libraryDirs: []string{wd},
		libraries:   []string{LibraryName},
	}, nil
}

func normalizeHeaders(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, h := range in {
		h = strings.TrimSpace(filepath.ToSlash(h))
		if h == "" {
			return nil, errors.New("empty header identifier")
		}
		if path.IsAbs(h) || filepath.IsAbs(h) {
			return nil, fmt.Errorf("header %q must be relative to an include directory", h)
		}
		h = path.Clean(h)
		if h == ".." || strings.HasPrefix(h, "../") {
			return nil, fmt.Errorf("header %q escapes the include directory", h)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("duplicate header %q", h)
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out, nil
}
