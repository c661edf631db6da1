package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
	"github.com/CubbyFlow/cubbyflow-bindgen/internal/coordinator"
)

// Selection holds the flags that pick what a run binds.
type Selection struct {
	WorkDir string   `name:"workdir" help:"Build directory the native library was produced in (defaults to the current directory)" env:"CUBBYFLOW_BINDGEN_WORKDIR"`
	Flavor  string   `help:"Output flavor: managed or embedded" enum:"managed,embedded" default:"managed" env:"CUBBYFLOW_BINDGEN_FLAVOR"`
	Headers []string `name:"header" help:"Header identifier relative to an include root; replaces the flavor's header set (repeatable)" env:"CUBBYFLOW_BINDGEN_HEADERS"`

	bindgen.Layout `embed:""`
}

// RunConfig resolves the selection into an explicit run configuration.
func (s *Selection) RunConfig() (coordinator.RunConfig, error) {
	flavor, err := bindgen.ParseFlavor(s.Flavor)
	if err != nil {
		return coordinator.RunConfig{}, err
	}

	wd := s.WorkDir
	if wd == "" {
		if wd, err = os.Getwd(); err != nil {
			return coordinator.RunConfig{}, fmt.Errorf("get working directory: %w", err)
		}
	}
	if wd, err = filepath.Abs(wd); err != nil {
		return coordinator.RunConfig{}, fmt.Errorf("resolve working directory: %w", err)
	}

	return coordinator.RunConfig{
		WorkingDirectory: wd,
		Flavor:           flavor,
		Layout:           s.Layout,
		Headers:          s.Headers,
	}, nil
}
