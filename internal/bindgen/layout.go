package bindgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultAscendLevels is how far the legacy layout climbs from the build
// directory (…/Generators/C#/<project>/bin/<config>) to the repository root.
const DefaultAscendLevels = 5

// Layout locates the shared include roots. Explicit roots win; empty roots
// fall back to the legacy relative layout below the repository root.
// Relative roots are resolved against the working directory.
type Layout struct {
	IncludeRoot    string `help:"Native include root; defaults to <repo>/Includes" env:"CUBBYFLOW_BINDGEN_INCLUDE_ROOT" yaml:"includeRoot,omitempty" toml:"includeRoot,omitempty" json:"includeRoot,omitempty"`
	ThirdPartyRoot string `help:"Third-party (boost) include root; defaults to <repo>/Libraries/boost" env:"CUBBYFLOW_BINDGEN_THIRD_PARTY_ROOT" yaml:"thirdPartyRoot,omitempty" toml:"thirdPartyRoot,omitempty" json:"thirdPartyRoot,omitempty"`
	AscendLevels   int    `name:"ascend" help:"Directory levels between the working directory and the repository root" default:"5" env:"CUBBYFLOW_BINDGEN_ASCEND" yaml:"ascendLevels,omitempty" toml:"ascendLevels,omitempty" json:"ascendLevels,omitempty"`
}

// DefaultLayout is the legacy layout: no explicit roots, repository root
// DefaultAscendLevels above the working directory.
func DefaultLayout() Layout {
	return Layout{AscendLevels: DefaultAscendLevels}
}

// RepoRoot returns the working directory ascended AscendLevels times. Zero
// levels means the working directory is the repository root.
func (l Layout) RepoRoot(workDir string) string {
	dir := filepath.Clean(workDir)
	for i := 0; i < l.AscendLevels; i++ {
		dir = filepath.Dir(dir)
	}
	return dir
}

func (l Layout) includeRoot(workDir string) string {
	if l.IncludeRoot != "" {
		return l.abs(workDir, l.IncludeRoot)
	}
	return filepath.Join(l.RepoRoot(workDir), "Includes")
}

func (l Layout) thirdPartyRoot(workDir string) string {
	if l.ThirdPartyRoot != "" {
		return l.abs(workDir, l.ThirdPartyRoot)
	}
	return filepath.Join(l.RepoRoot(workDir), "Libraries", "boost")
}

func (l Layout) abs(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}

// IncludeDirs returns the include directories for the flavor in the order the
// toolchain searches them.
func (l Layout) IncludeDirs(workDir string, flavor Flavor) []string {
	dirs := []string{l.includeRoot(workDir)}
	if flavor.NeedsThirdPartyIncludes() {
		dirs = append(dirs, l.thirdPartyRoot(workDir))
	}
	return dirs
}

func checkDir(role, dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return &PathResolutionError{Role: role, Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &PathResolutionError{Role: role, Path: dir, Err: errors.New("not a directory")}
	}
	if err := readable(dir); err != nil {
		return &PathResolutionError{Role: role, Path: dir, Err: fmt.Errorf("not readable: %w", err)}
	}
	return nil
}
