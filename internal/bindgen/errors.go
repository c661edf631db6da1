package bindgen

import "fmt"

// PathResolutionError reports a working directory or computed root that does
// not exist or cannot be read.
type PathResolutionError struct {
	Role string // "working directory", "include root", ...
	Path string
	Err  error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("resolve %s %q: %v", e.Role, e.Path, e.Err)
}

func (e *PathResolutionError) Unwrap() error { return e.Err }
