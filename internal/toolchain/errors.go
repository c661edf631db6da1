package toolchain

import "fmt"

// ToolchainError wraps a failure surfaced by the backend while parsing or
// emitting. The cause is kept as-is.
type ToolchainError struct {
	Stage string
	Err   error
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("toolchain %s: %v", e.Stage, e.Err)
}

func (e *ToolchainError) Unwrap() error { return e.Err }
