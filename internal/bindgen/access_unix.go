//go:build !windows

package bindgen

import "golang.org/x/sys/unix"

// readable reports whether the directory can be listed and traversed by the
// current process.
func readable(dir string) error {
	return unix.Access(dir, unix.R_OK|unix.X_OK)
}
