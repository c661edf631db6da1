//go:build windows

package bindgen

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// readable reports whether dir is a directory the current process can list.
// Windows has no access(2); ACL denials only surface when the directory is
// opened and enumerated.
func readable(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return errors.New("not a directory")
	}

	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
