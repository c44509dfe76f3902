//go:build !linux

package file

import "os"

// datasync falls back to a full sync on platforms without a distinct
// data-only sync call.
func datasync(f *os.File) error {
	return f.Sync()
}
