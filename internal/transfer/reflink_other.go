//go:build !linux

package transfer

import "os"

// tryReflink always reports unsupported outside Linux: no pack example or
// golang.org/x/sys exposes a portable reflink ioctl for macOS (APFS
// clonefile) or Windows (ReFS block clone), so those platforms fall
// through to the normal copy path.
func tryReflink(src, dst *os.File) (ok bool, err error) {
	return false, nil
}

const reflinkSupported = false
