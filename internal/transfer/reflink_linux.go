//go:build linux

package transfer

import (
	"os"

	"golang.org/x/sys/unix"
)

// tryReflink attempts a copy-on-write clone of src onto dst via the
// FICLONE ioctl. It reports ok=false (not an error) when the filesystem
// does not support cloning, so callers can fall through to a normal copy.
func tryReflink(src, dst *os.File) (ok bool, err error) {
	err = unix.IoctlFileClone(int(dst.Fd()), int(src.Fd()))
	if err == nil {
		return true, nil
	}
	switch err {
	case unix.ENOTTY, unix.EOPNOTSUPP, unix.EXDEV, unix.EINVAL:
		return false, nil
	default:
		return false, err
	}
}

const reflinkSupported = true
