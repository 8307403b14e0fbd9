//go:build linux

package transfer

import (
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// openSequentialRead opens src hinting the kernel for sequential,
// read-ahead-friendly access, matching the access pattern of a linear copy.
func openSequentialRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())
	_ = unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL)
	_ = unix.Fadvise(fd, 0, 0, unix.FADV_WILLNEED)
	return f, nil
}

// openSequentialWrite opens dst truncating, with a sequential-write hint.
func openSequentialWrite(path string, perm fs.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return nil, err
	}
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	return f, nil
}

// openSequentialAppend opens dst for writing without truncating it, used by
// the append resume path; the caller seeks to the resume offset.
func openSequentialAppend(path string, perm fs.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, perm)
	if err != nil {
		return nil, err
	}
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	return f, nil
}
