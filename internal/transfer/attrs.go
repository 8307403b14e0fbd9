package transfer

import (
	"os"
	"time"

	"bcmr/internal/core/errs"
)

// preserveAttrs copies mode bits and access/modification timestamps from
// src onto dst. It is applied to files immediately after their data copy
// completes, and to directories only after their entire subtree has
// finished (the recursive copy driver enforces that ordering).
func preserveAttrs(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errs.WrapIO("stat for attrs", err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errs.WrapIO("chmod", err)
	}
	atime := accessTime(info)
	if err := os.Chtimes(dst, atime, info.ModTime()); err != nil {
		return errs.WrapIO("chtimes", err)
	}
	return nil
}
