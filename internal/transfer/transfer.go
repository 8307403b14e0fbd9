// Package transfer implements the per-file copy engine: reflink attempt,
// resume-offset computation, sparse-hole detection, buffered write loop
// with test-mode throttling, post-copy verification, and attribute
// preservation.
package transfer

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"bcmr/internal/command"
	"bcmr/internal/core/checksum"
	"bcmr/internal/core/errs"
	"bcmr/internal/core/traversal"
	"bcmr/internal/display"
)

const bufSize = 1024 * 1024 // 1 MiB

// ByteDeltaFunc is invoked with each chunk of bytes actually accounted for
// progress, strictly monotonic and in order for a single file.
type ByteDeltaFunc func(delta uint64)

// NewFileFunc is invoked once per file, before any byte-delta call for it.
type NewFileFunc func(name string, size uint64)

// Options bundles every flag the transfer engine reacts to.
type Options struct {
	Preserve bool
	Force    bool
	Verify   bool
	Resume   bool
	Strict   bool
	Append   bool
	DryRun   bool
	Reflink  command.ReflinkMode
	Sparse   command.SparseMode
	Test     command.TestMode
}

func (o Options) resumeMode() resumeMode {
	switch {
	case o.Strict:
		return modeStrict
	case o.Append:
		return modeAppend
	case o.Resume:
		return modeDefault
	default:
		return modeNone
	}
}

// CopyFile transfers a single regular file from src to dst, honoring
// Options, and reports progress via onDelta. The source's base name and
// size are announced via onNewFile before any bytes are reported.
func CopyFile(src, dst string, opts Options, onDelta ByteDeltaFunc, onNewFile NewFileFunc) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return &errs.SourceNotFound{Path: src}
	}

	dstInfo, dstExists := statIfExists(dst)

	if dstExists && !opts.Force && opts.resumeMode() == modeNone {
		return &errs.TargetExists{Path: dst}
	}

	if opts.DryRun {
		action := display.ActionAdd
		if dstExists {
			action = display.ActionOverwrite
		}
		display.PrintDryRun(action, src, dst)
		if onNewFile != nil {
			onNewFile(filepath.Base(src), uint64(srcInfo.Size()))
		}
		if onDelta != nil {
			onDelta(uint64(srcInfo.Size()))
		}
		return nil
	}

	if onNewFile != nil {
		onNewFile(filepath.Base(src), uint64(srcInfo.Size()))
	}

	var startOffset int64

	if dstExists && opts.resumeMode() != modeNone {
		d, err := decide(
			opts.resumeMode(),
			srcInfo.Size(), dstInfo.Size(),
			srcInfo.ModTime(), dstInfo.ModTime(),
			func() (string, string, error) {
				sh, err := checksum.Hash(src)
				if err != nil {
					return "", "", err
				}
				dh, err := checksum.Hash(dst)
				if err != nil {
					return "", "", err
				}
				return sh, dh, nil
			},
			func(limit int64) (string, string, error) {
				sp, err := checksum.HashPrefix(src, limit)
				if err != nil {
					return "", "", err
				}
				dh, err := checksum.Hash(dst)
				if err != nil {
					return "", "", err
				}
				return sp, dh, nil
			},
		)
		if err != nil {
			return err
		}
		switch d.kind {
		case decisionSkipIdenticalTail:
			if onDelta != nil {
				onDelta(uint64(srcInfo.Size()))
			}
			return nil
		case decisionAppendFromOffset:
			startOffset = d.offset
		case decisionOverwriteFromStart:
			startOffset = 0
		}
	} else if dstExists && opts.Force {
		if err := os.Remove(dst); err != nil {
			return errs.WrapIO("remove existing destination", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errs.WrapIO("mkdir destination parent", err)
	}

	if startOffset == 0 && opts.Reflink != command.ReflinkDisable {
		cloned, err := attemptReflink(src, dst, srcInfo, opts.Reflink)
		if err != nil {
			return err
		}
		if cloned {
			if onDelta != nil {
				onDelta(uint64(srcInfo.Size()))
			}
			return nil
		}
	}

	if err := copyBytes(src, dst, startOffset, opts, onDelta); err != nil {
		return err
	}

	if opts.Preserve {
		if err := preserveAttrs(src, dst); err != nil {
			return err
		}
	}

	if opts.Verify {
		if err := verify(src, dst); err != nil {
			return err
		}
	}

	return nil
}

func attemptReflink(src, dst string, srcInfo os.FileInfo, mode command.ReflinkMode) (bool, error) {
	if mode == command.ReflinkDisable {
		return false, nil
	}
	srcF, err := os.Open(src)
	if err != nil {
		return false, errs.WrapIO("open source for reflink", err)
	}
	defer srcF.Close()

	dstF, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return false, errs.WrapIO("open destination for reflink", err)
	}
	defer dstF.Close()

	ok, err := tryReflink(srcF, dstF)
	if err != nil {
		if mode == command.ReflinkForce {
			return false, &errs.Reflink{Detail: err.Error()}
		}
		return false, nil
	}
	if !ok && mode == command.ReflinkForce {
		return false, &errs.Reflink{Detail: "filesystem does not support reflink"}
	}
	return ok, nil
}

func copyBytes(src, dst string, startOffset int64, opts Options, onDelta ByteDeltaFunc) error {
	srcF, err := openSequentialRead(src)
	if err != nil {
		return errs.WrapIO("open source", err)
	}
	defer srcF.Close()

	srcInfo, err := srcF.Stat()
	if err != nil {
		return errs.WrapIO("stat source", err)
	}

	var dstF *os.File
	if startOffset > 0 {
		dstF, err = openSequentialAppend(dst, srcInfo.Mode().Perm())
	} else {
		dstF, err = openSequentialWrite(dst, srcInfo.Mode().Perm())
	}
	if err != nil {
		return errs.WrapIO("open destination", err)
	}
	defer dstF.Close()

	if startOffset > 0 {
		if _, err := srcF.Seek(startOffset, io.SeekStart); err != nil {
			return errs.WrapIO("seek source", err)
		}
		if _, err := dstF.Seek(startOffset, io.SeekStart); err != nil {
			return errs.WrapIO("seek destination", err)
		}
	}

	sparseMode := opts.Sparse
	if opts.Test.Kind != command.TestModeNone {
		sparseMode = command.SparseNever // hole detection belongs to the normal loop only
	}
	sw := newSparseWriter(dstF, startOffset, sparseMode)
	buf := make([]byte, bufSize)

	throttler := newThrottler(opts.Test)

	for {
		n, readErr := srcF.Read(buf)
		if n > 0 {
			if err := sw.Write(buf, n); err != nil {
				return err
			}
			if onDelta != nil {
				onDelta(uint64(n))
			}
			throttler.afterChunk(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errs.WrapIO("read source", readErr)
		}
	}

	return sw.Close()
}

func verify(src, dst string) error {
	sh, err := checksum.Hash(src)
	if err != nil {
		return err
	}
	dh, err := checksum.Hash(dst)
	if err != nil {
		return err
	}
	if sh != dh {
		return &errs.VerificationError{Path: dst}
	}
	return nil
}

func statIfExists(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}

// throttler implements the two test-mode variants, which replace the
// normal unthrottled write loop.
type throttler struct {
	mode      command.TestModeKind
	delay     time.Duration
	bps       uint64
	chunkStart time.Time
}

func newThrottler(tm command.TestMode) *throttler {
	switch tm.Kind {
	case command.TestModeDelay:
		return &throttler{mode: command.TestModeDelay, delay: time.Duration(tm.Value) * time.Millisecond}
	case command.TestModeSpeedLimit:
		return &throttler{mode: command.TestModeSpeedLimit, bps: tm.Value, chunkStart: nowFn()}
	default:
		return &throttler{mode: command.TestModeNone}
	}
}

func (t *throttler) afterChunk(n int) {
	switch t.mode {
	case command.TestModeDelay:
		time.Sleep(t.delay)
	case command.TestModeSpeedLimit:
		if t.bps == 0 {
			return
		}
		target := time.Duration(float64(n) / float64(t.bps) * float64(time.Second))
		elapsed := nowFn().Sub(t.chunkStart)
		if target > elapsed {
			time.Sleep(target - elapsed)
		}
		t.chunkStart = nowFn()
	}
}

func nowFn() time.Time { return time.Now() }

// CopyPath transfers src to dst, recursing when src is a directory and
// recursive is set. The target base for a directory source is
// dst/basename(src) (or dst itself if dst is not an existing directory).
// Directories are created pre-order; preserve attributes are applied to
// each directory only after its entire subtree completes.
func CopyPath(src, dst string, recursive bool, opts Options, excludes []*regexp.Regexp, onDelta ByteDeltaFunc, onNewFile NewFileFunc) error {
	if traversal.IsExcluded(src, excludes) {
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return &errs.SourceNotFound{Path: src}
	}

	if !info.IsDir() {
		target := dst
		if dstInfo, ok := statIfExists(dst); ok && dstInfo.IsDir() {
			target = filepath.Join(dst, filepath.Base(src))
		}
		return CopyFile(src, target, opts, onDelta, onNewFile)
	}

	if !recursive {
		return &errs.InvalidInput{Msg: "source '" + src + "' is a directory; use -r for recursive"}
	}

	targetBase := dst
	if dstInfo, ok := statIfExists(dst); ok && dstInfo.IsDir() {
		targetBase = filepath.Join(dst, filepath.Base(src))
	}

	if !opts.DryRun {
		if err := os.MkdirAll(targetBase, info.Mode().Perm()); err != nil {
			return errs.WrapIO("mkdir target base", err)
		}
	} else if _, exists := statIfExists(targetBase); !exists {
		display.PrintDryRun(display.ActionAdd, src, targetBase+" (DIR)")
	}

	// Pre-order pass: create directories and copy files as encountered.
	preOrder, err := traversal.Walk(src, traversal.Options{Recursive: true, ContentsFirst: false, MinDepth: 1}, excludes)
	if err != nil {
		return err
	}

	type dirPair struct{ srcDir, dstDir string }
	var dirs []dirPair

	for _, e := range preOrder {
		rel, err := filepath.Rel(src, e.Path)
		if err != nil {
			return errs.WrapIO("relative path", err)
		}
		target := filepath.Join(targetBase, rel)

		if e.IsDir {
			if opts.DryRun {
				if _, exists := statIfExists(target); !exists {
					display.PrintDryRun(display.ActionAdd, e.Path, target+" (DIR)")
				}
			} else if err := os.MkdirAll(target, 0o755); err != nil {
				return errs.WrapIO("mkdir", err)
			}
			dirs = append(dirs, dirPair{srcDir: e.Path, dstDir: target})
			continue
		}

		if err := CopyFile(e.Path, target, opts, onDelta, onNewFile); err != nil {
			return err
		}
	}

	if opts.Preserve && !opts.DryRun {
		// Post-order: deepest directories first, then targetBase itself,
		// so a directory's attributes are set only after its subtree
		// (including its own mtime-disturbing mkdir calls) has settled.
		for i := len(dirs) - 1; i >= 0; i-- {
			if err := preserveAttrs(dirs[i].srcDir, dirs[i].dstDir); err != nil {
				return err
			}
		}
		if err := preserveAttrs(src, targetBase); err != nil {
			return err
		}
	}

	return nil
}
