// Package moveengine implements rename-first moves with cross-device
// fallback to the transfer engine, honoring exclusion filters.
package moveengine

import (
	"os"
	"path/filepath"
	"regexp"

	"bcmr/internal/core/errs"
	"bcmr/internal/core/traversal"
	"bcmr/internal/display"
	"bcmr/internal/transfer"
)

// MovePath moves src to dst per §4.7: rename-first, exclude-aware bypass,
// and cross-device fallback to copy-then-delete.
func MovePath(src, dst string, recursive bool, opts transfer.Options, excludes []*regexp.Regexp,
	onDelta transfer.ByteDeltaFunc, onNewFile transfer.NewFileFunc) error {

	if traversal.IsExcluded(src, excludes) {
		return nil
	}

	info, err := os.Lstat(src)
	if err != nil {
		return &errs.SourceNotFound{Path: src}
	}

	if !info.IsDir() {
		return moveFile(src, dst, opts, onDelta, onNewFile)
	}

	if !recursive {
		return &errs.InvalidInput{Msg: "source '" + src + "' is a directory; use -r for recursive move"}
	}

	return moveDir(src, dst, opts, excludes, onDelta, onNewFile)
}

func moveFile(src, dst string, opts transfer.Options, onDelta transfer.ByteDeltaFunc, onNewFile transfer.NewFileFunc) error {
	target := dst
	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		target = filepath.Join(dst, filepath.Base(src))
	}

	if _, err := os.Lstat(target); err == nil && !opts.Force {
		return &errs.TargetExists{Path: target}
	}

	if opts.DryRun {
		display.PrintDryRun(display.ActionMove, src, target)
		return nil
	}

	if _, err := os.Lstat(target); err == nil && opts.Force {
		if err := os.Remove(target); err != nil {
			return errs.WrapIO("remove existing target", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errs.WrapIO("mkdir target parent", err)
	}

	if err := os.Rename(src, target); err != nil {
		if !isCrossDevice(err) {
			return errs.WrapIO("rename", err)
		}
		if err := transfer.CopyFile(src, target, opts, onDelta, onNewFile); err != nil {
			return err
		}
		if err := os.Remove(src); err != nil {
			return errs.WrapIO("remove source after copy", err)
		}
	}

	return nil
}

func moveDir(src, dst string, opts transfer.Options, excludes []*regexp.Regexp,
	onDelta transfer.ByteDeltaFunc, onNewFile transfer.NewFileFunc) error {

	srcName := filepath.Base(src)
	newDst := dst
	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		newDst = filepath.Join(dst, srcName)
	}

	if len(excludes) > 0 || opts.DryRun {
		if opts.DryRun {
			if _, err := os.Stat(newDst); err != nil {
				display.PrintDryRun(display.ActionAdd, src, newDst+" (DIR)")
			}
			entries, err := traversal.Walk(src, traversal.Options{Recursive: true, ContentsFirst: false, MinDepth: 1}, excludes)
			if err != nil {
				return err
			}
			for _, e := range entries {
				rel, err := filepath.Rel(src, e.Path)
				if err != nil {
					return errs.WrapIO("relative path", err)
				}
				target := filepath.Join(newDst, rel)
				if e.IsDir {
					if _, err := os.Stat(target); err != nil {
						display.PrintDryRun(display.ActionAdd, e.Path, target+" (DIR)")
					}
					continue
				}
				display.PrintDryRun(display.ActionMove, e.Path, target)
			}
			return nil
		}

		// Rename ignores excludes: copy-with-excludes, then prune the
		// source of everything that was copied, leaving directories that
		// still hold excluded children.
		if err := transfer.CopyPath(src, dst, true, opts, excludes, onDelta, onNewFile); err != nil {
			return err
		}
		if err := removeDirectoryContents(src, excludes); err != nil {
			return err
		}
		_ = os.Remove(src)
		return nil
	}

	if err := os.Rename(src, newDst); err != nil {
		if !isCrossDevice(err) {
			return errs.WrapIO("rename", err)
		}
		if err := transfer.CopyPath(src, dst, true, opts, excludes, onDelta, onNewFile); err != nil {
			return err
		}
		if err := os.RemoveAll(src); err != nil {
			return errs.WrapIO("remove source after copy", err)
		}
	}

	return nil
}

// removeDirectoryContents deletes every non-excluded entry under dir,
// deepest first, leaving directories that still contain excluded children.
func removeDirectoryContents(dir string, excludes []*regexp.Regexp) error {
	entries, err := traversal.Walk(dir, traversal.Options{Recursive: true, ContentsFirst: true, MinDepth: 0}, excludes)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.Path == dir {
			continue
		}
		if e.IsDir {
			_ = os.Remove(e.Path) // best-effort: non-empty iff excluded children remain
			continue
		}
		if err := os.Remove(e.Path); err != nil {
			return errs.WrapIO("remove", err)
		}
	}

	return nil
}
