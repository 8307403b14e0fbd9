// Package planner implements the pre-flight overwrite and size planning
// pass shared by the copy and move commands.
package planner

import (
	"os"
	"path/filepath"
	"regexp"

	"bcmr/internal/core/errs"
	"bcmr/internal/core/traversal"
)

// Overwrite describes a destination path that already exists and would be
// written to.
type Overwrite struct {
	Path  string
	IsDir bool
}

// Plan is the result of a pre-flight scan: the overwrite list and the
// total byte budget for the operation.
type Plan struct {
	Overwrites []Overwrite
	TotalBytes uint64
}

// Options parameterizes planning.
type Options struct {
	Recursive bool
	Excludes  []*regexp.Regexp
}

// Plan scans sources against destination, producing the overwrite list and
// total byte count. Excluded paths contribute to neither. Non-recursive
// directory sources are a fatal InvalidInput.
func Plan(sources []string, dst string, opts Options) (Plan, error) {
	var result Plan

	dstIsDir := false
	if info, err := os.Stat(dst); err == nil {
		dstIsDir = info.IsDir()
	}

	for _, src := range sources {
		if traversal.IsExcluded(src, opts.Excludes) {
			continue
		}
		info, err := os.Lstat(src)
		if err != nil {
			return Plan{}, &errs.SourceNotFound{Path: src}
		}

		target := dst
		if dstIsDir {
			target = filepath.Join(dst, filepath.Base(src))
		}

		if info.IsDir() {
			if !opts.Recursive {
				return Plan{}, &errs.InvalidInput{Msg: "source '" + src + "' is a directory; use -r for recursive"}
			}
			if err := planDir(src, target, opts, &result); err != nil {
				return Plan{}, err
			}
			continue
		}

		if err := noteTarget(target, &result); err != nil {
			return Plan{}, err
		}
		result.TotalBytes += uint64(info.Size())
	}

	return result, nil
}

func planDir(src, targetBase string, opts Options, result *Plan) error {
	if err := noteTarget(targetBase, result); err != nil {
		return err
	}

	entries, err := traversal.Walk(src, traversal.Options{
		Recursive:     true,
		ContentsFirst: false,
		MinDepth:      1,
	}, opts.Excludes)
	if err != nil {
		return err
	}

	for _, e := range entries {
		rel, err := filepath.Rel(src, e.Path)
		if err != nil {
			return errs.WrapIO("relative path", err)
		}
		target := filepath.Join(targetBase, rel)

		if e.IsDir {
			if err := noteTarget(target, result); err != nil {
				return err
			}
			continue
		}

		if err := noteTarget(target, result); err != nil {
			return err
		}
		info, err := os.Lstat(e.Path)
		if err != nil {
			return errs.WrapIO("stat "+e.Path, err)
		}
		result.TotalBytes += uint64(info.Size())
	}

	return nil
}

// CheckFreeSpace reports whether the filesystem holding dst has at least
// plan.TotalBytes available. It is a best-effort pre-flight safety check:
// a false negative here still lets the transfer engine fail cleanly later.
// dst itself need not exist yet; the check walks up to the nearest existing
// ancestor, since that is the filesystem the transfer will actually land on.
func CheckFreeSpace(dst string, plan Plan) (ok bool, available uint64) {
	free := usableFreeSpace(nearestExistingAncestor(dst))
	return free >= plan.TotalBytes, free
}

func nearestExistingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

func noteTarget(target string, result *Plan) error {
	if info, err := os.Lstat(target); err == nil {
		result.Overwrites = append(result.Overwrites, Overwrite{Path: target, IsDir: info.IsDir()})
	} else if !os.IsNotExist(err) {
		return errs.WrapIO("stat "+target, err)
	}
	return nil
}
