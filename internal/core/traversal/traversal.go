// Package traversal implements the recursive, exclude-aware directory walk
// shared by the planner, transfer engine, move engine, and remove engine.
package traversal

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"bcmr/internal/core/errs"
)

// Entry is one yielded path during a walk.
type Entry struct {
	Path  string
	IsDir bool
}

// Options parameterizes a walk.
type Options struct {
	Recursive     bool // false caps depth at 1 (root's direct children only)
	ContentsFirst bool // post-order: directory after its descendants
	MinDepth      int  // 0 includes root, 1 skips it
}

// IsExcluded reports whether path's string form matches any exclude regex.
func IsExcluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Walk collects every entry under root honoring Options and excludes, then
// returns them in a valid order: for deletion-safe use (ContentsFirst) every
// directory's descendants precede it, enforced both by the walk itself and a
// secondary depth-descending sort, since directory entry order within a
// single listing is not otherwise guaranteed depth-ordered across siblings.
func Walk(root string, opts Options, excludes []*regexp.Regexp) ([]Entry, error) {
	var entries []Entry

	rootInfo, err := os.Lstat(root)
	if err != nil {
		return nil, &errs.TraversalError{Path: root, Err: err}
	}

	var walkFn func(path string, info os.FileInfo, depth int) error
	walkFn = func(path string, info os.FileInfo, depth int) error {
		if IsExcluded(path, excludes) {
			return nil
		}
		isDir := info.IsDir()

		include := depth >= opts.MinDepth
		if !opts.Recursive && depth > 1 {
			return nil
		}

		if include && !opts.ContentsFirst {
			entries = append(entries, Entry{Path: path, IsDir: isDir})
		}

		if isDir && (opts.Recursive || depth == 0) {
			children, err := os.ReadDir(path)
			if err != nil {
				return &errs.TraversalError{Path: path, Err: err}
			}
			names := make([]string, 0, len(children))
			for _, c := range children {
				names = append(names, c.Name())
			}
			sort.Strings(names)
			for _, name := range names {
				childPath := filepath.Join(path, name)
				childInfo, err := os.Lstat(childPath)
				if err != nil {
					return &errs.TraversalError{Path: childPath, Err: err}
				}
				if err := walkFn(childPath, childInfo, depth+1); err != nil {
					return err
				}
			}
		}

		if include && opts.ContentsFirst {
			entries = append(entries, Entry{Path: path, IsDir: isDir})
		}
		return nil
	}

	if err := walkFn(root, rootInfo, 0); err != nil {
		return nil, err
	}

	if opts.ContentsFirst {
		sort.SliceStable(entries, func(i, j int) bool {
			return componentCount(entries[i].Path) > componentCount(entries[j].Path)
		})
	}

	return entries, nil
}

func componentCount(path string) int {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return 0
	}
	return strings.Count(clean, string(filepath.Separator)) + 1
}
