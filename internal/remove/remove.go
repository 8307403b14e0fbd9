// Package remove implements the deletion engine: pre-flight classification,
// recursive post-order collection, interactive per-entry confirmation, and
// dry-run preview, mirroring the transfer/move engines' callback shape.
package remove

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"bcmr/internal/command"
	"bcmr/internal/core/errs"
	"bcmr/internal/core/traversal"
	"bcmr/internal/display"
)

// ByteDeltaFunc reports bytes accounted for progress.
type ByteDeltaFunc func(delta uint64)

// NewFileFunc announces the next entry about to be processed.
type NewFileFunc func(name string, size uint64)

// Entry is one path slated for removal.
type Entry struct {
	Path  string
	IsDir bool
	Size  uint64
}

// Options bundles the flags the remove engine reacts to.
type Options struct {
	Recursive   bool
	DirOnly     bool
	Force       bool
	Interactive bool
	Verbose     bool
	DryRun      bool
	Test        command.TestMode
}

// CheckRemoves classifies every requested path, failing fast for a
// directory lacking -r/-d, a non-empty directory under -d, or a missing
// path without -f, and expands recursive directories into their full
// contents so callers can size the operation before any deletion begins.
func CheckRemoves(paths []string, opts Options, excludes []*regexp.Regexp) ([]Entry, error) {
	var out []Entry

	for _, path := range paths {
		if traversal.IsExcluded(path, excludes) {
			continue
		}

		info, err := os.Lstat(path)
		if err != nil {
			if opts.Force {
				continue
			}
			return nil, &errs.SourceNotFound{Path: path}
		}

		if !info.IsDir() {
			out = append(out, Entry{Path: path, IsDir: false, Size: uint64(info.Size())})
			continue
		}

		if !opts.Recursive && !opts.DirOnly {
			return nil, &errs.InvalidInput{Msg: "cannot remove '" + path + "': is a directory (use -r for recursive removal)"}
		}

		if opts.DirOnly {
			children, err := os.ReadDir(path)
			if err != nil {
				return nil, errs.WrapIO("readdir", err)
			}
			if len(children) > 0 {
				return nil, &errs.InvalidInput{Msg: "cannot remove '" + path + "': directory not empty"}
			}
			out = append(out, Entry{Path: path, IsDir: true})
			continue
		}

		entries, err := traversal.Walk(path, traversal.Options{Recursive: true, ContentsFirst: true, MinDepth: 0}, excludes)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			var size uint64
			if !e.IsDir {
				if fi, err := os.Lstat(e.Path); err == nil {
					size = uint64(fi.Size())
				}
			}
			out = append(out, Entry{Path: e.Path, IsDir: e.IsDir, Size: size})
		}
	}

	return out, nil
}

// RemovePaths deletes every classified entry under paths, confirming
// interactively per entry (except the already-confirmed caller-supplied
// root) when Interactive is set without Force.
func RemovePaths(paths []string, opts Options, excludes []*regexp.Regexp,
	onDelta ByteDeltaFunc, onNewFile NewFileFunc, onItemProcessed func()) error {

	entries, err := CheckRemoves(paths, opts, excludes)
	if err != nil {
		return err
	}

	roots := make(map[string]bool, len(paths))
	declined := make(map[string]bool, len(paths))
	for _, p := range paths {
		roots[p] = true
		if opts.Interactive && !opts.Force {
			info, err := os.Lstat(p)
			if err != nil {
				continue // already reported by CheckRemoves unless Force
			}
			ok, err := confirmRemove(p, info.IsDir())
			if err != nil {
				return err
			}
			if !ok {
				declined[p] = true
			}
		}
	}

	for _, e := range entries {
		if declined[rootOf(e.Path, paths)] {
			continue
		}

		// The root of each requested path was already confirmed above;
		// only its descendants get a fresh per-entry prompt.
		if opts.Interactive && !opts.Force && !roots[e.Path] {
			ok, err := confirmRemove(e.Path, e.IsDir)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		name := filepath.Base(e.Path)
		if onNewFile != nil {
			onNewFile(name, e.Size)
		}

		if opts.DryRun {
			display.PrintDryRun(display.ActionRemove, e.Path, "")
			continue
		}

		if !e.IsDir {
			reportThrottled(e.Size, opts.Test, onDelta)
		}

		if err := os.Remove(e.Path); err != nil {
			return errs.WrapIO("remove", err)
		}

		if onItemProcessed != nil && !roots[e.Path] {
			onItemProcessed()
		}

		if opts.Verbose {
			fmt.Printf("removed %s\n", e.Path)
		}
	}

	return nil
}

// rootOf returns the requested top-level path that entry belongs to.
func rootOf(entry string, roots []string) string {
	best := ""
	for _, r := range roots {
		if entry == r || strings.HasPrefix(entry, r+string(os.PathSeparator)) {
			if len(r) > len(best) {
				best = r
			}
		}
	}
	return best
}

func reportThrottled(size uint64, tm command.TestMode, onDelta ByteDeltaFunc) {
	switch tm.Kind {
	case command.TestModeDelay:
		if onDelta != nil && size > 0 {
			onDelta(size)
		}
		time.Sleep(time.Duration(tm.Value) * time.Millisecond)
	case command.TestModeSpeedLimit:
		if tm.Value == 0 {
			if onDelta != nil && size > 0 {
				onDelta(size)
			}
			return
		}
		chunks := size/tm.Value + 1
		for i := uint64(0); i < chunks; i++ {
			chunk := tm.Value
			if chunk > size {
				chunk = size
			}
			if onDelta != nil {
				onDelta(chunk)
			}
			time.Sleep(time.Second)
		}
	default:
		if onDelta != nil && size > 0 {
			onDelta(size)
		}
	}
}

// confirmRemove prompts on stdout and reads a line from stdin. The caller
// (the orchestrator) is responsible for releasing any alt-screen renderer
// before the interactive remove path runs, matching the original's
// temporarily-leave-raw-mode behavior around the same prompt.
func confirmRemove(path string, isDir bool) (bool, error) {
	kind := "file"
	if isDir {
		kind = "directory"
	}

	fmt.Printf("Remove %s '%s'? (y/N) ", kind, path)

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
