// Package orchestrator wires the planner, renderer, and the relevant
// transfer/move/remove engine together, driving one subcommand invocation
// from parsed flags through to completion.
package orchestrator

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"bcmr/internal/command"
	"bcmr/internal/config"
	"bcmr/internal/core/errs"
	"bcmr/internal/moveengine"
	"bcmr/internal/planner"
	"bcmr/internal/progress"
	"bcmr/internal/remove"
	"bcmr/internal/transfer"
)

// settleDelay is the pause after a renderer finishes, giving the user time
// to read the final status line before the process exits.
var settleDelay = time.Second

// Run dispatches d to its engine, driving a Renderer for the duration.
func Run(d *command.Descriptor) error {
	switch d.Kind {
	case command.KindCopy:
		return runCopy(d)
	case command.KindMove:
		return runMove(d)
	case command.KindRemove:
		return runRemove(d)
	default:
		return &errs.InvalidInput{Msg: "unsupported command kind"}
	}
}

func transferOptions(f command.Flags) transfer.Options {
	return transfer.Options{
		Preserve: f.Preserve,
		Force:    f.Force,
		Verify:   f.Verify,
		Resume:   f.Resume,
		Strict:   f.Strict,
		Append:   f.Append,
		DryRun:   f.DryRun,
		Reflink:  f.Reflink,
		Sparse:   f.Sparse,
		Test:     f.TestMode,
	}
}

func runCopy(d *command.Descriptor) error {
	src := d.Source()
	opts := transferOptions(d.Flags)

	plan, err := planner.Plan([]string{src}, d.Destination, planner.Options{Recursive: d.Flags.Recursive, Excludes: d.Excludes})
	if err != nil {
		return err
	}

	if ok, available := planner.CheckFreeSpace(d.Destination, plan); !ok {
		return &errs.InsufficientSpace{Path: d.Destination, Required: plan.TotalBytes, Available: available}
	}

	if d.Flags.Force && len(plan.Overwrites) > 0 && d.ShouldPromptForOverwrite() {
		if !confirmOverwrite(plan.Overwrites) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	r := newRenderer(d.Flags)
	r.SetOperationType(command.KindCopy.String())
	r.SetCurrentFile(filepath.Base(src), plan.TotalBytes)

	stop := startTickerAndSignalHandler(r)
	defer stop()

	err = transfer.CopyPath(src, d.Destination, d.Flags.Recursive, opts, d.Excludes,
		func(n uint64) { r.IncCurrent(n) },
		func(name string, size uint64) { r.SetCurrentFile(name, size) })

	r.Finish()
	if err != nil {
		return err
	}

	settle(d.Flags)
	return nil
}

func runMove(d *command.Descriptor) error {
	src := d.Source()
	opts := transferOptions(d.Flags)

	plan, err := planner.Plan([]string{src}, d.Destination, planner.Options{Recursive: d.Flags.Recursive, Excludes: d.Excludes})
	if err != nil {
		return err
	}

	if ok, available := planner.CheckFreeSpace(d.Destination, plan); !ok {
		return &errs.InsufficientSpace{Path: d.Destination, Required: plan.TotalBytes, Available: available}
	}

	if d.Flags.Force && len(plan.Overwrites) > 0 && d.ShouldPromptForOverwrite() {
		if !confirmOverwrite(plan.Overwrites) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	r := newRenderer(d.Flags)
	r.SetOperationType(command.KindMove.String())
	r.SetCurrentFile(filepath.Base(src), plan.TotalBytes)

	stop := startTickerAndSignalHandler(r)
	defer stop()

	err = moveengine.MovePath(src, d.Destination, d.Flags.Recursive, opts, d.Excludes,
		func(n uint64) { r.IncCurrent(n) },
		func(name string, size uint64) { r.SetCurrentFile(name, size) })

	r.Finish()
	if err != nil {
		return err
	}

	settle(d.Flags)
	return nil
}

func runRemove(d *command.Descriptor) error {
	paths := d.RemovePaths()
	opts := remove.Options{
		Recursive:   d.Flags.Recursive,
		DirOnly:     d.Flags.DirOnly,
		Force:       d.Flags.Force,
		Interactive: d.Flags.Interactive,
		Verbose:     d.Flags.Verbose,
		DryRun:      d.Flags.DryRun,
		Test:        d.Flags.TestMode,
	}

	entries, err := remove.CheckRemoves(paths, opts, d.Excludes)
	if err != nil {
		return err
	}

	if len(entries) > 0 && !d.Flags.Force && (!d.Flags.Interactive || len(entries) > 1) {
		if !confirmRemoval(entries) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	var total uint64
	for _, e := range entries {
		total += e.Size
	}

	r := newRenderer(d.Flags)
	r.SetOperationType(command.KindRemove.String())
	r.SetTotalItems(len(entries))
	if len(paths) > 0 {
		r.SetCurrentFile(filepath.Base(paths[0]), total)
	}

	stop := startTickerAndSignalHandler(r)
	defer stop()

	err = remove.RemovePaths(paths, opts, d.Excludes,
		func(n uint64) { r.IncCurrent(n) },
		func(name string, size uint64) { r.SetCurrentFile(name, size) },
		func() { r.IncItemsProcessed() })

	r.Finish()
	if err != nil {
		return err
	}

	settle(d.Flags)
	return nil
}

func newRenderer(f command.Flags) progress.Renderer {
	if f.DryRun {
		return progress.NopRenderer{}
	}
	cfg := config.Get()
	return progress.New(f.TUI, cfg)
}

// startTickerAndSignalHandler spawns the 100ms repaint ticker and the
// SIGINT/SIGTERM handler that finishes the renderer and exits with the
// conventional signal-terminated status before the process dies. It
// returns a stop function the caller defers to release both goroutines
// on normal completion.
func startTickerAndSignalHandler(r progress.Renderer) func() {
	done := make(chan struct{})

	ticker := time.NewTicker(100 * time.Millisecond)
	go func() {
		for {
			select {
			case <-ticker.C:
				r.Tick()
			case <-done:
				return
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			r.Finish()
			os.Exit(130)
		case <-done:
			return
		}
	}()

	return func() {
		ticker.Stop()
		signal.Stop(sigCh)
		close(done)
	}
}

func settle(f command.Flags) {
	if f.TestMode.Kind != command.TestModeNone {
		return
	}
	time.Sleep(settleDelay)
}

func confirmOverwrite(overwrites []planner.Overwrite) bool {
	fmt.Println("\nThe following items will be overwritten:")
	for _, o := range overwrites {
		kind := "FILE:"
		if o.IsDir {
			kind = "DIR:"
		}
		fmt.Printf("  %s %s\n", kind, o.Path)
	}
	fmt.Print("\nDo you want to proceed? [y/N] ")
	return readYes()
}

func confirmRemoval(entries []remove.Entry) bool {
	var files, dirs int
	var totalSize uint64
	for _, e := range entries {
		if e.IsDir {
			dirs++
		} else {
			files++
			totalSize += e.Size
		}
	}

	fmt.Println("\nThe following items will be removed:")
	fmt.Printf("  Files: %d\n", files)
	fmt.Printf("  Directories: %d\n", dirs)
	if totalSize > 0 {
		fmt.Printf("  Total size: %.2f MiB\n", float64(totalSize)/1024.0/1024.0)
	}
	for _, e := range entries {
		kind := "FILE:"
		if e.IsDir {
			kind = "DIR:"
		}
		suffix := ""
		if !e.IsDir && e.Size > 0 {
			suffix = fmt.Sprintf(" (%.2f MiB)", float64(e.Size)/1024.0/1024.0)
		}
		fmt.Printf("  %s %s%s\n", kind, e.Path, suffix)
	}

	fmt.Print("\nDo you want to proceed? [y/N] ")
	return readYes()
}

func readYes() bool {
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	for i := range line {
		if line[i] == '\n' || line[i] == '\r' {
			line = line[:i]
			break
		}
	}
	return line == "y" || line == "Y"
}
