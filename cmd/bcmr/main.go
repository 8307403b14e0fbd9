// Command bcmr is a cp/mv/rm replacement with resumable, verified,
// sparse-aware transfers and a live progress display.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"bcmr/internal/command"
	"bcmr/internal/config"
	"bcmr/internal/display"
	"bcmr/internal/orchestrator"
	"bcmr/internal/shellinit"
)

func main() {
	app := &cli.App{
		Name:  "bcmr",
		Usage: "Better Copy Move Remove",
		Commands: []*cli.Command{
			copyCommand(),
			moveCommand(),
			removeCommand(),
			initCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		display.Errorf("bcmr: %v", err)
		os.Exit(1)
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "recurse into directories"},
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite existing destinations"},
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the overwrite confirmation prompt"},
		&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "print planned actions without performing them"},
		&cli.BoolFlag{Name: "tui", Aliases: []string{"t"}, Usage: "use the full-screen progress display"},
		&cli.StringFlag{Name: "exclude", Usage: "comma-separated regex patterns to exclude"},
		&cli.StringFlag{Name: "test-mode", Hidden: true, Usage: "delay:<ms> or speed_limit:<bytes/sec>"},
	}
}

func transferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "preserve", Usage: "preserve mode and modification time"},
		&cli.BoolFlag{Name: "verify", Aliases: []string{"V"}, Usage: "hash-verify the destination after copying"},
		&cli.BoolFlag{Name: "resume", Aliases: []string{"C"}, Usage: "resume an interrupted transfer"},
		&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "resume using a full content hash comparison"},
		&cli.BoolFlag{Name: "append", Aliases: []string{"a"}, Usage: "resume assuming the destination is a true prefix"},
	}
}

func copyCommand() *cli.Command {
	flags := append(sharedFlags(), transferFlags()...)
	flags = append(flags,
		&cli.StringFlag{Name: "reflink", Value: "auto", Usage: "force|auto|disable"},
		&cli.StringFlag{Name: "sparse", Value: "auto", Usage: "always|auto|never"},
	)

	return &cli.Command{
		Name:      "copy",
		Usage:     "copy a file or directory",
		ArgsUsage: "<source> <destination>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("wrong number of arguments", 1)
			}
			d, err := buildTransferDescriptor(c, command.KindCopy)
			if err != nil {
				return err
			}
			return orchestrator.Run(d)
		},
	}
}

func moveCommand() *cli.Command {
	flags := append(sharedFlags(), transferFlags()...)

	return &cli.Command{
		Name:      "move",
		Usage:     "move a file or directory",
		ArgsUsage: "<source> <destination>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("wrong number of arguments", 1)
			}
			d, err := buildTransferDescriptor(c, command.KindMove)
			if err != nil {
				return err
			}
			return orchestrator.Run(d)
		},
	}
}

func removeCommand() *cli.Command {
	flags := append(sharedFlags(),
		&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "confirm before each removal"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print each removed path"},
		&cli.BoolFlag{Name: "dir-only", Aliases: []string{"d"}, Usage: "remove an empty directory without -r"},
	)

	return &cli.Command{
		Name:      "remove",
		Usage:     "remove files or directories",
		ArgsUsage: "<path>...",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("wrong number of arguments", 1)
			}
			excludes, err := command.CompileExcludes(splitExcludes(c.String("exclude")))
			if err != nil {
				return err
			}
			d := &command.Descriptor{
				Kind:     command.KindRemove,
				Paths:    c.Args().Slice(),
				Excludes: excludes,
				Flags: command.Flags{
					Recursive:   c.Bool("recursive"),
					Force:       c.Bool("force"),
					Yes:         c.Bool("yes"),
					Interactive: c.Bool("interactive"),
					Verbose:     c.Bool("verbose"),
					DirOnly:     c.Bool("dir-only"),
					DryRun:      c.Bool("dry-run"),
					TUI:         tuiDefault(c),
					TestMode:    command.ParseTestMode(c.String("test-mode")),
				},
			}
			return orchestrator.Run(d)
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "emit shell functions wrapping bcmr as cp/mv/rm",
		ArgsUsage: "<bash|zsh|fish>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prefix", Usage: "prefix added to generated function/alias names"},
			&cli.StringFlag{Name: "suffix", Usage: "suffix added to generated function/alias names"},
			&cli.BoolFlag{Name: "no-cmd", Usage: "do not alias the bare cp/mv/rm names"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("wrong number of arguments", 1)
			}
			shell, err := shellinit.ParseShell(c.Args().First())
			if err != nil {
				return err
			}
			script, err := shellinit.Generate(shell, shellinit.Options{
				Prefix: c.String("prefix"),
				Suffix: c.String("suffix"),
				NoCmd:  c.Bool("no-cmd"),
			})
			if err != nil {
				return err
			}
			fmt.Print(script)
			return nil
		},
	}
}

func buildTransferDescriptor(c *cli.Context, kind command.Kind) (*command.Descriptor, error) {
	excludes, err := command.CompileExcludes(splitExcludes(c.String("exclude")))
	if err != nil {
		return nil, err
	}

	reflink := command.ReflinkAuto
	sparse := command.SparseAuto
	if kind == command.KindCopy {
		reflinkValue := config.Get().Copy.Reflink
		if c.IsSet("reflink") {
			reflinkValue = c.String("reflink")
		}
		reflink, err = command.ParseReflinkMode(reflinkValue)
		if err != nil {
			return nil, err
		}
		sparse, err = command.ParseSparseMode(c.String("sparse"))
		if err != nil {
			return nil, err
		}
	}

	return &command.Descriptor{
		Kind:        kind,
		Paths:       []string{c.Args().Get(0)},
		Destination: c.Args().Get(1),
		Excludes:    excludes,
		Flags: command.Flags{
			Recursive: c.Bool("recursive"),
			Preserve:  c.Bool("preserve"),
			Force:     c.Bool("force"),
			Yes:       c.Bool("yes"),
			Verify:    c.Bool("verify"),
			Resume:    c.Bool("resume"),
			Strict:    c.Bool("strict"),
			Append:    c.Bool("append"),
			DryRun:    c.Bool("dry-run"),
			TUI:       tuiDefault(c),
			Reflink:   reflink,
			Sparse:    sparse,
			TestMode:  command.ParseTestMode(c.String("test-mode")),
		},
	}, nil
}

// tuiDefault honors an explicit -t/--tui flag, falling back to the config
// file's progress.style so a user who sets style=fancy gets the full-screen
// renderer without passing the flag on every invocation.
func tuiDefault(c *cli.Context) bool {
	if c.IsSet("tui") {
		return c.Bool("tui")
	}
	return config.Get().Progress.Style == "fancy"
}

func splitExcludes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
