// Package display renders dry-run previews and plain diagnostic output.
package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ActionType tags one planned action line in dry-run output.
type ActionType int

const (
	ActionAdd ActionType = iota
	ActionOverwrite
	ActionAppend
	ActionSkip
	ActionMove
	ActionRemove
)

func (a ActionType) label() string {
	switch a {
	case ActionAdd:
		return "ADD"
	case ActionOverwrite:
		return "OVERWRITE"
	case ActionAppend:
		return "APPEND"
	case ActionSkip:
		return "SKIP"
	case ActionMove:
		return "MOVE"
	case ActionRemove:
		return "REMOVE"
	default:
		return "?"
	}
}

func (a ActionType) colorFn() func(format string, args ...interface{}) string {
	switch a {
	case ActionAdd:
		return color.New(color.FgGreen).SprintfFunc()
	case ActionOverwrite:
		return color.New(color.FgYellow).SprintfFunc()
	case ActionAppend:
		return color.New(color.FgBlue).SprintfFunc()
	case ActionSkip:
		return color.New(color.FgHiBlack).SprintfFunc()
	case ActionMove:
		return color.New(color.FgCyan).SprintfFunc()
	case ActionRemove:
		return color.New(color.FgRed).SprintfFunc()
	default:
		return fmt.Sprintf
	}
}

// PrintDryRun emits one "<ACTION:10>  <source>[ -> <dest>]" line, color
// coded by action, matching §6's dry-run output format. An empty dest
// omits the arrow.
func PrintDryRun(action ActionType, src, dst string) {
	tag := action.colorFn()(fmt.Sprintf("%-10s", action.label()))
	if dst == "" {
		fmt.Printf("%s  %s\n", tag, src)
		return
	}
	fmt.Printf("%s  %s -> %s\n", tag, src, dst)
}

// Errorf prints a user-facing error line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
