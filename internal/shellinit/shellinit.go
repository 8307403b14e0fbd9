// Package shellinit renders shell functions that wrap the bcmr binary as
// drop-in cp/mv/rm replacements, for eval'ing into an interactive shell's
// startup file (`eval "$(bcmr init bash)"`).
package shellinit

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"bcmr/internal/core/errs"
)

// Shell tags a supported target shell.
type Shell int

const (
	ShellBash Shell = iota
	ShellZsh
	ShellFish
)

// ParseShell parses the init subcommand's positional shell argument.
func ParseShell(s string) (Shell, error) {
	switch strings.ToLower(s) {
	case "bash":
		return ShellBash, nil
	case "zsh":
		return ShellZsh, nil
	case "fish":
		return ShellFish, nil
	default:
		return ShellBash, &errs.InvalidInput{Msg: "unsupported shell: " + s}
	}
}

// Options parameterizes the generated function names and whether the
// bare cp/mv/rm names are aliased in addition to the prefixed/suffixed ones.
type Options struct {
	Prefix string
	Suffix string
	NoCmd  bool // when true, skip aliasing bare cp/mv/rm
}

func (o Options) name(verb string) string {
	return o.Prefix + verb + o.Suffix
}

var posixTmpl = template.Must(template.New("posix").Parse(
	`{{.FnName}} () {
  {{.Exe}} {{.Subcommand}} "$@"
}
{{if .Alias}}alias {{.Verb}}='{{.FnName}}'
{{end}}`))

var fishTmpl = template.Must(template.New("fish").Parse(
	`function {{.FnName}}
  {{.Exe}} {{.Subcommand}} $argv
end
{{if .Alias}}alias {{.Verb}}={{.FnName}}
{{end}}`))

type tmplData struct {
	FnName     string
	Exe        string
	Verb       string // the short cp/mv/rm name aliased, when Alias is set
	Subcommand string // the bcmr subcommand invoked (copy/move/remove)
	Alias      bool
}

// Generate renders the full init script for shell, wiring copy/move/remove
// to the cp/mv/rm verbs.
func Generate(shell Shell, opts Options) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		exe = "bcmr"
	}

	tmpl := posixTmpl
	if shell == ShellFish {
		tmpl = fishTmpl
	}

	var buf bytes.Buffer
	for _, verb := range []string{"cp", "mv", "rm"} {
		fnName := opts.name(verb)
		data := tmplData{
			FnName:     fnName,
			Exe:        exe,
			Verb:       verb,
			Subcommand: commandFor(verb),
			Alias:      !opts.NoCmd && fnName != verb,
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("render %s function: %w", verb, err)
		}
		buf.WriteByte('\n')
	}

	return buf.String(), nil
}

func commandFor(verb string) string {
	switch verb {
	case "cp":
		return "copy"
	case "mv":
		return "move"
	case "rm":
		return "remove"
	default:
		return verb
	}
}
