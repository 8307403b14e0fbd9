// Package command defines the typed command descriptor that every bcmr
// subcommand is parsed into before reaching the orchestrator.
package command

import (
	"regexp"

	"bcmr/internal/core/errs"
)

// Kind tags which subcommand a Descriptor represents.
type Kind int

const (
	KindCopy Kind = iota
	KindMove
	KindRemove
	KindInit
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "Copying"
	case KindMove:
		return "Moving"
	case KindRemove:
		return "Removing"
	case KindInit:
		return "Init"
	default:
		return "Unknown"
	}
}

// ReflinkMode selects how aggressively the transfer engine attempts
// copy-on-write clones.
type ReflinkMode int

const (
	ReflinkAuto ReflinkMode = iota
	ReflinkForce
	ReflinkDisable
)

// ParseReflinkMode parses a reflink mode value, accepted from either the
// --reflink flag (force|auto|disable) or the copy.reflink config key
// (auto|never|disable) — "never" is a config-vocabulary synonym for
// ReflinkDisable.
func ParseReflinkMode(s string) (ReflinkMode, error) {
	switch s {
	case "", "auto":
		return ReflinkAuto, nil
	case "force":
		return ReflinkForce, nil
	case "disable", "never":
		return ReflinkDisable, nil
	default:
		return ReflinkAuto, &errs.InvalidInput{Msg: "invalid --reflink value: " + s}
	}
}

// SparseMode selects sparse-hole detection policy.
type SparseMode int

const (
	SparseAuto SparseMode = iota
	SparseAlways
	SparseNever
)

// ParseSparseMode parses the --sparse flag value.
func ParseSparseMode(s string) (SparseMode, error) {
	switch s {
	case "", "auto":
		return SparseAuto, nil
	case "always":
		return SparseAlways, nil
	case "never":
		return SparseNever, nil
	default:
		return SparseAuto, &errs.InvalidInput{Msg: "invalid --sparse value: " + s}
	}
}

// TestModeKind tags the variant of TestMode.
type TestModeKind int

const (
	TestModeNone TestModeKind = iota
	TestModeDelay
	TestModeSpeedLimit
)

// TestMode models the hidden --test-mode flag used by the test suite to
// force slow, observable transfers.
type TestMode struct {
	Kind  TestModeKind
	Value uint64 // milliseconds for Delay, bytes/sec for SpeedLimit
}

// ParseTestMode parses a "type:value" string, e.g. "delay:10" or
// "speed_limit:1048576". An unrecognized or malformed string yields
// TestModeNone, matching the original tool's permissive hidden flag.
func ParseTestMode(s string) TestMode {
	if s == "" {
		return TestMode{Kind: TestModeNone}
	}
	idx := -1
	for i, c := range s {
		if c == ':' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return TestMode{Kind: TestModeNone}
	}
	kind, val := s[:idx], s[idx+1:]
	n, err := parseUint(val)
	if err != nil {
		return TestMode{Kind: TestModeNone}
	}
	switch kind {
	case "delay":
		return TestMode{Kind: TestModeDelay, Value: n}
	case "speed_limit":
		return TestMode{Kind: TestModeSpeedLimit, Value: n}
	default:
		return TestMode{Kind: TestModeNone}
	}
}

func parseUint(s string) (uint64, error) {
	var n uint64
	if s == "" {
		return 0, &errs.InvalidInput{Msg: "empty numeric value"}
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, &errs.InvalidInput{Msg: "not a number: " + s}
		}
		n = n*10 + uint64(c-'0')
	}
	return n, nil
}

// Flags carries every shared and per-kind CLI flag value.
type Flags struct {
	Recursive   bool
	Preserve    bool
	Force       bool
	Yes         bool
	Interactive bool
	Verbose     bool
	DirOnly     bool
	Verify      bool
	Resume      bool
	Strict      bool
	Append      bool
	DryRun      bool
	TUI         bool
	Reflink     ReflinkMode
	Sparse      SparseMode
	TestMode    TestMode
}

// Descriptor is the tagged-variant command value the orchestrator dispatches
// on. Only the fields relevant to Kind are meaningful. The Source and
// RemovePaths accessors do not check Kind: they read Paths as it is, and
// Source returns "" when Paths is empty. Destination is read as a field.
type Descriptor struct {
	Kind        Kind
	Paths       []string // Remove: all paths; Copy/Move: [source]
	Destination string   // Copy/Move only
	Excludes    []*regexp.Regexp
	Flags       Flags
}

// Source returns the single source path for Copy/Move descriptors.
func (d *Descriptor) Source() string {
	if len(d.Paths) == 0 {
		return ""
	}
	return d.Paths[0]
}

// RemovePaths returns the path list for a Remove descriptor.
func (d *Descriptor) RemovePaths() []string {
	return d.Paths
}

// ShouldPromptForOverwrite reports whether an aggregate overwrite
// confirmation is needed before a forced copy/move proceeds.
func (d *Descriptor) ShouldPromptForOverwrite() bool {
	switch d.Kind {
	case KindCopy, KindMove:
		return d.Flags.Force && !d.Flags.Yes
	case KindRemove:
		return !d.Flags.Force && d.Flags.Interactive
	default:
		return false
	}
}

// CompileExcludes compiles raw regex patterns, returning a PatternError on
// the first invalid pattern.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &errs.PatternError{Pattern: p, Err: err}
		}
		out = append(out, re)
	}
	return out, nil
}
