package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReflinkModeValues(t *testing.T) {
	cases := map[string]ReflinkMode{
		"":        ReflinkAuto,
		"auto":    ReflinkAuto,
		"force":   ReflinkForce,
		"disable": ReflinkDisable,
		"never":   ReflinkDisable,
	}
	for in, want := range cases {
		got, err := ParseReflinkMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseReflinkModeInvalidIsError(t *testing.T) {
	_, err := ParseReflinkMode("bogus")
	require.Error(t, err)
}

func TestParseSparseModeValues(t *testing.T) {
	cases := map[string]SparseMode{
		"":       SparseAuto,
		"auto":   SparseAuto,
		"always": SparseAlways,
		"never":  SparseNever,
	}
	for in, want := range cases {
		got, err := ParseSparseMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseSparseModeInvalidIsError(t *testing.T) {
	_, err := ParseSparseMode("bogus")
	require.Error(t, err)
}

func TestParseTestModeDelay(t *testing.T) {
	tm := ParseTestMode("delay:10")
	require.Equal(t, TestModeDelay, tm.Kind)
	require.EqualValues(t, 10, tm.Value)
}

func TestParseTestModeSpeedLimit(t *testing.T) {
	tm := ParseTestMode("speed_limit:1048576")
	require.Equal(t, TestModeSpeedLimit, tm.Kind)
	require.EqualValues(t, 1048576, tm.Value)
}

func TestParseTestModeEmptyIsNone(t *testing.T) {
	tm := ParseTestMode("")
	require.Equal(t, TestModeNone, tm.Kind)
}

func TestParseTestModeMalformedIsNone(t *testing.T) {
	for _, s := range []string{"nocolon", "delay:", "delay:abc", "unknown:5"} {
		tm := ParseTestMode(s)
		require.Equal(t, TestModeNone, tm.Kind, "input %q", s)
	}
}

func TestParseUintValidAndInvalid(t *testing.T) {
	n, err := parseUint("42")
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	_, err = parseUint("")
	require.Error(t, err)

	_, err = parseUint("12x")
	require.Error(t, err)
}

func TestShouldPromptForOverwriteCopyForceWithoutYes(t *testing.T) {
	d := &Descriptor{Kind: KindCopy, Flags: Flags{Force: true, Yes: false}}
	require.True(t, d.ShouldPromptForOverwrite())
}

func TestShouldPromptForOverwriteCopyForceWithYesSkips(t *testing.T) {
	d := &Descriptor{Kind: KindCopy, Flags: Flags{Force: true, Yes: true}}
	require.False(t, d.ShouldPromptForOverwrite())
}

func TestShouldPromptForOverwriteMoveWithoutForceSkips(t *testing.T) {
	d := &Descriptor{Kind: KindMove, Flags: Flags{Force: false}}
	require.False(t, d.ShouldPromptForOverwrite())
}

func TestShouldPromptForOverwriteRemoveInteractiveWithoutForce(t *testing.T) {
	d := &Descriptor{Kind: KindRemove, Flags: Flags{Force: false, Interactive: true}}
	require.True(t, d.ShouldPromptForOverwrite())
}

func TestShouldPromptForOverwriteRemoveForceSkipsEvenIfInteractive(t *testing.T) {
	d := &Descriptor{Kind: KindRemove, Flags: Flags{Force: true, Interactive: true}}
	require.False(t, d.ShouldPromptForOverwrite())
}

func TestCompileExcludesInvalidPatternIsError(t *testing.T) {
	_, err := CompileExcludes([]string{"("})
	require.Error(t, err)
}

func TestCompileExcludesEmptyIsNil(t *testing.T) {
	out, err := CompileExcludes(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}
