package shellinit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseShellKnownValues(t *testing.T) {
	for _, s := range []string{"bash", "zsh", "fish", "BASH"} {
		_, err := ParseShell(s)
		require.NoError(t, err)
	}
}

func TestParseShellUnknownIsError(t *testing.T) {
	_, err := ParseShell("powershell")
	require.Error(t, err)
}

func TestGenerateBashDefaultDefinesBareVerbsWithoutAlias(t *testing.T) {
	out, err := Generate(ShellBash, Options{})
	require.NoError(t, err)
	require.Contains(t, out, "cp ()")
	require.Contains(t, out, "mv ()")
	require.Contains(t, out, "rm ()")
	require.Contains(t, out, "copy \"$@\"")
	require.NotContains(t, out, "alias cp=")
}

func TestGenerateBashWithPrefixAliasesOriginalVerb(t *testing.T) {
	out, err := Generate(ShellBash, Options{Prefix: "b"})
	require.NoError(t, err)
	require.Contains(t, out, "bcp ()")
	require.Contains(t, out, "alias cp='bcp'")
}

func TestGenerateNoCmdSkipsAlias(t *testing.T) {
	out, err := Generate(ShellBash, Options{Prefix: "b", NoCmd: true})
	require.NoError(t, err)
	require.False(t, strings.Contains(out, "alias cp="))
}

func TestGenerateFishUsesFunctionSyntax(t *testing.T) {
	out, err := Generate(ShellFish, Options{Prefix: "b"})
	require.NoError(t, err)
	require.Contains(t, out, "function bcp")
	require.Contains(t, out, "alias cp=bcp")
}
