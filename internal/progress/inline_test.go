package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 B", formatBytes(512))
	require.Equal(t, "1.00 KiB", formatBytes(1024))
	require.Equal(t, "1.00 MiB", formatBytes(1024*1024))
}

func TestTruncateNameShort(t *testing.T) {
	require.Equal(t, "short.txt", truncateName("short.txt", 40))
}

func TestTruncateNameLong(t *testing.T) {
	name := "this-is-a-very-long-file-name-that-needs-truncation.bin"
	got := truncateName(name, 20)
	require.Len(t, []rune(got), 20)
	require.Contains(t, got, "…")
}

func TestRenderPlainBar(t *testing.T) {
	require.Equal(t, "==========", renderPlainBar(100, 10))
	require.Equal(t, "----------", renderPlainBar(0, 10))
	require.Equal(t, "=====-----", renderPlainBar(50, 10))
}

func TestFormatETAUndefined(t *testing.T) {
	require.Equal(t, "--", formatETA(nil))
}
