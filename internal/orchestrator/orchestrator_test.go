package orchestrator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bcmr/internal/command"
)

func init() {
	settleDelay = time.Millisecond
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestRunCopySingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "b.bin")

	d := &command.Descriptor{
		Kind:        command.KindCopy,
		Paths:       []string{src},
		Destination: dst,
		Flags:       command.Flags{Reflink: command.ReflinkDisable},
	}

	require.NoError(t, Run(d))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestRunMoveSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "b.bin")

	d := &command.Descriptor{
		Kind:        command.KindMove,
		Paths:       []string{src},
		Destination: dst,
		Flags:       command.Flags{Reflink: command.ReflinkDisable},
	}

	require.NoError(t, Run(d))

	_, err := os.Stat(src)
	require.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestRunRemoveForceSkipsConfirmation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.bin")
	writeFile(t, file, []byte("payload"))

	d := &command.Descriptor{
		Kind:  command.KindRemove,
		Paths: []string{file},
		Flags: command.Flags{Force: true},
	}

	require.NoError(t, Run(d))

	_, err := os.Stat(file)
	require.True(t, os.IsNotExist(err))
}

func TestRunCopyDryRunLeavesDestinationAbsent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "b.bin")

	d := &command.Descriptor{
		Kind:        command.KindCopy,
		Paths:       []string{src},
		Destination: dst,
		Flags:       command.Flags{DryRun: true, Reflink: command.ReflinkDisable},
	}

	require.NoError(t, Run(d))

	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}
