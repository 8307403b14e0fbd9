package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bcmr/internal/command"
)

func TestIsAllZero(t *testing.T) {
	require.True(t, isAllZero(make([]byte, 100)))
	buf := make([]byte, 100)
	buf[50] = 1
	require.False(t, isAllZero(buf))
}

func TestSparseWriterAlwaysHolesAnyZeroRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := newSparseWriter(f, 0, command.SparseAlways)
	require.NoError(t, w.Write(make([]byte, 10), 10))
	require.NoError(t, w.Write([]byte("hi"), 2))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, append(make([]byte, 10), []byte("hi")...), data)
}

func TestSparseWriterAutoSkipsSmallZeroRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := newSparseWriter(f, 0, command.SparseAuto)
	smallZero := make([]byte, 10)
	require.NoError(t, w.Write(smallZero, 10))
	require.NoError(t, w.Write([]byte("x"), 1))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, append(make([]byte, 10), 'x'), data)
}

func TestSparseWriterTrailingHoleTruncatesToLogicalSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := newSparseWriter(f, 0, command.SparseAlways)
	require.NoError(t, w.Write([]byte("hi"), 2))
	require.NoError(t, w.Write(make([]byte, 20), 20))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 22, info.Size())
}

func TestSparseWriterNeverModeWritesZerosLiterally(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := newSparseWriter(f, 0, command.SparseNever)
	require.NoError(t, w.Write(make([]byte, 10), 10))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 10, info.Size())
}
