package moveengine

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"bcmr/internal/transfer"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestMovePathFileSameDeviceRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "b.bin")

	err := MovePath(src, dst, false, transfer.Options{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = os.Stat(src)
	require.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestMovePathFileTargetExistsWithoutForce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "b.bin")
	writeFile(t, dst, []byte("existing"))

	err := MovePath(src, dst, false, transfer.Options{}, nil, nil, nil)
	require.Error(t, err)

	_, statErr := os.Stat(src)
	require.NoError(t, statErr, "source must survive a rejected move")
}

func TestMovePathDirectoryRecursiveMovesTree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(src, "sub", "b.txt"), []byte("b"))
	dst := filepath.Join(dir, "dst")

	err := MovePath(src, dst, true, transfer.Options{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = os.Stat(src)
	require.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "b", string(got))
}

func TestMovePathDirectoryNonRecursiveFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), []byte("a"))
	dst := filepath.Join(dir, "dst")

	err := MovePath(src, dst, false, transfer.Options{}, nil, nil, nil)
	require.Error(t, err)
}

func TestMovePathExcludedSourceIsNoop(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "secret.bin")
	writeFile(t, src, []byte("payload"))
	dst := filepath.Join(dir, "out.bin")

	excludes := []*regexp.Regexp{regexp.MustCompile(`secret\.bin$`)}
	err := MovePath(src, dst, false, transfer.Options{}, excludes, nil, nil)
	require.NoError(t, err)

	_, err = os.Stat(src)
	require.NoError(t, err, "excluded source must be left in place")
	_, err = os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestMovePathDirectoryWithExcludesLeavesExcludedFilesBehind(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "keep.txt"), []byte("keep"))
	writeFile(t, filepath.Join(src, "skip.txt"), []byte("skip"))
	dst := filepath.Join(dir, "dst")

	excludes := []*regexp.Regexp{regexp.MustCompile(`skip\.txt$`)}
	err := MovePath(src, dst, true, transfer.Options{}, excludes, nil, nil)
	require.NoError(t, err)

	// Moved file present at destination.
	got, err := os.ReadFile(filepath.Join(dst, "keep.txt"))
	require.NoError(t, err)
	require.Equal(t, "keep", string(got))

	// Excluded file was never copied to the destination...
	_, err = os.Stat(filepath.Join(dst, "skip.txt"))
	require.True(t, os.IsNotExist(err))

	// ...and remains in the source, so the source directory itself survives.
	got, err = os.ReadFile(filepath.Join(src, "skip.txt"))
	require.NoError(t, err)
	require.Equal(t, "skip", string(got))
}
