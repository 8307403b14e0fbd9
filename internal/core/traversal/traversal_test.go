package traversal

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "f1.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "f2.txt"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("z"), 0o644))
	return root
}

func TestWalkPostOrderDescendantsBeforeParent(t *testing.T) {
	root := mkTree(t)
	entries, err := Walk(root, Options{Recursive: true, ContentsFirst: true, MinDepth: 0}, nil)
	require.NoError(t, err)

	pos := map[string]int{}
	for i, e := range entries {
		pos[e.Path] = i
	}
	require.Less(t, pos[filepath.Join(root, "a", "b", "f2.txt")], pos[filepath.Join(root, "a", "b")])
	require.Less(t, pos[filepath.Join(root, "a", "b")], pos[filepath.Join(root, "a")])
	require.Less(t, pos[filepath.Join(root, "a")], pos[root])
}

func TestWalkMinDepthSkipsRoot(t *testing.T) {
	root := mkTree(t)
	entries, err := Walk(root, Options{Recursive: true, ContentsFirst: false, MinDepth: 1}, nil)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, root, e.Path)
	}
}

func TestWalkNonRecursiveCapsDepth(t *testing.T) {
	root := mkTree(t)
	entries, err := Walk(root, Options{Recursive: false, ContentsFirst: false, MinDepth: 0}, nil)
	require.NoError(t, err)
	for _, e := range entries {
		if e.Path == filepath.Join(root, "a", "b") || e.Path == filepath.Join(root, "a", "f1.txt") {
			t.Fatalf("non-recursive walk descended into %s", e.Path)
		}
	}
}

func TestWalkExcludesPruneSubtree(t *testing.T) {
	root := mkTree(t)
	excludes := []*regexp.Regexp{regexp.MustCompile(`a$`)}
	entries, err := Walk(root, Options{Recursive: true, ContentsFirst: false, MinDepth: 0}, excludes)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Path, filepath.Join(root, "a"))
	}
}

func TestIsExcluded(t *testing.T) {
	excludes := []*regexp.Regexp{regexp.MustCompile(`keep$`)}
	require.True(t, IsExcluded("/tmp/d/keep", excludes))
	require.False(t, IsExcluded("/tmp/d/other", excludes))
}
