package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augur/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFilesystemCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "def main():\n    pass\n")
	writeFile(t, dir, "lib/util.py", "def helper():\n    pass\n")
	writeFile(t, dir, "README.md", "# docs\n")
	writeFile(t, dir, "node_modules/dep/index.js", "module.exports = 1\n")
	writeFile(t, dir, "util_test.py", "def test():\n    pass\n")

	p := NewFilesystem(dir, config.DefaultConfig())
	files, err := p.Collect()
	require.NoError(t, err)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{"app.py", filepath.Join("lib", "util.py")}, paths)
	assert.Equal(t, "def main():\n    pass\n", string(files[0].Content))
}

func TestFilesystemCollectDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "def b():\n    pass\n")
	writeFile(t, dir, "a.py", "def a():\n    pass\n")
	writeFile(t, dir, "c/d.py", "def d():\n    pass\n")

	p := NewFilesystem(dir, config.DefaultConfig())
	first, err := p.Collect()
	require.NoError(t, err)
	second, err := p.Collect()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilesystemCollectMissingRoot(t *testing.T) {
	p := NewFilesystem("/nonexistent/augur-test-root", config.DefaultConfig())
	_, err := p.Collect()
	assert.Error(t, err)
}

type fakeTree struct {
	files map[string][]byte
	paths []string
}

func (f *fakeTree) Entries() ([]string, error) { return f.paths, nil }
func (f *fakeTree) File(path string) ([]byte, error) {
	return f.files[path], nil
}

func TestTreeCollect(t *testing.T) {
	tree := &fakeTree{
		paths: []string{"docs/readme.md", "src/app.py", "vendor/x.py"},
		files: map[string][]byte{
			"src/app.py": []byte("def main():\n    pass\n"),
		},
	}

	p := NewTree(tree, config.DefaultConfig())
	files, err := p.Collect()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/app.py", files[0].Path)
}
