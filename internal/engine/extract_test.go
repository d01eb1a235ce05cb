package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augur/pkg/models"
	"augur/pkg/parser"
	"augur/pkg/source"
)

func extract(t *testing.T, path, content string) fileResult {
	t.Helper()
	psr := parser.New()
	defer psr.Close()
	fr, err := extractFile(psr, source.File{Path: path, Content: []byte(content)})
	require.NoError(t, err)
	return fr
}

func TestExtractFileNodes(t *testing.T) {
	fr := extract(t, "app.py", `class Store:
    def save(self):
        pass

def fetch_data():
    requests.get(url)
`)

	require.Len(t, fr.nodes, 3)

	store := fr.nodes[0].node
	assert.Equal(t, "app.py:Store:1", store.ID)
	assert.Equal(t, models.KindClass, store.Kind)

	save := fr.nodes[1].node
	assert.Equal(t, models.KindFunction, save.Kind)
	assert.Equal(t, uint32(2), save.LineNumber)
	assert.False(t, fr.nodes[1].topLevel)

	fetch := fr.nodes[2].node
	assert.Equal(t, "fetch_data", fetch.Name)
	assert.Equal(t, models.IntentNetwork, fetch.SemanticIntent)
	assert.True(t, fr.nodes[2].topLevel)
}

// Identical bodies at different lines and files hash identically.
func TestStructuralHashIgnoresLocation(t *testing.T) {
	a := extract(t, "a.py", "def foo():\n    return 1\n")
	b := extract(t, "b.py", "\n\n\ndef bar():\n    return 1\n")

	require.Len(t, a.nodes, 1)
	require.Len(t, b.nodes, 1)
	assert.Equal(t, a.nodes[0].node.StructuralHash, b.nodes[0].node.StructuralHash)
}

func TestStructuralHashDistinguishesBodies(t *testing.T) {
	a := extract(t, "a.py", "def foo():\n    return 1\n")
	b := extract(t, "b.py", "def foo():\n    return 2\n")

	assert.NotEqual(t, a.nodes[0].node.StructuralHash, b.nodes[0].node.StructuralHash)
}

func TestExtractFileRecordsCalls(t *testing.T) {
	fr := extract(t, "app.py", `def main():
    setup()
    handler.dispatch(event)
`)

	require.Len(t, fr.nodes, 1)
	assert.Equal(t, []string{"setup", "dispatch"}, fr.nodes[0].calls)
}

func TestExtractFileSyntaxError(t *testing.T) {
	psr := parser.New()
	defer psr.Close()

	_, err := extractFile(psr, source.File{Path: "bad.py", Content: []byte("def broken(:\n    ???\n")})
	assert.Error(t, err)
}

func TestExtractFileUnsupportedLanguage(t *testing.T) {
	psr := parser.New()
	defer psr.Close()

	_, err := extractFile(psr, source.File{Path: "notes.txt", Content: []byte("hello")})
	assert.Error(t, err)
}
