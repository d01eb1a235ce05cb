package engine

import (
	"encoding/hex"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/zeebo/blake3"

	"augur/pkg/models"
	"augur/pkg/parser"
	"augur/pkg/source"
)

// extractedNode is one declaration found during extraction, carrying
// everything linking and analysis need so the AST can be released at
// the end of the file's extraction.
type extractedNode struct {
	node     *models.CodeNode
	calls    []string // callee names in body, source order
	tokens   []string // leaf tokens, for near-duplicate shingling
	topLevel bool
}

// fileResult is the outcome of extracting one file.
type fileResult struct {
	path  string
	nodes []extractedNode
}

// extractFile parses one source file and collects its declarations.
// A parse failure returns an error; the pipeline converts it into a
// skip record rather than aborting the run.
func extractFile(psr *parser.Parser, f source.File) (fileResult, error) {
	lang := parser.DetectLanguage(f.Path)
	if lang == parser.LangUnknown {
		return fileResult{}, fmt.Errorf("unsupported language for %s", f.Path)
	}

	result, err := psr.Parse(f.Content, lang, f.Path)
	if err != nil {
		return fileResult{}, err
	}
	if result.Tree.RootNode().HasError() {
		return fileResult{}, fmt.Errorf("syntax error in %s", f.Path)
	}

	out := fileResult{path: f.Path}
	for _, decl := range parser.Declarations(result) {
		kind := models.KindFunction
		if decl.Kind == parser.DeclClass {
			kind = models.KindClass
		}

		hashTarget := decl.Body
		if hashTarget == nil {
			hashTarget = decl.Node
		}

		node := &models.CodeNode{
			ID:             models.NodeID(f.Path, decl.Name, decl.StartLine),
			Kind:           kind,
			Name:           decl.Name,
			FilePath:       f.Path,
			LineNumber:     decl.StartLine,
			StructuralHash: structuralHash(hashTarget, f.Content),
			SemanticIntent: ActualIntent(parser.GetNodeText(decl.Node, f.Content)),
		}

		out.nodes = append(out.nodes, extractedNode{
			node:     node,
			calls:    parser.Calls(decl.Body, f.Content, lang),
			tokens:   leafTokens(hashTarget, f.Content),
			topLevel: decl.TopLevel,
		})
	}
	return out, nil
}

// structuralHash digests a normalized dump of the subtree with all
// location metadata stripped, so identical bodies at different
// positions hash identically. 128-bit blake3, hex encoded.
func structuralHash(node *sitter.Node, src []byte) string {
	var b strings.Builder
	dumpNormalized(node, src, &b)

	var digest [16]byte
	h := blake3.New()
	h.WriteString(b.String())
	copy(digest[:], h.Sum(nil))
	return hex.EncodeToString(digest[:])
}

func dumpNormalized(node *sitter.Node, src []byte, b *strings.Builder) {
	if node == nil {
		return
	}
	b.WriteByte('(')
	b.WriteString(node.Type())
	if node.ChildCount() == 0 {
		b.WriteByte(' ')
		b.WriteString(parser.GetNodeText(node, src))
	}
	for i := range int(node.ChildCount()) {
		dumpNormalized(node.Child(i), src, b)
	}
	b.WriteByte(')')
}

// leafTokens flattens a subtree to its leaf token texts.
func leafTokens(node *sitter.Node, src []byte) []string {
	var tokens []string
	parser.Walk(node, src, func(n *sitter.Node, s []byte) bool {
		if n.ChildCount() == 0 {
			if text := parser.GetNodeText(n, s); text != "" {
				tokens = append(tokens, text)
			}
		}
		return true
	})
	return tokens
}
