package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangRuby       Language = "ruby"
	LangUnknown    Language = "unknown"
)

// Parser wraps tree-sitter for multi-language parsing. A Parser is not
// safe for concurrent use; create one per worker.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and metadata.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses in-memory source code with a specified language.
func (p *Parser) Parse(source []byte, lang Language, path string) (*ParseResult, error) {
	tsLang, err := GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// GetTreeSitterLanguage returns the tree-sitter language for a Language enum.
func GetTreeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangRuby:
		return ruby.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return LangGo
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".ts":
		return LangTypeScript
	case ".tsx", ".jsx":
		return LangTSX
	case ".rb":
		return LangRuby
	default:
		return LangUnknown
	}
}

// NodeVisitor is a function that visits AST nodes. Returning false
// stops descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// Walk traverses the AST calling visitor for each node.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// DeclKind distinguishes the two declaration shapes the graph tracks.
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclClass
)

// Decl is one function or class declaration found in a file.
// TopLevel is true when no other function or class encloses it.
type Decl struct {
	Kind      DeclKind
	Name      string
	StartLine uint32
	EndLine   uint32
	TopLevel  bool
	Node      *sitter.Node
	Body      *sitter.Node
}

// Declarations extracts every named function and class from parsed code
// in a single pass, preserving source order across both kinds. Methods
// inside a class body are reported as their own function declarations.
// Anonymous declarations are skipped.
func Declarations(result *ParseResult) []Decl {
	var decls []Decl

	funcTypes := functionNodeTypes(result.Language)
	classTypes := classNodeTypes(result.Language)

	Walk(result.Tree.RootNode(), result.Source, func(node *sitter.Node, source []byte) bool {
		nodeType := node.Type()
		if containsType(funcTypes, nodeType) {
			if d, ok := extractDecl(node, source, result.Language, DeclFunction); ok {
				decls = append(decls, d)
			}
			return true
		}
		if containsType(classTypes, nodeType) {
			if d, ok := extractDecl(node, source, result.Language, DeclClass); ok {
				decls = append(decls, d)
			}
			return true
		}
		return true
	})

	return decls
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func functionNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	case LangPython:
		return []string{"function_definition"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "method_definition"}
	case LangRuby:
		return []string{"method", "singleton_method"}
	default:
		return nil
	}
}

func classNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"type_declaration"}
	case LangPython:
		return []string{"class_definition"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"class_declaration"}
	case LangRuby:
		return []string{"class", "module"}
	default:
		return nil
	}
}

func extractDecl(node *sitter.Node, source []byte, lang Language, kind DeclKind) (Decl, bool) {
	d := Decl{
		Kind:      kind,
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
		TopLevel:  isTopLevel(node, lang),
		Node:      node,
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		d.Name = GetNodeText(nameNode, source)
	}
	if d.Name == "" && lang == LangGo && kind == DeclClass {
		// Go wraps "type Foo struct" in a type_declaration whose
		// type_spec child carries the name field.
		for i := range int(node.ChildCount()) {
			child := node.Child(i)
			if child.Type() == "type_spec" {
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					d.Name = GetNodeText(nameNode, source)
				}
				break
			}
		}
	}
	if d.Name == "" {
		return Decl{}, false
	}

	d.Body = node.ChildByFieldName("body")
	if d.Body == nil {
		// Ruby methods keep their statements under body_statement.
		d.Body = node.ChildByFieldName("body_statement")
	}

	return d, true
}

func isTopLevel(node *sitter.Node, lang Language) bool {
	funcTypes := functionNodeTypes(lang)
	classTypes := classNodeTypes(lang)
	for p := node.Parent(); p != nil; p = p.Parent() {
		t := p.Type()
		if containsType(funcTypes, t) || containsType(classTypes, t) {
			return false
		}
	}
	return true
}

// callNodeTypes maps each language to its call-expression node types.
func callNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"call_expression"}
	case LangPython:
		return []string{"call"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"call_expression", "new_expression"}
	case LangRuby:
		return []string{"call", "method_call"}
	default:
		return nil
	}
}

// Calls returns the simple names invoked inside a declaration body, in
// source order. Qualified calls like obj.method() report the trailing
// identifier; calls whose callee cannot be reduced to a name are skipped.
func Calls(body *sitter.Node, source []byte, lang Language) []string {
	if body == nil {
		return nil
	}

	callTypes := callNodeTypes(lang)
	var names []string

	Walk(body, source, func(node *sitter.Node, src []byte) bool {
		if !containsType(callTypes, node.Type()) {
			return true
		}
		callee := node.ChildByFieldName("function")
		if callee == nil {
			callee = node.ChildByFieldName("method")
		}
		if callee == nil {
			callee = node.ChildByFieldName("constructor")
		}
		if name := calleeName(callee, src); name != "" {
			names = append(names, name)
		}
		return true
	})

	return names
}

func calleeName(callee *sitter.Node, source []byte) string {
	if callee == nil {
		return ""
	}
	switch callee.Type() {
	case "identifier", "constant", "type_identifier", "property_identifier", "field_identifier":
		return GetNodeText(callee, source)
	case "attribute", "member_expression", "selector_expression":
		attr := callee.ChildByFieldName("attribute")
		if attr == nil {
			attr = callee.ChildByFieldName("property")
		}
		if attr == nil {
			attr = callee.ChildByFieldName("field")
		}
		return GetNodeText(attr, source)
	default:
		return ""
	}
}
