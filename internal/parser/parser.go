// Package parser wraps tree-sitter as an opaque AST provider for the
// bundler: it decodes only the shapes the analyzer inspects (imports,
// exports, and the CommonJS-interop member/call expressions) and otherwise
// hands back the source unmodified, byte-range by byte-range.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Parser wraps a tree-sitter parser configured for modern JavaScript
// (module syntax included). TypeScript is out of scope for this module.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new JavaScript parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	lang := javascript.GetLanguage()
	p.SetLanguage(lang)
	return &Parser{parser: p, language: lang}
}

// ParseFile parses a JavaScript source file and builds our internal AST.
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	builder := NewASTBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Parse parses JavaScript source with no associated filename.
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript source from a string.
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// Close frees the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
