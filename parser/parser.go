package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/viant/jbind/tree"
)

// ErrSyntax reports source that does not parse as Java.
var ErrSyntax = errors.New("syntax error")

// Parser turns Java source into header-level declaration trees: package,
// imports, type declarations, modifiers, extends and implements clauses,
// and member headers. Statements and expressions are not represented.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses a single compilation unit.
func (p *Parser) Parse(ctx context.Context, src []byte) (*tree.CompUnit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	parsed, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	root := parsed.RootNode()
	if root.HasError() {
		if at := firstErrorNode(root); at != nil {
			point := at.StartPoint()
			return nil, fmt.Errorf("%d:%d: %w", point.Row+1, point.Column+1, ErrSyntax)
		}
		return nil, ErrSyntax
	}
	return convertUnit(root, src), nil
}

// ParseFile parses the Java source file at filename.
func (p *Parser) ParseFile(ctx context.Context, filename string) (*tree.CompUnit, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	unit, err := p.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return unit, nil
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		if found := firstErrorNode(node.NamedChild(int(j))); found != nil {
			return found
		}
	}
	return nil
}
