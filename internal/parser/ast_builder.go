package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from the tree-sitter CST.
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder.
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{filename: filename, source: source}
}

// Build builds the AST from a tree-sitter node.
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node. Only the
// shapes the analyzer inspects get dedicated builders; everything else
// falls through to buildGenericNode and is never reinterpreted.
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "import_statement":
		return b.buildImportStatement(tsNode)
	case "export_statement":
		return b.buildExportStatement(tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode)
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "assignment_expression":
		return b.buildAssignmentExpression(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return b.buildIdentifier(tsNode)
	case "string", "number", "true", "false", "null":
		return b.buildLiteral(tsNode)
	default:
		return b.buildGenericNode(tsNode)
	}
}

// buildProgram builds the Program node from the top-level statements.
func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProgram)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			if childNode := b.buildNode(child); childNode != nil {
				node.AddChild(childNode)
			}
		}
	}

	return node
}

// buildExpressionStatement unwraps to the inner expression; the statement
// itself carries no information the analyzer needs.
func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != ";" {
			return b.buildNode(child)
		}
	}
	node := NewNode(NodeExpressionStatement)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildCallExpression builds a call expression node, used to recognize
// require('x') calls for the CommonJS-interop warning.
func (b *ASTBuilder) buildCallExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCallExpression)
	node.Location = b.getLocation(tsNode)

	if funcNode := b.getChildByFieldName(tsNode, "function"); funcNode != nil {
		node.Callee = b.buildNode(funcNode)
	}

	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		for i := 0; i < int(argsNode.ChildCount()); i++ {
			child := argsNode.Child(i)
			if child != nil && !b.isTrivia(child) && child.Type() != "(" && child.Type() != ")" && child.Type() != "," {
				if argNode := b.buildNode(child); argNode != nil {
					node.Arguments = append(node.Arguments, argNode)
				}
			}
		}
	}

	return node
}

// buildMemberExpression builds a member expression node, used to recognize
// module.exports / exports.x for the CommonJS-interop warning.
func (b *ASTBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMemberExpression)
	node.Location = b.getLocation(tsNode)

	if objNode := b.getChildByFieldName(tsNode, "object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if propNode := b.getChildByFieldName(tsNode, "property"); propNode != nil {
		node.Property = b.buildNode(propNode)
	}

	return node
}

// buildAssignmentExpression builds an assignment expression node, used to
// recognize `module.exports = ...` / `exports.x = ...`.
func (b *ASTBuilder) buildAssignmentExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAssignmentExpression)
	node.Location = b.getLocation(tsNode)

	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.buildNode(leftNode)
	}
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.buildNode(rightNode)
	}

	return node
}

// buildIdentifier builds an identifier node.
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildLiteral builds a literal node, keeping the raw (quoted) text.
func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStringLiteral)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)

	switch tsNode.Type() {
	case "number":
		node.Type = NodeNumberLiteral
	case "true", "false":
		node.Type = NodeBooleanLiteral
	case "null":
		node.Type = NodeNullLiteral
	}

	return node
}

// buildImportStatement builds an ImportDeclaration node with its source and
// specifiers (default / namespace / named, including renames).
func (b *ASTBuilder) buildImportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportDeclaration)
	node.Location = b.getLocation(tsNode)

	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_clause":
			b.extractImportClause(child, node)
		case "namespace_import":
			node.Specifiers = append(node.Specifiers, b.buildNamespaceImport(child))
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				if spec := child.Child(j); spec != nil && spec.Type() == "import_specifier" {
					node.Specifiers = append(node.Specifiers, b.buildImportSpecifier(spec))
				}
			}
		case "import_specifier":
			node.Specifiers = append(node.Specifiers, b.buildImportSpecifier(child))
		}
	}

	return node
}

func (b *ASTBuilder) buildNamespaceImport(tsNode *sitter.Node) *Node {
	specNode := NewNode(NodeImportNamespaceSpecifier)
	specNode.Location = b.getLocation(tsNode)
	for j := 0; j < int(tsNode.ChildCount()); j++ {
		if grandchild := tsNode.Child(j); grandchild != nil && grandchild.Type() == "identifier" {
			specNode.Name = grandchild.Content(b.source)
		}
	}
	return specNode
}

// extractImportClause extracts specifiers from an import_clause node:
// default import, namespace import, and/or named imports can all appear.
func (b *ASTBuilder) extractImportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			specNode := NewNode(NodeImportDefaultSpecifier)
			specNode.Location = b.getLocation(child)
			specNode.Name = child.Content(b.source)
			node.Specifiers = append(node.Specifiers, specNode)
		case "namespace_import":
			node.Specifiers = append(node.Specifiers, b.buildNamespaceImport(child))
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				if spec := child.Child(j); spec != nil && spec.Type() == "import_specifier" {
					node.Specifiers = append(node.Specifiers, b.buildImportSpecifier(spec))
				}
			}
		}
	}
}

// buildImportSpecifier builds `{ foo }` or `{ foo as bar }`: one identifier
// means the imported and local names match, two means imported-then-local.
func (b *ASTBuilder) buildImportSpecifier(tsNode *sitter.Node) *Node {
	specNode := NewNode(NodeImportSpecifier)
	specNode.Location = b.getLocation(tsNode)

	var identifiers []*sitter.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && child.Type() == "identifier" {
			identifiers = append(identifiers, child)
		}
	}

	switch len(identifiers) {
	case 1:
		specNode.Name = identifiers[0].Content(b.source)
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = specNode.Name
	case 2:
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = identifiers[0].Content(b.source)
		specNode.Name = identifiers[1].Content(b.source)
	}

	return specNode
}

// buildExportStatement builds ExportNamedDeclaration / ExportDefaultDeclaration
// / ExportAllDeclaration depending on the `default`/`*` tokens present.
func (b *ASTBuilder) buildExportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExportNamedDeclaration)
	node.Location = b.getLocation(tsNode)

	hasDefault := false
	hasWildcard := false

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "default":
			hasDefault = true
		case "*":
			hasWildcard = true
		case "export_clause":
			b.extractExportClause(child, node)
		}
	}

	if hasDefault {
		node.Type = NodeExportDefaultDeclaration
	} else if hasWildcard {
		node.Type = NodeExportAllDeclaration
	}

	if declNode := b.getChildByFieldName(tsNode, "declaration"); declNode != nil {
		node.Declaration = b.buildNode(declNode)
	}
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Declaration = b.buildNode(valueNode)
	}
	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	return node
}

// extractExportClause extracts `{ foo }` / `{ foo as bar }` specifiers.
func (b *ASTBuilder) extractExportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil || child.Type() != "export_specifier" {
			continue
		}

		specNode := NewNode(NodeExportSpecifier)
		specNode.Location = b.getLocation(child)

		var identifiers []*sitter.Node
		for j := 0; j < int(child.ChildCount()); j++ {
			if grandchild := child.Child(j); grandchild != nil && grandchild.Type() == "identifier" {
				identifiers = append(identifiers, grandchild)
			}
		}

		switch len(identifiers) {
		case 1:
			specNode.Name = identifiers[0].Content(b.source)
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = specNode.Name
		case 2:
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = identifiers[0].Content(b.source)
			specNode.Name = identifiers[1].Content(b.source)
		}

		node.Specifiers = append(node.Specifiers, specNode)
	}
}

// buildGenericNode builds an opaque node for anything the analyzer does not
// special-case. Its children are still descended into so a require() or
// module.exports assignment nested inside, say, a function body is still
// discoverable by Walk.
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)

	// Function/class/variable declarators all expose their bound identifier
	// under tree-sitter's "name" field; capturing it here (rather than
	// special-casing each declaration shape) is what lets the analyzer read
	// declaredNames(node.Declaration) for `export function f(){}`,
	// `export class C{}`, and `export const x = 1` alike. Destructuring
	// patterns (`export const {a} = o`) have a "name" field that isn't a
	// plain identifier, so Name is deliberately left blank for those.
	if nameField := b.getChildByFieldName(tsNode, "name"); nameField != nil && nameField.Type() == "identifier" {
		node.Name = nameField.Content(b.source)
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			if childNode := b.buildNode(child); childNode != nil {
				node.AddChild(childNode)
			}
		}
	}

	return node
}

func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
		StartByte: int(tsNode.StartByte()),
		EndByte:   int(tsNode.EndByte()),
	}
}

func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	switch tsNode.Type() {
	case "comment", "line_comment", "block_comment", "":
		return true
	}
	return false
}
