package parser

import "fmt"

// NodeType represents the type of AST node. Only the shapes the analyzer
// cares about get a named constant; everything else keeps the raw
// tree-sitter grammar name (see buildGenericNode) and is treated as an
// opaque, untouched span of source text.
type NodeType string

const (
	NodeProgram NodeType = "Program"

	NodeIdentifier       NodeType = "Identifier"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeNumberLiteral    NodeType = "NumberLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeNullLiteral      NodeType = "NullLiteral"
	NodeCallExpression   NodeType = "CallExpression"
	NodeMemberExpression NodeType = "MemberExpression"

	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeAssignmentExpression NodeType = "AssignmentExpression"

	// Module system (ESM)
	NodeImportDeclaration        NodeType = "ImportDeclaration"
	NodeImportSpecifier          NodeType = "ImportSpecifier"
	NodeImportDefaultSpecifier   NodeType = "ImportDefaultSpecifier"
	NodeImportNamespaceSpecifier NodeType = "ImportNamespaceSpecifier"
	NodeExportNamedDeclaration   NodeType = "ExportNamedDeclaration"
	NodeExportDefaultDeclaration NodeType = "ExportDefaultDeclaration"
	NodeExportAllDeclaration     NodeType = "ExportAllDeclaration"
	NodeExportSpecifier          NodeType = "ExportSpecifier"
)

// Location represents the position of a node in the source code. StartByte
// and EndByte are byte offsets into the original source and are what the
// analyzer uses to build Edit spans; the transformer never re-parses.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	StartByte int
	EndByte   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node. Only import/export/CommonJS-interop shapes
// are decoded into dedicated fields; every other node type is a generic
// passthrough carrying just its children and byte range.
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	Name string // identifier text, or specifier local/exported name

	// Expression fields (member/call/assignment detection for
	// module.exports / exports.x / require())
	Object    *Node
	Property  *Node
	Callee    *Node
	Arguments []*Node
	Left      *Node
	Right     *Node
	Operator  string

	// Import/Export fields
	Source      *Node   // Import/re-export source string literal
	Specifiers  []*Node // Import/export specifiers
	Declaration *Node   // Export declaration or default value

	Imported *Node // ImportSpecifier: original name
	Local    *Node // ExportSpecifier: local name

	Raw string // Raw literal text, including quotes
}

// NewNode creates a new AST node.
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild adds a child node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls visitor for each node. If
// visitor returns false, that branch is not descended into.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, spec := range n.Specifiers {
		spec.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	if n.Property != nil {
		n.Property.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Left != nil {
		n.Left.Walk(visitor)
	}
	if n.Right != nil {
		n.Right.Walk(visitor)
	}
	if n.Source != nil {
		n.Source.Walk(visitor)
	}
	if n.Declaration != nil {
		n.Declaration.Walk(visitor)
	}
}

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}
