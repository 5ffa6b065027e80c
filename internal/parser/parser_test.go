package parser

import "testing"

func TestParseImportDefault(t *testing.T) {
	code := `import React from 'react';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ast == nil || ast.Type != NodeProgram {
		t.Fatal("expected Program root node")
	}
	if len(ast.Children) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(ast.Children))
	}

	imp := ast.Children[0]
	if imp.Type != NodeImportDeclaration {
		t.Fatalf("expected NodeImportDeclaration, got %s", imp.Type)
	}
	if imp.Source == nil || imp.Source.Raw != "'react'" {
		t.Errorf("expected source 'react', got %+v", imp.Source)
	}
	if len(imp.Specifiers) != 1 || imp.Specifiers[0].Type != NodeImportDefaultSpecifier {
		t.Fatalf("expected 1 default specifier, got %+v", imp.Specifiers)
	}
	if imp.Specifiers[0].Name != "React" {
		t.Errorf("expected specifier name React, got %s", imp.Specifiers[0].Name)
	}
}

func TestParseImportNamedWithAlias(t *testing.T) {
	code := `import { useState, useEffect as useFx } from 'react';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	imp := ast.Children[0]
	if len(imp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(imp.Specifiers))
	}

	plain := imp.Specifiers[0]
	if plain.Name != "useState" || plain.Imported.Name != "useState" {
		t.Errorf("unexpected plain specifier: %+v", plain)
	}

	aliased := imp.Specifiers[1]
	if aliased.Imported.Name != "useEffect" || aliased.Name != "useFx" {
		t.Errorf("unexpected aliased specifier: %+v", aliased)
	}
}

func TestParseNamespaceImport(t *testing.T) {
	code := `import * as utils from './utils';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	imp := ast.Children[0]
	if len(imp.Specifiers) != 1 || imp.Specifiers[0].Type != NodeImportNamespaceSpecifier {
		t.Fatalf("expected namespace specifier, got %+v", imp.Specifiers)
	}
	if imp.Specifiers[0].Name != "utils" {
		t.Errorf("expected name utils, got %s", imp.Specifiers[0].Name)
	}
}

func TestParseExportNamed(t *testing.T) {
	code := `export { foo, bar as baz };`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportNamedDeclaration {
		t.Fatalf("expected NodeExportNamedDeclaration, got %s", exp.Type)
	}
	if len(exp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(exp.Specifiers))
	}
	if exp.Specifiers[1].Local.Name != "bar" || exp.Specifiers[1].Name != "baz" {
		t.Errorf("unexpected aliased export specifier: %+v", exp.Specifiers[1])
	}
}

func TestParseExportDefault(t *testing.T) {
	code := `export default function greet() {};`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportDefaultDeclaration {
		t.Fatalf("expected NodeExportDefaultDeclaration, got %s", exp.Type)
	}
}

func TestParseExportAll(t *testing.T) {
	code := `export * from './utils';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportAllDeclaration {
		t.Fatalf("expected NodeExportAllDeclaration, got %s", exp.Type)
	}
	if exp.Source == nil || exp.Source.Raw != "'./utils'" {
		t.Errorf("expected source './utils', got %+v", exp.Source)
	}
}

func TestParseByteOffsetsPopulated(t *testing.T) {
	code := `import x from 'y';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	imp := ast.Children[0]
	if imp.Location.EndByte <= imp.Location.StartByte {
		t.Errorf("expected non-empty byte range, got %+v", imp.Location)
	}
	if imp.Location.EndByte > len(code) {
		t.Errorf("end byte %d exceeds source length %d", imp.Location.EndByte, len(code))
	}
}

func TestParseRequireCall(t *testing.T) {
	code := `const fs = require('fs');`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeCallExpression && n.Callee != nil && n.Callee.Name == "require" {
			found = true
			if len(n.Arguments) != 1 || n.Arguments[0].Raw != "'fs'" {
				t.Errorf("unexpected require argument: %+v", n.Arguments)
			}
			return false
		}
		return true
	})
	if !found {
		t.Error("expected to find require() call")
	}
}

func TestParseModuleExportsAssignment(t *testing.T) {
	code := `module.exports = { foo: 1 };`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeAssignmentExpression && n.Left != nil && n.Left.Type == NodeMemberExpression {
			if n.Left.Object != nil && n.Left.Object.Name == "module" &&
				n.Left.Property != nil && n.Left.Property.Name == "exports" {
				found = true
				return false
			}
		}
		return true
	})
	if !found {
		t.Error("expected to find module.exports assignment")
	}
}
