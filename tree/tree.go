package tree

import (
	"strings"

	"github.com/viant/jbind/model"
)

// CompUnit is the header-level declaration tree of a single source file.
type CompUnit struct {
	// Package holds the declared package name segments; empty for the
	// default package.
	Package []string
	Imports []*Import
	Decls   []*TypeDecl
}

// Import is a single import declaration.
type Import struct {
	// Segments are the dot-separated pieces of the imported name.
	Segments []string
	// Wildcard is true for on-demand imports (import a.b.*).
	Wildcard bool
}

// TypeDecl declares a class, interface, enum or annotation.
type TypeDecl struct {
	Kind  model.TypeKind
	Flags model.Flag
	Name  string
	// Extends is the declared supertype, or nil when absent.
	Extends *ClassType
	// Implements lists declared interfaces in source order. For an
	// interface declaration these are the extended interfaces.
	Implements []*ClassType
	Members    []Member
}

func (*TypeDecl) member() {}

// Member is a class body declaration: a nested *TypeDecl, *VarDecl or
// *MethodDecl.
type Member interface {
	member()
}

// VarDecl declares a field or an enum constant.
type VarDecl struct {
	Flags model.Flag
	Name  string
	// Type is the declared field type; nil for enum constants.
	Type *ClassType
}

func (*VarDecl) member() {}

// MethodDecl declares a method or constructor header.
type MethodDecl struct {
	Flags model.Flag
	Name  string
}

func (*MethodDecl) member() {}

// ClassType is a qualified type reference. A<...>.B<...>.C parses to a
// left-recursive chain headed by C whose Base links lead outward and end at
// the outermost element A; type arguments are erased at header granularity.
type ClassType struct {
	Base *ClassType
	Name string
}

// Names flattens the chain into simple names in outer-to-inner order.
func (t *ClassType) Names() []string {
	var names []string
	for curr := t; curr != nil; curr = curr.Base {
		names = append(names, curr.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

func (t *ClassType) String() string {
	return strings.Join(t.Names(), ".")
}
