package binder

import (
	"github.com/viant/jbind/model"
	"github.com/viant/jbind/tree"
)

// SourceClass is the pre-binding record of one source declaration: its
// symbol, owner, member-type map and compilation-unit scope. Member maps
// depend on lexical containment only, so every record is complete before
// any hierarchy binding runs.
type SourceClass struct {
	Sym   ClassSymbol
	Owner ClassSymbol
	Decl  *tree.TypeDecl
	Scope Scope
	// Members maps simple names of directly declared member types.
	Members map[string]ClassSymbol
}

// SourceHeaderBoundClass is the product of hierarchy-binding a SourceClass.
// It is immutable once produced.
type SourceHeaderBoundClass struct {
	rec        *SourceClass
	access     model.Flag
	visibility model.Visibility
	super      ClassSymbol
	interfaces []ClassSymbol
}

func (c *SourceHeaderBoundClass) Kind() model.TypeKind { return c.rec.Decl.Kind }

func (c *SourceHeaderBoundClass) Owner() ClassSymbol { return c.rec.Owner }

// Access returns the finalized access flags, including the kind-implied and
// nesting-implied bits.
func (c *SourceHeaderBoundClass) Access() model.Flag { return c.access }

// Visibility returns the finalized visibility. Types nested in interfaces
// or annotations are public regardless of declared modifiers.
func (c *SourceHeaderBoundClass) Visibility() model.Visibility { return c.visibility }

func (c *SourceHeaderBoundClass) Superclass() ClassSymbol { return c.super }

func (c *SourceHeaderBoundClass) Interfaces() []ClassSymbol { return c.interfaces }

func (c *SourceHeaderBoundClass) Member(name string) ClassSymbol {
	if sym, ok := c.rec.Members[name]; ok {
		return sym
	}
	return NoSymbol
}

// Decl returns the underlying declaration.
func (c *SourceHeaderBoundClass) Decl() *tree.TypeDecl { return c.rec.Decl }
