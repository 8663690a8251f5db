package classpath

import (
	"github.com/viant/jbind/binder"
	"github.com/viant/jbind/bytecode"
	"github.com/viant/jbind/model"
)

// Class is a header-bound class materialized from a class file. It is
// immutable once built.
type Class struct {
	file       *bytecode.ClassFile
	kind       model.TypeKind
	owner      binder.ClassSymbol
	super      binder.ClassSymbol
	interfaces []binder.ClassSymbol
	members    map[string]binder.ClassSymbol
}

func newClass(file *bytecode.ClassFile) *Class {
	class := &Class{
		file:    file,
		kind:    kindOf(file.AccessFlags),
		owner:   binder.NoSymbol,
		super:   binder.NoSymbol,
		members: map[string]binder.ClassSymbol{},
	}
	if file.SuperClass != "" {
		class.super = binder.Intern(file.SuperClass)
	}
	for _, name := range file.Interfaces {
		class.interfaces = append(class.interfaces, binder.Intern(name))
	}
	for _, inner := range file.InnerClasses {
		if inner.InnerClass == file.Name && inner.OuterClass != "" {
			class.owner = binder.Intern(inner.OuterClass)
		}
		if inner.OuterClass == file.Name && inner.InnerName != "" {
			class.members[inner.InnerName] = binder.Intern(inner.InnerClass)
		}
	}
	return class
}

func kindOf(access model.Flag) model.TypeKind {
	switch {
	case access.Has(model.FlagAnnotation):
		return model.KindAnnotation
	case access.Has(model.FlagInterface):
		return model.KindInterface
	case access.Has(model.FlagEnum):
		return model.KindEnum
	default:
		return model.KindClass
	}
}

func (c *Class) Kind() model.TypeKind { return c.kind }

func (c *Class) Owner() binder.ClassSymbol { return c.owner }

func (c *Class) Access() model.Flag { return c.file.AccessFlags }

func (c *Class) Superclass() binder.ClassSymbol { return c.super }

func (c *Class) Interfaces() []binder.ClassSymbol { return c.interfaces }

func (c *Class) Member(name string) binder.ClassSymbol {
	if sym, ok := c.members[name]; ok {
		return sym
	}
	return binder.NoSymbol
}

// File returns the parsed class file backing this class.
func (c *Class) File() *bytecode.ClassFile { return c.file }
