package binder

import "github.com/viant/jbind/model"

// HeaderBoundClass is the header view of one class, produced either by
// hierarchy-binding a source declaration or by reading a class file.
type HeaderBoundClass interface {
	Kind() model.TypeKind
	// Owner returns the enclosing class, or NoSymbol for a top-level class.
	Owner() ClassSymbol
	Access() model.Flag
	// Superclass returns NoSymbol only for the root Object class.
	Superclass() ClassSymbol
	// Interfaces lists implemented interfaces in declaration order.
	Interfaces() []ClassSymbol
	// Member resolves a direct member type by simple name, or NoSymbol.
	Member(name string) ClassSymbol
}

// Env maps symbols to bound classes. Get returns nil for symbols the
// environment does not know.
type Env interface {
	Get(sym ClassSymbol) HeaderBoundClass
}

// SimpleEnv is a fixed symbol-to-class mapping.
type SimpleEnv map[ClassSymbol]HeaderBoundClass

func (e SimpleEnv) Get(sym ClassSymbol) HeaderBoundClass {
	return e[sym]
}

// CompoundEnv consults environments in order; the first hit wins.
type CompoundEnv []Env

func (e CompoundEnv) Get(sym ClassSymbol) HeaderBoundClass {
	for _, env := range e {
		if bound := env.Get(sym); bound != nil {
			return bound
		}
	}
	return nil
}
