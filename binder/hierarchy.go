package binder

import (
	"fmt"

	"github.com/viant/jbind/model"
	"github.com/viant/jbind/tree"
)

// BindHierarchy computes the header of one source class: finalized access
// flags, visibility, superclass symbol and interface symbols in declaration
// order.
func BindHierarchy(env Env, rec *SourceClass) (*SourceHeaderBoundClass, error) {
	decl := rec.Decl

	access := decl.Flags
	switch decl.Kind {
	case model.KindClass:
		access |= model.FlagSuper
	case model.KindInterface:
		access |= model.FlagAbstract | model.FlagInterface
	case model.KindEnum:
		access |= model.FlagEnum | model.FlagSuper
	case model.KindAnnotation:
		access |= model.FlagAbstract | model.FlagInterface | model.FlagAnnotation
	}

	// Types declared in interfaces and annotations are implicitly public.
	inInterface := enclosedByInterface(env, rec.Owner)
	var visibility model.Visibility
	if inInterface {
		visibility = model.VisibilityPublic
	} else {
		visibility = model.VisibilityFromFlags(access)
	}

	// Nested enums and types nested within interfaces and annotations are
	// implicitly static.
	if !access.Has(model.FlagStatic) && (decl.Kind == model.KindEnum || inInterface) {
		access |= model.FlagStatic
	}
	if decl.Kind == model.KindInterface {
		access |= model.FlagAbstract
	}

	var super ClassSymbol
	if decl.Extends != nil {
		resolved, err := ResolveClass(env, rec.Scope, rec.Owner, decl.Extends)
		if err != nil {
			return nil, err
		}
		super = resolved
	} else {
		switch decl.Kind {
		case model.KindEnum:
			super = EnumRoot
			if enumHasImpl(decl) {
				access |= model.FlagAbstract
			} else {
				access |= model.FlagFinal
			}
		default:
			super = Object
		}
	}

	var interfaces []ClassSymbol
	for _, ty := range decl.Implements {
		sym, err := ResolveClass(env, rec.Scope, rec.Owner, ty)
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, sym)
	}
	if decl.Kind == model.KindAnnotation && len(interfaces) == 0 {
		interfaces = append(interfaces, AnnotationRoot)
	}

	return &SourceHeaderBoundClass{
		rec:        rec,
		access:     access,
		visibility: visibility,
		super:      super,
		interfaces: interfaces,
	}, nil
}

// enclosedByInterface reports whether any class on the owner chain is an
// interface or annotation.
func enclosedByInterface(env Env, sym ClassSymbol) bool {
	for sym != NoSymbol {
		bound := env.Get(sym)
		if bound == nil {
			return false
		}
		switch bound.Kind() {
		case model.KindInterface, model.KindAnnotation:
			return true
		}
		sym = bound.Owner()
	}
	return false
}

// enumHasImpl reports whether any enum constant declares a class body. Such
// enums compile to abstract classes.
func enumHasImpl(decl *tree.TypeDecl) bool {
	for _, member := range decl.Members {
		if v, ok := member.(*tree.VarDecl); ok && v.Flags.Has(model.FlagEnumImpl) {
			return true
		}
	}
	return false
}

// ResolveClass resolves a left-recursive qualified type expression to a
// symbol: the expression is flattened to its simple names, the base is
// looked up through the lexical and compilation-unit scopes, and the
// remaining names are walked as member types.
func ResolveClass(env Env, scope Scope, owner ClassSymbol, ty *tree.ClassType) (ClassSymbol, error) {
	key := NewLookupKey(ty.Names())
	result := Lookup(env, scope, owner, key)
	if result == nil {
		return NoSymbol, fmt.Errorf("%s: %w", ty, ErrUnresolved)
	}
	sym := result.Sym
	for rest := result.Remaining; !rest.Empty(); rest = rest.Rest() {
		next := Resolve(env, sym, rest.First())
		if next == NoSymbol {
			return NoSymbol, fmt.Errorf("%s has no member type %s: %w",
				sym.Name(), rest.First(), ErrMissingMember)
		}
		sym = next
	}
	return sym, nil
}

// Lookup resolves the base of a qualified name. Member types visible from
// lexically enclosing classes shadow the compilation unit's scopes, so the
// owner chain is walked first and the scope consulted as a fallback.
func Lookup(env Env, parent Scope, sym ClassSymbol, key LookupKey) *LookupResult {
	for curr := sym; curr != NoSymbol; {
		if hit := Resolve(env, curr, key.First()); hit != NoSymbol {
			return &LookupResult{Sym: hit, Remaining: key.Rest()}
		}
		bound := env.Get(curr)
		if bound == nil {
			break
		}
		curr = bound.Owner()
	}
	return parent.Lookup(key)
}
