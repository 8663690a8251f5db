package binder

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/viant/jbind/tree"
)

// BindResult is the outcome of binding a batch of compilation units.
type BindResult struct {
	// Classes holds every successfully bound source class.
	Classes map[ClassSymbol]*SourceHeaderBoundClass
	// Symbols lists the bound classes in declaration order.
	Symbols []ClassSymbol
	// Env resolves source classes and falls back to the dependency
	// environment, giving downstream passes a uniform view.
	Env Env
}

// Bind hierarchy-binds every class declared in units. Dependencies are
// resolved through deps and depIndex; both may be nil when the units are
// self-contained. Binding continues past per-class failures and the
// collected errors are returned alongside the partial result.
func Bind(units []*tree.CompUnit, deps Env, depIndex TopLevelIndex) (*BindResult, error) {
	if deps == nil {
		deps = SimpleEnv(nil)
	}

	// Pass 1: assign symbols and owners, and index member types. Member
	// maps depend on lexical containment only, so they are complete before
	// any hierarchy binding runs.
	env := &lazyEnv{
		deps:    deps,
		records: map[ClassSymbol]*SourceClass{},
		bound:   map[ClassSymbol]*SourceHeaderBoundClass{},
		pending: map[ClassSymbol]bool{},
		errs:    map[ClassSymbol]error{},
	}
	source := sourceIndex{}
	var order []ClassSymbol
	unitSyms := make([][]ClassSymbol, len(units))
	for i, unit := range units {
		pkg := strings.Join(unit.Package, "/")
		for _, decl := range unit.Decls {
			name := decl.Name
			if pkg != "" {
				name = pkg + "/" + decl.Name
			}
			source[name] = struct{}{}
			unitSyms[i] = env.index(Intern(name), NoSymbol, decl, unitSyms[i])
		}
		order = append(order, unitSyms[i]...)
	}

	index := CompoundIndex{source}
	if depIndex != nil {
		index = append(index, depIndex)
	}

	// Pass 2: build per-unit compound scopes.
	for i, unit := range units {
		scope := unitScope(env, index, unit)
		for _, sym := range unitSyms[i] {
			env.records[sym].Scope = scope
		}
	}

	// Pass 3: bind every class through the lazy environment.
	result := &BindResult{
		Classes: map[ClassSymbol]*SourceHeaderBoundClass{},
		Env:     env,
	}
	var errs []error
	for _, sym := range order {
		bound, err := env.bind(sym)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", sym.Name(), err))
			continue
		}
		result.Classes[sym] = bound
		result.Symbols = append(result.Symbols, sym)
	}
	return result, errors.Join(errs...)
}

// sourceIndex is the top-level index over the source classes being bound.
type sourceIndex map[string]struct{}

func (ix sourceIndex) Contains(name string) bool {
	_, ok := ix[name]
	return ok
}

func unitScope(env Env, index TopLevelIndex, unit *tree.CompUnit) Scope {
	pkg := ""
	if len(unit.Package) > 0 {
		pkg = strings.Join(unit.Package, "/") + "/"
	}
	var wildcards []string
	for _, imp := range unit.Imports {
		if imp.Wildcard {
			wildcards = append(wildcards, strings.Join(imp.Segments, "/")+"/")
		}
	}
	return CompoundScope{
		newSingleTypeImportScope(env, index, unit.Imports),
		packageScope{pkg: pkg, index: index},
		wildcardImportScope{packages: wildcards, index: index},
		topLevelScope{index: index},
	}
}

// lazyEnv hierarchy-binds source classes on first access and memoizes the
// result, falling back to the dependency environment for everything else.
// Re-entering a class that is still being bound reports a hierarchy cycle.
type lazyEnv struct {
	deps Env

	mu      sync.Mutex
	records map[ClassSymbol]*SourceClass
	bound   map[ClassSymbol]*SourceHeaderBoundClass
	pending map[ClassSymbol]bool
	errs    map[ClassSymbol]error
}

// index records decl and, recursively, its member types. Nested symbols use
// the binary Outer$Inner form.
func (e *lazyEnv) index(sym, owner ClassSymbol, decl *tree.TypeDecl, order []ClassSymbol) []ClassSymbol {
	rec := &SourceClass{
		Sym:     sym,
		Owner:   owner,
		Decl:    decl,
		Members: map[string]ClassSymbol{},
	}
	e.records[sym] = rec
	order = append(order, sym)
	for _, member := range decl.Members {
		nested, ok := member.(*tree.TypeDecl)
		if !ok {
			continue
		}
		nestedSym := Intern(sym.Name() + "$" + nested.Name)
		rec.Members[nested.Name] = nestedSym
		order = e.index(nestedSym, sym, nested, order)
	}
	return order
}

func (e *lazyEnv) Get(sym ClassSymbol) HeaderBoundClass {
	e.mu.Lock()
	_, ok := e.records[sym]
	e.mu.Unlock()
	if !ok {
		return e.deps.Get(sym)
	}
	bound, err := e.bind(sym)
	if err != nil || bound == nil {
		return nil
	}
	return bound
}

func (e *lazyEnv) bind(sym ClassSymbol) (*SourceHeaderBoundClass, error) {
	e.mu.Lock()
	rec, ok := e.records[sym]
	if !ok {
		e.mu.Unlock()
		return nil, nil
	}
	if bound, ok := e.bound[sym]; ok {
		e.mu.Unlock()
		return bound, nil
	}
	if err, ok := e.errs[sym]; ok {
		e.mu.Unlock()
		return nil, err
	}
	if e.pending[sym] {
		e.errs[sym] = ErrCyclic
		e.mu.Unlock()
		log.WithFields(log.Fields{"class": sym.Name()}).Warn("hierarchy cycle detected")
		return nil, ErrCyclic
	}
	e.pending[sym] = true
	e.mu.Unlock()

	bound, err := BindHierarchy(e, rec)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, sym)
	if err != nil {
		if prior, ok := e.errs[sym]; ok {
			return nil, prior
		}
		e.errs[sym] = err
		return nil, err
	}
	e.bound[sym] = bound
	return bound, nil
}
