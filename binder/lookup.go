package binder

import (
	"sync"

	"github.com/viant/jbind/tree"
)

// LookupKey is a qualified name as an ordered, non-empty sequence of simple
// names with a movable cursor.
type LookupKey struct {
	names []string
}

// NewLookupKey wraps names in a key. The caller guarantees names is
// non-empty.
func NewLookupKey(names []string) LookupKey {
	return LookupKey{names: names}
}

// First returns the name under the cursor.
func (k LookupKey) First() string { return k.names[0] }

// Rest returns the key advanced past the first name. It may be empty.
func (k LookupKey) Rest() LookupKey { return LookupKey{names: k.names[1:]} }

// Empty reports whether the cursor has consumed every name.
func (k LookupKey) Empty() bool { return len(k.names) == 0 }

// LookupResult pairs a resolved base symbol with the names still to be
// resolved as member-type accesses.
type LookupResult struct {
	Sym       ClassSymbol
	Remaining LookupKey
}

// Scope answers qualified-name lookups. Lookup returns nil when the key's
// first name is not visible in the scope.
type Scope interface {
	Lookup(key LookupKey) *LookupResult
}

// CompoundScope stacks scopes; earlier scopes shadow later ones.
type CompoundScope []Scope

func (s CompoundScope) Lookup(key LookupKey) *LookupResult {
	for _, scope := range s {
		if result := scope.Lookup(key); result != nil {
			return result
		}
	}
	return nil
}

// TopLevelIndex reports whether a binary name denotes a known class.
type TopLevelIndex interface {
	Contains(name string) bool
}

// CompoundIndex consults indexes in order.
type CompoundIndex []TopLevelIndex

func (ix CompoundIndex) Contains(name string) bool {
	for _, index := range ix {
		if index.Contains(name) {
			return true
		}
	}
	return false
}

// topLevelScope resolves fully qualified names: it consumes leading package
// segments until the accumulated prefix names a known class. A class shadows
// an identically named subpackage.
type topLevelScope struct {
	index TopLevelIndex
}

func (s topLevelScope) Lookup(key LookupKey) *LookupResult {
	prefix := ""
	for {
		name := prefix + key.First()
		if s.index.Contains(name) {
			return &LookupResult{Sym: Intern(name), Remaining: key.Rest()}
		}
		rest := key.Rest()
		if rest.Empty() {
			return nil
		}
		prefix = name + "/"
		key = rest
	}
}

// packageScope resolves simple names against the compilation unit's own
// package.
type packageScope struct {
	// pkg is the slash-separated package prefix with a trailing slash, or
	// empty for the default package.
	pkg   string
	index TopLevelIndex
}

func (s packageScope) Lookup(key LookupKey) *LookupResult {
	name := s.pkg + key.First()
	if !s.index.Contains(name) {
		return nil
	}
	return &LookupResult{Sym: Intern(name), Remaining: key.Rest()}
}

// wildcardImportScope consults on-demand imports in declaration order.
type wildcardImportScope struct {
	packages []string
	index    TopLevelIndex
}

func (s wildcardImportScope) Lookup(key LookupKey) *LookupResult {
	for _, pkg := range s.packages {
		name := pkg + key.First()
		if s.index.Contains(name) {
			return &LookupResult{Sym: Intern(name), Remaining: key.Rest()}
		}
	}
	return nil
}

// singleTypeImportScope resolves simple names introduced by explicit
// imports. Each import is resolved on first use and memoized, so imports of
// member types may observe classes bound after scope construction.
type singleTypeImportScope struct {
	env   Env
	index TopLevelIndex

	mu       sync.Mutex
	imports  map[string][]string
	resolved map[string]ClassSymbol
}

func newSingleTypeImportScope(env Env, index TopLevelIndex, imports []*tree.Import) *singleTypeImportScope {
	scope := &singleTypeImportScope{
		env:      env,
		index:    index,
		imports:  map[string][]string{},
		resolved: map[string]ClassSymbol{},
	}
	for _, imp := range imports {
		if imp.Wildcard || len(imp.Segments) == 0 {
			continue
		}
		simple := imp.Segments[len(imp.Segments)-1]
		if _, ok := scope.imports[simple]; ok {
			continue
		}
		scope.imports[simple] = imp.Segments
	}
	return scope
}

func (s *singleTypeImportScope) Lookup(key LookupKey) *LookupResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	segments, ok := s.imports[key.First()]
	if !ok {
		return nil
	}
	sym, ok := s.resolved[key.First()]
	if !ok {
		sym = s.resolve(segments)
		s.resolved[key.First()] = sym
	}
	if sym == NoSymbol {
		return nil
	}
	return &LookupResult{Sym: sym, Remaining: key.Rest()}
}

// resolve walks an import's qualified name: package segments through the
// top-level index, any remaining segments as member types.
func (s *singleTypeImportScope) resolve(segments []string) ClassSymbol {
	base := topLevelScope{index: s.index}.Lookup(NewLookupKey(segments))
	if base == nil {
		return NoSymbol
	}
	sym := base.Sym
	for rest := base.Remaining; !rest.Empty(); rest = rest.Rest() {
		if sym = Resolve(s.env, sym, rest.First()); sym == NoSymbol {
			return NoSymbol
		}
	}
	return sym
}
