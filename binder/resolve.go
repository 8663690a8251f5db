package binder

// Resolve finds a member type of sym by simple name. It searches sym's
// direct member types, then recursively its superclass, then each interface
// in declaration order; the first match wins. It returns NoSymbol when
// nothing matches or sym is unknown to the environment.
func Resolve(env Env, sym ClassSymbol, name string) ClassSymbol {
	bound := env.Get(sym)
	if bound == nil {
		return NoSymbol
	}
	if member := bound.Member(name); member != NoSymbol {
		return member
	}
	if super := bound.Superclass(); super != NoSymbol {
		if member := Resolve(env, super, name); member != NoSymbol {
			return member
		}
	}
	for _, iface := range bound.Interfaces() {
		if member := Resolve(env, iface, name); member != NoSymbol {
			return member
		}
	}
	return NoSymbol
}
