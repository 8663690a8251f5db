package binder

import "errors"

var (
	// ErrUnresolved reports a type name that no scope could resolve.
	ErrUnresolved = errors.New("unresolved type")
	// ErrMissingMember reports a qualified-name step that is not a member
	// type of the preceding symbol.
	ErrMissingMember = errors.New("missing member type")
	// ErrCyclic reports a class whose hierarchy depends on itself.
	ErrCyclic = errors.New("cyclic hierarchy")
)
