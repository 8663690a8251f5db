package model

// Visibility is the derived access level of a declaration.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPackage
	VisibilityProtected
	VisibilityPublic
)

// VisibilityFromFlags derives the visibility from an access flag set.
func VisibilityFromFlags(f Flag) Visibility {
	switch {
	case f.Has(FlagPublic):
		return VisibilityPublic
	case f.Has(FlagProtected):
		return VisibilityProtected
	case f.Has(FlagPrivate):
		return VisibilityPrivate
	default:
		return VisibilityPackage
	}
}

// Flag returns the access bit for the visibility, or 0 for package access.
func (v Visibility) Flag() Flag {
	switch v {
	case VisibilityPublic:
		return FlagPublic
	case VisibilityProtected:
		return FlagProtected
	case VisibilityPrivate:
		return FlagPrivate
	}
	return 0
}

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	}
	return "package"
}
