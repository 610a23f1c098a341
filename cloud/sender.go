package cloud

// Sender is the entity a tokenized command line is resolved on behalf of.
// The tree never interprets the value itself; it only hands it to a
// PermissionAuthority and compares its Kind against a Command's required
// sender kind.
type Sender interface {
	// Kind identifies the sender's concrete kind (console, player, remote
	// peer, ...). Commands may restrict themselves to a specific kind.
	Kind() string
}

// Permission is an opaque capability token checked by a PermissionAuthority.
// The tree only ever combines permissions with AnyOf; it never inspects
// their contents.
type Permission interface {
	// String renders the permission for inclusion in error messages.
	String() string
}

// AnyOf returns a disjunctive permission: a sender passes it if they pass
// either constituent. When one side is nil the other is returned unchanged,
// matching the aggregation rule in §4.4 (no entry yet on a node means "no
// constraint contributed so far").
func AnyOf(a, b Permission) Permission {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return anyOfPermission{a, b}
	}
}

type anyOfPermission struct {
	a, b Permission
}

func (p anyOfPermission) String() string {
	return p.a.String() + " or " + p.b.String()
}

// Constituents flattens an AnyOf tree into its leaf permissions, in the
// order they were combined. Non-composite permissions return themselves.
func Constituents(p Permission) []Permission {
	if p == nil {
		return nil
	}

	composite, ok := p.(anyOfPermission)
	if !ok {
		return []Permission{p}
	}

	return append(Constituents(composite.a), Constituents(composite.b)...)
}
