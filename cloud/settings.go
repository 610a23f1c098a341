package cloud

// Settings are the manager-level knobs the core recognizes. Unlike the
// teacher's Options bitmask (which is a flat flag set with many concerns),
// these two are orthogonal booleans, matching the two independent settings
// spec.md actually names.
type Settings struct {
	// LiberalFlagParsing controls where a command's flag component is
	// grafted during insertion: under the last LITERAL and under every
	// component after it (true), or only at the very end of the command
	// (false, the default).
	LiberalFlagParsing bool

	// EnforceIntermediaryPermissions, when true, makes an intermediary
	// executor's own permission override rather than merely widen the
	// permission aggregated so far at that node.
	EnforceIntermediaryPermissions bool
}
