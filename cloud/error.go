package cloud

import "fmt"

// ErrorKind is the type of a TreeError. ORDER IN WHICH THE CONSTANTS APPEAR
// MATTERS: it is used to index the string table in ErrorKind.String.
type ErrorKind uint8

const (
	// ErrNoSuchCommand: the root walker found no child matching the first
	// token.
	ErrNoSuchCommand ErrorKind = iota
	// ErrInvalidSyntax: a non-root walker exhausted its children with input
	// remaining, or a leaf was reached with input remaining, or a required
	// child was missing.
	ErrInvalidSyntax
	// ErrNoPermission: a permission check failed at a node on the accepted
	// path.
	ErrNoPermission
	// ErrInvalidCommandSender: the resolved command requires a sender kind
	// the caller is not.
	ErrInvalidCommandSender
	// ErrArgumentParse: a committed (unambiguous-child) parser reported a
	// real failure.
	ErrArgumentParse
	// ErrAmbiguousNode: an insert would create two variable siblings, or
	// two LITERALs with overlapping aliases.
	ErrAmbiguousNode
	// ErrNoCommandInLeaf: a leaf after insertion has no owning command.
	ErrNoCommandInLeaf
	// ErrDuplicateCommand: the terminal node already owns a command.
	ErrDuplicateCommand
	// ErrTopLevelVariable: a root child would be non-LITERAL.
	ErrTopLevelVariable
)

func (k ErrorKind) String() string {
	names := [...]string{
		"no such command",
		"invalid syntax",
		"no permission",
		"invalid command sender",
		"argument parse exception",
		"ambiguous node",
		"no command in leaf",
		"duplicate command",
		"top level variable",
	}

	if int(k) >= len(names) {
		return "unknown tree error"
	}

	return names[k]
}

// TreeError is the error type every core operation returns. Chain is the
// formatted command path at the point of failure, built through the
// injected SyntaxFormatter where one is available.
type TreeError struct {
	Kind    ErrorKind
	Message string

	// Chain is the formatted component path leading to the failure, when
	// applicable.
	Chain string

	// MissingPermission is set only for ErrNoPermission.
	MissingPermission Permission

	// Token is the offending token, set for ErrNoSuchCommand.
	Token string

	// Closest is the nearest known literal alias to Token, set for
	// ErrNoSuchCommand when at least one alias exists at the root.
	Closest string

	// Wrapped is the underlying parser error, set for ErrArgumentParse.
	Wrapped error
}

func (e *TreeError) Error() string {
	switch e.Kind {
	case ErrNoSuchCommand:
		if e.Closest != "" {
			return fmt.Sprintf("no such command: %q (did you mean %q?)", e.Token, e.Closest)
		}

		return fmt.Sprintf("no such command: %q", e.Token)
	case ErrNoPermission:
		return fmt.Sprintf("no permission: missing %s at %s", e.MissingPermission, e.Chain)
	case ErrArgumentParse:
		return fmt.Sprintf("invalid argument at %s: %s", e.Chain, e.Wrapped)
	default:
		if e.Message != "" {
			return e.Message
		}

		return e.Kind.String()
	}
}

// Unwrap exposes the wrapped parser error, if any, to errors.Is/errors.As.
func (e *TreeError) Unwrap() error {
	return e.Wrapped
}

func newErr(kind ErrorKind, format string, args ...any) *TreeError {
	return &TreeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
