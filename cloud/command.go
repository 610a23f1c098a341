package cloud

// ComponentType is the tag distinguishing the three kinds of command
// component. Dispatch on it is a switch, never a type hierarchy.
type ComponentType uint8

const (
	// Literal matches only a fixed set of alias strings.
	Literal ComponentType = iota
	// Argument is a typed, positional value.
	Argument
	// Flag parses `-x value` / `--long value` style modifiers.
	Flag
)

func (t ComponentType) String() string {
	switch t {
	case Literal:
		return "literal"
	case Argument:
		return "argument"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// DefaultKind distinguishes the two ways an optional component can supply a
// value when no input is present for it.
type DefaultKind uint8

const (
	// NoDefault means the component has no default value.
	NoDefault DefaultKind = iota
	// DefaultConstant supplies a pre-computed value directly, bypassing the
	// component's parser entirely.
	DefaultConstant
	// DefaultParsed re-feeds a literal text through the component's parser,
	// so the value is produced exactly as if the user had typed it.
	DefaultParsed
)

// DefaultValue is the tagged variant describing how an optional component's
// value is produced when no input was given for it.
type DefaultValue struct {
	Kind     DefaultKind
	Constant any    // valid when Kind == DefaultConstant
	Text     string // valid when Kind == DefaultParsed
}

// Constant builds a DefaultValue that supplies v directly.
func Constant(v any) DefaultValue {
	return DefaultValue{Kind: DefaultConstant, Constant: v}
}

// Parsed builds a DefaultValue that re-feeds text through the owning
// component's parser.
func Parsed(text string) DefaultValue {
	return DefaultValue{Kind: DefaultParsed, Text: text}
}

// CommandComponent is one segment of a command path. It is immutable once
// built, except for OwningCommand and the LITERAL alias set, which the tree
// mutates during insertion (merging aliases, stamping the terminal owner).
type CommandComponent struct {
	// Name is the stable identifier used to store parsed values in a
	// ParseContext/SuggestionContext.
	Name string

	// Type is one of Literal, Argument, Flag.
	Type ComponentType

	// Aliases is non-empty for LITERAL components; the first alias is
	// canonical. Root-level alias lookup (NamedNode) is case-insensitive;
	// every other alias comparison is case-sensitive.
	Aliases []string

	// Parser is this component's matching capability. Required for every
	// component, LITERALs included: the walker's sibling scan calls it on
	// every child. NewLiteral installs the alias-matching parser a LITERAL
	// needs.
	Parser ComponentParser

	// SuggestionProvider produces candidates for a partial token. May be
	// nil, in which case the component contributes no suggestions of its
	// own (LITERAL components fall back to their aliases; see suggest.go).
	SuggestionProvider SuggestionProvider

	// Required is false for components that may be elided at the tail of a
	// command. The command builder (out of scope here) guarantees that no
	// required component follows an optional one within a single command.
	Required bool

	// Default is consulted when no input is present for this component; the
	// walker checks it before it looks at Required.
	Default DefaultValue

	// OwningCommand is set exactly once, when this component becomes the
	// terminal of an inserted command (insert.go). At most one command
	// owns a given node's component.
	OwningCommand *Command
}

// HasDefault reports whether Default carries a usable value.
func (c *CommandComponent) HasDefault() bool {
	return c.Default.Kind != NoDefault
}

// matchesAlias reports whether token is one of this component's aliases.
// Literal aliases are compared case-sensitively, per spec.
func (c *CommandComponent) matchesAlias(token string) bool {
	for _, a := range c.Aliases {
		if a == token {
			return true
		}
	}

	return false
}

// equalFor implements the §4.3 "find existing child" equality rule: LITERAL
// components are equal if they share any alias; ARGUMENT/FLAG components are
// equal by name and type.
func (c *CommandComponent) equalFor(other *CommandComponent) bool {
	if c.Type != other.Type {
		return false
	}

	if c.Type == Literal {
		for _, a := range c.Aliases {
			if other.matchesAlias(a) {
				return true
			}
		}

		return false
	}

	return c.Name == other.Name
}

// SuggestionProvider produces candidate completions for a partial token.
type SuggestionProvider interface {
	Suggestions(ctx *SuggestionContext, partial string) []string
}

// SenderRequirement restricts which sender kinds may execute a command. A
// nil requirement (or one whose Kinds is empty) accepts every sender.
type SenderRequirement struct {
	Kinds []string
}

// Accepts reports whether a sender's kind satisfies the requirement.
func (r SenderRequirement) Accepts(s Sender) bool {
	if len(r.Kinds) == 0 || s == nil {
		return true
	}

	for _, k := range r.Kinds {
		if k == s.Kind() {
			return true
		}
	}

	return false
}

// Handler is invoked once a Command has been fully resolved by Parse.
type Handler func(ctx *ParseContext) error

// Command is the external value InsertCommand ingests. The tree treats it as
// opaque except for the fields below: the ordered non-flag components, the
// optional single flag component, the sender restriction, the permission,
// and the handler.
type Command struct {
	// Components is the ordered sequence of non-flag components making up
	// this command's path, root to leaf.
	Components []*CommandComponent

	// FlagGroup is this command's single optional flag component, grafted
	// according to the tree's LiberalFlagParsing setting (§4.3 step 1).
	FlagGroup *CommandComponent

	// Sender restricts which sender kinds may execute this command.
	Sender SenderRequirement

	// Permission this command requires of a sender.
	Permission Permission

	// Handler runs once the command has been fully resolved.
	Handler Handler

	// Name is a human label used only for diagnostics (error messages,
	// registration); it plays no role in matching.
	Name string
}
