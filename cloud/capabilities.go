package cloud

import (
	"github.com/TehBrian/cloud/internal/future"
	"github.com/TehBrian/cloud/internal/input"
)

// ParseFuture is the asynchronous result of a single ComponentParser
// invocation. The walker is the only thing that awaits it.
type ParseFuture = future.Future[ParseResult]

// ParseResult is the sum type a ComponentParser resolves its future to:
// either Success(value) or Failure(err). The consumed input span is not
// part of this type — the walker derives it itself from the cursor delta
// around the call, per §4.5.
type ParseResult struct {
	ok    bool
	value any
	err   error
}

// Success builds a successful ParseResult carrying v.
func Success(v any) ParseResult {
	return ParseResult{ok: true, value: v}
}

// Failure builds a failed ParseResult wrapping err.
func Failure(err error) ParseResult {
	return ParseResult{err: err}
}

// Value returns the parsed value and whether the result was a success.
func (r ParseResult) Value() (any, bool) {
	return r.value, r.ok
}

// Err returns the failure reason, or nil on success.
func (r ParseResult) Err() error {
	return r.err
}

// ComponentParser is the capability every ARGUMENT and FLAG component
// exposes. The tree only ever calls through this interface and special-cases
// no concrete parser (the built-in ones live in internal/argtypes).
type ComponentParser interface {
	// ParseFuture asynchronously parses a prefix of in into a value. On
	// success the cursor has been advanced past the consumed input; on
	// failure the parser either leaves the cursor untouched or relies on
	// the caller rewinding from a saved cursor value.
	ParseFuture(ctx *ParseContext, in *input.Buffer) *ParseFuture

	// Preprocess is an optional cheap gating check run before ParseFuture.
	// Returning (false, nil) or a non-nil error skips the parse attempt
	// entirely. A parser with no useful gating check should always return
	// (true, nil).
	Preprocess(ctx *ParseContext, in *input.Buffer) (bool, error)

	// RequestedArgumentCount is how many whitespace tokens this parser
	// will consume; 1 for ordinary arguments, more for aggregates.
	RequestedArgumentCount() int
}

// AggregateCommandParser is a ComponentParser that decomposes into an
// ordered list of named sub-components, each separately parsed. The walker
// stores each sub-parse under its own sub-component name.
type AggregateCommandParser interface {
	ComponentParser

	// SubComponents returns, in consumption order, the sub-components this
	// aggregate is made of.
	SubComponents() []*CommandComponent
}

// CommandFlagParser is a ComponentParser recognized specially for
// suggestion purposes: it can identify which flag is currently mid-typing.
type CommandFlagParser interface {
	ComponentParser

	// ParseCurrentFlag identifies the flag token currently being completed,
	// if any.
	ParseCurrentFlag(ctx *SuggestionContext, in *input.Buffer) (flag string, ok bool)
}

// PermissionAuthority is the injected yes/no evaluator for a
// (Sender, Permission) pair.
type PermissionAuthority interface {
	Has(sender Sender, perm Permission) bool
}

// RegistrationHandler receives commands once InsertCommand's verifier has
// accepted them: one call per successful InsertCommand, carrying only the
// command just inserted. Commands inserted earlier are not registered again,
// and a failed insert makes no call.
type RegistrationHandler interface {
	Register(cmd *Command)
}

// SyntaxFormatter renders a human-readable command path for error messages,
// given the chain of components from the root to the node in question.
type SyntaxFormatter func(chain []*CommandComponent) string

// SuggestionProcessor post-processes a tree's raw suggestion candidates
// (deduplicate, sort, or otherwise reshape them) before they reach the
// caller.
type SuggestionProcessor interface {
	Process(ctx *SuggestionContext, raw []string) []string
}
