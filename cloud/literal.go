package cloud

import (
	"context"

	"github.com/TehBrian/cloud/internal/future"
	"github.com/TehBrian/cloud/internal/input"
)

// literalParser is the ComponentParser every LITERAL component carries: it
// matches the next token against the component's aliases and consumes it on
// a hit. The full sibling scan (§4.6 step 4) calls through this like any
// other component's parser — the walker has no special case for LITERAL
// matching, only the ordering guarantee that LITERALs are tried first.
type literalParser struct {
	component *CommandComponent
}

func (p *literalParser) Preprocess(_ *ParseContext, in *input.Buffer) (bool, error) {
	return !in.IsEmpty(true), nil
}

func (p *literalParser) ParseFuture(_ *ParseContext, in *input.Buffer) *ParseFuture {
	return future.Go(context.Background(), func(context.Context) (ParseResult, error) {
		token := in.PeekString()
		if !p.component.matchesAlias(token) {
			return Failure(newErr(ErrInvalidSyntax, "%q does not match %v", token, p.component.Aliases)), nil
		}

		in.ReadString()

		return Success(token), nil
	})
}

func (p *literalParser) RequestedArgumentCount() int { return 1 }

// NewLiteral builds a LITERAL CommandComponent matching any of aliases. The
// first alias is canonical; name is the stable identifier used to store its
// parsed value (the matched token itself) in a ParseContext.
func NewLiteral(name string, aliases ...string) *CommandComponent {
	c := &CommandComponent{Name: name, Type: Literal, Aliases: aliases}
	c.Parser = &literalParser{component: c}

	return c
}
