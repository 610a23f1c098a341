// Package argtypes provides the built-in ComponentParser implementations
// for ARGUMENT components: integers (with go-playground/validator range
// tags), free-form strings, and a greedy string that swallows the rest of
// the input. These are exactly the parsers the walker treats as opaque
// capabilities — nothing here is special-cased by the tree.
package argtypes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/future"
	"github.com/TehBrian/cloud/internal/input"
)

// Integer is a ComponentParser for a single whitespace-delimited integer
// token, optionally constrained by a go-playground/validator tag (e.g.
// "gte=0,lte=10" for the 0..10 range in a ranged-int command).
type Integer struct {
	// Tag is a validator.Var tag string; empty means no constraint beyond
	// being a valid integer.
	Tag string

	validate *validator.Validate
}

// NewInteger builds an Integer parser constrained by tag (may be empty).
func NewInteger(tag string) *Integer {
	return &Integer{Tag: tag, validate: validator.New()}
}

// Preprocess rejects empty input before attempting a real parse.
func (p *Integer) Preprocess(_ *cloud.ParseContext, in *input.Buffer) (bool, error) {
	return !in.IsEmpty(true), nil
}

// ParseFuture parses and validates the next token as an int.
func (p *Integer) ParseFuture(_ *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		token := in.PeekString()

		n, err := strconv.Atoi(token)
		if err != nil {
			return cloud.Failure(fmt.Errorf("%q is not an integer", token)), nil
		}

		if p.Tag != "" {
			if err := p.validate.Var(n, p.Tag); err != nil {
				return cloud.Failure(fmt.Errorf("%d is out of range: %w", n, err)), nil
			}
		}

		in.ReadString()

		return cloud.Success(n), nil
	})
}

// RequestedArgumentCount reports that Integer always consumes one token.
func (p *Integer) RequestedArgumentCount() int { return 1 }

// String is a ComponentParser for a single whitespace-delimited token,
// optionally constrained by a validator tag (e.g. "alphanum", "email").
type String struct {
	Tag string

	validate *validator.Validate
}

// NewString builds a String parser constrained by tag (may be empty).
func NewString(tag string) *String {
	return &String{Tag: tag, validate: validator.New()}
}

// Preprocess rejects empty input before attempting a real parse.
func (p *String) Preprocess(_ *cloud.ParseContext, in *input.Buffer) (bool, error) {
	return !in.IsEmpty(true), nil
}

// ParseFuture consumes and validates the next token.
func (p *String) ParseFuture(_ *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		token := in.PeekString()

		if p.Tag != "" {
			if err := p.validate.Var(token, p.Tag); err != nil {
				return cloud.Failure(fmt.Errorf("%q failed validation: %w", token, err)), nil
			}
		}

		in.ReadString()

		return cloud.Success(token), nil
	})
}

// RequestedArgumentCount reports that String always consumes one token.
func (p *String) RequestedArgumentCount() int { return 1 }

// Greedy is a ComponentParser that swallows the entire remaining input as a
// single string value, used for trailing "rest of the line" arguments (e.g.
// a chat message or reason string).
type Greedy struct{}

// Preprocess rejects empty input before attempting a real parse.
func (Greedy) Preprocess(_ *cloud.ParseContext, in *input.Buffer) (bool, error) {
	return !in.IsEmpty(true), nil
}

// ParseFuture consumes everything remaining in the buffer.
func (Greedy) ParseFuture(_ *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		rest := in.RemainingInput()
		in.SetCursor(in.Cursor() + len(rest))

		return cloud.Success(rest), nil
	})
}

// RequestedArgumentCount returns 1 even though ParseFuture consumes every
// remaining token, so the suggester's pre-consumption step (§4.9) reads no
// tokens ahead for a Greedy component.
func (Greedy) RequestedArgumentCount() int { return 1 }
