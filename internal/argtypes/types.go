package argtypes

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/future"
	"github.com/TehBrian/cloud/internal/input"
)

// Counter is a ComponentParser for an incrementing count argument: each
// occurrence bumps a running total stored under the component's name,
// accepting either a bare token (increment by one) or an explicit integer.
type Counter struct{}

// Preprocess always allows an attempt; an absent token increments by one.
func (Counter) Preprocess(_ *cloud.ParseContext, _ *input.Buffer) (bool, error) {
	return true, nil
}

// ParseFuture reads the next token (if any) and resolves the new count,
// adding to whatever was previously stored under the component's name.
func (Counter) ParseFuture(ctx *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		prev := 0
		if v, ok := ctx.Get(ctx.Current().Name); ok {
			if n, ok := v.(int); ok {
				prev = n
			}
		}

		token := in.PeekString()
		if token == "" {
			return cloud.Success(prev + 1), nil
		}

		n, err := strconv.Atoi(token)
		if err != nil {
			return cloud.Success(prev + 1), nil
		}

		in.ReadString()

		return cloud.Success(prev + n), nil
	})
}

// RequestedArgumentCount reports that Counter consumes at most one token.
func (Counter) RequestedArgumentCount() int { return 1 }

// HexBytes is a ComponentParser for a hexadecimal-encoded byte string
// argument.
type HexBytes struct{}

// Preprocess rejects empty input before attempting a real parse.
func (HexBytes) Preprocess(_ *cloud.ParseContext, in *input.Buffer) (bool, error) {
	return !in.IsEmpty(true), nil
}

// ParseFuture decodes the next token as hex-encoded bytes.
func (HexBytes) ParseFuture(_ *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		token := in.PeekString()

		b, err := hex.DecodeString(token)
		if err != nil {
			return cloud.Failure(fmt.Errorf("%q is not valid hex: %w", token, err)), nil
		}

		in.ReadString()

		return cloud.Success(b), nil
	})
}

// RequestedArgumentCount reports that HexBytes always consumes one token.
func (HexBytes) RequestedArgumentCount() int { return 1 }
