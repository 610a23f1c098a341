// Package flagparse implements a FLAG component's ComponentParser contract
// on top of spf13/pflag: it tokenizes the remainder of a command's input as
// `-x value` / `--long value` pairs and stores each recognized flag's value
// under "{name}.{flag}" in the ParseContext.
package flagparse

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/future"
	"github.com/TehBrian/cloud/internal/input"
)

// Group is a FLAG component's parser: a named set of pflag definitions
// applied against whatever whitespace-delimited tokens remain in the input
// buffer once every preceding component has consumed its share.
type Group struct {
	// Name identifies this flag group for value-storage namespacing.
	Name string

	// Define installs the flags this group recognizes onto a fresh
	// *pflag.FlagSet. Called once per parse attempt, so the returned set
	// carries no state across calls.
	Define func(fs *pflag.FlagSet)
}

// NewGroup builds a flag group parser.
func NewGroup(name string, define func(fs *pflag.FlagSet)) *Group {
	return &Group{Name: name, Define: define}
}

// Preprocess always allows an attempt — an empty flag group (no tokens
// left) simply parses zero flags.
func (g *Group) Preprocess(_ *cloud.ParseContext, _ *input.Buffer) (bool, error) {
	return true, nil
}

// ParseFuture tokenizes the remaining input with pflag and stores every
// recognized flag's value in ctx under "{g.Name}.{flag}".
func (g *Group) ParseFuture(ctx *cloud.ParseContext, in *input.Buffer) *cloud.ParseFuture {
	return future.Go(context.Background(), func(context.Context) (cloud.ParseResult, error) {
		fs := pflag.NewFlagSet(g.Name, pflag.ContinueOnError)
		fs.SetOutput(nil)

		if g.Define != nil {
			g.Define(fs)
		}

		tokens := strings.Fields(in.RemainingInput())

		if err := fs.Parse(tokens); err != nil {
			return cloud.Failure(fmt.Errorf("flag parse error: %w", err)), nil
		}

		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				ctx.Store(g.Name+"."+f.Name, f.Value.String())
			}
		})

		consumed := len(tokens) - len(fs.Args())
		advanceTokens(in, consumed)

		return cloud.Success(fs), nil
	})
}

// RequestedArgumentCount returns 1; the number of tokens ParseFuture
// actually consumes is however many pflag recognizes as flags and values.
func (g *Group) RequestedArgumentCount() int { return 1 }

// ParseCurrentFlag identifies the flag token currently being typed (for
// suggestion purposes), satisfying cloud.CommandFlagParser. It reports the
// last token when it looks like a flag name still being completed.
func (g *Group) ParseCurrentFlag(_ *cloud.SuggestionContext, in *input.Buffer) (string, bool) {
	last := in.LastRemainingToken()
	if strings.HasPrefix(last, "-") {
		return last, true
	}

	return "", false
}

// advanceTokens moves the buffer's cursor past the first n whitespace
// tokens of whatever remains, mirroring pflag's own consumption.
func advanceTokens(in *input.Buffer, n int) {
	for i := 0; i < n; i++ {
		if in.IsEmpty(true) {
			return
		}

		in.ReadString()
	}
}
