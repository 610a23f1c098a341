package cloud

import (
	"context"
	"fmt"

	"github.com/TehBrian/cloud/internal/input"
)

// suggest is the suggester's entry point (§4.8).
func (t *Tree) suggest(ctx context.Context, sctx *SuggestionContext, in *input.Buffer) []string {
	sctx.Processor = t.Processor

	t.suggestAt(ctx, sctx, in, t.root)

	return sctx.Suggestions()
}

// suggestAt implements §4.8 steps 1-5.
func (t *Tree) suggestAt(ctx context.Context, sctx *SuggestionContext, in *input.Buffer, node *Node) {
	if findMissingPermission(sctx.ParseContext, node) != nil {
		return
	}

	var literals, dynamic []*Node

	for _, c := range node.Children {
		if c.Component.Type == Literal {
			literals = append(literals, c)
		} else {
			dynamic = append(dynamic, c)
		}
	}

	if !in.IsEmpty(true) {
		startCursor := in.Cursor()
		before := in.RemainingInput()
		token := in.PeekString()

		for _, lit := range literals {
			if !lit.Component.matchesAlias(token) {
				continue
			}

			matched := in.ReadString()

			// A trailing separator after the matched token (even with
			// nothing past it) means the user has moved on to the next,
			// currently-empty token — descend so suggestions come from the
			// matched literal's own children.
			if len(before) > len(matched) {
				t.suggestAt(ctx, sctx, in, lit)

				return
			}

			in.SetCursor(startCursor)

			break
		}
	}

	peek := in.PeekString()

	if in.RemainingTokens() <= 1 {
		for _, lit := range literals {
			var candidates []string

			if lit.Component.SuggestionProvider != nil {
				candidates = lit.Component.SuggestionProvider.Suggestions(sctx, peek)
			} else {
				candidates = lit.Component.Aliases
			}

			sctx.Offer(peek, candidates...)
		}
	}

	for _, dyn := range dynamic {
		t.dynamicSuggest(ctx, sctx, in, dyn)
	}
}

// dynamicSuggest implements §4.9.
func (t *Tree) dynamicSuggest(ctx context.Context, sctx *SuggestionContext, in *input.Buffer, node *Node) {
	comp := node.Component
	parser := comp.Parser

	switch p := parser.(type) {
	case AggregateCommandParser:
		subs := p.SubComponents()
		if in.RemainingTokens() <= len(subs) {
			for i, sub := range subs {
				if i == len(subs)-1 {
					break
				}

				tok := in.ReadString()
				sctx.Store(sub.Name, tok)
			}
		}
	case CommandFlagParser:
		if flag, ok := p.ParseCurrentFlag(sctx, in); ok {
			sctx.setMeta(flagMetaKey, flag)
		} else {
			sctx.clearMeta(flagMetaKey)
		}
	default:
		if in.RemainingTokens() <= parser.RequestedArgumentCount() {
			for i := 0; i < parser.RequestedArgumentCount()-1; i++ {
				tok := in.ReadString()
				sctx.Store(fmt.Sprintf("%s_%d", comp.Name, i), tok)
			}
		}
	}

	if in.IsEmpty(true) {
		t.flagFollowUp(ctx, sctx, in, node)

		return
	}

	if in.RemainingTokens() == 1 {
		sctx.Offer(in.PeekString(), t.candidatesFor(sctx, node, in.PeekString())...)
		t.flagFollowUp(ctx, sctx, in, node)

		return
	}

	if node.IsLeaf() {
		if _, isAgg := parser.(AggregateCommandParser); isAgg {
			last := in.LastRemainingToken()
			sctx.Offer(last, t.candidatesFor(sctx, node, last)...)

			return
		}
	}

	startCursor := in.Cursor()

	okPre, errPre := parser.Preprocess(sctx.ParseContext, in)
	if errPre != nil || !okPre {
		if in.RemainingTokens() > 1 {
			return
		}
	} else {
		result, err := parser.ParseFuture(sctx.ParseContext, in).Await(ctx)
		if err == nil {
			if v, ok := result.Value(); ok {
				if !in.IsEmpty(true) {
					sctx.Store(comp.Name, v)
					t.suggestAt(ctx, sctx, in, node)

					return
				}

				in.SetCursor(startCursor)
				sctx.Offer(in.RemainingInput(), t.candidatesFor(sctx, node, in.RemainingInput())...)
				t.flagFollowUp(ctx, sctx, in, node)

				return
			}
		}

		in.SetCursor(startCursor)

		if in.RemainingTokens() > 1 {
			return
		}
	}

	sctx.Offer(in.PeekString(), t.candidatesFor(sctx, node, in.PeekString())...)
	t.flagFollowUp(ctx, sctx, in, node)
}

// candidatesFor asks node's suggestion provider for candidates, falling
// back to no suggestions when none is configured.
func (t *Tree) candidatesFor(sctx *SuggestionContext, node *Node, partial string) []string {
	if node.Component.SuggestionProvider == nil {
		return nil
	}

	return node.Component.SuggestionProvider.Suggestions(sctx, partial)
}

// flagFollowUp implements the §4.9 flag-following rule: once a FLAG
// component's own suggestions have been collected, if it has children, the
// current token does not look like a flag token, and no flag is presently
// being typed, the flag is considered consumed and we additionally offer
// its children's suggestions for the next argument.
func (t *Tree) flagFollowUp(ctx context.Context, sctx *SuggestionContext, in *input.Buffer, node *Node) {
	if node.Component.Type != Flag || len(node.Children) == 0 {
		return
	}

	if _, typing := sctx.getMeta(flagMetaKey); typing {
		return
	}

	if token := in.PeekString(); len(token) > 0 && token[0] == '-' {
		return
	}

	t.suggestAt(ctx, sctx, in, node)
}
