package cloud

import (
	"context"

	"github.com/TehBrian/cloud/internal/input"
)

// parse is the walker's entry point (§4.6). A tree with no root children
// fails NoSuchCommand on whatever token the caller supplied (or the empty
// string if none remains).
func (t *Tree) parse(ctx context.Context, pctx *ParseContext, in *input.Buffer) (*Command, error) {
	roots := t.RootNodes()
	if len(roots) == 0 {
		tok := in.PeekString()

		return nil, &TreeError{Kind: ErrNoSuchCommand, Token: tok, Closest: t.closestRootAlias(tok)}
	}

	cmd, err := t.parseAt(ctx, nil, pctx, in, t.root)
	if err != nil {
		return nil, err
	}

	if !cmd.Sender.Accepts(pctx.Sender) {
		return nil, &TreeError{
			Kind:    ErrInvalidCommandSender,
			Chain:   t.format(cmd.Components),
			Message: "command requires a different sender kind",
		}
	}

	return cmd, nil
}

// parseAt implements §4.6 step by step.
func (t *Tree) parseAt(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, node *Node) (*Command, error) {
	if missing := findMissingPermission(pctx, node); missing != nil {
		return nil, &TreeError{Kind: ErrNoPermission, MissingPermission: missing, Chain: t.format(acc)}
	}

	if cmd, err, handled := t.attemptUnambiguousChild(ctx, acc, pctx, in, node); handled {
		return cmd, err
	}

	if node.IsLeaf() {
		if node.Component != nil && node.Component.OwningCommand != nil && in.IsEmpty(true) {
			return node.Component.OwningCommand, nil
		}

		return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(acc)}
	}

	for _, child := range node.Children {
		if child.Component == nil {
			continue
		}

		startCursor := in.Cursor()
		pctx.markStart(child.Component, startCursor)
		pctx.SetCurrent(child.Component)

		result, err := child.Component.Parser.ParseFuture(pctx, in).Await(ctx)
		if err != nil {
			// The future itself was cancelled or errored out of band (not a
			// logical parse failure) — this is not "branch didn't match",
			// it's a reason to stop searching entirely.
			pctx.markEnd(in.Cursor(), false)

			return nil, err
		}

		v, ok := result.Value()
		if !ok {
			// A logical Failure during sibling scan is silently absorbed
			// (§4.6 step 4): rewind and try the next sibling.
			in.SetCursor(startCursor)
			pctx.markEnd(in.Cursor(), false)

			continue
		}

		pctx.markEnd(in.Cursor(), true)
		pctx.Store(child.Component.Name, v)

		return t.parseAt(ctx, append(acc, child.Component), pctx, in, child)
	}

	if node == t.root {
		tok := in.PeekString()

		return nil, &TreeError{Kind: ErrNoSuchCommand, Token: tok, Chain: t.format(acc), Closest: t.closestRootAlias(tok)}
	}

	if node.Component != nil && node.Component.OwningCommand != nil && in.IsEmpty(true) {
		owner := node.Component.OwningCommand
		if !pctx.hasPermission(owner.Permission) {
			return nil, &TreeError{Kind: ErrNoPermission, MissingPermission: owner.Permission, Chain: t.format(acc)}
		}

		return owner, nil
	}

	return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(acc)}
}

// attemptUnambiguousChild implements §4.7. The third return value reports
// whether the fast path applied at all; when false, the caller falls
// through to the full sibling scan (§4.6 step 4).
func (t *Tree) attemptUnambiguousChild(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, node *Node) (*Command, error, bool) {
	peek := in.PeekString()

	if peek != "" && node.literalChildMatching(peek) != nil {
		return nil, nil, false
	}

	variable := node.variableChildren()
	if len(variable) == 0 {
		return nil, nil, false
	}

	if len(variable) > 1 {
		return nil, &TreeError{Kind: ErrAmbiguousNode, Message: "internal error: more than one variable child", Chain: t.format(acc)}, true
	}

	child := variable[0]
	comp := child.Component

	if !in.IsEmpty(true) {
		if missing := findMissingPermission(pctx, child); missing != nil {
			return nil, &TreeError{Kind: ErrNoPermission, MissingPermission: missing, Chain: t.format(acc)}, true
		}
	}

	if in.IsEmpty(true) && comp.Type != Flag {
		return t.unambiguousEmptyInput(ctx, acc, pctx, in, node, child)
	}

	return t.unambiguousWithInput(ctx, acc, pctx, in, child)
}

// unambiguousEmptyInput covers §4.7's "input is empty and the child is not
// a FLAG" branch.
func (t *Tree) unambiguousEmptyInput(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, node, child *Node) (*Command, error, bool) {
	comp := child.Component

	switch {
	case comp.HasDefault():
		switch comp.Default.Kind {
		case DefaultParsed:
			in.AppendString(comp.Default.Text)

			return t.attemptUnambiguousChildResult(ctx, acc, pctx, in, node)
		case DefaultConstant:
			pctx.Store(comp.Name, comp.Default.Constant)

			return t.continueAfterArgument(ctx, acc, pctx, in, child)
		}

		return nil, newErr(ErrInvalidSyntax, "default value with unknown kind"), true

	case !comp.Required:
		owner := findSingleChainOwner(child)
		if owner == nil {
			return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(acc)}, true
		}

		return owner, nil, true

	case child.IsLeaf():
		if node.Component != nil && node.Component.OwningCommand != nil {
			owner := node.Component.OwningCommand
			if pctx.hasPermission(owner.Permission) {
				return owner, nil, true
			}

			return nil, &TreeError{Kind: ErrNoPermission, MissingPermission: owner.Permission, Chain: t.format(acc)}, true
		}

		return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(acc)}, true

	default:
		if node.Component != nil && node.Component.OwningCommand != nil && pctx.hasPermission(node.Component.OwningCommand.Permission) {
			return node.Component.OwningCommand, nil, true
		}

		if node.Component != nil && node.Component.OwningCommand != nil {
			return nil, &TreeError{Kind: ErrNoPermission, MissingPermission: node.Component.OwningCommand.Permission, Chain: t.format(acc)}, true
		}

		return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(acc)}, true
	}
}

// attemptUnambiguousChildResult re-enters the fast path after a Parsed
// default has appended text to the input, returning attemptUnambiguousChild's
// (cmd, err, bool) result unchanged.
func (t *Tree) attemptUnambiguousChildResult(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, node *Node) (*Command, error, bool) {
	return t.attemptUnambiguousChild(ctx, acc, pctx, in, node)
}

// findSingleChainOwner walks single-child descendants starting at child
// until it finds one with an owning command. Invariant 1 guarantees no
// branching occurs along the way.
func findSingleChainOwner(child *Node) *Command {
	cur := child

	for cur != nil {
		if cur.Component != nil && cur.Component.OwningCommand != nil {
			return cur.Component.OwningCommand
		}

		if len(cur.Children) != 1 {
			return nil
		}

		cur = cur.Children[0]
	}

	return nil
}

// unambiguousWithInput covers §4.7's "input present, or component is FLAG"
// branch.
func (t *Tree) unambiguousWithInput(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, child *Node) (*Command, error, bool) {
	comp := child.Component

	startCursor := in.Cursor()
	pctx.markStart(comp, startCursor)
	pctx.SetCurrent(comp)

	ok, preErr := comp.Parser.Preprocess(pctx, in)
	if preErr != nil || !ok {
		pctx.markEnd(in.Cursor(), false)

		return nil, &TreeError{Kind: ErrArgumentParse, Wrapped: preErr, Chain: t.format(acc)}, true
	}

	result, err := comp.Parser.ParseFuture(pctx, in).Await(ctx)
	if err != nil {
		pctx.markEnd(in.Cursor(), false)

		return nil, &TreeError{Kind: ErrArgumentParse, Wrapped: err, Chain: t.format(acc)}, true
	}

	v, ok := result.Value()
	if !ok {
		pctx.markEnd(in.Cursor(), false)

		return nil, &TreeError{Kind: ErrArgumentParse, Wrapped: result.Err(), Chain: t.format(acc)}, true
	}

	pctx.markEnd(in.Cursor(), true)
	pctx.Store(comp.Name, v)

	return t.continueAfterArgument(ctx, acc, pctx, in, child)
}

// continueAfterArgument implements the tail of §4.7's "on success" clause,
// shared between the Constant-default path and the parsed-argument path.
func (t *Tree) continueAfterArgument(ctx context.Context, acc []*CommandComponent, pctx *ParseContext, in *input.Buffer, child *Node) (*Command, error, bool) {
	if child.IsLeaf() {
		if in.IsEmpty(true) {
			return child.Component.OwningCommand, nil, true
		}

		return nil, &TreeError{Kind: ErrInvalidSyntax, Chain: t.format(append(acc, child.Component))}, true
	}

	cmd, err := t.parseAt(ctx, append(acc, child.Component), pctx, in, child)

	return cmd, err, true
}
