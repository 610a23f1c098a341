package cloud

import (
	"fmt"

	"go.uber.org/multierr"
)

// computeFlagStartIndex implements §4.3 step 1: under liberal flag parsing
// a command's flag component may be grafted at or after its last LITERAL;
// otherwise only at the very end.
func computeFlagStartIndex(cmd *Command, liberal bool) int {
	if !liberal {
		return len(cmd.Components) - 1
	}

	last := len(cmd.Components)

	for i, c := range cmd.Components {
		if c.Type == Literal {
			last = i
		}
	}

	return last
}

type undo func()

// insertAlias merges newAliases into component that are not already
// recognized, returning how many were appended (always at the tail, so an
// undo can simply truncate by that count).
func insertAlias(component *CommandComponent, newAliases []string) int {
	added := 0

	for _, a := range newAliases {
		if component.matchesAlias(a) {
			continue
		}

		component.Aliases = append(component.Aliases, a)
		added++
	}

	return added
}

// insertCommand implements §4.3. Callers must hold the tree's write lock.
// Failure (duplicate chain, or any invariant violation surfaced by verify)
// leaves the tree exactly as it was before the call, and the
// RegistrationHandler is never invoked for it.
func (t *Tree) insertCommand(cmd *Command) error {
	if len(cmd.Components) == 0 {
		return newErr(ErrInvalidSyntax, "command %q has no components", cmd.Name)
	}

	var undos []undo

	rollback := func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}

	flagStart := computeFlagStartIndex(cmd, t.Settings.LiberalFlagParsing)
	current := t.root

	for i, c := range cmd.Components {
		existing := current.getChild(c)

		switch {
		case existing != nil && c.Type == Literal:
			target := existing.Component
			added := insertAlias(target, c.Aliases)

			if added > 0 {
				undos = append(undos, func() {
					target.Aliases = target.Aliases[:len(target.Aliases)-added]
				})
			}
		case existing == nil:
			existing = current.addChild(c)
			node, parent := existing, current
			undos = append(undos, func() { parent.removeChild(node) })
		}

		current.sortChildren()
		current = existing

		if cmd.FlagGroup != nil && i >= flagStart {
			flagNode := current.addChild(cmd.FlagGroup)
			flagNode.Component.OwningCommand = cmd

			parent := current
			undos = append(undos, func() { parent.removeChild(flagNode) })

			current.sortChildren()
		}
	}

	if current.Component.OwningCommand != nil {
		rollback()

		return &TreeError{
			Kind:    ErrDuplicateCommand,
			Message: fmt.Sprintf("duplicate command chain for %q", cmd.Name),
		}
	}

	current.Component.OwningCommand = cmd
	undos = append(undos, func() { current.Component.OwningCommand = nil })

	if err := t.verify(); err != nil {
		rollback()

		return err
	}

	recomputePermissions(t.root, t.Settings)

	if t.Registration != nil {
		t.Registration.Register(cmd)
	}

	return nil
}

// verify walks the whole tree once, combining every ambiguity and
// missing-owner violation it finds with multierr rather than stopping at the
// first one. It performs no mutation and has no side effect observable
// outside the call — registration only happens in insertCommand, and only
// once verify has reported the tree clean, so a rolled-back insert never
// reaches a RegistrationHandler.
func (t *Tree) verify() error {
	var errs error

	var walk func(n *Node, isRoot bool)

	walk = func(n *Node, isRoot bool) {
		if isRoot {
			for _, c := range n.Children {
				if c.Component.Type != Literal {
					errs = multierr.Append(errs, &TreeError{
						Kind:    ErrTopLevelVariable,
						Message: fmt.Sprintf("root child %q must be a literal", c.Component.Name),
					})
				}
			}
		}

		nonLiteral := 0

		for i, c := range n.Children {
			if c.Component.Type != Literal {
				nonLiteral++

				continue
			}

			for j := i + 1; j < len(n.Children); j++ {
				other := n.Children[j]
				if other.Component.Type != Literal {
					continue
				}

				if sharesAlias(c.Component, other.Component) {
					errs = multierr.Append(errs, &TreeError{
						Kind: ErrAmbiguousNode,
						Message: fmt.Sprintf("literal children %v and %v share an alias",
							c.Component.Aliases, other.Component.Aliases),
					})
				}
			}
		}

		if nonLiteral > 1 {
			errs = multierr.Append(errs, &TreeError{
				Kind:    ErrAmbiguousNode,
				Message: fmt.Sprintf("node %q has more than one variable child", nodeLabel(n)),
			})
		}

		if n.IsLeaf() {
			if n.Component != nil && n.Component.OwningCommand == nil {
				errs = multierr.Append(errs, &TreeError{
					Kind:    ErrNoCommandInLeaf,
					Message: fmt.Sprintf("leaf %q has no owning command", nodeLabel(n)),
				})
			}

			return
		}

		for _, c := range n.Children {
			walk(c, false)
		}
	}

	walk(t.root, true)

	return errs
}

func sharesAlias(a, b *CommandComponent) bool {
	for _, alias := range a.Aliases {
		if b.matchesAlias(alias) {
			return true
		}
	}

	return false
}

func nodeLabel(n *Node) string {
	chain := n.chain()
	names := make([]string, len(chain))

	for i, c := range chain {
		names[i] = c.Name
	}

	return fmt.Sprintf("%v", names)
}
