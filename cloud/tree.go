// Package cloud implements the command dispatch tree: a registry that
// ingests declarative Command values, organizes them into a prefix trie
// keyed by command components, and resolves a tokenized user input string
// to a single executable Command (or a structured TreeError). It also
// produces context-sensitive completion suggestions for partial inputs.
//
// Concurrency model (§5): Parse and Suggest are read operations and never
// take the tree's lock; InsertCommand takes it for the duration of the
// insert and its verification. Callers are responsible for not calling
// InsertCommand concurrently with Parse/Suggest — the two are expected to
// be separated in time (e.g. all inserts happen at startup).
package cloud

import (
	"context"
	"strings"
	"sync"

	"github.com/TehBrian/cloud/internal/input"
)

// Tree is the command dispatch tree. The zero value is not usable; build
// one with NewTree.
type Tree struct {
	root *Node
	mu   sync.RWMutex

	Settings Settings

	// Authority is the evaluator callers hand to NewParseContext and
	// NewSuggestionContext. The tree itself never reads this field: every
	// permission check goes through the authority stored in the context
	// passed to Parse/Suggest. A nil authority there grants every
	// permission, which is convenient for tests and for trees that never
	// set a Command.Permission.
	Authority PermissionAuthority

	// Registration receives every command once it has been accepted by
	// InsertCommand.
	Registration RegistrationHandler

	// Formatter renders a component chain for error messages. A nil
	// Formatter falls back to joining component names with a space.
	Formatter SyntaxFormatter

	// Processor reshapes a Suggest call's raw candidate set. A nil
	// Processor falls back to a dedupe+sort.
	Processor SuggestionProcessor
}

// NewTree builds an empty tree with the given manager settings.
func NewTree(settings Settings) *Tree {
	return &Tree{
		root:     newNode(nil, nil),
		Settings: settings,
	}
}

// InsertCommand grafts cmd onto the trie, verifying tree-wide ambiguity and
// permission invariants (§4.3). It is serialized with this tree's write
// lock; Parse/Suggest never take this lock (§5).
func (t *Tree) InsertCommand(cmd *Command) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.insertCommand(cmd)
}

// RootNodes returns an immutable view of the tree's top-level (LITERAL)
// nodes.
func (t *Tree) RootNodes() []*Node {
	out := make([]*Node, len(t.root.Children))
	copy(out, t.root.Children)

	return out
}

// NamedNode returns the root LITERAL node matching name case-insensitively,
// or nil. This asymmetry (case-insensitive here, case-sensitive during
// parsing) is intentional — see spec §9.
func (t *Tree) NamedNode(name string) *Node {
	lower := strings.ToLower(name)

	for _, c := range t.root.Children {
		for _, alias := range c.Component.Aliases {
			if strings.ToLower(alias) == lower {
				return c
			}
		}
	}

	return nil
}

// DeleteRecursively removes a subtree, invoking onCommand for every owning
// command encountered while doing so. If node is the tree root, its
// children are cleared instead of the node itself being detached.
func (t *Tree) DeleteRecursively(node *Node, isRoot bool, onCommand func(*Command)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var visit func(n *Node)

	visit = func(n *Node) {
		for _, c := range n.Children {
			visit(c)
		}

		if n.Component != nil && n.Component.OwningCommand != nil && onCommand != nil {
			onCommand(n.Component.OwningCommand)
		}
	}

	visit(node)

	if isRoot {
		node.Children = nil

		return
	}

	if node.Parent != nil {
		node.Parent.removeChild(node)
	}
}

func (t *Tree) format(chain []*CommandComponent) string {
	if t.Formatter != nil {
		return t.Formatter(chain)
	}

	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}

	return strings.Join(names, " ")
}

// Parse resolves input against the tree, returning the matched Command or a
// *TreeError. See the walker in parser.go for the algorithm (§4.6-§4.7).
func (t *Tree) Parse(ctx context.Context, pctx *ParseContext, in *input.Buffer) (*Command, error) {
	return t.parse(ctx, pctx, in)
}

// Suggest computes context-sensitive completion candidates for a partial
// input. See suggest.go for the algorithm (§4.8-§4.9).
func (t *Tree) Suggest(ctx context.Context, sctx *SuggestionContext, in *input.Buffer) []string {
	return t.suggest(ctx, sctx, in)
}
