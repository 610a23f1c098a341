package cloud_test

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/argtypes"
	"github.com/TehBrian/cloud/internal/flagparse"
	"github.com/TehBrian/cloud/internal/input"
)

type funcSuggestionProvider func(ctx *cloud.SuggestionContext, partial string) []string

func (f funcSuggestionProvider) Suggestions(ctx *cloud.SuggestionContext, partial string) []string {
	return f(ctx, partial)
}

type testSender struct{ kind string }

func (s testSender) Kind() string { return s.kind }

type stringPerm string

func (p stringPerm) String() string { return string(p) }

type denySet map[string]bool

func (d denySet) Has(_ cloud.Sender, perm cloud.Permission) bool {
	if perm == nil {
		return true
	}

	return !d[perm.String()]
}

type captureRegistration struct {
	names []string
}

func (c *captureRegistration) Register(cmd *cloud.Command) {
	c.names = append(c.names, cmd.Name)
}

func literal(name string) *cloud.CommandComponent {
	return cloud.NewLiteral(name, name)
}

func handlerStoring(dst *map[string]any) cloud.Handler {
	return func(ctx *cloud.ParseContext) error {
		m := ctx.Values()
		*dst = m

		return nil
	}
}

func parseLine(t *testing.T, tree *cloud.Tree, sender cloud.Sender, line string) (*cloud.Command, *cloud.ParseContext, error) {
	t.Helper()

	pctx := cloud.NewParseContext(sender, tree.Authority)
	cmd, err := tree.Parse(context.Background(), pctx, input.New(line))

	return cmd, pctx, err
}

func TestBareLiteralCommand(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	var executed bool

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		Handler: func(*cloud.ParseContext) error {
			executed = true

			return nil
		},
	}))

	cmd, _, err := parseLine(t, tree, testSender{"cli"}, "foo")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(nil))
	assert.True(t, executed)

	_, _, err = parseLine(t, tree, testSender{"cli"}, "foo bar")
	var treeErr *cloud.TreeError
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrInvalidSyntax, treeErr.Kind)

	_, _, err = parseLine(t, tree, testSender{"cli"}, "bar")
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrNoSuchCommand, treeErr.Kind)
}

func TestRangedIntegerArgument(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	n := &cloud.CommandComponent{
		Name:     "n",
		Type:     cloud.Argument,
		Parser:   argtypes.NewInteger("gte=0,lte=10"),
		Required: true,
	}

	var values map[string]any

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo"), n},
		Handler:    handlerStoring(&values),
	}))

	cmd, pctx, err := parseLine(t, tree, testSender{"cli"}, "foo 5")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(pctx))
	assert.Equal(t, 5, values["n"])

	_, _, err = parseLine(t, tree, testSender{"cli"}, "foo 11")
	var treeErr *cloud.TreeError
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrArgumentParse, treeErr.Kind)

	_, _, err = parseLine(t, tree, testSender{"cli"}, "foo")
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrInvalidSyntax, treeErr.Kind)
}

func TestOptionalArgumentWithConstantDefault(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	n := &cloud.CommandComponent{
		Name:     "n",
		Type:     cloud.Argument,
		Parser:   argtypes.NewInteger(""),
		Required: false,
		Default:  cloud.Constant(42),
	}

	var values map[string]any

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo"), n},
		Handler:    handlerStoring(&values),
	}))

	cmd, pctx, err := parseLine(t, tree, testSender{"cli"}, "foo")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(pctx))
	assert.Equal(t, 42, values["n"])

	cmd, pctx, err = parseLine(t, tree, testSender{"cli"}, "foo 7")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(pctx))
	assert.Equal(t, 7, values["n"])
}

func TestIntermediaryExecutor(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		Handler:    func(*cloud.ParseContext) error { return nil },
	}))

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo bar",
		Components: []*cloud.CommandComponent{literal("foo"), literal("bar")},
		Handler:    func(*cloud.ParseContext) error { return nil },
	}))

	cmd, _, err := parseLine(t, tree, testSender{"cli"}, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", cmd.Name)

	cmd, _, err = parseLine(t, tree, testSender{"cli"}, "foo bar")
	require.NoError(t, err)
	assert.Equal(t, "foo bar", cmd.Name)
}

func TestAmbiguousVariableSiblingsRejected(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name: "foo-int",
		Components: []*cloud.CommandComponent{
			literal("foo"),
			{Name: "n", Type: cloud.Argument, Parser: argtypes.NewInteger(""), Required: true},
		},
		Handler: func(*cloud.ParseContext) error { return nil },
	}))

	err := tree.InsertCommand(&cloud.Command{
		Name: "foo-str",
		Components: []*cloud.CommandComponent{
			literal("foo"),
			{Name: "s", Type: cloud.Argument, Parser: argtypes.NewString(""), Required: true},
		},
		Handler: func(*cloud.ParseContext) error { return nil },
	})

	require.Error(t, err)

	// Tree must be unchanged: parsing still only resolves foo-int.
	cmd, _, parseErr := parseLine(t, tree, testSender{"cli"}, "foo 3")
	require.NoError(t, parseErr)
	assert.Equal(t, "foo-int", cmd.Name)
}

func TestSuggestionsFilterByPrefixAndExcludeExactMatch(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	for _, name := range []string{"bar", "baz"} {
		require.NoError(t, tree.InsertCommand(&cloud.Command{
			Name:       "foo " + name,
			Components: []*cloud.CommandComponent{literal("foo"), literal(name)},
			Handler:    func(*cloud.ParseContext) error { return nil },
		}))
	}

	suggestLine := func(line string) []string {
		sctx := cloud.NewSuggestionContext(testSender{"cli"}, tree.Authority, nil)

		return tree.Suggest(context.Background(), sctx, input.New(line))
	}

	assert.ElementsMatch(t, []string{"bar", "baz"}, suggestLine("foo "))
	assert.ElementsMatch(t, []string{"bar", "baz"}, suggestLine("foo b"))
	assert.Empty(t, suggestLine("foo bar"))
}

func TestPermissionAggregationBlocksSender(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})
	tree.Authority = denySet{"admin": true}

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		Permission: stringPerm("admin"),
		Handler:    func(*cloud.ParseContext) error { return nil },
	}))

	_, _, err := parseLine(t, tree, testSender{"cli"}, "foo")
	var treeErr *cloud.TreeError
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrNoPermission, treeErr.Kind)
}

func TestDuplicateCommandChainFailsAtomically(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	cmd := &cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		Handler:    func(*cloud.ParseContext) error { return nil },
	}

	require.NoError(t, tree.InsertCommand(cmd))

	err := tree.InsertCommand(&cloud.Command{
		Name:       "foo-again",
		Components: []*cloud.CommandComponent{literal("foo")},
		Handler:    func(*cloud.ParseContext) error { return nil },
	})

	var treeErr *cloud.TreeError
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, cloud.ErrDuplicateCommand, treeErr.Kind)

	// The failed insert must not have left a partial node behind.
	roots := tree.RootNodes()
	require.Len(t, roots, 1)
}

func TestFlagComponentParsesAndSuggestsEndToEnd(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})

	group := flagparse.NewGroup("opts", func(fs *pflag.FlagSet) {
		fs.Bool("verbose", false, "")
	})

	flag := &cloud.CommandComponent{
		Name:   "opts",
		Type:   cloud.Flag,
		Parser: group,
		SuggestionProvider: funcSuggestionProvider(func(*cloud.SuggestionContext, string) []string {
			return []string{"--verbose"}
		}),
	}

	var values map[string]any

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		FlagGroup:  flag,
		Handler:    handlerStoring(&values),
	}))

	// No flags given: the flag group still parses (zero tokens consumed) and
	// the command resolves via parser.go's comp.Type == Flag branch, which
	// takes the "attempt even with empty input" path rather than the
	// no-default/no-input failure path a non-flag variable child would hit.
	cmd, pctx, err := parseLine(t, tree, testSender{"cli"}, "foo")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(pctx))
	assert.NotContains(t, values, "opts.verbose")

	cmd, pctx, err = parseLine(t, tree, testSender{"cli"}, "foo --verbose")
	require.NoError(t, err)
	require.NoError(t, cmd.Handler(pctx))
	assert.Equal(t, "true", values["opts.verbose"])

	sctx := cloud.NewSuggestionContext(testSender{"cli"}, tree.Authority, nil)
	suggestions := tree.Suggest(context.Background(), sctx, input.New("foo --verb"))
	assert.ElementsMatch(t, []string{"--verbose"}, suggestions)
}

func TestRegistrationHandlerCalledOnInsert(t *testing.T) {
	t.Parallel()

	tree := cloud.NewTree(cloud.Settings{})
	reg := &captureRegistration{}
	tree.Registration = reg

	require.NoError(t, tree.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{literal("foo")},
		Handler:    func(*cloud.ParseContext) error { return nil },
	}))

	assert.Contains(t, reg.names, "foo")
}
