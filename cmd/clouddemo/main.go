// Command clouddemo is a small interactive host exercising the dispatch
// tree: it registers a handful of commands from the spec's own worked
// examples, then lets a cobra-based CLI either resolve ("run") or complete
// ("suggest") a line of input against them.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/argtypes"
	"github.com/TehBrian/cloud/internal/config"
	"github.com/TehBrian/cloud/internal/input"
	"github.com/TehBrian/cloud/internal/shellcomp"
)

// cliSender is the only Sender kind this demo host knows about.
type cliSender struct{}

func (cliSender) Kind() string { return "cli" }

// stringPermission is the simplest possible Permission: a named string,
// compared by value.
type stringPermission string

func (p stringPermission) String() string { return string(p) }

type allowAllAuthority struct{}

func (allowAllAuthority) Has(cloud.Sender, cloud.Permission) bool { return true }

type stdoutRegistration struct{}

func (stdoutRegistration) Register(cmd *cloud.Command) {
	fmt.Fprintf(os.Stderr, "registered command %q\n", cmd.Name)
}

func buildTree() *cloud.Tree {
	t := cloud.NewTree(cloud.Settings{
		LiberalFlagParsing:             false,
		EnforceIntermediaryPermissions: false,
	})
	t.Authority = allowAllAuthority{}
	t.Registration = stdoutRegistration{}

	handler := func(name string) cloud.Handler {
		return func(ctx *cloud.ParseContext) error {
			fmt.Printf("executed %s with values=%v\n", name, ctx.Values())

			return nil
		}
	}

	foo := cloud.NewLiteral("foo", "foo")
	must(t.InsertCommand(&cloud.Command{
		Name:       "foo",
		Components: []*cloud.CommandComponent{foo},
		Handler:    handler("foo"),
	}))

	fooBar := cloud.NewLiteral("foo", "foo")
	bar := cloud.NewLiteral("bar", "bar")
	must(t.InsertCommand(&cloud.Command{
		Name:       "foo bar",
		Components: []*cloud.CommandComponent{fooBar, bar},
		Handler:    handler("foo bar"),
	}))

	fooBaz := cloud.NewLiteral("foo", "foo")
	baz := cloud.NewLiteral("baz", "baz")
	must(t.InsertCommand(&cloud.Command{
		Name:       "foo baz",
		Components: []*cloud.CommandComponent{fooBaz, baz},
		Handler:    handler("foo baz"),
	}))

	rangedFoo := cloud.NewLiteral("rfoo", "rfoo")
	n := &cloud.CommandComponent{
		Name:     "n",
		Type:     cloud.Argument,
		Parser:   argtypes.NewInteger("gte=0,lte=10"),
		Required: true,
	}
	must(t.InsertCommand(&cloud.Command{
		Name:       "rfoo",
		Components: []*cloud.CommandComponent{rangedFoo, n},
		Handler:    handler("rfoo"),
	}))

	defaultedFoo := cloud.NewLiteral("dfoo", "dfoo")
	m := &cloud.CommandComponent{
		Name:     "n",
		Type:     cloud.Argument,
		Parser:   argtypes.NewInteger(""),
		Required: false,
		Default:  cloud.Constant(42),
	}
	must(t.InsertCommand(&cloud.Command{
		Name:       "dfoo",
		Components: []*cloud.CommandComponent{defaultedFoo, m},
		Handler:    handler("dfoo"),
	}))

	return t
}

// manifestTree builds an empty tree configured the same way buildTree's
// code-defined commands are, for a host that instead wants to drive
// insertion from a YAML manifest (see config.LoadAndInsert).
func manifestTree() *cloud.Tree {
	t := cloud.NewTree(cloud.Settings{})
	t.Authority = allowAllAuthority{}
	t.Registration = stdoutRegistration{}

	return t
}

// manifestResolver supplies the permission/handler construction a
// config.CommandSpec cannot carry in YAML: a permission string becomes a
// stringPermission, and every command just prints its name and resolved
// values, same as buildTree's own handlers.
func manifestResolver() config.Resolver {
	return config.Resolver{
		Permission: func(name string) cloud.Permission { return stringPermission(name) },
		Handler: func(spec config.CommandSpec) cloud.Handler {
			return func(ctx *cloud.ParseContext) error {
				fmt.Printf("executed %s with values=%v\n", spec.Name, ctx.Values())

				return nil
			}
		},
	}
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "insert error:", err)
		os.Exit(1)
	}
}

func main() {
	tree := buildTree()

	root := &cobra.Command{
		Use:   "clouddemo",
		Short: "Exercises the command dispatch tree against a handful of sample commands",
	}

	run := &cobra.Command{
		Use:   "run [line...]",
		Short: "Resolve a line of input to a command and execute its handler",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			in := input.New(line)
			pctx := cloud.NewParseContext(cliSender{}, tree.Authority)

			cmd, err := tree.Parse(context.Background(), pctx, in)
			if err != nil {
				return err
			}

			return cmd.Handler(pctx)
		},
	}

	suggest := &cobra.Command{
		Use:   "suggest [line...]",
		Short: "Print completion candidates for a partial line of input",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			in := input.New(line)

			proc := shellcomp.NewProcessor(nil)
			tree.Processor = processorAdapter{proc}

			sctx := cloud.NewSuggestionContext(cliSender{}, tree.Authority, tree.Processor)

			for _, s := range tree.Suggest(context.Background(), sctx, in) {
				fmt.Println(s)
			}

			return nil
		},
	}

	manifest := &cobra.Command{
		Use:   "manifest <path>",
		Short: "Load a YAML command manifest and insert its commands into a fresh tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := config.LoadAndInsert(manifestTree(), args[0], manifestResolver())

			return err
		},
	}

	root.AddCommand(run, suggest, manifest)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// processorAdapter satisfies cloud.SuggestionProcessor by delegating the
// dedupe/sort step to shellcomp.Processor, which itself only needs to
// shape output for a later carapace handoff (not exercised by this simple
// CLI demo).
type processorAdapter struct {
	p *shellcomp.Processor
}

func (a processorAdapter) Process(ctx *cloud.SuggestionContext, raw []string) []string {
	return a.p.Process(ctx, raw)
}
