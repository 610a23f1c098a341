package flagparse_test

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/flagparse"
	"github.com/TehBrian/cloud/internal/input"
)

func defineVerboseAndName(fs *pflag.FlagSet) {
	fs.Bool("verbose", false, "")
	fs.String("name", "", "")
}

func TestGroupStoresChangedFlags(t *testing.T) {
	t.Parallel()

	g := flagparse.NewGroup("opts", defineVerboseAndName)
	pctx := cloud.NewParseContext(nil, nil)
	in := input.New("--verbose --name bob trailing")

	result, err := g.ParseFuture(pctx, in).Await(context.Background())
	require.NoError(t, err)

	_, ok := result.Value()
	require.True(t, ok)

	v, ok := pctx.Get("opts.verbose")
	require.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = pctx.Get("opts.name")
	require.True(t, ok)
	assert.Equal(t, "bob", v)

	assert.Equal(t, "trailing", in.RemainingInput())
}

func TestGroupLeavesUnchangedFlagsUnstored(t *testing.T) {
	t.Parallel()

	g := flagparse.NewGroup("opts", defineVerboseAndName)
	pctx := cloud.NewParseContext(nil, nil)
	in := input.New("")

	_, err := g.ParseFuture(pctx, in).Await(context.Background())
	require.NoError(t, err)

	_, ok := pctx.Get("opts.verbose")
	assert.False(t, ok)
}

func TestParseCurrentFlagDetectsInProgressFlag(t *testing.T) {
	t.Parallel()

	g := flagparse.NewGroup("opts", defineVerboseAndName)

	in := input.New("--verb")
	flag, typing := g.ParseCurrentFlag(nil, in)
	assert.True(t, typing)
	assert.Equal(t, "--verb", flag)

	in = input.New("notaflag")
	_, typing = g.ParseCurrentFlag(nil, in)
	assert.False(t, typing)
}
