package argtypes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TehBrian/cloud/cloud"
	"github.com/TehBrian/cloud/internal/argtypes"
	"github.com/TehBrian/cloud/internal/input"
)

func TestCounterIncrementsByOneOnBareToken(t *testing.T) {
	t.Parallel()

	comp := &cloud.CommandComponent{Name: "v"}
	pctx := cloud.NewParseContext(nil, nil)
	pctx.SetCurrent(comp)

	c := argtypes.Counter{}
	in := input.New("")

	result, err := c.ParseFuture(pctx, in).Await(context.Background())
	require.NoError(t, err)

	v, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCounterAccumulatesAcrossCalls(t *testing.T) {
	t.Parallel()

	comp := &cloud.CommandComponent{Name: "v"}
	pctx := cloud.NewParseContext(nil, nil)
	pctx.SetCurrent(comp)
	pctx.Store("v", 3)

	c := argtypes.Counter{}
	in := input.New("2")

	result, err := c.ParseFuture(pctx, in).Await(context.Background())
	require.NoError(t, err)

	v, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestHexBytesDecodesToken(t *testing.T) {
	t.Parallel()

	h := argtypes.HexBytes{}
	in := input.New("deadbeef")

	result, err := h.ParseFuture(nil, in).Await(context.Background())
	require.NoError(t, err)

	v, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)
}

func TestHexBytesRejectsInvalidHex(t *testing.T) {
	t.Parallel()

	h := argtypes.HexBytes{}
	in := input.New("nothex")

	result, err := h.ParseFuture(nil, in).Await(context.Background())
	require.NoError(t, err)

	_, ok := result.Value()
	assert.False(t, ok)
}
