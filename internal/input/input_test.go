package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStringAdvancesPastTrailingSpace(t *testing.T) {
	t.Parallel()

	b := New("foo bar")

	require.Equal(t, "foo", b.ReadString())
	assert.Equal(t, "bar", b.PeekString())
	assert.Equal(t, "bar", b.ReadString())
	assert.True(t, b.IsEmpty(true))
}

func TestSetCursorRestoresReadStringExactly(t *testing.T) {
	t.Parallel()

	b := New("foo bar baz")
	b.ReadString()

	snapshot := b.Cursor()

	assert.Equal(t, "bar", b.ReadString())

	b.SetCursor(snapshot)
	assert.Equal(t, "bar", b.ReadString())
	assert.Equal(t, "baz", b.ReadString())
}

func TestRemainingTokensAndLastRemainingToken(t *testing.T) {
	t.Parallel()

	b := New("foo bar baz")

	assert.Equal(t, 3, b.RemainingTokens())
	assert.Equal(t, "baz", b.LastRemainingToken())

	b.ReadString()
	assert.Equal(t, 2, b.RemainingTokens())
}

func TestAppendStringAddsSeparatorWhenNeeded(t *testing.T) {
	t.Parallel()

	b := New("foo")
	b.AppendString("bar")
	assert.Equal(t, "foo bar", b.RemainingInput())

	b2 := New("foo ")
	b2.AppendString("bar")
	assert.Equal(t, "foo bar", b2.RemainingInput())
}

func TestCopyIsDetached(t *testing.T) {
	t.Parallel()

	b := New("foo bar")
	b.ReadString()

	c := b.Copy()
	c.ReadString()

	assert.Equal(t, "bar", b.PeekString())
	assert.True(t, c.IsEmpty(true))
}

func TestIsEmptyIgnoringWhitespace(t *testing.T) {
	t.Parallel()

	b := New("  ")

	assert.False(t, b.IsEmpty(false))
	assert.True(t, b.IsEmpty(true))
}
