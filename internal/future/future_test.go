package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoResolvesResult(t *testing.T) {
	t.Parallel()

	f := Go(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGoResolvesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")

	f := Go(context.Background(), func(context.Context) (int, error) {
		return 0, wantErr
	})

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestDoneIsAlreadyResolved(t *testing.T) {
	t.Parallel()

	f := Done("value", nil)

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestAwaitRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	defer close(block)

	f := Go(context.Background(), func(context.Context) (int, error) {
		<-block

		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
