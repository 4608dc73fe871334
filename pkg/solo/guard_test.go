package solo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	g := &Guard{}

	inner, release, err := g.Enter(context.Background(), "op")
	require.NoError(t, err)

	// a collaborator calling back in through the engine context fails
	_, _, err = g.Enter(inner, "op/nested")
	require.Error(t, err)
	assert.True(t, IsRequireError(err))

	release()

	// released on every exit path, the next call goes through
	_, release, err = g.Enter(context.Background(), "op")
	require.NoError(t, err)
	release()
}

func TestGuardBlocksConcurrentCallers(t *testing.T) {
	g := &Guard{}

	_, release, err := g.Enter(context.Background(), "op")
	require.NoError(t, err)

	entered := make(chan error, 1)
	go func() {
		_, release2, err := g.Enter(context.Background(), "op")
		if err == nil {
			release2()
		}
		entered <- err
	}()

	// an unrelated caller waits instead of failing
	select {
	case <-entered:
		t.Fatal("concurrent caller entered while the guard was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	require.NoError(t, <-entered)
}
