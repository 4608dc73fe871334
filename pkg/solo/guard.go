package solo

import (
	"context"
	"sync"
)

// Guard reentrancy guard shared by every public mutating entry point.
//
// An external collaborator invoked mid call (trader, wrapper,
// liquidation callback) runs under the context returned by Enter; a
// call back into the engine through that context fails instead of
// deadlocking. Unrelated callers block until the current call leaves,
// so concurrent sweeps serialize rather than error.
type Guard struct {
	mu sync.Mutex
}

type guardKey struct{}

// Enter acquires the guard. The returned context marks the call as
// inside the engine and must flow to every collaborator; the release
// function runs on every exit path.
func (g *Guard) Enter(ctx context.Context, tag string) (context.Context, func(), error) {
	if ctx.Value(guardKey{}) != nil {
		return ctx, nil, &Error{Msg: tag}
	}

	g.mu.Lock()
	return context.WithValue(ctx, guardKey{}, tag), g.mu.Unlock, nil
}
