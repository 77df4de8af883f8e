package middleware

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
)

// CommandMiddleware decorates a command bus. Middleware compose like HTTP
// middleware: the first one passed to ChainCommands sees the dispatch first.
type CommandMiddleware func(next commands.Bus) commands.Bus

// QueryMiddleware decorates a query bus.
type QueryMiddleware func(next queries.Bus) queries.Bus

// ChainCommands wraps base so that mws[0] is the outermost layer. The
// booking pipeline relies on this ordering: idempotency must see the
// command before the transaction opens and the outbox flushes.
func ChainCommands(base commands.Bus, mws ...CommandMiddleware) commands.Bus {
	bus := base
	for i := len(mws) - 1; i >= 0; i-- {
		bus = mws[i](bus)
	}
	return bus
}

// ChainQueries mirrors ChainCommands for the read side.
func ChainQueries(base queries.Bus, mws ...QueryMiddleware) queries.Bus {
	bus := base
	for i := len(mws) - 1; i >= 0; i-- {
		bus = mws[i](bus)
	}
	return bus
}

// dispatchFn adapts a closure to commands.Bus so middleware need no
// struct boilerplate.
type dispatchFn func(ctx context.Context, cmd commands.Command) (any, error)

func (f dispatchFn) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type askFn func(ctx context.Context, q queries.Query) (any, error)

func (f askFn) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}
