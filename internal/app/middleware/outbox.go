package middleware

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
)

// OutboxFlush drains the events a handler recorded once its command has
// succeeded. It sits inside Transaction in the chain, so the flushed
// records commit or roll back together with the state change.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		return dispatchFn(func(ctx context.Context, cmd commands.Command) (any, error) {
			result, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}
