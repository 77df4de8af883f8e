package middleware

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
)

// TxOptionsProvider lets the composition root vary transaction options
// per command type. A nil provider means defaults for everything.
type TxOptionsProvider func(cmd commands.Command) uow.TxOptions

// Transaction wraps every dispatch in a unit of work. The unit rides the
// context into the handler; commit happens only when the handler returns
// cleanly, anything else rolls back.
func Transaction(factory uow.UoWFactory, optsFor TxOptionsProvider) CommandMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	return func(next commands.Bus) commands.Bus {
		return dispatchFn(func(ctx context.Context, cmd commands.Command) (result any, err error) {
			var opts uow.TxOptions
			if optsFor != nil {
				opts = optsFor(cmd)
			}
			unit, err := factory.Begin(ctx, opts)
			if err != nil {
				return nil, err
			}
			txCtx := uow.BindUnit(ctx, unit)
			defer func() {
				if err != nil {
					_ = unit.Rollback(txCtx)
				}
			}()

			result, err = next.Dispatch(txCtx, cmd)
			if err != nil {
				return nil, err
			}
			if err = unit.Commit(txCtx); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}
