package support

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
)

// BeginReadOnlyUnit gives query handlers a unit of work to read through.
// When the middleware already opened one it is reused as-is and the
// cleanup is nil; otherwise a throwaway read-only unit is opened and the
// returned cleanup rolls it back. Callers defer the cleanup when non-nil.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	readCtx := uow.BindUnit(ctx, unit)
	return unit, readCtx, func() { _ = unit.Rollback(readCtx) }, nil
}
