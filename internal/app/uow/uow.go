package uow

import (
	"context"
	"errors"

	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Listings() domainlistings.Repository
	Availability() domainavailability.Repository
	Booking() domainbooking.Repository
	Reviews() domainreviews.Repository
	Favorites() domainfavorites.Repository
	Users() domainuser.Repository
	Pricing() domainpricing.Calculator

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}

var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

type ctxKey struct{}

// ContextWithUnitOfWork stores the provided unit of work in context.
func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, unit)
}

// ContextBinder is implemented by units whose repositories only join the
// transaction when it rides the context, like a Mongo session.
type ContextBinder interface {
	InjectContext(ctx context.Context) context.Context
}

// BindUnit attaches unit to ctx for FromContext lookups, first letting
// the unit bind its own transaction context when it knows how to. All
// code that begins a unit must thread the returned context through every
// repository call, or writes escape the transaction.
func BindUnit(ctx context.Context, unit UnitOfWork) context.Context {
	if binder, ok := unit.(ContextBinder); ok {
		ctx = binder.InjectContext(ctx)
	}
	return ContextWithUnitOfWork(ctx, unit)
}

// FromContext retrieves a unit of work from context if present.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	val := ctx.Value(ctxKey{})
	if val == nil {
		return nil, false
	}
	unit, ok := val.(UnitOfWork)
	return unit, ok
}
