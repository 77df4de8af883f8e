package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

type sessionKey struct{}

// sessionBoundUnit stands in for a unit whose repositories only join the
// transaction when it rides the context, like the Mongo session unit.
type sessionBoundUnit struct {
	injected   bool
	committed  bool
	rolledBack bool
}

func (u *sessionBoundUnit) Listings() domainlistings.Repository         { return nil }
func (u *sessionBoundUnit) Availability() domainavailability.Repository { return nil }
func (u *sessionBoundUnit) Booking() domainbooking.Repository           { return nil }
func (u *sessionBoundUnit) Reviews() domainreviews.Repository           { return nil }
func (u *sessionBoundUnit) Favorites() domainfavorites.Repository       { return nil }
func (u *sessionBoundUnit) Users() domainuser.Repository                { return nil }
func (u *sessionBoundUnit) Pricing() domainpricing.Calculator           { return nil }

func (u *sessionBoundUnit) InjectContext(ctx context.Context) context.Context {
	u.injected = true
	return context.WithValue(ctx, sessionKey{}, u)
}

func (u *sessionBoundUnit) Commit(ctx context.Context) error {
	u.committed = true
	return nil
}

func (u *sessionBoundUnit) Rollback(ctx context.Context) error {
	u.rolledBack = true
	return nil
}

type unitFactory struct {
	unit *sessionBoundUnit
}

func (f unitFactory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return f.unit, nil
}

type busFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f busFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type noopCommand struct{}

func (noopCommand) Key() string { return "test.noop" }

func TestTransactionBindsUnitContext(t *testing.T) {
	unit := &sessionBoundUnit{}
	var handlerCtx context.Context
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		handlerCtx = ctx
		return "ok", nil
	})

	bus := Transaction(unitFactory{unit: unit}, nil)(inner)
	result, err := bus.Dispatch(context.Background(), noopCommand{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result != "ok" {
		t.Fatalf("result = %v, want ok", result)
	}

	if !unit.injected {
		t.Fatal("unit's InjectContext was never called")
	}
	if got := handlerCtx.Value(sessionKey{}); got != unit {
		t.Fatal("handler context does not carry the unit's bound transaction context")
	}
	if found, ok := uow.FromContext(handlerCtx); !ok || found != uow.UnitOfWork(unit) {
		t.Fatal("handler context does not carry the unit of work")
	}
	if !unit.committed {
		t.Fatal("successful dispatch did not commit")
	}
	if unit.rolledBack {
		t.Fatal("successful dispatch must not roll back")
	}
}

func TestTransactionRollsBackOnHandlerError(t *testing.T) {
	unit := &sessionBoundUnit{}
	boom := errors.New("boom")
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		return nil, boom
	})

	bus := Transaction(unitFactory{unit: unit}, nil)(inner)
	if _, err := bus.Dispatch(context.Background(), noopCommand{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if unit.committed {
		t.Fatal("failed dispatch must not commit")
	}
	if !unit.rolledBack {
		t.Fatal("failed dispatch did not roll back")
	}
}
