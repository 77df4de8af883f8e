package support

import (
	"context"
	"testing"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

type boundKey struct{}

type boundUnit struct {
	rolledBack bool
}

func (u *boundUnit) Listings() domainlistings.Repository         { return nil }
func (u *boundUnit) Availability() domainavailability.Repository { return nil }
func (u *boundUnit) Booking() domainbooking.Repository           { return nil }
func (u *boundUnit) Reviews() domainreviews.Repository           { return nil }
func (u *boundUnit) Favorites() domainfavorites.Repository       { return nil }
func (u *boundUnit) Users() domainuser.Repository                { return nil }
func (u *boundUnit) Pricing() domainpricing.Calculator           { return nil }
func (u *boundUnit) Commit(ctx context.Context) error            { return nil }

func (u *boundUnit) Rollback(ctx context.Context) error {
	u.rolledBack = true
	return nil
}

func (u *boundUnit) InjectContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, boundKey{}, u)
}

type boundFactory struct {
	unit *boundUnit
}

func (f boundFactory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return f.unit, nil
}

func TestBeginReadOnlyUnitBindsUnitContext(t *testing.T) {
	fresh := &boundUnit{}
	unit, readCtx, cleanup, err := BeginReadOnlyUnit(context.Background(), boundFactory{unit: fresh})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if unit != uow.UnitOfWork(fresh) {
		t.Fatal("expected the freshly begun unit")
	}
	if readCtx.Value(boundKey{}) != fresh {
		t.Fatal("returned context does not carry the unit's bound transaction context")
	}
	if found, ok := uow.FromContext(readCtx); !ok || found != uow.UnitOfWork(fresh) {
		t.Fatal("returned context does not carry the unit of work")
	}
	if cleanup == nil {
		t.Fatal("fresh unit must come with a cleanup")
	}
	cleanup()
	if !fresh.rolledBack {
		t.Fatal("cleanup did not roll the unit back")
	}
}

func TestBeginReadOnlyUnitReusesContextUnit(t *testing.T) {
	existing := &boundUnit{}
	ctx := uow.ContextWithUnitOfWork(context.Background(), existing)

	unit, outCtx, cleanup, err := BeginReadOnlyUnit(ctx, boundFactory{unit: &boundUnit{}})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if unit != uow.UnitOfWork(existing) {
		t.Fatal("expected the unit already riding the context")
	}
	if outCtx != ctx {
		t.Fatal("context must pass through untouched when a unit is present")
	}
	if cleanup != nil {
		t.Fatal("reused unit must not come with a cleanup")
	}
}
