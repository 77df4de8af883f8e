package memory

import (
	"context"
	"errors"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	ListingsRepo     domainlistings.Repository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository
	ReviewsRepo      domainreviews.Repository
	FavoritesRepo    domainfavorites.Repository
	UsersRepo        domainuser.Repository
	PricingSvc       domainpricing.Calculator
}

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ListingsRepo == nil || f.AvailabilityRepo == nil || f.BookingRepo == nil ||
		f.ReviewsRepo == nil || f.FavoritesRepo == nil || f.UsersRepo == nil || f.PricingSvc == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		listings:     f.ListingsRepo,
		availability: f.AvailabilityRepo,
		booking:      f.BookingRepo,
		reviews:      f.ReviewsRepo,
		favorites:    f.FavoritesRepo,
		users:        f.UsersRepo,
		pricing:      f.PricingSvc,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	listings     domainlistings.Repository
	availability domainavailability.Repository
	booking      domainbooking.Repository
	reviews      domainreviews.Repository
	favorites    domainfavorites.Repository
	users        domainuser.Repository
	pricing      domainpricing.Calculator
}

func (u *Unit) Listings() domainlistings.Repository         { return u.listings }
func (u *Unit) Availability() domainavailability.Repository { return u.availability }
func (u *Unit) Booking() domainbooking.Repository           { return u.booking }
func (u *Unit) Reviews() domainreviews.Repository           { return u.reviews }
func (u *Unit) Favorites() domainfavorites.Repository       { return u.favorites }
func (u *Unit) Users() domainuser.Repository                { return u.users }
func (u *Unit) Pricing() domainpricing.Calculator           { return u.pricing }

func (u *Unit) Commit(ctx context.Context) error   { return nil }
func (u *Unit) Rollback(ctx context.Context) error { return nil }

var _ uow.UoWFactory = Factory{}
