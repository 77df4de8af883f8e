package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	ListingsRepo     domainlistings.Repository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository
	ReviewsRepo      domainreviews.Repository
	FavoritesRepo    domainfavorites.Repository
	UsersRepo        domainuser.Repository
	PricingSvc       domainpricing.Calculator
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(f.DB.ReadConcern()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:      session,
		listings:     f.ListingsRepo,
		availability: f.AvailabilityRepo,
		booking:      f.BookingRepo,
		reviews:      f.ReviewsRepo,
		favorites:    f.FavoritesRepo,
		users:        f.UsersRepo,
		pricing:      f.PricingSvc,
	}, nil
}

type Unit struct {
	session mongo.Session

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

// InjectContext binds the transaction session to ctx. Repository calls
// only join the transaction when they run on a SessionContext, so every
// consumer of the unit must thread this context through.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

var _ uow.UoWFactory = Factory{}
var _ uow.ContextBinder = (*Unit)(nil)
