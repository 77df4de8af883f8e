package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/storage/memory"
)

type testEnv struct {
	factory  memory.Factory
	listings *memory.ListingRepository
	bookings *memory.BookingRepository
	outbox   *memory.Outbox
}

func newTestEnv() testEnv {
	listings := memory.NewListingRepository()
	bookings := memory.NewBookingRepository()
	return testEnv{
		factory: memory.Factory{
			ListingsRepo:     listings,
			AvailabilityRepo: memory.NewAvailabilityRepository(),
			BookingRepo:      bookings,
			ReviewsRepo:      memory.NewReviewRepository(),
			FavoritesRepo:    memory.NewFavoriteRepository(),
			UsersRepo:        memory.NewUserRepository(),
			PricingSvc:       domainpricing.StandardCalculator{},
		},
		listings: listings,
		bookings: bookings,
		outbox:   memory.NewOutbox(nil),
	}
}

func (e testEnv) addActiveListing(t *testing.T, id, host string, rateCents int64) *domainlistings.Listing {
	t.Helper()
	rate, err := money.New(rateCents, "USD")
	if err != nil {
		t.Fatalf("money.New: %v", err)
	}
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:          domainlistings.ListingID(id),
		Host:        domainlistings.HostID(host),
		Title:       "Seaside loft",
		Location:    "Mombasa",
		NightlyRate: rate,
		Now:         now,
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := listing.Approve(now); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	listing.ClearEvents()
	if err := e.listings.Save(context.Background(), listing); err != nil {
		t.Fatalf("Save listing: %v", err)
	}
	return listing
}

func activeGuest(id string) domainaccess.Actor {
	return domainaccess.Actor{ID: id, Role: domainuser.RoleGuest, Status: domainuser.StatusActive}
}

func activeHost(id string) domainaccess.Actor {
	return domainaccess.Actor{ID: id, Role: domainuser.RoleHost, Status: domainuser.StatusActive}
}

func activeAdmin() domainaccess.Actor {
	return domainaccess.Actor{ID: "admin-1", Role: domainuser.RoleAdmin, Status: domainuser.StatusActive}
}

func stay(d1, d2 int) (time.Time, time.Time) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, d1), base.AddDate(0, 0, d2)
}

func requestBooking(t *testing.T, env testEnv, id, listingID, guestID string, d1, d2 int) (*RequestBookingResult, error) {
	t.Helper()
	handler := &RequestBookingHandler{UoWFactory: env.factory, Outbox: env.outbox}
	checkIn, checkOut := stay(d1, d2)
	return handler.Handle(context.Background(), RequestBookingCommand{
		CommandID: id,
		Actor:     activeGuest(guestID),
		ListingID: listingID,
		GuestID:   guestID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	})
}

func TestRequestBookingCreatesPendingBooking(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)

	result, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 3)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Status != "PENDING" {
		t.Fatalf("Status = %s, want PENDING", result.Status)
	}
	if result.Nights != 3 || result.Total != 30000 || result.Currency != "USD" {
		t.Fatalf("quote = %d nights, %d %s, want 3 nights, 30000 USD", result.Nights, result.Total, result.Currency)
	}

	stored, err := env.bookings.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.GuestID != "guest-1" || stored.ListingID != "ls-1" {
		t.Fatalf("stored booking = %+v", stored)
	}
}

func TestRequestBookingRejectsOverlap(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)

	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 4); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := requestBooking(t, env, "bk-2", "ls-1", "guest-2", 2, 6)
	if !errors.Is(err, domainavailability.ErrDateRangeUnavailable) {
		t.Fatalf("err = %v, want ErrDateRangeUnavailable", err)
	}
}

func TestRequestBookingAllowsTouchingRanges(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)

	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 4); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := requestBooking(t, env, "bk-2", "ls-1", "guest-2", 4, 8); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}
}

func TestRequestBookingRejectsInactiveListing(t *testing.T) {
	env := newTestEnv()
	listing := env.addActiveListing(t, "ls-1", "host-1", 10000)
	if err := listing.Deactivate(time.Now()); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	listing.ClearEvents()
	if err := env.listings.Save(context.Background(), listing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2)
	if !errors.Is(err, ErrListingNotBookable) {
		t.Fatalf("err = %v, want ErrListingNotBookable", err)
	}
}

func TestRequestBookingEnforcesSelfScope(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)

	handler := &RequestBookingHandler{UoWFactory: env.factory, Outbox: env.outbox}
	checkIn, checkOut := stay(0, 2)
	_, err := handler.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1",
		Actor:     activeGuest("guest-1"),
		ListingID: "ls-1",
		GuestID:   "guest-2",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	})
	if !errors.Is(err, domainaccess.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestPriceSnapshotSurvivesRateChange(t *testing.T) {
	env := newTestEnv()
	listing := env.addActiveListing(t, "ls-1", "host-1", 10000)

	result, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Total != 20000 {
		t.Fatalf("Total = %d, want 20000", result.Total)
	}

	doubled, _ := money.New(20000, "USD")
	listing.NightlyRate = doubled
	if err := env.listings.Save(context.Background(), listing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored, err := env.bookings.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Price.Total.Amount != 20000 {
		t.Fatalf("snapshot total = %d, want the original 20000", stored.Price.Total.Amount)
	}
	if stored.Price.Nightly.Amount != 10000 {
		t.Fatalf("snapshot nightly = %d, want the original 10000", stored.Price.Nightly.Amount)
	}
}
