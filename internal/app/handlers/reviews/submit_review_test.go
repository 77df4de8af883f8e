package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/storage/memory"
)

type reviewEnv struct {
	factory  memory.Factory
	bookings *memory.BookingRepository
}

func newReviewEnv(t *testing.T) reviewEnv {
	t.Helper()
	listings := memory.NewListingRepository()
	bookings := memory.NewBookingRepository()

	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rate, _ := money.New(12000, "USD")
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:          "ls-1",
		Host:        "host-1",
		Title:       "Garden cottage",
		Location:    "Naivasha",
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
	if err := listings.Save(context.Background(), listing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	return reviewEnv{
		factory: memory.Factory{
			ListingsRepo:     listings,
			AvailabilityRepo: memory.NewAvailabilityRepository(),
			BookingRepo:      bookings,
			ReviewsRepo:      memory.NewReviewRepository(),
			FavoritesRepo:    memory.NewFavoriteRepository(),
			UsersRepo:        memory.NewUserRepository(),
			PricingSvc:       domainpricing.StandardCalculator{},
		},
		bookings: bookings,
	}
}

func (e reviewEnv) addBooking(t *testing.T, id, guestID string, status domainbooking.Status) {
	t.Helper()
	checkIn := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	dr, _ := daterange.New(checkIn, checkIn.AddDate(0, 0, 2))
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(id),
		ListingID: "ls-1",
		GuestID:   guestID,
		Range:     dr,
		CreatedAt: checkIn.AddDate(0, -1, 0),
	})
	if err != nil {
		t.Fatalf("NewBooking: %v", err)
	}
	b.Status = status
	b.ClearEvents()
	if err := e.bookings.Save(context.Background(), b); err != nil {
		t.Fatalf("Save booking: %v", err)
	}
}

func (e reviewEnv) unitContext(t *testing.T) context.Context {
	t.Helper()
	unit, err := e.factory.Begin(context.Background(), uow.TxOptions{})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return uow.ContextWithUnitOfWork(context.Background(), unit)
}

func reviewer(id string) domainaccess.Actor {
	return domainaccess.Actor{ID: id, Role: domainuser.RoleGuest, Status: domainuser.StatusActive}
}

func TestSubmitReviewAfterCompletedStay(t *testing.T) {
	env := newReviewEnv(t)
	env.addBooking(t, "bk-1", "g1", domainbooking.StatusCompleted)

	handler := &SubmitReviewHandler{}
	review, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
		Actor:     reviewer("g1"),
		ListingID: "ls-1",
		AuthorID:  "g1",
		Rating:    5,
		Comment:   "Lovely place",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if review.Rating != 5 || review.ListingID != "ls-1" || review.AuthorID != "g1" {
		t.Fatalf("review = %+v", review)
	}
}

func TestSubmitReviewDuringConfirmedStay(t *testing.T) {
	env := newReviewEnv(t)
	env.addBooking(t, "bk-1", "g1", domainbooking.StatusConfirmed)

	handler := &SubmitReviewHandler{}
	if _, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
		Actor:     reviewer("g1"),
		ListingID: "ls-1",
		AuthorID:  "g1",
		Rating:    4,
	}); err != nil {
		t.Fatalf("confirmed stay should qualify: %v", err)
	}
}

func TestSubmitReviewRequiresQualifyingStay(t *testing.T) {
	env := newReviewEnv(t)

	tests := []struct {
		name   string
		status domainbooking.Status
	}{
		{"pending booking", domainbooking.StatusPending},
		{"cancelled booking", domainbooking.StatusCancelled},
		{"rejected booking", domainbooking.StatusRejected},
	}
	handler := &SubmitReviewHandler{}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guestID := string(rune('a' + i))
			env.addBooking(t, "bk-"+guestID, guestID, tt.status)
			_, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
				Actor:     reviewer(guestID),
				ListingID: "ls-1",
				AuthorID:  guestID,
				Rating:    3,
			})
			if !errors.Is(err, domainreviews.ErrNotEligible) {
				t.Fatalf("err = %v, want ErrNotEligible", err)
			}
		})
	}
}

func TestSubmitReviewWithoutAnyStay(t *testing.T) {
	env := newReviewEnv(t)
	handler := &SubmitReviewHandler{}
	_, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
		Actor:     reviewer("g1"),
		ListingID: "ls-1",
		AuthorID:  "g1",
		Rating:    3,
	})
	if !errors.Is(err, domainreviews.ErrNotEligible) {
		t.Fatalf("err = %v, want ErrNotEligible", err)
	}
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	env := newReviewEnv(t)
	env.addBooking(t, "bk-1", "g1", domainbooking.StatusCompleted)

	handler := &SubmitReviewHandler{}
	for _, rating := range []int{0, -1, 6} {
		_, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
			Actor:     reviewer("g1"),
			ListingID: "ls-1",
			AuthorID:  "g1",
			Rating:    rating,
		})
		if !errors.Is(err, domainreviews.ErrInvalidRating) {
			t.Fatalf("rating %d err = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestMultipleReviewsFromRepeatGuest(t *testing.T) {
	env := newReviewEnv(t)
	env.addBooking(t, "bk-1", "g1", domainbooking.StatusCompleted)

	handler := &SubmitReviewHandler{}
	for i := 0; i < 2; i++ {
		if _, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
			Actor:     reviewer("g1"),
			ListingID: "ls-1",
			AuthorID:  "g1",
			Rating:    4,
		}); err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
	}

	lister := &ListListingReviewsHandler{UoWFactory: env.factory}
	result, err := lister.Handle(context.Background(), ListListingReviewsQuery{ListingID: "ls-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d reviews, want 2", len(result.Items))
	}
}

func TestListingAggregate(t *testing.T) {
	env := newReviewEnv(t)
	env.addBooking(t, "bk-1", "g1", domainbooking.StatusCompleted)
	env.addBooking(t, "bk-2", "g2", domainbooking.StatusCompleted)

	handler := &SubmitReviewHandler{}
	for _, sub := range []struct {
		guest  string
		rating int
	}{{"g1", 5}, {"g2", 4}} {
		if _, err := handler.Handle(env.unitContext(t), SubmitReviewCommand{
			Actor:     reviewer(sub.guest),
			ListingID: "ls-1",
			AuthorID:  sub.guest,
			Rating:    sub.rating,
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	agg := &GetListingAggregateHandler{UoWFactory: env.factory}
	result, err := agg.Handle(context.Background(), GetListingAggregateQuery{ListingID: "ls-1"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if result.ReviewCount != 2 {
		t.Fatalf("ReviewCount = %d, want 2", result.ReviewCount)
	}
	if result.AverageRating != 4.5 {
		t.Fatalf("AverageRating = %v, want 4.5", result.AverageRating)
	}
}
