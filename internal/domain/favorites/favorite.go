package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

var (
	ErrGuestRequired = errors.New("favorites: guest id required")
)

// Favorite is a unique (guest, listing) pair; no duplicate entries ever exist.
type Favorite struct {
	GuestID   string
	ListingID listings.ListingID
	CreatedAt time.Time
}

// Repository persists favorites. Toggle inserts the pair when absent and
// removes it when present, returning the resulting membership. Concurrent
// toggles for the same pair must serialize so the result stays idempotent.
type Repository interface {
	Toggle(ctx context.Context, guestID string, listingID listings.ListingID, now time.Time) (bool, error)
	IsFavorited(ctx context.Context, guestID string, listingID listings.ListingID) (bool, error)
	ListByGuest(ctx context.Context, guestID string) ([]Favorite, error)
	RemoveByListing(ctx context.Context, listingID listings.ListingID) error
}
