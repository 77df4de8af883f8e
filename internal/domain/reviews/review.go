package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/events"
)

var (
	ErrInvalidRating = errors.New("reviews: rating must be between 1 and 5")
	ErrNotEligible   = errors.New("reviews: no qualifying stay on this listing")
	ErrNotFound      = errors.New("reviews: not found")
)

type ReviewID string

type Review struct {
	ID        ReviewID
	ListingID listings.ListingID
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReviewID) (*Review, error)
	Save(ctx context.Context, review *Review) error
	ListByListing(ctx context.Context, listingID listings.ListingID) ([]*Review, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Review, error)
}

type SubmitParams struct {
	ID        ReviewID
	ListingID listings.ListingID
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Submit validates rating bounds; stay eligibility is checked by the
// application layer against the guest's bookings.
func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	review := &Review{
		ID:        params.ID,
		ListingID: params.ListingID,
		AuthorID:  params.AuthorID,
		Rating:    params.Rating,
		Comment:   strings.TrimSpace(params.Comment),
		CreatedAt: params.CreatedAt.UTC(),
	}
	review.Record(ReviewSubmitted{ReviewID: review.ID, ListingID: review.ListingID, AuthorID: review.AuthorID, Rating: review.Rating, At: review.CreatedAt})
	return review, nil
}

// Aggregate is the per-listing review rollup. AverageRating carries one
// decimal of precision for display; stored ratings remain integers.
type Aggregate struct {
	AverageRating float64
	ReviewCount   int
}

// ComputeAggregate takes the arithmetic mean of the given reviews' ratings,
// rounded to one decimal.
func ComputeAggregate(items []*Review) Aggregate {
	if len(items) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range items {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(items))
	return Aggregate{
		AverageRating: float64(int(avg*10+0.5)) / 10,
		ReviewCount:   len(items),
	}
}

type ReviewSubmitted struct {
	ReviewID  ReviewID
	ListingID listings.ListingID
	AuthorID  string
	Rating    int
	At        time.Time
}

func (e ReviewSubmitted) EventName() string     { return "review.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }
