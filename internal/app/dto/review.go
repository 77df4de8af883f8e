package dto

import (
	"time"

	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
)

type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func MapReview(r *domainreviews.Review) Review {
	return Review{
		ID:        string(r.ID),
		ListingID: string(r.ListingID),
		AuthorID:  r.AuthorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type ReviewCollection struct {
	Items []Review `json:"items"`
}

// ListingAggregate is the display rollup: mean rating to one decimal plus count.
type ListingAggregate struct {
	ListingID     string  `json:"listing_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func MapListingAggregate(listingID string, agg domainreviews.Aggregate) ListingAggregate {
	return ListingAggregate{
		ListingID:     listingID,
		AverageRating: agg.AverageRating,
		ReviewCount:   agg.ReviewCount,
	}
}
