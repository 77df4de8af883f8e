package dto

import (
	"time"

	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
)

type Listing struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Amenities     []string  `json:"amenities"`
	NightlyRate   MoneyDTO  `json:"nightly_rate"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
}

func MapListing(l *domainlistings.Listing) Listing {
	return Listing{
		ID:          string(l.ID),
		HostID:      string(l.Host),
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Amenities:   append([]string(nil), l.Amenities...),
		NightlyRate: MapMoney(l.NightlyRate),
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
	}
}

func MapListingWithAggregate(l *domainlistings.Listing, agg domainreviews.Aggregate) Listing {
	out := MapListing(l)
	out.AverageRating = agg.AverageRating
	out.ReviewCount = agg.ReviewCount
	return out
}

type ListingCollection struct {
	Items []Listing `json:"items"`
	Total int       `json:"total"`
}

type ListingOverview struct {
	Listing Listing  `json:"listing"`
	Reviews []Review `json:"reviews"`
}
