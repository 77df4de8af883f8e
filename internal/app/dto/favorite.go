package dto

import (
	"time"

	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

type FavoriteToggle struct {
	ListingID   string `json:"listing_id"`
	IsFavorited bool   `json:"is_favorited"`
}

type FavoriteSummary struct {
	ListingID   string    `json:"listing_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	NightlyRate MoneyDTO  `json:"nightly_rate"`
	CreatedAt   time.Time `json:"created_at"`
}

type FavoriteCollection struct {
	Items []FavoriteSummary `json:"items"`
}

func MapFavoriteSummary(f domainfavorites.Favorite, l *domainlistings.Listing) FavoriteSummary {
	s := FavoriteSummary{ListingID: string(f.ListingID), CreatedAt: f.CreatedAt}
	if l != nil {
		s.Title = l.Title
		s.Location = l.Location
		s.NightlyRate = MapMoney(l.NightlyRate)
	}
	return s
}
