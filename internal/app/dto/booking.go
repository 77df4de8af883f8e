package dto

import (
	"time"

	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(m money.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount, Currency: m.Currency}
}

type Booking struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	GuestID   string    `json:"guest_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Nights    int       `json:"nights"`
	Nightly   MoneyDTO  `json:"nightly_rate"`
	Total     MoneyDTO  `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	return Booking{
		ID:        string(b.ID),
		ListingID: string(b.ListingID),
		GuestID:   b.GuestID,
		CheckIn:   b.Range.CheckIn,
		CheckOut:  b.Range.CheckOut,
		Nights:    b.Price.Nights,
		Nightly:   MapMoney(b.Price.Nightly),
		Total:     MapMoney(b.Price.Total),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

type BookingListingSnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

type GuestBookingSummary struct {
	ID        string                 `json:"id"`
	Listing   BookingListingSnapshot `json:"listing"`
	CheckIn   time.Time              `json:"check_in"`
	CheckOut  time.Time              `json:"check_out"`
	Status    string                 `json:"status"`
	Total     MoneyDTO               `json:"total"`
	CreatedAt time.Time              `json:"created_at"`
	CanReview bool                   `json:"can_review"`
}

type GuestBookingCollection struct {
	Items []GuestBookingSummary `json:"items"`
}

func MapGuestBookingSummary(b *domainbooking.Booking, l *domainlistings.Listing) GuestBookingSummary {
	s := GuestBookingSummary{
		ID:        string(b.ID),
		CheckIn:   b.Range.CheckIn,
		CheckOut:  b.Range.CheckOut,
		Status:    string(b.Status),
		Total:     MapMoney(b.Price.Total),
		CreatedAt: b.CreatedAt,
		CanReview: b.QualifiesForReview(),
	}
	if l != nil {
		s.Listing = BookingListingSnapshot{ID: string(l.ID), Title: l.Title, Location: l.Location}
	} else {
		s.Listing = BookingListingSnapshot{ID: string(b.ListingID)}
	}
	return s
}

type HostBookingSummary struct {
	ID        string                 `json:"id"`
	Listing   BookingListingSnapshot `json:"listing"`
	GuestID   string                 `json:"guest_id"`
	CheckIn   time.Time              `json:"check_in"`
	CheckOut  time.Time              `json:"check_out"`
	Status    string                 `json:"status"`
	Total     MoneyDTO               `json:"total"`
	CreatedAt time.Time              `json:"created_at"`
}

type HostBookingCollection struct {
	Items []HostBookingSummary `json:"items"`
}

func MapHostBookingSummary(b *domainbooking.Booking, l *domainlistings.Listing) HostBookingSummary {
	s := HostBookingSummary{
		ID:        string(b.ID),
		GuestID:   b.GuestID,
		CheckIn:   b.Range.CheckIn,
		CheckOut:  b.Range.CheckOut,
		Status:    string(b.Status),
		Total:     MapMoney(b.Price.Total),
		CreatedAt: b.CreatedAt,
	}
	if l != nil {
		s.Listing = BookingListingSnapshot{ID: string(l.ID), Title: l.Title, Location: l.Location}
	}
	return s
}
