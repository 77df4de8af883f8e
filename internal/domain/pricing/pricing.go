package pricing

import (
	"context"
	"errors"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

var (
	ErrInvalidRate = errors.New("pricing: nightly rate cannot be negative")
)

// Quote is the immutable price snapshot stored on a booking at creation
// time. It is never recomputed when the listing rate later changes, which
// keeps totals re-derivable for audits and refunds.
type Quote struct {
	Nights  int
	Nightly money.Money
	Total   money.Money
}

// Calculate derives the total for a stay: nights rounded up and floored at
// one, times the nightly rate. Pure and deterministic.
func Calculate(nightly money.Money, dr daterange.DateRange) (Quote, error) {
	if err := dr.Validate(); err != nil {
		return Quote{}, err
	}
	if nightly.Amount < 0 {
		return Quote{}, ErrInvalidRate
	}
	nights := dr.Nights()
	return Quote{
		Nights:  nights,
		Nightly: nightly,
		Total:   nightly.Multiply(int64(nights)),
	}, nil
}

// Calculator is the pricing port used by booking handlers.
type Calculator interface {
	Quote(ctx context.Context, listing *listings.Listing, dr daterange.DateRange) (Quote, error)
}

// StandardCalculator prices stays from the listing's current nightly rate.
type StandardCalculator struct{}

func (StandardCalculator) Quote(ctx context.Context, listing *listings.Listing, dr daterange.DateRange) (Quote, error) {
	return Calculate(listing.NightlyRate, dr)
}

var _ Calculator = StandardCalculator{}
