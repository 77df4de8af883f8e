package availability

import (
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
)

type RangeBlocked struct {
	ListingID listings.ListingID
	Range     daterange.DateRange
	Reference string
	At        time.Time
}

func (e RangeBlocked) EventName() string     { return "availability.blocked" }
func (e RangeBlocked) AggregateID() string   { return string(e.ListingID) }
func (e RangeBlocked) OccurredAt() time.Time { return e.At }

type RangeReleased struct {
	ListingID listings.ListingID
	Range     daterange.DateRange
	Reference string
	At        time.Time
}

func (e RangeReleased) EventName() string     { return "availability.released" }
func (e RangeReleased) AggregateID() string   { return string(e.ListingID) }
func (e RangeReleased) OccurredAt() time.Time { return e.At }

type OverbookingPrevented struct {
	ListingID listings.ListingID
	Range     daterange.DateRange
	At        time.Time
}

func (e OverbookingPrevented) EventName() string     { return "availability.overbooking_prevented" }
func (e OverbookingPrevented) AggregateID() string   { return string(e.ListingID) }
func (e OverbookingPrevented) OccurredAt() time.Time { return e.At }
