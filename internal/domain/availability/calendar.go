package availability

import (
	"context"
	"errors"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/events"
)

var (
	ErrDateRangeUnavailable = errors.New("availability: date range unavailable")
	ErrBlockNotFound        = errors.New("availability: block not found")
)

// Block marks a date range held by an active (pending or confirmed) booking.
type Block struct {
	Range     daterange.DateRange
	Reference string
	CreatedAt time.Time
}

// Calendar tracks the occupied ranges of one listing. The overlap test is
// half-open: [in, out) ranges that merely touch do not collide.
type Calendar struct {
	ListingID listings.ListingID
	Blocks    []Block
	Version   int64
	events.EventRecorder
}

// Repository persists calendars. Reserve must be atomic with respect to the
// overlap check: two concurrent reservations for colliding ranges on the
// same listing must not both succeed.
type Repository interface {
	Calendar(ctx context.Context, id listings.ListingID) (*Calendar, error)
	Reserve(ctx context.Context, id listings.ListingID, r daterange.DateRange, reference string, now time.Time) error
	Release(ctx context.Context, id listings.ListingID, reference string, now time.Time) error
}

func NewCalendar(id listings.ListingID) *Calendar {
	return &Calendar{ListingID: id}
}

func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	for _, block := range c.Blocks {
		if block.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// Reserve blocks a range for the referenced booking; callers must serialize
// invocations per listing (the repository does).
func (c *Calendar) Reserve(r daterange.DateRange, reference string, now time.Time) error {
	if !c.CanReserve(r) {
		c.Record(OverbookingPrevented{ListingID: c.ListingID, Range: r, At: now.UTC()})
		return ErrDateRangeUnavailable
	}
	c.Blocks = append(c.Blocks, Block{Range: r, Reference: reference, CreatedAt: now.UTC()})
	c.Record(RangeBlocked{ListingID: c.ListingID, Range: r, Reference: reference, At: now.UTC()})
	return nil
}

// Release frees the block held by a booking that stopped occupying its range.
func (c *Calendar) Release(reference string, now time.Time) error {
	idx := -1
	for i, block := range c.Blocks {
		if block.Reference == reference {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrBlockNotFound
	}
	removed := c.Blocks[idx]
	c.Blocks = append(c.Blocks[:idx], c.Blocks[idx+1:]...)
	c.Record(RangeReleased{ListingID: c.ListingID, Range: removed.Range, Reference: reference, At: now.UTC()})
	return nil
}
