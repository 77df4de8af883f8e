package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/events"
)

var (
	ErrGuestRequired     = errors.New("booking: guest id required")
	ErrInvalidTransition = errors.New("booking: invalid transition")
	ErrUnknownEvent      = errors.New("booking: unknown transition event")
	ErrNotFound          = errors.New("booking: not found")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

// Event names a requested state-machine transition.
type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

func ParseEvent(raw string) (Event, error) {
	switch Event(strings.ToLower(strings.TrimSpace(raw))) {
	case EventApprove:
		return EventApprove, nil
	case EventReject:
		return EventReject, nil
	case EventCancel:
		return EventCancel, nil
	case EventComplete:
		return EventComplete, nil
	default:
		return "", ErrUnknownEvent
	}
}

// transitions is the full state machine: everything absent here fails with
// ErrInvalidTransition. Terminal states have no outgoing edges.
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventApprove: StatusConfirmed,
		EventReject:  StatusRejected,
		EventCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		EventCancel:   StatusCancelled,
		EventComplete: StatusCompleted,
	},
}

// NextStatus resolves the target status for an event, or ErrInvalidTransition.
func NextStatus(from Status, ev Event) (Status, error) {
	edges, ok := transitions[from]
	if !ok {
		return "", ErrInvalidTransition
	}
	to, ok := edges[ev]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

type Booking struct {
	ID        BookingID
	ListingID listings.ListingID
	GuestID   string
	Range     daterange.DateRange
	Price     pricing.Quote
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
	ListByListing(ctx context.Context, listingID listings.ListingID) ([]*Booking, error)
	ListByStatus(ctx context.Context, status Status) ([]*Booking, error)
}

type CreateParams struct {
	ID        BookingID
	ListingID listings.ListingID
	GuestID   string
	Range     daterange.DateRange
	Price     pricing.Quote
	CreatedAt time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:        params.ID,
		ListingID: params.ListingID,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Price:     params.Price,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Record(BookingRequested{BookingID: b.ID, ListingID: b.ListingID, GuestID: b.GuestID, Range: b.Range, Total: b.Price.Total, At: now})
	return b, nil
}

// Apply performs a state-machine transition. A disallowed transition fails
// with ErrInvalidTransition and leaves the booking untouched.
func (b *Booking) Apply(ev Event, now time.Time) error {
	next, err := NextStatus(b.Status, ev)
	if err != nil {
		return err
	}
	b.Status = next
	b.UpdatedAt = now.UTC()
	switch next {
	case StatusConfirmed:
		b.Record(BookingConfirmed{BookingID: b.ID, ListingID: b.ListingID, Range: b.Range, Total: b.Price.Total, At: b.UpdatedAt})
	case StatusRejected:
		b.Record(BookingRejected{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	case StatusCancelled:
		b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	case StatusCompleted:
		b.Record(BookingCompleted{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	}
	return nil
}

// Terminal reports whether no further transition is possible.
func (b *Booking) Terminal() bool {
	_, ok := transitions[b.Status]
	return !ok
}

// Blocking reports whether the booking still occupies its date range.
// Only pending and confirmed bookings keep other guests out.
func (b *Booking) Blocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// QualifiesForReview reports whether this stay entitles its guest to review
// the listing.
func (b *Booking) QualifiesForReview() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}
