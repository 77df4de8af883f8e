package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/middleware"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainrange "github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
)

const requestBookingKey = "booking.request"

var (
	ErrUnitOfWorkRequired = errors.New("booking: unit of work required")
	ErrListingNotBookable = errors.New("booking: listing is not open for bookings")
)

type RequestBookingCommand struct {
	CommandID       string
	Actor           domainaccess.Actor
	ListingID       string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Nights    int    `json:"nights"`
	Total     int64  `json:"total"`
	Currency  string `json:"currency"`
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.BindUnit(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	if err := h.Policy.CanCreateBooking(cmd.Actor, cmd.GuestID); err != nil {
		return nil, err
	}

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if listing.Status != domainlistings.StatusActive {
		return nil, ErrListingNotBookable
	}

	// Price is snapshotted here; a later rate change never touches it.
	quote, err := unit.Pricing().Quote(ctx, listing, dr)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(cmd.CommandID),
		ListingID: listing.ID,
		GuestID:   cmd.GuestID,
		Range:     dr,
		Price:     quote,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	// Reserve is the single atomic gate against double booking; the booking
	// is only persisted once its range is held.
	if err := unit.Availability().Reserve(ctx, listing.ID, dr, string(booking.ID), now); err != nil {
		return nil, err
	}

	if err := unit.Booking().Save(ctx, booking); err != nil {
		return nil, err
	}

	recorded := booking.PendingEvents()
	booking.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), recorded); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RequestBookingResult{
		BookingID: string(booking.ID),
		Status:    string(booking.Status),
		Nights:    quote.Nights,
		Total:     quote.Total.Amount,
		Currency:  quote.Total.Currency,
	}, nil
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
