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
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
)

const transitionBookingKey = "booking.transition"

type TransitionBookingCommand struct {
	Actor           domainaccess.Actor
	BookingID       string
	Event           string
	IdempotencyKeyV string
}

func (c TransitionBookingCommand) Key() string { return transitionBookingKey }

func (c TransitionBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c TransitionBookingCommand) ResultPrototype() any { return &TransitionBookingResult{} }

type TransitionBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type TransitionBookingHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *TransitionBookingHandler) Handle(ctx context.Context, cmd TransitionBookingCommand) (*TransitionBookingResult, error) {
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

	ev, err := domainbooking.ParseEvent(cmd.Event)
	if err != nil {
		return nil, err
	}

	booking, err := unit.Booking().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	listing, err := unit.Listings().ByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	if err := h.Policy.CanTransition(cmd.Actor, ev, booking, listing.Host); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wasBlocking := booking.Blocking()
	if err := booking.Apply(ev, now); err != nil {
		return nil, err
	}

	// A booking that stopped occupying its dates frees the calendar so the
	// range can be booked again.
	if wasBlocking && !booking.Blocking() {
		err := unit.Availability().Release(ctx, booking.ListingID, string(booking.ID), now)
		if err != nil && !errors.Is(err, domainavailability.ErrBlockNotFound) {
			return nil, err
		}
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

	return &TransitionBookingResult{BookingID: string(booking.ID), Status: string(booking.Status)}, nil
}

func (h *TransitionBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[TransitionBookingCommand, *TransitionBookingResult] = (*TransitionBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*TransitionBookingCommand)(nil)
