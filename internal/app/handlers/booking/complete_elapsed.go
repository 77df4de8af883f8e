package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
)

const completeElapsedKey = "booking.complete_elapsed"

// CompleteElapsedCommand is dispatched by the scheduler, not by users, so it
// carries no actor and skips the capability matrix.
type CompleteElapsedCommand struct {
	Now time.Time
}

func (c CompleteElapsedCommand) Key() string { return completeElapsedKey }

type CompleteElapsedResult struct {
	Completed int `json:"completed"`
}

type CompleteElapsedHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *CompleteElapsedHandler) Handle(ctx context.Context, cmd CompleteElapsedCommand) (*CompleteElapsedResult, error) {
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

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	confirmed, err := unit.Booking().ListByStatus(ctx, domainbooking.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, booking := range confirmed {
		if !booking.Range.Ended(now) {
			continue
		}
		if err := booking.Apply(domainbooking.EventComplete, now); err != nil {
			return nil, err
		}
		err := unit.Availability().Release(ctx, booking.ListingID, string(booking.ID), now)
		if err != nil && !errors.Is(err, domainavailability.ErrBlockNotFound) {
			if h.Logger != nil {
				h.Logger.Warn("release after completion failed", "booking_id", booking.ID, "error", err)
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
		completed++
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	if h.Logger != nil && completed > 0 {
		h.Logger.Info("elapsed bookings completed", "count", completed)
	}

	return &CompleteElapsedResult{Completed: completed}, nil
}

func (h *CompleteElapsedHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[CompleteElapsedCommand, *CompleteElapsedResult] = (*CompleteElapsedHandler)(nil)
