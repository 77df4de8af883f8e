package listings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/events"
)

const (
	approveListingKey = "admin.listings.approve"
	deleteListingKey  = "listings.delete"
)

// ErrListingHasActiveStays blocks a plain host delete while bookings still
// occupy the calendar.
var ErrListingHasActiveStays = errors.New("listings: active bookings exist")

type ApproveListingCommand struct {
	Actor     domainaccess.Actor
	ListingID string
}

func (c ApproveListingCommand) Key() string { return approveListingKey }

type ApproveListingHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *ApproveListingHandler) Handle(ctx context.Context, cmd ApproveListingCommand) (*dto.Listing, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanModerate(cmd.Actor); err != nil {
		return nil, err
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if err := listing.Approve(time.Now()); err != nil {
		return nil, err
	}

	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := drainListingEvents(ctx, h.Outbox, h.Encoder, listing); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("listing approved", "listing_id", listing.ID, "admin_id", cmd.Actor.ID)
	}

	result := dto.MapListing(listing)
	return &result, nil
}

// DeleteListingCommand removes a listing. Without Force the delete fails
// while pending or confirmed bookings exist. Force is the admin moderation
// path: pending bookings are cancelled, confirmed and completed ones are
// preserved as history, and favorites pointing at the listing are removed.
// Reviews stay because they describe stays that happened.
type DeleteListingCommand struct {
	Actor     domainaccess.Actor
	ListingID string
	Force     bool
}

func (c DeleteListingCommand) Key() string { return deleteListingKey }

type DeleteListingResult struct {
	ListingID         string `json:"listing_id"`
	CancelledBookings int    `json:"cancelled_bookings"`
}

type DeleteListingHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *DeleteListingHandler) Handle(ctx context.Context, cmd DeleteListingCommand) (*DeleteListingResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if cmd.Force {
		if err := h.Policy.CanModerate(cmd.Actor); err != nil {
			return nil, err
		}
	} else {
		if err := h.Policy.CanManageListing(cmd.Actor, listing.Host); err != nil {
			return nil, err
		}
	}

	bookings, err := unit.Booking().ListByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cancelled := 0
	for _, booking := range bookings {
		if booking.Status != domainbooking.StatusPending {
			continue
		}
		if !cmd.Force {
			return nil, ErrListingHasActiveStays
		}
		if err := booking.Apply(domainbooking.EventCancel, now); err != nil {
			return nil, err
		}
		relErr := unit.Availability().Release(ctx, listing.ID, string(booking.ID), now)
		if relErr != nil && !errors.Is(relErr, domainavailability.ErrBlockNotFound) {
			return nil, relErr
		}
		if err := unit.Booking().Save(ctx, booking); err != nil {
			return nil, err
		}
		recorded := booking.PendingEvents()
		booking.ClearEvents()
		if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, recorded); err != nil {
			return nil, err
		}
		cancelled++
	}
	if !cmd.Force {
		for _, booking := range bookings {
			if booking.Status == domainbooking.StatusConfirmed {
				return nil, ErrListingHasActiveStays
			}
		}
	}

	if err := unit.Favorites().RemoveByListing(ctx, listing.ID); err != nil {
		return nil, err
	}
	if err := unit.Listings().Delete(ctx, listing.ID); err != nil {
		return nil, err
	}

	removed := domainlistings.ListingRemoved{
		ListingID:         listing.ID,
		HostID:            listing.Host,
		CancelledBookings: cancelled,
		At:                now,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{removed}); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("listing deleted", "listing_id", listing.ID, "force", cmd.Force, "cancelled_bookings", cancelled)
	}

	return &DeleteListingResult{ListingID: string(listing.ID), CancelledBookings: cancelled}, nil
}

var _ commands.Handler[ApproveListingCommand, *dto.Listing] = (*ApproveListingHandler)(nil)
var _ commands.Handler[DeleteListingCommand, *DeleteListingResult] = (*DeleteListingHandler)(nil)
