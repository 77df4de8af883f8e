package booking

import (
	"context"
	"log/slog"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

const listGuestBookingsKey = "booking.guest.list"

type ListGuestBookingsQuery struct {
	Actor   domainaccess.Actor
	GuestID string
}

func (q ListGuestBookingsQuery) Key() string { return listGuestBookingsKey }

type ListGuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
	Logger     *slog.Logger
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) (dto.GuestBookingCollection, error) {
	if err := h.Policy.CanCreateBooking(q.Actor, q.GuestID); err != nil {
		return dto.GuestBookingCollection{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.GuestBookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Booking().ListByGuest(execCtx, q.GuestID)
	if err != nil {
		return dto.GuestBookingCollection{}, err
	}

	listingCache := make(map[domainlistings.ListingID]*domainlistings.Listing)
	items := make([]dto.GuestBookingSummary, 0, len(bookings))
	for _, booking := range bookings {
		listing, err := loadListing(execCtx, unit.Listings(), booking.ListingID, listingCache)
		if err != nil && h.Logger != nil {
			h.Logger.Warn("listing missing for booking", "booking_id", booking.ID, "listing_id", booking.ListingID, "error", err)
		}
		items = append(items, dto.MapGuestBookingSummary(booking, listing))
	}

	return dto.GuestBookingCollection{Items: items}, nil
}

func loadListing(
	ctx context.Context,
	repo domainlistings.Repository,
	id domainlistings.ListingID,
	cache map[domainlistings.ListingID]*domainlistings.Listing,
) (*domainlistings.Listing, error) {
	if cached, ok := cache[id]; ok {
		return cached, nil
	}
	listing, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = listing
	return listing, nil
}

var _ queries.Handler[ListGuestBookingsQuery, dto.GuestBookingCollection] = (*ListGuestBookingsHandler)(nil)
