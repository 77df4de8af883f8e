package booking

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
)

const getBookingKey = "booking.get"

type GetBookingQuery struct {
	Actor     domainaccess.Actor
	BookingID string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.Booking, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Booking{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	booking, err := unit.Booking().ByID(execCtx, domainbooking.BookingID(q.BookingID))
	if err != nil {
		return dto.Booking{}, err
	}
	listing, err := unit.Listings().ByID(execCtx, booking.ListingID)
	if err != nil {
		return dto.Booking{}, err
	}
	if err := h.Policy.CanReadBooking(q.Actor, booking, listing.Host); err != nil {
		return dto.Booking{}, err
	}

	return dto.MapBooking(booking), nil
}

var _ queries.Handler[GetBookingQuery, dto.Booking] = (*GetBookingHandler)(nil)
