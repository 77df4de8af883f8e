package booking

import (
	"context"
	"sort"
	"strings"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

const (
	listHostBookingsKey  = "booking.host.list"
	defaultHostListLimit = 200
)

type ListHostBookingsQuery struct {
	Actor  domainaccess.Actor
	HostID string
	Status string
}

func (q ListHostBookingsQuery) Key() string { return listHostBookingsKey }

type ListHostBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

func (h *ListHostBookingsHandler) Handle(ctx context.Context, q ListHostBookingsQuery) (dto.HostBookingCollection, error) {
	hostID := domainlistings.HostID(strings.TrimSpace(q.HostID))
	if err := h.Policy.CanManageListing(q.Actor, hostID); err != nil {
		return dto.HostBookingCollection{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.HostBookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	owned, err := unit.Listings().Search(execCtx, domainlistings.SearchParams{
		Host:  hostID,
		Limit: defaultHostListLimit,
	})
	if err != nil {
		return dto.HostBookingCollection{}, err
	}

	statusFilter := domainbooking.Status(strings.ToUpper(strings.TrimSpace(q.Status)))
	items := make([]dto.HostBookingSummary, 0)
	for _, listing := range owned.Items {
		bookings, err := unit.Booking().ListByListing(execCtx, listing.ID)
		if err != nil {
			return dto.HostBookingCollection{}, err
		}
		for _, booking := range bookings {
			if statusFilter != "" && booking.Status != statusFilter {
				continue
			}
			items = append(items, dto.MapHostBookingSummary(booking, listing))
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return dto.HostBookingCollection{Items: items}, nil
}

var _ queries.Handler[ListHostBookingsQuery, dto.HostBookingCollection] = (*ListHostBookingsHandler)(nil)
