package listings

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

const (
	listHostListingsKey = "host.listings.list"
	hostEarningsKey     = "host.earnings"
)

type ListHostListingsQuery struct {
	Actor  domainaccess.Actor
	HostID string
}

func (q ListHostListingsQuery) Key() string { return listHostListingsKey }

type ListHostListingsHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

func (h *ListHostListingsHandler) Handle(ctx context.Context, q ListHostListingsQuery) (dto.ListingCollection, error) {
	if err := h.Policy.CanManageListing(q.Actor, domainlistings.HostID(q.HostID)); err != nil {
		return dto.ListingCollection{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	result, err := unit.Listings().Search(execCtx, domainlistings.SearchParams{
		Host: domainlistings.HostID(q.HostID),
	})
	if err != nil {
		return dto.ListingCollection{}, err
	}

	items := make([]dto.Listing, 0, len(result.Items))
	for _, listing := range result.Items {
		reviews, err := unit.Reviews().ListByListing(execCtx, listing.ID)
		if err != nil {
			return dto.ListingCollection{}, err
		}
		items = append(items, dto.MapListingWithAggregate(listing, domainreviews.ComputeAggregate(reviews)))
	}

	return dto.ListingCollection{Items: items, Total: result.Total}, nil
}

type HostEarningsQuery struct {
	Actor  domainaccess.Actor
	HostID string
}

func (q HostEarningsQuery) Key() string { return hostEarningsKey }

type HostEarnings struct {
	BookingCount int          `json:"booking_count"`
	Total        dto.MoneyDTO `json:"total"`
}

type HostEarningsHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

// Handle sums the snapshotted totals of confirmed and completed bookings
// across the host's listings.
func (h *HostEarningsHandler) Handle(ctx context.Context, q HostEarningsQuery) (HostEarnings, error) {
	if err := h.Policy.CanManageListing(q.Actor, domainlistings.HostID(q.HostID)); err != nil {
		return HostEarnings{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return HostEarnings{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	owned, err := unit.Listings().Search(execCtx, domainlistings.SearchParams{
		Host: domainlistings.HostID(q.HostID),
	})
	if err != nil {
		return HostEarnings{}, err
	}

	count := 0
	total := money.Money{}
	for _, listing := range owned.Items {
		bookings, err := unit.Booking().ListByListing(execCtx, listing.ID)
		if err != nil {
			return HostEarnings{}, err
		}
		for _, booking := range bookings {
			if booking.Status != domainbooking.StatusConfirmed && booking.Status != domainbooking.StatusCompleted {
				continue
			}
			if total.Currency == "" {
				total = booking.Price.Total
				count++
				continue
			}
			sum, err := total.Add(booking.Price.Total)
			if err != nil {
				return HostEarnings{}, err
			}
			total = sum
			count++
		}
	}

	return HostEarnings{BookingCount: count, Total: dto.MapMoney(total)}, nil
}

var _ queries.Handler[ListHostListingsQuery, dto.ListingCollection] = (*ListHostListingsHandler)(nil)
var _ queries.Handler[HostEarningsQuery, HostEarnings] = (*HostEarningsHandler)(nil)
