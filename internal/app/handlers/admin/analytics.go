package admin

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

const marketplaceAnalyticsKey = "admin.analytics"

type MarketplaceAnalyticsQuery struct {
	Actor domainaccess.Actor
}

func (q MarketplaceAnalyticsQuery) Key() string { return marketplaceAnalyticsKey }

type MarketplaceAnalytics struct {
	Bookings       map[string]int `json:"bookings"`
	Revenue        dto.MoneyDTO   `json:"revenue"`
	ActiveListings int            `json:"active_listings"`
	Users          int            `json:"users"`
}

type MarketplaceAnalyticsHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

// Handle rolls up marketplace totals. Revenue counts the snapshotted totals
// of confirmed and completed bookings only.
func (h *MarketplaceAnalyticsHandler) Handle(ctx context.Context, q MarketplaceAnalyticsQuery) (MarketplaceAnalytics, error) {
	if err := h.Policy.CanModerate(q.Actor); err != nil {
		return MarketplaceAnalytics{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return MarketplaceAnalytics{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	statuses := []domainbooking.Status{
		domainbooking.StatusPending,
		domainbooking.StatusConfirmed,
		domainbooking.StatusCancelled,
		domainbooking.StatusCompleted,
		domainbooking.StatusRejected,
	}
	counts := make(map[string]int, len(statuses))
	revenue := money.Money{}
	for _, status := range statuses {
		bookings, err := unit.Booking().ListByStatus(execCtx, status)
		if err != nil {
			return MarketplaceAnalytics{}, err
		}
		counts[string(status)] = len(bookings)
		if status != domainbooking.StatusConfirmed && status != domainbooking.StatusCompleted {
			continue
		}
		for _, booking := range bookings {
			if revenue.Currency == "" {
				revenue = booking.Price.Total
				continue
			}
			sum, err := revenue.Add(booking.Price.Total)
			if err != nil {
				return MarketplaceAnalytics{}, err
			}
			revenue = sum
		}
	}

	active, err := unit.Listings().Search(execCtx, domainlistings.SearchParams{OnlyActive: true})
	if err != nil {
		return MarketplaceAnalytics{}, err
	}
	_, userTotal, err := unit.Users().List(execCtx, domainuser.ListParams{Limit: 1})
	if err != nil {
		return MarketplaceAnalytics{}, err
	}

	return MarketplaceAnalytics{
		Bookings:       counts,
		Revenue:        dto.MapMoney(revenue),
		ActiveListings: active.Total,
		Users:          userTotal,
	}, nil
}

var _ queries.Handler[MarketplaceAnalyticsQuery, MarketplaceAnalytics] = (*MarketplaceAnalyticsHandler)(nil)
