package listings

import (
	"context"
	"sort"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
)

const getOverviewKey = "listings.overview"

const recentReviewsLimit = 10

type GetListingOverviewQuery struct {
	ListingID string
}

func (q GetListingOverviewQuery) Key() string { return getOverviewKey }

type GetListingOverviewHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetListingOverviewHandler) Handle(ctx context.Context, q GetListingOverviewQuery) (dto.ListingOverview, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingOverview{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ListingOverview{}, err
	}

	reviews, err := unit.Reviews().ListByListing(execCtx, listing.ID)
	if err != nil {
		return dto.ListingOverview{}, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	recent := reviews
	if len(recent) > recentReviewsLimit {
		recent = recent[:recentReviewsLimit]
	}
	items := make([]dto.Review, 0, len(recent))
	for _, review := range recent {
		items = append(items, dto.MapReview(review))
	}

	return dto.ListingOverview{
		Listing: dto.MapListingWithAggregate(listing, domainreviews.ComputeAggregate(reviews)),
		Reviews: items,
	}, nil
}

var _ queries.Handler[GetListingOverviewQuery, dto.ListingOverview] = (*GetListingOverviewHandler)(nil)
