package listings

import (
	"context"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
)

const searchCatalogKey = "listings.catalog"

// SearchCatalogQuery filters the public catalog. Only active listings are
// ever returned; no actor is needed.
type SearchCatalogQuery struct {
	Location string
	Limit    int
	Offset   int
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

type SearchCatalogHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.ListingCollection, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	result, err := unit.Listings().Search(execCtx, domainlistings.SearchParams{
		OnlyActive: true,
		Location:   q.Location,
		Limit:      q.Limit,
		Offset:     q.Offset,
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

var _ queries.Handler[SearchCatalogQuery, dto.ListingCollection] = (*SearchCatalogHandler)(nil)
