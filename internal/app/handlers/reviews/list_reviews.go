package reviews

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

const (
	listListingReviewsKey = "reviews.listing.list"
	listAuthorReviewsKey  = "reviews.author.list"
	listingAggregateKey   = "reviews.listing.aggregate"
)

type ListListingReviewsQuery struct {
	ListingID string
}

func (q ListListingReviewsQuery) Key() string { return listListingReviewsKey }

type ListListingReviewsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListListingReviewsHandler) Handle(ctx context.Context, q ListListingReviewsQuery) (dto.ReviewCollection, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	reviews, err := unit.Reviews().ListByListing(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	items := make([]dto.Review, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, dto.MapReview(review))
	}
	return dto.ReviewCollection{Items: items}, nil
}

// ListAuthorReviewsQuery backs the guest's "my reviews" page.
type ListAuthorReviewsQuery struct {
	AuthorID string
}

func (q ListAuthorReviewsQuery) Key() string { return listAuthorReviewsKey }

type ListAuthorReviewsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListAuthorReviewsHandler) Handle(ctx context.Context, q ListAuthorReviewsQuery) (dto.ReviewCollection, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	reviews, err := unit.Reviews().ListByAuthor(execCtx, q.AuthorID)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	items := make([]dto.Review, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, dto.MapReview(review))
	}
	return dto.ReviewCollection{Items: items}, nil
}

type GetListingAggregateQuery struct {
	ListingID string
}

func (q GetListingAggregateQuery) Key() string { return listingAggregateKey }

type GetListingAggregateHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetListingAggregateHandler) Handle(ctx context.Context, q GetListingAggregateQuery) (dto.ListingAggregate, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingAggregate{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	reviews, err := unit.Reviews().ListByListing(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ListingAggregate{}, err
	}
	return dto.MapListingAggregate(q.ListingID, domainreviews.ComputeAggregate(reviews)), nil
}

var _ queries.Handler[ListListingReviewsQuery, dto.ReviewCollection] = (*ListListingReviewsHandler)(nil)
var _ queries.Handler[ListAuthorReviewsQuery, dto.ReviewCollection] = (*ListAuthorReviewsHandler)(nil)
var _ queries.Handler[GetListingAggregateQuery, dto.ListingAggregate] = (*GetListingAggregateHandler)(nil)
