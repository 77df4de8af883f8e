package favorites

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

const listFavoritesKey = "favorites.list"

type ListFavoritesQuery struct {
	Actor   domainaccess.Actor
	GuestID string
}

func (q ListFavoritesQuery) Key() string { return listFavoritesKey }

type ListFavoritesHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
	Logger     *slog.Logger
}

func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) (dto.FavoriteCollection, error) {
	if err := h.Policy.CanToggleFavorite(q.Actor, q.GuestID); err != nil {
		return dto.FavoriteCollection{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.FavoriteCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	favorites, err := unit.Favorites().ListByGuest(execCtx, q.GuestID)
	if err != nil {
		return dto.FavoriteCollection{}, err
	}

	items := make([]dto.FavoriteSummary, 0, len(favorites))
	for _, favorite := range favorites {
		listing, err := unit.Listings().ByID(execCtx, favorite.ListingID)
		if err != nil {
			if errors.Is(err, domainlistings.ErrNotFound) {
				continue
			}
			if h.Logger != nil {
				h.Logger.Warn("favorited listing lookup failed", "listing_id", favorite.ListingID, "error", err)
			}
			continue
		}
		items = append(items, dto.MapFavoriteSummary(favorite, listing))
	}

	return dto.FavoriteCollection{Items: items}, nil
}

var _ queries.Handler[ListFavoritesQuery, dto.FavoriteCollection] = (*ListFavoritesHandler)(nil)
