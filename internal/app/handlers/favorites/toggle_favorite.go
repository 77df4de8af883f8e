package favorites

import (
	"context"
	"log/slog"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

const toggleFavoriteKey = "favorites.toggle"

// ToggleFavoriteCommand flips the (guest, listing) pair: absent becomes
// present, present becomes absent. The repository serializes concurrent
// toggles on the same pair.
type ToggleFavoriteCommand struct {
	Actor     domainaccess.Actor
	GuestID   string
	ListingID string
}

func (c ToggleFavoriteCommand) Key() string { return toggleFavoriteKey }

type ToggleFavoriteHandler struct {
	Policy domainaccess.Policy
	Logger *slog.Logger
}

func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (dto.FavoriteToggle, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.FavoriteToggle{}, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanToggleFavorite(cmd.Actor, cmd.GuestID); err != nil {
		return dto.FavoriteToggle{}, err
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return dto.FavoriteToggle{}, err
	}

	favorited, err := unit.Favorites().Toggle(ctx, cmd.GuestID, listing.ID, time.Now())
	if err != nil {
		return dto.FavoriteToggle{}, err
	}

	if h.Logger != nil {
		h.Logger.Debug("favorite toggled", "guest_id", cmd.GuestID, "listing_id", listing.ID, "favorited", favorited)
	}

	return dto.FavoriteToggle{ListingID: string(listing.ID), IsFavorited: favorited}, nil
}

var _ commands.Handler[ToggleFavoriteCommand, dto.FavoriteToggle] = (*ToggleFavoriteHandler)(nil)
