package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	bookingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/booking"
	favoritesapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/favorites"
	reviewsapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
)

// MeHandler serves the signed-in user's own collections: their bookings and
// their saved listings.
type MeHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

func (h MeHandler) ListBookings(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := bookingapp.ListGuestBookingsQuery{Actor: user.actor(), GuestID: user.ID}
	result, err := queries.Ask[bookingapp.ListGuestBookingsQuery, dto.GuestBookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "me bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h MeHandler) ListFavorites(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := favoritesapp.ListFavoritesQuery{Actor: user.actor(), GuestID: user.ID}
	result, err := queries.Ask[favoritesapp.ListFavoritesQuery, dto.FavoriteCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "me favorites", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h MeHandler) ListReviews(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := reviewsapp.ListAuthorReviewsQuery{AuthorID: user.ID}
	result, err := queries.Ask[reviewsapp.ListAuthorReviewsQuery, dto.ReviewCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "me reviews", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleFavorite flips membership for one listing and reports the state the
// toggle settled on.
func (h MeHandler) ToggleFavorite(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	cmd := favoritesapp.ToggleFavoriteCommand{
		Actor:     user.actor(),
		GuestID:   user.ID,
		ListingID: listingID,
	}
	result, err := commands.Dispatch[favoritesapp.ToggleFavoriteCommand, dto.FavoriteToggle](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "favorite toggle", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ MeHTTP = MeHandler{}
