package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	listingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/listings"
	reviewsapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
)

// ListingHandler serves the public catalog surface. None of these routes
// require a principal.
type ListingHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h ListingHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	query := listingapp.SearchCatalogQuery{
		Location: strings.TrimSpace(c.Query("location")),
		Limit:    parseIntWithDefault(c.Query("limit"), 24),
		Offset:   parseInt(c.Query("offset")),
	}
	result, err := queries.Ask[listingapp.SearchCatalogQuery, dto.ListingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "catalog search", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Overview(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	query := listingapp.GetListingOverviewQuery{ListingID: listingID}
	result, err := queries.Ask[listingapp.GetListingOverviewQuery, dto.ListingOverview](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "listing overview", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Reviews(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	query := reviewsapp.ListListingReviewsQuery{ListingID: listingID}
	result, err := queries.Ask[reviewsapp.ListListingReviewsQuery, dto.ReviewCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "listing reviews", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ListingHTTP = ListingHandler{}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseIntWithDefault(raw string, fallback int) int {
	value := parseInt(raw)
	if value == 0 {
		return fallback
	}
	return value
}
