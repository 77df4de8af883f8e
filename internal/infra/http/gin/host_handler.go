package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	bookingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/booking"
	listingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
)

type HostHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type hostListingRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	Amenities        []string `json:"amenities"`
	NightlyRateCents int64    `json:"nightly_rate_cents"`
	Currency         string   `json:"currency"`
}

func (r hostListingRequest) payload() listingapp.ListingPayload {
	return listingapp.ListingPayload{
		Title:            strings.TrimSpace(r.Title),
		Description:      strings.TrimSpace(r.Description),
		Location:         strings.TrimSpace(r.Location),
		Amenities:        cleanStrings(r.Amenities),
		NightlyRateCents: r.NightlyRateCents,
		Currency:         strings.TrimSpace(r.Currency),
	}
}

func (h HostHandler) ListListings(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := listingapp.ListHostListingsQuery{Actor: host.actor(), HostID: host.ID}
	result, err := queries.Ask[listingapp.ListHostListingsQuery, dto.ListingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "host listings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostHandler) CreateListing(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req hostListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := listingapp.CreateListingCommand{
		Actor:   host.actor(),
		HostID:  host.ID,
		Payload: req.payload(),
	}
	result, err := commands.Dispatch[listingapp.CreateListingCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "listing create", err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/host/listings/%s", result.ID))
	c.JSON(http.StatusCreated, result)
}

func (h HostHandler) UpdateListing(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req hostListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := listingapp.UpdateListingCommand{
		Actor:     host.actor(),
		ListingID: c.Param("id"),
		Payload:   req.payload(),
	}
	result, err := commands.Dispatch[listingapp.UpdateListingCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "listing update", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostHandler) DeactivateListing(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := listingapp.DeactivateListingCommand{
		Actor:     host.actor(),
		ListingID: c.Param("id"),
	}
	result, err := commands.Dispatch[listingapp.DeactivateListingCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "listing deactivate", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostHandler) ListBookings(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := bookingapp.ListHostBookingsQuery{
		Actor:  host.actor(),
		HostID: host.ID,
		Status: strings.TrimSpace(c.Query("status")),
	}
	result, err := queries.Ask[bookingapp.ListHostBookingsQuery, dto.HostBookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "host bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostHandler) Earnings(c *gin.Context) {
	host, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := listingapp.HostEarningsQuery{Actor: host.actor(), HostID: host.ID}
	result, err := queries.Ask[listingapp.HostEarningsQuery, listingapp.HostEarnings](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "host earnings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func cleanStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var _ HostHTTP = HostHandler{}
