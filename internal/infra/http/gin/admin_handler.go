package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	adminapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/admin"
	listingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
)

type AdminHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type suspensionRequest struct {
	Suspended bool `json:"suspended"`
}

func (h AdminHandler) ListUsers(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := adminapp.ListUsersQuery{
		Actor:  admin.actor(),
		Query:  strings.TrimSpace(c.Query("query")),
		Limit:  parseIntWithDefault(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset")),
	}
	result, err := queries.Ask[adminapp.ListUsersQuery, dto.UserList](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "admin list users", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) ChangeUserRole(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := adminapp.ChangeUserRoleCommand{
		Actor:  admin.actor(),
		UserID: c.Param("id"),
		Role:   req.Role,
	}
	result, err := commands.Dispatch[adminapp.ChangeUserRoleCommand, *dto.UserProfile](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "admin change role", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) SetUserSuspension(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req suspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := adminapp.SetUserSuspensionCommand{
		Actor:     admin.actor(),
		UserID:    c.Param("id"),
		Suspended: req.Suspended,
	}
	result, err := commands.Dispatch[adminapp.SetUserSuspensionCommand, *dto.UserProfile](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "admin suspension", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) ApproveListing(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := listingapp.ApproveListingCommand{
		Actor:     admin.actor(),
		ListingID: c.Param("id"),
	}
	result, err := commands.Dispatch[listingapp.ApproveListingCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "admin approve listing", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type listingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetListingStatus flips a listing between ACTIVE and INACTIVE from the
// moderation console. Activation reuses the approval path, so a pending
// listing goes live the same way either endpoint is hit.
func (h AdminHandler) SetListingStatus(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req listingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		result *dto.Listing
		err    error
	)
	switch strings.ToUpper(strings.TrimSpace(req.Status)) {
	case "ACTIVE":
		result, err = commands.Dispatch[listingapp.ApproveListingCommand, *dto.Listing](
			c.Request.Context(), h.Commands, listingapp.ApproveListingCommand{
				Actor:     admin.actor(),
				ListingID: c.Param("id"),
			})
	case "INACTIVE":
		result, err = commands.Dispatch[listingapp.DeactivateListingCommand, *dto.Listing](
			c.Request.Context(), h.Commands, listingapp.DeactivateListingCommand{
				Actor:     admin.actor(),
				ListingID: c.Param("id"),
			})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be ACTIVE or INACTIVE"})
		return
	}
	if err != nil {
		respondError(c, h.Logger, "admin listing status", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteListing removes a listing from the platform. With ?force=true the
// pending bookings on it are cancelled first; without it the delete refuses
// while open stays exist.
func (h AdminHandler) DeleteListing(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	force, _ := strconv.ParseBool(c.Query("force"))
	cmd := listingapp.DeleteListingCommand{
		Actor:     admin.actor(),
		ListingID: c.Param("id"),
		Force:     force,
	}
	result, err := commands.Dispatch[listingapp.DeleteListingCommand, *listingapp.DeleteListingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, "admin delete listing", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) Analytics(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := adminapp.MarketplaceAnalyticsQuery{Actor: admin.actor()}
	result, err := queries.Ask[adminapp.MarketplaceAnalyticsQuery, adminapp.MarketplaceAnalytics](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, "admin analytics", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AdminHTTP = AdminHandler{}
