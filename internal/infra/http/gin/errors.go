package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/booking"
	listingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

// statusForError maps domain and application sentinels onto HTTP status
// codes. Handlers share this table so the same failure always renders the
// same way regardless of which route surfaced it.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainlistings.ErrNotFound),
		errors.Is(err, domainreviews.ErrNotFound),
		errors.Is(err, domainuser.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainaccess.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainbooking.ErrInvalidTransition),
		errors.Is(err, domainavailability.ErrDateRangeUnavailable),
		errors.Is(err, domainlistings.ErrInvalidState),
		errors.Is(err, listingapp.ErrListingHasActiveStays),
		errors.Is(err, domainuser.ErrEmailAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, domainreviews.ErrNotEligible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrUnknownEvent),
		errors.Is(err, domainreviews.ErrInvalidRating),
		errors.Is(err, domainlistings.ErrTitleRequired),
		errors.Is(err, domainlistings.ErrLocationRequired),
		errors.Is(err, domainlistings.ErrNightlyRate),
		errors.Is(err, domainuser.ErrInvalidRole),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrNegativeAmount):
		return http.StatusBadRequest
	case errors.Is(err, bookingapp.ErrListingNotBookable):
		return http.StatusConflict
	case errors.Is(err, uow.ErrUnitOfWorkMissing):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *slog.Logger, scope string, err error) {
	status := statusForError(err)
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error(scope+" failed", "error", err, "path", c.FullPath())
	}
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
