package reviews

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
)

const submitReviewKey = "reviews.submit"

// SubmitReviewCommand creates a review for a listing the author has stayed at.
type SubmitReviewCommand struct {
	Actor     domainaccess.Actor
	ListingID string
	AuthorID  string
	Rating    int
	Comment   string
	Now       time.Time
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

type SubmitReviewHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (dto.Review, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.Review{}, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanSubmitReview(cmd.Actor, cmd.AuthorID); err != nil {
		return dto.Review{}, err
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return dto.Review{}, err
	}

	// Eligibility: at least one confirmed or completed stay on this listing.
	stays, err := unit.Booking().ListByGuest(ctx, cmd.AuthorID)
	if err != nil {
		return dto.Review{}, err
	}
	eligible := false
	for _, booking := range stays {
		if booking.ListingID == listing.ID && booking.QualifiesForReview() {
			eligible = true
			break
		}
	}
	if !eligible {
		return dto.Review{}, domainreviews.ErrNotEligible
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}
	review, err := domainreviews.Submit(domainreviews.SubmitParams{
		ID:        domainreviews.ReviewID(uuid.NewString()),
		ListingID: listing.ID,
		AuthorID:  cmd.AuthorID,
		Rating:    cmd.Rating,
		Comment:   cmd.Comment,
		CreatedAt: now,
	})
	if err != nil {
		return dto.Review{}, err
	}

	if err := unit.Reviews().Save(ctx, review); err != nil {
		return dto.Review{}, err
	}

	recorded := review.PendingEvents()
	review.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, recorded); err != nil {
		return dto.Review{}, err
	}

	if h.Logger != nil {
		h.Logger.Info("review submitted", "review_id", review.ID, "listing_id", listing.ID, "rating", review.Rating)
	}

	return dto.MapReview(review), nil
}

var _ commands.Handler[SubmitReviewCommand, dto.Review] = (*SubmitReviewHandler)(nil)
