package listings

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
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

const (
	createListingKey     = "host.listings.create"
	updateListingKey     = "host.listings.update"
	deactivateListingKey = "host.listings.deactivate"
)

// ListingPayload carries the host-editable listing attributes.
type ListingPayload struct {
	Title            string
	Description      string
	Location         string
	Amenities        []string
	NightlyRateCents int64
	Currency         string
}

type CreateListingCommand struct {
	Actor   domainaccess.Actor
	HostID  string
	Payload ListingPayload
}

func (c CreateListingCommand) Key() string { return createListingKey }

type CreateListingHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *CreateListingHandler) Handle(ctx context.Context, cmd CreateListingCommand) (*dto.Listing, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanManageListing(cmd.Actor, domainlistings.HostID(cmd.HostID)); err != nil {
		return nil, err
	}

	rate, err := money.New(cmd.Payload.NightlyRateCents, cmd.Payload.Currency)
	if err != nil {
		return nil, err
	}
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:          domainlistings.ListingID(uuid.NewString()),
		Host:        domainlistings.HostID(cmd.HostID),
		Title:       cmd.Payload.Title,
		Description: cmd.Payload.Description,
		Location:    cmd.Payload.Location,
		Amenities:   cmd.Payload.Amenities,
		NightlyRate: rate,
		Now:         time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := drainListingEvents(ctx, h.Outbox, h.Encoder, listing); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("listing created", "listing_id", listing.ID, "host_id", cmd.HostID)
	}

	result := dto.MapListing(listing)
	return &result, nil
}

type UpdateListingCommand struct {
	Actor     domainaccess.Actor
	ListingID string
	Payload   ListingPayload
}

func (c UpdateListingCommand) Key() string { return updateListingKey }

type UpdateListingHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *UpdateListingHandler) Handle(ctx context.Context, cmd UpdateListingCommand) (*dto.Listing, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if err := h.Policy.CanManageListing(cmd.Actor, listing.Host); err != nil {
		return nil, err
	}

	rate, err := money.New(cmd.Payload.NightlyRateCents, cmd.Payload.Currency)
	if err != nil {
		return nil, err
	}
	if err := listing.UpdateDetails(domainlistings.UpdateParams{
		Title:       cmd.Payload.Title,
		Description: cmd.Payload.Description,
		Location:    cmd.Payload.Location,
		Amenities:   cmd.Payload.Amenities,
		NightlyRate: rate,
		Now:         time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := drainListingEvents(ctx, h.Outbox, h.Encoder, listing); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("listing updated", "listing_id", listing.ID, "status", listing.Status)
	}

	result := dto.MapListing(listing)
	return &result, nil
}

type DeactivateListingCommand struct {
	Actor     domainaccess.Actor
	ListingID string
}

func (c DeactivateListingCommand) Key() string { return deactivateListingKey }

type DeactivateListingHandler struct {
	Policy  domainaccess.Policy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

func (h *DeactivateListingHandler) Handle(ctx context.Context, cmd DeactivateListingCommand) (*dto.Listing, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if err := h.Policy.CanManageListing(cmd.Actor, listing.Host); err != nil {
		return nil, err
	}
	if err := listing.Deactivate(time.Now()); err != nil {
		return nil, err
	}

	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := drainListingEvents(ctx, h.Outbox, h.Encoder, listing); err != nil {
		return nil, err
	}

	result := dto.MapListing(listing)
	return &result, nil
}

func drainListingEvents(ctx context.Context, box outbox.Outbox, encoder outbox.EventEncoder, listing *domainlistings.Listing) error {
	recorded := listing.PendingEvents()
	listing.ClearEvents()
	return outbox.RecordDomainEvents(ctx, box, encoder, recorded)
}

var _ commands.Handler[CreateListingCommand, *dto.Listing] = (*CreateListingHandler)(nil)
var _ commands.Handler[UpdateListingCommand, *dto.Listing] = (*UpdateListingHandler)(nil)
var _ commands.Handler[DeactivateListingCommand, *dto.Listing] = (*DeactivateListingHandler)(nil)
