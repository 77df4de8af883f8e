package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/events"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

var (
	ErrIDRequired       = errors.New("listings: id is required")
	ErrHostRequired     = errors.New("listings: host is required")
	ErrTitleRequired    = errors.New("listings: title is required")
	ErrLocationRequired = errors.New("listings: location is required")
	ErrNightlyRate      = errors.New("listings: nightly rate must be positive")
	ErrInvalidState     = errors.New("listings: invalid status transition")
	ErrNotFound         = errors.New("listings: not found")
)

type ListingID string
type HostID string

type Status string

const (
	// StatusPending marks listings awaiting admin approval.
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Listing struct {
	ID          ListingID
	Host        HostID
	Title       string
	Description string
	Location    string
	Amenities   []string
	NightlyRate money.Money
	Status      Status
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type SearchParams struct {
	Host       HostID
	Statuses   []Status
	OnlyActive bool
	Location   string
	Limit      int
	Offset     int
}

type SearchResult struct {
	Items []*Listing
	Total int
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id ListingID) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateParams struct {
	ID          ListingID
	Host        HostID
	Title       string
	Description string
	Location    string
	Amenities   []string
	NightlyRate money.Money
	Now         time.Time
}

// NewListing creates a listing in PENDING status; it stays invisible to
// guests until an admin approves it.
func NewListing(params CreateParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, ErrLocationRequired
	}
	if params.NightlyRate.Amount <= 0 || params.NightlyRate.Currency == "" {
		return nil, ErrNightlyRate
	}
	now := params.Now.UTC()
	listing := &Listing{
		ID:          params.ID,
		Host:        params.Host,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Location:    strings.TrimSpace(params.Location),
		Amenities:   append([]string(nil), params.Amenities...),
		NightlyRate: params.NightlyRate,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	listing.Record(ListingCreated{ListingID: listing.ID, HostID: listing.Host, At: now})
	return listing, nil
}

// Approve moves a pending or inactive listing to ACTIVE. Admin-gated at the
// policy layer.
func (l *Listing) Approve(now time.Time) error {
	if l.Status == StatusActive {
		return nil
	}
	l.Status = StatusActive
	l.UpdatedAt = now.UTC()
	l.Record(ListingActivated{ListingID: l.ID, HostID: l.Host, At: l.UpdatedAt})
	return nil
}

// Deactivate hides an active listing from the catalog.
func (l *Listing) Deactivate(now time.Time) error {
	if l.Status != StatusActive {
		return ErrInvalidState
	}
	l.Status = StatusInactive
	l.UpdatedAt = now.UTC()
	l.Record(ListingDeactivated{ListingID: l.ID, At: l.UpdatedAt})
	return nil
}

type UpdateParams struct {
	Title       string
	Description string
	Location    string
	Amenities   []string
	NightlyRate money.Money
	Now         time.Time
}

// UpdateDetails edits listing attributes. An active listing drops back to
// PENDING so the edit goes through admin review again.
func (l *Listing) UpdateDetails(params UpdateParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(params.Location) == "" {
		return ErrLocationRequired
	}
	if params.NightlyRate.Amount <= 0 || params.NightlyRate.Currency == "" {
		return ErrNightlyRate
	}
	now := params.Now.UTC()
	l.Title = strings.TrimSpace(params.Title)
	l.Description = strings.TrimSpace(params.Description)
	l.Location = strings.TrimSpace(params.Location)
	l.Amenities = append([]string(nil), params.Amenities...)
	l.NightlyRate = params.NightlyRate
	if l.Status == StatusActive {
		l.Status = StatusPending
	}
	l.UpdatedAt = now
	l.Record(ListingUpdated{ListingID: l.ID, At: now})
	return nil
}
