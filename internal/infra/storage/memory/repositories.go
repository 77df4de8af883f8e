package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainreviews "github.com/Grace-nduta/Airbnb-Platform/internal/domain/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
)

// ListingRepository is the in-memory listing store used in dev and tests.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]*domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{items: make(map[domainlistings.ListingID]*domainlistings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrNotFound
	}
	return cloneListing(listing), nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing.Version++
	r.items[listing.ID] = cloneListing(listing)
	return nil
}

// cloneListing detaches the stored state from the caller's aggregate so
// mutations on a loaded listing only land in the store through Save.
// Pending events stay with the in-flight copy; the store never replays them.
func cloneListing(listing *domainlistings.Listing) *domainlistings.Listing {
	out := *listing
	out.Amenities = append([]string(nil), listing.Amenities...)
	out.ClearEvents()
	return &out
}

func (r *ListingRepository) Delete(ctx context.Context, id domainlistings.ListingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainlistings.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*domainlistings.Listing, 0, len(r.items))
	for _, listing := range r.items {
		if params.OnlyActive && listing.Status != domainlistings.StatusActive {
			continue
		}
		if params.Host != "" && listing.Host != params.Host {
			continue
		}
		if len(params.Statuses) > 0 && !statusIncluded(listing.Status, params.Statuses) {
			continue
		}
		if params.Location != "" && !strings.Contains(strings.ToLower(listing.Location), strings.ToLower(params.Location)) {
			continue
		}
		matches = append(matches, cloneListing(listing))
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if params.Offset > 0 {
		if params.Offset >= len(matches) {
			matches = nil
		} else {
			matches = matches[params.Offset:]
		}
	}
	if params.Limit > 0 && len(matches) > params.Limit {
		matches = matches[:params.Limit]
	}

	return domainlistings.SearchResult{Items: matches, Total: total}, nil
}

func statusIncluded(status domainlistings.Status, wanted []domainlistings.Status) bool {
	for _, s := range wanted {
		if s == status {
			return true
		}
	}
	return false
}

// BookingRepository stores bookings keyed by ID.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return cloneBooking(booking), nil
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.Version++
	r.items[booking.ID] = cloneBooking(booking)
	return nil
}

func cloneBooking(booking *domainbooking.Booking) *domainbooking.Booking {
	out := *booking
	out.ClearEvents()
	return &out
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool { return b.GuestID == guestID })
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool { return b.ListingID == listingID })
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool { return b.Status == status })
}

func (r *BookingRepository) list(match func(*domainbooking.Booking) bool) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, booking := range r.items {
		if match(booking) {
			out = append(out, cloneBooking(booking))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// AvailabilityRepository keeps one calendar per listing. The repository
// mutex spans the overlap check and the insert, which is what makes Reserve
// atomic: two racing reservations for colliding ranges serialize here and
// the loser gets ErrDateRangeUnavailable.
type AvailabilityRepository struct {
	mu        sync.Mutex
	calendars map[domainlistings.ListingID]*domainavailability.Calendar
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{calendars: make(map[domainlistings.ListingID]*domainavailability.Calendar)}
}

func (r *AvailabilityRepository) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calendar(id), nil
}

func (r *AvailabilityRepository) Reserve(ctx context.Context, id domainlistings.ListingID, dr daterange.DateRange, reference string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cal := r.calendar(id)
	err := cal.Reserve(dr, reference, now)
	cal.ClearEvents()
	if err != nil {
		return err
	}
	cal.Version++
	return nil
}

func (r *AvailabilityRepository) Release(ctx context.Context, id domainlistings.ListingID, reference string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cal := r.calendar(id)
	err := cal.Release(reference, now)
	cal.ClearEvents()
	if err != nil {
		return err
	}
	cal.Version++
	return nil
}

func (r *AvailabilityRepository) calendar(id domainlistings.ListingID) *domainavailability.Calendar {
	cal, ok := r.calendars[id]
	if !ok {
		cal = domainavailability.NewCalendar(id)
		r.calendars[id] = cal
	}
	return cal
}

// ReviewRepository stores reviews keyed by ID.
type ReviewRepository struct {
	mu    sync.RWMutex
	items map[domainreviews.ReviewID]*domainreviews.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[domainreviews.ReviewID]*domainreviews.Review)}
}

func (r *ReviewRepository) ByID(ctx context.Context, id domainreviews.ReviewID) (*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.items[id]
	if !ok {
		return nil, domainreviews.ErrNotFound
	}
	return cloneReview(review), nil
}

func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[review.ID] = cloneReview(review)
	return nil
}

func cloneReview(review *domainreviews.Review) *domainreviews.Review {
	out := *review
	out.ClearEvents()
	return &out
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainreviews.Review, error) {
	return r.list(func(rv *domainreviews.Review) bool { return rv.ListingID == listingID })
}

func (r *ReviewRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domainreviews.Review, error) {
	return r.list(func(rv *domainreviews.Review) bool { return rv.AuthorID == authorID })
}

func (r *ReviewRepository) list(match func(*domainreviews.Review) bool) ([]*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreviews.Review, 0)
	for _, review := range r.items {
		if match(review) {
			out = append(out, cloneReview(review))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// FavoriteRepository keeps (guest, listing) membership. A single mutex
// serializes toggles so concurrent flips of the same pair resolve to a
// consistent final state instead of duplicate rows.
type FavoriteRepository struct {
	mu    sync.Mutex
	pairs map[string]map[domainlistings.ListingID]domainfavorites.Favorite
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{pairs: make(map[string]map[domainlistings.ListingID]domainfavorites.Favorite)}
}

func (r *FavoriteRepository) Toggle(ctx context.Context, guestID string, listingID domainlistings.ListingID, now time.Time) (bool, error) {
	if guestID == "" {
		return false, domainfavorites.ErrGuestRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byListing, ok := r.pairs[guestID]
	if !ok {
		byListing = make(map[domainlistings.ListingID]domainfavorites.Favorite)
		r.pairs[guestID] = byListing
	}
	if _, exists := byListing[listingID]; exists {
		delete(byListing, listingID)
		return false, nil
	}
	byListing[listingID] = domainfavorites.Favorite{
		GuestID:   guestID,
		ListingID: listingID,
		CreatedAt: now.UTC(),
	}
	return true, nil
}

func (r *FavoriteRepository) IsFavorited(ctx context.Context, guestID string, listingID domainlistings.ListingID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pairs[guestID][listingID]
	return ok, nil
}

func (r *FavoriteRepository) ListByGuest(ctx context.Context, guestID string) ([]domainfavorites.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domainfavorites.Favorite, 0, len(r.pairs[guestID]))
	for _, favorite := range r.pairs[guestID] {
		out = append(out, favorite)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FavoriteRepository) RemoveByListing(ctx context.Context, listingID domainlistings.ListingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byListing := range r.pairs {
		delete(byListing, listingID)
	}
	return nil
}

var (
	_ domainlistings.Repository     = (*ListingRepository)(nil)
	_ domainbooking.Repository      = (*BookingRepository)(nil)
	_ domainavailability.Repository = (*AvailabilityRepository)(nil)
	_ domainreviews.Repository      = (*ReviewRepository)(nil)
	_ domainfavorites.Repository    = (*FavoriteRepository)(nil)
)
