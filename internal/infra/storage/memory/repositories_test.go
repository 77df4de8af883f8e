package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

func testRange(t *testing.T, d1, d2 int) daterange.DateRange {
	t.Helper()
	base := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	dr, err := daterange.New(base.AddDate(0, 0, d1), base.AddDate(0, 0, d2))
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func TestReserveIsAtomicUnderContention(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	dr := testRange(t, 0, 4)

	const racers = 32
	var wg sync.WaitGroup
	results := make(chan error, racers)
	start := make(chan struct{})
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results <- repo.Reserve(ctx, "ls-1", dr, string(rune('a'+i)), time.Now())
		}(i)
	}
	close(start)
	wg.Wait()
	close(results)

	won, lost := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domainavailability.ErrDateRangeUnavailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("winners = %d, want exactly 1 (losers %d)", won, lost)
	}
}

func TestReserveAndReleaseRoundTrip(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	dr := testRange(t, 0, 3)

	if err := repo.Reserve(ctx, "ls-1", dr, "bk-1", time.Now()); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := repo.Reserve(ctx, "ls-1", testRange(t, 1, 2), "bk-2", time.Now()); !errors.Is(err, domainavailability.ErrDateRangeUnavailable) {
		t.Fatalf("overlap err = %v, want ErrDateRangeUnavailable", err)
	}
	// Disjoint listing is unaffected.
	if err := repo.Reserve(ctx, "ls-2", dr, "bk-3", time.Now()); err != nil {
		t.Fatalf("other listing: %v", err)
	}

	if err := repo.Release(ctx, "ls-1", "bk-1", time.Now()); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := repo.Reserve(ctx, "ls-1", testRange(t, 1, 2), "bk-2", time.Now()); err != nil {
		t.Fatalf("re-reserve after release: %v", err)
	}

	if err := repo.Release(ctx, "ls-1", "missing", time.Now()); !errors.Is(err, domainavailability.ErrBlockNotFound) {
		t.Fatalf("missing block err = %v, want ErrBlockNotFound", err)
	}
}

func TestFavoriteToggleConcurrentFlips(t *testing.T) {
	repo := NewFavoriteRepository()
	ctx := context.Background()

	const flips = 50
	var wg sync.WaitGroup
	for i := 0; i < flips; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Toggle(ctx, "g1", "ls-1", time.Now()); err != nil {
				t.Errorf("Toggle: %v", err)
			}
		}()
	}
	wg.Wait()

	// An even number of flips always lands on "not favorited".
	favorited, err := repo.IsFavorited(ctx, "g1", "ls-1")
	if err != nil {
		t.Fatalf("IsFavorited: %v", err)
	}
	if favorited {
		t.Fatal("after an even number of toggles the pair should not be favorited")
	}
}

func TestListingSearchFilters(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rate, _ := money.New(5000, "USD")

	seed := []struct {
		id       string
		host     string
		location string
		active   bool
	}{
		{"ls-1", "h1", "Nairobi", true},
		{"ls-2", "h1", "Mombasa", false},
		{"ls-3", "h2", "Nairobi West", true},
	}
	for i, s := range seed {
		listing, err := domainlistings.NewListing(domainlistings.CreateParams{
			ID:          domainlistings.ListingID(s.id),
			Host:        domainlistings.HostID(s.host),
			Title:       "Listing " + s.id,
			Location:    s.location,
			NightlyRate: rate,
			Now:         now.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("NewListing: %v", err)
		}
		if s.active {
			if err := listing.Approve(now); err != nil {
				t.Fatalf("Approve: %v", err)
			}
		}
		listing.ClearEvents()
		if err := repo.Save(ctx, listing); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	active, err := repo.Search(ctx, domainlistings.SearchParams{OnlyActive: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if active.Total != 2 {
		t.Fatalf("active total = %d, want 2", active.Total)
	}

	byHost, err := repo.Search(ctx, domainlistings.SearchParams{Host: "h1"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if byHost.Total != 2 {
		t.Fatalf("host total = %d, want 2", byHost.Total)
	}

	nairobi, err := repo.Search(ctx, domainlistings.SearchParams{Location: "nairobi", OnlyActive: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if nairobi.Total != 2 {
		t.Fatalf("location total = %d, want 2 (substring match)", nairobi.Total)
	}

	paged, err := repo.Search(ctx, domainlistings.SearchParams{Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if paged.Total != 3 || len(paged.Items) != 1 {
		t.Fatalf("paged = total %d items %d, want total 3 items 1", paged.Total, len(paged.Items))
	}
}

func TestListingByIDReturnsDetachedCopy(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	rate, _ := money.New(5000, "USD")
	listing, err := domainlistings.NewListing(domainlistings.CreateParams{
		ID:          "ls-1",
		Host:        "h1",
		Title:       "Loft",
		Location:    "Nairobi",
		Amenities:   []string{"wifi"},
		NightlyRate: rate,
		Now:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := repo.Save(ctx, listing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Abandoned mutations on a loaded aggregate must not reach the store.
	loaded, err := repo.ByID(ctx, "ls-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	loaded.Title = "Penthouse"
	loaded.Status = domainlistings.StatusInactive
	loaded.Amenities[0] = "pool"

	stored, err := repo.ByID(ctx, "ls-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Title != "Loft" {
		t.Fatalf("Title = %q, want unchanged %q", stored.Title, "Loft")
	}
	if stored.Status != domainlistings.StatusPending {
		t.Fatalf("Status = %s, want unchanged PENDING", stored.Status)
	}
	if stored.Amenities[0] != "wifi" {
		t.Fatalf("Amenities[0] = %q, want unchanged %q", stored.Amenities[0], "wifi")
	}
	// Events recorded by the construction stay with the caller's copy.
	if got := len(stored.PendingEvents()); got != 0 {
		t.Fatalf("stored pending events = %d, want 0", got)
	}
}

func TestBookingByIDReturnsDetachedCopy(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	bk, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        "bk-1",
		ListingID: "ls-1",
		GuestID:   "g1",
		Range:     testRange(t, 0, 3),
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewBooking: %v", err)
	}
	if err := repo.Save(ctx, bk); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.ByID(ctx, "bk-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	loaded.Status = domainbooking.StatusCancelled

	stored, err := repo.ByID(ctx, "bk-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Status != domainbooking.StatusPending {
		t.Fatalf("Status = %s, want unchanged PENDING", stored.Status)
	}
	if got := len(stored.PendingEvents()); got != 0 {
		t.Fatalf("stored pending events = %d, want 0", got)
	}
}
