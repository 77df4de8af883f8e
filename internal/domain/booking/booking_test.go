package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
)

func newPendingBooking(t *testing.T) *Booking {
	t.Helper()
	checkIn := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	dr, err := daterange.New(checkIn, checkIn.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	b, err := NewBooking(CreateParams{
		ID:        "bk-1",
		ListingID: "ls-1",
		GuestID:   "guest-1",
		Range:     dr,
		CreatedAt: checkIn.AddDate(0, -1, 0),
	})
	if err != nil {
		t.Fatalf("NewBooking: %v", err)
	}
	return b
}

func TestNewBookingStartsPending(t *testing.T) {
	b := newPendingBooking(t)
	if b.Status != StatusPending {
		t.Fatalf("Status = %s, want PENDING", b.Status)
	}
	recorded := b.PendingEvents()
	if len(recorded) != 1 {
		t.Fatalf("recorded %d events, want 1", len(recorded))
	}
	if _, ok := recorded[0].(BookingRequested); !ok {
		t.Fatalf("recorded %T, want BookingRequested", recorded[0])
	}
}

func TestNewBookingRequiresGuest(t *testing.T) {
	checkIn := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	dr, _ := daterange.New(checkIn, checkIn.AddDate(0, 0, 1))
	if _, err := NewBooking(CreateParams{ID: "bk-1", ListingID: "ls-1", Range: dr}); !errors.Is(err, ErrGuestRequired) {
		t.Fatalf("err = %v, want ErrGuestRequired", err)
	}
}

func TestApplyTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		event   Event
		want    Status
		wantErr bool
	}{
		{"pending approve", StatusPending, EventApprove, StatusConfirmed, false},
		{"pending reject", StatusPending, EventReject, StatusRejected, false},
		{"pending cancel", StatusPending, EventCancel, StatusCancelled, false},
		{"confirmed cancel", StatusConfirmed, EventCancel, StatusCancelled, false},
		{"confirmed complete", StatusConfirmed, EventComplete, StatusCompleted, false},
		{"pending complete", StatusPending, EventComplete, "", true},
		{"confirmed approve", StatusConfirmed, EventApprove, "", true},
		{"cancelled approve", StatusCancelled, EventApprove, "", true},
		{"completed cancel", StatusCompleted, EventCancel, "", true},
		{"rejected cancel", StatusRejected, EventCancel, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newPendingBooking(t)
			b.Status = tt.from
			b.ClearEvents()
			err := b.Apply(tt.event, time.Now())
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("err = %v, want ErrInvalidTransition", err)
				}
				if b.Status != tt.from {
					t.Fatalf("failed transition changed status to %s", b.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if b.Status != tt.want {
				t.Fatalf("Status = %s, want %s", b.Status, tt.want)
			}
			if len(b.PendingEvents()) != 1 {
				t.Fatalf("recorded %d events, want 1", len(b.PendingEvents()))
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		raw     string
		want    Event
		wantErr bool
	}{
		{"approve", EventApprove, false},
		{" APPROVE ", EventApprove, false},
		{"Cancel", EventCancel, false},
		{"reject", EventReject, false},
		{"complete", EventComplete, false},
		{"", "", true},
		{"archive", "", true},
		{"confirm", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEvent(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownEvent) {
				t.Fatalf("ParseEvent(%q) err = %v, want ErrUnknownEvent", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseEvent(%q) = %v, %v, want %v", tt.raw, got, err, tt.want)
		}
	}
}

func TestBlocking(t *testing.T) {
	blocking := map[Status]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
		StatusRejected:  false,
	}
	for status, want := range blocking {
		b := &Booking{Status: status}
		if got := b.Blocking(); got != want {
			t.Errorf("Blocking() in %s = %v, want %v", status, got, want)
		}
	}
}

func TestQualifiesForReview(t *testing.T) {
	qualifying := map[Status]bool{
		StatusPending:   false,
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: false,
		StatusRejected:  false,
	}
	for status, want := range qualifying {
		b := &Booking{Status: status}
		if got := b.QualifiesForReview(); got != want {
			t.Errorf("QualifiesForReview() in %s = %v, want %v", status, got, want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, status := range []Status{StatusCancelled, StatusCompleted, StatusRejected} {
		if b := (&Booking{Status: status}); !b.Terminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range []Status{StatusPending, StatusConfirmed} {
		if b := (&Booking{Status: status}); b.Terminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}
