package access

import (
	"errors"
	"testing"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

func guest(id string) Actor {
	return Actor{ID: id, Role: user.RoleGuest, Status: user.StatusActive}
}

func host(id string) Actor {
	return Actor{ID: id, Role: user.RoleHost, Status: user.StatusActive}
}

func admin() Actor {
	return Actor{ID: "admin-1", Role: user.RoleAdmin, Status: user.StatusActive}
}

func suspended(a Actor) Actor {
	a.Status = user.StatusSuspended
	return a
}

func TestCanCreateBooking(t *testing.T) {
	policy := Policy{}
	tests := []struct {
		name    string
		actor   Actor
		guestID string
		allowed bool
	}{
		{"guest for self", guest("g1"), "g1", true},
		{"guest for someone else", guest("g1"), "g2", false},
		{"host cannot book", host("h1"), "h1", false},
		{"admin on behalf", admin(), "g1", true},
		{"suspended guest", suspended(guest("g1")), "g1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanCreateBooking(tt.actor, tt.guestID)
			if tt.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	policy := Policy{}
	owner := listings.HostID("h1")
	pending := &booking.Booking{ID: "bk", GuestID: "g1", Status: booking.StatusPending}
	confirmed := &booking.Booking{ID: "bk", GuestID: "g1", Status: booking.StatusConfirmed}

	tests := []struct {
		name    string
		actor   Actor
		event   booking.Event
		booking *booking.Booking
		allowed bool
	}{
		{"owning host approves", host("h1"), booking.EventApprove, pending, true},
		{"owning host rejects", host("h1"), booking.EventReject, pending, true},
		{"other host approves", host("h2"), booking.EventApprove, pending, false},
		{"guest approves own booking", guest("g1"), booking.EventApprove, pending, false},
		{"guest cancels pending", guest("g1"), booking.EventCancel, pending, true},
		{"guest cancels confirmed", guest("g1"), booking.EventCancel, confirmed, false},
		{"other guest cancels", guest("g2"), booking.EventCancel, pending, false},
		{"admin cancels confirmed", admin(), booking.EventCancel, confirmed, true},
		{"guest completes", guest("g1"), booking.EventComplete, confirmed, false},
		{"host completes", host("h1"), booking.EventComplete, confirmed, false},
		{"admin completes", admin(), booking.EventComplete, confirmed, true},
		{"suspended host approves", suspended(host("h1")), booking.EventApprove, pending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanTransition(tt.actor, tt.event, tt.booking, owner)
			if tt.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestCanManageListing(t *testing.T) {
	policy := Policy{}
	owner := listings.HostID("h1")
	if err := policy.CanManageListing(host("h1"), owner); err != nil {
		t.Fatalf("owner should manage own listing: %v", err)
	}
	if err := policy.CanManageListing(host("h2"), owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign host err = %v, want ErrForbidden", err)
	}
	if err := policy.CanManageListing(admin(), owner); err != nil {
		t.Fatalf("admin should manage any listing: %v", err)
	}
	if err := policy.CanManageListing(guest("g1"), owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("guest err = %v, want ErrForbidden", err)
	}
}

func TestCanModerate(t *testing.T) {
	policy := Policy{}
	if err := policy.CanModerate(admin()); err != nil {
		t.Fatalf("admin should moderate: %v", err)
	}
	for _, actor := range []Actor{guest("g1"), host("h1"), suspended(admin())} {
		if err := policy.CanModerate(actor); !errors.Is(err, ErrForbidden) {
			t.Fatalf("actor %+v err = %v, want ErrForbidden", actor, err)
		}
	}
}

func TestCanReadBooking(t *testing.T) {
	policy := Policy{}
	owner := listings.HostID("h1")
	b := &booking.Booking{ID: "bk", GuestID: "g1", Status: booking.StatusConfirmed}

	if err := policy.CanReadBooking(guest("g1"), b, owner); err != nil {
		t.Fatalf("guest should read own booking: %v", err)
	}
	if err := policy.CanReadBooking(host("h1"), b, owner); err != nil {
		t.Fatalf("owning host should read booking: %v", err)
	}
	if err := policy.CanReadBooking(admin(), b, owner); err != nil {
		t.Fatalf("admin should read booking: %v", err)
	}
	if err := policy.CanReadBooking(guest("g2"), b, owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger err = %v, want ErrForbidden", err)
	}
	if err := policy.CanReadBooking(host("h2"), b, owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign host err = %v, want ErrForbidden", err)
	}
}

func TestSelfScopedCapabilities(t *testing.T) {
	policy := Policy{}
	if err := policy.CanToggleFavorite(guest("g1"), "g1"); err != nil {
		t.Fatalf("self toggle: %v", err)
	}
	if err := policy.CanToggleFavorite(guest("g1"), "g2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign toggle err = %v, want ErrForbidden", err)
	}
	if err := policy.CanSubmitReview(suspended(guest("g1")), "g1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("suspended review err = %v, want ErrForbidden", err)
	}
}

func TestActorFor(t *testing.T) {
	u := &user.User{ID: "u1", Role: user.RoleHost, Status: user.StatusActive}
	actor := ActorFor(u)
	if actor.ID != "u1" || actor.Role != user.RoleHost || actor.Status != user.StatusActive {
		t.Fatalf("ActorFor = %+v", actor)
	}
}
