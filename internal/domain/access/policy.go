package access

import (
	"errors"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

var (
	ErrForbidden = errors.New("access: forbidden")
)

// Actor is the opaque identity context resolved once per request and passed
// into every core operation. Handlers never re-read credentials from the
// transport layer.
type Actor struct {
	ID     string
	Role   user.Role
	Status user.AccountStatus
}

func ActorFor(u *user.User) Actor {
	return Actor{ID: string(u.ID), Role: u.Role, Status: u.Status}
}

func (a Actor) active() bool {
	return a.Status == user.StatusActive
}

func (a Actor) admin() bool {
	return a.Role == user.RoleAdmin
}

// Policy is the capability matrix. Every mutating operation re-checks role
// and ownership here at execution time; the HTTP layer performs no parallel
// authorization of its own.
type Policy struct{}

// CanCreateBooking allows an active guest to book for themselves; admins may
// book on behalf of any guest.
func (Policy) CanCreateBooking(actor Actor, guestID string) error {
	if !actor.active() {
		return ErrForbidden
	}
	if actor.admin() {
		return nil
	}
	if actor.Role == user.RoleGuest && actor.ID == guestID {
		return nil
	}
	return ErrForbidden
}

// CanTransition gates state-machine events by actor. Whether the transition
// itself is legal for the booking's current status is the state machine's
// concern, not the policy's.
func (Policy) CanTransition(actor Actor, ev booking.Event, b *booking.Booking, owner listings.HostID) error {
	if !actor.active() {
		return ErrForbidden
	}
	if actor.admin() {
		return nil
	}
	switch ev {
	case booking.EventApprove, booking.EventReject:
		if actor.Role == user.RoleHost && actor.ID == string(owner) {
			return nil
		}
	case booking.EventCancel:
		// Guests cancel only their own pending bookings; a confirmed
		// booking is admin-only territory.
		if b.Status == booking.StatusPending && actor.ID == b.GuestID {
			return nil
		}
	case booking.EventComplete:
		// Date-based completion runs as a system sweep; only admins may
		// force it through this path.
	}
	return ErrForbidden
}

// CanToggleFavorite and CanSubmitReview are self-scoped guest capabilities.
func (Policy) CanToggleFavorite(actor Actor, guestID string) error {
	return selfScoped(actor, guestID)
}

func (Policy) CanSubmitReview(actor Actor, guestID string) error {
	return selfScoped(actor, guestID)
}

// CanManageListing allows the owning host or an admin to mutate a listing.
func (Policy) CanManageListing(actor Actor, owner listings.HostID) error {
	if !actor.active() {
		return ErrForbidden
	}
	if actor.admin() {
		return nil
	}
	if actor.Role == user.RoleHost && actor.ID == string(owner) {
		return nil
	}
	return ErrForbidden
}

// CanModerate covers admin-only operations: listing approval, user
// suspension, role changes, force deletes, analytics.
func (Policy) CanModerate(actor Actor) error {
	if !actor.active() || !actor.admin() {
		return ErrForbidden
	}
	return nil
}

// CanReadBooking scopes booking reads to the guest who made it, the host who
// owns the listing, or an admin.
func (Policy) CanReadBooking(actor Actor, b *booking.Booking, owner listings.HostID) error {
	if !actor.active() {
		return ErrForbidden
	}
	if actor.admin() || actor.ID == b.GuestID || actor.ID == string(owner) {
		return nil
	}
	return ErrForbidden
}

func selfScoped(actor Actor, guestID string) error {
	if !actor.active() {
		return ErrForbidden
	}
	if actor.admin() {
		return nil
	}
	if actor.ID == guestID {
		return nil
	}
	return ErrForbidden
}
