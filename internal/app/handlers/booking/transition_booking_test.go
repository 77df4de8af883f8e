package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainbooking "github.com/Grace-nduta/Airbnb-Platform/internal/domain/booking"
)

func transition(t *testing.T, env testEnv, actor domainaccess.Actor, bookingID, event string) (*TransitionBookingResult, error) {
	t.Helper()
	handler := &TransitionBookingHandler{UoWFactory: env.factory, Outbox: env.outbox}
	return handler.Handle(context.Background(), TransitionBookingCommand{
		Actor:     actor,
		BookingID: bookingID,
		Event:     event,
	})
}

func TestHostApprovesBooking(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}

	result, err := transition(t, env, activeHost("host-1"), "bk-1", "approve")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Status != "CONFIRMED" {
		t.Fatalf("Status = %s, want CONFIRMED", result.Status)
	}
}

func TestForeignHostCannotApprove(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}

	if _, err := transition(t, env, activeHost("host-2"), "bk-1", "approve"); !errors.Is(err, domainaccess.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestGuestCancelReleasesCalendar(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 4); err != nil {
		t.Fatalf("request: %v", err)
	}

	result, err := transition(t, env, activeGuest("guest-1"), "bk-1", "cancel")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if result.Status != "CANCELLED" {
		t.Fatalf("Status = %s, want CANCELLED", result.Status)
	}

	// The freed range can be booked again.
	if _, err := requestBooking(t, env, "bk-2", "ls-1", "guest-2", 1, 3); err != nil {
		t.Fatalf("rebooking freed range: %v", err)
	}
}

func TestGuestCannotCancelConfirmedBooking(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := transition(t, env, activeHost("host-1"), "bk-1", "approve"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := transition(t, env, activeGuest("guest-1"), "bk-1", "cancel"); !errors.Is(err, domainaccess.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Admins retain the capability.
	result, err := transition(t, env, activeAdmin(), "bk-1", "cancel")
	if err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	if result.Status != "CANCELLED" {
		t.Fatalf("Status = %s, want CANCELLED", result.Status)
	}
}

func TestTransitionRejectsTerminalStates(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := transition(t, env, activeHost("host-1"), "bk-1", "reject"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := transition(t, env, activeAdmin(), "bk-1", "approve"); !errors.Is(err, domainbooking.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTransitionRejectsUnknownEvent(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}

	if _, err := transition(t, env, activeAdmin(), "bk-1", "archive"); !errors.Is(err, domainbooking.ErrUnknownEvent) {
		t.Fatalf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestCompleteElapsedSweep(t *testing.T) {
	env := newTestEnv()
	env.addActiveListing(t, "ls-1", "host-1", 10000)
	if _, err := requestBooking(t, env, "bk-1", "ls-1", "guest-1", 0, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := transition(t, env, activeHost("host-1"), "bk-1", "approve"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// Another confirmed booking whose stay has not ended yet.
	if _, err := requestBooking(t, env, "bk-2", "ls-1", "guest-2", 10, 12); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := transition(t, env, activeHost("host-1"), "bk-2", "approve"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	handler := &CompleteElapsedHandler{UoWFactory: env.factory, Outbox: env.outbox}
	_, checkOut := stay(0, 2)
	result, err := handler.Handle(context.Background(), CompleteElapsedCommand{Now: checkOut.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Completed != 1 {
		t.Fatalf("Completed = %d, want 1", result.Completed)
	}

	first, err := env.bookings.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if first.Status != domainbooking.StatusCompleted {
		t.Fatalf("bk-1 status = %s, want COMPLETED", first.Status)
	}
	second, err := env.bookings.ByID(context.Background(), "bk-2")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if second.Status != domainbooking.StatusConfirmed {
		t.Fatalf("bk-2 status = %s, want CONFIRMED", second.Status)
	}
}
