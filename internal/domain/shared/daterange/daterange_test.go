package daterange

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"zero check-in", time.Time{}, day(2)},
		{"zero check-out", day(1), time.Time{}},
		{"equal bounds", day(3), day(3)},
		{"reversed", day(5), day(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.checkIn, tt.checkOut); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("New(%v, %v) err = %v, want ErrInvalidRange", tt.checkIn, tt.checkOut, err)
			}
		})
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"single night", day(1), day(2), 1},
		{"four nights", day(1), day(5), 4},
		{"partial day rounds up", day(1), day(2).Add(6 * time.Hour), 2},
		{"sub-day stay bills one night", day(1), day(1).Add(5 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := DateRange{CheckIn: tt.checkIn, CheckOut: tt.checkOut}
			if got := dr.Nights(); got != tt.want {
				t.Fatalf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	base := DateRange{CheckIn: day(10), CheckOut: day(15)}
	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", DateRange{CheckIn: day(10), CheckOut: day(15)}, true},
		{"contained", DateRange{CheckIn: day(11), CheckOut: day(12)}, true},
		{"overlaps start", DateRange{CheckIn: day(8), CheckOut: day(11)}, true},
		{"overlaps end", DateRange{CheckIn: day(14), CheckOut: day(20)}, true},
		{"touches at check-out", DateRange{CheckIn: day(15), CheckOut: day(18)}, false},
		{"touches at check-in", DateRange{CheckIn: day(7), CheckOut: day(10)}, false},
		{"fully before", DateRange{CheckIn: day(1), CheckOut: day(5)}, false},
		{"fully after", DateRange{CheckIn: day(20), CheckOut: day(25)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Fatalf("Overlaps() not symmetric: reverse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnded(t *testing.T) {
	dr := DateRange{CheckIn: day(10), CheckOut: day(15)}
	if dr.Ended(day(14)) {
		t.Fatal("stay still in progress should not be ended")
	}
	if !dr.Ended(day(15)) {
		t.Fatal("stay should be ended exactly at check-out")
	}
	if !dr.Ended(day(20)) {
		t.Fatal("stay in the past should be ended")
	}
}
