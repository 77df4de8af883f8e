package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: check-out must be after check-in")
)

// DateRange represents a half-open stay interval [checkIn, checkOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights returns the billable night count: the day difference rounded up,
// floored at one night so sub-day stays still bill a full night.
func (dr DateRange) Nights() int {
	hours := dr.CheckOut.Sub(dr.CheckIn).Hours()
	nights := int(hours / 24)
	if float64(nights)*24 < hours {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}

// Ended reports whether the whole stay lies in the past.
func (dr DateRange) Ended(now time.Time) bool {
	return !dr.CheckOut.After(now.UTC())
}
