package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

func mustRange(t *testing.T, in, out time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(in, out)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func TestCalculate(t *testing.T) {
	nightly, err := money.New(10000, "USD")
	if err != nil {
		t.Fatalf("money.New: %v", err)
	}
	checkIn := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		checkOut   time.Time
		wantNights int
		wantTotal  int64
	}{
		{"two nights", checkIn.AddDate(0, 0, 2), 2, 20000},
		{"one night", checkIn.AddDate(0, 0, 1), 1, 10000},
		{"partial day rounds up", checkIn.Add(36 * time.Hour), 2, 20000},
		{"week", checkIn.AddDate(0, 0, 7), 7, 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Calculate(nightly, mustRange(t, checkIn, tt.checkOut))
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if quote.Nights != tt.wantNights {
				t.Fatalf("Nights = %d, want %d", quote.Nights, tt.wantNights)
			}
			if quote.Total.Amount != tt.wantTotal {
				t.Fatalf("Total = %d, want %d", quote.Total.Amount, tt.wantTotal)
			}
			if quote.Total.Currency != "USD" {
				t.Fatalf("Currency = %q, want USD", quote.Total.Currency)
			}
			if quote.Nightly != nightly {
				t.Fatalf("Nightly = %+v, want the rate used for the quote", quote.Nightly)
			}
		})
	}
}

func TestCalculateRejectsInvalidRange(t *testing.T) {
	nightly, _ := money.New(5000, "EUR")
	_, err := Calculate(nightly, daterange.DateRange{})
	if !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestCalculateRejectsNegativeRate(t *testing.T) {
	checkIn := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	dr := mustRange(t, checkIn, checkIn.AddDate(0, 0, 2))
	_, err := Calculate(money.Money{Amount: -1, Currency: "USD"}, dr)
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}
