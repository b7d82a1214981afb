package mappers

import (
	"testing"
	"time"

	"github.com/qamar62/st-booking/internal/infrastructures/tourapi/dto"
)

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{
		"2025-12-25",
		"2025-12-25T18:30:00Z",
		"2025-12-25T18:30:00",
		"2025-12-25 18:30:00",
	} {
		got, ok := ParseDate(value)
		if !ok {
			t.Fatalf("%q: expected a parse", value)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: expected %v, got %v", value, want, got)
		}
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, value := range []string{"", "  ", "25/12/2025", "not-a-date"} {
		if _, ok := ParseDate(value); ok {
			t.Fatalf("%q: expected no parse", value)
		}
	}
}

func TestMapTour_SkipsMalformedExcludeDates(t *testing.T) {
	tour := MapTour(dto.TourItem{
		ID:   1,
		Name: "City Tour",
		AvailabilityTours: []dto.AvailabilityItem{{
			ExcludeDates: []dto.ExcludeDateItem{
				{Date: "2025-12-25"},
				{Date: "garbage"},
			},
		}},
	})

	if len(tour.Availability) != 1 {
		t.Fatalf("expected one window, got %d", len(tour.Availability))
	}
	if got := len(tour.Availability[0].ExcludeDates); got != 1 {
		t.Fatalf("malformed dates must be dropped, got %d entries", got)
	}
}

func TestMapTour_PreservesTierOrder(t *testing.T) {
	tour := MapTour(dto.TourItem{
		ID: 1,
		Price: []dto.PriceItem{
			{ServiceType: "Sharing", BasePrice: 70},
			{ServiceType: "Private", AdultPrice: 100},
		},
	})

	if len(tour.Prices) != 2 {
		t.Fatalf("expected two tiers, got %d", len(tour.Prices))
	}
	if tour.Prices[0].ServiceType != "Sharing" || tour.Prices[1].ServiceType != "Private" {
		t.Fatalf("tier order not preserved: %+v", tour.Prices)
	}
}

func TestMapTour_MalformedDiscountDatesPoisonTier(t *testing.T) {
	tour := MapTour(dto.TourItem{
		ID: 1,
		Price: []dto.PriceItem{{
			ServiceType:       "Private",
			AdultPrice:        100,
			DiscountStartDate: "soon",
			DiscountEndDate:   "later",
			Discount:          20,
		}},
	})

	tier := tour.Prices[0]
	if !tier.DiscountWindowMalformed {
		t.Fatalf("unparseable discount dates must mark the tier malformed: %+v", tier)
	}
	if !tier.DiscountStart.IsZero() || !tier.DiscountEnd.IsZero() {
		t.Fatalf("malformed window must map to zero dates: %+v", tier)
	}
	if tier.DiscountWindowContains(time.Now()) {
		t.Fatal("a zero window must never contain a date")
	}
}

func TestMapTour_AbsentDiscountDatesAreNotMalformed(t *testing.T) {
	tour := MapTour(dto.TourItem{
		ID: 1,
		Price: []dto.PriceItem{{
			ServiceType: "Private",
			AdultPrice:  100,
		}},
	})

	tier := tour.Prices[0]
	if tier.DiscountWindowMalformed {
		t.Fatalf("absent discount dates mean no window, not a malformed one: %+v", tier)
	}
}
