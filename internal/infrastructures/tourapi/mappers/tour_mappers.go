package mappers

import (
	"strings"
	"time"

	"github.com/qamar62/st-booking/internal/domain/models"
	"github.com/qamar62/st-booking/internal/infrastructures/tourapi/dto"
)

func MapTours(items []dto.TourItem) []models.Tour {
	tours := make([]models.Tour, 0, len(items))
	for _, item := range items {
		tours = append(tours, MapTour(item))
	}
	return tours
}

func MapTour(item dto.TourItem) models.Tour {
	tour := models.Tour{
		ID:        models.TourID(item.ID),
		Name:      item.Name,
		Thumbnail: item.Thumbnail,
	}

	for _, window := range item.AvailabilityTours {
		mapped := models.AvailabilityWindow{
			ExcludeDates: make([]time.Time, 0, len(window.ExcludeDates)),
		}
		for _, ex := range window.ExcludeDates {
			if day, ok := ParseDate(ex.Date); ok {
				mapped.ExcludeDates = append(mapped.ExcludeDates, day)
			}
		}
		tour.Availability = append(tour.Availability, mapped)
	}

	// Tier order is preserved: tier selection downstream is first match.
	for _, price := range item.Price {
		tier := models.PriceTier{
			ServiceType:     models.ServiceType(price.ServiceType),
			AdultPrice:      price.AdultPrice,
			ChildPrice:      price.ChildPrice,
			InfantPrice:     price.InfantPrice,
			BasePrice:       price.BasePrice,
			DiscountPercent: price.Discount,
		}
		// A present-but-unparseable discount date poisons the tier: the
		// resolver treats such a tier as unbookable rather than guessing
		// at a window. An absent date simply means no discount window.
		if day, ok := ParseDate(price.DiscountStartDate); ok {
			tier.DiscountStart = day
		} else if strings.TrimSpace(price.DiscountStartDate) != "" {
			tier.DiscountWindowMalformed = true
		}
		if day, ok := ParseDate(price.DiscountEndDate); ok {
			tier.DiscountEnd = day
		} else if strings.TrimSpace(price.DiscountEndDate) != "" {
			tier.DiscountWindowMalformed = true
		}
		tour.Prices = append(tour.Prices, tier)
	}

	return tour
}

// ParseDate accepts the calendar-date formats the upstream has been seen to
// emit and normalizes to a UTC calendar day. A malformed value maps to a zero
// date, which never matches a requested day.
func ParseDate(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.CalendarDay(t), true
		}
	}

	return time.Time{}, false
}
