package models

import "time"

type TourID int64

type ServiceType string

const (
	ServicePrivate ServiceType = "Private"
	ServiceSharing ServiceType = "Sharing"
)

func ParseServiceType(value string) (ServiceType, bool) {
	switch ServiceType(value) {
	case ServicePrivate:
		return ServicePrivate, true
	case ServiceSharing:
		return ServiceSharing, true
	default:
		return "", false
	}
}

// AvailabilityWindow lists calendar dates on which a tour is explicitly
// unbookable. A tour is unavailable when the requested date appears in any
// window; exclusion is a union across windows.
type AvailabilityWindow struct {
	ExcludeDates []time.Time
}

// PriceTier holds the unit prices for one service type. Adult, child and
// infant prices participate in the discount window; BasePrice never does.
// DiscountWindowMalformed records that the upstream sent discount dates that
// failed to parse; such a tier cannot be priced and is unbookable.
type PriceTier struct {
	ServiceType             ServiceType
	AdultPrice              float64
	ChildPrice              float64
	InfantPrice             float64
	BasePrice               float64
	DiscountStart           time.Time
	DiscountEnd             time.Time
	DiscountPercent         float64
	DiscountWindowMalformed bool
}

// DiscountWindowContains reports whether day falls inside the tier's discount
// window. Bounds are inclusive; a zero or inverted window never matches.
func (t PriceTier) DiscountWindowContains(day time.Time) bool {
	if t.DiscountStart.IsZero() || t.DiscountEnd.IsZero() {
		return false
	}
	if t.DiscountStart.After(t.DiscountEnd) {
		return false
	}
	day = CalendarDay(day)
	return !day.Before(CalendarDay(t.DiscountStart)) && !day.After(CalendarDay(t.DiscountEnd))
}

type Tour struct {
	ID           TourID
	Name         string
	Thumbnail    string
	Availability []AvailabilityWindow
	Prices       []PriceTier
}

// Token is a short-lived bearer credential. ExpiresAt is zero when the
// upstream token carries no readable expiry.
type Token struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expires_at"`
}
