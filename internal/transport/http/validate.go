package http

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/qamar62/st-booking/internal/domain/models"
)

type bookingPayload struct {
	TourID         int64  `json:"tour_id"`
	Date           string `json:"date"`
	ServiceType    string `json:"service_type"`
	FullName       string `json:"full_name"`
	PickupLocation string `json:"pickup_location"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Adults         int    `json:"num_adults"`
	Children       int    `json:"num_children"`
	Infants        int    `json:"num_infants"`
}

// validate checks the payload before any resolution is attempted; a failure
// here short-circuits the booking flow entirely.
func (p bookingPayload) validate(horizonDays int) (models.BookingRequest, error) {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"full_name", p.FullName},
		{"pickup_location", p.PickupLocation},
		{"email", p.Email},
		{"phone", p.Phone},
		{"date", p.Date},
		{"service_type", p.ServiceType},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return models.BookingRequest{}, fmt.Errorf("please fill all the fields: %s", strings.Join(missing, ", "))
	}

	if _, err := mail.ParseAddress(p.Email); err != nil {
		return models.BookingRequest{}, fmt.Errorf("invalid email address")
	}

	if !validPhoneNumber(p.Phone) {
		return models.BookingRequest{}, fmt.Errorf("invalid phone number format")
	}

	serviceType, ok := models.ParseServiceType(p.ServiceType)
	if !ok {
		return models.BookingRequest{}, fmt.Errorf("unknown service type %q", p.ServiceType)
	}

	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}

	today := models.CalendarDay(time.Now())
	day := models.CalendarDay(date)
	if day.Before(today) || day.After(today.AddDate(0, 0, horizonDays)) {
		return models.BookingRequest{}, fmt.Errorf("date must be within %d days from today", horizonDays)
	}

	if p.Adults < 0 || p.Children < 0 || p.Infants < 0 {
		return models.BookingRequest{}, fmt.Errorf("party sizes must not be negative")
	}
	if p.Adults+p.Children+p.Infants == 0 {
		return models.BookingRequest{}, fmt.Errorf("at least one traveler is required")
	}

	return models.BookingRequest{
		TourID:         models.TourID(p.TourID),
		Date:           day,
		ServiceType:    serviceType,
		Adults:         p.Adults,
		Children:       p.Children,
		Infants:        p.Infants,
		FullName:       strings.TrimSpace(p.FullName),
		PickupLocation: strings.TrimSpace(p.PickupLocation),
		Email:          strings.TrimSpace(p.Email),
		Phone:          strings.TrimSpace(p.Phone),
	}, nil
}

// validPhoneNumber expects international format; without a region hint the
// number must carry its country code.
func validPhoneNumber(value string) bool {
	parsed, err := phonenumbers.Parse(strings.TrimSpace(value), "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
