package models

import "time"

// BookingRequest is ephemeral form input; it lives for one
// submission-to-confirmation cycle and is never persisted.
type BookingRequest struct {
	TourID         TourID
	Date           time.Time
	ServiceType    ServiceType
	Adults         int
	Children       int
	Infants        int
	FullName       string
	PickupLocation string
	Email          string
	Phone          string
}

func (r BookingRequest) PartySize() int {
	return r.Adults + r.Children + r.Infants
}

// Confirmation is the success payload rendered back to the user. Tier is a
// fresh, discount-adjusted snapshot, not a shared object.
type Confirmation struct {
	Reference      string
	TourName       string
	Date           time.Time
	ServiceType    ServiceType
	Tier           PriceTier
	Total          float64
	FullName       string
	PickupLocation string
	Email          string
}
