package http

import (
	"encoding/json"
	"errors"
	"net/http"

	derr "github.com/qamar62/st-booking/internal/domain/errors"
	"github.com/qamar62/st-booking/internal/domain/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func mapStatus(err error) int {
	switch {
	case errors.Is(err, derr.ErrTourNotFound):
		return http.StatusNotFound
	case errors.Is(err, derr.ErrDateUnavailable):
		return http.StatusConflict
	case errors.Is(err, derr.ErrPriceNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, derr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, derr.ErrTokenUnavailable), errors.Is(err, derr.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

type tourSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

type tierResponse struct {
	ServiceType string  `json:"service_type"`
	AdultPrice  float64 `json:"adult_price"`
	ChildPrice  float64 `json:"child_price"`
	InfantPrice float64 `json:"infant_price"`
	BasePrice   float64 `json:"base_price"`
	Discount    float64 `json:"discount"`
}

type confirmationResponse struct {
	Reference      string       `json:"reference"`
	TourName       string       `json:"tour_name"`
	Date           string       `json:"date"`
	ServiceType    string       `json:"service_type"`
	Prices         tierResponse `json:"prices"`
	TotalPrice     float64      `json:"total_price"`
	FullName       string       `json:"full_name"`
	PickupLocation string       `json:"pickup_location"`
	Email          string       `json:"email"`
}

func toTourSummary(tour models.Tour) tourSummary {
	return tourSummary{
		ID:        int64(tour.ID),
		Name:      tour.Name,
		Thumbnail: tour.Thumbnail,
	}
}

func toTierResponse(tier models.PriceTier) tierResponse {
	return tierResponse{
		ServiceType: string(tier.ServiceType),
		AdultPrice:  tier.AdultPrice,
		ChildPrice:  tier.ChildPrice,
		InfantPrice: tier.InfantPrice,
		BasePrice:   tier.BasePrice,
		Discount:    tier.DiscountPercent,
	}
}

func toConfirmationResponse(c models.Confirmation) confirmationResponse {
	return confirmationResponse{
		Reference:      c.Reference,
		TourName:       c.TourName,
		Date:           c.Date.Format("2006-01-02"),
		ServiceType:    string(c.ServiceType),
		Prices:         toTierResponse(c.Tier),
		TotalPrice:     c.Total,
		FullName:       c.FullName,
		PickupLocation: c.PickupLocation,
		Email:          c.Email,
	}
}
