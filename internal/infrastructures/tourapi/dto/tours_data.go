package dto

type TokenResponse struct {
	Access string `json:"access"`
}

type ExcludeDateItem struct {
	Date string `json:"date"`
}

type AvailabilityItem struct {
	ExcludeDates []ExcludeDateItem `json:"exclude_dates"`
}

type PriceItem struct {
	ServiceType       string  `json:"service_type"`
	AdultPrice        float64 `json:"adult_price"`
	ChildPrice        float64 `json:"child_price"`
	InfantPrice       float64 `json:"infant_price"`
	BasePrice         float64 `json:"base_price"`
	DiscountStartDate string  `json:"discount_start_date"`
	DiscountEndDate   string  `json:"discount_end_date"`
	Discount          float64 `json:"discount"`
}

type TourItem struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Thumbnail         string             `json:"thumbnail"`
	AvailabilityTours []AvailabilityItem `json:"availability_tours"`
	Price             []PriceItem        `json:"price"`
}
