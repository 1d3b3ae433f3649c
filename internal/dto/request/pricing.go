package request

type PriceQuoteRequest struct {
	BasePrice       float64 `json:"base_price" validate:"gt=0,cents"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	VehicleSize     string  `json:"vehicle_size" validate:"required,oneof=small medium large extra_large"`
	PostalCode      string  `json:"postal_code" validate:"required,postalcode"`
}
