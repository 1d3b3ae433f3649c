package request

type CustomerInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	DeviceToken string `json:"device_token" validate:"omitempty,max=512"`
}

type VehicleInput struct {
	Make         string `json:"make" validate:"required,max=50"`
	Model        string `json:"model" validate:"required,max=50"`
	Year         int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Size         string `json:"size" validate:"required,oneof=small medium large extra_large"`
	Color        string `json:"color" validate:"omitempty,max=30"`
	LicensePlate string `json:"license_plate" validate:"required,max=20"`
}

type AddressInput struct {
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=50"`
	PostalCode string `json:"postal_code" validate:"required,postalcode"`
}

type CreateBookingRequest struct {
	Customer            CustomerInput `json:"customer"`
	Vehicle             VehicleInput  `json:"vehicle"`
	Address             AddressInput  `json:"address"`
	ServiceID           string        `json:"service_id" validate:"required,uuid"`
	SlotID              string        `json:"slot_id" validate:"required,uuid"`
	SpecialInstructions string        `json:"special_instructions" validate:"omitempty,max=500"`
}

type RescheduleBookingRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"required,datetime=15:04"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing payment_failed confirmed rescheduled in_progress completed declined cancelled_by_customer cancelled_by_admin no_show expired"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// RecordPaymentRequest stores the outcome of a payment captured elsewhere.
type RecordPaymentRequest struct {
	Status    string `json:"status" validate:"required,oneof=paid failed"`
	Reference string `json:"reference" validate:"required_if=Status paid,max=255"`
}
