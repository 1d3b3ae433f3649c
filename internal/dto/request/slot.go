package request

type CreateSlotRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"required,datetime=15:04"`
	Notes string `json:"notes" validate:"omitempty,max=500"`
}
