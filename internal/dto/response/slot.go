package response

import "mobile-booking/internal/data/entity"

type SlotResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	IsAvailable bool    `json:"is_available"`
	Notes       *string `json:"notes,omitempty"`
}

func SlotToResponse(s *entity.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:          s.ID.String(),
		Date:        s.SlotDate.Format("2006-01-02"),
		Time:        s.StartTime,
		IsAvailable: s.IsAvailable,
		Notes:       s.Notes,
	}
}
