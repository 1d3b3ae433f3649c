package response

import "mobile-booking/internal/data/entity"

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
	}
}
