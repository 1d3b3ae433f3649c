package entity

type Service struct {
	Base
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	BasePrice       float64 `db:"base_price"`
	DurationMinutes int     `db:"duration_minutes"`
	IsActive        bool    `db:"is_active"`
}
