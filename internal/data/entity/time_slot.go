package entity

import "time"

type TimeSlot struct {
	Base
	SlotDate    time.Time `db:"slot_date"`
	StartTime   string    `db:"start_time"` // HH:MM
	IsAvailable bool      `db:"is_available"`
	Notes       *string   `db:"notes"`
}

// StartsAt combines the slot date and start time in loc.
func (s *TimeSlot) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s.SlotDate.Format("2006-01-02")+" "+s.StartTime, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
