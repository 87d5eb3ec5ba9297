package model

import "time"

type Schedule struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy int       `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Blocks []ScheduleTimeBlock `db:"-" json:"blocks,omitempty"`
}

// ScheduleTimeBlock is a recurring daily window pointing at content to play.
// StartMinute/EndMinute are minutes since local midnight; start must be
// strictly less than end (windows never cross midnight). The window is
// [start, end): a block ending at 18:00 is no longer active at exactly 18:00.
type ScheduleTimeBlock struct {
	ID          int       `db:"id"           json:"id"`
	ScheduleID  int       `db:"schedule_id"  json:"schedule_id"`
	PlaylistID  int       `db:"playlist_id"  json:"playlist_id"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute"   json:"end_minute"`
	Position    int       `db:"position"     json:"position"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`

	// DaysOfWeek uses 0=Sunday..6=Saturday; nil means every day.
	DaysOfWeek []int `db:"-" json:"days_of_week,omitempty"`
}
