package model

import "time"

// Device represents a display endpoint that content is resolved for.
type Device struct {
	ID         int       `db:"id"           json:"id"`
	Name       string    `db:"name"         json:"name"`
	Location   *string   `db:"location"     json:"location,omitempty"`
	Timezone   string    `db:"timezone"     json:"timezone"`
	ScheduleID *int      `db:"schedule_id"  json:"schedule_id,omitempty"`
	LayoutID   *int      `db:"layout_id"    json:"layout_id,omitempty"`
	PlaylistID *int      `db:"playlist_id"  json:"playlist_id,omitempty"`
	Paired     bool      `db:"paired"       json:"paired"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"   json:"updated_at"`

	// GroupIDs is loaded from the device_group_members join table.
	GroupIDs []int `db:"-" json:"group_ids,omitempty"`
}

type DeviceGroup struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}
