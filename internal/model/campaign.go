package model

import "time"

// Campaign statuses. Only active campaigns ever participate in resolution.
const (
	CampaignStatusDraft    = "draft"
	CampaignStatusActive   = "active"
	CampaignStatusPaused   = "paused"
	CampaignStatusArchived = "archived"
)

// Campaign targeting modes: exactly one applies per campaign.
const (
	TargetDevices = "devices"
	TargetGroups  = "groups"
	TargetAll     = "all"
)

// Campaign is a prioritized, time-bounded content override. Date bounds are
// inclusive and open-ended when nil; StartMinute/EndMinute bound a daily
// window in minutes since local midnight, end exclusive.
type Campaign struct {
	ID          int        `db:"id"           json:"id"`
	Name        string     `db:"name"         json:"name"`
	Status      string     `db:"status"       json:"status"`
	Priority    int        `db:"priority"     json:"priority"`
	TargetType  string     `db:"target_type"  json:"target_type"`
	StartDate   *time.Time `db:"start_date"   json:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date"     json:"end_date,omitempty"`
	StartMinute *int       `db:"start_minute" json:"start_minute,omitempty"`
	EndMinute   *int       `db:"end_minute"   json:"end_minute,omitempty"`
	CreatedBy   int        `db:"created_by"   json:"created_by"`
	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updated_at"`

	// DaysOfWeek uses 0=Sunday..6=Saturday, evaluated in the device timezone.
	// Nil means no day restriction.
	DaysOfWeek []int `db:"-" json:"days_of_week,omitempty"`

	// DeviceIDs/GroupIDs are loaded from join tables; only the list matching
	// TargetType is consulted during resolution.
	DeviceIDs []int `db:"-" json:"device_ids,omitempty"`
	GroupIDs  []int `db:"-" json:"group_ids,omitempty"`

	Entries []CampaignContentEntry `db:"-" json:"entries,omitempty"`
}

// CampaignContentEntry is one weighted piece of content inside a campaign.
type CampaignContentEntry struct {
	ID         int    `db:"id"          json:"id"`
	CampaignID int    `db:"campaign_id" json:"campaign_id"`
	ContentID  int    `db:"content_id"  json:"content_id"`
	Name       string `db:"name"        json:"name"`
	Weight     int    `db:"weight"      json:"weight"`
	Position   int    `db:"position"    json:"position"`
}
