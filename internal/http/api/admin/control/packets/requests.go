package packets

import "time"

type CreateDeviceRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
	Timezone string  `json:"timezone" binding:"required"`
}

// AssignDeviceRequest rewrites a device's fallback references; a nil field
// clears that tier of the cascade.
type AssignDeviceRequest struct {
	ScheduleID *int `json:"schedule_id"`
	LayoutID   *int `json:"layout_id"`
	PlaylistID *int `json:"playlist_id"`
}

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type GroupMemberRequest struct {
	DeviceID int `json:"device_id" binding:"required"`
}

type CreateCampaignRequest struct {
	Name        string     `json:"name" binding:"required"`
	Priority    int        `json:"priority"`
	TargetType  string     `json:"target_type" binding:"required,oneof=devices groups all"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	StartMinute *int       `json:"start_minute" binding:"omitempty,min=0,max=1439"`
	EndMinute   *int       `json:"end_minute" binding:"omitempty,min=1,max=1440"`
	DaysOfWeek  []int      `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active paused archived"`
}

type SetCampaignTargetsRequest struct {
	DeviceIDs []int `json:"device_ids"`
	GroupIDs  []int `json:"group_ids"`
}

type CampaignEntryRequest struct {
	ContentID int `json:"content_id" binding:"required"`
	Weight    int `json:"weight"`
}

type SetCampaignEntriesRequest struct {
	Entries []CampaignEntryRequest `json:"entries" binding:"required"`
}

type CreateScheduleRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateTimeBlockRequest struct {
	PlaylistID  int   `json:"playlist_id" binding:"required"`
	StartMinute int   `json:"start_minute" binding:"min=0,max=1439"`
	EndMinute   int   `json:"end_minute" binding:"required,min=1,max=1440"`
	Position    int   `json:"position"`
	DaysOfWeek  []int `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
}

type CreateLayoutRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}
