package packets

// responses flatten timestamps to RFC3339 strings

type DeviceResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Location   *string `json:"location,omitempty"`
	Timezone   string  `json:"timezone"`
	ScheduleID *int    `json:"schedule_id,omitempty"`
	LayoutID   *int    `json:"layout_id,omitempty"`
	PlaylistID *int    `json:"playlist_id,omitempty"`
	Paired     bool    `json:"paired"`
	GroupIDs   []int   `json:"group_ids,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type GroupResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CampaignEntryResponse struct {
	ID        int    `json:"id"`
	ContentID int    `json:"content_id"`
	Name      string `json:"name"`
	Weight    int    `json:"weight"`
	Position  int    `json:"position"`
}

type CampaignResponse struct {
	ID          int                     `json:"id"`
	Name        string                  `json:"name"`
	Status      string                  `json:"status"`
	Priority    int                     `json:"priority"`
	TargetType  string                  `json:"target_type"`
	StartDate   *string                 `json:"start_date,omitempty"`
	EndDate     *string                 `json:"end_date,omitempty"`
	StartMinute *int                    `json:"start_minute,omitempty"`
	EndMinute   *int                    `json:"end_minute,omitempty"`
	DaysOfWeek  []int                   `json:"days_of_week,omitempty"`
	DeviceIDs   []int                   `json:"device_ids,omitempty"`
	GroupIDs    []int                   `json:"group_ids,omitempty"`
	Entries     []CampaignEntryResponse `json:"entries,omitempty"`
	CreatedAt   string                  `json:"created_at"`
	UpdatedAt   string                  `json:"updated_at"`
}

type TimeBlockResponse struct {
	ID          int    `json:"id"`
	ScheduleID  int    `json:"schedule_id"`
	PlaylistID  int    `json:"playlist_id"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Position    int    `json:"position"`
	DaysOfWeek  []int  `json:"days_of_week,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type ScheduleResponse struct {
	ID        int                 `json:"id"`
	Name      string              `json:"name"`
	Blocks    []TimeBlockResponse `json:"blocks,omitempty"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

type LayoutResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type PlaylistResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
