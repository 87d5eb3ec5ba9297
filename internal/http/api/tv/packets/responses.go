package packets

// RESPONSES FOR /api/tv/*

type PairResponse struct {
	Token    string `json:"token"`
	DeviceID int    `json:"device_id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type CampaignContent struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`

	// PickedContentID/PickedName carry the weighted pick for this poll; zero
	// when the campaign has no entries.
	PickedContentID int    `json:"picked_content_id,omitempty"`
	PickedName      string `json:"picked_name,omitempty"`
}

type BlockContent struct {
	ID          int `json:"id"`
	PlaylistID  int `json:"playlist_id"`
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

type LayoutContent struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PlaylistContent struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ResolutionResponse tells a display what to show right now. Exactly one of
// the content fields is set, matching Type; all are nil for "empty".
type ResolutionResponse struct {
	Type     string           `json:"type"`
	Reason   string           `json:"reason"`
	Priority int              `json:"priority"`
	Campaign *CampaignContent `json:"campaign,omitempty"`
	Block    *BlockContent    `json:"block,omitempty"`
	Layout   *LayoutContent   `json:"layout,omitempty"`
	Playlist *PlaylistContent `json:"playlist,omitempty"`
}
