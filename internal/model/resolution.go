package model

// ResolutionType identifies which tier of the cascade produced a result.
type ResolutionType string

const (
	ResolutionCampaign ResolutionType = "campaign"
	ResolutionSchedule ResolutionType = "schedule"
	ResolutionLayout   ResolutionType = "layout"
	ResolutionPlaylist ResolutionType = "playlist"
	ResolutionEmpty    ResolutionType = "empty"
)

// Base priorities for each tier. A campaign result reports
// PriorityCampaignBase plus the campaign's own priority, so any campaign
// outranks any schedule result, any schedule result outranks any layout
// result, and so on. Changing one constant requires migrating all of them.
const (
	PriorityCampaignBase = 100
	PrioritySchedule     = 50
	PriorityLayout       = 25
	PriorityPlaylist     = 10
	PriorityEmpty        = 0
)

// ResolutionResult is the engine's sole output: what a device should show
// right now and why. Content is nil for empty results. Priority exists for
// tests and observability only and is never persisted.
type ResolutionResult struct {
	Type     ResolutionType `json:"type"`
	Content  any            `json:"content"`
	Priority int            `json:"priority"`
	Reason   string         `json:"reason"`
}
