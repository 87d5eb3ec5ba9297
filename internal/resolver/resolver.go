package resolver

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// The resolver reads its world through these narrow interfaces. Production
// wires the Postgres store in; tests supply in-memory fakes. A lookup that
// finds nothing returns (nil, nil); errors are reserved for real failures.

type DeviceRepository interface {
	GetDevice(id int) (*model.Device, error)
}

type CampaignRepository interface {
	// ListCampaigns returns all campaigns with their targeting lists and
	// content entries loaded, ordered by creation time.
	ListCampaigns() ([]model.Campaign, error)
}

type ScheduleRepository interface {
	// GetSchedule returns the schedule with its time-blocks loaded.
	GetSchedule(id int) (*model.Schedule, error)
}

type ContentRepository interface {
	GetLayout(id int) (*model.Layout, error)
	GetPlaylist(id int) (*model.Playlist, error)
}

// Repository bundles everything the resolver needs from the data layer.
type Repository interface {
	DeviceRepository
	CampaignRepository
	ScheduleRepository
	ContentRepository
}

// Resolver decides which single piece of content a device must show at a
// given instant, cascading campaign → schedule → layout → playlist → empty.
// It holds no mutable state; one Resolver may serve concurrent callers.
type Resolver struct {
	repo Repository
	now  func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the wall clock, used by tests to pin the instant.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func New(repo Repository, opts ...Option) *Resolver {
	r := &Resolver{repo: repo, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve runs the cascade for the device at the current clock instant.
func (r *Resolver) Resolve(deviceID int) model.ResolutionResult {
	return r.ResolveAt(deviceID, r.now())
}

// ResolveAt runs the cascade for the device at an explicit instant. It is a
// total function: any device, any data shape, it always hands back a result
// and never errors: an unattended screen that gets no instruction should
// show nothing gracefully, not crash its renderer.
func (r *Resolver) ResolveAt(deviceID int, at time.Time) model.ResolutionResult {
	device, err := r.repo.GetDevice(deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("device lookup failed")
	}
	if device == nil {
		return model.ResolutionResult{
			Type:     model.ResolutionEmpty,
			Priority: model.PriorityEmpty,
			Reason:   "device not found",
		}
	}

	if res, ok := r.resolveCampaign(*device, at); ok {
		return res
	}
	if res, ok := r.resolveSchedule(*device, at); ok {
		return res
	}
	if res, ok := r.resolveLayout(*device); ok {
		return res
	}
	if res, ok := r.resolvePlaylist(*device); ok {
		return res
	}

	log.Debug().Int("device_id", device.ID).Msg("nothing assigned, resolving empty")
	return model.ResolutionResult{
		Type:     model.ResolutionEmpty,
		Priority: model.PriorityEmpty,
		Reason:   "no content assigned",
	}
}

func (r *Resolver) resolveCampaign(device model.Device, at time.Time) (model.ResolutionResult, bool) {
	campaigns, err := r.repo.ListCampaigns()
	if err != nil {
		log.Error().Err(err).Int("device_id", device.ID).Msg("campaign listing failed, skipping campaign tier")
		return model.ResolutionResult{}, false
	}

	active := SelectActive(campaigns, device, at)
	if len(active) == 0 {
		return model.ResolutionResult{}, false
	}

	winner := active[0]
	reason := "active campaign"
	if len(winner.Entries) == 0 {
		// The campaign still wins the cascade; the caller sees from the
		// reason that there is nothing to pick from it.
		reason = "campaign has no content"
	}
	log.Debug().Int("device_id", device.ID).Int("campaign_id", winner.ID).
		Int("priority", winner.Priority).Msg("resolved active campaign")
	return model.ResolutionResult{
		Type:     model.ResolutionCampaign,
		Content:  winner,
		Priority: model.PriorityCampaignBase + winner.Priority,
		Reason:   reason,
	}, true
}

func (r *Resolver) resolveSchedule(device model.Device, at time.Time) (model.ResolutionResult, bool) {
	if device.ScheduleID == nil {
		return model.ResolutionResult{}, false
	}
	schedule, err := r.repo.GetSchedule(*device.ScheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", *device.ScheduleID).Msg("schedule lookup failed, skipping schedule tier")
		return model.ResolutionResult{}, false
	}
	if schedule == nil {
		return model.ResolutionResult{}, false
	}

	block := MatchBlock(*schedule, at, LoadLocation(device.Timezone))
	if block == nil {
		return model.ResolutionResult{}, false
	}
	log.Debug().Int("device_id", device.ID).Int("block_id", block.ID).Msg("resolved schedule block")
	return model.ResolutionResult{
		Type:     model.ResolutionSchedule,
		Content:  *block,
		Priority: model.PrioritySchedule,
		Reason:   "current schedule block",
	}, true
}

func (r *Resolver) resolveLayout(device model.Device) (model.ResolutionResult, bool) {
	if device.LayoutID == nil {
		return model.ResolutionResult{}, false
	}
	layout, err := r.repo.GetLayout(*device.LayoutID)
	if err != nil {
		log.Error().Err(err).Int("layout_id", *device.LayoutID).Msg("layout lookup failed, skipping layout tier")
		return model.ResolutionResult{}, false
	}
	if layout == nil {
		return model.ResolutionResult{}, false
	}
	return model.ResolutionResult{
		Type:     model.ResolutionLayout,
		Content:  *layout,
		Priority: model.PriorityLayout,
		Reason:   "assigned layout",
	}, true
}

func (r *Resolver) resolvePlaylist(device model.Device) (model.ResolutionResult, bool) {
	if device.PlaylistID == nil {
		return model.ResolutionResult{}, false
	}
	playlist, err := r.repo.GetPlaylist(*device.PlaylistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", *device.PlaylistID).Msg("playlist lookup failed, skipping playlist tier")
		return model.ResolutionResult{}, false
	}
	if playlist == nil {
		return model.ResolutionResult{}, false
	}
	return model.ResolutionResult{
		Type:     model.ResolutionPlaylist,
		Content:  *playlist,
		Priority: model.PriorityPlaylist,
		Reason:   "default playlist",
	}, true
}
