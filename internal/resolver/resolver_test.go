package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// memRepo is the in-memory repository the engine tests run against;
// production uses the Postgres store behind the same interfaces.
type memRepo struct {
	devices   map[int]model.Device
	campaigns []model.Campaign
	schedules map[int]model.Schedule
	layouts   map[int]model.Layout
	playlists map[int]model.Playlist
}

func newMemRepo() *memRepo {
	return &memRepo{
		devices:   map[int]model.Device{},
		schedules: map[int]model.Schedule{},
		layouts:   map[int]model.Layout{},
		playlists: map[int]model.Playlist{},
	}
}

func (m *memRepo) GetDevice(id int) (*model.Device, error) {
	if d, ok := m.devices[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (m *memRepo) ListCampaigns() ([]model.Campaign, error) { return m.campaigns, nil }

func (m *memRepo) GetSchedule(id int) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memRepo) GetLayout(id int) (*model.Layout, error) {
	if l, ok := m.layouts[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (m *memRepo) GetPlaylist(id int) (*model.Playlist, error) {
	if p, ok := m.playlists[id]; ok {
		return &p, nil
	}
	return nil, nil
}

var _ Repository = (*memRepo)(nil)

// Wednesday afternoon, the reference instant for the cascade scenarios.
var wednesdayAfternoon = time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC)

func newTestResolver(repo *memRepo) *Resolver {
	return New(repo, WithClock(func() time.Time { return wednesdayAfternoon }))
}

func TestResolveDeviceNotFound(t *testing.T) {
	r := newTestResolver(newMemRepo())

	got := r.Resolve(404)
	assert.Equal(t, model.ResolutionEmpty, got.Type)
	assert.Nil(t, got.Content)
	assert.Equal(t, model.PriorityEmpty, got.Priority)
	assert.Equal(t, "device not found", got.Reason)
}

func TestResolveScheduleBlock(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", ScheduleID: intPtr(5), PlaylistID: intPtr(9)}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "default"}
	repo.schedules[5] = model.Schedule{ID: 5, Blocks: []model.ScheduleTimeBlock{
		{ID: 77, PlaylistID: 8, StartMinute: 12 * 60, EndMinute: 18 * 60},
	}}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionSchedule, got.Type)
	assert.Equal(t, model.PrioritySchedule, got.Priority)
	assert.Equal(t, "current schedule block", got.Reason)

	blk, ok := got.Content.(model.ScheduleTimeBlock)
	require.True(t, ok)
	assert.Equal(t, 77, blk.ID)
}

func TestResolveCampaignBeatsSchedule(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", ScheduleID: intPtr(5)}
	repo.schedules[5] = model.Schedule{ID: 5, Blocks: []model.ScheduleTimeBlock{
		{ID: 77, StartMinute: 12 * 60, EndMinute: 18 * 60},
	}}
	repo.campaigns = []model.Campaign{{
		ID:         3,
		Status:     model.CampaignStatusActive,
		Priority:   2,
		TargetType: model.TargetAll,
		Entries:    []model.CampaignContentEntry{{ID: 1, ContentID: 100, Weight: 1}},
	}}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionCampaign, got.Type)
	assert.Equal(t, "active campaign", got.Reason)
	assert.Greater(t, got.Priority, model.PrioritySchedule)
	assert.Equal(t, model.PriorityCampaignBase+2, got.Priority)
}

func TestResolvePlaylistFallback(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", PlaylistID: intPtr(9)}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "ambient loop"}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionPlaylist, got.Type)
	assert.Equal(t, model.PriorityPlaylist, got.Priority)
	assert.Equal(t, "default playlist", got.Reason)

	pl, ok := got.Content.(model.Playlist)
	require.True(t, ok)
	assert.Equal(t, 9, pl.ID)
}

func TestResolveNothingAssigned(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC"}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionEmpty, got.Type)
	assert.Nil(t, got.Content)
	assert.Equal(t, "no content assigned", got.Reason)
}

func TestResolveHighestPriorityCampaignWins(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC"}
	repo.campaigns = []model.Campaign{
		{ID: 1, Status: model.CampaignStatusActive, Priority: 5, TargetType: model.TargetAll},
		{ID: 2, Status: model.CampaignStatusActive, Priority: 100, TargetType: model.TargetAll},
	}

	got := newTestResolver(repo).Resolve(1)
	require.Equal(t, model.ResolutionCampaign, got.Type)
	c, ok := got.Content.(model.Campaign)
	require.True(t, ok)
	assert.Equal(t, 2, c.ID)
	assert.Equal(t, model.PriorityCampaignBase+100, got.Priority)
}

func TestResolveFutureCampaignExcluded(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", PlaylistID: intPtr(9)}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "default"}
	repo.campaigns = []model.Campaign{{
		ID:         1,
		Status:     model.CampaignStatusActive,
		Priority:   50,
		TargetType: model.TargetAll,
		StartDate:  timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionPlaylist, got.Type)
}

func TestResolveCascadeNeverSkipsATier(t *testing.T) {
	repo := newMemRepo()
	// Schedule exists but its only block ends before the instant, so the
	// schedule tier yields nothing and the cascade keeps descending.
	repo.devices[1] = model.Device{
		ID: 1, Timezone: "UTC",
		ScheduleID: intPtr(5), LayoutID: intPtr(6), PlaylistID: intPtr(9),
	}
	repo.schedules[5] = model.Schedule{ID: 5, Blocks: []model.ScheduleTimeBlock{
		{ID: 1, StartMinute: 8 * 60, EndMinute: 12 * 60},
	}}
	repo.layouts[6] = model.Layout{ID: 6, Name: "menu board"}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "default"}

	r := newTestResolver(repo)

	got := r.Resolve(1)
	assert.Equal(t, model.ResolutionLayout, got.Type)
	assert.Equal(t, model.PriorityLayout, got.Priority)
	assert.Equal(t, "assigned layout", got.Reason)

	// Drop the layout record; the playlist tier takes over.
	delete(repo.layouts, 6)
	got = r.Resolve(1)
	assert.Equal(t, model.ResolutionPlaylist, got.Type)

	// Drop the playlist record too; nothing is left.
	delete(repo.playlists, 9)
	got = r.Resolve(1)
	assert.Equal(t, model.ResolutionEmpty, got.Type)
	assert.Equal(t, "no content assigned", got.Reason)
}

func TestResolveDanglingReferencesFallThrough(t *testing.T) {
	repo := newMemRepo()
	// All three references point at records that do not exist.
	repo.devices[1] = model.Device{
		ID: 1, Timezone: "UTC",
		ScheduleID: intPtr(50), LayoutID: intPtr(60), PlaylistID: intPtr(90),
	}

	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionEmpty, got.Type)
	assert.Nil(t, got.Content)
}

func TestResolveCampaignWithoutEntries(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", PlaylistID: intPtr(9)}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "default"}
	repo.campaigns = []model.Campaign{{
		ID:         1,
		Status:     model.CampaignStatusActive,
		Priority:   5,
		TargetType: model.TargetAll,
	}}

	// The campaign still wins the cascade; the reason tells the caller that
	// the weighted pick will come back empty.
	got := newTestResolver(repo).Resolve(1)
	assert.Equal(t, model.ResolutionCampaign, got.Type)
	assert.Equal(t, "campaign has no content", got.Reason)
}

func TestResolveTargetingScopesCampaigns(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", PlaylistID: intPtr(9)}
	repo.devices[2] = model.Device{ID: 2, Timezone: "UTC", PlaylistID: intPtr(9)}
	repo.playlists[9] = model.Playlist{ID: 9, Name: "default"}
	repo.campaigns = []model.Campaign{{
		ID:         1,
		Status:     model.CampaignStatusActive,
		Priority:   5,
		TargetType: model.TargetDevices,
		DeviceIDs:  []int{1},
		Entries:    []model.CampaignContentEntry{{ID: 1, ContentID: 100, Weight: 1}},
	}}

	r := newTestResolver(repo)
	assert.Equal(t, model.ResolutionCampaign, r.Resolve(1).Type)
	assert.Equal(t, model.ResolutionPlaylist, r.Resolve(2).Type)
}

func TestResolvePriorityTotalOrder(t *testing.T) {
	// Build one result per tier and check the strict ordering between them.
	repo := newMemRepo()
	repo.devices[1] = model.Device{
		ID: 1, Timezone: "UTC",
		ScheduleID: intPtr(5), LayoutID: intPtr(6), PlaylistID: intPtr(9),
	}
	repo.schedules[5] = model.Schedule{ID: 5, Blocks: []model.ScheduleTimeBlock{
		{ID: 1, StartMinute: 0, EndMinute: 24 * 60},
	}}
	repo.layouts[6] = model.Layout{ID: 6}
	repo.playlists[9] = model.Playlist{ID: 9}
	repo.campaigns = []model.Campaign{{
		ID: 1, Status: model.CampaignStatusActive, Priority: 0, TargetType: model.TargetAll,
	}}

	r := newTestResolver(repo)

	campaign := r.Resolve(1)
	repo.campaigns = nil
	schedule := r.Resolve(1)
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", LayoutID: intPtr(6), PlaylistID: intPtr(9)}
	layout := r.Resolve(1)
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC", PlaylistID: intPtr(9)}
	playlist := r.Resolve(1)
	repo.devices[1] = model.Device{ID: 1, Timezone: "UTC"}
	empty := r.Resolve(1)

	assert.Greater(t, campaign.Priority, schedule.Priority)
	assert.Greater(t, schedule.Priority, layout.Priority)
	assert.Greater(t, layout.Priority, playlist.Priority)
	assert.Greater(t, playlist.Priority, empty.Priority)
}

func TestResolveDeterministic(t *testing.T) {
	repo := newMemRepo()
	repo.devices[1] = model.Device{ID: 1, Timezone: "America/New_York", ScheduleID: intPtr(5)}
	repo.schedules[5] = model.Schedule{ID: 5, Blocks: []model.ScheduleTimeBlock{
		{ID: 1, StartMinute: 9 * 60, EndMinute: 10 * 60},
	}}
	repo.campaigns = []model.Campaign{
		{ID: 1, Status: model.CampaignStatusActive, Priority: 3, TargetType: model.TargetAll,
			DaysOfWeek: []int{3}},
	}

	r := newTestResolver(repo)
	first := r.Resolve(1)
	second := r.Resolve(1)
	assert.Equal(t, first, second)
}
