package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

var testDevice = model.Device{
	ID:       1,
	Name:     "lobby-tv",
	Timezone: "UTC",
	GroupIDs: []int{10, 11},
}

func activeCampaign(id, priority int) model.Campaign {
	return model.Campaign{
		ID:         id,
		Status:     model.CampaignStatusActive,
		Priority:   priority,
		TargetType: model.TargetAll,
	}
}

func TestTargets(t *testing.T) {
	t.Run("all devices", func(t *testing.T) {
		c := model.Campaign{TargetType: model.TargetAll}
		assert.True(t, Targets(c, testDevice))
	})

	t.Run("explicit device list", func(t *testing.T) {
		c := model.Campaign{TargetType: model.TargetDevices, DeviceIDs: []int{3, 1}}
		assert.True(t, Targets(c, testDevice))

		c.DeviceIDs = []int{3, 4}
		assert.False(t, Targets(c, testDevice))
	})

	t.Run("group intersection", func(t *testing.T) {
		c := model.Campaign{TargetType: model.TargetGroups, GroupIDs: []int{99, 11}}
		assert.True(t, Targets(c, testDevice))

		c.GroupIDs = []int{99}
		assert.False(t, Targets(c, testDevice))
	})

	t.Run("unknown target type matches nothing", func(t *testing.T) {
		c := model.Campaign{TargetType: "everything", DeviceIDs: []int{1}}
		assert.False(t, Targets(c, testDevice))
	})
}

func TestSelectActive(t *testing.T) {
	at := time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC)

	t.Run("only active status participates", func(t *testing.T) {
		draft := activeCampaign(1, 5)
		draft.Status = model.CampaignStatusDraft
		paused := activeCampaign(2, 5)
		paused.Status = model.CampaignStatusPaused

		got := SelectActive([]model.Campaign{draft, paused, activeCampaign(3, 5)}, testDevice, at)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("expired and future campaigns are excluded", func(t *testing.T) {
		expired := activeCampaign(1, 5)
		expired.EndDate = timePtr(at.Add(-24 * time.Hour))
		future := activeCampaign(2, 5)
		future.StartDate = timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		got := SelectActive([]model.Campaign{expired, future}, testDevice, at)
		assert.Empty(t, got)
	})

	t.Run("day-of-week restriction", func(t *testing.T) {
		weekend := activeCampaign(1, 5)
		weekend.DaysOfWeek = []int{0, 6}

		assert.Empty(t, SelectActive([]model.Campaign{weekend}, testDevice, at))

		saturday := time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC)
		assert.Len(t, SelectActive([]model.Campaign{weekend}, testDevice, saturday), 1)
	})

	t.Run("daily time window", func(t *testing.T) {
		lunch := activeCampaign(1, 5)
		lunch.StartMinute = minutes(12, 0)
		lunch.EndMinute = minutes(18, 0)

		assert.Len(t, SelectActive([]model.Campaign{lunch}, testDevice, at), 1)

		morning := time.Date(2024, 1, 17, 8, 0, 0, 0, time.UTC)
		assert.Empty(t, SelectActive([]model.Campaign{lunch}, testDevice, morning))

		closing := time.Date(2024, 1, 17, 18, 0, 0, 0, time.UTC)
		assert.Empty(t, SelectActive([]model.Campaign{lunch}, testDevice, closing), "end is exclusive")
	})

	t.Run("sorted by priority descending", func(t *testing.T) {
		got := SelectActive([]model.Campaign{
			activeCampaign(1, 5),
			activeCampaign(2, 100),
			activeCampaign(3, 50),
		}, testDevice, at)
		require.Len(t, got, 3)
		assert.Equal(t, []int{2, 3, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("equal priority keeps supplied order", func(t *testing.T) {
		got := SelectActive([]model.Campaign{
			activeCampaign(4, 7),
			activeCampaign(5, 7),
			activeCampaign(6, 7),
		}, testDevice, at)
		require.Len(t, got, 3)
		assert.Equal(t, []int{4, 5, 6}, []int{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("targeting filters before sorting", func(t *testing.T) {
		other := activeCampaign(1, 999)
		other.TargetType = model.TargetDevices
		other.DeviceIDs = []int{42}

		got := SelectActive([]model.Campaign{other, activeCampaign(2, 1)}, testDevice, at)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ID)
	})

	t.Run("window evaluated in device timezone", func(t *testing.T) {
		nyDevice := testDevice
		nyDevice.Timezone = "America/New_York"

		evening := activeCampaign(1, 5)
		evening.StartMinute = minutes(9, 0)
		evening.EndMinute = minutes(10, 0)

		// 14:30 UTC on 2024-01-17 is 09:30 in New York.
		assert.Len(t, SelectActive([]model.Campaign{evening}, nyDevice, at), 1)
		assert.Empty(t, SelectActive([]model.Campaign{evening}, testDevice, at))
	})
}
