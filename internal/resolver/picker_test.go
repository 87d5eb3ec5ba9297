package resolver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

func entries(weights ...int) []model.CampaignContentEntry {
	out := make([]model.CampaignContentEntry, len(weights))
	for i, w := range weights {
		out[i] = model.CampaignContentEntry{ID: i + 1, ContentID: (i + 1) * 100, Weight: w}
	}
	return out
}

func TestPickEmpty(t *testing.T) {
	p := NewPicker(rand.NewSource(1))
	assert.Nil(t, p.Pick(nil))
	assert.Nil(t, p.Pick([]model.CampaignContentEntry{}))
}

func TestPickSingleEntry(t *testing.T) {
	p := NewPicker(rand.NewSource(1))
	got := p.Pick(entries(7))
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ID)
}

func TestPickClampsBadWeights(t *testing.T) {
	p := NewPicker(rand.NewSource(1))
	bad := entries(0, -5, 1)

	counts := map[int]int{}
	for i := 0; i < 3000; i++ {
		got := p.Pick(bad)
		require.NotNil(t, got)
		counts[got.ID]++
	}

	// All three clamp to weight 1, so each should land near a third.
	for id := 1; id <= 3; id++ {
		assert.InDelta(t, 1000, counts[id], 150, "entry %d", id)
	}
}

func TestPickDistribution(t *testing.T) {
	p := NewPicker(rand.NewSource(42))
	weighted := entries(70, 20, 10)

	counts := map[int]int{}
	for i := 0; i < 1000; i++ {
		got := p.Pick(weighted)
		require.NotNil(t, got)
		counts[got.ID]++
	}

	assert.InDelta(t, 700, counts[1], 50)
	assert.InDelta(t, 200, counts[2], 50)
	assert.InDelta(t, 100, counts[3], 50)
}

func TestPickDeterministicWithSeed(t *testing.T) {
	weighted := entries(3, 2, 1)

	a := NewPicker(rand.NewSource(7))
	b := NewPicker(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		ga, gb := a.Pick(weighted), b.Pick(weighted)
		require.NotNil(t, ga)
		require.NotNil(t, gb)
		assert.Equal(t, ga.ID, gb.ID)
	}
}

func TestPickNilSourceStillWorks(t *testing.T) {
	p := NewPicker(nil)
	got := p.Pick(entries(1, 1))
	require.NotNil(t, got)
}
