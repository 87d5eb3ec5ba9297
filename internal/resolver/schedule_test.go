package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

func block(id, startMin, endMin int, days ...int) model.ScheduleTimeBlock {
	return model.ScheduleTimeBlock{
		ID:          id,
		PlaylistID:  id * 10,
		StartMinute: startMin,
		EndMinute:   endMin,
		DaysOfWeek:  days,
	}
}

func TestMatchBlock(t *testing.T) {
	wednesday := time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC)

	t.Run("picks the containing block", func(t *testing.T) {
		s := model.Schedule{Blocks: []model.ScheduleTimeBlock{
			block(1, 8*60, 12*60),
			block(2, 12*60, 18*60),
			block(3, 18*60, 22*60),
		}}
		got := MatchBlock(s, wednesday, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("nil when no block covers the instant", func(t *testing.T) {
		s := model.Schedule{Blocks: []model.ScheduleTimeBlock{
			block(1, 8*60, 12*60),
		}}
		assert.Nil(t, MatchBlock(s, wednesday, time.UTC))
	})

	t.Run("empty schedule", func(t *testing.T) {
		assert.Nil(t, MatchBlock(model.Schedule{}, wednesday, time.UTC))
	})

	t.Run("day-of-week filters blocks", func(t *testing.T) {
		s := model.Schedule{Blocks: []model.ScheduleTimeBlock{
			block(1, 12*60, 18*60, 0, 6), // weekend only
			block(2, 12*60, 18*60, 3),    // Wednesday
		}}
		got := MatchBlock(s, wednesday, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("first stored match wins on overlap", func(t *testing.T) {
		s := model.Schedule{Blocks: []model.ScheduleTimeBlock{
			block(7, 12*60, 18*60),
			block(8, 14*60, 16*60),
		}}
		got := MatchBlock(s, wednesday, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, 7, got.ID)
	})

	t.Run("block end is exclusive", func(t *testing.T) {
		s := model.Schedule{Blocks: []model.ScheduleTimeBlock{
			block(1, 12*60, 14*60+30),
		}}
		assert.Nil(t, MatchBlock(s, wednesday, time.UTC))
	})
}
