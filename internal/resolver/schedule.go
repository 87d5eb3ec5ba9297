package resolver

import (
	"time"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// MatchBlock returns the first time-block of s whose day-of-week set and
// daily window contain at, evaluated in loc, or nil when no block matches.
// Blocks are checked in stored order; when the authoring layer lets windows
// overlap for the same day, the first stored match wins.
func MatchBlock(s model.Schedule, at time.Time, loc *time.Location) *model.ScheduleTimeBlock {
	for i := range s.Blocks {
		b := &s.Blocks[i]
		w := ActiveWindow{
			DaysOfWeek:  b.DaysOfWeek,
			StartMinute: &b.StartMinute,
			EndMinute:   &b.EndMinute,
		}
		if w.Contains(at, loc) {
			return b
		}
	}
	return nil
}
