package resolver

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ActiveWindow is the combination of an optional date range, an optional
// day-of-week set, and an optional daily time window that decides whether a
// time-bounded entity applies at a given instant. All fields are optional;
// an absent field places no constraint.
type ActiveWindow struct {
	StartDate *time.Time
	EndDate   *time.Time

	// DaysOfWeek uses 0=Sunday..6=Saturday. Nil or empty means every day.
	DaysOfWeek []int

	// StartMinute/EndMinute bound a daily window in minutes since local
	// midnight, end exclusive. The window only applies when both are set.
	StartMinute *int
	EndMinute   *int
}

// LoadLocation resolves an IANA zone name, falling back to UTC when the name
// is empty or unknown. A device with a bad timezone keeps resolving rather
// than going dark.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("timezone", name).Msg("unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

// Contains reports whether at falls inside the window. Day-of-week and
// time-of-day are evaluated against local wall-clock time in loc; converting
// through the location (rather than applying a fixed UTC offset) keeps the
// boundaries correct across daylight-saving transitions. Date bounds are
// inclusive on both ends.
func (w ActiveWindow) Contains(at time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}

	if w.StartDate != nil && at.Before(*w.StartDate) {
		return false
	}
	if w.EndDate != nil && at.After(*w.EndDate) {
		return false
	}

	local := at.In(loc)

	if len(w.DaysOfWeek) > 0 && !containsDay(w.DaysOfWeek, int(local.Weekday())) {
		return false
	}

	if w.StartMinute != nil && w.EndMinute != nil {
		start, end := *w.StartMinute, *w.EndMinute
		if start >= end {
			// Midnight-crossing windows are not supported; the authoring
			// layer is expected to split them into two same-day windows.
			log.Warn().Int("start_minute", start).Int("end_minute", end).
				Msg("time window starts at or after its end, treating as never active")
			return false
		}
		minute := local.Hour()*60 + local.Minute()
		if minute < start || minute >= end {
			return false
		}
	}

	return true
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
