package resolver

import (
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// campaignWindow lifts a campaign's time fields into an ActiveWindow.
func campaignWindow(c model.Campaign) ActiveWindow {
	return ActiveWindow{
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		DaysOfWeek:  c.DaysOfWeek,
		StartMinute: c.StartMinute,
		EndMinute:   c.EndMinute,
	}
}

// IsCampaignActive reports whether c's date range, day-of-week set, and daily
// time window all contain at, evaluated in loc. Status and targeting are the
// caller's concern; this predicate looks only at the time fields.
func IsCampaignActive(c model.Campaign, at time.Time, loc *time.Location) bool {
	return campaignWindow(c).Contains(at, loc)
}

// Targets reports whether c applies to d: the device is in the campaign's
// explicit device list, one of the device's groups is in the campaign's group
// list, or the campaign targets all devices.
func Targets(c model.Campaign, d model.Device) bool {
	switch c.TargetType {
	case model.TargetAll:
		return true
	case model.TargetDevices:
		for _, id := range c.DeviceIDs {
			if id == d.ID {
				return true
			}
		}
	case model.TargetGroups:
		for _, gid := range c.GroupIDs {
			for _, dg := range d.GroupIDs {
				if gid == dg {
					return true
				}
			}
		}
	}
	return false
}

// SelectActive filters campaigns down to those that are active-status, target
// d, and are inside their active window at the given instant (evaluated in
// the device's timezone), ordered by priority descending. The sort is stable,
// so equal-priority campaigns keep the order the caller supplied; the store
// returns them in creation order, which makes creation time the tie-break.
func SelectActive(campaigns []model.Campaign, d model.Device, at time.Time) []model.Campaign {
	loc := LoadLocation(d.Timezone)

	var out []model.Campaign
	for _, c := range campaigns {
		if c.Status != model.CampaignStatusActive {
			continue
		}
		if !Targets(c, d) {
			continue
		}
		if !IsCampaignActive(c, at, loc) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
