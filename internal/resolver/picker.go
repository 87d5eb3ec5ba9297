package resolver

import (
	"math/rand"
	"time"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// Picker performs probability-proportional-to-weight selection among a
// campaign's content entries. The random source is injectable so tests can
// seed it; a Picker is not safe for concurrent use, callers that resolve in
// parallel should hold one per goroutine.
type Picker struct {
	rng *rand.Rand
}

// NewPicker builds a Picker from src, or from a time-seeded source when src
// is nil.
func NewPicker(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{rng: rand.New(src)}
}

// Pick draws one entry with probability proportional to its weight, or nil
// for an empty list. Zero, negative, or missing weights count as 1; a bad
// record must not break resolution for a live device. The last entry is the
// unconditional fallback so the walk can never fall through.
func (p *Picker) Pick(entries []model.CampaignContentEntry) *model.CampaignContentEntry {
	if len(entries) == 0 {
		return nil
	}

	total := 0
	for _, e := range entries {
		total += clampWeight(e.Weight)
	}

	draw := p.rng.Intn(total)
	for i := range entries {
		draw -= clampWeight(entries[i].Weight)
		if draw < 0 {
			return &entries[i]
		}
	}
	return &entries[len(entries)-1]
}

func clampWeight(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
