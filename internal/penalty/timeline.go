// Package penalty tracks the shorthanded intervals of both teams while a
// match is replayed in time order.
package penalty

import "github.com/pable/go-floorball-stats/internal/model"

// Segment is a half-open interval [Start, End) during which Team plays one
// player short because of a single penalty.
type Segment struct {
	Team  model.Venue
	Start int
	End   int
}

// Active reports whether the segment covers second t.
func (s Segment) Active(t int) bool {
	return s.Start <= t && t < s.End
}

// Timeline holds the penalty segments of one match. Segments are only ever
// appended or shortened, never removed. A Timeline must not be shared between
// matches.
type Timeline struct {
	segs []Segment
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Add registers a penalty of the given shorthanded minutes starting at start.
// A double minor (4 minutes) is two back-to-back 2 minute segments, so a
// power-play goal only ends the first half of it.
func (tl *Timeline) Add(team model.Venue, start, minutes int) {
	if minutes <= 0 || team == model.VenueUnknown {
		return
	}
	if minutes == 4 {
		tl.segs = append(tl.segs,
			Segment{Team: team, Start: start, End: start + 120},
			Segment{Team: team, Start: start + 120, End: start + 240},
		)
		return
	}
	tl.segs = append(tl.segs, Segment{Team: team, Start: start, End: start + minutes*60})
}

// ActiveCount returns how many of team's segments cover second t.
func (tl *Timeline) ActiveCount(team model.Venue, t int) int {
	n := 0
	for _, s := range tl.segs {
		if s.Team == team && s.Active(t) {
			n++
		}
	}
	return n
}

// CancelOne ends, at t, the active segment of team that would otherwise end
// first. Reports whether a segment was shortened.
func (tl *Timeline) CancelOne(team model.Venue, t int) bool {
	best := -1
	for i, s := range tl.segs {
		if s.Team != team || !s.Active(t) {
			continue
		}
		if best < 0 || s.End < tl.segs[best].End {
			best = i
		}
	}
	if best < 0 {
		return false
	}
	tl.segs[best].End = t
	return true
}

// Segments returns a copy of the current segments in insertion order.
func (tl *Timeline) Segments() []Segment {
	out := make([]Segment, len(tl.segs))
	copy(out, tl.segs)
	return out
}
