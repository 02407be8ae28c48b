// Package strength classifies goals as even strength, power play or
// short-handed from the penalty timeline at the moment of the goal.
package strength

import (
	"github.com/pable/go-floorball-stats/internal/events"
	"github.com/pable/go-floorball-stats/internal/model"
	"github.com/pable/go-floorball-stats/internal/penalty"
)

// Result is the classification of one goal.
type Result struct {
	Scoring  model.Venue // VenueUnknown when it could not be inferred
	Strength model.Strength
	// Cancelled is set when a power-play goal ended one of the defending team's penalties.
	Cancelled bool
}

// Classifier classifies the goals of one match in replay order. It remembers
// the last parsed score to infer the scoring side of goals recorded without one.
type Classifier struct {
	timeline  *penalty.Timeline
	lastScore *events.Score
}

// New returns a classifier reading and mutating tl.
func New(tl *penalty.Timeline) *Classifier {
	return &Classifier{timeline: tl}
}

// Classify determines the scoring side and strength of goal ev. On a power
// play exactly one defending penalty is cancelled, however many are active.
func (c *Classifier) Classify(ev model.NormalizedEvent) Result {
	scoring := ev.Venue
	cur, hasScore := events.ParseScore(ev.ScoreText)
	if scoring == model.VenueUnknown && hasScore {
		scoring = c.infer(cur)
	}
	if hasScore {
		c.lastScore = &cur
	}

	res := Result{Scoring: scoring}
	if scoring == model.VenueUnknown {
		return res
	}

	defending := scoring.Opponent()
	t := ev.TimeAbsSeconds
	a := c.timeline.ActiveCount(scoring, t)
	b := c.timeline.ActiveCount(defending, t)
	switch {
	case b > a:
		res.Strength = model.StrengthPowerPlay
		res.Cancelled = c.timeline.CancelOne(defending, t)
	case a > b:
		res.Strength = model.StrengthShortHanded
	}
	return res
}

// infer finds the side that scored from the change against the previous
// score, or from the current leader when no score has been seen yet.
func (c *Classifier) infer(cur events.Score) model.Venue {
	if c.lastScore != nil {
		last := *c.lastScore
		switch {
		case cur.Home == last.Home+1 && cur.Away == last.Away:
			return model.VenueHome
		case cur.Away == last.Away+1 && cur.Home == last.Home:
			return model.VenueAway
		}
		return model.VenueUnknown
	}
	switch {
	case cur.Home > cur.Away:
		return model.VenueHome
	case cur.Away > cur.Home:
		return model.VenueAway
	}
	return model.VenueUnknown
}
