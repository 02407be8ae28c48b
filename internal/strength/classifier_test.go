package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-floorball-stats/internal/model"
	"github.com/pable/go-floorball-stats/internal/penalty"
)

func goal(v model.Venue, t int, score string) model.NormalizedEvent {
	return model.NormalizedEvent{Venue: v, TimeAbsSeconds: t, ScoreText: score, IsGoal: true}
}

func TestPowerPlayCancelsPenalty(t *testing.T) {
	tl := penalty.New()
	tl.Add(model.VenueAway, 240, 2)
	c := New(tl)

	res := c.Classify(goal(model.VenueHome, 300, "1-0"))
	assert.Equal(t, model.VenueHome, res.Scoring)
	assert.Equal(t, model.StrengthPowerPlay, res.Strength)
	assert.True(t, res.Cancelled)
	assert.Equal(t, 300, tl.Segments()[0].End)

	// Penalty is over, so the next goal is even strength.
	res = c.Classify(goal(model.VenueHome, 310, "2-0"))
	assert.Equal(t, model.StrengthEven, res.Strength)
}

func TestShortHandedKeepsPenalty(t *testing.T) {
	tl := penalty.New()
	tl.Add(model.VenueHome, 240, 2)
	c := New(tl)

	res := c.Classify(goal(model.VenueHome, 300, "1-0"))
	assert.Equal(t, model.StrengthShortHanded, res.Strength)
	assert.False(t, res.Cancelled)
	assert.Equal(t, 360, tl.Segments()[0].End)
}

func TestEqualPenaltiesAreEven(t *testing.T) {
	tl := penalty.New()
	tl.Add(model.VenueHome, 240, 2)
	tl.Add(model.VenueAway, 250, 2)
	c := New(tl)

	res := c.Classify(goal(model.VenueAway, 300, "0-1"))
	assert.Equal(t, model.StrengthEven, res.Strength)
	assert.Equal(t, 360, tl.Segments()[0].End)
	assert.Equal(t, 370, tl.Segments()[1].End)
}

func TestPowerPlayCancelsOnlyOne(t *testing.T) {
	tl := penalty.New()
	tl.Add(model.VenueAway, 200, 2)
	tl.Add(model.VenueAway, 250, 2)
	c := New(tl)

	res := c.Classify(goal(model.VenueHome, 300, "1-0"))
	require.Equal(t, model.StrengthPowerPlay, res.Strength)
	assert.Equal(t, 1, tl.ActiveCount(model.VenueAway, 300))
}

func TestInferVenueFromScoreChange(t *testing.T) {
	tl := penalty.New()
	c := New(tl)

	res := c.Classify(goal(model.VenueUnknown, 10, "0-1"))
	assert.Equal(t, model.VenueAway, res.Scoring, "leader scored when there is no previous score")

	res = c.Classify(goal(model.VenueUnknown, 20, "1-1"))
	assert.Equal(t, model.VenueHome, res.Scoring)

	res = c.Classify(goal(model.VenueUnknown, 30, "3-1"))
	assert.Equal(t, model.VenueUnknown, res.Scoring, "a jump of two is ambiguous")

	// The last parsed score still moves forward.
	res = c.Classify(goal(model.VenueUnknown, 40, "3-2"))
	assert.Equal(t, model.VenueAway, res.Scoring)
}

func TestInferTiedFirstScoreIsUnknown(t *testing.T) {
	c := New(penalty.New())
	res := c.Classify(goal(model.VenueUnknown, 10, "0-0"))
	assert.Equal(t, model.VenueUnknown, res.Scoring)
	assert.Equal(t, model.StrengthEven, res.Strength)
}

func TestKnownVenueStillUpdatesLastScore(t *testing.T) {
	c := New(penalty.New())
	c.Classify(goal(model.VenueHome, 10, "1-0"))
	res := c.Classify(goal(model.VenueUnknown, 20, "1-1"))
	assert.Equal(t, model.VenueAway, res.Scoring)
}

func TestUnknownVenueWithoutScore(t *testing.T) {
	tl := penalty.New()
	tl.Add(model.VenueAway, 0, 2)
	c := New(tl)
	res := c.Classify(goal(model.VenueUnknown, 60, ""))
	assert.Equal(t, model.VenueUnknown, res.Scoring)
	assert.Equal(t, model.StrengthEven, res.Strength)
	assert.Equal(t, 120, tl.Segments()[0].End, "nothing cancelled without a scoring side")
}
