package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-floorball-stats/internal/model"
)

func TestAttemptCount(t *testing.T) {
	assert.Equal(t, 0, attemptCount(0))
	assert.Equal(t, 1, attemptCount(2))
	assert.Equal(t, 2, attemptCount(4))
	assert.Equal(t, 1, attemptCount(5))
	assert.Equal(t, 1, attemptCount(10))
}

func TestTeamLines(t *testing.T) {
	rec := record("m1", date(2023, 10, 1),
		model.ProtocolEvent{Side: "AWAY", Period: "1", Time: "01:00", Number: "4", Penalty: "2"},
		model.ProtocolEvent{Side: "HOME", Period: "1", Time: "02:00", Number: "9", Goal: "1-0"},
		model.ProtocolEvent{Side: "HOME", Period: "1", Time: "05:00", Number: "11", Penalty: "4"},
		model.ProtocolEvent{Side: "HOME", Period: "1", Time: "06:00", Number: "9", Goal: "2-0"},
		model.ProtocolEvent{Side: "AWAY", Period: "1", Time: "10:00", Number: "4", Goal: "2-1"},
	)

	home, away, ok := TeamLines(&rec)
	require.True(t, ok)
	assert.Equal(t, model.TeamAgg{
		Games: 1, GoalsFor: 2, GoalsAgainst: 1,
		PPGoalsFor: 1, PPAttempts: 1,
		BPGoalsFor: 1, BPAttempts: 2,
	}, home)
	assert.Equal(t, model.TeamAgg{
		Games: 1, GoalsFor: 1, GoalsAgainst: 2,
		PPGoalsAgainst: 1, PPAttempts: 2,
		BPGoalsAgainst: 1, BPAttempts: 1,
	}, away)
	assert.Equal(t, 1, home.GoalDiff())
	assert.Equal(t, home.GoalsFor, away.GoalsAgainst)
}

func TestTeamLinesMisconductIsOneAttempt(t *testing.T) {
	rec := record("m1", date(2023, 10, 1),
		model.ProtocolEvent{Side: "HOME", Period: "2", Time: "03:00", Number: "9", Penalty: "2+10"},
	)
	home, away, ok := TeamLines(&rec)
	require.True(t, ok)
	assert.Equal(t, 1, home.BPAttempts)
	assert.Equal(t, 1, away.PPAttempts)
}

func TestTeamLinesWithoutData(t *testing.T) {
	rec := model.MatchRecord{Summary: model.MatchSummary{ExternalID: "m1", HomeTeam: "Falcon", AwayTeam: "Aarhus"}}
	_, _, ok := TeamLines(&rec)
	assert.False(t, ok)

	// A lineup alone makes the match a game for both sides.
	rec = record("m2", date(2023, 10, 1))
	home, away, ok := TeamLines(&rec)
	require.True(t, ok)
	assert.Equal(t, model.TeamAgg{Games: 1}, home)
	assert.Equal(t, model.TeamAgg{Games: 1}, away)
}
