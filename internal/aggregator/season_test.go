package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-floorball-stats/internal/model"
)

func TestSeasonStartYear(t *testing.T) {
	assert.Equal(t, 2023, SeasonStartYear(time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2022, SeasonStartYear(time.Date(2023, 7, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2023, SeasonStartYear(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSeasonLabel(t *testing.T) {
	assert.Equal(t, "2023/24", SeasonLabel(2023))
	assert.Equal(t, "1999/00", SeasonLabel(1999))
}

func goalBy(side, number, score string) model.ProtocolEvent {
	return model.ProtocolEvent{Side: side, Period: "1", Time: "01:00", Number: number, Goal: score}
}

func TestCareerSeasonsAndTotals(t *testing.T) {
	records := []model.MatchRecord{
		record("a", date(2022, 9, 10), goalBy("HOME", "9", "1-0")),
		record("b", date(2023, 3, 5), goalBy("HOME", "9", "1-0"), goalBy("HOME", "9", "2-0")),
		record("c", date(2023, 9, 1)),
	}
	records[2].Summary.Stage = "Slutspil"

	c := Career("Anders Jensen", "", records)
	assert.Equal(t, "anders jensen", c.NameKey)
	assert.Equal(t, "Anders Jensen", c.DisplayName)
	require.Len(t, c.Seasons, 2)

	assert.Equal(t, "2023/24", c.Seasons[0].Label, "newest season first")
	assert.Equal(t, 1, c.Seasons[0].Subtotal.Games)
	assert.Equal(t, "Slutspil", c.Seasons[0].Rows[0].Stage)

	assert.Equal(t, "2022/23", c.Seasons[1].Label)
	require.Len(t, c.Seasons[1].Rows, 1)
	assert.Equal(t, model.PlayerAgg{Games: 2, Goals: 3, Points: 3}, c.Seasons[1].Rows[0].Agg)

	assert.Equal(t, model.PlayerAgg{Games: 3, Goals: 3, Points: 3}, c.Overall)
}

func TestCareerSubtotalsSumToOverall(t *testing.T) {
	records := []model.MatchRecord{
		record("a", date(2021, 10, 1), goalBy("HOME", "9", "1-0")),
		record("b", date(2022, 10, 1), goalBy("HOME", "11", "1-0")),
		record("c", date(2023, 10, 1)),
		record("d", date(2023, 11, 1), model.ProtocolEvent{Side: "HOME", Time: "02:00", Number: "9", Penalty: "2"}),
	}
	records[3].Summary.HomeTeam = "Falcon 2"

	c := Career("Anders Jensen", "", records)
	var sum model.PlayerAgg
	for _, s := range c.Seasons {
		var rows model.PlayerAgg
		for _, r := range s.Rows {
			rows = rows.Add(r.Agg)
		}
		assert.Equal(t, s.Subtotal, rows)
		sum = sum.Add(s.Subtotal)
	}
	assert.Equal(t, c.Overall, sum)
	assert.Equal(t, 4, c.Overall.Games)
	assert.Equal(t, 2, c.Overall.PIM)
}

func TestCareerSkipsUndatedAndDuplicates(t *testing.T) {
	records := []model.MatchRecord{
		record("a", nil, goalBy("HOME", "9", "1-0")),
		record("b", date(2023, 10, 1), goalBy("HOME", "9", "1-0")),
		record("b", date(2023, 10, 1), goalBy("HOME", "9", "1-0")),
	}
	c := Career("Anders Jensen", "", records)
	assert.Equal(t, model.PlayerAgg{Games: 1, Goals: 1, Points: 1}, c.Overall)
}

func TestCareerCountsMatchesWithoutIDSeparately(t *testing.T) {
	records := []model.MatchRecord{
		record("", date(2023, 10, 1), goalBy("HOME", "9", "1-0")),
		record("", date(2023, 11, 1), goalBy("HOME", "9", "1-0")),
	}
	c := Career("Anders Jensen", "", records)
	assert.Equal(t, model.PlayerAgg{Games: 2, Goals: 2, Points: 2}, c.Overall)
}

func TestCareerUnknownPlayer(t *testing.T) {
	records := []model.MatchRecord{record("a", date(2023, 10, 1))}
	c := Career("Nobody Here", "Nobody", records)
	assert.Empty(t, c.Seasons)
	assert.Equal(t, model.PlayerAgg{}, c.Overall)
	assert.Equal(t, "Nobody", c.DisplayName)

	c = Career("Nobody Here", "", nil)
	assert.Equal(t, "nobody here", c.DisplayName)
}

func TestCareerIsOrderIndependent(t *testing.T) {
	records := []model.MatchRecord{
		record("a", date(2021, 10, 1), goalBy("HOME", "9", "1-0")),
		record("b", date(2022, 10, 1), goalBy("AWAY", "4", "0-1")),
		record("c", date(2023, 10, 1), goalBy("HOME", "9", "1-0")),
	}
	forward := Career("Anders Jensen", "", records)
	reversed := Career("Anders Jensen", "", []model.MatchRecord{records[2], records[1], records[0]})
	assert.Equal(t, forward, reversed)

	again := Career("Anders Jensen", "", records)
	assert.Equal(t, forward, again)
}

func TestCareerRowOrder(t *testing.T) {
	mk := func(id, team, league string) model.MatchRecord {
		r := record(id, date(2023, 10, 1))
		r.Summary.HomeTeam = team
		r.Summary.League = league
		return r
	}
	records := []model.MatchRecord{
		mk("1", "Team 10", "Liga"),
		mk("2", "Team 2", "Liga"),
		mk("3", "Ålborg", "Liga"),
		mk("4", "Viborg", "Liga"),
		mk("5", "Team 2", "1. division"),
		mk("6", "", ""),
	}
	c := Career("Anders Jensen", "", records)
	require.Len(t, c.Seasons, 1)

	var got []string
	for _, r := range c.Seasons[0].Rows {
		got = append(got, r.Team+"|"+r.League)
	}
	assert.Equal(t, []string{
		"-|-",
		"Team 2|1. division",
		"Team 2|Liga",
		"Team 10|Liga",
		"Viborg|Liga",
		"Ålborg|Liga",
	}, got)
}

func TestCareerDisplayNameFromLatestMatch(t *testing.T) {
	older := record("a", date(2021, 10, 1))
	older.ProtocolPlayers[0].Name = "ANDERS JENSEN"
	newer := record("b", date(2023, 10, 1))
	newer.ProtocolPlayers[0].Name = "Anders  Jensen"

	c := Career("anders jensen", "typed name", []model.MatchRecord{newer, older})
	assert.Equal(t, "Anders  Jensen", c.DisplayName)
}
