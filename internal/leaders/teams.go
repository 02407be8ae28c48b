package leaders

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pable/go-floorball-stats/internal/aggregator"
	"github.com/pable/go-floorball-stats/internal/model"
)

// TeamRow is one ranked team.
type TeamRow struct {
	Rank int
	Team string
	Agg  model.TeamAgg
}

type matchTeams struct {
	home, away model.TeamAgg
	ok         bool
}

// Teams replays every selected match on the worker pool and ranks the teams
// by goal difference, then goals for, then name. Only matches with a lineup or
// events count as games.
func Teams(records []model.MatchRecord, opts Options) ([]TeamRow, error) {
	matches := selectMatches(records, opts)
	lines, err := run(matches, opts.Workers, func(rec model.MatchRecord) (matchTeams, error) {
		home, away, ok := aggregator.TeamLines(&rec)
		return matchTeams{home: home, away: away, ok: ok}, nil
	})
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]model.TeamAgg)
	for i, l := range lines {
		if !l.ok {
			continue
		}
		s := matches[i].Summary
		home, away := teamName(s.HomeTeam), teamName(s.AwayTeam)
		byTeam[home] = byTeam[home].Add(l.home)
		byTeam[away] = byTeam[away].Add(l.away)
	}

	out := make([]TeamRow, 0, len(byTeam))
	for name, agg := range byTeam {
		out = append(out, TeamRow{Team: name, Agg: agg})
	}

	coll := collate.New(language.Danish, collate.Loose, collate.Numeric)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if da, db := a.Agg.GoalDiff(), b.Agg.GoalDiff(); da != db {
			return da > db
		}
		if a.Agg.GoalsFor != b.Agg.GoalsFor {
			return a.Agg.GoalsFor > b.Agg.GoalsFor
		}
		if c := coll.CompareString(a.Team, b.Team); c != 0 {
			return c < 0
		}
		return a.Team < b.Team
	})

	if opts.Top > 0 && len(out) > opts.Top {
		out = out[:opts.Top]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func teamName(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
