package aggregator

import (
	"github.com/pable/go-floorball-stats/internal/events"
	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

// attemptCount is the number of power-play chances a penalty hands the
// opponent.
func attemptCount(minutes int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes == 4:
		return 2
	default:
		return 1
	}
}

// TeamLines replays one match for both teams. ok is false when the match has
// neither a lineup nor any event; such a match is not a game for either side.
//
// Penalties and goals whose side cannot be determined are not counted.
func TeamLines(rec *model.MatchRecord) (home, away model.TeamAgg, ok bool) {
	lu := lineup.Resolve(rec.ProtocolPlayers, rec.UploadLineups)
	source, evs := events.FromRecord(rec)
	if lu.Empty() && source == lineup.SourceNone {
		return model.TeamAgg{}, model.TeamAgg{}, false
	}

	home.Games, away.Games = 1, 1
	side := func(v model.Venue) *model.TeamAgg {
		switch v {
		case model.VenueHome:
			return &home
		case model.VenueAway:
			return &away
		default:
			return nil
		}
	}

	Replay(lu, evs, func(line model.EventLine) {
		e := line.Event
		if pen := side(e.Venue); pen != nil && e.PenaltyMinutes > 0 {
			n := attemptCount(e.PenaltyMinutes)
			pen.BPAttempts += n
			side(e.Venue.Opponent()).PPAttempts += n
		}
		if !e.IsGoal {
			return
		}
		scoring := side(line.ScoringVenue)
		if scoring == nil {
			return
		}
		defending := side(line.ScoringVenue.Opponent())
		scoring.GoalsFor++
		defending.GoalsAgainst++
		switch line.Strength {
		case model.StrengthPowerPlay:
			scoring.PPGoalsFor++
			defending.BPGoalsAgainst++
		case model.StrengthShortHanded:
			scoring.BPGoalsFor++
			defending.PPGoalsAgainst++
		}
	})
	return home, away, true
}
