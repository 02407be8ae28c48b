package aggregator

import (
	"github.com/pable/go-floorball-stats/internal/events"
	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
	"github.com/pable/go-floorball-stats/internal/penalty"
	"github.com/pable/go-floorball-stats/internal/strength"
)

// Replay walks the normalized events of one match in order against a fresh
// penalty timeline and hands every annotated event to fn.
//
// Penalties are registered before goals recorded in the same row, and goals
// are classified against the timeline as mutated so far, so same-second
// events take effect in recorded order.
func Replay(lu *lineup.Lineup, evs []model.NormalizedEvent, fn func(model.EventLine)) {
	tl := penalty.New()
	cls := strength.New(tl)

	for _, e := range evs {
		line := model.EventLine{Event: e}

		if e.PenaltyMinutes > 0 {
			tl.Add(e.Venue, e.TimeAbsSeconds, e.PenaltyMinutes)
			line.Penalized = lookup(lu, e.Player1, e.Venue)
		}

		if e.IsGoal {
			res := cls.Classify(e)
			line.ScoringVenue = res.Scoring
			line.Strength = res.Strength
			line.Scorer = lookup(lu, e.Player1, res.Scoring)
			line.Assister = lookup(lu, e.Player2, res.Scoring)
		}

		fn(line)
	}
}

func lookup(lu *lineup.Lineup, jersey string, hint model.Venue) *model.LineupEntry {
	if jersey == "" {
		return nil
	}
	e, ok := lu.Lookup(jersey, hint)
	if !ok {
		return nil
	}
	return &e
}

// credit folds one annotated event into agg for the player identified by nameKey.
func credit(agg *model.PlayerAgg, line model.EventLine, nameKey string) {
	if line.Penalized != nil && lineup.NameKey(line.Penalized.Name) == nameKey {
		agg.PIM += line.Event.PenaltyMinutes
	}
	if !line.Event.IsGoal {
		return
	}
	// Scorer and assister are checked independently: a row naming the same
	// player twice credits both a goal and an assist.
	if line.Scorer != nil && lineup.NameKey(line.Scorer.Name) == nameKey {
		agg.Goals++
		agg.Points++
		switch line.Strength {
		case model.StrengthPowerPlay:
			agg.PPM++
			agg.PPP++
		case model.StrengthShortHanded:
			agg.BPM++
			agg.BPP++
		}
	}
	if line.Assister != nil && lineup.NameKey(line.Assister.Name) == nameKey {
		agg.Assists++
		agg.Points++
		switch line.Strength {
		case model.StrengthPowerPlay:
			agg.PPA++
			agg.PPP++
		case model.StrengthShortHanded:
			agg.BPA++
			agg.BPP++
		}
	}
}

// PlayerLine computes one player's stat line for one match. ok is false when
// the match has no lineup or the player is not in it; such a match contributes
// nothing, not even a game.
func PlayerLine(nameKey string, rec *model.MatchRecord) (agg model.PlayerAgg, entry model.LineupEntry, ok bool) {
	lu := lineup.Resolve(rec.ProtocolPlayers, rec.UploadLineups)
	if lu.Empty() {
		return model.PlayerAgg{}, model.LineupEntry{}, false
	}
	entry, ok = lu.Find(nameKey)
	if !ok {
		return model.PlayerAgg{}, model.LineupEntry{}, false
	}

	_, evs := events.FromRecord(rec)
	agg.Games = 1
	Replay(lu, evs, func(line model.EventLine) {
		credit(&agg, line, nameKey)
	})
	return agg, entry, true
}

// Report replays one match for display: the annotated event list plus a box
// score line for every lineup player of both sides.
func Report(rec *model.MatchRecord) model.MatchReport {
	lu := lineup.Resolve(rec.ProtocolPlayers, rec.UploadLineups)
	source, evs := events.FromRecord(rec)
	if lu.Empty() && source == lineup.SourceNone {
		return model.MatchReport{Summary: rec.Summary, Source: lineup.SourceNone}
	}
	if !lu.Empty() {
		source = lu.Source
	}

	var lines []model.EventLine
	Replay(lu, evs, func(line model.EventLine) {
		lines = append(lines, line)
	})

	box := func(v model.Venue) []model.BoxLine {
		var out []model.BoxLine
		for _, p := range lu.Side(v) {
			key := lineup.NameKey(p.Name)
			agg := model.PlayerAgg{Games: 1}
			for _, line := range lines {
				credit(&agg, line, key)
			}
			out = append(out, model.BoxLine{
				Player: p,
				Age:    AgeAt(p.BirthDate, rec.Summary.Date),
				Agg:    agg,
			})
		}
		sortBox(out)
		return out
	}

	return model.MatchReport{
		Summary: rec.Summary,
		Source:  source,
		Events:  lines,
		Home:    box(model.VenueHome),
		Away:    box(model.VenueAway),
	}
}
