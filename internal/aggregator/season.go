package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

// SeasonStartYear returns the year the August-July season containing d started in.
func SeasonStartYear(d time.Time) int {
	if d.Month() >= time.August {
		return d.Year()
	}
	return d.Year() - 1
}

// SeasonLabel renders a season start year as "2023/24".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d/%02d", startYear, (startYear+1)%100)
}

type groupKey struct {
	team, league, stage string
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

// Career folds every match the player appears in into season buckets keyed by
// (team, league, stage) and a career total. Matches without a date, without a
// lineup, or without the player are skipped. Duplicate match ids are counted once;
// matches without an id are always distinct.
//
// Every bucket, subtotal and the total are exact sums of per-match lines, so
// the season subtotals always add up to Overall.
func Career(name, displayName string, records []model.MatchRecord) model.Career {
	key := lineup.NameKey(name)
	out := model.Career{NameKey: key}

	bySeason := make(map[int]map[groupKey]model.PlayerAgg)
	seen := make(map[string]struct{}, len(records))

	for i := range records {
		rec := &records[i]
		if rec.Summary.Date == nil {
			continue
		}
		id := rec.Summary.ExternalID
		if _, dup := seen[id]; dup {
			continue
		}

		line, entry, ok := PlayerLine(key, rec)
		if !ok {
			continue
		}
		if id != "" {
			seen[id] = struct{}{}
		}

		season := SeasonStartYear(*rec.Summary.Date)
		gk := groupKey{
			team:   orDash(rec.Summary.TeamName(entry.Venue)),
			league: orDash(rec.Summary.League),
			stage:  orDash(rec.Summary.Stage),
		}
		groups := bySeason[season]
		if groups == nil {
			groups = make(map[groupKey]model.PlayerAgg)
			bySeason[season] = groups
		}
		groups[gk] = groups[gk].Add(line)
		out.Overall = out.Overall.Add(line)
	}

	out.Seasons = seasonBlocks(bySeason)
	out.DisplayName = resolveName(key, displayName, records)
	return out
}

func seasonBlocks(bySeason map[int]map[groupKey]model.PlayerAgg) []model.SeasonBlock {
	// Collators keep internal buffers; one set per call keeps Career safe to
	// run for several players at once.
	teamColl := collate.New(language.Danish, collate.Loose, collate.Numeric)
	textColl := collate.New(language.Danish, collate.Loose)

	years := make([]int, 0, len(bySeason))
	for y := range bySeason {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	blocks := make([]model.SeasonBlock, 0, len(years))
	for _, y := range years {
		groups := bySeason[y]
		rows := make([]model.SeasonRow, 0, len(groups))
		for gk, agg := range groups {
			rows = append(rows, model.SeasonRow{Team: gk.team, League: gk.league, Stage: gk.stage, Agg: agg})
		}
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if c := teamColl.CompareString(a.Team, b.Team); c != 0 {
				return c < 0
			}
			if c := textColl.CompareString(a.League, b.League); c != 0 {
				return c < 0
			}
			if c := textColl.CompareString(a.Stage, b.Stage); c != 0 {
				return c < 0
			}
			// Collation-equal keys still need a fixed order for repeatable output.
			return a.Team+a.League+a.Stage < b.Team+b.League+b.Stage
		})

		var subtotal model.PlayerAgg
		for _, r := range rows {
			subtotal = subtotal.Add(r.Agg)
		}
		blocks = append(blocks, model.SeasonBlock{
			StartYear: y,
			Label:     SeasonLabel(y),
			Rows:      rows,
			Subtotal:  subtotal,
		})
	}
	return blocks
}

// resolveName picks the spelling used in the most recent dated match, then
// the caller's display name, then the key itself.
func resolveName(key, displayName string, records []model.MatchRecord) string {
	var (
		best     string
		bestDate time.Time
		found    bool
	)
	consider := func(name string, date *time.Time) {
		name = strings.TrimSpace(name)
		if name == "" || lineup.NameKey(name) != key {
			return
		}
		var d time.Time
		if date != nil {
			d = *date
		}
		if !found || d.After(bestDate) {
			best, bestDate, found = name, d, true
		}
	}
	for i := range records {
		rec := &records[i]
		for _, p := range rec.ProtocolPlayers {
			consider(p.Name, rec.Summary.Date)
		}
		for _, l := range rec.UploadLineups {
			consider(l.Name, rec.Summary.Date)
		}
	}
	if found {
		return best
	}
	if d := strings.TrimSpace(displayName); d != "" {
		return d
	}
	return key
}
