// Package leaders computes many player careers and team tables at once on a
// bounded worker pool and ranks them.
package leaders

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pable/go-floorball-stats/internal/aggregator"
	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

// Options controls a leaderboard or team table.
type Options struct {
	Season  int    // season start year, 0 for every season
	League  string // case-insensitive league name, empty for every league
	Top     int    // 0 keeps every row
	Workers int

	// AsOf is the reference date for player ages, nil for today.
	AsOf *time.Time
}

// Entry is one ranked player.
type Entry struct {
	Rank    int
	NameKey string
	Name    string
	Team    string // team of the player's most recent match in range
	Age     int    // -1 when unknown
	Agg     model.PlayerAgg
}

// selectMatches keeps the dated matches inside the season and league of opts.
// Matches sharing a non-empty id are kept once.
func selectMatches(records []model.MatchRecord, opts Options) []model.MatchRecord {
	league := strings.TrimSpace(opts.League)
	seen := make(map[string]struct{}, len(records))
	var out []model.MatchRecord
	for _, rec := range records {
		if rec.Summary.Date == nil {
			continue
		}
		if opts.Season != 0 && aggregator.SeasonStartYear(*rec.Summary.Date) != opts.Season {
			continue
		}
		if league != "" && !strings.EqualFold(strings.TrimSpace(rec.Summary.League), league) {
			continue
		}
		if id := rec.Summary.ExternalID; id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, rec)
	}
	return out
}

type playerResult struct {
	career model.Career
	team   string
	birth  string
}

// Compute ranks every player appearing in the selected matches by points,
// then goals, then name. Players without a game in range are left out.
func Compute(records []model.MatchRecord, opts Options) ([]Entry, error) {
	byKey := indexByPlayer(selectMatches(records, opts))
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results, err := run(keys, opts.Workers, func(key string) (playerResult, error) {
		recs := byKey[key]
		team, birth := lastAppearance(key, recs)
		return playerResult{
			career: aggregator.Career(key, "", recs),
			team:   team,
			birth:  birth,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, r := range results {
		c := r.career
		if c.Overall.Games == 0 {
			continue
		}
		out = append(out, Entry{
			NameKey: c.NameKey,
			Name:    c.DisplayName,
			Team:    r.team,
			Age:     aggregator.AgeAt(r.birth, opts.AsOf),
			Agg:     c.Overall,
		})
	}

	coll := collate.New(language.Danish, collate.Loose)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Agg.Points != b.Agg.Points {
			return a.Agg.Points > b.Agg.Points
		}
		if a.Agg.Goals != b.Agg.Goals {
			return a.Agg.Goals > b.Agg.Goals
		}
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.NameKey < b.NameKey
	})

	if opts.Top > 0 && len(out) > opts.Top {
		out = out[:opts.Top]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// lastAppearance returns the team of the player's most recent match and the
// most recent non-empty birth date found in a lineup.
func lastAppearance(nameKey string, records []model.MatchRecord) (team, birth string) {
	var teamAt, birthAt time.Time
	for i := range records {
		rec := &records[i]
		if rec.Summary.Date == nil {
			continue
		}
		lu := lineup.Resolve(rec.ProtocolPlayers, rec.UploadLineups)
		e, ok := lu.Find(nameKey)
		if !ok {
			continue
		}
		d := *rec.Summary.Date
		if team == "" || d.After(teamAt) {
			team, teamAt = strings.TrimSpace(rec.Summary.TeamName(e.Venue)), d
		}
		if b := strings.TrimSpace(e.BirthDate); b != "" && (birth == "" || d.After(birthAt)) {
			birth, birthAt = b, d
		}
	}
	return team, birth
}

// Careers computes the career of each name, loading its matches with load.
// Results keep the order of names.
func Careers(names []string, workers int, load func(nameKey string) ([]model.MatchRecord, error)) ([]model.Career, error) {
	return run(names, workers, func(name string) (model.Career, error) {
		recs, err := load(lineup.NameKey(name))
		if err != nil {
			return model.Career{}, fmt.Errorf("load matches for %q: %w", name, err)
		}
		return aggregator.Career(name, name, recs), nil
	})
}

// indexByPlayer groups records under every name key found in either lineup
// schema. The engine decides later whether the row is a player.
func indexByPlayer(records []model.MatchRecord) map[string][]model.MatchRecord {
	out := make(map[string][]model.MatchRecord)
	for _, rec := range records {
		seen := make(map[string]struct{})
		add := func(name string) {
			k := lineup.NameKey(name)
			if k == "" {
				return
			}
			if _, dup := seen[k]; dup {
				return
			}
			seen[k] = struct{}{}
			out[k] = append(out[k], rec)
		}
		for _, p := range rec.ProtocolPlayers {
			add(p.Name)
		}
		for _, l := range rec.UploadLineups {
			add(l.Name)
		}
	}
	return out
}

type result[V any] struct {
	idx int
	val V
	err error
}

// run computes fn for every key on an ants pool of the given size. Results
// keep the order of keys.
func run[K, V any](keys []K, workers int, fn func(K) (V, error)) ([]V, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan result[V], len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		i, key := i, key
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			v, err := fn(key)
			results <- result[V]{idx: i, val: v, err: err}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()
	close(results)

	out := make([]V, len(keys))
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out[r.idx] = r.val
	}
	return out, nil
}
