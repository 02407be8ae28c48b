// Package lineup resolves jersey numbers to named players for a single match.
//
// Player identity in the source data is the player's name, not a stable id.
// Two spellings of the same person are two different players; NameKey only
// folds case and whitespace.
package lineup

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pable/go-floorball-stats/internal/model"
)

const (
	SourceProtocol = "protocol"
	SourceUpload   = "upload"
	SourceNone     = "none"
)

var jerseyRe = regexp.MustCompile(`\d{1,3}`)

// JerseyKey extracts the first run of 1-3 digits from raw jersey text.
// Returns "" when there is none.
func JerseyKey(raw string) string {
	return jerseyRe.FindString(strings.TrimSpace(raw))
}

// NameKey is the identity key for a player name: whitespace collapsed, lower-cased.
func NameKey(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return cases.Lower(language.Danish).String(collapsed)
}

// ParseVenue maps the venue spellings used by both schemas to a Venue.
func ParseVenue(s string) model.Venue {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "hjemme", "h":
		return model.VenueHome
	case "away", "ude", "u":
		return model.VenueAway
	default:
		return model.VenueUnknown
	}
}

type venueNo struct {
	venue  model.Venue
	number string
}

// Lineup is the resolved roster of one match.
type Lineup struct {
	Source    string
	entries   []model.LineupEntry
	byVenueNo map[venueNo]model.LineupEntry
	byNo      map[string][]model.LineupEntry
}

// Resolve builds the lineup of one match. Protocol rows win when at least one
// of them survives filtering; upload rows are the fallback.
func Resolve(protocol []model.ProtocolPlayer, upload []model.UploadLineup) *Lineup {
	if entries := fromProtocol(protocol); len(entries) > 0 {
		return build(SourceProtocol, entries)
	}
	if entries := fromUpload(upload); len(entries) > 0 {
		return build(SourceUpload, entries)
	}
	return build(SourceNone, nil)
}

func fromProtocol(rows []model.ProtocolPlayer) []model.LineupEntry {
	var out []model.LineupEntry
	for _, p := range rows {
		if isFlag(p.Leader, "L") {
			continue
		}
		// The protocol only knows HOME; every other side value is the away team.
		venue := ParseVenue(p.Side)
		if venue == model.VenueUnknown {
			venue = model.VenueAway
		}
		entry, ok := newEntry(venue, p.Number, p.Name, p.Born, p.Role)
		if ok {
			out = append(out, entry)
		}
	}
	return out
}

func fromUpload(rows []model.UploadLineup) []model.LineupEntry {
	var out []model.LineupEntry
	for _, l := range rows {
		if isFlag(l.Leader, "L") || isFlag(l.Reserve, "R") {
			continue
		}
		venue := ParseVenue(l.Venue)
		if venue == model.VenueUnknown {
			continue
		}
		entry, ok := newEntry(venue, l.Number, l.Name, l.Birthday, l.Role)
		if ok {
			out = append(out, entry)
		}
	}
	return out
}

func newEntry(venue model.Venue, number, name, born, role string) (model.LineupEntry, bool) {
	e := model.LineupEntry{
		Venue:     venue,
		Number:    JerseyKey(number),
		Name:      strings.TrimSpace(name),
		BirthDate: strings.TrimSpace(born),
		Role:      strings.ToUpper(strings.TrimSpace(role)),
	}
	if e.Number == "" && e.Name == "" {
		return model.LineupEntry{}, false
	}
	return e, true
}

func isFlag(value, flag string) bool {
	return strings.EqualFold(strings.TrimSpace(value), flag)
}

func build(source string, entries []model.LineupEntry) *Lineup {
	l := &Lineup{
		Source:    source,
		entries:   entries,
		byVenueNo: make(map[venueNo]model.LineupEntry, len(entries)),
		byNo:      make(map[string][]model.LineupEntry),
	}
	for _, e := range entries {
		if e.Number == "" || e.Name == "" {
			continue
		}
		l.byVenueNo[venueNo{e.Venue, e.Number}] = e
		l.byNo[e.Number] = append(l.byNo[e.Number], e)
	}
	return l
}

// Empty reports whether the match has no usable lineup.
func (l *Lineup) Empty() bool {
	return len(l.entries) == 0
}

// Entries returns the resolved rows in source order.
func (l *Lineup) Entries() []model.LineupEntry {
	return l.entries
}

// Side returns the rows of one venue in source order.
func (l *Lineup) Side(v model.Venue) []model.LineupEntry {
	var out []model.LineupEntry
	for _, e := range l.entries {
		if e.Venue == v {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the first row whose name matches nameKey.
func (l *Lineup) Find(nameKey string) (model.LineupEntry, bool) {
	for _, e := range l.entries {
		if NameKey(e.Name) == nameKey {
			return e, true
		}
	}
	return model.LineupEntry{}, false
}

// Lookup resolves a jersey reference. The hinted venue is tried first; without
// a hit the cross-venue map is used and its first candidate wins, even when
// both teams wear the number.
func (l *Lineup) Lookup(jersey string, hint model.Venue) (model.LineupEntry, bool) {
	number := JerseyKey(jersey)
	if number == "" {
		return model.LineupEntry{}, false
	}
	if hint != model.VenueUnknown {
		if e, ok := l.byVenueNo[venueNo{hint, number}]; ok {
			return e, true
		}
	}
	if candidates := l.byNo[number]; len(candidates) > 0 {
		return candidates[0], true
	}
	return model.LineupEntry{}, false
}
