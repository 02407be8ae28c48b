package events

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

// PeriodSeconds is the length of a regulation period.
const PeriodSeconds = 20 * 60

// maxCountDigits bounds period numbers and penalty minutes. Longer numbers are
// treated as unparseable.
const maxCountDigits = 3

var (
	clockRe    = regexp.MustCompile(`^(\d{1,2})\s*[:.]\s*(\d{2})$`)
	scoreRe    = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	leadingInt = regexp.MustCompile(`^[+-]?\d+`)
	twoPlusTen = regexp.MustCompile(`^2\s*\+\s*10$`)
)

// Score is a parsed "home-away" tally.
type Score struct {
	Home, Away int
}

// FromRecord normalizes the events of one match. Protocol rows are used when
// any of them survives normalization, upload rows otherwise. The returned
// string names the schema used.
func FromRecord(rec *model.MatchRecord) (string, []model.NormalizedEvent) {
	raw := make([]model.RawEvent, 0, len(rec.ProtocolEvents))
	for _, e := range rec.ProtocolEvents {
		raw = append(raw, e)
	}
	if evs := Normalize(raw); len(evs) > 0 {
		return lineup.SourceProtocol, evs
	}
	raw = raw[:0]
	for _, e := range rec.UploadEvents {
		raw = append(raw, e)
	}
	if evs := Normalize(raw); len(evs) > 0 {
		return lineup.SourceUpload, evs
	}
	return lineup.SourceNone, nil
}

// Normalize converts raw rows of either schema into canonical events ordered by
// absolute match time, ties kept in recorded row order. Rows that carry nothing
// but a jersey number are dropped.
func Normalize(raw []model.RawEvent) []model.NormalizedEvent {
	out := make([]model.NormalizedEvent, 0, len(raw))
	for _, r := range raw {
		var (
			ev model.NormalizedEvent
			ok bool
		)
		switch e := r.(type) {
		case model.ProtocolEvent:
			ev, ok = fromProtocol(e)
		case model.UploadEvent:
			ev, ok = fromUpload(e)
		}
		if ok {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimeAbsSeconds != out[j].TimeAbsSeconds {
			return out[i].TimeAbsSeconds < out[j].TimeAbsSeconds
		}
		return out[i].RowIndex < out[j].RowIndex
	})
	return out
}

func fromProtocol(e model.ProtocolEvent) (model.NormalizedEvent, bool) {
	goal := strings.TrimSpace(e.Goal)
	pen := strings.TrimSpace(e.Penalty)
	code := strings.TrimSpace(e.Code)
	clock := strings.TrimSpace(e.Time)
	if goal == "" && pen == "" && code == "" && clock == "" {
		return model.NormalizedEvent{}, false
	}

	period := ParsePeriod(e.Period)
	ev := model.NormalizedEvent{
		Venue:          lineup.ParseVenue(e.Side),
		Period:         period,
		TimeAbsSeconds: AbsSeconds(period, clock),
		RowIndex:       e.RowIndex,
		Player1:        lineup.JerseyKey(e.Number),
		Player2:        lineup.JerseyKey(e.Assist),
		ScoreText:      goal,
		PenaltyMinutes: ParsePenaltyMinutes(pen, code),
		IsGoal:         goal != "",
		PenaltyText:    pen,
		Code:           code,
	}
	ev.Label = protocolLabel(ev)
	return ev, true
}

func fromUpload(e model.UploadEvent) (model.NormalizedEvent, bool) {
	score := strings.TrimSpace(e.Score)
	pim := strings.TrimSpace(e.PIM)
	label := strings.TrimSpace(e.Event)
	code := strings.TrimSpace(e.Code)
	clock := strings.TrimSpace(e.Time)
	if score == "" && pim == "" && label == "" && code == "" && clock == "" {
		return model.NormalizedEvent{}, false
	}

	period := ParsePeriod(e.Period)
	ev := model.NormalizedEvent{
		Venue:          lineup.ParseVenue(e.Venue),
		Period:         period,
		TimeAbsSeconds: AbsSeconds(period, clock),
		RowIndex:       e.RowIndex,
		Player1:        lineup.JerseyKey(e.Player1),
		Player2:        lineup.JerseyKey(e.Player2),
		ScoreText:      score,
		PenaltyMinutes: ParsePenaltyMinutes(pim, code),
		IsGoal:         score != "" || strings.EqualFold(label, "goal"),
		Label:          label,
		PenaltyText:    pim,
		Code:           code,
	}
	if ev.Label == "" {
		ev.Label = protocolLabel(ev)
	}
	return ev, true
}

func protocolLabel(ev model.NormalizedEvent) string {
	switch {
	case ev.IsGoal:
		return "Goal"
	case ev.PenaltyText != "":
		return "Penalty"
	case ev.Code == "401":
		return "Time Out"
	case ev.Code == "402":
		return "Penalty Shot"
	default:
		return ""
	}
}

// ParsePeriod maps a period label to its number. "OT" is period 4; anything
// unparseable is period 1.
func ParsePeriod(label string) int {
	v := strings.ToUpper(strings.TrimSpace(label))
	if v == "OT" {
		return 4
	}
	if n, ok := parseLeadingInt(v); ok && n > 0 {
		return n
	}
	return 1
}

// ParseClock parses "MM:SS" or "MM.SS" into seconds, 0 when unparseable.
func ParseClock(text string) int {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0
	}
	mm, _ := strconv.Atoi(m[1])
	ss, _ := strconv.Atoi(m[2])
	return mm*60 + ss
}

// AbsSeconds is the match-clock second of a period-relative clock reading.
func AbsSeconds(period int, clock string) int {
	return (period-1)*PeriodSeconds + ParseClock(clock)
}

// FormatClock renders absolute seconds as "M:SS".
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// ParsePenaltyMinutes returns the shorthanded minutes of a penalty. A minor
// plus misconduct ("2+10", or "12" under rule 101) counts as 2: the misconduct
// part is served without the team being shorthanded.
func ParsePenaltyMinutes(text, code string) int {
	p := strings.TrimSpace(text)
	c := strings.TrimSpace(code)
	if p == "" {
		return 0
	}
	if twoPlusTen.MatchString(p) {
		return 2
	}
	if p == "12" && c == "101" {
		return 2
	}
	if n, ok := parseLeadingInt(p); ok && n > 0 {
		return n
	}
	return 0
}

// ParseScore extracts the first "H-A" tally from text.
func ParseScore(text string) (Score, bool) {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return Score{}, false
	}
	home, err := strconv.Atoi(m[1])
	if err != nil {
		return Score{}, false
	}
	away, err := strconv.Atoi(m[2])
	if err != nil {
		return Score{}, false
	}
	return Score{Home: home, Away: away}, true
}

func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindString(s)
	if m == "" || len(strings.TrimLeft(m, "+-")) > maxCountDigits {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
