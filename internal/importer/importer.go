// Package importer decodes YAML match files into match records.
//
// A file holds a list of matches. Each match carries its header and the raw
// rows of either source schema; the position of a row in its list is its row
// index.
//
//	matches:
//	  - id: "40213"
//	    date: 2023-10-01
//	    league: Unihoc Floorball Liga
//	    stage: Grundspil
//	    home: Falcon
//	    away: Aarhus
//	    protocol:
//	      players:
//	        - {side: HOME, number: "9", name: Anders Jensen, born: 1998-03-14, role: C}
//	      events:
//	        - {side: HOME, period: "1", time: "05:00", number: "9", assist: "11", goal: 1-0}
//	    upload:
//	      lineup:
//	        - {venue: Hjemme, number: "9", name: Anders Jensen}
//	      events:
//	        - {venue: Hjemme, period: "1", time: "05:00", player1: "9", score: 1-0}
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/pable/go-floorball-stats/internal/model"
)

// ErrNoMatches is returned when a file decodes but contains no matches.
var ErrNoMatches = errors.New("no matches in file")

// File is the top level of a match file.
type File struct {
	Matches []Match `yaml:"matches"`
}

// Match is one match header with its raw rows.
type Match struct {
	ID       string   `yaml:"id"`
	Date     string   `yaml:"date"`
	League   string   `yaml:"league"`
	Stage    string   `yaml:"stage"`
	Home     string   `yaml:"home"`
	Away     string   `yaml:"away"`
	Protocol Protocol `yaml:"protocol"`
	Upload   Upload   `yaml:"upload"`
}

// Protocol holds the rows of the official match protocol.
type Protocol struct {
	Players []ProtocolPlayer `yaml:"players"`
	Events  []ProtocolEvent  `yaml:"events"`
}

// ProtocolPlayer is a protocol lineup row.
type ProtocolPlayer struct {
	Side   string `yaml:"side"`
	Number string `yaml:"number"`
	Name   string `yaml:"name"`
	Born   string `yaml:"born"`
	Role   string `yaml:"role"`
	Leader string `yaml:"leader"`
}

// ProtocolEvent is a protocol event row.
type ProtocolEvent struct {
	Side    string `yaml:"side"`
	Period  string `yaml:"period"`
	Time    string `yaml:"time"`
	Number  string `yaml:"number"`
	Assist  string `yaml:"assist"`
	Goal    string `yaml:"goal"`
	Penalty string `yaml:"penalty"`
	Code    string `yaml:"code"`
}

// Upload holds the rows of a secretariat upload.
type Upload struct {
	Lineup []UploadLineup `yaml:"lineup"`
	Events []UploadEvent  `yaml:"events"`
}

// UploadLineup is an upload lineup row.
type UploadLineup struct {
	Venue    string `yaml:"venue"`
	Number   string `yaml:"number"`
	Name     string `yaml:"name"`
	Birthday string `yaml:"birthday"`
	Role     string `yaml:"role"`
	Leader   string `yaml:"leader"`
	Reserve  string `yaml:"reserve"`
}

// UploadEvent is an upload event row.
type UploadEvent struct {
	Venue   string `yaml:"venue"`
	Period  string `yaml:"period"`
	Time    string `yaml:"time"`
	Player1 string `yaml:"player1"`
	Player2 string `yaml:"player2"`
	Score   string `yaml:"score"`
	Event   string `yaml:"event"`
	PIM     string `yaml:"pim"`
	Code    string `yaml:"code"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "02-01-2006", "02.01.2006"}

// LoadFile reads and decodes a match file.
func LoadFile(path string) ([]model.MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	recs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return recs, nil
}

// Decode parses a YAML match file. Unknown keys are rejected. A match without
// an id is an error; an unparseable date is logged and stored as no date.
func Decode(r io.Reader) ([]model.MatchRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMatches
		}
		return nil, err
	}
	if len(f.Matches) == 0 {
		return nil, ErrNoMatches
	}

	out := make([]model.MatchRecord, 0, len(f.Matches))
	for i, m := range f.Matches {
		rec, err := m.record()
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m Match) record() (model.MatchRecord, error) {
	id := strings.TrimSpace(m.ID)
	if id == "" {
		return model.MatchRecord{}, errors.New("missing id")
	}

	rec := model.MatchRecord{
		Summary: model.MatchSummary{
			ExternalID: id,
			Date:       parseDate(id, m.Date),
			League:     strings.TrimSpace(m.League),
			Stage:      strings.TrimSpace(m.Stage),
			HomeTeam:   strings.TrimSpace(m.Home),
			AwayTeam:   strings.TrimSpace(m.Away),
		},
	}
	for i, p := range m.Protocol.Players {
		rec.ProtocolPlayers = append(rec.ProtocolPlayers, model.ProtocolPlayer{
			RowIndex: i, Side: p.Side, Number: p.Number, Name: p.Name,
			Born: p.Born, Role: p.Role, Leader: p.Leader,
		})
	}
	for i, e := range m.Protocol.Events {
		rec.ProtocolEvents = append(rec.ProtocolEvents, model.ProtocolEvent{
			RowIndex: i, Side: e.Side, Period: e.Period, Time: e.Time, Number: e.Number,
			Assist: e.Assist, Goal: e.Goal, Penalty: e.Penalty, Code: e.Code,
		})
	}
	for i, l := range m.Upload.Lineup {
		rec.UploadLineups = append(rec.UploadLineups, model.UploadLineup{
			RowIndex: i, Venue: l.Venue, Number: l.Number, Name: l.Name,
			Birthday: l.Birthday, Role: l.Role, Leader: l.Leader, Reserve: l.Reserve,
		})
	}
	for i, e := range m.Upload.Events {
		rec.UploadEvents = append(rec.UploadEvents, model.UploadEvent{
			RowIndex: i, Venue: e.Venue, Period: e.Period, Time: e.Time,
			Player1: e.Player1, Player2: e.Player2, Score: e.Score, Event: e.Event,
			PIM: e.PIM, Code: e.Code,
		})
	}
	return rec, nil
}

func parseDate(id, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	log.Warn("unparseable match date, storing without date", "match", id, "date", s)
	return nil
}
