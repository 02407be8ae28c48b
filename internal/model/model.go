package model

import "time"

// Venue represents which side of a match a team or player is on.
type Venue int

const (
	VenueUnknown Venue = 0
	VenueHome    Venue = 1
	VenueAway    Venue = 2
)

func (v Venue) String() string {
	switch v {
	case VenueHome:
		return "Home"
	case VenueAway:
		return "Away"
	default:
		return "?"
	}
}

// Opponent returns the other side. VenueUnknown has no opponent.
func (v Venue) Opponent() Venue {
	switch v {
	case VenueHome:
		return VenueAway
	case VenueAway:
		return VenueHome
	default:
		return VenueUnknown
	}
}

// Strength is the manpower situation a goal was scored in, seen from the scoring team.
type Strength int

const (
	StrengthEven        Strength = 0
	StrengthPowerPlay   Strength = 1
	StrengthShortHanded Strength = 2
)

func (s Strength) String() string {
	switch s {
	case StrengthPowerPlay:
		return "PP"
	case StrengthShortHanded:
		return "BP"
	default:
		return ""
	}
}

// MatchSummary is the match header row. Date is nil when the source has none.
type MatchSummary struct {
	ExternalID string
	Date       *time.Time
	League     string
	Stage      string
	HomeTeam   string
	AwayTeam   string
}

// TeamName returns the team playing on the given side.
func (m MatchSummary) TeamName(v Venue) string {
	switch v {
	case VenueHome:
		return m.HomeTeam
	case VenueAway:
		return m.AwayTeam
	default:
		return ""
	}
}

// ---- Raw lineup rows, one type per source schema ----

// ProtocolPlayer is a lineup row from the official match protocol.
type ProtocolPlayer struct {
	RowIndex int
	Side     string // "HOME" / "AWAY"
	Number   string
	Name     string
	Born     string
	Role     string // "C", "G" or empty
	Leader   string // "L" marks a team official
}

// UploadLineup is a lineup row from a secretariat upload.
type UploadLineup struct {
	RowIndex int
	Venue    string // "Hjemme" / "Ude" / "home" / "h" ...
	Number   string
	Name     string
	Birthday string
	Role     string
	Leader   string
	Reserve  string // "R" marks a reserve not dressed for the match
}

// LineupEntry is a resolved lineup row. Number is the normalized jersey key.
type LineupEntry struct {
	Venue     Venue
	Number    string
	Name      string
	BirthDate string
	Role      string
}

// ---- Raw events, one type per source schema ----

// RawEvent is either a ProtocolEvent or an UploadEvent.
type RawEvent interface {
	rawEvent()
	Index() int
}

// ProtocolEvent is an event row from the official match protocol.
type ProtocolEvent struct {
	RowIndex int
	Side     string
	Period   string
	Time     string
	Number   string // scorer or penalized player
	Assist   string
	Goal     string // score after the goal, e.g. "2-1"
	Penalty  string // minutes text, e.g. "2", "2+10"
	Code     string // rule code
}

// UploadEvent is an event row from a secretariat upload.
type UploadEvent struct {
	RowIndex int
	Venue    string
	Period   string
	Time     string
	Player1  string
	Player2  string
	Score    string
	Event    string // free label, "Goal" for goals
	PIM      string
	Code     string
}

func (ProtocolEvent) rawEvent() {}
func (UploadEvent) rawEvent()   {}

func (e ProtocolEvent) Index() int { return e.RowIndex }
func (e UploadEvent) Index() int   { return e.RowIndex }

// NormalizedEvent is the canonical event both raw shapes normalize into.
type NormalizedEvent struct {
	Venue          Venue
	Period         int
	TimeAbsSeconds int
	RowIndex       int
	Player1        string // jersey key
	Player2        string // jersey key
	ScoreText      string
	PenaltyMinutes int
	IsGoal         bool

	// Display-only fields carried through for match reports.
	Label       string
	PenaltyText string
	Code        string
}

// MatchRecord bundles every row the engine needs for one match.
type MatchRecord struct {
	Summary         MatchSummary
	ProtocolPlayers []ProtocolPlayer
	UploadLineups   []UploadLineup
	ProtocolEvents  []ProtocolEvent
	UploadEvents    []UploadEvent
}

// ---- Aggregated stats ----

// PlayerAgg is a stat line. All fields are additive, so lines fold with Add.
type PlayerAgg struct {
	Games   int
	Goals   int
	Assists int
	Points  int
	PIM     int

	PPM int // power-play goals
	PPA int // power-play assists
	PPP int // power-play points
	BPM int // short-handed goals
	BPA int // short-handed assists
	BPP int // short-handed points
}

// Add returns the field-wise sum of a and b.
func (a PlayerAgg) Add(b PlayerAgg) PlayerAgg {
	return PlayerAgg{
		Games:   a.Games + b.Games,
		Goals:   a.Goals + b.Goals,
		Assists: a.Assists + b.Assists,
		Points:  a.Points + b.Points,
		PIM:     a.PIM + b.PIM,
		PPM:     a.PPM + b.PPM,
		PPA:     a.PPA + b.PPA,
		PPP:     a.PPP + b.PPP,
		BPM:     a.BPM + b.BPM,
		BPA:     a.BPA + b.BPA,
		BPP:     a.BPP + b.BPP,
	}
}

// PointsPerGame returns points divided by games, 0 when no games were played.
func (a PlayerAgg) PointsPerGame() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.Points) / float64(a.Games)
}

// TeamAgg is a team's stat line. PP and BP columns are seen from the team:
// PPGoalsAgainst are short-handed goals the team conceded while on the power
// play. An attempt is one two-minute chance; a 4 minute penalty gives two.
type TeamAgg struct {
	Games        int
	GoalsFor     int
	GoalsAgainst int

	PPGoalsFor     int
	PPGoalsAgainst int
	PPAttempts     int
	BPGoalsFor     int
	BPGoalsAgainst int
	BPAttempts     int
}

// Add returns the field-wise sum of a and b.
func (a TeamAgg) Add(b TeamAgg) TeamAgg {
	return TeamAgg{
		Games:          a.Games + b.Games,
		GoalsFor:       a.GoalsFor + b.GoalsFor,
		GoalsAgainst:   a.GoalsAgainst + b.GoalsAgainst,
		PPGoalsFor:     a.PPGoalsFor + b.PPGoalsFor,
		PPGoalsAgainst: a.PPGoalsAgainst + b.PPGoalsAgainst,
		PPAttempts:     a.PPAttempts + b.PPAttempts,
		BPGoalsFor:     a.BPGoalsFor + b.BPGoalsFor,
		BPGoalsAgainst: a.BPGoalsAgainst + b.BPGoalsAgainst,
		BPAttempts:     a.BPAttempts + b.BPAttempts,
	}
}

func (a TeamAgg) GoalDiff() int { return a.GoalsFor - a.GoalsAgainst }

// SeasonRow is one (team, league, stage) bucket within a season.
type SeasonRow struct {
	Team   string
	League string
	Stage  string
	Agg    PlayerAgg
}

// SeasonBlock holds the rows of one August-July season.
type SeasonBlock struct {
	StartYear int
	Label     string // "2023/24"
	Rows      []SeasonRow
	Subtotal  PlayerAgg
}

// Career is the full statistics output for one player.
type Career struct {
	NameKey     string
	DisplayName string
	Seasons     []SeasonBlock // newest first
	Overall     PlayerAgg
}

// ---- Match report ----

// EventLine is a replayed event annotated for display.
type EventLine struct {
	Event        NormalizedEvent
	ScoringVenue Venue
	Strength     Strength
	Scorer       *LineupEntry
	Assister     *LineupEntry
	Penalized    *LineupEntry
}

// BoxLine is one lineup player's line in a single match.
type BoxLine struct {
	Player LineupEntry
	Age    int // -1 when unknown
	Agg    PlayerAgg
}

// MatchReport is a single match replayed for display.
type MatchReport struct {
	Summary MatchSummary
	Source  string // "protocol", "upload" or "none"
	Events  []EventLine
	Home    []BoxLine
	Away    []BoxLine
}

// StoredMatch is a lightweight record for the list command.
type StoredMatch struct {
	Summary        MatchSummary
	ProtocolRows   int
	UploadRows     int
	ProtocolEvents int
	UploadEvents   int
}
