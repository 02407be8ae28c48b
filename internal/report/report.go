package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-floorball-stats/internal/events"
	"github.com/pable/go-floorball-stats/internal/leaders"
	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

const dash = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// aggCells renders the counting stats of a line in column order
// GP G A P PIM PPM PPA PPP BPM BPA BPP.
func aggCells(a model.PlayerAgg) []any {
	return []any{
		strconv.Itoa(a.Games),
		strconv.Itoa(a.Goals),
		strconv.Itoa(a.Assists),
		strconv.Itoa(a.Points),
		strconv.Itoa(a.PIM),
		strconv.Itoa(a.PPM),
		strconv.Itoa(a.PPA),
		strconv.Itoa(a.PPP),
		strconv.Itoa(a.BPM),
		strconv.Itoa(a.BPA),
		strconv.Itoa(a.BPP),
	}
}

var aggHeader = []any{"GP", "G", "A", "P", "PIM", "PPM", "PPA", "PPP", "BPM", "BPA", "BPP"}

func ppg(a model.PlayerAgg) string {
	if a.Games == 0 {
		return dash
	}
	return fmt.Sprintf("%.2f", a.PointsPerGame())
}

func row(prefix []any, a model.PlayerAgg) []any {
	out := append([]any{}, prefix...)
	out = append(out, aggCells(a)...)
	return append(out, ppg(a))
}

// PrintCareer prints one block of rows per season, newest first, each followed
// by its subtotal, and the career total.
func PrintCareer(w io.Writer, c model.Career) {
	if len(c.Seasons) == 0 {
		fmt.Fprintf(w, "No data for %s.\n", c.DisplayName)
		return
	}

	fmt.Fprintf(w, "\n=== %s ===\n\n", c.DisplayName)

	table := newTable(w)
	table.Header(append(append([]any{"SEASON", "TEAM", "LEAGUE", "STAGE"}, aggHeader...), "P/GP")...)
	for _, s := range c.Seasons {
		for _, r := range s.Rows {
			table.Append(row([]any{s.Label, r.Team, r.League, r.Stage}, r.Agg)...)
		}
		table.Append(row([]any{s.Label, "Total", "", ""}, s.Subtotal)...)
	}
	table.Append(row([]any{"Career", "", "", ""}, c.Overall)...)
	table.Render()
}

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary, source string) {
	fmt.Fprintf(w, "\nMatch: %s  |  Date: %s  |  %s vs %s  |  %s / %s  |  Source: %s\n\n",
		s.ExternalID, formatDate(s), orDash(s.HomeTeam), orDash(s.AwayTeam),
		orDash(s.League), orDash(s.Stage), source)
}

// PrintMatchReport prints the event timeline and both box scores. A lineup
// player whose name key equals focus is marked with ">".
func PrintMatchReport(w io.Writer, r model.MatchReport, focus string) {
	PrintMatchSummary(w, r.Summary, r.Source)
	if r.Source == lineup.SourceNone {
		fmt.Fprintln(w, "No lineup or events stored for this match.")
		return
	}

	if len(r.Events) > 0 {
		PrintEventTable(w, r)
	}

	for _, side := range []struct {
		venue model.Venue
		lines []model.BoxLine
	}{{model.VenueHome, r.Home}, {model.VenueAway, r.Away}} {
		if len(side.lines) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s (%s) ---\n\n", orDash(r.Summary.TeamName(side.venue)), side.venue)
		PrintBoxScore(w, side.lines, focus)
	}
}

// PrintEventTable prints the replayed events in match order.
func PrintEventTable(w io.Writer, r model.MatchReport) {
	table := newTable(w)
	table.Header("TIME", "TEAM", "EVENT", "PLAYER", "ASSIST", "SCORE", "PIM", "STR")
	for _, line := range r.Events {
		e := line.Event
		venue := e.Venue
		player := line.Penalized
		if e.IsGoal {
			venue = line.ScoringVenue
			player = line.Scorer
		}
		assist := dash
		if e.IsGoal {
			assist = playerText(line.Assister, e.Player2)
		}
		table.Append(
			events.FormatClock(e.TimeAbsSeconds),
			orDash(r.Summary.TeamName(venue)),
			orDash(e.Label),
			playerText(player, e.Player1),
			assist,
			orDash(e.ScoreText),
			orDash(e.PenaltyText),
			orDash(line.Strength.String()),
		)
	}
	table.Render()
}

// PrintBoxScore prints one side's lines.
func PrintBoxScore(w io.Writer, lines []model.BoxLine, focus string) {
	table := newTable(w)
	table.Header(append([]any{" ", "#", "ROLE", "NAME", "AGE"}, aggHeader[1:]...)...)
	for _, l := range lines {
		marker := " "
		if focus != "" && lineup.NameKey(l.Player.Name) == focus {
			marker = ">"
		}
		cells := []any{marker, orDash(l.Player.Number), orDash(l.Player.Role), orDash(l.Player.Name), ageText(l.Age)}
		table.Append(append(cells, aggCells(l.Agg)[1:]...)...)
	}
	table.Render()
}

// PrintLeaders prints a ranked leaderboard.
func PrintLeaders(w io.Writer, entries []leaders.Entry) {
	table := newTable(w)
	table.Header(append(append([]any{"RANK", "NAME", "TEAM", "AGE"}, aggHeader...), "P/GP")...)
	for _, e := range entries {
		table.Append(row([]any{strconv.Itoa(e.Rank), e.Name, orDash(e.Team), ageText(e.Age)}, e.Agg)...)
	}
	table.Render()
}

// PrintTeams prints the team table. PP% is power-play goals per attempt, BP%
// is the share of short-handed situations killed without conceding.
func PrintTeams(w io.Writer, rows []leaders.TeamRow) {
	table := newTable(w)
	table.Header("RANK", "TEAM", "GP", "GF", "GA", "+/-", "PPM+", "PPM-", "PPA", "PP%", "BPM+", "BPM-", "BPA", "BP%")
	for _, r := range rows {
		a := r.Agg
		table.Append(
			strconv.Itoa(r.Rank), r.Team,
			strconv.Itoa(a.Games), strconv.Itoa(a.GoalsFor), strconv.Itoa(a.GoalsAgainst),
			fmt.Sprintf("%+d", a.GoalDiff()),
			strconv.Itoa(a.PPGoalsFor), strconv.Itoa(a.PPGoalsAgainst), strconv.Itoa(a.PPAttempts),
			percent(a.PPGoalsFor, a.PPAttempts),
			strconv.Itoa(a.BPGoalsFor), strconv.Itoa(a.BPGoalsAgainst), strconv.Itoa(a.BPAttempts),
			percent(a.BPAttempts-a.BPGoalsAgainst, a.BPAttempts),
		)
	}
	table.Render()
}

func percent(n, of int) string {
	if of == 0 {
		return dash
	}
	return fmt.Sprintf("%.1f", 100*float64(n)/float64(of))
}

func ageText(age int) string {
	if age < 0 {
		return dash
	}
	return strconv.Itoa(age)
}

// PrintMatchList prints stored matches, one per line.
func PrintMatchList(w io.Writer, matches []model.StoredMatch) {
	fmt.Fprintf(w, "%-10s  %-10s  %-22s  %-22s  %-24s  %7s  %6s\n",
		"ID", "DATE", "HOME", "AWAY", "LEAGUE", "LINEUP", "EVENTS")
	fmt.Fprintf(w, "%-10s  %-10s  %-22s  %-22s  %-24s  %7s  %6s\n",
		"──────────", "──────────", "──────────────────────", "──────────────────────",
		"────────────────────────", "───────", "──────")
	for _, m := range matches {
		lineupRows, eventRows := m.ProtocolRows, m.ProtocolEvents
		if lineupRows == 0 {
			lineupRows = m.UploadRows
		}
		if eventRows == 0 {
			eventRows = m.UploadEvents
		}
		fmt.Fprintf(w, "%-10s  %-10s  %-22s  %-22s  %-24s  %7d  %6d\n",
			m.Summary.ExternalID, formatDate(m.Summary),
			clip(orDash(m.Summary.HomeTeam), 22), clip(orDash(m.Summary.AwayTeam), 22),
			clip(orDash(m.Summary.League), 24), lineupRows, eventRows)
	}
}

// PrintRaw prints the result of an arbitrary query.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, r := range rows {
		cells := make([]any, len(r))
		for i, v := range r {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

func playerText(p *model.LineupEntry, jersey string) string {
	switch {
	case p != nil:
		return p.Number + " " + p.Name
	case jersey != "":
		return jersey
	default:
		return dash
	}
}

func formatDate(s model.MatchSummary) string {
	if s.Date == nil {
		return dash
	}
	return s.Date.Format("2006-01-02")
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
