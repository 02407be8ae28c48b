package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

const dateLayout = "2006-01-02"

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(id string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE external_id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores one match with all of its raw rows. Rows already stored
// for the same match id are replaced, so re-importing a file is idempotent.
func (db *DB) InsertMatch(rec model.MatchRecord) error {
	id := rec.Summary.ExternalID
	if id == "" {
		return errors.New("insert match: empty match id")
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"protocol_players", "upload_lineups", "protocol_events", "upload_events"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ?", id); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, id, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(external_id, match_date, league, stage, home_team, away_team)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, formatDate(rec.Summary.Date), rec.Summary.League, rec.Summary.Stage,
		rec.Summary.HomeTeam, rec.Summary.AwayTeam,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", id, err)
	}

	if err := insertProtocolPlayers(tx, id, rec.ProtocolPlayers); err != nil {
		return err
	}
	if err := insertUploadLineups(tx, id, rec.UploadLineups); err != nil {
		return err
	}
	if err := insertProtocolEvents(tx, id, rec.ProtocolEvents); err != nil {
		return err
	}
	if err := insertUploadEvents(tx, id, rec.UploadEvents); err != nil {
		return err
	}
	return tx.Commit()
}

func insertProtocolPlayers(tx *sql.Tx, id string, rows []model.ProtocolPlayer) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO protocol_players(match_id, row_index, side, number, name, name_key, born, role, leader)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.Exec(id, p.RowIndex, p.Side, p.Number, p.Name, lineup.NameKey(p.Name), p.Born, p.Role, p.Leader); err != nil {
			return fmt.Errorf("insert protocol_players for %s: %w", id, err)
		}
	}
	return nil
}

func insertUploadLineups(tx *sql.Tx, id string, rows []model.UploadLineup) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO upload_lineups(match_id, row_index, venue, number, name, name_key, birthday, role, leader, reserve)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(id, l.RowIndex, l.Venue, l.Number, l.Name, lineup.NameKey(l.Name), l.Birthday, l.Role, l.Leader, l.Reserve); err != nil {
			return fmt.Errorf("insert upload_lineups for %s: %w", id, err)
		}
	}
	return nil
}

func insertProtocolEvents(tx *sql.Tx, id string, rows []model.ProtocolEvent) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO protocol_events(match_id, row_index, side, period, time, number, assist, goal, penalty, code)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.Exec(id, e.RowIndex, e.Side, e.Period, e.Time, e.Number, e.Assist, e.Goal, e.Penalty, e.Code); err != nil {
			return fmt.Errorf("insert protocol_events for %s: %w", id, err)
		}
	}
	return nil
}

func insertUploadEvents(tx *sql.Tx, id string, rows []model.UploadEvent) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO upload_events(match_id, row_index, venue, period, time, player1, player2, score, event, pim, code)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.Exec(id, e.RowIndex, e.Venue, e.Period, e.Time, e.Player1, e.Player2, e.Score, e.Event, e.PIM, e.Code); err != nil {
			return fmt.Errorf("insert upload_events for %s: %w", id, err)
		}
	}
	return nil
}

// ListMatches returns all stored matches with their row counts, newest first.
// Undated matches sort last.
func (db *DB) ListMatches() ([]model.StoredMatch, error) {
	rows, err := db.conn.Query(`
		SELECT m.external_id, m.match_date, m.league, m.stage, m.home_team, m.away_team,
		       (SELECT COUNT(1) FROM protocol_players p WHERE p.match_id = m.external_id),
		       (SELECT COUNT(1) FROM upload_lineups u WHERE u.match_id = m.external_id),
		       (SELECT COUNT(1) FROM protocol_events pe WHERE pe.match_id = m.external_id),
		       (SELECT COUNT(1) FROM upload_events ue WHERE ue.match_id = m.external_id)
		FROM matches m
		ORDER BY m.match_date IS NULL, m.match_date DESC, m.external_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StoredMatch
	for rows.Next() {
		var (
			s    model.StoredMatch
			date sql.NullString
		)
		if err := rows.Scan(&s.Summary.ExternalID, &date, &s.Summary.League, &s.Summary.Stage,
			&s.Summary.HomeTeam, &s.Summary.AwayTeam,
			&s.ProtocolRows, &s.UploadRows, &s.ProtocolEvents, &s.UploadEvents); err != nil {
			return nil, err
		}
		s.Summary.Date = parseDate(date)
		out = append(out, s)
	}
	return out, rows.Err()
}

// ResolveMatchID returns the stored id equal to ref, or else the first id
// starting with ref. Returns ErrMatchNotFound when nothing matches.
func (db *DB) ResolveMatchID(ref string) (string, error) {
	var id string
	err := db.conn.QueryRow(`
		SELECT external_id FROM matches
		WHERE external_id = ? OR external_id LIKE ?
		ORDER BY external_id = ? DESC, external_id
		LIMIT 1`, ref, ref+"%", ref).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrMatchNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetMatch loads one match with every raw row.
func (db *DB) GetMatch(id string) (*model.MatchRecord, error) {
	recs, err := db.loadRecords("external_id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrMatchNotFound
	}
	return &recs[0], nil
}

// LoadPlayerRecords returns every match with a lineup row, in either schema,
// whose name key equals nameKey. Full lineups and events are included.
func (db *DB) LoadPlayerRecords(nameKey string) ([]model.MatchRecord, error) {
	return db.loadRecords(`external_id IN (
		SELECT match_id FROM protocol_players WHERE name_key = ?
		UNION
		SELECT match_id FROM upload_lineups WHERE name_key = ?)`, nameKey, nameKey)
}

// LoadAllRecords returns every stored match.
func (db *DB) LoadAllRecords() ([]model.MatchRecord, error) {
	return db.loadRecords("1 = 1")
}

// loadRecords loads the matches selected by where and attaches their rows in
// row-index order. The same args are bound to every query.
func (db *DB) loadRecords(where string, args ...any) ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`
		SELECT external_id, match_date, league, stage, home_team, away_team
		FROM matches WHERE `+where+` ORDER BY external_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}

	var recs []model.MatchRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			s    model.MatchSummary
			date sql.NullString
		)
		if err := rows.Scan(&s.ExternalID, &date, &s.League, &s.Stage, &s.HomeTeam, &s.AwayTeam); err != nil {
			rows.Close()
			return nil, err
		}
		s.Date = parseDate(date)
		index[s.ExternalID] = len(recs)
		recs = append(recs, model.MatchRecord{Summary: s})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}

	sub := ` WHERE match_id IN (SELECT external_id FROM matches WHERE ` + where + `) ORDER BY match_id, row_index`

	err = db.scanChildren(`SELECT match_id, row_index, side, number, name, born, role, leader FROM protocol_players`+sub, args,
		func(r *sql.Rows) error {
			var (
				id string
				p  model.ProtocolPlayer
			)
			err := r.Scan(&id, &p.RowIndex, &p.Side, &p.Number, &p.Name, &p.Born, &p.Role, &p.Leader)
			if i, ok := index[id]; ok && err == nil {
				recs[i].ProtocolPlayers = append(recs[i].ProtocolPlayers, p)
			}
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("load protocol_players: %w", err)
	}

	err = db.scanChildren(`SELECT match_id, row_index, venue, number, name, birthday, role, leader, reserve FROM upload_lineups`+sub, args,
		func(r *sql.Rows) error {
			var (
				id string
				l  model.UploadLineup
			)
			err := r.Scan(&id, &l.RowIndex, &l.Venue, &l.Number, &l.Name, &l.Birthday, &l.Role, &l.Leader, &l.Reserve)
			if i, ok := index[id]; ok && err == nil {
				recs[i].UploadLineups = append(recs[i].UploadLineups, l)
			}
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("load upload_lineups: %w", err)
	}

	err = db.scanChildren(`SELECT match_id, row_index, side, period, time, number, assist, goal, penalty, code FROM protocol_events`+sub, args,
		func(r *sql.Rows) error {
			var (
				id string
				e  model.ProtocolEvent
			)
			err := r.Scan(&id, &e.RowIndex, &e.Side, &e.Period, &e.Time, &e.Number, &e.Assist, &e.Goal, &e.Penalty, &e.Code)
			if i, ok := index[id]; ok && err == nil {
				recs[i].ProtocolEvents = append(recs[i].ProtocolEvents, e)
			}
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("load protocol_events: %w", err)
	}

	err = db.scanChildren(`SELECT match_id, row_index, venue, period, time, player1, player2, score, event, pim, code FROM upload_events`+sub, args,
		func(r *sql.Rows) error {
			var (
				id string
				e  model.UploadEvent
			)
			err := r.Scan(&id, &e.RowIndex, &e.Venue, &e.Period, &e.Time, &e.Player1, &e.Player2, &e.Score, &e.Event, &e.PIM, &e.Code)
			if i, ok := index[id]; ok && err == nil {
				recs[i].UploadEvents = append(recs[i].UploadEvents, e)
			}
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("load upload_events: %w", err)
	}

	return recs, nil
}

func (db *DB) scanChildren(query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// QueryRaw runs an arbitrary query and returns the column names and every row
// rendered as text. NULL is rendered as an empty string.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = ""
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dateLayout)
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
