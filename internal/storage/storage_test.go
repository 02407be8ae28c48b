package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-floorball-stats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "open in-memory db")
	t.Cleanup(func() { db.Close() })
	return db
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleMatch(id string, date *time.Time) model.MatchRecord {
	return model.MatchRecord{
		Summary: model.MatchSummary{
			ExternalID: id,
			Date:       date,
			League:     "Unihoc Floorball Liga",
			Stage:      "Grundspil",
			HomeTeam:   "Falcon",
			AwayTeam:   "Aarhus",
		},
		ProtocolPlayers: []model.ProtocolPlayer{
			{RowIndex: 0, Side: "HOME", Number: "9", Name: "Anders Jensen", Born: "1998-03-14", Role: "C"},
			{RowIndex: 1, Side: "AWAY", Number: "4", Name: "Peter Holm"},
			{RowIndex: 2, Side: "HOME", Name: "Coach", Leader: "L"},
		},
		ProtocolEvents: []model.ProtocolEvent{
			{RowIndex: 0, Side: "AWAY", Period: "1", Time: "04:00", Number: "4", Penalty: "2", Code: "201"},
			{RowIndex: 1, Side: "HOME", Period: "1", Time: "05:00", Number: "9", Goal: "1-0"},
		},
	}
}

func TestInsertAndGetMatch(t *testing.T) {
	db := openMemDB(t)
	rec := sampleMatch("m1", day(2023, 10, 1))
	rec.UploadLineups = []model.UploadLineup{
		{RowIndex: 0, Venue: "Hjemme", Number: "9", Name: "Anders Jensen", Reserve: ""},
	}
	rec.UploadEvents = []model.UploadEvent{
		{RowIndex: 0, Venue: "Hjemme", Period: "1", Time: "05:00", Player1: "9", Score: "1-0", Event: "Goal"},
	}
	require.NoError(t, db.InsertMatch(rec))

	exists, err := db.MatchExists("m1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.MatchExists("nonexistent")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := db.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, rec.Summary.ExternalID, got.Summary.ExternalID)
	require.NotNil(t, got.Summary.Date)
	assert.True(t, got.Summary.Date.Equal(*rec.Summary.Date))
	assert.Equal(t, rec.ProtocolPlayers, got.ProtocolPlayers)
	assert.Equal(t, rec.ProtocolEvents, got.ProtocolEvents)
	assert.Equal(t, rec.UploadLineups, got.UploadLineups)
	assert.Equal(t, rec.UploadEvents, got.UploadEvents)
}

func TestGetMatchNotFound(t *testing.T) {
	db := openMemDB(t)
	_, err := db.GetMatch("missing")
	assert.True(t, errors.Is(err, ErrMatchNotFound))
}

func TestInsertMatchReplacesRows(t *testing.T) {
	db := openMemDB(t)
	rec := sampleMatch("m1", day(2023, 10, 1))
	require.NoError(t, db.InsertMatch(rec))

	rec.ProtocolEvents = rec.ProtocolEvents[:1]
	rec.Summary.Stage = "Slutspil"
	require.NoError(t, db.InsertMatch(rec))

	got, err := db.GetMatch("m1")
	require.NoError(t, err)
	assert.Len(t, got.ProtocolEvents, 1)
	assert.Equal(t, "Slutspil", got.Summary.Stage)

	list, err := db.ListMatches()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInsertMatchRequiresID(t *testing.T) {
	db := openMemDB(t)
	assert.Error(t, db.InsertMatch(model.MatchRecord{}))
}

func TestUndatedMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("nodate", nil)))
	got, err := db.GetMatch("nodate")
	require.NoError(t, err)
	assert.Nil(t, got.Summary.Date)
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("old", day(2022, 1, 1))))
	require.NoError(t, db.InsertMatch(sampleMatch("undated", nil)))
	require.NoError(t, db.InsertMatch(sampleMatch("new", day(2024, 2, 1))))

	list, err := db.ListMatches()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].Summary.ExternalID)
	assert.Equal(t, "old", list[1].Summary.ExternalID)
	assert.Equal(t, "undated", list[2].Summary.ExternalID)
	assert.Equal(t, 3, list[0].ProtocolRows)
	assert.Equal(t, 2, list[0].ProtocolEvents)
	assert.Equal(t, 0, list[0].UploadRows)
}

func TestResolveMatchID(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("12345", day(2023, 10, 1))))
	require.NoError(t, db.InsertMatch(sampleMatch("123", day(2023, 10, 2))))

	id, err := db.ResolveMatchID("123")
	require.NoError(t, err)
	assert.Equal(t, "123", id, "exact id wins over prefix")

	id, err = db.ResolveMatchID("1234")
	require.NoError(t, err)
	assert.Equal(t, "12345", id)

	_, err = db.ResolveMatchID("9")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestLoadPlayerRecords(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("m1", day(2023, 10, 1))))

	other := sampleMatch("m2", day(2023, 10, 8))
	other.ProtocolPlayers = []model.ProtocolPlayer{{RowIndex: 0, Side: "HOME", Number: "7", Name: "Someone Else"}}
	require.NoError(t, db.InsertMatch(other))

	upload := model.MatchRecord{
		Summary:       model.MatchSummary{ExternalID: "m3", Date: day(2023, 11, 1)},
		UploadLineups: []model.UploadLineup{{RowIndex: 0, Venue: "Ude", Number: "9", Name: "ANDERS  jensen"}},
	}
	require.NoError(t, db.InsertMatch(upload))

	recs, err := db.LoadPlayerRecords("anders jensen")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "m1", recs[0].Summary.ExternalID)
	assert.Len(t, recs[0].ProtocolPlayers, 3, "full lineup is loaded")
	assert.Equal(t, "m3", recs[1].Summary.ExternalID)

	recs, err = db.LoadPlayerRecords("nobody")
	require.NoError(t, err)
	assert.Empty(t, recs)

	all, err := db.LoadAllRecords()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("m1", day(2023, 10, 1))))

	cols, rows, err := db.QueryRaw("SELECT external_id, match_date, home_team FROM matches")
	require.NoError(t, err)
	assert.Equal(t, []string{"external_id", "match_date", "home_team"}, cols)
	assert.Equal(t, [][]string{{"m1", "2023-10-01", "Falcon"}}, rows)

	_, _, err = db.QueryRaw("SELECT * FROM no_such_table")
	assert.Error(t, err)
}

func TestForeignKeysCascade(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.InsertMatch(sampleMatch("m1", day(2023, 10, 1))))

	_, rows, err := db.QueryRaw("PRAGMA foreign_keys")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, rows)

	_, err = db.conn.Exec("DELETE FROM matches WHERE external_id = ?", "m1")
	require.NoError(t, err)
	_, rows, err = db.QueryRaw("SELECT count(*) FROM protocol_players")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0"}}, rows)
}
