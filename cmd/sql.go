package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/report"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(external_id, match_date, league, stage, home_team, away_team)
  protocol_players(match_id, row_index, side, number, name, name_key, born, role, leader)
  protocol_events(match_id, row_index, side, period, time, number, assist, goal, penalty, code)
  upload_lineups(match_id, row_index, venue, number, name, name_key, birthday, role, leader, reserve)
  upload_events(match_id, row_index, venue, period, time, player1, player2, score, event, pim, code)

Note: jersey numbers and scores are stored as raw TEXT. name_key is the
lower-cased, space-collapsed name: WHERE name_key = 'anders jensen'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	return runQuery(os.Stdout, db, strings.Join(args, " "))
}

func runQuery(w io.Writer, db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}
	report.PrintRaw(w, cols, rows)
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
