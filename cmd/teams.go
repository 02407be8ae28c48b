package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/leaders"
	"github.com/pable/go-floorball-stats/internal/report"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var (
	teamsSeason int
	teamsLeague string
)

// teamsCmd prints the team table.
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Team table with power-play and short-handed figures",
	Long: `Replay every stored match and total goals for and against per team,
together with power-play (PP) and short-handed (BP) goals and attempts.
A 4 minute penalty counts as two attempts. Teams are ranked by goal
difference, then goals for, then name.`,
	Args: cobra.NoArgs,
	RunE: runTeams,
}

func init() {
	teamsCmd.Flags().IntVar(&teamsSeason, "season", 0, "season start year (0 for all seasons)")
	teamsCmd.Flags().StringVar(&teamsLeague, "league", "", "restrict to one league (case-insensitive)")
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return printTeams(os.Stdout, db, leaders.Options{Season: teamsSeason, League: teamsLeague})
}

func printTeams(w io.Writer, db *storage.DB, opts leaders.Options) error {
	recs, err := db.LoadAllRecords()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No matches stored yet. Run 'flstats import <file.yaml>' to add some.")
		return nil
	}

	opts.Workers = workers
	rows, err := leaders.Teams(recs, opts)
	if err != nil {
		return fmt.Errorf("compute team table: %w", err)
	}
	log.Debug("team table computed", "matches", len(recs), "teams", len(rows), "workers", workers)

	fmt.Fprintf(w, "\n=== Team table: %s ===\n\n", scopeTitle(opts))
	if len(rows) == 0 {
		fmt.Fprintln(w, "No games in this range.")
		return nil
	}
	report.PrintTeams(w, rows)
	return nil
}
