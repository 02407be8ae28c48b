package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/aggregator"
	"github.com/pable/go-floorball-stats/internal/leaders"
	"github.com/pable/go-floorball-stats/internal/report"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var (
	leadersSeason int
	leadersTop    int
	leadersLeague string
)

// leadersCmd ranks every stored player by points.
var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Rank players by points",
	Long: `Compute the career of every player in the database and rank them by
points, then goals, then name. Use --season to restrict to one season,
given by its start year (2023 is the 2023/24 season), and --league to one
league. TEAM is the player's team in their latest match in range.`,
	Args: cobra.NoArgs,
	RunE: runLeaders,
}

func init() {
	leadersCmd.Flags().IntVar(&leadersSeason, "season", 0, "season start year (0 for whole careers)")
	leadersCmd.Flags().IntVarP(&leadersTop, "top", "n", 20, "number of players to show (0 for all)")
	leadersCmd.Flags().StringVar(&leadersLeague, "league", "", "restrict to one league (case-insensitive)")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return printLeaders(os.Stdout, db, leaders.Options{Season: leadersSeason, League: leadersLeague, Top: leadersTop})
}

// printLeaders prints the points leaders. The worker count comes from the
// root flags.
func printLeaders(w io.Writer, db *storage.DB, opts leaders.Options) error {
	recs, err := db.LoadAllRecords()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No matches stored yet. Run 'flstats import <file.yaml>' to add some.")
		return nil
	}

	opts.Workers = workers
	entries, err := leaders.Compute(recs, opts)
	if err != nil {
		return fmt.Errorf("compute leaders: %w", err)
	}
	log.Debug("leaders computed", "matches", len(recs), "ranked", len(entries), "workers", workers)

	fmt.Fprintf(w, "\n=== Points leaders: %s ===\n\n", scopeTitle(opts))
	if len(entries) == 0 {
		fmt.Fprintln(w, "No players with games in this range.")
		return nil
	}
	report.PrintLeaders(w, entries)
	return nil
}

// scopeTitle describes the season and league selection of opts.
func scopeTitle(opts leaders.Options) string {
	title := "All seasons"
	if opts.Season != 0 {
		title = aggregator.SeasonLabel(opts.Season)
	}
	if league := strings.TrimSpace(opts.League); league != "" {
		title += ", " + league
	}
	return title
}
