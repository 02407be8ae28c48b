package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/aggregator"
	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/report"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show a stored match: event timeline and box score",
	Long: `Replay one stored match and print its event timeline, with power-play (PP)
and short-handed (BP) goals marked, followed by the box score of both teams.
A unique prefix of the match id is enough.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight a player by name")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	found, err := showMatch(os.Stdout, db, args[0], showPlayer)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No match found with id %q\n", args[0])
	}
	return nil
}

// showMatch prints the report of the match identified by ref. found is false
// when no stored match id equals or starts with ref.
func showMatch(w io.Writer, db *storage.DB, ref, player string) (found bool, err error) {
	id, err := db.ResolveMatchID(ref)
	if errors.Is(err, storage.ErrMatchNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve match: %w", err)
	}

	rec, err := db.GetMatch(id)
	if err != nil {
		return false, fmt.Errorf("load match %s: %w", id, err)
	}

	report.PrintMatchReport(w, aggregator.Report(rec), lineup.NameKey(player))
	return true, nil
}
