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

// careerCmd prints season-by-season statistics for one or more players.
var careerCmd = &cobra.Command{
	Use:   "career <name> [<name>...]",
	Short: "Season and career statistics for one or more players",
	Long: `Compute every season of a player's career from the stored matches.

Players are identified by name; case and extra spaces are ignored but other
spelling differences are not. Quote names containing spaces:

  flstats career "Anders Jensen" "Peter Holm"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCareer,
}

func runCareer(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return printCareers(os.Stdout, db, args)
}

// printCareers computes the careers of names on the worker pool and prints
// them in argument order.
func printCareers(w io.Writer, db *storage.DB, names []string) error {
	careers, err := leaders.Careers(names, workers, db.LoadPlayerRecords)
	if err != nil {
		return err
	}
	for _, c := range careers {
		log.Debug("career computed", "player", c.NameKey, "seasons", len(c.Seasons), "games", c.Overall.Games)
		report.PrintCareer(w, c)
	}
	return nil
}
