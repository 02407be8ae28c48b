package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes the match database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the match database",
	Long: `Permanently delete the SQLite match database together with its write-ahead
log files. All imported matches will be lost; re-import your match files
afterwards to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dbPath == ":memory:" {
		return errors.New("an in-memory database has nothing to drop")
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	removed, err := dropDatabase(dbPath)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	for _, p := range removed {
		fmt.Fprintf(os.Stdout, "Deleted: %s\n", p)
	}
	return nil
}

// dropDatabase removes the database file and its -wal and -shm companions and
// returns the paths that existed.
func dropDatabase(path string) ([]string, error) {
	var removed []string
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("nothing to remove", "path", p)
		default:
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return removed, nil
}
