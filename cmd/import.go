package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/importer"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml> [<file.yaml>...]",
	Short: "Import matches from YAML match files",
	Long: `Import one or more YAML match files into the database.

Each match is stored with its raw protocol and upload rows. Importing a match
id that is already stored replaces all of its rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var imported, replaced int
	for _, path := range args {
		recs, err := importer.LoadFile(path)
		if errors.Is(err, importer.ErrNoMatches) {
			log.Warn("no matches in file, skipping", "file", path)
			continue
		}
		if err != nil {
			return err
		}

		for _, rec := range recs {
			id := rec.Summary.ExternalID
			exists, err := db.MatchExists(id)
			if err != nil {
				return fmt.Errorf("check match %s: %w", id, err)
			}
			if rec.Summary.Date == nil {
				log.Debug("match has no date, it will not count towards careers", "match", id)
			}
			if err := db.InsertMatch(rec); err != nil {
				return fmt.Errorf("store match %s: %w", id, err)
			}
			if exists {
				replaced++
				log.Debug("replaced match", "match", id)
			} else {
				imported++
			}
		}
		log.Info("imported file", "file", path, "matches", len(recs))
	}

	fmt.Fprintf(os.Stdout, "Imported %d new match(es), replaced %d.\n", imported, replaced)
	return nil
}
