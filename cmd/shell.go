package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/leaders"
	"github.com/pable/go-floorball-stats/internal/report"
	"github.com/pable/go-floorball-stats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("flstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("flstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <match-id> [--player <name>]")
				continue
			}
			ref, player := args[0], ""
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--player" {
					player = strings.Join(args[i+1:], " ")
					break
				}
			}
			shellShow(db, ref, player)
		case "career":
			names := splitNames(strings.TrimSpace(strings.TrimPrefix(line, cmd)))
			if len(names) == 0 {
				cError.Fprintln(os.Stderr, "usage: career <name>[, <name>...]")
				continue
			}
			if err := printCareers(os.Stdout, db, names); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "leaders":
			opts, err := parseLeadersArgs(args)
			if err != nil {
				cError.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			if err := printLeaders(os.Stdout, db, opts); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "teams":
			opts, err := parseTeamsArgs(args)
			if err != nil {
				cError.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			if err := printTeams(os.Stdout, db, opts); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "sql":
			query := strings.TrimSpace(strings.TrimPrefix(line, cmd))
			if query == "" {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			if err := runQuery(os.Stdout, db, query); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"show <match-id>", "event timeline and box score of a match"},
		{"show <match-id> --player <name>", "same, highlighting one player"},
		{"career <name>[, <name>...]", "season and career statistics"},
		{"leaders [season] [top] [league]", "points leaders, e.g. 'leaders 2023 10 Liga'"},
		{"teams [season] [league]", "team table, season 0 for all seasons"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	matches, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%d match(es)\n", len(matches))
	report.PrintMatchList(os.Stdout, matches)
}

func shellShow(db *storage.DB, ref, player string) {
	found, err := showMatch(os.Stdout, db, ref, player)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if !found {
		cWarn.Fprintf(os.Stderr, "no match found with id %q\n", ref)
	}
}

// splitNames splits a comma separated list of player names. Names keep their
// inner spaces.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// parseLeadersArgs reads the optional season start year, top-N and league of
// the shell's leaders command. The league is the rest of the line.
func parseLeadersArgs(args []string) (leaders.Options, error) {
	opts := leaders.Options{Top: 20}
	if len(args) > 0 {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return leaders.Options{}, err
		}
		opts.Season = season
	}
	if len(args) > 1 {
		top, err := strconv.Atoi(args[1])
		if err != nil || top < 0 {
			return leaders.Options{}, fmt.Errorf("invalid top %q", args[1])
		}
		opts.Top = top
	}
	if len(args) > 2 {
		opts.League = strings.Join(args[2:], " ")
	}
	return opts, nil
}

// parseTeamsArgs reads the optional season start year and league of the
// shell's teams command.
func parseTeamsArgs(args []string) (leaders.Options, error) {
	var opts leaders.Options
	if len(args) > 0 {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return leaders.Options{}, err
		}
		opts.Season = season
	}
	if len(args) > 1 {
		opts.League = strings.Join(args[1:], " ")
	}
	return opts, nil
}

func parseSeasonArg(s string) (int, error) {
	season, err := strconv.Atoi(s)
	if err != nil || season < 0 {
		return 0, fmt.Errorf("invalid season %q: want a start year like 2023", s)
	}
	return season, nil
}
