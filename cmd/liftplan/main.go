// Command liftplan is the workout planner CLI: generate weekly push/pull/legs
// schedules as markdown, manage the exercise catalog, log completed workouts
// from filled-in notes, and analyze progression.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/advisor"
	"github.com/claude/liftplan/internal/analytics"
	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/markdown"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/schedule"
	"github.com/claude/liftplan/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: liftplan <command> [flags]

Commands:
  generate   Generate a weekly workout schedule document
  schedule   Print the upcoming week's schedule
  add        Add an exercise to a category
  remove     Remove an exercise from a category
  list       List configured exercises
  log        Log a completed workout (from a markdown note or interactively)
  analyze    Analyze recent training progress
  suggest    Suggest the next session for an exercise

Run 'liftplan <command> -h' for command flags.
`)
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(log, os.Args[2:])
	case "schedule":
		err = runSchedule(log, os.Args[2:])
	case "add":
		err = runAdd(log, os.Args[2:])
	case "remove":
		err = runRemove(log, os.Args[2:])
	case "list":
		err = runList(log, os.Args[2:])
	case "log":
		err = runLog(log, os.Args[2:])
	case "analyze":
		err = runAnalyze(log, os.Args[2:])
	case "suggest":
		err = runSuggest(log, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	return config.LoadOrDefault(path)
}

// parseAnchor resolves the optional -start-date flag.
func parseAnchor(gen *schedule.Generator, startDate string) (models.Date, error) {
	if startDate == "" {
		return gen.NextAnchor(), nil
	}
	return models.ParseDate(startDate)
}

func runGenerate(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	output := fs.String("output", "", "output file path for the weekly document")
	startDate := fs.String("start-date", "", "start date (YYYY-MM-DD), defaults to next Monday")
	noRandomize := fs.Bool("no-randomize", false, "keep exercises in catalog order")
	dailyNotes := fs.Bool("daily-notes", false, "write one note per day instead of a weekly document")
	vault := fs.String("vault", "", "daily notes directory (overrides config)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		return err
	}

	gen := schedule.New(catalog.Catalog())
	anchor, err := parseAnchor(gen, *startDate)
	if err != nil {
		return err
	}
	week := gen.Week(anchor, !*noRandomize)

	if *dailyNotes {
		dir := cfg.Storage.VaultDir
		if *vault != "" {
			dir = *vault
		}
		for _, entry := range week {
			path := filepath.Join(dir, markdown.DailyFileName(entry))
			if err := markdown.WriteDocument(path, markdown.RenderDaily(entry)); err != nil {
				return err
			}
			fmt.Printf("Generated: %s\n", path)
		}
		return nil
	}

	content := markdown.RenderWeekly(week, time.Now())
	if *output != "" {
		if err := markdown.WriteDocument(*output, content); err != nil {
			return err
		}
		fmt.Printf("Generated schedule: %s\n", *output)
		return nil
	}
	fmt.Println(content)
	return nil
}

func runSchedule(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	startDate := fs.String("start-date", "", "start date (YYYY-MM-DD), defaults to next Monday")
	noRandomize := fs.Bool("no-randomize", false, "keep exercises in catalog order")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		return err
	}

	gen := schedule.New(catalog.Catalog())
	anchor, err := parseAnchor(gen, *startDate)
	if err != nil {
		return err
	}

	for _, entry := range gen.Week(anchor, !*noRandomize) {
		fmt.Printf("\n%s, %s - %s\n", entry.Date.Format("Monday"), entry.Date, entry.Type)
		if entry.Type == models.DayRest {
			fmt.Println("  Rest Day")
			continue
		}
		for i, ex := range entry.Exercises {
			fmt.Printf("  %d. %s\n", i+1, ex)
		}
	}
	return nil
}

func runAdd(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: liftplan add <push|pull|legs> <exercise>")
	}
	cat, err := models.ParseCategory(fs.Arg(0))
	if err != nil {
		return err
	}
	name := fs.Arg(1)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		return err
	}

	added, err := catalog.Add(cat, name)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("Added '%s' to %s workouts\n", name, cat)
	} else {
		fmt.Printf("'%s' already exists in %s workouts\n", name, cat)
	}
	return nil
}

func runRemove(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: liftplan remove <push|pull|legs> <exercise>")
	}
	cat, err := models.ParseCategory(fs.Arg(0))
	if err != nil {
		return err
	}
	name := fs.Arg(1)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		return err
	}

	removed, err := catalog.Remove(cat, name)
	if err != nil {
		return err
	}
	if removed {
		fmt.Printf("Removed '%s' from %s workouts\n", name, cat)
	} else {
		fmt.Printf("'%s' not found in %s workouts\n", name, cat)
	}
	return nil
}

func runList(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	typeFilter := fs.String("type", "", "filter by category (push, pull, legs)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		return err
	}

	cats := models.Categories
	if *typeFilter != "" {
		cat, err := models.ParseCategory(*typeFilter)
		if err != nil {
			return err
		}
		cats = []models.Category{cat}
	}

	for _, cat := range cats {
		fmt.Printf("\n%s:\n", strings.ToUpper(string(cat)))
		exercises := catalog.Catalog().Exercises(cat)
		if len(exercises) == 0 {
			fmt.Println("  (no exercises)")
			continue
		}
		for i, ex := range exercises {
			fmt.Printf("  %d. %s\n", i+1, ex)
		}
	}
	return nil
}

func runLog(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	file := fs.String("file", "", "path to a markdown note to parse")
	interactive := fs.Bool("interactive", false, "interactive logging mode")
	date := fs.String("date", "", "workout date (YYYY-MM-DD), interactive mode only")
	dayType := fs.String("type", "", "workout type (push, pull, legs), interactive mode only")
	force := fs.Bool("force", false, "re-log a file even if it is unchanged since the last log")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	progress, err := storage.OpenProgress(cfg.ProgressPath())
	if err != nil {
		return err
	}

	switch {
	case *file != "":
		return logFromFile(log, cfg, progress, *file, *force)
	case *interactive:
		return logInteractive(progress, os.Stdin, *date, *dayType)
	default:
		return fmt.Errorf("use -file to log from markdown or -interactive for manual entry")
	}
}

// logFromFile parses a markdown note and merges it into the progress log,
// consulting the ledger first so unchanged files are not re-logged.
func logFromFile(log *slog.Logger, cfg *config.Config, progress *storage.ProgressStore, path string, force bool) error {
	ledger, err := storage.OpenLedger(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer ledger.Close()

	hash, size, err := storage.HashDocument(path)
	if err != nil {
		return fmt.Errorf("reading document %s: %w", path, err)
	}

	if !force {
		logged, err := ledger.IsLogged(path, size, hash)
		if err != nil {
			return err
		}
		if logged {
			fmt.Printf("Already logged (unchanged): %s\n", path)
			return nil
		}
	}

	rec, err := markdown.ParseFile(path)
	if err != nil {
		var parseErr *markdown.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(os.Stderr, "Failed to parse workout from %s\n", parseErr.Source)
			fmt.Fprintln(os.Stderr, "Make sure the file contains:")
			fmt.Fprintln(os.Stderr, "  - A date in YYYY-MM-DD format (in filename or content)")
			fmt.Fprintln(os.Stderr, "  - A '## Workout: Type' header")
			fmt.Fprintln(os.Stderr, "  - Exercise tables with weight and reps filled in")
		}
		return err
	}

	updated, err := progress.Upsert(rec)
	if err != nil {
		return err
	}
	if err := ledger.MarkLogged(path, size, hash); err != nil {
		log.Warn("ledger update failed", "path", path, "error", err)
	}

	if updated {
		fmt.Printf("Updated workout for %s\n", rec.Date)
	} else {
		fmt.Printf("Logged workout for %s\n", rec.Date)
	}
	return nil
}

// logInteractive reads exercises and sets from in until a blank exercise
// name, then stores the workout.
func logInteractive(progress *storage.ProgressStore, in io.Reader, dateStr, dayType string) error {
	scanner := bufio.NewScanner(in)
	prompt := func(msg string) string {
		fmt.Print(msg)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	date := models.DateOf(time.Now())
	if dateStr == "" {
		if s := prompt("Enter workout date (YYYY-MM-DD) or press Enter for today: "); s != "" {
			dateStr = s
		}
	}
	if dateStr != "" {
		var err error
		date, err = models.ParseDate(dateStr)
		if err != nil {
			return err
		}
	}

	if dayType == "" {
		dayType = strings.ToLower(prompt("Enter workout type (push/pull/legs): "))
	}

	var exercises []models.ExerciseRecord
	fmt.Printf("\nLogging %s workout for %s\n", dayType, date)
	fmt.Println("Enter exercises (press Enter with empty name to finish):")

	for {
		name := prompt("Exercise name: ")
		if name == "" {
			break
		}

		var sets []models.SetRecord
		fmt.Printf("  Enter sets for %s (weight x reps, empty to finish):\n", name)
		for setNum := 1; ; {
			line := prompt(fmt.Sprintf("    Set %d: ", setNum))
			if line == "" {
				break
			}
			weight, reps, ok := markdown.ParseSetInput(line)
			if !ok {
				fmt.Println("    Invalid format. Use: weight x reps (e.g., 135 x 10)")
				continue
			}
			sets = append(sets, models.SetRecord{Set: setNum, Weight: weight, Reps: reps})
			setNum++
		}

		if len(sets) > 0 {
			exercises = append(exercises, models.ExerciseRecord{Name: name, Sets: sets})
		}
	}

	if len(exercises) == 0 {
		return fmt.Errorf("no exercises entered")
	}

	if _, err := progress.Upsert(models.WorkoutRecord{
		Date:      date,
		DayType:   dayType,
		Exercises: exercises,
	}); err != nil {
		return err
	}
	fmt.Println("\nWorkout logged successfully!")
	return nil
}

func runAnalyze(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	days := fs.Int("days", 30, "number of days to analyze")
	noAI := fs.Bool("no-ai", false, "disable the AI advisor even if configured")
	output := fs.String("output", "", "output file for the analysis")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	progress, err := storage.OpenProgress(cfg.ProgressPath())
	if err != nil {
		return err
	}

	var adv advisor.Provider = advisor.Disabled{}
	if !*noAI {
		adv = advisor.Select(cfg.Advisor.URL, cfg.Advisor.Model, cfg.Advisor.APIKey, cfg.Advisor.Timeout())
	}

	cutoff := models.DateOf(time.Now()).AddDays(-*days)
	report := analytics.Analyze(context.Background(), progress.Since(cutoff), *days, adv, log)

	if *output != "" {
		if err := markdown.WriteDocument(*output, report); err != nil {
			return err
		}
		fmt.Printf("Analysis saved to %s\n", *output)
		return nil
	}
	fmt.Println(report)
	return nil
}

func runSuggest(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: liftplan suggest <exercise>")
	}
	exercise := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	progress, err := storage.OpenProgress(cfg.ProgressPath())
	if err != nil {
		return err
	}

	suggestion, err := analytics.SuggestNext(progress.Records(), exercise)
	if errors.Is(err, analytics.ErrNotFound) {
		fmt.Printf("No data found for exercise: %s\n", exercise)
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nExercise: %s\n", suggestion.Exercise)
	fmt.Printf("Current: %glbs x %d reps\n", suggestion.CurrentWeight, suggestion.CurrentReps)
	fmt.Printf("\nSuggestion: %glbs x %d reps\n", suggestion.Weight, suggestion.Reps)
	fmt.Printf("Reason: %s\n", suggestion.Reason)
	return nil
}
