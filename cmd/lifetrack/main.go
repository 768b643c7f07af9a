package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nhle/lifetrack/internal/aggregate"
	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/report"
	"github.com/nhle/lifetrack/internal/store"
)

const usage = `usage: lifetrack [flags] <command> [args]

commands:
  day [YYYY-MM-DD]             aggregate and show a business day (default today)
  week [YYYY-MM-DD]            show the week containing a day (default today)
  target MINUTES [YYYY-MM-DD]  set the daily target from a day on

flags:
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, time.Now()); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("lifetrack: %v", err)
	}
}

// run parses args, opens the store and executes one command.
func run(ctx context.Context, args []string, out io.Writer, now time.Time) error {
	fs := pflag.NewFlagSet("lifetrack", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", model.DefaultConfigPath(), "config file")
	fs.String("db", "", "SQLite database path (overrides database.path)")
	fs.String("user", "", "user id (overrides user_id)")
	fs.Bool("color", true, "colorize output (overrides report.color)")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := model.NewViper()
	for key, flag := range map[string]string{
		"database.path": "db",
		"user_id":       "user",
		"report.color":  "color",
	} {
		if f := fs.Lookup(flag); f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag --%s: %w", flag, err)
			}
		}
	}
	cfg, err := model.LoadConfigFrom(v, *configPath)
	if err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	s, err := openStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	engine := aggregate.NewEngine(s, s, cfg.Aggregation)
	r := report.New(cfg.Report)
	today := businessday.Format(now)

	switch cmd, params := rest[0], rest[1:]; cmd {
	case "day":
		sum, err := engine.ComputeToday(ctx, cfg.UserID, argOr(params, 0, today))
		if err != nil {
			return fmt.Errorf("computing day: %w", err)
		}
		return emit(out, *asJSON, sum, func() string { return r.Day(sum) })

	case "week":
		sum, err := engine.WeeklySummary(ctx, cfg.UserID, argOr(params, 0, today))
		if err != nil {
			return fmt.Errorf("summarizing week: %w", err)
		}
		return emit(out, *asJSON, sum, func() string { return r.Week(sum) })

	case "target":
		if len(params) == 0 {
			return fmt.Errorf("target: missing MINUTES")
		}
		minutes, err := strconv.Atoi(params[0])
		if err != nil {
			return fmt.Errorf("target: parsing minutes %q: %w", params[0], err)
		}
		sum, err := engine.SetTarget(ctx, cfg.UserID, argOr(params, 1, today), minutes)
		if err != nil {
			return fmt.Errorf("setting target: %w", err)
		}
		return emit(out, *asJSON, sum, func() string { return r.Day(sum) })

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openStore(path string) (*store.SQLiteStore, error) {
	if path != store.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return s, nil
}

func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

func emit(out io.Writer, asJSON bool, v any, render func() string) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(out, render())
	return err
}
