package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/db"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/logger"
)

const usage = `usage: migrate [--config path] <command>

commands:
  up      apply every pending migration
  down    roll back the most recent migration
  status  list migrations and whether they are applied
  verify  compare the live schema with the target schema
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", "./cmd/app/config.yml", "path to the config file")
	pflag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		return errors.New("expected exactly one command")
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	gdb, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m := db.NewMigrator(gdb)

	switch cmd := pflag.Arg(0); cmd {
	case "up":
		ran, err := m.Up(ctx)
		if err != nil {
			return fmt.Errorf("m.Up -> %w", err)
		}
		if len(ran) == 0 {
			fmt.Println("nothing to apply")
		}
		for _, id := range ran {
			fmt.Println("applied", id)
		}

	case "down":
		id, err := m.Down(ctx)
		if err != nil {
			return fmt.Errorf("m.Down -> %w", err)
		}
		if id == "" {
			fmt.Println("nothing to roll back")
		} else {
			fmt.Println("rolled back", id)
		}

	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return fmt.Errorf("m.Status -> %w", err)
		}
		for _, st := range statuses {
			applied := "pending"
			if st.Applied {
				applied = "applied " + st.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%s_%s\t%s\n", st.ID, st.Name, applied)
		}

	case "verify":
		if err := m.Verify(ctx); err != nil {
			return fmt.Errorf("m.Verify -> %w", err)
		}
		fmt.Println("schema matches")

	default:
		pflag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}
