package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"damai-site/pkg/config"
	"damai-site/pkg/database"
	"damai-site/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type options struct {
	dir     string
	command string
	name    string
	target  int64
}

func main() {
	var opts options
	flag.StringVar(&opts.dir, "dir", "migrations", "directory holding the goose SQL files")
	flag.StringVar(&opts.command, "command", "up", "up, down, redo, status, version or create")
	flag.StringVar(&opts.name, "name", "", "migration name for create")
	flag.Int64Var(&opts.target, "to", 0, "target version for up and down (0 means latest for up, one step for down)")
	flag.Parse()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := run(cfg, opts); err != nil {
		log.Error("Migration %s failed: %v", opts.command, err)
		os.Exit(1)
	}
	log.Info("Migration %s finished", opts.command)
}

func run(cfg *config.Config, opts options) error {
	if cfg.DBDriver == "sqlite" {
		return errors.New("migrations target postgres; sqlite schemas are created by the app")
	}

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("reach database at %s:%s: %w", cfg.DBHost, cfg.DBPort, err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch opts.command {
	case "create":
		if opts.name == "" {
			return errors.New("-name is required for create")
		}
		return goose.Create(db, opts.dir, opts.name, "sql")
	case "up":
		if opts.target > 0 {
			return goose.UpTo(db, opts.dir, opts.target)
		}
		return goose.Up(db, opts.dir)
	case "down":
		if opts.target > 0 {
			return goose.DownTo(db, opts.dir, opts.target)
		}
		return goose.Down(db, opts.dir)
	case "redo":
		return goose.Redo(db, opts.dir)
	case "status":
		return goose.Status(db, opts.dir)
	case "version":
		return goose.Version(db, opts.dir)
	}
	return fmt.Errorf("unknown command %q", opts.command)
}
