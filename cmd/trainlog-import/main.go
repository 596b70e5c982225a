package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/trainlog/internal/config"
	"github.com/meltforce/trainlog/internal/importer"
	"github.com/meltforce/trainlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logPath := flag.String("path", "", "path to the directory of CSV training logs (required)")
	ownerID := flag.Int64("owner", 0, "user ID the imported sessions belong to (required)")
	stateDir := flag.String("state-dir", "", "directory for the import state db (empty disables skip tracking)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *logPath == "" || *ownerID <= 0 {
		fmt.Fprintf(os.Stderr, "Usage: trainlog-import -config config.yaml -path /path/to/logs -owner 1 [-state-dir dir] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*logPath)
	if err != nil || !info.IsDir() {
		log.Error("log path does not exist or is not a directory", "path", *logPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	var state *importer.StateDB
	if *stateDir != "" {
		state, err = importer.OpenStateDB(*stateDir)
		if err != nil {
			log.Error("opening state db failed", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	imp := importer.New(db, state, log, *ownerID, *dryRun)
	stats, err := imp.Import(ctx, *logPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"sessions_created", stats.SessionsCreated,
		"exercises_created", stats.ExercisesCreated,
		"rows_rejected", stats.RowsRejected,
	)
}
