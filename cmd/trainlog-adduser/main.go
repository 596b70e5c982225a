package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/trainlog/internal/auth"
	"github.com/meltforce/trainlog/internal/config"
	"github.com/meltforce/trainlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	username := flag.String("username", "", "username for the new account (required)")
	password := flag.String("password", "", "password for the new account (required)")
	admin := flag.Bool("admin", false, "grant the account admin rights")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *username == "" || *password == "" {
		fmt.Fprintf(os.Stderr, "Usage: trainlog-adduser -config config.yaml -username alice -password secret [-admin]\n")
		flag.PrintDefaults()
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
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Error("hashing password failed", "error", err)
		os.Exit(1)
	}

	id, err := db.CreateUser(ctx, *username, hash, *admin)
	if err != nil {
		log.Error("creating user failed", "username", *username, "error", err)
		os.Exit(1)
	}

	log.Info("user created", "id", id, "username", *username, "admin", *admin)
}
