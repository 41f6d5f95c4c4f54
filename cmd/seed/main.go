// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed loads a JSON fixture into an empty catalog.
//
// It applies pending migrations first and then creates every record through
// the domain services, so fixture data obeys the same rules as API writes.
//
//	go run ./cmd/seed -fixture data/fixtures/sample.json [-reset]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/reference"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	pgstore "github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

// seedConfig is the subset of the server configuration the loader needs.
type seedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	FixturePath   string `env:"SEED_FIXTURE"   envDefault:"./data/fixtures/sample.json"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "locallibrary-seed"))

	if err := run(log); err != nil {
		log.Error("seed_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	for _, file := range config.DotEnvFiles {
		_ = godotenv.Load(file)
	}

	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	fixturePath := flag.String("fixture", cfg.FixturePath, "path to the JSON fixture")
	reset := flag.Bool("reset", false, "drop and recreate every table before loading")
	flag.Parse()

	file, err := os.Open(*fixturePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fixture, err := DecodeFixture(file)
	if err != nil {
		return err
	}

	context, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrate := migration.RunUp
	if *reset {
		migrate = migration.Reset
	}
	if err := migrate(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	loanService := loan.NewService(loan.NewPostgresRepository(pool), log, nil)
	bookService := book.NewService(book.NewPostgresRepository(pool), loanService, log)

	loader := &Loader{
		Genres:    reference.NewService(reference.KindGenre, reference.NewPostgresRepository(pool, reference.KindGenre), log),
		Languages: reference.NewService(reference.KindLanguage, reference.NewPostgresRepository(pool, reference.KindLanguage), log),
		Authors:   author.NewService(author.NewPostgresRepository(pool), bookService, log),
		Books:     bookService,
		Copies:    loanService,
		Accounts:  auth.NewService(auth.NewAccountRepository(pool), nil, log),
		Logger:    log,
	}

	_, err = loader.Load(context, fixture)
	return err
}
