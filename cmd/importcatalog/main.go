// importcatalog replaces the product catalog read by week creation.
// Usage: go run ./cmd/importcatalog catalog.csv
package main

import (
	"context"
	"fmt"
	"os"

	"prodplan/internal/config"
	"prodplan/internal/infra"
	"prodplan/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: importcatalog <file.csv>")
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open catalog")
	}
	defer f.Close()

	products, err := infra.ParseCatalogCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()
	if err := repo.ReplaceAll(ctx, products); err != nil {
		log.Fatal().Err(err).Msg("catalog import failed")
	}
	n, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("count failed")
	}
	log.Info().Int64("products", n).Msg("catalog imported")
}
