// Package main provides the scox character generator binary. It builds a
// character from a superior profile and an archetype archive, prints the
// character sheet, and optionally persists the result to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scox/internal/config"
	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/character"
	"github.com/cory-johannsen/scox/internal/game/dice"
	"github.com/cory-johannsen/scox/internal/game/profile"
	"github.com/cory-johannsen/scox/internal/observability"
	"github.com/cory-johannsen/scox/internal/render"
	"github.com/cory-johannsen/scox/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/scox.yaml", "path to configuration file")
	name := flag.String("name", "", "character name")
	natureStr := flag.String("nature", "", "character nature: Angel or Demon")
	archetype := flag.String("archetype", "", "archetype profile reference")
	superior := flag.String("superior", "", "superior profile reference")
	level := flag.Int("level", 0, "character level")
	seed := flag.Int64("seed", 0, "dice seed; 0 = cryptographic randomness")
	save := flag.Bool("save", false, "persist the character to the database")
	flag.Parse()

	if *name == "" || *natureStr == "" || *archetype == "" || *superior == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	nature, err := profile.ParseNature(*natureStr)
	if err != nil {
		logger.Fatal("parsing nature", zap.Error(err))
	}

	cat := catalogue.Default()
	if cfg.Profiles.CatalogueDir != "" {
		cat, err = catalogue.Load(cfg.Profiles.CatalogueDir)
		if err != nil {
			logger.Fatal("loading catalogue", zap.Error(err))
		}
		logger.Info("catalogue loaded",
			zap.String("dir", cfg.Profiles.CatalogueDir),
		)
	}

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
		logger.Info("using seeded dice", zap.Int64("seed", *seed))
	}

	store := profile.NewStore(cfg.Profiles.Dir, logger)
	gen := character.NewGenerator(cat, store, src, logger)

	c, err := gen.Create(*name, nature, *archetype, *superior)
	if err != nil {
		logger.Fatal("creating character", zap.Error(err))
	}
	c.Level = *level

	fmt.Fprint(os.Stdout, render.Sheet(c))

	if *save {
		ctx := context.Background()
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)

		repo := postgres.NewCharacterRepository(pool.DB())
		if err := repo.Create(ctx, c); err != nil {
			logger.Fatal("saving character", zap.Error(err))
		}
		logger.Info("character saved", zap.String("id", c.ID.String()))
	}

	logger.Info("done",
		zap.String("name", c.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
}
