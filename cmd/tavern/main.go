// Package main provides the tavern generator CLI: it lays out one tavern on
// the configured plot and writes the result as YAML.
package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/config"
	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/tavern"
	"github.com/cory-johannsen/tavern/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seedFlag := flag.Uint64("seed", 0, "layout seed; overrides generation.seed when non-zero")
	outPath := flag.String("out", "", "output YAML path; overrides output.path")
	namesPath := flag.String("names", "", "optional YAML name table replacing the built-in one")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	s, plot, err := buildSite(cfg.Plot)
	if err != nil {
		logger.Fatal("building site", zap.Error(err))
	}
	land, closeLand, err := buildTerrain(cfg.Terrain, logger)
	if err != nil {
		logger.Fatal("building terrain", zap.Error(err))
	}
	defer closeLand()

	names, err := loadNames(*namesPath)
	if err != nil {
		logger.Fatal("loading names", zap.Error(err))
	}

	seed := chooseSeed(cfg.Generation.Seed, *seedFlag)
	logger.Info("generating tavern",
		zap.Uint64("seed", seed),
		zap.Stringer("plot", plot.Tiles),
		zap.Stringer("door_dir", plot.DoorDir),
		zap.String("terrain", cfg.Terrain.Kind),
	)

	src := dice.NewLoggedSource(dice.NewSeededSource(seed), logger)
	gen := tavern.NewGenerator(logger).WithNames(names)
	tv, err := gen.Generate(s, plot, land, src)
	if errors.Is(err, tavern.ErrPlotTooSmall) {
		logger.Fatal("plot cannot hold an entrance", zap.Stringer("plot", plot.Tiles), zap.Error(err))
	}
	if err != nil {
		logger.Fatal("generating tavern", zap.Error(err))
	}
	if err := tv.Validate(); err != nil {
		logger.Fatal("generated tavern is invalid", zap.Uint64("seed", seed), zap.Error(err))
	}

	data, err := tavern.MarshalYAML(tv)
	if err != nil {
		logger.Fatal("encoding tavern", zap.Error(err))
	}
	if err := writeOutput(cfg.Output.Path, data); err != nil {
		logger.Fatal("writing tavern", zap.Error(err))
	}

	logger.Info("tavern generated",
		zap.String("name", tv.Name()),
		zap.Stringer("id", tv.ID()),
		zap.Int("rooms", tv.NumRooms()),
		zap.Int("walls", len(tv.Walls())),
		zap.Int("roofs", len(tv.Roofs())),
		zap.Int("seed_draws", src.Draws()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
