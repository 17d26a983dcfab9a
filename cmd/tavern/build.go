package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/config"
	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
	"github.com/cory-johannsen/tavern/internal/game/namegen"
	"github.com/cory-johannsen/tavern/internal/game/site"
	"github.com/cory-johannsen/tavern/internal/game/terrain"
	"github.com/cory-johannsen/tavern/internal/scripting"
)

// buildSite converts the plot section into a site grid and plot.
//
// Postcondition: Returns a valid plot or a non-nil error.
func buildSite(cfg config.PlotConfig) (*site.Site, site.Plot, error) {
	s, err := site.New(geom.V2(cfg.OriginX, cfg.OriginY), cfg.TileSize)
	if err != nil {
		return nil, site.Plot{}, err
	}
	dir, err := geom.ParseDir(cfg.DoorDir)
	if err != nil {
		return nil, site.Plot{}, fmt.Errorf("plot.door_dir: %w", err)
	}
	plot := site.Plot{
		Tiles:    geom.Aabr{Min: geom.V2(cfg.MinX, cfg.MinY), Max: geom.V2(cfg.MaxX, cfg.MaxY)},
		DoorTile: geom.V2(cfg.DoorX, cfg.DoorY),
		DoorDir:  dir,
		Alt:      cfg.Alt,
	}
	if err := plot.Validate(); err != nil {
		return nil, site.Plot{}, err
	}
	return s, plot, nil
}

// buildTerrain constructs the configured sampler. The returned close func
// releases any scripting VM and is always non-nil.
func buildTerrain(cfg config.TerrainConfig, logger *zap.Logger) (terrain.Sampler, func(), error) {
	flat := terrain.Flat{Alt: cfg.BaseAlt, Temp: cfg.Temperature}
	switch cfg.Kind {
	case "flat":
		return flat, func() {}, nil
	case "noise":
		return terrain.NewNoise(terrain.NoiseConfig{
			Seed:        cfg.Seed,
			BaseAlt:     cfg.BaseAlt,
			Amplitude:   cfg.Amplitude,
			Scale:       cfg.Scale,
			Temperature: cfg.Temperature,
			Octaves:     cfg.Octaves,
		}), func() {}, nil
	case "script":
		ts, err := scripting.LoadTerrainScript(cfg.Script, cfg.InstructionLimit, flat, logger)
		if err != nil {
			return nil, func() {}, err
		}
		return ts, ts.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown terrain kind %q", cfg.Kind)
	}
}

// chooseSeed prefers the flag, then the configured seed, then a fresh one.
//
// Postcondition: Returns a non-zero seed.
func chooseSeed(configured, flagged uint64) uint64 {
	switch {
	case flagged != 0:
		return flagged
	case configured != 0:
		return configured
	default:
		return dice.NewSeed()
	}
}

// loadNames reads a custom name table, or returns the built-in one when path
// is empty.
func loadNames(path string) (*namegen.Generator, error) {
	if path == "" {
		return namegen.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name table: %w", err)
	}
	return namegen.FromBytes(data)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
