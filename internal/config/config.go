// Package config provides Viper-based configuration loading for the tavern
// generator.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/tavern/internal/game/terrain"
)

// PlotConfig describes the site grid and the plot the tavern is built on.
type PlotConfig struct {
	// TileSize is the edge length of a site tile in voxels.
	TileSize int `mapstructure:"tile_size"`
	// OriginX and OriginY are the world position of tile (0, 0).
	OriginX int `mapstructure:"origin_x"`
	OriginY int `mapstructure:"origin_y"`
	// MinX, MinY, MaxX, MaxY are the inclusive tile bounds of the plot.
	MinX int `mapstructure:"min_x"`
	MinY int `mapstructure:"min_y"`
	MaxX int `mapstructure:"max_x"`
	MaxY int `mapstructure:"max_y"`
	// DoorX and DoorY are the tile the entrance opens onto.
	DoorX int `mapstructure:"door_x"`
	DoorY int `mapstructure:"door_y"`
	// DoorDir points out through the entrance: "x", "y", "-x" or "-y".
	DoorDir string `mapstructure:"door_dir"`
	// Alt fixes the entrance altitude; nil samples the terrain.
	Alt *int `mapstructure:"alt"`
}

// TerrainConfig selects and parameterises the terrain sampler.
type TerrainConfig struct {
	// Kind is "flat", "noise" or "script".
	Kind        string  `mapstructure:"kind"`
	BaseAlt     float64 `mapstructure:"base_alt"`
	Amplitude   float64 `mapstructure:"amplitude"`
	Scale       float64 `mapstructure:"scale"`
	Octaves     int     `mapstructure:"octaves"`
	Temperature float64 `mapstructure:"temperature"`
	// Seed drives the noise sampler independently of the layout seed.
	Seed int64 `mapstructure:"seed"`
	// Script is the Lua terrain file used when Kind is "script".
	Script string `mapstructure:"script"`
	// InstructionLimit caps the Lua instructions per sampler call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// GenerationConfig holds layout generation settings.
type GenerationConfig struct {
	// Seed is the layout seed. Zero draws a fresh seed and logs it.
	Seed uint64 `mapstructure:"seed"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// OutputConfig controls where the generated layout is written.
type OutputConfig struct {
	// Path is the YAML output file. Empty writes to stdout.
	Path string `mapstructure:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Plot       PlotConfig       `mapstructure:"plot"`
	Terrain    TerrainConfig    `mapstructure:"terrain"`
	Generation GenerationConfig `mapstructure:"generation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Output     OutputConfig     `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validatePlot(c.Plot); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTerrain(c.Terrain); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlot(p PlotConfig) error {
	var errs []string
	if p.TileSize < 1 {
		errs = append(errs, fmt.Sprintf("plot.tile_size must be >= 1, got %d", p.TileSize))
	}
	if p.MinX > p.MaxX || p.MinY > p.MaxY {
		errs = append(errs, fmt.Sprintf("plot bounds (%d, %d)..(%d, %d) are inverted", p.MinX, p.MinY, p.MaxX, p.MaxY))
	}
	if p.Alt != nil && (*p.Alt > terrain.MaxAlt || *p.Alt < -terrain.MaxAlt) {
		errs = append(errs, fmt.Sprintf("plot.alt must be within ±%d, got %d", terrain.MaxAlt, *p.Alt))
	}
	validDirs := map[string]bool{"x": true, "y": true, "-x": true, "-y": true}
	if !validDirs[p.DoorDir] {
		errs = append(errs, fmt.Sprintf("plot.door_dir must be one of [x, y, -x, -y], got %q", p.DoorDir))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTerrain(t TerrainConfig) error {
	var errs []string
	if !terrain.AltInRange(t.BaseAlt) {
		errs = append(errs, fmt.Sprintf("terrain.base_alt must be within ±%d, got %g", terrain.MaxAlt, t.BaseAlt))
	}
	switch t.Kind {
	case "flat":
	case "noise":
		if t.Scale <= 0 {
			errs = append(errs, fmt.Sprintf("terrain.scale must be > 0, got %g", t.Scale))
		}
		if t.Octaves < 1 {
			errs = append(errs, fmt.Sprintf("terrain.octaves must be >= 1, got %d", t.Octaves))
		}
		if t.Amplitude < 0 {
			errs = append(errs, "terrain.amplitude must not be negative")
		}
		if !terrain.AltInRange(math.Abs(t.BaseAlt) + t.Amplitude) {
			errs = append(errs, fmt.Sprintf("terrain.amplitude must keep altitudes within ±%d, got %g", terrain.MaxAlt, t.Amplitude))
		}
	case "script":
		if t.Script == "" {
			errs = append(errs, "terrain.script must not be empty when terrain.kind is script")
		}
		if t.InstructionLimit < 1 {
			errs = append(errs, fmt.Sprintf("terrain.instruction_limit must be >= 1, got %d", t.InstructionLimit))
		}
	default:
		errs = append(errs, fmt.Sprintf("terrain.kind must be one of [flat, noise, script], got %q", t.Kind))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TAVERN_ prefix
	v.SetEnvPrefix("TAVERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("plot.tile_size", 6)
	v.SetDefault("plot.origin_x", 0)
	v.SetDefault("plot.origin_y", 0)
	v.SetDefault("plot.min_x", 0)
	v.SetDefault("plot.min_y", 0)
	v.SetDefault("plot.max_x", 6)
	v.SetDefault("plot.max_y", 6)
	v.SetDefault("plot.door_x", 3)
	v.SetDefault("plot.door_y", -1)
	v.SetDefault("plot.door_dir", "-y")

	v.SetDefault("terrain.kind", "flat")
	v.SetDefault("terrain.base_alt", 0.0)
	v.SetDefault("terrain.amplitude", 12.0)
	v.SetDefault("terrain.scale", 64.0)
	v.SetDefault("terrain.octaves", 3)
	v.SetDefault("terrain.temperature", 0.3)
	v.SetDefault("terrain.seed", 0)
	v.SetDefault("terrain.instruction_limit", 10000)

	v.SetDefault("generation.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("output.path", "")
}
