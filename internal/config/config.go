// Package config holds all idler configuration: where the save slot
// lives, the gameplay defaults, the session timer intervals, and the
// logging knobs. A yaml file layered over defaults; the data directory
// can also be pointed elsewhere via IDLER_DATA_DIR.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvDataDir overrides the data directory when set.
const EnvDataDir = "IDLER_DATA_DIR"

// Config is the root configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Game    GameConfig    `yaml:"game"`
	Timers  TimersConfig  `yaml:"timers"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the save slot.
type DataConfig struct {
	// Dir is the directory holding the save database and logs.
	Dir string `yaml:"dir"`
	// File is the database filename inside Dir.
	File string `yaml:"file"`
}

// GameConfig carries the gameplay defaults used for a fresh save.
type GameConfig struct {
	ClickPower string `yaml:"click_power"`
	AutoRate   string `yaml:"auto_rate"`
	// Precision is the significant digits carried by progression math.
	Precision uint32 `yaml:"precision"`
}

// TimersConfig carries the session schedules as duration strings.
type TimersConfig struct {
	Tick     string `yaml:"tick"`
	Autosave string `yaml:"autosave"`
}

// LoggingConfig configures the file logger. The TUI owns the terminal,
// so logs never go to stdout.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	File    string `yaml:"file"`  // relative to Data.Dir unless absolute
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			Dir:  "data",
			File: "game.db",
		},
		Game: GameConfig{
			ClickPower: "10",
			AutoRate:   "1",
			Precision:  50,
		},
		Timers: TimersConfig{
			Tick:     "100ms",
			Autosave: "10s",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    "idler.log",
		},
	}
}

// Load reads the yaml file at path over the defaults. A missing file is
// not an error; the defaults stand. The env override applies last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Data.Dir = dir
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := c.TickInterval(); err != nil {
		return err
	}
	if _, err := c.AutosaveInterval(); err != nil {
		return err
	}
	if c.Game.Precision == 0 {
		return fmt.Errorf("game.precision must be positive")
	}
	return nil
}

// DatabasePath is the full path of the save database.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Data.Dir, c.Data.File)
}

// LogPath is the full path of the log file.
func (c Config) LogPath() string {
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(c.Data.Dir, c.Logging.File)
}

// TickInterval parses the fast tick schedule.
func (c Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timers.Tick)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timers.tick %q", c.Timers.Tick)
	}
	return d, nil
}

// AutosaveInterval parses the autosave schedule.
func (c Config) AutosaveInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timers.Autosave)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timers.autosave %q", c.Timers.Autosave)
	}
	return d, nil
}
