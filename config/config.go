// Package config holds runtime settings: defaults, an optional TOML file and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/termtris/constants"
	"github.com/lixenwraith/termtris/toml"
)

// DefaultFile is loaded from the working directory when no -config flag is given
const DefaultFile = "termtris.toml"

// Config is the full runtime configuration
// Durations are stored in milliseconds so the file stays plain integers
type Config struct {
	Debug   bool          `toml:"debug"`
	Board   BoardConfig   `toml:"board"`
	Timing  TimingConfig  `toml:"timing"`
	Audio   AudioConfig   `toml:"audio"`
	Input   InputConfig   `toml:"input"`
	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
}

type BoardConfig struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	PreviewSize int `toml:"preview_size"`
}

// TimingConfig holds every game clock in milliseconds
type TimingConfig struct {
	DescendMs          int `toml:"descend_ms"`
	DescendLevelStepMs int `toml:"descend_level_step_ms"`
	DescendFloorMs     int `toml:"descend_floor_ms"`
	MoveXMs            int `toml:"move_x_ms"`
	MoveXSpedUpMs      int `toml:"move_x_sped_up_ms"`
	MoveYMs            int `toml:"move_y_ms"`
	MoveYSpedUpMs      int `toml:"move_y_sped_up_ms"`
	KeySpeedupDelayMs  int `toml:"key_speedup_delay_ms"`
	KeyReleaseDelayMs  int `toml:"key_release_delay_ms"`
	QuitConfirmAfterMs int `toml:"quit_confirm_after_ms"`
}

type AudioConfig struct {
	Muted  bool    `toml:"muted"`
	Volume float64 `toml:"volume"` // beep effects.Volume exponent, base 2
}

type InputConfig struct {
	// KeymapPath names a TOML keymap merged over the default bindings; empty uses the defaults
	KeymapPath string `toml:"keymap"`
}

type HistoryConfig struct {
	// Path of the score history file; empty keeps history in memory
	Path string `toml:"path"`
}

type ServerConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	HostKeyPath string `toml:"host_key_path"`
	MaxSessions int    `toml:"max_sessions"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Width:       constants.BoardWidth,
			Height:      constants.BoardHeight,
			PreviewSize: constants.PreviewSize,
		},
		Timing: TimingConfig{
			DescendMs:          ms(constants.DescendBase),
			DescendLevelStepMs: ms(constants.DescendLevelStep),
			DescendFloorMs:     ms(constants.DescendFloor),
			MoveXMs:            ms(constants.MoveXInterval),
			MoveXSpedUpMs:      ms(constants.MoveXIntervalSpedUp),
			MoveYMs:            ms(constants.MoveYInterval),
			MoveYSpedUpMs:      ms(constants.MoveYIntervalSpedUp),
			KeySpeedupDelayMs:  ms(constants.KeySpeedupDelay),
			KeyReleaseDelayMs:  ms(constants.KeyReleaseDelay),
			QuitConfirmAfterMs: ms(constants.QuitConfirmAfter),
		},
		History: HistoryConfig{Path: "termtris_history.toml"},
		Server: ServerConfig{
			Addr:        ":2222",
			HostKeyPath: "termtris_host_key",
			MaxSessions: 32,
		},
	}
}

// Load reads path over the defaults; keys absent from the file keep their default
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads an explicit path, else DefaultFile when present, else the defaults
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", DefaultFile, err)
	}
	return Default(), nil
}

// Validate rejects dimensions and timings the game cannot run with
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}

	positive("board.width", c.Board.Width)
	positive("board.height", c.Board.Height)
	positive("board.preview_size", c.Board.PreviewSize)

	t := c.Timing
	positive("timing.descend_ms", t.DescendMs)
	positive("timing.descend_floor_ms", t.DescendFloorMs)
	positive("timing.move_x_ms", t.MoveXMs)
	positive("timing.move_x_sped_up_ms", t.MoveXSpedUpMs)
	positive("timing.move_y_ms", t.MoveYMs)
	positive("timing.move_y_sped_up_ms", t.MoveYSpedUpMs)
	positive("timing.key_speedup_delay_ms", t.KeySpeedupDelayMs)
	positive("timing.key_release_delay_ms", t.KeyReleaseDelayMs)
	if t.DescendLevelStepMs < 0 {
		errs = append(errs, fmt.Errorf("timing.descend_level_step_ms must not be negative, got %d", t.DescendLevelStepMs))
	}
	if t.QuitConfirmAfterMs < 0 {
		errs = append(errs, fmt.Errorf("timing.quit_confirm_after_ms must not be negative, got %d", t.QuitConfirmAfterMs))
	}
	if t.DescendFloorMs > t.DescendMs {
		errs = append(errs, fmt.Errorf("timing.descend_floor_ms %d exceeds descend_ms %d", t.DescendFloorMs, t.DescendMs))
	}

	if c.Server.Enabled {
		if c.Server.Addr == "" {
			errs = append(errs, errors.New("server.addr is required in serve mode"))
		}
		positive("server.max_sessions", c.Server.MaxSessions)
	}

	return errors.Join(errs...)
}

// Descend returns the base descend period
func (t TimingConfig) Descend() time.Duration { return dur(t.DescendMs) }

// DescendLevelStep returns the per-level descend speedup
func (t TimingConfig) DescendLevelStep() time.Duration { return dur(t.DescendLevelStepMs) }

// DescendFloor returns the fastest descend period
func (t TimingConfig) DescendFloor() time.Duration { return dur(t.DescendFloorMs) }

func (t TimingConfig) MoveX() time.Duration       { return dur(t.MoveXMs) }
func (t TimingConfig) MoveXSpedUp() time.Duration { return dur(t.MoveXSpedUpMs) }
func (t TimingConfig) MoveY() time.Duration       { return dur(t.MoveYMs) }
func (t TimingConfig) MoveYSpedUp() time.Duration { return dur(t.MoveYSpedUpMs) }

func (t TimingConfig) KeySpeedupDelay() time.Duration  { return dur(t.KeySpeedupDelayMs) }
func (t TimingConfig) KeyReleaseDelay() time.Duration  { return dur(t.KeyReleaseDelayMs) }
func (t TimingConfig) QuitConfirmAfter() time.Duration { return dur(t.QuitConfirmAfterMs) }

func ms(d time.Duration) int { return int(d / time.Millisecond) }

func dur(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }
