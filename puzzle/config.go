package puzzle

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tuning of one puzzle world.
type Config struct {
	SessionDuration time.Duration `env:"SNAPFIT_SESSION_DURATION" envDefault:"5m"`
	RequiredCorrect int           `env:"SNAPFIT_REQUIRED_CORRECT" envDefault:"5"`

	MoveSpeed     float64 `env:"SNAPFIT_MOVE_SPEED" envDefault:"2"`
	SnapDistance  float64 `env:"SNAPFIT_SNAP_DISTANCE" envDefault:"1"`
	SnapSpeed     float64 `env:"SNAPFIT_SNAP_SPEED" envDefault:"5"`
	SnapEpsilon   float64 `env:"SNAPFIT_SNAP_EPSILON" envDefault:"0.01"`
	RotationSpeed float64 `env:"SNAPFIT_ROTATION_SPEED" envDefault:"5"`

	SpawnHalfExtent float64 `env:"SNAPFIT_SPAWN_HALF_EXTENT" envDefault:"5"`
	SpawnMinY       float64 `env:"SNAPFIT_SPAWN_MIN_Y" envDefault:"1"`
	SpawnMaxY       float64 `env:"SNAPFIT_SPAWN_MAX_Y" envDefault:"3"`

	// Seed drives spawn randomization. Zero picks a random seed.
	Seed uint64 `env:"SNAPFIT_SEED"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		SessionDuration: 5 * time.Minute,
		RequiredCorrect: 5,
		MoveSpeed:       2,
		SnapDistance:    1,
		SnapSpeed:       5,
		SnapEpsilon:     0.01,
		RotationSpeed:   5,
		SpawnHalfExtent: 5,
		SpawnMinY:       1,
		SpawnMaxY:       3,
	}
}

// LoadConfig reads the SNAPFIT_* environment on top of the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects tunings the state machine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.SessionDuration <= 0:
		return fmt.Errorf("%w: session duration must be positive, got %s", ErrInvalidConfig, c.SessionDuration)
	case c.RequiredCorrect <= 0:
		return fmt.Errorf("%w: required correct count must be positive, got %d", ErrInvalidConfig, c.RequiredCorrect)
	case c.MoveSpeed < 0 || c.SnapSpeed <= 0 || c.RotationSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidConfig)
	case c.SnapEpsilon <= 0 || c.SnapDistance <= c.SnapEpsilon:
		return fmt.Errorf("%w: need 0 < snap epsilon < snap distance, got %g and %g", ErrInvalidConfig, c.SnapEpsilon, c.SnapDistance)
	case c.SpawnHalfExtent < 0 || c.SpawnMaxY < c.SpawnMinY:
		return fmt.Errorf("%w: empty spawn box", ErrInvalidConfig)
	}
	return nil
}

// SpawnBounds is the box spawn positions are drawn from: x and z in
// [-HalfExtent, HalfExtent], y in [MinY, MaxY].
type SpawnBounds struct {
	HalfExtent float64
	MinY       float64
	MaxY       float64
}

// Bounds returns the configured spawn box.
func (c Config) Bounds() SpawnBounds {
	return SpawnBounds{HalfExtent: c.SpawnHalfExtent, MinY: c.SpawnMinY, MaxY: c.SpawnMaxY}
}
