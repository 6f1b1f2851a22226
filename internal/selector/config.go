package selector

import (
	"errors"
	"fmt"
)

const (
	// DefaultSize is the multiplication-table range: factors 1..10.
	DefaultSize = 10

	// DefaultBatchSize is the number of questions served per round.
	DefaultBatchSize = 10

	// DefaultStep is the weight adjustment applied per graded answer.
	DefaultStep = 0.2

	// DefaultAcceptanceScale is the upper bound of the acceptance draw.
	// A cell with weight >= scale is always accepted.
	DefaultAcceptanceScale = 2.0

	// DefaultTrivialDivisor de-emphasizes facts with a factor of one.
	DefaultTrivialDivisor = 3.0

	// DefaultMaxLevel is the highest level a learner can reach.
	DefaultMaxLevel = 10

	// DefaultMaxAttempts caps rejection-sampling draws per batch before
	// the uniform fallback fills the remaining slots.
	DefaultMaxAttempts = 10000
)

var (
	ErrBatchTooLarge = errors.New("batch size exceeds the number of distinct facts")
	ErrInvalidLevel  = errors.New("level out of range")
	ErrOutOfRange    = errors.New("fact outside the weight table")
	ErrSizeMismatch  = errors.New("weight table size does not match config")
)

// Variant selects how the sampling range is bounded.
type Variant string

const (
	// VariantClassic always draws factors from the full table.
	VariantClassic Variant = "classic"

	// VariantLeveled draws factors from [1, level].
	VariantLeveled Variant = "leveled"
)

// Config controls batch generation and weight feedback.
type Config struct {
	Size            int     `yaml:"size"`
	BatchSize       int     `yaml:"batch_size"`
	Step            float64 `yaml:"step"`
	AcceptanceScale float64 `yaml:"acceptance_scale"`
	TrivialDivisor  float64 `yaml:"trivial_divisor"`
	MaxLevel        int     `yaml:"max_level"`
	MaxAttempts     int     `yaml:"max_attempts"`
	Variant         Variant `yaml:"variant"`

	// DampTrivial divides the weight of facts with a factor of one by
	// TrivialDivisor before the acceptance draw.
	DampTrivial bool `yaml:"damp_trivial"`
}

// DefaultConfig returns the leveled configuration with trivial-fact damping.
func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		BatchSize:       DefaultBatchSize,
		Step:            DefaultStep,
		AcceptanceScale: DefaultAcceptanceScale,
		TrivialDivisor:  DefaultTrivialDivisor,
		MaxLevel:        DefaultMaxLevel,
		MaxAttempts:     DefaultMaxAttempts,
		Variant:         VariantLeveled,
		DampTrivial:     true,
	}
}

// ClassicConfig returns the original drill behavior: full range, no damping.
func ClassicConfig() Config {
	cfg := DefaultConfig()
	cfg.Variant = VariantClassic
	cfg.DampTrivial = false
	return cfg
}

// Validate reports configuration values that would make sampling impossible.
func (c Config) Validate() error {
	switch {
	case c.Size < 1:
		return fmt.Errorf("size must be positive, got %d", c.Size)
	case c.BatchSize < 1:
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	case c.BatchSize > c.Size*c.Size:
		return fmt.Errorf("%w: %d facts, batch of %d", ErrBatchTooLarge, c.Size*c.Size, c.BatchSize)
	case c.Step <= 0:
		return fmt.Errorf("step must be positive, got %g", c.Step)
	case c.AcceptanceScale <= 0:
		return fmt.Errorf("acceptance scale must be positive, got %g", c.AcceptanceScale)
	case c.DampTrivial && c.TrivialDivisor <= 0:
		return fmt.Errorf("trivial divisor must be positive, got %g", c.TrivialDivisor)
	case c.MaxLevel < 1 || c.MaxLevel > c.Size:
		return fmt.Errorf("max level must be in [1, %d], got %d", c.Size, c.MaxLevel)
	case c.MaxAttempts < 1:
		return fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	}
	switch c.Variant {
	case VariantClassic, VariantLeveled:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Variant == VariantLeveled && c.MaxLevel*c.MaxLevel < c.BatchSize {
		return fmt.Errorf("%w: max level %d cannot hold a batch of %d", ErrBatchTooLarge, c.MaxLevel, c.BatchSize)
	}
	return nil
}

// Bound returns the largest factor that may be drawn at the given level.
func (c Config) Bound(level int) (int, error) {
	if c.Variant == VariantClassic {
		return c.Size, nil
	}
	if level < 1 || level > c.MaxLevel {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLevel, level, c.MaxLevel)
	}
	return level, nil
}

// MinLevel returns the smallest level whose range holds a full batch.
func (c Config) MinLevel() int {
	if c.Variant == VariantClassic {
		return 1
	}
	for l := 1; l <= c.MaxLevel; l++ {
		if l*l >= c.BatchSize {
			return l
		}
	}
	return c.MaxLevel
}
