// Package numerator issues human-readable order numbers backed by a
// persistent per-period counter.
package numerator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned when every attempt produced a number that is
// already taken.
var ErrExhausted = errors.New("numerator: could not issue a unique number")

// Store hands out the next value of a named counter. Implementations must
// serialize concurrent callers on the same key.
type Store interface {
	Next(ctx context.Context, key string) (int64, error)
}

// ResetPeriod controls how often the counter restarts at 1.
type ResetPeriod string

const (
	ResetDaily   ResetPeriod = "day"
	ResetMonthly ResetPeriod = "month"
	ResetYearly  ResetPeriod = "year"
	ResetNever   ResetPeriod = "never"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "ORD")
	Prefix string

	// PadWidth is the minimum sequence width (default 4)
	PadWidth int

	ResetPeriod ResetPeriod

	// MaxAttempts bounds the uniqueness retry loop (default 5)
	MaxAttempts int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		PadWidth:    4,
		ResetPeriod: ResetDaily,
		MaxAttempts: 5,
	}
}

// Generator formats counter values into order numbers.
// Pattern: PREFIX-YYYYMMDD-NNNN (e.g., ORD-20261016-0007)
type Generator struct {
	store Store
	cfg   Config
}

// New creates a Generator.
func New(store Store, cfg Config) *Generator {
	if cfg.PadWidth <= 0 {
		cfg.PadWidth = 4
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ResetPeriod == "" {
		cfg.ResetPeriod = ResetDaily
	}
	return &Generator{store: store, cfg: cfg}
}

// Next issues the next number for the period containing at.
func (g *Generator) Next(ctx context.Context, at time.Time) (string, error) {
	if g == nil || g.store == nil {
		return "", fmt.Errorf("numerator: generator is not initialized")
	}
	n, err := g.store.Next(ctx, g.key(at))
	if err != nil {
		return "", fmt.Errorf("numerator: next value: %w", err)
	}
	return g.format(at, n), nil
}

// Issue draws numbers until taken reports one as free. It guards against
// counters that were reset or rows inserted with hand-picked numbers.
func (g *Generator) Issue(ctx context.Context, at time.Time, taken func(ctx context.Context, no string) (bool, error)) (string, error) {
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		no, err := g.Next(ctx, at)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return no, nil
		}
		used, err := taken(ctx, no)
		if err != nil {
			return "", err
		}
		if !used {
			return no, nil
		}
	}
	return "", ErrExhausted
}

func (g *Generator) key(at time.Time) string {
	switch g.cfg.ResetPeriod {
	case ResetNever:
		return g.cfg.Prefix
	case ResetYearly:
		return fmt.Sprintf("%s:%s", g.cfg.Prefix, at.Format("2006"))
	case ResetMonthly:
		return fmt.Sprintf("%s:%s", g.cfg.Prefix, at.Format("200601"))
	default:
		return fmt.Sprintf("%s:%s", g.cfg.Prefix, at.Format("20060102"))
	}
}

func (g *Generator) format(at time.Time, n int64) string {
	if g.cfg.ResetPeriod == ResetNever {
		return fmt.Sprintf("%s-%0*d", g.cfg.Prefix, g.cfg.PadWidth, n)
	}
	return fmt.Sprintf("%s-%s-%0*d", g.cfg.Prefix, at.Format("20060102"), g.cfg.PadWidth, n)
}
