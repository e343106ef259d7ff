// Package timeouts provides the deadlines handlers put on store calls.
//
// Values are set once at startup from configuration (see bootstrap) and
// read by handlers through the getters. Unconfigured values keep their
// defaults.
//
//   - Ping: health checks
//   - Short: single-document reads and writes, login, signup
//   - Medium: list queries and the dashboard stats scan
package timeouts

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

// Stored as nanoseconds so handlers read them without locking.
var ping, short, medium atomic.Int64

func init() { Reset() }

// Ping returns the health-check timeout.
func Ping() time.Duration { return time.Duration(ping.Load()) }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return time.Duration(short.Load()) }

// Medium returns the timeout for list queries and collection scans.
func Medium() time.Duration { return time.Duration(medium.Load()) }

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
}

// Configure applies the positive values in cfg.
func Configure(cfg Config) {
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
}

func set(v *atomic.Int64, d time.Duration) {
	if d > 0 {
		v.Store(int64(d))
	}
}

// Reset restores the defaults. Tests use it to undo Configure.
func Reset() {
	ping.Store(int64(DefaultPing))
	short.Store(int64(DefaultShort))
	medium.Store(int64(DefaultMedium))
}

// Current returns the active configuration.
func Current() Config {
	return Config{Ping: Ping(), Short: Short(), Medium: Medium()}
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard stats")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
