package timing

import (
	"fmt"
	"time"

	"github.com/sendagame/progress/internal/model"
)

// Config holds the duration clamp bounds. Injected explicitly rather than
// read from ambient globals.
type Config struct {
	// FloorSeconds is the minimum recorded duration; also the fallback
	// when a level was never explicitly started
	FloorSeconds int64

	// CeilingSeconds absorbs client disconnects and backgrounding so a
	// stale start instant cannot corrupt aggregate playtime
	CeilingSeconds int64

	// OverrideMaxSeconds bounds the deprecated manual duration override
	OverrideMaxSeconds int64
}

// DefaultConfig returns the standard clamp range
func DefaultConfig() Config {
	return Config{
		FloorSeconds:       1,
		CeilingSeconds:     3600,
		OverrideMaxSeconds: 86400,
	}
}

// Service computes per-level elapsed time from server-observed instants
type Service struct {
	cfg Config
}

// New creates a new timing service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Elapsed returns the clamped elapsed seconds between a level's start
// instant and now. A nil start (level never explicitly started) yields the
// floor value. The result is always within [floor, ceiling], so no zero or
// negative duration ever reaches persistence.
func (s *Service) Elapsed(start *time.Time, now time.Time) int64 {
	if start == nil {
		return s.cfg.FloorSeconds
	}
	return s.clamp(int64(now.Sub(*start) / time.Second))
}

// Override validates a caller-supplied duration, then subjects it to the
// same clamp as the computed path. The manual path is a deprecated escape
// hatch; the automatic calculation is authoritative.
func (s *Service) Override(seconds int64) (int64, error) {
	if seconds < 1 || seconds > s.cfg.OverrideMaxSeconds {
		return 0, fmt.Errorf("%w: %d seconds outside [1, %d]",
			model.ErrInvalidDuration, seconds, s.cfg.OverrideMaxSeconds)
	}
	return s.clamp(seconds), nil
}

func (s *Service) clamp(seconds int64) int64 {
	if seconds < s.cfg.FloorSeconds {
		return s.cfg.FloorSeconds
	}
	if seconds > s.cfg.CeilingSeconds {
		return s.cfg.CeilingSeconds
	}
	return seconds
}
