package worker

import (
	"context"
	"time"

	"github.com/prepdex/prepdex-backend/internal/session"
	"github.com/rs/zerolog"
)

// ReapInterval is how often the reaper scans the session registry.
const ReapInterval = time.Minute

// SessionReaper dismisses sessions whose device went silent, so abandoned
// attempts release their countdown goroutines instead of leaking.
type SessionReaper struct {
	manager *session.Manager
	ttl     time.Duration
	log     zerolog.Logger
}

// NewSessionReaper creates a new SessionReaper.
func NewSessionReaper(manager *session.Manager, ttl time.Duration, log zerolog.Logger) *SessionReaper {
	return &SessionReaper{
		manager: manager,
		ttl:     ttl,
		log:     log.With().Str("component", "session_reaper").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *SessionReaper) Start(ctx context.Context) {
	w.log.Info().Dur("ttl", w.ttl).Msg("SessionReaper started")

	ticker := time.NewTicker(ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("SessionReaper stopping")
			return
		case <-ticker.C:
			if reaped := w.manager.SweepIdle(w.ttl); reaped > 0 {
				w.log.Info().
					Int("reaped", reaped).
					Int("remaining", w.manager.Count()).
					Msg("Idle sessions dismissed")
			}
		}
	}
}
