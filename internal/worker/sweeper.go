package worker

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"
)

type sweepStore interface {
	SweepOlderThan(dir string, maxAge time.Duration)
}

// Sweeper periodically deletes stale files from the upload and processed
// directories. It runs next to in-flight requests; double deletion of a
// path is harmless, so no coordination is needed.
type Sweeper struct {
	store    sweepStore
	dirs     []string
	maxAge   time.Duration
	interval time.Duration
	logger   *zlog.Zerolog
}

func NewSweeper(store sweepStore, dirs []string, maxAge, interval time.Duration, logger *zlog.Zerolog) *Sweeper {
	return &Sweeper{
		store:    store,
		dirs:     dirs,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("max_age", s.maxAge).
		Strs("dirs", s.dirs).
		Msg("Sweeper started")

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	for _, dir := range s.dirs {
		s.store.SweepOlderThan(dir, s.maxAge)
	}
}
