package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// runSweepLoop drives the fixed-interval sweep. Sweeps run on this one
// goroutine and each runs to completion before the next tick is taken, so
// ticks never overlap; a tick that fires mid-sweep is dropped by the ticker.
func (s *Service) runSweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one full pass of the transition detector over all tracked
// players.
func (s *Service) sweep(ctx context.Context) {
	sweepID := uuid.NewString()
	start := time.Now()

	players := s.registry.List()
	s.detector.Sweep(ctx, players, &sweepSink{service: s, sweepID: sweepID})

	durationMs := float64(time.Since(start).Milliseconds())
	metrics.RecordSweep(durationMs)
	s.log.Debug(ctx, "sweep completed",
		logger.String("sweep_id", sweepID),
		logger.Int("players", len(players)),
		logger.Any("duration", time.Since(start)),
	)
}
