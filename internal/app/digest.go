package app

import (
	"context"
	"time"

	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// digestCheckInterval is how often the digest driver compares the clock
// against the configured time of day.
const digestCheckInterval = time.Minute

// runDigestLoop drives the daily digest: a minute ticker checks whether the
// configured hour and minute were reached in the configured timezone, with a
// last-sent-date guard against sending twice in one day.
func (s *Service) runDigestLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(digestCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			now := time.Now().In(s.location)
			if now.Hour() != s.digestHour || now.Minute() != s.digestMinute {
				continue
			}
			today := now.Format("2006-01-02")
			if s.lastDigestDate == today {
				continue
			}
			s.runDigest(ctx, now)
			s.lastDigestDate = today
		}
	}
}

// runDigest captures every player's rolling deltas, resets them, and delivers
// the summary. The snapshot covers the day up to now; the embed is titled
// with yesterday's date, matching a morning schedule.
func (s *Service) runDigest(ctx context.Context, now time.Time) {
	players := s.registry.List()
	rows := s.tracker.SnapshotAndReset(ctx, players)

	date := now.AddDate(0, 0, -1).Format("2006-01-02")
	if err := s.notifier.Digest(ctx, date, rows); err != nil {
		s.log.Error(ctx, "digest notification failed", logger.Error(err))
		// Deltas are already reset; the digest for this day is lost rather
		// than retried with doubled-up deltas.
	}

	metrics.RecordDigestRun()
	s.log.Info(ctx, "digest sent",
		logger.String("date", date),
		logger.Int("players", len(rows)),
	)
}
