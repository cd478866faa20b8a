package app

import (
	"context"
	"errors"

	"github.com/riftwatch/riftwatch/internal/adapters/notify"
	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/internal/domain/resolve"
	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// sweepSink receives transition events from the detector and runs the
// side-effect chain: resolution, standing refresh, notification. One sink is
// created per sweep so log lines carry the sweep correlation id.
type sweepSink struct {
	service *Service
	sweepID string
}

// GameStarted announces a newly detected game.
func (k *sweepSink) GameStarted(ctx context.Context, p *model.Player, session model.Session) {
	s := k.service
	champ := s.riot.ChampionByID(session.Champion)

	s.log.Info(ctx, "game started",
		logger.String("sweep_id", k.sweepID),
		logger.String("player", p.Name),
		logger.Int64("game_id", session.GameID),
		logger.String("champion", champ.Name),
	)

	ev := notify.GameStart{
		Player:       p,
		QueueLabel:   queueLabel(session.Queue),
		ChampionName: champ.Name,
		IconURL:      s.riot.ChampionIconURL(champ.Slug),
	}
	if err := s.notifier.GameStarted(ctx, ev); err != nil {
		s.log.Error(ctx, "start notification failed",
			logger.String("sweep_id", k.sweepID),
			logger.String("player", p.Name),
			logger.Error(err),
		)
	}
}

// GameEnded runs the end-of-session chain. The session record is already gone
// by the time this is called; a resolution failure only suppresses the
// notification and the standing refresh for this cycle.
func (k *sweepSink) GameEnded(ctx context.Context, p *model.Player, session model.Session) {
	s := k.service

	out, err := s.resolver.Resolve(ctx, p.PUUID)
	if err != nil {
		metrics.RecordResolveFailure(resolveFailureReason(err))
		s.log.Warn(ctx, "game end unresolved, notification suppressed",
			logger.String("sweep_id", k.sweepID),
			logger.String("player", p.Name),
			logger.Int64("game_id", session.GameID),
			logger.Error(err),
		)
		return
	}

	if s.guard.SeenAndRecord(ctx, out.MatchID) {
		s.log.Debug(ctx, "match already reported",
			logger.String("sweep_id", k.sweepID),
			logger.String("match_id", out.MatchID),
		)
		return
	}

	if err := s.tracker.Refresh(ctx, p); err != nil {
		// Standing stays stale until the next resolved end; still notify.
		s.log.Warn(ctx, "post-game standing refresh failed",
			logger.String("sweep_id", k.sweepID),
			logger.String("player", p.Name),
			logger.Error(err),
		)
	}

	solo, flex := s.tracker.Snapshot(p)
	standing := solo
	if out.Queue == queues.FlexQueueID {
		standing = flex
	}

	s.log.Info(ctx, "game ended",
		logger.String("sweep_id", k.sweepID),
		logger.String("player", p.Name),
		logger.String("match_id", out.MatchID),
		logger.Bool("win", out.Win),
	)

	champSlug := s.riot.ChampionByID(session.Champion).Slug
	ev := notify.GameEnd{
		Player:     p,
		QueueLabel: queueLabel(out.Queue),
		Outcome:    out,
		IconURL:    s.riot.ChampionIconURL(champSlug),
		Standing:   standing,
	}
	if err := s.notifier.GameEnded(ctx, ev); err != nil {
		s.log.Error(ctx, "end notification failed",
			logger.String("sweep_id", k.sweepID),
			logger.String("player", p.Name),
			logger.Error(err),
		)
	}
}

// resolveFailureReason maps resolution errors onto metric labels.
func resolveFailureReason(err error) string {
	switch {
	case errors.Is(err, resolve.ErrNoRecentMatch):
		return "no_recent_match"
	case errors.Is(err, resolve.ErrQueueNotMonitored):
		return "queue_not_monitored"
	case errors.Is(err, resolve.ErrParticipantNotFound):
		return "participant_missing"
	default:
		return "transient"
	}
}
