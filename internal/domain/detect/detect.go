// Package detect implements the polling transition detector: it reconciles a
// fresh live-game sample against the session directory and classifies each
// observation as a start, an end, both, no change, or out of policy.
package detect

import (
	"context"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// Sample is the tagged result of one live-game probe.
type Sample struct {
	InGame   bool
	GameID   int64
	Queue    int
	Champion int
}

// Sampler probes the external live-game endpoint for one player. It is an
// unreliable, rate-limited oracle; errors mean "no information this tick".
type Sampler interface {
	Sample(ctx context.Context, puuid string) (Sample, error)
}

// Sink receives transition events. GameEnded is invoked after the session
// record has already been deleted, so a failing outcome resolution can never
// leave a record pointing at a game the sampler no longer confirms.
type Sink interface {
	GameStarted(ctx context.Context, player *model.Player, session model.Session)
	GameEnded(ctx context.Context, player *model.Player, session model.Session)
}

// Classification kinds, exported for metrics and tests.
const (
	KindStart    = "start"
	KindEnd      = "end"
	KindEndStart = "end_start" // game id changed while a record was held
	KindNoChange = "no_change"
	KindIgnored  = "ignored"
	KindSkipped  = "skipped" // sampler error, no information this tick
)

// Detector runs the reconciliation algorithm over tracked players.
type Detector struct {
	sampler Sampler
	dir     *Directory
	log     logger.Logger
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithLogger sets a custom logger for the detector.
func WithLogger(log logger.Logger) Option {
	return func(d *Detector) {
		if log != nil {
			d.log = log
		}
	}
}

// New constructs a Detector over the given sampler and session directory.
func New(sampler Sampler, dir *Directory, opts ...Option) *Detector {
	d := &Detector{
		sampler: sampler,
		dir:     dir,
		log:     logger.Get().Named("detect"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Sweep runs one full pass over all tracked players, sequentially. A failure
// for one player never aborts the sweep for the others.
func (d *Detector) Sweep(ctx context.Context, players []*model.Player, sink Sink) {
	for _, p := range players {
		select {
		case <-ctx.Done():
			return
		default:
		}

		kind := d.Observe(ctx, p, sink)
		metrics.RecordTransition(kind)
	}
	metrics.UpdateActiveSessions(d.dir.Len())
}

// Observe reconciles one fresh sample for one player and returns the
// classification kind. Side effects are emitted through the sink.
func (d *Detector) Observe(ctx context.Context, p *model.Player, sink Sink) string {
	sample, err := d.sampler.Sample(ctx, p.PUUID)
	if err != nil {
		metrics.RecordSamplerError()
		d.log.Warn(ctx, "sampler probe failed, skipping player this tick",
			logger.String("player", p.Name),
			logger.Error(err),
		)
		return KindSkipped
	}

	ended := false
	if rec, ok := d.dir.Get(p.PUUID); ok {
		if sample.InGame && sample.GameID == rec.GameID {
			return KindNoChange
		}
		// The stored session is no longer confirmed: either the player went
		// inactive or a different game id showed up. Both end the old session.
		d.dir.Delete(p.PUUID)
		sink.GameEnded(ctx, p, rec)
		ended = true
	}

	if !sample.InGame {
		if ended {
			return KindEnd
		}
		return KindNoChange
	}

	if !queues.Monitored(sample.Queue) {
		// Never create a record for an out-of-policy queue; its end must be
		// equally invisible.
		if ended {
			return KindEnd
		}
		return KindIgnored
	}

	session := model.Session{
		GameID:   sample.GameID,
		Queue:    sample.Queue,
		Champion: sample.Champion,
	}
	d.dir.Put(p.PUUID, session)
	sink.GameStarted(ctx, p, session)

	if ended {
		return KindEndStart
	}
	return KindStart
}
