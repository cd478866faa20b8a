// Package rank maintains per-queue standings for tracked players: current
// tier, division and LP, plus a rolling LP delta consumed and reset by the
// daily digest.
package rank

import (
	"context"
	"fmt"
	"sync"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/pkg/logger"
)

// Entry is one queue-scoped row from the league endpoint.
type Entry struct {
	QueueType string // RANKED_SOLO_5x5 or RANKED_FLEX_SR
	Tier      string
	Division  string
	Points    int
	Wins      int
	Losses    int
}

// StandingSource provides the external league standings for a player.
type StandingSource interface {
	StandingsByPUUID(ctx context.Context, puuid string) ([]Entry, error)
}

// Saver persists a player after its standings were mutated.
type Saver interface {
	Save(ctx context.Context, p *model.Player) error
}

// DigestRow is the per-player snapshot handed to the digest notification,
// captured before the deltas are reset.
type DigestRow struct {
	Name string
	Solo model.Standing
	Flex model.Standing
}

// Tracker owns all standing mutation. One mutex serializes refreshes against
// the digest read-and-reset, so a refresh racing the digest can never lose a
// delta contribution.
type Tracker struct {
	mu     sync.Mutex
	source StandingSource
	saver  Saver
	log    logger.Logger
}

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithSaver sets the persistence hook invoked after standings change.
func WithSaver(s Saver) Option {
	return func(t *Tracker) {
		t.saver = s
	}
}

// WithLogger sets a custom logger for the tracker.
func WithLogger(log logger.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// New constructs a Tracker over the given standing source.
func New(source StandingSource, opts ...Option) *Tracker {
	t := &Tracker{
		source: source,
		log:    logger.Get().Named("rank"),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Refresh queries the league endpoint once and folds the response into the
// player's standings. Called at registration time for the baseline and after
// every successfully resolved game end.
func (t *Tracker) Refresh(ctx context.Context, p *model.Player) error {
	entries, err := t.source.StandingsByPUUID(ctx, p.PUUID)
	if err != nil {
		return fmt.Errorf("fetch standings for %s: %w", p.Name, err)
	}

	t.mu.Lock()
	var solo, flex *Entry
	for i := range entries {
		switch entries[i].QueueType {
		case queues.SoloQueueType:
			solo = &entries[i]
		case queues.FlexQueueType:
			flex = &entries[i]
		}
	}
	apply(&p.Solo, solo)
	apply(&p.Flex, flex)
	snap := *p
	t.mu.Unlock()

	t.persist(ctx, &snap)
	return nil
}

// apply folds one league entry into a standing. The rolling delta picks up
// the raw LP difference even across a tier or division change; promotion and
// demotion LP resets are not special-cased. A queue absent from the response
// gets the default unranked standing.
func apply(s *model.Standing, e *Entry) {
	if e == nil {
		*s = model.UnrankedStanding()
		return
	}
	s.Delta += e.Points - s.Points
	s.Tier = e.Tier
	s.Division = e.Division
	s.Points = e.Points
	s.Wins = e.Wins
	s.Losses = e.Losses
}

// Baseline performs the registration-time refresh. The rolling deltas are
// zeroed afterwards so the first digest window starts at the standing the
// player registered with, not at zero LP.
func (t *Tracker) Baseline(ctx context.Context, p *model.Player) error {
	if err := t.Refresh(ctx, p); err != nil {
		return err
	}

	t.mu.Lock()
	p.Solo.Delta = 0
	p.Flex.Delta = 0
	snap := *p
	t.mu.Unlock()

	t.persist(ctx, &snap)
	return nil
}

// Snapshot returns copies of the player's standings, consistent with any
// concurrent refresh.
func (t *Tracker) Snapshot(p *model.Player) (solo, flex model.Standing) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return p.Solo, p.Flex
}

// SnapshotAndReset captures every player's standings for the digest and zeroes
// the rolling deltas. The read and the reset are one atomic step per player
// with respect to any concurrent refresh; win/loss counters are untouched.
func (t *Tracker) SnapshotAndReset(ctx context.Context, players []*model.Player) []DigestRow {
	rows := make([]DigestRow, 0, len(players))

	t.mu.Lock()
	snaps := make([]model.Player, 0, len(players))
	for _, p := range players {
		rows = append(rows, DigestRow{Name: p.Name, Solo: p.Solo, Flex: p.Flex})
		p.Solo.Delta = 0
		p.Flex.Delta = 0
		snaps = append(snaps, *p)
	}
	t.mu.Unlock()

	for i := range snaps {
		t.persist(ctx, &snaps[i])
	}
	return rows
}

// persist writes a player snapshot through the saver, if configured. Callers
// hand it a copy taken under the mutex, never the live player. Storage
// failures degrade to stale persisted state rather than aborting the caller.
func (t *Tracker) persist(ctx context.Context, p *model.Player) {
	if t.saver == nil {
		return
	}
	if err := t.saver.Save(ctx, p); err != nil {
		t.log.Error(ctx, "failed to persist standings",
			logger.String("player", p.Name),
			logger.Error(err),
		)
	}
}
