// Package app provides the core service that owns the tracked-player
// registry, the session directory and the two drivers: the fixed-interval
// sweep and the daily digest.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riftwatch/riftwatch/internal/adapters/notify"
	"github.com/riftwatch/riftwatch/internal/adapters/repository"
	"github.com/riftwatch/riftwatch/internal/adapters/riot"
	"github.com/riftwatch/riftwatch/internal/domain/dedupe"
	"github.com/riftwatch/riftwatch/internal/domain/detect"
	"github.com/riftwatch/riftwatch/internal/domain/leaderboard"
	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/internal/domain/rank"
	"github.com/riftwatch/riftwatch/internal/domain/resolve"
	"github.com/riftwatch/riftwatch/pkg/logger"
)

// Default driver configuration constants.
const (
	defaultPollInterval = 60 * time.Second
	defaultDigestHour   = 9
	defaultDigestMinute = 0
)

// Service implements the tracker: it owns all mutable state for the
// process's lifetime and serializes every sweep onto one goroutine.
type Service struct {
	mu sync.RWMutex

	// External adapters.
	riot     *riot.Client
	registry *repository.Registry
	notifier notify.Notifier

	// Core components.
	directory *detect.Directory
	detector  *detect.Detector
	resolver  *resolve.Resolver
	tracker   *rank.Tracker
	guard     dedupe.Guard

	// Configuration.
	pollInterval   time.Duration
	digestHour     int
	digestMinute   int
	location       *time.Location
	matchGuardSize int

	// State.
	started        bool
	stopCh         chan struct{}
	wg             sync.WaitGroup
	lastDigestDate string

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPollInterval sets the fixed sweep interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithDigestSchedule sets the daily digest time of day and timezone.
func WithDigestSchedule(hour, minute int, loc *time.Location) Option {
	return func(s *Service) {
		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			s.digestHour = hour
			s.digestMinute = minute
		}
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMatchGuardSize bounds the reported-match dedupe guard.
func WithMatchGuardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matchGuardSize = n
		}
	}
}

// New constructs a Service over the given adapters.
func New(riotClient *riot.Client, registry *repository.Registry, notifier notify.Notifier, opts ...Option) *Service {
	s := &Service{
		riot:         riotClient,
		registry:     registry,
		notifier:     notifier,
		pollInterval: defaultPollInterval,
		digestHour:   defaultDigestHour,
		digestMinute: defaultDigestMinute,
		location:     time.UTC,
		stopCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get().Named("app")
	}

	s.directory = detect.NewDirectory()
	s.detector = detect.New(s.riot, s.directory, detect.WithLogger(s.log.Named("detect")))
	s.resolver = resolve.New(s.riot)
	s.tracker = rank.New(s.riot,
		rank.WithSaver(s.registry),
		rank.WithLogger(s.log.Named("rank")),
	)
	guardOpts := []dedupe.Option{}
	if s.matchGuardSize > 0 {
		guardOpts = append(guardOpts, dedupe.WithMaxSize(s.matchGuardSize))
	}
	s.guard = dedupe.NewInMemoryGuard(guardOpts...)

	return s
}

// Start loads the champion catalog and launches the sweep and digest drivers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.log.Info(ctx, "starting tracker service...")

	if err := s.riot.LoadChampions(ctx); err != nil {
		// Non-fatal: champion names fall back to "Champion <id>".
		s.log.Warn(ctx, "champion catalog unavailable", logger.Error(err))
	}

	s.wg.Add(2)
	go s.runSweepLoop(ctx)
	go s.runDigestLoop(ctx)

	s.started = true
	s.log.Info(ctx, "tracker service started",
		logger.Int("players", s.registry.Count()),
		logger.Any("poll_interval", s.pollInterval),
	)

	return nil
}

// Stop gracefully shuts down the drivers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.log.Info(context.Background(), "stopping tracker service...")

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	s.started = false
	s.log.Info(context.Background(), "tracker service stopped")
}

// Register resolves a "Name#Tag" riot id, adds the player to the registry and
// fetches the baseline standings. Duplicate registrations are rejected with
// repository.ErrAlreadyRegistered and mutate nothing.
func (s *Service) Register(ctx context.Context, riotID string) (*model.Player, error) {
	name, tag, ok := strings.Cut(strings.TrimSpace(riotID), "#")
	if !ok || name == "" || tag == "" {
		return nil, fmt.Errorf("%q: %w", riotID, ErrInvalidRiotID)
	}

	acc, err := s.riot.AccountByRiotID(ctx, name, tag)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return nil, fmt.Errorf("%q: %w", riotID, ErrUnknownRiotID)
		}
		return nil, fmt.Errorf("resolve riot id: %w", err)
	}

	player := &model.Player{
		PUUID: acc.PUUID,
		Name:  fmt.Sprintf("%s#%s", acc.GameName, acc.TagLine),
		Solo:  model.UnrankedStanding(),
		Flex:  model.UnrankedStanding(),
	}

	if err := s.registry.Register(ctx, player); err != nil {
		return nil, err
	}

	// Baseline refresh; a transient failure leaves defaults until the first
	// resolved game end picks the standing up.
	if err := s.tracker.Baseline(ctx, player); err != nil {
		s.log.Warn(ctx, "baseline standing refresh failed",
			logger.String("player", player.Name),
			logger.Error(err),
		)
	}

	s.log.Info(ctx, "player registered", logger.String("player", player.Name))
	return player, nil
}

// Leaderboard returns up to limit rows for the given queue ("solo" or
// "flex"), ordered by tier, division and LP.
func (s *Service) Leaderboard(ctx context.Context, queue string, limit int) ([]leaderboard.Row, error) {
	players := s.registry.List()
	rows := make([]leaderboard.Row, 0, len(players))

	for _, p := range players {
		solo, flex := s.tracker.Snapshot(p)
		var st model.Standing
		switch queue {
		case "solo", "":
			st = solo
		case "flex":
			st = flex
		default:
			return nil, fmt.Errorf("%q: %w", queue, ErrUnknownQueue)
		}
		rows = append(rows, leaderboard.Row{
			Name:     p.Name,
			Tier:     st.Tier,
			Division: st.Division,
			Points:   st.Points,
		})
	}

	leaderboard.Sort(rows)
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"trackedPlayers":   s.registry.Count(),
		"pollIntervalSecs": int(s.pollInterval / time.Second),
	}
	if s.directory != nil {
		stats["activeSessions"] = s.directory.Len()
	}
	if s.guard != nil {
		stats["reportedMatches"] = s.guard.Size()
	}
	return stats
}

// queueLabel formats a queue code for display, with a fallback for codes
// outside the static table.
func queueLabel(code int) string {
	if label := queues.Label(code); label != "" {
		return label
	}
	return fmt.Sprintf("Queue %d", code)
}
