package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/riftwatch/riftwatch/internal/app"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/internal/stub"
	. "github.com/smartystreets/goconvey/convey"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestServiceDetectsFullGameLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service polling the scripted API", t, func() {
		h := newHarness(t)
		seedPlayer(h, "puuid-1", "Faker", "KR1", stub.Entry{
			QueueType:    "RANKED_SOLO_5x5",
			Tier:         "GOLD",
			Rank:         "II",
			LeaguePoints: 40,
			Wins:         10,
			Losses:       8,
		})
		_, err := h.svc.Register(ctx, "Faker#KR1")
		So(err, ShouldBeNil)

		h.svc = withFastPolling(h)
		So(h.svc.Start(ctx), ShouldBeNil)
		defer h.svc.Stop()

		Convey("When the player enters a ranked game", func() {
			So(h.stub.StartGame("puuid-1", 7001, queues.SoloQueueID, 222), ShouldBeTrue)

			ok := waitFor(t, func() bool {
				h.notifier.mu.Lock()
				defer h.notifier.mu.Unlock()
				return len(h.notifier.starts) > 0
			})

			Convey("Then a start notification goes out", func() {
				So(ok, ShouldBeTrue)
				h.notifier.mu.Lock()
				ev := h.notifier.starts[0]
				h.notifier.mu.Unlock()
				So(ev.Player.Name, ShouldEqual, "Faker#KR1")
				So(ev.QueueLabel, ShouldEqual, "SoloQ")
				So(ev.ChampionName, ShouldEqual, "Jinx")
			})

			Convey("And when the game finishes with a win", func() {
				h.stub.EndGame("puuid-1", stub.Match{
					ID:           "EUW1_7001",
					Queue:        queues.SoloQueueID,
					ChampionName: "Jinx",
					Kills:        8, Deaths: 2, Assists: 11,
					Win: true,
				})

				ended := waitFor(t, func() bool {
					h.notifier.mu.Lock()
					defer h.notifier.mu.Unlock()
					return len(h.notifier.ends) > 0
				})

				Convey("Then exactly one end notification goes out", func() {
					So(ended, ShouldBeTrue)
					h.notifier.mu.Lock()
					ev := h.notifier.ends[0]
					count := len(h.notifier.ends)
					h.notifier.mu.Unlock()
					So(count, ShouldEqual, 1)
					So(ev.Outcome.MatchID, ShouldEqual, "EUW1_7001")
					So(ev.Outcome.Win, ShouldBeTrue)
					So(ev.Outcome.Champion, ShouldEqual, "Jinx")
				})
			})
		})
	})
}

func TestServiceSuppressesUnresolvedEnds(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service with a player in game", t, func() {
		h := newHarness(t)
		seedPlayer(h, "puuid-1", "Faker", "KR1")
		_, err := h.svc.Register(ctx, "Faker#KR1")
		So(err, ShouldBeNil)

		h.svc = withFastPolling(h)
		So(h.svc.Start(ctx), ShouldBeNil)
		defer h.svc.Stop()

		So(h.stub.StartGame("puuid-1", 7001, queues.SoloQueueID, 222), ShouldBeTrue)
		So(waitFor(t, func() bool {
			h.notifier.mu.Lock()
			defer h.notifier.mu.Unlock()
			return len(h.notifier.starts) > 0
		}), ShouldBeTrue)

		Convey("When the game vanishes before the match history indexes it", func() {
			// Reseeding the player drops the live game without publishing a
			// finished match, the window where match-v5 lags the spectator.
			seedPlayer(h, "puuid-1", "Faker", "KR1")

			cleared := waitFor(t, func() bool {
				return h.svc.GetStats()["activeSessions"] == 0
			})

			Convey("Then the session record clears but no end notification goes out", func() {
				So(cleared, ShouldBeTrue)
				time.Sleep(100 * time.Millisecond) // a few more sweeps
				h.notifier.mu.Lock()
				defer h.notifier.mu.Unlock()
				So(h.notifier.ends, ShouldBeEmpty)
			})
		})
	})
}

func TestServiceDeduplicatesEndNotifications(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service that already reported a finished match", t, func() {
		h := newHarness(t)
		seedPlayer(h, "puuid-1", "Faker", "KR1")
		_, err := h.svc.Register(ctx, "Faker#KR1")
		So(err, ShouldBeNil)

		h.svc = withFastPolling(h)
		So(h.svc.Start(ctx), ShouldBeNil)
		defer h.svc.Stop()

		h.stub.StartGame("puuid-1", 7001, queues.SoloQueueID, 222)
		So(waitFor(t, func() bool {
			h.notifier.mu.Lock()
			defer h.notifier.mu.Unlock()
			return len(h.notifier.starts) > 0
		}), ShouldBeTrue)

		h.stub.EndGame("puuid-1", stub.Match{
			ID: "EUW1_7001", Queue: queues.SoloQueueID, ChampionName: "Jinx", Win: true,
		})
		So(waitFor(t, func() bool {
			h.notifier.mu.Lock()
			defer h.notifier.mu.Unlock()
			return len(h.notifier.ends) == 1
		}), ShouldBeTrue)

		Convey("When a short game ends before the history catches up", func() {
			// The second game resolves to the stale match id; the guard must
			// swallow the repeat.
			h.stub.StartGame("puuid-1", 7002, queues.SoloQueueID, 103)
			So(waitFor(t, func() bool {
				h.notifier.mu.Lock()
				defer h.notifier.mu.Unlock()
				return len(h.notifier.starts) == 2
			}), ShouldBeTrue)

			h.stub.EndGame("puuid-1", stub.Match{
				ID: "EUW1_7001", Queue: queues.SoloQueueID, ChampionName: "Ahri", Win: false,
			})
			cleared := waitFor(t, func() bool {
				return h.svc.GetStats()["activeSessions"] == 0
			})

			Convey("Then no second notification goes out for the same match id", func() {
				So(cleared, ShouldBeTrue)
				time.Sleep(100 * time.Millisecond)
				h.notifier.mu.Lock()
				defer h.notifier.mu.Unlock()
				So(h.notifier.ends, ShouldHaveLength, 1)
			})
		})
	})
}

// withFastPolling rebuilds the harness service with a short sweep interval.
// Driver tests swap it in before Start; the registry carries over, so players
// registered through the default service stay tracked.
func withFastPolling(h *harness) *app.Service {
	return app.New(h.client, h.registry, h.notifier,
		app.WithPollInterval(30*time.Millisecond),
	)
}
