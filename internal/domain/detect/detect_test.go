package detect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riftwatch/riftwatch/internal/domain/detect"
	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// scriptedSampler replays a fixed per-player sequence of samples.
type scriptedSampler struct {
	samples map[string][]detect.Sample
	errs    map[string][]error
	calls   map[string]int
}

func newScriptedSampler() *scriptedSampler {
	return &scriptedSampler{
		samples: make(map[string][]detect.Sample),
		errs:    make(map[string][]error),
		calls:   make(map[string]int),
	}
}

func (s *scriptedSampler) script(puuid string, sample detect.Sample, err error) {
	s.samples[puuid] = append(s.samples[puuid], sample)
	s.errs[puuid] = append(s.errs[puuid], err)
}

func (s *scriptedSampler) Sample(_ context.Context, puuid string) (detect.Sample, error) {
	i := s.calls[puuid]
	s.calls[puuid]++
	if i >= len(s.samples[puuid]) {
		return detect.Sample{}, nil
	}
	return s.samples[puuid][i], s.errs[puuid][i]
}

// recordingSink captures emitted transitions.
type recordingSink struct {
	starts []model.Session
	ends   []model.Session
}

func (r *recordingSink) GameStarted(_ context.Context, _ *model.Player, s model.Session) {
	r.starts = append(r.starts, s)
}

func (r *recordingSink) GameEnded(_ context.Context, _ *model.Player, s model.Session) {
	r.ends = append(r.ends, s)
}

func player(puuid, name string) *model.Player {
	return &model.Player{PUUID: puuid, Name: name}
}

func inGame(gameID int64, queue int) detect.Sample {
	return detect.Sample{InGame: true, GameID: gameID, Queue: queue, Champion: 222}
}

func notInGame() detect.Sample {
	return detect.Sample{}
}

func TestObserveLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a detector tracking one player", t, func() {
		sampler := newScriptedSampler()
		dir := detect.NewDirectory()
		d := detect.New(sampler, dir)
		sink := &recordingSink{}
		p := player("puuid-1", "Faker")

		Convey("When a ranked game appears and later disappears", func() {
			sampler.script(p.PUUID, notInGame(), nil)
			sampler.script(p.PUUID, inGame(100, queues.SoloQueueID), nil)
			sampler.script(p.PUUID, inGame(100, queues.SoloQueueID), nil)
			sampler.script(p.PUUID, notInGame(), nil)

			kinds := []string{
				d.Observe(ctx, p, sink),
				d.Observe(ctx, p, sink),
				d.Observe(ctx, p, sink),
				d.Observe(ctx, p, sink),
			}

			Convey("Then it emits exactly one start and one end", func() {
				So(kinds, ShouldResemble, []string{
					detect.KindNoChange,
					detect.KindStart,
					detect.KindNoChange,
					detect.KindEnd,
				})
				So(sink.starts, ShouldHaveLength, 1)
				So(sink.ends, ShouldHaveLength, 1)
				So(sink.starts[0].GameID, ShouldEqual, 100)
				So(sink.ends[0].GameID, ShouldEqual, 100)
			})

			Convey("And the session directory ends up empty", func() {
				So(dir.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the emitted start session is consumed at end time", func() {
			sampler.script(p.PUUID, inGame(100, queues.SoloQueueID), nil)
			sampler.script(p.PUUID, notInGame(), nil)

			d.Observe(ctx, p, sink)
			d.Observe(ctx, p, sink)

			Convey("Then both events carry the same session", func() {
				So(sink.ends[0], ShouldResemble, sink.starts[0])
				So(sink.ends[0].Champion, ShouldEqual, 222)
			})
		})
	})
}

func TestObserveGameIDMismatch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player with a recorded session", t, func() {
		sampler := newScriptedSampler()
		dir := detect.NewDirectory()
		d := detect.New(sampler, dir)
		sink := &recordingSink{}
		p := player("puuid-1", "Faker")

		sampler.script(p.PUUID, inGame(100, queues.SoloQueueID), nil)
		So(d.Observe(ctx, p, sink), ShouldEqual, detect.KindStart)

		Convey("When the next sample carries a different game id", func() {
			sampler.script(p.PUUID, inGame(200, queues.FlexQueueID), nil)
			kind := d.Observe(ctx, p, sink)

			Convey("Then the old session ends and the new one starts in one tick", func() {
				So(kind, ShouldEqual, detect.KindEndStart)
				So(sink.ends, ShouldHaveLength, 1)
				So(sink.ends[0].GameID, ShouldEqual, 100)
				So(sink.starts, ShouldHaveLength, 2)
				So(sink.starts[1].GameID, ShouldEqual, 200)
			})

			Convey("And the directory holds the new session", func() {
				rec, ok := dir.Get(p.PUUID)
				So(ok, ShouldBeTrue)
				So(rec.GameID, ShouldEqual, 200)
			})
		})

		Convey("When the new game is in an unmonitored queue", func() {
			sampler.script(p.PUUID, inGame(300, 450), nil)
			kind := d.Observe(ctx, p, sink)

			Convey("Then the old session ends but no new record is created", func() {
				So(kind, ShouldEqual, detect.KindEnd)
				So(sink.ends, ShouldHaveLength, 1)
				So(sink.starts, ShouldHaveLength, 1)
				So(dir.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestObserveQueuePolicy(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player not currently recorded", t, func() {
		sampler := newScriptedSampler()
		dir := detect.NewDirectory()
		d := detect.New(sampler, dir)
		sink := &recordingSink{}
		p := player("puuid-1", "Faker")

		Convey("When the player is in an unmonitored queue game", func() {
			// 450 is ARAM, outside the tracked set.
			sampler.script(p.PUUID, inGame(100, 450), nil)
			sampler.script(p.PUUID, inGame(100, 450), nil)
			sampler.script(p.PUUID, notInGame(), nil)

			kinds := []string{
				d.Observe(ctx, p, sink),
				d.Observe(ctx, p, sink),
				d.Observe(ctx, p, sink),
			}

			Convey("Then no transition is ever emitted for it", func() {
				So(kinds, ShouldResemble, []string{
					detect.KindIgnored,
					detect.KindIgnored,
					detect.KindNoChange,
				})
				So(sink.starts, ShouldBeEmpty)
				So(sink.ends, ShouldBeEmpty)
				So(dir.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestObserveSamplerError(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player with a recorded session", t, func() {
		sampler := newScriptedSampler()
		dir := detect.NewDirectory()
		d := detect.New(sampler, dir)
		sink := &recordingSink{}
		p := player("puuid-1", "Faker")

		sampler.script(p.PUUID, inGame(100, queues.SoloQueueID), nil)
		d.Observe(ctx, p, sink)

		Convey("When the sampler fails", func() {
			sampler.script(p.PUUID, detect.Sample{}, errors.New("upstream timeout"))
			kind := d.Observe(ctx, p, sink)

			Convey("Then the tick is skipped and the record survives", func() {
				So(kind, ShouldEqual, detect.KindSkipped)
				So(sink.ends, ShouldBeEmpty)
				So(dir.Len(), ShouldEqual, 1)
			})

			Convey("And the end is still caught on the next good sample", func() {
				sampler.script(p.PUUID, notInGame(), nil)
				So(d.Observe(ctx, p, sink), ShouldEqual, detect.KindEnd)
				So(sink.ends, ShouldHaveLength, 1)
			})
		})
	})
}

func TestSweepIsolation(t *testing.T) {
	ctx := context.Background()

	Convey("Given two tracked players", t, func() {
		sampler := newScriptedSampler()
		dir := detect.NewDirectory()
		d := detect.New(sampler, dir)
		sink := &recordingSink{}
		a := player("puuid-a", "Faker")
		b := player("puuid-b", "Chovy")

		Convey("When sampling fails for one of them", func() {
			sampler.script(a.PUUID, detect.Sample{}, errors.New("boom"))
			sampler.script(b.PUUID, inGame(500, queues.FlexQueueID), nil)

			d.Sweep(ctx, []*model.Player{a, b}, sink)

			Convey("Then the other is still detected in the same sweep", func() {
				So(sink.starts, ShouldHaveLength, 1)
				So(sink.starts[0].GameID, ShouldEqual, 500)
				So(dir.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			sampler.script(a.PUUID, inGame(1, queues.SoloQueueID), nil)

			d.Sweep(cancelled, []*model.Player{a, b}, sink)

			Convey("Then the sweep stops without observing anyone", func() {
				So(sink.starts, ShouldBeEmpty)
				So(sampler.calls[a.PUUID], ShouldEqual, 0)
			})
		})
	})
}
