package riot_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riftwatch/riftwatch/internal/adapters/riot"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
	"github.com/riftwatch/riftwatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newClient points every host at the same test server.
func newClient(srv *httptest.Server) *riot.Client {
	return riot.NewClient("test-key",
		riot.WithPlatformHost(srv.URL),
		riot.WithRegionalHost(srv.URL),
		riot.WithDDragonHost(srv.URL),
		riot.WithDDragonVersion("14.10.1"),
	)
}

func TestSample(t *testing.T) {
	ctx := context.Background()

	Convey("Given the live-game endpoint", t, func() {
		Convey("When the player is in a ranked game", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.URL.Path, ShouldEqual, "/lol/spectator/v5/active-games/by-summoner/puuid-1")
				c.So(r.Header.Get("X-Riot-Token"), ShouldEqual, "test-key")
				w.Write([]byte(`{
					"gameId": 7001,
					"gameQueueConfigId": 420,
					"participants": [
						{"puuid": "someone-else", "championId": 103},
						{"puuid": "puuid-1", "championId": 222}
					]
				}`))
			}))
			defer srv.Close()

			sample, err := newClient(srv).Sample(ctx, "puuid-1")

			Convey("Then the sample carries game id, queue and own champion", func() {
				So(err, ShouldBeNil)
				So(sample.InGame, ShouldBeTrue)
				So(sample.GameID, ShouldEqual, 7001)
				So(sample.Queue, ShouldEqual, queues.SoloQueueID)
				So(sample.Champion, ShouldEqual, 222)
			})
		})

		Convey("When the endpoint returns 404", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer srv.Close()

			sample, err := newClient(srv).Sample(ctx, "puuid-1")

			Convey("Then it means not in game, not an error", func() {
				So(err, ShouldBeNil)
				So(sample.InGame, ShouldBeFalse)
			})
		})

		Convey("When the endpoint returns 429", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer srv.Close()

			_, err := newClient(srv).Sample(ctx, "puuid-1")

			Convey("Then the rate limit surfaces as an error", func() {
				So(errors.Is(err, riot.ErrRateLimited), ShouldBeTrue)
			})
		})

		Convey("When the endpoint returns a server error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			_, err := newClient(srv).Sample(ctx, "puuid-1")

			Convey("Then it is an unexpected status error", func() {
				So(errors.Is(err, riot.ErrUnexpectedStatus), ShouldBeTrue)
			})
		})
	})
}

func TestStandingsByPUUID(t *testing.T) {
	ctx := context.Background()

	Convey("Given the league entries endpoint", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/lol/league/v4/entries/by-puuid/puuid-1")
			w.Write([]byte(`[
				{"queueType": "RANKED_SOLO_5x5", "tier": "GOLD", "rank": "II", "leaguePoints": 40, "wins": 10, "losses": 8},
				{"queueType": "RANKED_FLEX_SR", "tier": "SILVER", "rank": "I", "leaguePoints": 99, "wins": 5, "losses": 7}
			]`))
		}))
		defer srv.Close()

		Convey("When fetching standings", func() {
			entries, err := newClient(srv).StandingsByPUUID(ctx, "puuid-1")

			Convey("Then both queue rows are mapped", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].QueueType, ShouldEqual, queues.SoloQueueType)
				So(entries[0].Tier, ShouldEqual, "GOLD")
				So(entries[0].Division, ShouldEqual, "II")
				So(entries[0].Points, ShouldEqual, 40)
				So(entries[1].QueueType, ShouldEqual, queues.FlexQueueType)
				So(entries[1].Losses, ShouldEqual, 7)
			})
		})
	})
}

func TestMatchEndpoints(t *testing.T) {
	ctx := context.Background()

	Convey("Given the match history endpoints", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/lol/match/v5/matches/by-puuid/puuid-1/ids":
				c.So(r.URL.Query().Get("count"), ShouldEqual, "1")
				w.Write([]byte(`["EUW1_7001"]`))
			case "/lol/match/v5/matches/EUW1_7001":
				w.Write([]byte(`{
					"metadata": {"matchId": "EUW1_7001"},
					"info": {
						"queueId": 440,
						"participants": [
							{"puuid": "puuid-1", "championName": "Jinx", "kills": 8, "deaths": 2, "assists": 11, "win": true}
						]
					}
				}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := newClient(srv)

		Convey("When listing recent match ids", func() {
			ids, err := client.RecentMatchIDs(ctx, "puuid-1", 1)

			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"EUW1_7001"})
		})

		Convey("When fetching the match detail", func() {
			match, err := client.Match(ctx, "EUW1_7001")

			Convey("Then the detail maps into the resolver's shape", func() {
				So(err, ShouldBeNil)
				So(match.ID, ShouldEqual, "EUW1_7001")
				So(match.Queue, ShouldEqual, queues.FlexQueueID)
				So(match.Participants, ShouldHaveLength, 1)
				So(match.Participants[0].Champion, ShouldEqual, "Jinx")
				So(match.Participants[0].Win, ShouldBeTrue)
			})
		})
	})
}

func TestAccountByRiotID(t *testing.T) {
	ctx := context.Background()

	Convey("Given the account endpoint", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/riot/account/v1/accounts/by-riot-id/Faker/KR1":
				w.Write([]byte(`{"puuid": "puuid-1", "gameName": "Faker", "tagLine": "KR1"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := newClient(srv)

		Convey("When the riot id exists", func() {
			acc, err := client.AccountByRiotID(ctx, "Faker", "KR1")

			So(err, ShouldBeNil)
			So(acc.PUUID, ShouldEqual, "puuid-1")
			So(acc.GameName, ShouldEqual, "Faker")
			So(acc.TagLine, ShouldEqual, "KR1")
		})

		Convey("When the riot id does not exist", func() {
			_, err := client.AccountByRiotID(ctx, "Nobody", "EUW")

			Convey("Then it fails with ErrNotFound", func() {
				So(errors.Is(err, riot.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestChampionCatalog(t *testing.T) {
	ctx := context.Background()

	Convey("Given the data dragon champion manifest", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/cdn/14.10.1/data/en_US/champion.json")
			w.Write([]byte(`{
				"data": {
					"Jinx": {"key": "222", "id": "Jinx", "name": "Jinx"},
					"MonkeyKing": {"key": "62", "id": "MonkeyKing", "name": "Wukong"}
				}
			}`))
		}))
		defer srv.Close()

		client := newClient(srv)

		Convey("When the catalog is loaded", func() {
			So(client.LoadChampions(ctx), ShouldBeNil)

			Convey("Then numeric ids resolve to slug and display name", func() {
				champ := client.ChampionByID(62)
				So(champ.Slug, ShouldEqual, "MonkeyKing")
				So(champ.Name, ShouldEqual, "Wukong")
			})

			Convey("And unknown ids get a readable fallback", func() {
				champ := client.ChampionByID(999)
				So(champ.Name, ShouldEqual, "Champion 999")
			})

			Convey("And icon URLs are built from the slug", func() {
				url := client.ChampionIconURL("Jinx")
				So(url, ShouldEndWith, "/cdn/14.10.1/img/champion/Jinx.png")
			})
		})
	})
}
