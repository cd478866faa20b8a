package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riftwatch/riftwatch/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()

	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(ctx)

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.PollIntervalSeconds, ShouldEqual, 60)
			So(cfg.DigestHour, ShouldEqual, 9)
			So(cfg.Timezone, ShouldEqual, "Europe/Paris")
			So(cfg.DatabasePath, ShouldEqual, "riftwatch.db")
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
		})
	})
}

func TestLoadPrecedence(t *testing.T) {
	ctx := context.Background()

	Convey("Given a YAML file selected via RIFTWATCH_CONFIG", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := []byte("addr: \":9999\"\npoll_interval_seconds: 30\nlog_level: debug\n")
		So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)
		t.Setenv("RIFTWATCH_CONFIG", path)

		Convey("When loading without env overrides", func() {
			cfg, err := config.Load(ctx)

			Convey("Then file values override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.PollIntervalSeconds, ShouldEqual, 30)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.DigestHour, ShouldEqual, 9) // untouched default
			})
		})

		Convey("When an environment variable overrides the same key", func() {
			t.Setenv("RIFTWATCH_ADDR", ":7777")
			t.Setenv("RIFTWATCH_RIOT_API_KEY", "RGAPI-test")
			cfg, err := config.Load(ctx)

			Convey("Then env beats file beats defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7777")
				So(cfg.PollIntervalSeconds, ShouldEqual, 30)
				So(cfg.RiotAPIKey, ShouldEqual, "RGAPI-test")
			})
		})
	})

	Convey("Given a RIFTWATCH_CONFIG path that does not exist", t, func() {
		t.Setenv("RIFTWATCH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := config.Load(ctx)

		Convey("Then loading fails with ErrLoadConfig", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"empty addr", "RIFTWATCH_ADDR", ""},
		{"zero poll interval", "RIFTWATCH_POLL_INTERVAL_SECONDS", "0"},
		{"zero request timeout", "RIFTWATCH_REQUEST_TIMEOUT_SECONDS", "0"},
		{"digest hour out of range", "RIFTWATCH_DIGEST_HOUR", "24"},
		{"digest minute out of range", "RIFTWATCH_DIGEST_MINUTE", "60"},
		{"empty database path", "RIFTWATCH_DATABASE_PATH", ""},
	}

	for _, tc := range cases {
		Convey("Given "+tc.name, t, func() {
			t.Setenv(tc.key, tc.value)
			_, err := config.Load(ctx)

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	}
}
