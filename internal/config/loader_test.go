package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/umairtariqsalam/Palate/internal/config"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		for _, key := range []string{
			"PALATE_CONFIG", "PALATE_ADDR", "PALATE_LOG_LEVEL",
			"PALATE_MONGO_URI", "PALATE_MONGO_DATABASE",
			"PALATE_REDIS_ADDR", "PALATE_CROWD_WINDOW_MINUTES",
			"PALATE_THROTTLE_WINDOW_MINUTES",
			"PALATE_RESTAURANT_FETCH_CONCURRENCY",
		} {
			So(os.Unsetenv(key), ShouldBeNil)
		}

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the defaults come back", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.MongoURI, ShouldEqual, "")
				So(cfg.MongoDatabase, ShouldEqual, "palate")
				So(cfg.CrowdWindowMinutes, ShouldEqual, 60)
				So(cfg.ThrottleWindowMinutes, ShouldEqual, 15)
				So(cfg.RestaurantFetchConcurrency, ShouldEqual, 8)
			})
		})

		Convey("When environment variables override defaults", func() {
			So(os.Setenv("PALATE_ADDR", ":7070"), ShouldBeNil)
			So(os.Setenv("PALATE_LOG_LEVEL", "debug"), ShouldBeNil)
			So(os.Setenv("PALATE_THROTTLE_WINDOW_MINUTES", "5"), ShouldBeNil)
			defer func() {
				_ = os.Unsetenv("PALATE_ADDR")
				_ = os.Unsetenv("PALATE_LOG_LEVEL")
				_ = os.Unsetenv("PALATE_THROTTLE_WINDOW_MINUTES")
			}()

			cfg, err := config.Load(context.Background())

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.ThrottleWindowMinutes, ShouldEqual, 5)
			})
		})

		Convey("When a YAML file is configured", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "palate.yaml")
			content := []byte("addr: \":6060\"\ncrowd_window_minutes: 30\n")
			So(os.WriteFile(path, content, 0o600), ShouldBeNil)
			So(os.Setenv("PALATE_CONFIG", path), ShouldBeNil)
			defer func() { _ = os.Unsetenv("PALATE_CONFIG") }()

			Convey("Then file values override defaults", func() {
				cfg, err := config.Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.CrowdWindowMinutes, ShouldEqual, 30)
				So(cfg.ThrottleWindowMinutes, ShouldEqual, 15)
			})

			Convey("And env overrides the file", func() {
				So(os.Setenv("PALATE_ADDR", ":5050"), ShouldBeNil)
				defer func() { _ = os.Unsetenv("PALATE_ADDR") }()

				cfg, err := config.Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})

		Convey("When the configured file does not exist", func() {
			So(os.Setenv("PALATE_CONFIG", "/nonexistent/palate.yaml"), ShouldBeNil)
			defer func() { _ = os.Unsetenv("PALATE_CONFIG") }()

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When validation fails", func() {
			Convey("And the throttle window is not positive", func() {
				So(os.Setenv("PALATE_THROTTLE_WINDOW_MINUTES", "0"), ShouldBeNil)
				defer func() { _ = os.Unsetenv("PALATE_THROTTLE_WINDOW_MINUTES") }()

				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("And a mongo URI arrives without a database", func() {
				So(os.Setenv("PALATE_MONGO_URI", "mongodb://localhost:27017"), ShouldBeNil)
				So(os.Setenv("PALATE_MONGO_DATABASE", ""), ShouldBeNil)
				defer func() {
					_ = os.Unsetenv("PALATE_MONGO_URI")
					_ = os.Unsetenv("PALATE_MONGO_DATABASE")
				}()

				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given a fresh default config", t, func() {
		cfg := config.New()

		Convey("Then it passes its own validation via Load", func() {
			So(cfg.Addr, ShouldNotBeEmpty)
			So(cfg.CrowdWindowMinutes, ShouldBeGreaterThan, 0)
			So(cfg.ThrottleWindowMinutes, ShouldBeGreaterThan, 0)
			So(cfg.RestaurantFetchConcurrency, ShouldBeGreaterThan, 0)
		})
	})
}
