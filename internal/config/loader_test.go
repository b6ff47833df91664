package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/mverza/recordboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreMongo)
				convey.So(cfg.MongoCollection, convey.ShouldEqual, "userrecords")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RECORDBOARD_ADDR", ":9090")
			_ = os.Setenv("RECORDBOARD_STORE", "memory")
			_ = os.Setenv("RECORDBOARD_LOG_LEVEL", "debug")
			_ = os.Setenv("RECORDBOARD_MONGO_DATABASE", "scores")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MongoDatabase, convey.ShouldEqual, "scores")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":7070"
store: "memory"
log_level: "warn"
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("RECORDBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should apply the file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})

			convey.Convey("And env vars should still win over the file", func() {
				_ = os.Setenv("RECORDBOARD_ADDR", ":6060")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the configured store is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("RECORDBOARD_STORE", "cassette-tape")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails with an invalid-config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the mongo store has no URI", func() {
			clearConfigEnvVars()
			yamlContent := `
store: "mongo"
mongo_uri: ""
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("RECORDBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"RECORDBOARD_CONFIG",
		"RECORDBOARD_ADDR",
		"RECORDBOARD_STORE",
		"RECORDBOARD_LOG_LEVEL",
		"RECORDBOARD_MONGO_URI",
		"RECORDBOARD_MONGO_DATABASE",
		"RECORDBOARD_MONGO_COLLECTION",
		"RECORDBOARD_MONGO_CONNECT_TIMEOUT_MS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "recordboard-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}
