package config_test

import (
	"testing"

	"github.com/mverza/recordboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMongo)
			convey.So(cfg.MongoURI, convey.ShouldEqual, "mongodb://localhost:27017")
			convey.So(cfg.MongoDatabase, convey.ShouldEqual, "recordboard")
			convey.So(cfg.MongoCollection, convey.ShouldEqual, "userrecords")
			convey.So(cfg.MongoConnectTimeoutMS, convey.ShouldEqual, 5000)
		})
	})
}
