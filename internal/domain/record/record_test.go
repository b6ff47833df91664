package record_test

import (
	"testing"

	"github.com/mverza/recordboard/internal/domain/record"
	"github.com/smartystreets/goconvey/convey"
)

func TestUserRecord_Validate(t *testing.T) {
	convey.Convey("Given a complete record", t, func() {
		rec := record.UserRecord{Username: "alice", BestScore: 100}

		convey.Convey("Then validation passes", func() {
			convey.So(rec.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a record without a username", t, func() {
		rec := record.UserRecord{BestScore: 100}
		errs := rec.Validate()

		convey.Convey("Then validation reports the username field", func() {
			convey.So(errs, convey.ShouldHaveLength, 1)
			convey.So(errs[0].Field, convey.ShouldEqual, "username")
		})
	})

	convey.Convey("Given a record without a bestscore", t, func() {
		rec := record.UserRecord{Username: "alice"}
		errs := rec.Validate()

		convey.Convey("Then validation reports the bestscore field", func() {
			convey.So(errs, convey.ShouldHaveLength, 1)
			convey.So(errs[0].Field, convey.ShouldEqual, "bestscore")
		})
	})

	convey.Convey("Given an empty record", t, func() {
		errs := record.UserRecord{}.Validate()

		convey.Convey("Then both fields are reported", func() {
			convey.So(errs, convey.ShouldHaveLength, 2)
		})
	})

	convey.Convey("Given a string bestscore", t, func() {
		rec := record.UserRecord{Username: "bob", BestScore: "250"}

		convey.Convey("Then it is accepted as-is", func() {
			convey.So(rec.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestUserRecord_View(t *testing.T) {
	convey.Convey("Given a stored record", t, func() {
		rec := record.UserRecord{ID: "65f0c0ffee", Username: "alice", BestScore: 100}
		v := rec.View()

		convey.Convey("Then the view carries exactly id, username, and bestscore", func() {
			convey.So(v.ID, convey.ShouldEqual, "65f0c0ffee")
			convey.So(v.Username, convey.ShouldEqual, "alice")
			convey.So(v.BestScore, convey.ShouldEqual, 100)
		})
	})

	convey.Convey("Given a nil record slice", t, func() {
		views := record.Views(nil)

		convey.Convey("Then Views yields an empty, non-nil slice", func() {
			convey.So(views, convey.ShouldNotBeNil)
			convey.So(views, convey.ShouldBeEmpty)
		})
	})
}

func TestValidSortField(t *testing.T) {
	convey.Convey("Given the allowed sort fields", t, func() {
		for _, f := range []string{"bestscore", "username", "created_at"} {
			convey.So(record.ValidSortField(f), convey.ShouldBeTrue)
		}

		convey.Convey("Then anything else is rejected", func() {
			convey.So(record.ValidSortField("not_a_field"), convey.ShouldBeFalse)
			convey.So(record.ValidSortField(""), convey.ShouldBeFalse)
		})
	})
}
