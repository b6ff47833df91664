package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/mverza/recordboard/internal/adapters/repository"
	"github.com/mverza/recordboard/internal/domain/record"
)

func seed(t *testing.T, s repository.Store, recs ...record.UserRecord) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		id, err := s.InsertOne(ctx, r)
		if err != nil {
			t.Fatalf("seed insert: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestMemStore_Insert(t *testing.T) {
	convey.Convey("Given an empty store", t, func() {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		store := repository.NewMemStore(repository.WithNow(func() time.Time { return base }))

		convey.Convey("When inserting a record", func() {
			id, err := store.InsertOne(ctx, record.UserRecord{Username: "alice", BestScore: 100})

			convey.Convey("Then it gets an id and a created_at stamp", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(id, convey.ShouldNotBeEmpty)

				got, err := store.FindOne(ctx, repository.Filter{Field: "username", Value: "alice"})
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldNotBeNil)
				convey.So(got.ID, convey.ShouldEqual, id)
				convey.So(got.CreatedAt, convey.ShouldEqual, base)
			})
		})

		convey.Convey("When inserting the same username twice", func() {
			_, err := store.InsertOne(ctx, record.UserRecord{Username: "alice", BestScore: 100})
			convey.So(err, convey.ShouldBeNil)
			_, err = store.InsertOne(ctx, record.UserRecord{Username: "alice", BestScore: 200})

			convey.Convey("Then the second insert is rejected", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrDuplicateUsername)

				n, cerr := store.Count(ctx)
				convey.So(cerr, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)
			})
		})
	})
}

func TestMemStore_Find(t *testing.T) {
	convey.Convey("Given a store with three records", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		seed(t, store,
			record.UserRecord{Username: "alice", BestScore: 100},
			record.UserRecord{Username: "bob", BestScore: 300},
			record.UserRecord{Username: "carol", BestScore: 200},
		)

		convey.Convey("When finding without a sort", func() {
			recs, err := store.Find(ctx, repository.Query{})

			convey.Convey("Then insertion order is preserved", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(usernames(recs), convey.ShouldResemble, []string{"alice", "bob", "carol"})
			})
		})

		convey.Convey("When sorting by bestscore descending", func() {
			recs, err := store.Find(ctx, repository.Query{SortField: "bestscore", SortOrder: -1})

			convey.Convey("Then the best score comes first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(usernames(recs), convey.ShouldResemble, []string{"bob", "carol", "alice"})
			})
		})

		convey.Convey("When sorting by username ascending", func() {
			recs, err := store.Find(ctx, repository.Query{SortField: "username", SortOrder: 1})

			convey.So(err, convey.ShouldBeNil)
			convey.So(usernames(recs), convey.ShouldResemble, []string{"alice", "bob", "carol"})
		})

		convey.Convey("When paginating with skip and limit", func() {
			recs, err := store.Find(ctx, repository.Query{
				SortField: "bestscore", SortOrder: -1, Skip: 1, Limit: 1,
			})

			convey.So(err, convey.ShouldBeNil)
			convey.So(usernames(recs), convey.ShouldResemble, []string{"carol"})
		})

		convey.Convey("When limit is zero", func() {
			recs, err := store.Find(ctx, repository.Query{SortField: "username", SortOrder: 1, Limit: 0})

			convey.Convey("Then limit zero means unbounded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(recs, convey.ShouldHaveLength, 3)
			})
		})

		convey.Convey("When skip runs past the end", func() {
			recs, err := store.Find(ctx, repository.Query{Skip: 10})

			convey.So(err, convey.ShouldBeNil)
			convey.So(recs, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given scores of mixed types", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		seed(t, store,
			record.UserRecord{Username: "num", BestScore: 500},
			record.UserRecord{Username: "str", BestScore: "90"},
			record.UserRecord{Username: "flt", BestScore: 7.5},
		)

		convey.Convey("When sorting by bestscore descending", func() {
			recs, err := store.Find(ctx, repository.Query{SortField: "bestscore", SortOrder: -1})

			convey.Convey("Then strings sort after every number, as BSON does", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(usernames(recs), convey.ShouldResemble, []string{"str", "num", "flt"})
			})
		})
	})
}

func TestMemStore_UpdateDelete(t *testing.T) {
	convey.Convey("Given a store with one record", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		ids := seed(t, store, record.UserRecord{Username: "alice", BestScore: 100})

		convey.Convey("When replacing the document with a new score", func() {
			got, err := store.FindOne(ctx, repository.Filter{Field: "username", Value: "alice"})
			convey.So(err, convey.ShouldBeNil)
			updated := *got
			updated.BestScore = "150"
			err = store.UpdateOne(ctx, repository.Filter{Field: "username", Value: "alice"}, updated)

			convey.Convey("Then the stored record keeps its id and carries the new score", func() {
				convey.So(err, convey.ShouldBeNil)
				after, ferr := store.FindOne(ctx, repository.Filter{Field: "username", Value: "alice"})
				convey.So(ferr, convey.ShouldBeNil)
				convey.So(after.ID, convey.ShouldEqual, ids[0])
				convey.So(after.BestScore, convey.ShouldEqual, "150")
			})
		})

		convey.Convey("When deleting by id", func() {
			err := store.DeleteOne(ctx, ids[0])

			convey.Convey("Then the record is gone", func() {
				convey.So(err, convey.ShouldBeNil)
				got, ferr := store.FindOne(ctx, repository.Filter{Field: "username", Value: "alice"})
				convey.So(ferr, convey.ShouldBeNil)
				convey.So(got, convey.ShouldBeNil)
			})
		})

		convey.Convey("When deleting an unknown id", func() {
			err := store.DeleteOne(ctx, "no-such-id")

			convey.Convey("Then the delete is a silent no-op", func() {
				convey.So(err, convey.ShouldBeNil)
				n, cerr := store.Count(ctx)
				convey.So(cerr, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)
			})
		})
	})
}

func usernames(recs []record.UserRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Username)
	}
	return out
}
