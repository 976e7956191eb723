package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	convey.Convey("Given an in-memory session store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		req := model.DiscoveryRequest{Tags: []string{"ai"}, MaxArticles: 5}

		convey.Convey("When creating a session", func() {
			session, err := store.Create(ctx, req)

			convey.Convey("Then it starts pending with an identifier", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(session.ID, convey.ShouldNotBeEmpty)
				convey.So(session.Status, convey.ShouldEqual, model.SessionPending)
				convey.So(session.Request.MaxArticles, convey.ShouldEqual, 5)
				convey.So(store.ActiveCount(ctx), convey.ShouldEqual, 1)
				convey.So(store.Count(ctx), convey.ShouldEqual, 1)
			})

			convey.Convey("And it can be fetched back", func() {
				got, err := store.Get(ctx, session.ID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.ID, convey.ShouldEqual, session.ID)
			})
		})

		convey.Convey("When walking the full lifecycle", func() {
			session, _ := store.Create(ctx, req)

			convey.So(store.SetRunning(ctx, session.ID), convey.ShouldBeNil)
			convey.So(store.AppendProgress(ctx, session.ID, model.ProgressUpdate{
				Message: "fetching sources", Percent: 40,
			}), convey.ShouldBeNil)
			convey.So(store.Complete(ctx, session.ID, model.DiscoveryResult{
				TotalFound: 10, UniqueFound: 8, FinalCount: 5,
			}), convey.ShouldBeNil)

			got, err := store.Get(ctx, session.ID)

			convey.Convey("Then the terminal session carries result and progress", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.Status, convey.ShouldEqual, model.SessionCompleted)
				convey.So(got.Result, convey.ShouldNotBeNil)
				convey.So(got.Result.FinalCount, convey.ShouldEqual, 5)
				convey.So(len(got.Progress), convey.ShouldEqual, 1)
				convey.So(got.Progress[0].Percent, convey.ShouldEqual, 40)
				convey.So(store.ActiveCount(ctx), convey.ShouldEqual, 0)
			})

			convey.Convey("And further transitions are rejected", func() {
				err := store.Complete(ctx, session.ID, model.DiscoveryResult{})
				convey.So(errors.Is(err, repository.ErrTerminated), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a run fails", func() {
			session, _ := store.Create(ctx, req)
			convey.So(store.SetRunning(ctx, session.ID), convey.ShouldBeNil)
			convey.So(store.Fail(ctx, session.ID, errors.New("all adapters down")), convey.ShouldBeNil)

			got, _ := store.Get(ctx, session.ID)

			convey.Convey("Then the failure cause is recorded", func() {
				convey.So(got.Status, convey.ShouldEqual, model.SessionFailed)
				convey.So(got.Error, convey.ShouldContainSubstring, "all adapters down")
			})
		})

		convey.Convey("When looking up an unknown session", func() {
			_, err := store.Get(ctx, "missing")

			convey.Convey("Then it returns ErrNotFound", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStoreProgressCap(t *testing.T) {
	convey.Convey("Given a store with a small progress cap", t, func() {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore(
			repository.WithMaxProgress(3),
			repository.WithNow(func() time.Time { return base }),
		)

		session, _ := store.Create(ctx, model.DiscoveryRequest{Tags: []string{"ai"}})

		for i := 0; i < 5; i++ {
			convey.So(store.AppendProgress(ctx, session.ID, model.ProgressUpdate{
				Message: "step", Percent: float64(i * 20),
			}), convey.ShouldBeNil)
		}

		got, _ := store.Get(ctx, session.ID)

		convey.Convey("Then only the newest entries survive", func() {
			convey.So(len(got.Progress), convey.ShouldEqual, 3)
			convey.So(got.Progress[0].Percent, convey.ShouldEqual, 40)
			convey.So(got.Progress[2].Percent, convey.ShouldEqual, 80)
			convey.So(got.Progress[2].At, convey.ShouldEqual, base)
		})
	})
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	convey.Convey("Given a fetched session snapshot", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		session, _ := store.Create(ctx, model.DiscoveryRequest{Tags: []string{"ai"}})
		convey.So(store.AppendProgress(ctx, session.ID, model.ProgressUpdate{Message: "a", Percent: 10}), convey.ShouldBeNil)

		got, _ := store.Get(ctx, session.ID)
		got.Progress[0].Message = "mutated"

		convey.Convey("Then mutating it does not leak into the store", func() {
			again, _ := store.Get(ctx, session.ID)
			convey.So(again.Progress[0].Message, convey.ShouldEqual, "a")
		})
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	convey.Convey("Given concurrent writers", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				session, err := store.Create(ctx, model.DiscoveryRequest{Tags: []string{"ai"}})
				if err != nil {
					return
				}
				_ = store.SetRunning(ctx, session.ID)
				_ = store.AppendProgress(ctx, session.ID, model.ProgressUpdate{Message: "w", Percent: 50})
				_ = store.Complete(ctx, session.ID, model.DiscoveryResult{})
			}()
		}
		wg.Wait()

		convey.Convey("Then every session lands in a terminal state", func() {
			convey.So(store.Count(ctx), convey.ShouldEqual, 16)
			convey.So(store.ActiveCount(ctx), convey.ShouldEqual, 0)
		})
	})
}
