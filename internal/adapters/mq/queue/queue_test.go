package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/scout/internal/adapters/mq/queue"
	"github.com/okian/scout/internal/domain/model"
)

func job(sessionID string) queue.Job {
	return queue.Job{
		SessionID: sessionID,
		Request:   model.DiscoveryRequest{Tags: []string{"ai"}},
	}
}

func TestInMemoryQueue(t *testing.T) {
	convey.Convey("Given an in-memory job queue", t, func() {
		ctx := context.Background()

		convey.Convey("When enqueueing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))

			convey.Convey("Then jobs are accepted and counted", func() {
				convey.So(q.Enqueue(ctx, job("a")), convey.ShouldBeTrue)
				convey.So(q.Enqueue(ctx, job("b")), convey.ShouldBeTrue)
				convey.So(q.Len(ctx), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1))
			convey.So(q.Enqueue(ctx, job("a")), convey.ShouldBeTrue)

			convey.Convey("Then further enqueues are rejected without blocking", func() {
				convey.So(q.Enqueue(ctx, job("b")), convey.ShouldBeFalse)
				convey.So(q.Len(ctx), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When dequeueing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, job("first")), convey.ShouldBeTrue)
			convey.So(q.Enqueue(ctx, job("second")), convey.ShouldBeTrue)

			ch := q.Dequeue(ctx)

			convey.Convey("Then jobs come back in FIFO order", func() {
				got := <-ch
				convey.So(got.SessionID, convey.ShouldEqual, "first")
				got = <-ch
				convey.So(got.SessionID, convey.ShouldEqual, "second")
			})
		})

		convey.Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, job("a")), convey.ShouldBeTrue)

			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then it reports closed and rejects new jobs", func() {
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
				convey.So(q.Enqueue(ctx, job("b")), convey.ShouldBeFalse)
			})

			convey.Convey("And the dequeue channel drains then closes", func() {
				ch := q.Dequeue(ctx)
				got, ok := <-ch
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.SessionID, convey.ShouldEqual, "a")

				select {
				case _, ok := <-ch:
					convey.So(ok, convey.ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close")
				}
			})

			convey.Convey("And closing again is a no-op", func() {
				convey.So(q.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the dequeue context is cancelled", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, job("a")), convey.ShouldBeTrue)

			cancelCtx, cancel := context.WithCancel(ctx)
			ch := q.Dequeue(cancelCtx)
			cancel()

			convey.Convey("Then the consumer channel eventually closes", func() {
				deadline := time.After(time.Second)
				for {
					select {
					case _, ok := <-ch:
						if !ok {
							convey.So(ok, convey.ShouldBeFalse)
							return
						}
					case <-deadline:
						t.Fatal("channel did not close after cancellation")
					}
				}
			})
		})
	})
}
