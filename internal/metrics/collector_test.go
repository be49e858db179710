package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/college-costs/internal/metrics"
	"github.com/angeloszaimis/college-costs/pkg/logger"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, logger.Discard())
	})

	AfterEach(func() {
		cancel()
	})

	Describe("event processing", func() {
		It("should process EventSearchCompleted", func() {
			collector.Start(ctx)

			collector.Emit(metrics.SearchEvent{
				Type:       metrics.EventSearchCompleted,
				Timestamp:  time.Now(),
				ExactMatch: true,
				Matches:    2,
				Duration:   time.Millisecond,
				StatusCode: http.StatusOK,
			})

			Eventually(func() int64 {
				return collector.Snapshot(0).Searches.Exact
			}).Should(Equal(int64(1)))

			snap := collector.Snapshot(0)
			Expect(snap.Searches.ResultsReturned).To(Equal(int64(2)))
			Expect(snap.StatusCodes[http.StatusOK]).To(Equal(int64(1)))
		})

		It("should process EventValidationFailed", func() {
			collector.Start(ctx)

			collector.Emit(metrics.SearchEvent{
				Type:       metrics.EventValidationFailed,
				StatusCode: http.StatusBadRequest,
			})

			Eventually(func() int64 {
				return collector.Snapshot(0).ValidationFailures
			}).Should(Equal(int64(1)))
		})

		It("should process EventInternalError", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.SearchEvent{
				Type:       metrics.EventInternalError,
				StatusCode: http.StatusInternalServerError,
			}

			Eventually(func() int64 {
				return collector.Snapshot(0).InternalErrors
			}).Should(Equal(int64(1)))
		})

		It("should drain events on context cancellation", func() {
			for i := 0; i < 5; i++ {
				collector.Emit(metrics.SearchEvent{
					Type:       metrics.EventSearchCompleted,
					Matches:    0,
					StatusCode: http.StatusBadRequest,
				})
			}

			cancel()
			collector.Start(ctx)

			Eventually(func() int64 {
				return collector.Snapshot(0).Searches.NotFound
			}).Should(Equal(int64(5)))
		})
	})

	Describe("Wait", func() {
		It("should return once buffered events are recorded", func() {
			collector.Start(ctx)
			for i := 0; i < 20; i++ {
				collector.Emit(metrics.SearchEvent{
					Type:       metrics.EventSearchCompleted,
					Matches:    1,
					StatusCode: http.StatusOK,
				})
			}

			cancel()
			collector.Wait()

			snap := collector.Snapshot(0)
			Expect(snap.Searches.Substring).To(Equal(int64(20)))
			Expect(snap.StatusCodes[http.StatusOK]).To(Equal(int64(20)))
		})
	})

	Describe("Emit", func() {
		It("should not block when the buffer is full", func() {
			small := metrics.NewCollector(1, logger.Discard())

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 10; i++ {
					small.Emit(metrics.SearchEvent{Type: metrics.EventSearchCompleted})
				}
			}()

			Eventually(done).Should(BeClosed())
		})

		It("should ignore events on a nil collector", func() {
			var nilCollector *metrics.Collector
			Expect(func() {
				nilCollector.Emit(metrics.SearchEvent{Type: metrics.EventSearchCompleted})
			}).NotTo(Panic())
		})
	})

	Describe("Handler", func() {
		It("should serve the snapshot as JSON", func() {
			collector.Start(ctx)
			collector.Emit(metrics.SearchEvent{
				Type:       metrics.EventSearchCompleted,
				Matches:    1,
				StatusCode: http.StatusOK,
			})
			Eventually(func() int64 {
				return collector.Snapshot(0).Searches.Substring
			}).Should(Equal(int64(1)))

			w := httptest.NewRecorder()
			collector.Handler(7).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.CatalogSize).To(Equal(7))
			Expect(snap.Searches.Substring).To(Equal(int64(1)))
		})
	})
})
