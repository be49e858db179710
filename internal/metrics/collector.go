package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventSearchCompleted  EventType = "search_completed"
	EventValidationFailed EventType = "validation_failed"
	EventInternalError    EventType = "internal_error"
)

type SearchEvent struct {
	Type       EventType
	Timestamp  time.Time
	ExactMatch bool
	Matches    int
	Duration   time.Duration
	StatusCode int
}

type Collector struct {
	eventCh chan SearchEvent
	metrics *Metrics
	logger  *slog.Logger
	done    chan struct{}
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan SearchEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (c *Collector) EventChannel() chan<- SearchEvent {
	return c.eventCh
}

// Emit sends event without blocking. Events are dropped when the buffer is
// full. A nil Collector ignores every event.
func (c *Collector) Emit(event SearchEvent) {
	if c == nil {
		return
	}

	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

// Start processes events until ctx is cancelled, then drains the buffer.
func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

// Wait blocks until the goroutine started by Start has drained and returned.
func (c *Collector) Wait() {
	<-c.done
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer close(c.done)
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event SearchEvent) {
	switch event.Type {
	case EventSearchCompleted:
		c.metrics.RecordSearch(event.ExactMatch, event.Matches)
		c.metrics.RecordResponse(event.Duration, event.StatusCode)

	case EventValidationFailed:
		c.metrics.IncrementValidationFailures()
		c.metrics.RecordResponse(event.Duration, event.StatusCode)

	case EventInternalError:
		c.metrics.IncrementInternalErrors()
		c.metrics.RecordResponse(event.Duration, event.StatusCode)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(catalogSize int) Snapshot {
	return c.metrics.Snapshot(catalogSize)
}
