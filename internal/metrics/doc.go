// Package metrics collects search statistics for the college cost API.
//
// It uses a channel-based event pipeline to record, without blocking the
// request path:
//   - Searches by mode (exact and substring)
//   - Searches that matched nothing and the number of results returned
//   - Validation failures and internal errors
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.SearchEvent{
//		Type:       metrics.EventSearchCompleted,
//		Matches:    3,
//		Duration:   150 * time.Microsecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot(catalog.Len())
//
// Pending events are drained when the context passed to Start is cancelled.
package metrics
