package metrics

import (
	"sort"
	"sync"
	"time"
)

// maxSamples bounds the latency window used for percentiles.
const maxSamples = 1000

type Metrics struct {
	mutex              sync.RWMutex
	exactSearches      int64
	substringSearches  int64
	notFound           int64
	resultsReturned    int64
	validationFailures int64
	internalErrors     int64
	responseTimes      []time.Duration
	statusCodes        map[int]int64
	startTime          time.Time
}

type Snapshot struct {
	CatalogSize        int           `json:"catalog_size"`
	Uptime             time.Duration `json:"uptime"`
	TotalRequests      int64         `json:"total_requests"`
	Searches           SearchMetrics `json:"searches"`
	ValidationFailures int64         `json:"validation_failures"`
	InternalErrors     int64         `json:"internal_errors"`
	AvgResponse        time.Duration `json:"avg_response"`
	P50Response        time.Duration `json:"p50_response"`
	P95Response        time.Duration `json:"p95_response"`
	P99Response        time.Duration `json:"p99_response"`
	StatusCodes        map[int]int64 `json:"status_codes"`
}

type SearchMetrics struct {
	Exact           int64 `json:"exact"`
	Substring       int64 `json:"substring"`
	NotFound        int64 `json:"not_found"`
	ResultsReturned int64 `json:"results_returned"`
}

// RecordSearch counts a search that passed validation. A search with no
// matches also counts as not found.
func (m *Metrics) RecordSearch(exact bool, matches int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if exact {
		m.exactSearches++
	} else {
		m.substringSearches++
	}

	if matches == 0 {
		m.notFound++
	}
	m.resultsReturned += int64(matches)
}

func (m *Metrics) IncrementValidationFailures() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.validationFailures++
}

func (m *Metrics) IncrementInternalErrors() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.internalErrors++
}

func (m *Metrics) RecordResponse(duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxSamples {
		m.responseTimes = m.responseTimes[1:]
	}

	m.statusCodes[statusCode]++
}

func (m *Metrics) Snapshot(catalogSize int) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		CatalogSize: catalogSize,
		Uptime:      time.Since(m.startTime),
		Searches: SearchMetrics{
			Exact:           m.exactSearches,
			Substring:       m.substringSearches,
			NotFound:        m.notFound,
			ResultsReturned: m.resultsReturned,
		},
		ValidationFailures: m.validationFailures,
		InternalErrors:     m.internalErrors,
		StatusCodes:        make(map[int]int64, len(m.statusCodes)),
	}

	for code, count := range m.statusCodes {
		snap.StatusCodes[code] = count
		snap.TotalRequests += count
	}

	if len(m.responseTimes) > 0 {
		sorted := make([]time.Duration, len(m.responseTimes))
		copy(sorted, m.responseTimes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.AvgResponse = average(sorted)
		snap.P50Response = percentile(sorted, 0.50)
		snap.P95Response = percentile(sorted, 0.95)
		snap.P99Response = percentile(sorted, 0.99)
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		statusCodes: make(map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
