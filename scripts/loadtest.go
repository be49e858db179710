// Loadtest is a concurrent HTTP load generator for the college search API. It
// cycles through a list of college names, measures latency percentiles and
// reports the outcome distribution per name.
//
// Usage:
//
//	go run loadtest.go -base http://localhost:5000 -names "harvard,state,zzznonexistentcollege" -requests 1000
//	go run loadtest.go -concurrency 50 -requests 5000 -exact -csv results.csv -out summary.json
//
// Features:
//   - Concurrent workers for high throughput testing
//   - Per-name outcome counts (found, not found, rejected, server error)
//   - CSV output with per-request details
//   - JSON summary with percentiles (p50, p90, p95, p99)
//
// Only transport errors and 5xx responses count as failures: a 400 for an
// unknown college is a valid answer.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// QueryStats tracks outcomes for one queried name.
type QueryStats struct {
	Count     int32
	Found     int32
	NotFound  int32
	Errors    int32
	Latencies []time.Duration
}

type QuerySummary struct {
	Total    int32   `json:"total"`
	Found    int32   `json:"found"`
	NotFound int32   `json:"not_found"`
	Errors   int32   `json:"errors"`
	P50      float64 `json:"p50_ms"`
	P90      float64 `json:"p90_ms"`
	P95      float64 `json:"p95_ms"`
	P99      float64 `json:"p99_ms"`
}

func main() {
	var (
		base        = flag.String("base", "http://localhost:5000", "Base URL of the API")
		namesFlag   = flag.String("names", "university,college,state,zzznonexistentcollege", "Comma-separated college names to query")
		exact       = flag.Bool("exact", false, "Send exactMatch=true")
		noBoard     = flag.Bool("no-room-and-board", false, "Send includeRoomAndBoard=false")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
	)

	outJSON := flag.String("out", "", "Write JSON summary to this file (optional)")
	outCSV := flag.String("csv", "", "Write per-request CSV to this file (optional)")
	verbose := flag.Bool("v", false, "Verbose per-request logging to stdout")
	flag.Parse()

	names := splitNames(*namesFlag)
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "no names to query")
		os.Exit(1)
	}

	targets := make([]string, len(names))
	for i, name := range names {
		targets[i] = buildURL(*base, name, *exact, *noBoard)
	}

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var total int32
	var failure int32

	queryStats := make(map[string]*QueryStats)
	var statsMu sync.Mutex

	var allLatencies []time.Duration
	var latMu sync.Mutex

	statusCodes := make(map[int]int32)
	var statusMu sync.Mutex

	var csvFile *os.File
	var csvWriter *csv.Writer
	var csvMu sync.Mutex
	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create csv file: %v\n", err)
			os.Exit(1)
		}
		csvFile = f
		csvWriter = csv.NewWriter(f)
		csvWriter.Write([]string{"idx", "timestamp", "name", "status", "duration_ms"})
	}

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				atomic.AddInt32(&total, 1)
				name := names[idx%len(names)]
				start := time.Now()

				resp, err := client.Get(targets[idx%len(targets)])
				dur := time.Since(start)

				latMu.Lock()
				allLatencies = append(allLatencies, dur)
				latMu.Unlock()

				statsMu.Lock()
				qs, ok := queryStats[name]
				if !ok {
					qs = &QueryStats{}
					queryStats[name] = qs
				}
				qs.Count++
				qs.Latencies = append(qs.Latencies, dur)
				statsMu.Unlock()

				if err != nil {
					atomic.AddInt32(&failure, 1)
					statsMu.Lock()
					qs.Errors++
					statsMu.Unlock()
					if *verbose {
						fmt.Printf("[%d] idx=%d name=%q error=%v\n", workerID, idx, name, err)
					}
					continue
				}

				statusMu.Lock()
				statusCodes[resp.StatusCode]++
				statusMu.Unlock()

				statsMu.Lock()
				switch {
				case resp.StatusCode == http.StatusOK:
					qs.Found++
				case resp.StatusCode == http.StatusBadRequest:
					qs.NotFound++
				case resp.StatusCode >= 500:
					qs.Errors++
					atomic.AddInt32(&failure, 1)
				}
				statsMu.Unlock()

				if csvWriter != nil {
					csvMu.Lock()
					csvWriter.Write([]string{
						strconv.Itoa(idx),
						time.Now().Format(time.RFC3339Nano),
						name,
						strconv.Itoa(resp.StatusCode),
						fmt.Sprintf("%.3f", float64(dur.Microseconds())/1000.0),
					})
					csvMu.Unlock()
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d name=%q status=%d dur=%v\n", workerID, idx, name, resp.StatusCode, dur)
				}

				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)

	if csvWriter != nil {
		csvWriter.Flush()
		csvFile.Close()
	}

	throughput := float64(total) / totalDuration.Seconds()

	fmt.Println("--- Load Test Summary ---")
	fmt.Printf("Target: %s/api/college\n", strings.TrimRight(*base, "/"))
	fmt.Printf("Requests: %d  Concurrency: %d  Names: %d\n", *requests, *concurrency, len(names))
	fmt.Printf("Total sent: %d  Failure: %d\n", total, failure)
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", totalDuration, throughput)

	fmt.Println("\nStatus codes:")
	var scKeys []int
	for k := range statusCodes {
		scKeys = append(scKeys, k)
	}
	sort.Ints(scKeys)
	for _, k := range scKeys {
		fmt.Printf("  %d -> %d\n", k, statusCodes[k])
	}

	summaries := make(map[string]QuerySummary, len(queryStats))
	fmt.Println("\nPer-name outcomes:")
	var nameKeys []string
	for k := range queryStats {
		nameKeys = append(nameKeys, k)
	}
	sort.Strings(nameKeys)
	for _, k := range nameKeys {
		qs := queryStats[k]
		sorted := sortedCopy(qs.Latencies)
		summary := QuerySummary{
			Total:    qs.Count,
			Found:    qs.Found,
			NotFound: qs.NotFound,
			Errors:   qs.Errors,
			P50:      millis(pick(sorted, 0.50)),
			P90:      millis(pick(sorted, 0.90)),
			P95:      millis(pick(sorted, 0.95)),
			P99:      millis(pick(sorted, 0.99)),
		}
		summaries[k] = summary

		fmt.Printf("  %q -> total=%d found=%d not_found=%d errors=%d p50=%.2fms p99=%.2fms\n",
			k, summary.Total, summary.Found, summary.NotFound, summary.Errors, summary.P50, summary.P99)
	}

	if len(allLatencies) > 0 {
		tmp := sortedCopy(allLatencies)
		var sum time.Duration
		for _, d := range tmp {
			sum += d
		}
		avg := sum / time.Duration(len(tmp))
		fmt.Println("\nOverall latencies:")
		fmt.Printf("  samples=%d min=%v avg=%v max=%v p50=%v p90=%v p95=%v p99=%v\n",
			len(tmp), tmp[0], avg, tmp[len(tmp)-1], pick(tmp, 0.50), pick(tmp, 0.90), pick(tmp, 0.95), pick(tmp, 0.99))
	}

	fmt.Printf("\nGOMAXPROCS=%d  NumGoroutine=%d\n", runtime.GOMAXPROCS(0), runtime.NumGoroutine())

	if *outJSON != "" {
		report := map[string]interface{}{
			"base":           *base,
			"requests":       *requests,
			"concurrency":    *concurrency,
			"exact_match":    *exact,
			"total_sent":     total,
			"failure":        failure,
			"duration_ms":    totalDuration.Milliseconds(),
			"throughput_rps": throughput,
			"names":          summaries,
		}

		body, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode summary: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outJSON, body, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write json file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if failure > 0 {
		os.Exit(2)
	}
}

func splitNames(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func buildURL(base, name string, exact, noBoard bool) string {
	q := url.Values{}
	q.Set("name", name)
	if exact {
		q.Set("exactMatch", "true")
	}
	if noBoard {
		q.Set("includeRoomAndBoard", "false")
	}
	return strings.TrimRight(base, "/") + "/api/college?" + q.Encode()
}

func sortedCopy(in []time.Duration) []time.Duration {
	out := make([]time.Duration, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func pick(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
