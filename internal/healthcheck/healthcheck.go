package healthcheck

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/angeloszaimis/college-costs/internal/college"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Report is the body served by Handler.
type Report struct {
	Status   string    `json:"status"`
	Records  int       `json:"records"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
	Uptime   string    `json:"uptime"`
}

// Handler reports whether the catalog is loaded. It answers 503 while
// catalog is nil and 200 afterwards.
func Handler(catalog *college.Catalog, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Report{
			Status: StatusUnavailable,
			Uptime: time.Since(startedAt).Round(time.Second).String(),
		}
		status := http.StatusServiceUnavailable

		if catalog != nil {
			stats := catalog.Stats()
			report.Status = StatusOK
			report.Records = catalog.Len()
			report.Source = stats.Source
			report.LoadedAt = stats.LoadedAt
			status = http.StatusOK
		}

		body, err := json.Marshal(report)
		if err != nil {
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(status)
		w.Write(body)
	}
}
