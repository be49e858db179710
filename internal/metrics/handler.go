package metrics

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Handler serves the current snapshot as JSON.
func (c *Collector) Handler(catalogSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(c.Snapshot(catalogSize))
		if err != nil {
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}
