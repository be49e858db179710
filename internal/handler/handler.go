package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/angeloszaimis/college-costs/internal/college"
	"github.com/angeloszaimis/college-costs/internal/httpserver"
	"github.com/angeloszaimis/college-costs/internal/metrics"
	"github.com/angeloszaimis/college-costs/internal/search"
)

const MsgNotFound = "Error: College not found"

// ErrorMessage is one entry of an error response.
type ErrorMessage struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Value    string `json:"value,omitempty"`
	Location string `json:"location,omitempty"`
}

type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
}

type CollegeHandler struct {
	logger           *slog.Logger
	catalog          *college.Catalog
	metricsCollector *metrics.Collector
}

// marshal is swapped in tests to exercise the internal error path.
var marshal = json.Marshal

func (h *CollegeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.logger.With(slog.String("request_id", httpserver.RequestIDFromContext(r.Context())))

	params, err := search.ParseParams(r.URL.Query())
	if err != nil {
		var verr *search.ValidationError
		if !errors.As(err, &verr) {
			h.serverError(w, log, start, err)
			return
		}

		log.Debug("Rejected college search", slog.String("errors", verr.Error()))
		if h.writeJSON(w, log, start, http.StatusBadRequest, validationResponse(verr)) {
			h.emit(metrics.SearchEvent{
				Type:       metrics.EventValidationFailed,
				StatusCode: http.StatusBadRequest,
			}, start)
		}
		return
	}

	results := search.Search(h.catalog, params)

	log.Debug("College search",
		slog.String("name", params.Name),
		slog.Bool("exact_match", params.ExactMatch),
		slog.Bool("include_room_and_board", params.IncludeRoomAndBoard),
		slog.Int("matches", len(results)))

	event := metrics.SearchEvent{
		Type:       metrics.EventSearchCompleted,
		ExactMatch: params.ExactMatch,
		Matches:    len(results),
	}

	if len(results) == 0 {
		event.StatusCode = http.StatusBadRequest
		if h.writeJSON(w, log, start, http.StatusBadRequest, ErrorResponse{
			Errors: []ErrorMessage{{Msg: MsgNotFound}},
		}) {
			h.emit(event, start)
		}
		return
	}

	event.StatusCode = http.StatusOK
	if h.writeJSON(w, log, start, http.StatusOK, results) {
		h.emit(event, start)
	}
}

// writeJSON encodes v before writing anything so that an encoding failure
// can still become a 500. It reports whether v was written.
func (h *CollegeHandler) writeJSON(w http.ResponseWriter, log *slog.Logger, start time.Time, status int, v any) bool {
	body, err := marshal(v)
	if err != nil {
		h.serverError(w, log, start, err)
		return false
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Warn("Failed to write response", slog.Any("err", err))
	}
	return true
}

func (h *CollegeHandler) serverError(w http.ResponseWriter, log *slog.Logger, start time.Time, err error) {
	log.Error("College search failed", slog.Any("err", err))
	http.Error(w, "Server Error", http.StatusInternalServerError)
	h.emit(metrics.SearchEvent{
		Type:       metrics.EventInternalError,
		StatusCode: http.StatusInternalServerError,
	}, start)
}

func (h *CollegeHandler) emit(event metrics.SearchEvent, start time.Time) {
	event.Timestamp = time.Now()
	event.Duration = time.Since(start)
	h.metricsCollector.Emit(event)
}

func validationResponse(verr *search.ValidationError) ErrorResponse {
	resp := ErrorResponse{Errors: make([]ErrorMessage, 0, len(verr.Errors))}
	for _, fe := range verr.Errors {
		resp.Errors = append(resp.Errors, ErrorMessage{
			Msg:      fe.Message,
			Param:    fe.Param,
			Value:    fe.Value,
			Location: "query",
		})
	}
	return resp
}

func NewCollegeHandler(logger *slog.Logger, catalog *college.Catalog, collector *metrics.Collector) *CollegeHandler {
	return &CollegeHandler{
		logger:           logger,
		catalog:          catalog,
		metricsCollector: collector,
	}
}
