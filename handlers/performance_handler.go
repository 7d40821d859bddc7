package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rt1856/Manrega/metrics"
	"github.com/rt1856/Manrega/models"
	"github.com/rt1856/Manrega/store"
)

// LatestPerformance serves GET /api/district/{code}/latest.
func (h *Handler) LatestPerformance(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	metric, err := h.Performance.GetLatest(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(w, "No performance data for district", http.StatusNotFound)
		return
	}
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, metric)
}

// PerformanceTrend serves GET /api/district/{code}/trend with the full series
// in chronological order.
func (h *Handler) PerformanceTrend(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	trend, err := h.Performance.GetTrend(r.Context(), code)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, trend)
}

// PerformanceForPeriod serves GET /api/performance/{code}?year=&month=. A
// missing record is synthesized and persisted rather than 404ing, so the
// endpoint degrades to plausible placeholder data.
func (h *Handler) PerformanceForPeriod(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	year, month, err := parsePeriod(r)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	metric, err := h.Performance.GetOrSynthesize(r.Context(), code, year, month)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}
	if metric.DataSource == models.SourceSynthetic {
		metrics.SynthesizedTotal.Inc()
	}

	writeJSON(w, metric)
}

// Stats serves GET /api/stats with row counts and the latest reporting
// period.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	districtCount, err := h.Districts.Count(r.Context())
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}
	recordCount, err := h.Performance.Count(r.Context())
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}
	year, month, err := h.Performance.LatestPeriod(r.Context())
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	latest := "No data"
	if year > 0 {
		latest = fmt.Sprintf("%d/%d", month, year)
	}

	writeJSON(w, map[string]interface{}{
		"total_districts":           districtCount,
		"total_performance_records": recordCount,
		"latest_data":               latest,
	})
}

// parsePeriod reads and bounds-checks year/month query parameters, defaulting
// to the current month when both are absent.
func parsePeriod(r *http.Request) (int, int, error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	if yearStr == "" && monthStr == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, errors.New("year must be numeric")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, errors.New("month must be numeric")
	}
	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be within [1,12]")
	}
	if year < 2006 || year > 2100 {
		return 0, 0, errors.New("year out of range")
	}
	return year, month, nil
}
