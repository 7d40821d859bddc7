package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rt1856/Manrega/analytics"
	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/metrics"
	"github.com/rt1856/Manrega/store"
)

// CompareDistrict serves GET /api/district/{code}/compare. The period is the
// district's latest recorded month, falling back to the current month for a
// district with no data; the engine then degrades further to synthesized
// numbers, so a registered district always gets an answer.
func (h *Handler) CompareDistrict(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if _, err := h.Districts.GetByCode(r.Context(), code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			sendErrorResponse(w, "District not found", http.StatusNotFound)
			return
		}
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	compareWith := r.URL.Query().Get("compare_with")
	if compareWith != "" && compareWith != "state" {
		sendErrorResponse(w, "Only state comparison is supported", http.StatusBadRequest)
		return
	}

	year, month := h.comparePeriod(r)

	cacheKey := config.CacheKey("compare", code, year, month)
	if cached, found := h.Caches.Comparisons.Get(cacheKey); found {
		metrics.CacheHitsTotal.Inc()
		writeJSON(w, cached.(*analytics.Comparison))
		return
	}
	metrics.CacheMissesTotal.Inc()

	comparison, err := h.Engine.Compare(r.Context(), code, year, month)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	h.Caches.Comparisons.SetDefault(cacheKey, comparison)
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	writeJSON(w, comparison)
}

func (h *Handler) comparePeriod(r *http.Request) (int, int) {
	code := mux.Vars(r)["code"]
	if latest, err := h.Performance.GetLatest(r.Context(), code); err == nil {
		return latest.Year, latest.Month
	}
	now := time.Now()
	return now.Year(), int(now.Month())
}
