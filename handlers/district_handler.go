package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/metrics"
	"github.com/rt1856/Manrega/models"
	"github.com/rt1856/Manrega/store"
)

type nearestQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

// ListDistricts serves GET /api/districts. The state filter defaults to the
// configured state; results come from the in-process cache when fresh.
func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = h.Cfg.StateName
	}

	cacheKey := config.CacheKey("districts", state)
	if cached, found := h.Caches.Districts.Get(cacheKey); found {
		metrics.CacheHitsTotal.Inc()
		writeJSON(w, cached.([]models.District))
		return
	}
	metrics.CacheMissesTotal.Inc()

	districts, err := h.Districts.ListAll(r.Context(), state)
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	h.Caches.Districts.SetDefault(cacheKey, districts)
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	writeJSON(w, districts)
}

// GetDistrict serves GET /api/district/{code}.
func (h *Handler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	district, err := h.Districts.GetByCode(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(w, "District not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, district)
}

// NearestDistrict serves GET /api/nearest-district. Malformed or out-of-range
// coordinates are rejected before any store access.
func (h *Handler) NearestDistrict(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		sendErrorResponse(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		sendErrorResponse(w, "lat and lon must be numeric", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(nearestQuery{Lat: lat, Lon: lon}); err != nil {
		sendErrorResponse(w, "lat must be within [-90,90] and lon within [-180,180]", http.StatusBadRequest)
		return
	}

	district, err := h.Districts.FindNearest(r.Context(), lat, lon)
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(w, "No district with coordinates found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendErrorResponse(w, "Database error", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, district)
}
