package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/rt1856/Manrega/analytics"
	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/handlers"
	"github.com/rt1856/Manrega/metrics"
	"github.com/rt1856/Manrega/middleware"
	"github.com/rt1856/Manrega/store"
)

type HealthResponse struct {
	Status    string `json:"status"`
	DBStatus  string `json:"db_status"`
	DBDetails struct {
		Driver             string `json:"driver"`
		Districts          int    `json:"districts"`
		PerformanceRecords int    `json:"performance_records"`
	} `json:"db_details"`
	Error string `json:"error,omitempty"`
}

func healthCheck(cfg *config.Config, s *store.Store, districts *store.DistrictStore, performance *store.PerformanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status: "ok",
		}
		response.DBDetails.Driver = cfg.DBDriver

		if err := s.Health(r.Context()); err != nil {
			response.Status = "error"
			response.DBStatus = "connection_error"
			response.Error = fmt.Sprintf("Database ping failed: %v", err)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.DBStatus = "connected"
		if count, err := districts.Count(r.Context()); err == nil {
			response.DBDetails.Districts = count
		}
		if count, err := performance.Count(r.Context()); err == nil {
			response.DBDetails.PerformanceRecords = count
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg := config.Load()

	log.Printf("Initializing %s database...", cfg.DBDriver)
	st, err := store.OpenWithRetry(cfg, 5)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	districts := store.NewDistrictStore(st, cfg.NearestMetric)
	performance := store.NewPerformanceStore(st, districts)
	analyticsCache := store.NewAnalyticsCache(st)
	engine := analytics.NewEngine(districts, performance, analyticsCache,
		time.Duration(cfg.CacheTTLSeconds)*time.Second)
	caches := config.NewCaches()

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := districts.Seed(seedCtx); err != nil {
		cancelSeed()
		log.Fatalf("Failed to seed districts: %v", err)
	}
	cancelSeed()

	h := handlers.New(cfg, districts, performance, engine, caches)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 86400,
	})

	// Apply middlewares in order
	r.Use(corsHandler.Handler)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return ghandlers.CompressHandler(next)
	})

	api := r.PathPrefix("/api").Subrouter()
	registerRoutes(api, h)
	log.Println("Routes registered successfully")

	r.HandleFunc("/health", healthCheck(cfg, st, districts, performance)).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router, h *handlers.Handler) {
	// District routes
	api.HandleFunc("/districts", h.ListDistricts).Methods("GET", "OPTIONS")
	api.HandleFunc("/nearest-district", h.NearestDistrict).Methods("GET", "OPTIONS")
	api.HandleFunc("/district/{code}", h.GetDistrict).Methods("GET", "OPTIONS")

	// Performance routes
	api.HandleFunc("/district/{code}/latest", h.LatestPerformance).Methods("GET", "OPTIONS")
	api.HandleFunc("/district/{code}/trend", h.PerformanceTrend).Methods("GET", "OPTIONS")
	api.HandleFunc("/performance/{code}", h.PerformanceForPeriod).Methods("GET", "OPTIONS")

	// Comparison routes
	api.HandleFunc("/district/{code}/compare", h.CompareDistrict).Methods("GET", "OPTIONS")

	// Stats route
	api.HandleFunc("/stats", h.Stats).Methods("GET", "OPTIONS")
}
