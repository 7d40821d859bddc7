package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/rt1856/Manrega/analytics"
	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/store"
)

// Handler bundles the components every endpoint needs. Handlers hold no
// mutable state of their own; all persistence goes through the store handles
// received at construction.
type Handler struct {
	Cfg         *config.Config
	Districts   *store.DistrictStore
	Performance *store.PerformanceStore
	Engine      *analytics.Engine
	Caches      *config.Caches

	validate *validator.Validate
}

func New(cfg *config.Config, districts *store.DistrictStore, performance *store.PerformanceStore, engine *analytics.Engine, caches *config.Caches) *Handler {
	return &Handler{
		Cfg:         cfg,
		Districts:   districts,
		Performance: performance,
		Engine:      engine,
		Caches:      caches,
		validate:    validator.New(),
	}
}
