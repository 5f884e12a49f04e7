package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ontiq/ontoscope/internal/api/handlers"
	mw "github.com/ontiq/ontoscope/internal/api/middleware"
	"github.com/ontiq/ontoscope/internal/config"
	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/service"
	"github.com/ontiq/ontoscope/internal/store"
	"go.uber.org/zap"
)

// App holds the router and the engine for the hosting process.
type App struct {
	Router       *chi.Mux
	Engine       *service.Engine
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires stores, engine, handlers and routes. A nil db selects the
// in-memory assertion store and disables snapshot history.
func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	var assertions domain.AssertionStore
	var snapshots domain.SnapshotStore

	if db != nil {
		assertions = store.NewAssertionPostgresStore(db)
		if config.SnapshotHistory() {
			snapshots = store.NewSnapshotStore(db)
		}
		logger.Info("using postgres assertion store",
			zap.Bool("snapshot_history", snapshots != nil))
	} else {
		assertions = store.NewAssertionMemoryStore()
		logger.Info("using in-memory assertion store")
	}

	engine := service.NewEngine(assertions, logger)
	if snapshots != nil {
		engine.SetSnapshotStore(snapshots)
	}

	inferenceHandler := handlers.NewInferenceHandler(engine)
	assertionHandler := handlers.NewAssertionHandler(engine)
	riskHandler := handlers.NewRiskHandler(engine)
	driftHandler := handlers.NewDriftHandler(engine)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Engine:    engine,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		if key := config.APIKey(); key != "" {
			r.Use(mw.BearerAuth(key))
		}

		r.Post("/profile", inferenceHandler.Profile)
		r.Post("/resolve", inferenceHandler.Resolve)
		r.Post("/suggest", inferenceHandler.Suggest)

		r.Route("/assertions", func(r chi.Router) {
			r.Get("/", assertionHandler.Export)
			r.Post("/import", assertionHandler.Import)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", assertionHandler.Set)
				r.Get("/", assertionHandler.Get)
				r.Delete("/", assertionHandler.Delete)
			})
		})

		r.Post("/risk/edge", riskHandler.EdgeRisk)
		r.Get("/susceptibility/{role}/{edgeType}", riskHandler.Susceptibility)

		r.Post("/drift", driftHandler.Detect)

		if snapshots != nil {
			snapshotHandler := handlers.NewSnapshotHandler(snapshots)
			r.Get("/definitions/{id}/snapshots", snapshotHandler.List)
		}
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.AssertionStore = (*store.AssertionMemoryStore)(nil)
	_ domain.AssertionStore = (*store.AssertionPostgresStore)(nil)
	_ domain.SnapshotStore  = (*store.SnapshotStore)(nil)
)
