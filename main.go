package main

import (
	"fmt"
	"foerderrechner/internal/catalog"
	"foerderrechner/internal/config"
	"foerderrechner/internal/handlers"
	"foerderrechner/internal/linkcheck"
	"foerderrechner/internal/logger"
	"foerderrechner/internal/metrics"
	"foerderrechner/internal/middleware"
	sentryutil "foerderrechner/internal/sentry"
	"log"
	"net/http"
	"time"
)

func main() {
	// Load configuration from .env and environment variables
	config.Load()

	// Initialize Sentry (non-blocking if SENTRY_DSN is empty)
	sentryutil.Init()
	defer sentryutil.Flush()

	// Initialize persistent counter
	handlers.InitCounter()

	// Load the program catalog; no catalog, no service
	store, err := catalog.NewStore(catalog.NewSource())
	if err != nil {
		logger.Fatal("catalog: initial load failed", map[string]interface{}{"error": err.Error()})
	}
	handlers.Catalog = store

	// Hot reload on file change (local file source only)
	if config.Cfg.CatalogWatch && config.Cfg.CatalogURL == "" {
		if err := store.Watch(config.Cfg.CatalogPath); err != nil {
			logger.Warn("catalog: watch failed, hot reload disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	// Rate limiter from config
	limiter := handlers.NewRateLimiter(
		config.Cfg.RateLimitRPS,
		config.Cfg.RateLimitBurst,
		time.Second,
	)

	// Create mux
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/calculate", handlers.CalculateHandler)
	mux.HandleFunc("/api/programs", handlers.ProgramsHandler)
	mux.HandleFunc("/api/programs/", handlers.ProgramDetailHandler)
	mux.HandleFunc("/api/regions", handlers.RegionsHandler)
	mux.HandleFunc("/api/parse-offer", handlers.ParseOfferHandler)
	mux.HandleFunc("/api/report", handlers.ReportHandler)
	mux.HandleFunc("/api/health", handlers.HealthHandler)
	mux.HandleFunc("/api/stats", handlers.StatsHandler)
	mux.HandleFunc("/api/status", handlers.StatusHandler)

	if config.Cfg.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/api/health", http.StatusFound)
			return
		}
		handlers.NotFoundHandler(w, r)
	})

	// Wrap with middleware: Recovery → SecurityHeaders → Gzip (if enabled) → Rate Limiter
	var handler http.Handler = limiter.Middleware(mux)
	if config.Cfg.GzipEnabled {
		handler = middleware.Gzip(handler)
	}
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Recovery(handler)

	// Link check at boot (background, respects config)
	if config.Cfg.LinkCheckEnabled {
		go func() {
			time.Sleep(config.Cfg.LinkCheckDelay)
			broken := linkcheck.CheckAll(store.Get().Programs)
			if broken > 0 {
				logger.Warn("link check: broken links found at boot", map[string]interface{}{"broken": broken})
			}
			handlers.SetLastLinkCheck(time.Now())
		}()

		// Periodic link check
		go func() {
			ticker := time.NewTicker(config.Cfg.LinkCheckInterval)
			defer ticker.Stop()
			for range ticker.C {
				linkcheck.CheckAll(store.Get().Programs)
				handlers.SetLastLinkCheck(time.Now())
			}
		}()
	}

	logger.Info("server starting", map[string]interface{}{"port": config.Cfg.Port})
	fmt.Printf("FörderRechner running on http://localhost:%s\n", config.Cfg.Port)
	log.Fatal(http.ListenAndServe(":"+config.Cfg.Port, handler))
}
