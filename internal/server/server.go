package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/weekender/config"
	"github.com/mohammad-safakhou/weekender/internal/pipeline"
	"github.com/mohammad-safakhou/weekender/internal/search"
	"github.com/mohammad-safakhou/weekender/internal/store"
	"github.com/mohammad-safakhou/weekender/internal/telemetry"
	"github.com/mohammad-safakhou/weekender/provider"
	"github.com/mohammad-safakhou/weekender/tools/venue"
)

// Run starts the HTTP API. It owns the full dependency wiring: provider,
// scraper, orchestrator, store, index.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	llm, err := provider.NewFromConfig(cfg.LLM)
	if err != nil {
		return err
	}

	var enricher pipeline.Enricher
	if cfg.Enrichment.Enabled {
		var fetcher venue.Fetcher = venue.NewStaticFetcher(cfg.Enrichment.Timeout, cfg.Enrichment.InsecureSkipVerify)
		if cfg.Enrichment.UseHeadless {
			fetcher = venue.HeadlessFetcher{Timeout: cfg.Enrichment.Timeout}
		}
		enricher = venue.NewScraper(fetcher, nil, cfg.Enrichment.MinPause, cfg.Enrichment.MaxPause)
	}

	tele := telemetry.NewTelemetry(cfg.Telemetry, prometheus.DefaultRegisterer)
	orchLogger := log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	orch := pipeline.NewOrchestrator(llm, enricher, orchLogger, tele)

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	if err := store.Migrate("file://migrations", dsn, "up", 0); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}
	defer st.Close()
	if cfg.Storage.Redis.Host != "" {
		if err := st.AttachCache(ctx, cfg.Storage.Redis); err != nil {
			baseLogger.Printf("warn: redis cache unavailable: %v", err)
		}
	}

	idx, err := search.Open(cfg.Storage.IndexDir)
	if err != nil {
		return fmt.Errorf("open search index: %w", err)
	}
	defer idx.Close()

	h := &handlers{orch: orch, store: st, index: idx, telemetry: tele, logger: baseLogger}

	api := e.Group("/api")
	if cfg.Server.JWTSecret != "" {
		api.Use(bearerAuth([]byte(cfg.Server.JWTSecret)))
	}
	api.POST("/plan", h.plan)
	api.GET("/stats", h.stats)
	api.GET("/runs", h.listRuns)
	api.GET("/runs/search", h.searchRuns)
	api.GET("/runs/:id", h.getRun)

	return e.Start(cfg.Server.Addr)
}
