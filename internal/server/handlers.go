package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/weekender/internal/pipeline"
	"github.com/mohammad-safakhou/weekender/internal/search"
	"github.com/mohammad-safakhou/weekender/internal/store"
)

// planRunner is the pipeline surface the handlers need; the orchestrator
// satisfies it and tests substitute a stub.
type planRunner interface {
	Run(ctx context.Context, text string, opts pipeline.RunOptions) (pipeline.RunResult, error)
}

type runStore interface {
	SaveRun(ctx context.Context, run pipeline.RunResult) error
	GetRun(ctx context.Context, id string) (pipeline.RunResult, error)
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
}

type runIndex interface {
	IndexRun(run pipeline.RunResult) error
	Search(query string, limit int) ([]search.Hit, error)
}

type runStats interface {
	Totals() (total, failed int64)
}

type handlers struct {
	orch      planRunner
	store     runStore
	index     runIndex
	telemetry runStats
	logger    *log.Logger
}

type planRequest struct {
	Text          string `json:"text"`
	GroupSize     int    `json:"group_size"`
	IncludeBudget bool   `json:"include_budget"`
}

type planResponse struct {
	ID        string               `json:"id"`
	State     string               `json:"state"`
	Itinerary string               `json:"itinerary"`
	Events    []pipeline.StageEvent `json:"events"`
}

func (h *handlers) plan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	run, err := h.orch.Run(c.Request().Context(), req.Text, pipeline.RunOptions{
		GroupSize:     req.GroupSize,
		IncludeBudget: req.IncludeBudget,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	if h.store != nil {
		if err := h.store.SaveRun(c.Request().Context(), run); err != nil {
			h.logger.Printf("warn: saving run %s failed: %v", run.ID, err)
		} else if h.index != nil {
			if err := h.index.IndexRun(run); err != nil {
				h.logger.Printf("warn: indexing run %s failed: %v", run.ID, err)
			}
		}
	}

	return c.JSON(http.StatusOK, planResponse{
		ID:        run.ID,
		State:     run.State,
		Itinerary: run.Itinerary,
		Events:    run.Events,
	})
}

func (h *handlers) getRun(c echo.Context) error {
	run, err := h.store.GetRun(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

func (h *handlers) listRuns(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	runs, err := h.store.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *handlers) stats(c echo.Context) error {
	total, failed := h.telemetry.Totals()
	return c.JSON(http.StatusOK, map[string]int64{
		"runs_total":  total,
		"runs_failed": failed,
	})
}

func (h *handlers) searchRuns(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	hits, err := h.index.Search(q, limit)
	if err != nil {
		return err
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	return c.JSON(http.StatusOK, hits)
}
