package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/weekender/config"
	"github.com/mohammad-safakhou/weekender/internal/pipeline"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Store persists completed pipeline runs in Postgres with an optional
// Redis read-through cache. Only terminal runs are saved; partial
// results are never persisted.
type Store struct {
	db     *sql.DB
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewWithDSN opens a Postgres-backed store.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{
		db:     db,
		logger: log.New(log.Writer(), "[STORE] ", log.LstdFlags),
	}, nil
}

// AttachCache wires a Redis cache in front of run lookups. TTL bounds
// how long cached runs are served.
func (s *Store) AttachCache(ctx context.Context, cfg config.RedisConfig) error {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	s.cache = client
	s.ttl = cfg.TTL
	if s.ttl == 0 {
		s.ttl = 24 * time.Hour
	}
	return nil
}

// Close releases the database and cache connections.
func (s *Store) Close() error {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	return s.db.Close()
}

func cacheKey(id string) string { return "weekender:run:" + id }

// SaveRun persists a completed run. Runs that did not reach the done
// state are rejected.
func (s *Store) SaveRun(ctx context.Context, run pipeline.RunResult) error {
	if run.State != pipeline.StateDone {
		return fmt.Errorf("refusing to persist run %s in state %q", run.ID, run.State)
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, request_text, location, itinerary, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		run.ID, run.Request.Text, run.Intent.Location, run.Itinerary, payload, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(run.ID), payload, s.ttl).Err(); err != nil {
			s.logger.Printf("warn: caching run %s failed: %v", run.ID, err)
		}
	}
	return nil
}

// GetRun fetches a run by ID, preferring the cache.
func (s *Store) GetRun(ctx context.Context, id string) (pipeline.RunResult, error) {
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, cacheKey(id)).Bytes(); err == nil {
			var run pipeline.RunResult
			if err := json.Unmarshal(payload, &run); err == nil {
				return run, nil
			}
		}
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.RunResult{}, ErrNotFound
	}
	if err != nil {
		return pipeline.RunResult{}, fmt.Errorf("select run: %w", err)
	}

	var run pipeline.RunResult
	if err := json.Unmarshal(payload, &run); err != nil {
		return pipeline.RunResult{}, fmt.Errorf("unmarshal run: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(id), payload, s.ttl).Err(); err != nil {
			s.logger.Printf("warn: caching run %s failed: %v", id, err)
		}
	}
	return run, nil
}

// RunSummary is the list view of a stored run.
type RunSummary struct {
	ID          string    `json:"id"`
	RequestText string    `json:"request_text"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_text, location, created_at
		FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.RequestText, &r.Location, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
