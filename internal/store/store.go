// Package store persists the unified catalog in PostgreSQL with a Redis
// read-through cache of the full record set.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/types"
)

const (
	snapshotKey = "catalog:snapshot"
	snapshotTTL = 5 * time.Minute
)

var errNoDatabase = errors.New("store: no database configured")

var modelColumns = []string{
	"position", "model_name", "model_id", "deployment_type", "latency_support",
	"input_modalities", "output_modalities", "attributes",
}

// CatalogStore reads and replaces the models table. It satisfies
// catalog.RecordSource.
type CatalogStore struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

// New wraps an open pool. A nil redis client disables caching.
func New(db *pgxpool.Pool, rdb *redis.Client) *CatalogStore {
	return &CatalogStore{db: db, redis: rdb}
}

// Connect opens a pgx pool sized from cfg and pings it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewRedis returns a client for the first configured address, or nil when
// none is configured.
func NewRedis(cfg config.RedisConfig) *redis.Client {
	if len(cfg.Addresses) == 0 || cfg.Addresses[0] == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addresses[0],
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Save replaces the stored catalog with records in one transaction,
// preserving their order.
func (s *CatalogStore) Save(ctx context.Context, records []types.ModelRecord) error {
	if s.db == nil {
		return errNoDatabase
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM models`); err != nil {
		return fmt.Errorf("clear models: %w", err)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		attrs := r.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		rows[i] = []any{
			i, r.ModelName, r.ModelID, r.DeploymentType, r.LatencySupport,
			r.InputModalities, r.OutputModalities, attrs,
		}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"models"}, modelColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy models: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	s.invalidate(ctx)
	slog.Info("catalog saved", "records", len(records))
	return nil
}

// Load returns the stored catalog in saved order. An unreachable database
// or an empty table is catalog.ErrCatalogUnavailable.
func (s *CatalogStore) Load(ctx context.Context) ([]types.ModelRecord, error) {
	if records, ok := s.cached(ctx); ok {
		return records, nil
	}
	if s.db == nil {
		return nil, fmt.Errorf("load catalog: %w: %w", catalog.ErrCatalogUnavailable, errNoDatabase)
	}

	rows, err := s.db.Query(ctx, `
		SELECT model_name, model_id, deployment_type, latency_support,
		       input_modalities, output_modalities, attributes
		FROM models
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query models: %w: %w", catalog.ErrCatalogUnavailable, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[types.ModelRecord])
	if err != nil {
		return nil, fmt.Errorf("scan models: %w: %w", catalog.ErrCatalogUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("load catalog: models table is empty: %w", catalog.ErrCatalogUnavailable)
	}

	s.cache(ctx, records)
	return records, nil
}

func (s *CatalogStore) cached(ctx context.Context) ([]types.ModelRecord, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var records []types.ModelRecord
	if err := json.Unmarshal(data, &records); err != nil || len(records) == 0 {
		return nil, false
	}
	return records, true
}

func (s *CatalogStore) cache(ctx context.Context, records []types.ModelRecord) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		slog.Warn("catalog cache write failed", "error", err)
	}
}

func (s *CatalogStore) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, snapshotKey).Err(); err != nil {
		slog.Warn("catalog cache invalidation failed", "error", err)
	}
}
