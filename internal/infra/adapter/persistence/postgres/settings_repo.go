package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tldr-summary/internal/observability/metrics"
	"tldr-summary/internal/repository"
	"tldr-summary/internal/resilience/circuitbreaker"
	"tldr-summary/internal/resilience/retry"
)

const storeLabel = "postgres"

// SettingsRepo reads and writes the tldr_settings table. Every query runs
// through a circuit breaker and a short retry budget.
type SettingsRepo struct {
	db      *sql.DB
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
}

func NewSettingsRepo(db *sql.DB) repository.SettingsRepository {
	return &SettingsRepo{
		db:      db,
		breaker: circuitbreaker.New(circuitbreaker.StoreConfig("settings-store")),
		retry:   retry.StoreConfig(),
	}
}

func (repo *SettingsRepo) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	query, args := selectSettingsQuery(keys)

	var out map[string]string
	err := repo.run(ctx, func() error {
		rows, err := repo.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		values := make(map[string]string, len(keys))
		for rows.Next() {
			var key string
			var value sql.NullString
			if err := rows.Scan(&key, &value); err != nil {
				return err
			}
			if value.Valid {
				values[key] = value.String
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
		out = values
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	return out, nil
}

func (repo *SettingsRepo) Set(ctx context.Context, key, value string) error {
	const upsert = `
INSERT INTO tldr_settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	const remove = `DELETE FROM tldr_settings WHERE key = $1`

	err := repo.run(ctx, func() error {
		var err error
		if value == "" {
			_, err = repo.db.ExecContext(ctx, remove, key)
		} else {
			_, err = repo.db.ExecContext(ctx, upsert, key, value)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	return nil
}

func (repo *SettingsRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

// selectSettingsQuery builds "WHERE key IN ($1, ..., $n)" for keys.
func selectSettingsQuery(keys []string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("\nSELECT key, value\nFROM tldr_settings\nWHERE key IN (")
	args := make([]any, len(keys))
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("$" + strconv.Itoa(i+1))
		args[i] = k
	}
	sb.WriteString(")")
	return sb.String(), args
}

func (repo *SettingsRepo) run(ctx context.Context, fn func() error) error {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery(storeLabel, time.Since(start)) }()

	return retry.WithBackoff(ctx, repo.retry, func() error {
		_, err := circuitbreaker.Run(repo.breaker, func() (struct{}, error) {
			return struct{}{}, fn()
		})
		return err
	})
}
