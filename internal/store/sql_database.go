// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-service-template/internal/logger"
)

// DB is the PostgreSQL connection pool. It satisfies [Pool].
//
// Acquire and Ping retry transient failures, as judged by the error
// classificator, with exponential backoff bounded by maxRetries and by the
// caller's context.
//
// A nil *DB is a valid, disabled pool: every operation reports
// [ErrPoolDisabled].
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator

	maxRetries   uint64
	retryBackoff time.Duration

	logger *logger.Logger
}

var _ Pool = (*DB)(nil)

// Acquire checks a dedicated connection out of the pool.
func (db *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	if db == nil || db.DB == nil {
		return nil, ErrPoolDisabled
	}

	var conn *sql.Conn
	err := db.withRetry(ctx, "DB.Acquire", func(ctx context.Context) error {
		var err error
		conn, err = db.Conn(ctx)
		return err
	})
	if err != nil {
		db.logger.Err(err).Str("func", "DB.Acquire").Msg("error acquiring connection")
		return nil, fmt.Errorf("%w: %w", ErrAcquireConnection, err)
	}

	return conn, nil
}

// Release returns conn to the pool. Releasing nil is a no-op.
func (db *DB) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) && db != nil {
		db.logger.Err(err).Str("func", "DB.Release").Msg("error releasing connection")
	}
}

// Ping checks a connection out and runs a trivial round-trip query on it.
// Both steps are retried together.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return ErrPoolDisabled
	}

	query, args, err := sq.Select("1").ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = db.withRetry(ctx, "DB.Ping", func(ctx context.Context) error {
		conn, err := db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAcquireConnection, err)
		}
		defer db.Release(conn)

		var one int
		if err = conn.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	if err != nil {
		db.logger.Err(err).Str("func", "DB.Ping").Msg("ping failed")
		return err
	}

	return nil
}

// Close closes the underlying pool. Closing a disabled pool is a no-op.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// withRetry runs fn until it succeeds, fails with a non-retryable error,
// exhausts maxRetries or ctx ends. When ctx ends while waiting, the returned
// error wraps both the last failure and the context error.
func (db *DB) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if db.maxRetries == 0 || db.retryBackoff <= 0 {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(db.maxRetries, retry.NewExponential(db.retryBackoff))

	var (
		attempt int
		last    error
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		last = fn(ctx)
		if last == nil || !db.retryable(last) {
			return last
		}

		db.logger.Warn().Err(last).
			Str("func", op).
			Int("attempt", attempt).
			Msg("transient database error, retrying")
		return retry.RetryableError(last)
	})
	if err != nil && last != nil && !errors.Is(err, last) {
		return fmt.Errorf("%w: %w", last, err)
	}
	return err
}

func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
