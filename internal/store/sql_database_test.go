package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	return newRetryingTestDB(t, 0, 0)
}

func newRetryingTestDB(t *testing.T, maxRetries uint64, backoff time.Duration) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	cfg := config.DB{MaxRetries: maxRetries, RetryBackoff: backoff}
	return newDB(conn, cfg, logger.Nop()), mock, conn
}

type classifierFunc func(err error) ErrorClassification

func (f classifierFunc) Classify(err error) ErrorClassification { return f(err) }

func expectPing(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ---- Acquire / Release ----

func TestDB_AcquireRelease(t *testing.T) {
	db, mock, _ := newTestDB(t)

	conn, err := db.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, conn)

	db.Release(conn)
	// releasing twice must not panic
	db.Release(conn)
	db.Release(nil)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Acquire_ClosedPool(t *testing.T) {
	db, mock, raw := newTestDB(t)
	mock.ExpectClose()
	require.NoError(t, raw.Close())

	conn, err := db.Acquire(context.Background())
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, ErrAcquireConnection)
}

func TestDB_Acquire_CancelledContext(t *testing.T) {
	db, _, _ := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Acquire(ctx)
	assert.ErrorIs(t, err, ErrAcquireConnection)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDB_NilPoolIsDisabled(t *testing.T) {
	var db *DB

	_, err := db.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolDisabled)
	assert.ErrorIs(t, db.Ping(context.Background()), ErrPoolDisabled)
	assert.NoError(t, db.Close())
}

// ---- Ping ----

func TestDB_Ping_Success(t *testing.T) {
	db, mock, _ := newTestDB(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	require.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Ping_QueryError(t *testing.T) {
	db, mock, _ := newTestDB(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnError(pgError(pgerrcode.CannotConnectNow))

	err := db.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---- Retries ----

func TestDB_Ping_RetriesTransientErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "connection failure", code: pgerrcode.ConnectionFailure},
		{name: "cannot connect now", code: pgerrcode.CannotConnectNow},
		{name: "too many connections", code: pgerrcode.TooManyConnections},
		{name: "admin shutdown", code: pgerrcode.AdminShutdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := newRetryingTestDB(t, 3, time.Millisecond)

			mock.ExpectQuery("SELECT 1").WillReturnError(pgError(tt.code))
			mock.ExpectQuery("SELECT 1").WillReturnError(pgError(tt.code))
			expectPing(mock)

			require.NoError(t, db.Ping(context.Background()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_Ping_DoesNotRetryPermanentErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "syntax error", code: pgerrcode.SyntaxError},
		{name: "undefined table", code: pgerrcode.UndefinedTable},
		{name: "serialization failure", code: pgerrcode.SerializationFailure},
		{name: "query canceled", code: pgerrcode.QueryCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := newRetryingTestDB(t, 3, time.Millisecond)

			mock.ExpectQuery("SELECT 1").WillReturnError(pgError(tt.code))

			err := db.Ping(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExecutingQuery)

			var pgErr *pgconn.PgError
			require.True(t, errors.As(err, &pgErr))
			assert.Equal(t, tt.code, pgErr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_Ping_GivesUpAfterMaxRetries(t *testing.T) {
	db, mock, _ := newRetryingTestDB(t, 2, time.Millisecond)

	for range 3 {
		mock.ExpectQuery("SELECT 1").WillReturnError(pgError(pgerrcode.ConnectionException))
	}

	err := db.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, pgerrcode.ConnectionException, pgErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Ping_StopsWaitingWhenContextEnds(t *testing.T) {
	db, mock, _ := newRetryingTestDB(t, 5, time.Hour)

	mock.ExpectQuery("SELECT 1").WillReturnError(pgError(pgerrcode.CannotConnectNow))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := db.Ping(ctx)
	require.Error(t, err)

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RetriesFollowClassificator(t *testing.T) {
	db, mock, _ := newRetryingTestDB(t, 3, time.Millisecond)

	var calls int
	db.errorClassificator = classifierFunc(func(err error) ErrorClassification {
		calls++
		return Retryable
	})

	mock.ExpectQuery("SELECT 1").WillReturnError(assert.AnError)
	expectPing(mock)

	require.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RetriesDisabled(t *testing.T) {
	db, mock, _ := newRetryingTestDB(t, 0, time.Millisecond)

	mock.ExpectQuery("SELECT 1").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	err := db.Ping(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---- Storages ----

func TestNewStorages_EmptyDSNDisablesPool(t *testing.T) {
	s, err := NewStorages(context.Background(), configWithDSN(""), logger.Nop())
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.Nil(t, s.DB)
	assert.NoError(t, s.Close())
}

func TestStorages_Close(t *testing.T) {
	db, mock, _ := newTestDB(t)
	mock.ExpectClose()

	s := &Storages{DB: db}
	assert.True(t, s.Enabled())
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
