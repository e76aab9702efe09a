package store

import "errors"

// Pool errors. Callers should use [errors.Is] to match against these values;
// the underlying driver error is always wrapped alongside.
var (
	// ErrAcquireConnection is returned when the pool cannot hand out a
	// connection (pool closed, context cancelled, server unreachable).
	ErrAcquireConnection = errors.New("failed to acquire database connection")

	// ErrPoolDisabled is returned by operations on a nil pool, i.e. when no
	// DSN was configured.
	ErrPoolDisabled = errors.New("database pool is disabled")

	// ErrConnectingDatabase is returned when the initial connection attempt
	// fails at startup.
	ErrConnectingDatabase = errors.New("error connecting database")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")
)
