package roomstat

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB abstracts the database operations the schema manager and query
// engine need. Both *pgxpool.Pool and pgx.Tx satisfy it, so read-only
// components do not care whether they run inside a transaction.
//
// Thread-Safety: Implementations follow their underlying connection's
// guarantees. Connection pools are safe for concurrent use.
type DB interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Query executes a query that returns zero or more rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connector establishes database connections. The single implementation
// uses standard credentials; the interface exists so tests can inject
// pre-built pools.
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The returned pool should be closed by the caller when done.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
