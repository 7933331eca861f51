package roomstat

import (
	"context"
	"io"
	"time"
)

// SchemaManager creates the database schema the pipeline loads into.
// Both operations are idempotent and safe to run against an already
// initialized database.
type SchemaManager interface {
	// CreateTables creates the rooms and students tables if they do not exist.
	CreateTables(ctx context.Context) error

	// CreateIndexes creates the secondary indexes that accelerate the
	// report queries. Runnable independently of a data load.
	CreateIndexes(ctx context.Context) error
}

// DataLoader parses the two input files and replaces the database
// contents with their records in a single transaction.
type DataLoader interface {
	// Load reads, validates, and bulk-inserts both files.
	// Existing rows are cleared first (truncate-and-replace), so a failed
	// load leaves the database unchanged and a repeated load is idempotent.
	Load(ctx context.Context, roomsPath, studentsPath string) (LoadResult, error)
}

// Reporter runs the four analytical queries. All aggregation happens
// server-side; the caller only receives the finished record sets.
type Reporter interface {
	// Reports executes all four reports using asOf as the reference date
	// for age computations.
	Reports(ctx context.Context, asOf time.Time) (*ReportSet, error)
}

// Exporter serializes a ReportSet into a single document.
// The destination is supplied by the caller; the exporter never
// chooses output locations itself.
type Exporter interface {
	Export(w io.Writer, set *ReportSet, format Format) error
}
