// Package schema creates the rooms/students tables and their secondary indexes.
package schema

import (
	"context"
	"fmt"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// DDL statements. All are idempotent so repeated runs against an
// initialized database are safe.
const (
	createRoomsTable = `
		CREATE TABLE IF NOT EXISTS rooms (
			id   INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`

	createStudentsTable = `
		CREATE TABLE IF NOT EXISTS students (
			id       INTEGER PRIMARY KEY,
			name     VARCHAR(255) NOT NULL,
			sex      VARCHAR(1) NOT NULL,
			birthday DATE NOT NULL,
			room_id  INTEGER NOT NULL REFERENCES rooms(id)
		)`

	// idx_students_room_id serves the occupancy count and every per-room
	// aggregate; room_id is the join and group key of all four reports.
	createRoomIDIndex = `CREATE INDEX IF NOT EXISTS idx_students_room_id ON students (room_id)`

	// idx_students_room_sex lets the mixed-sex report resolve
	// COUNT(DISTINCT sex) per room without touching the heap.
	createRoomSexIndex = `CREATE INDEX IF NOT EXISTS idx_students_room_sex ON students (room_id, sex)`

	// idx_students_birthday supports the age aggregates.
	createBirthdayIndex = `CREATE INDEX IF NOT EXISTS idx_students_birthday ON students (birthday)`
)

// Manager creates the database schema for a run.
type Manager struct {
	db roomstat.DB
}

// NewManager creates a schema Manager bound to the given connection.
func NewManager(db roomstat.DB) *Manager {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Manager{db: db}
}

// CreateTables creates the rooms and students tables if they do not exist.
// Rooms come first: students carries a foreign key to rooms.
func (m *Manager) CreateTables(ctx context.Context) error {
	for _, stmt := range []string{createRoomsTable, createStudentsTable} {
		if _, err := m.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %v: %w", err, roomstat.ErrExecutionFailed)
		}
	}
	return nil
}

// CreateIndexes creates the secondary indexes that accelerate the report
// queries. Runnable independently of a data load.
func (m *Manager) CreateIndexes(ctx context.Context) error {
	for _, stmt := range []string{createRoomIDIndex, createRoomSexIndex, createBirthdayIndex} {
		if _, err := m.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %v: %w", err, roomstat.ErrExecutionFailed)
		}
	}
	return nil
}

// Verify Manager implements the interface at compile time
var _ roomstat.SchemaManager = (*Manager)(nil)
