package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// defaultBatchSize bounds the number of INSERTs sent per round-trip.
// Internal tuning only; not part of the loader's contract.
const defaultBatchSize = 500

const (
	insertRoomSQL    = `INSERT INTO rooms (id, name) VALUES ($1, $2)`
	insertStudentSQL = `INSERT INTO students (id, name, sex, birthday, room_id) VALUES ($1, $2, $3, $4, $5)`
)

// Loader implements the roomstat.DataLoader interface on top of a pgx pool.
//
// Reload semantics are truncate-and-replace: both tables are cleared inside
// the load transaction before inserting, so re-running against a populated
// database is idempotent and a failure mid-load rolls back to the prior state.
type Loader struct {
	pool      *pgxpool.Pool
	logger    roomstat.Logger
	batchSize int
}

// New creates a Loader. Panics on nil dependencies: wiring mistakes should
// fail at startup, not during the load.
func New(pool *pgxpool.Pool, logger roomstat.Logger) *Loader {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{pool: pool, logger: logger, batchSize: defaultBatchSize}
}

// Load reads and validates both files, then replaces the database contents
// in one transaction. Rooms are inserted before students to satisfy the
// foreign key; deletes run in the opposite order.
func (l *Loader) Load(ctx context.Context, roomsPath, studentsPath string) (roomstat.LoadResult, error) {
	rooms, err := ReadRooms(roomsPath)
	if err != nil {
		return roomstat.LoadResult{}, err
	}
	students, err := ReadStudents(studentsPath)
	if err != nil {
		return roomstat.LoadResult{}, err
	}

	l.logger.Verbose("parsed %d rooms and %d students", len(rooms), len(students))

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return roomstat.LoadResult{}, fmt.Errorf("failed to begin load transaction: %v: %w", err, roomstat.ErrExecutionFailed)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := l.clearTables(ctx, tx); err != nil {
		return roomstat.LoadResult{}, err
	}
	if err := l.insertRooms(ctx, tx, rooms); err != nil {
		return roomstat.LoadResult{}, err
	}
	if err := l.insertStudents(ctx, tx, students); err != nil {
		return roomstat.LoadResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return roomstat.LoadResult{}, fmt.Errorf("failed to commit load transaction: %v: %w", err, roomstat.ErrExecutionFailed)
	}

	return roomstat.LoadResult{Rooms: len(rooms), Students: len(students)}, nil
}

// clearTables deletes students before rooms, respecting the FK direction.
func (l *Loader) clearTables(ctx context.Context, tx pgx.Tx) error {
	for _, table := range []string{"students", "rooms"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %v: %w", table, err, roomstat.ErrExecutionFailed)
		}
	}
	return nil
}

func (l *Loader) insertRooms(ctx context.Context, tx pgx.Tx, rooms []roomstat.Room) error {
	for start := 0; start < len(rooms); start += l.batchSize {
		chunk := rooms[start:min(start+l.batchSize, len(rooms))]

		batch := &pgx.Batch{}
		for _, room := range chunk {
			batch.Queue(insertRoomSQL, room.ID, room.Name)
		}

		results := tx.SendBatch(ctx, batch)
		for _, room := range chunk {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert room %d: %v: %w", room.ID, err, roomstat.ErrExecutionFailed)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to complete room batch insert: %v: %w", err, roomstat.ErrExecutionFailed)
		}
	}
	return nil
}

func (l *Loader) insertStudents(ctx context.Context, tx pgx.Tx, students []roomstat.Student) error {
	for start := 0; start < len(students); start += l.batchSize {
		chunk := students[start:min(start+l.batchSize, len(students))]

		batch := &pgx.Batch{}
		for _, s := range chunk {
			batch.Queue(insertStudentSQL, s.ID, s.Name, string(s.Sex), s.Birthday, s.RoomID)
		}

		results := tx.SendBatch(ctx, batch)
		for _, s := range chunk {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert student %d (room %d): %v: %w", s.ID, s.RoomID, err, roomstat.ErrExecutionFailed)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to complete student batch insert: %v: %w", err, roomstat.ErrExecutionFailed)
		}
	}
	return nil
}

// Verify Loader implements the interface at compile time
var _ roomstat.DataLoader = (*Loader)(nil)
