package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// Engine implements the roomstat.Reporter interface.
// Queries are read-only and independent; the engine runs them
// sequentially on the shared connection.
type Engine struct {
	db roomstat.DB
}

// NewEngine creates a report Engine bound to the given connection.
func NewEngine(db roomstat.DB) *Engine {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Engine{db: db}
}

// Reports executes all four reports. The same asOf date feeds both
// age-based reports so their results are mutually consistent.
func (e *Engine) Reports(ctx context.Context, asOf time.Time) (*roomstat.ReportSet, error) {
	occupancy, err := e.Occupancy(ctx)
	if err != nil {
		return nil, err
	}

	lowestAvgAge, err := e.LowestAvgAge(ctx, asOf)
	if err != nil {
		return nil, err
	}

	highestAgeDiff, err := e.HighestAgeDiff(ctx, asOf)
	if err != nil {
		return nil, err
	}

	mixedSex, err := e.MixedSexRooms(ctx)
	if err != nil {
		return nil, err
	}

	return &roomstat.ReportSet{
		AsOf:             asOf,
		Occupancy:        occupancy,
		LowestAvgAge:     lowestAvgAge,
		HighestAgeSpread: highestAgeDiff,
		MixedSex:         mixedSex,
	}, nil
}

// Occupancy returns every room with its student count, zero-student
// rooms included, ordered by room id.
func (e *Engine) Occupancy(ctx context.Context) ([]roomstat.RoomCount, error) {
	sql, args, err := occupancyQuery()
	if err != nil {
		return nil, buildError(roomstat.ReportRoomStudentCount, err)
	}

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError(roomstat.ReportRoomStudentCount, err)
	}
	defer rows.Close()

	var records []roomstat.RoomCount
	for rows.Next() {
		var rec roomstat.RoomCount
		if err := rows.Scan(&rec.RoomID, &rec.Name, &rec.Students); err != nil {
			return nil, scanError(roomstat.ReportRoomStudentCount, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(roomstat.ReportRoomStudentCount, err)
	}
	return records, nil
}

// LowestAvgAge returns up to TopRoomsLimit rooms with the lowest average
// whole-year student age as of the given date.
func (e *Engine) LowestAvgAge(ctx context.Context, asOf time.Time) ([]roomstat.RoomAvgAge, error) {
	sql, args, err := lowestAvgAgeQuery(asOf)
	if err != nil {
		return nil, buildError(roomstat.ReportLowestAvgAgeRooms, err)
	}

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError(roomstat.ReportLowestAvgAgeRooms, err)
	}
	defer rows.Close()

	var records []roomstat.RoomAvgAge
	for rows.Next() {
		var rec roomstat.RoomAvgAge
		if err := rows.Scan(&rec.RoomID, &rec.Name, &rec.AvgAge); err != nil {
			return nil, scanError(roomstat.ReportLowestAvgAgeRooms, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(roomstat.ReportLowestAvgAgeRooms, err)
	}
	return records, nil
}

// HighestAgeDiff returns up to TopRoomsLimit rooms with the largest
// whole-year age spread among their students as of the given date.
func (e *Engine) HighestAgeDiff(ctx context.Context, asOf time.Time) ([]roomstat.RoomAgeSpread, error) {
	sql, args, err := highestAgeDiffQuery(asOf)
	if err != nil {
		return nil, buildError(roomstat.ReportHighestAgeDiff, err)
	}

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError(roomstat.ReportHighestAgeDiff, err)
	}
	defer rows.Close()

	var records []roomstat.RoomAgeSpread
	for rows.Next() {
		var rec roomstat.RoomAgeSpread
		if err := rows.Scan(&rec.RoomID, &rec.Name, &rec.AgeDiff); err != nil {
			return nil, scanError(roomstat.ReportHighestAgeDiff, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(roomstat.ReportHighestAgeDiff, err)
	}
	return records, nil
}

// MixedSexRooms returns every room housing students of all recognized
// sexes, ordered by room id.
func (e *Engine) MixedSexRooms(ctx context.Context) ([]roomstat.RoomRef, error) {
	sql, args, err := mixedSexQuery()
	if err != nil {
		return nil, buildError(roomstat.ReportMixedSexRooms, err)
	}

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError(roomstat.ReportMixedSexRooms, err)
	}
	defer rows.Close()

	var records []roomstat.RoomRef
	for rows.Next() {
		var rec roomstat.RoomRef
		if err := rows.Scan(&rec.RoomID, &rec.Name); err != nil {
			return nil, scanError(roomstat.ReportMixedSexRooms, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(roomstat.ReportMixedSexRooms, err)
	}
	return records, nil
}

func buildError(report string, err error) error {
	return fmt.Errorf("failed to build %s query: %v: %w", report, err, roomstat.ErrExecutionFailed)
}

func queryError(report string, err error) error {
	return fmt.Errorf("failed to run %s report: %v: %w", report, err, roomstat.ErrExecutionFailed)
}

func scanError(report string, err error) error {
	return fmt.Errorf("failed to scan %s row: %v: %w", report, err, roomstat.ErrExecutionFailed)
}

// Verify Engine implements the interface at compile time
var _ roomstat.Reporter = (*Engine)(nil)
