// Package reports runs the four analytical queries against the loaded
// schema. All grouping, aggregation, ordering, and limiting happens
// server-side; Go only scans the finished rows.
package reports

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// Ages are computed as DATE_PART('year', AGE(asof, birthday)): AGE()
// truncates to completed units, matching the floor-of-elapsed-time
// contract for whole-year ages.

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// occupancyQuery counts students per room. LEFT JOIN keeps rooms with no
// students in the result with a zero count.
func occupancyQuery() (string, []any, error) {
	return builder().
		Select("r.id", "r.name", "COUNT(s.id)::int AS student_count").
		From("rooms r").
		LeftJoin("students s ON s.room_id = r.id").
		GroupBy("r.id", "r.name").
		OrderBy("r.id ASC").
		ToSql()
}

// lowestAvgAgeQuery ranks rooms by the mean of whole-year student ages,
// ascending, ties broken by room id. Rooms without students are excluded
// by the inner join.
func lowestAvgAgeQuery(asOf time.Time) (string, []any, error) {
	return builder().
		Select("r.id", "r.name").
		Column(squirrel.Expr("AVG(DATE_PART('year', AGE(?::date, s.birthday)))::float8 AS avg_age", asOf)).
		From("rooms r").
		Join("students s ON s.room_id = r.id").
		GroupBy("r.id", "r.name").
		OrderBy("avg_age ASC", "r.id ASC").
		Limit(roomstat.TopRoomsLimit).
		ToSql()
}

// highestAgeDiffQuery ranks rooms by the spread between the oldest and
// youngest student's whole-year age, descending, ties broken by room id.
// Rooms whose students share one age report a spread of 0 and stay in
// the candidate set.
func highestAgeDiffQuery(asOf time.Time) (string, []any, error) {
	return builder().
		Select("r.id", "r.name").
		Column(squirrel.Expr(
			"(MAX(DATE_PART('year', AGE(?::date, s.birthday))) - MIN(DATE_PART('year', AGE(?::date, s.birthday))))::int AS age_diff",
			asOf, asOf)).
		From("rooms r").
		Join("students s ON s.room_id = r.id").
		GroupBy("r.id", "r.name").
		OrderBy("age_diff DESC", "r.id ASC").
		Limit(roomstat.TopRoomsLimit).
		ToSql()
}

// mixedSexQuery selects rooms housing at least one student of every
// recognized sex value.
func mixedSexQuery() (string, []any, error) {
	return builder().
		Select("r.id", "r.name").
		From("rooms r").
		Join("students s ON s.room_id = r.id").
		GroupBy("r.id", "r.name").
		Having(fmt.Sprintf("COUNT(DISTINCT s.sex) = %d", len(roomstat.RecognizedSexes()))).
		OrderBy("r.id ASC").
		ToSql()
}
