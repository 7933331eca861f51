package roomstat

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sex is a student's recorded sex. Only the values in RecognizedSexes
// are accepted on input.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// RecognizedSexes returns the set of accepted sex values.
// The mixed-sex report requires a room to contain every value in this set.
func RecognizedSexes() []Sex {
	return []Sex{SexMale, SexFemale}
}

// ParseSex validates and normalizes a sex value from an input file.
// Matching is case-insensitive; the stored value is always uppercase.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SexMale):
		return SexMale, nil
	case string(SexFemale):
		return SexFemale, nil
	default:
		return "", fmt.Errorf("unrecognized sex value %q (expected one of M, F): %w", s, ErrInvalidInput)
	}
}

// Room is a dormitory room loaded from the rooms file.
type Room struct {
	ID   int
	Name string
}

// Student is a student loaded from the students file.
// RoomID references the room the student is assigned to (many students
// to one room); the database enforces the reference.
type Student struct {
	ID       int
	Name     string
	Sex      Sex
	Birthday time.Time
	RoomID   int
}

// Format selects the serialization format for the exported report document.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat validates a format selector from the CLI.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatJSON), "":
		return FormatJSON, nil
	case string(FormatXML):
		return FormatXML, nil
	default:
		return "", fmt.Errorf("format %q (expected json or xml): %w", s, ErrUnsupportedFormat)
	}
}

// RoomCount is one record of the room occupancy report.
// Rooms with no students are included with Students == 0.
type RoomCount struct {
	RoomID   int    `json:"room_id" xml:"room_id"`
	Name     string `json:"name" xml:"name"`
	Students int    `json:"student_count" xml:"student_count"`
}

// RoomAvgAge is one record of the lowest-average-age report.
// AvgAge is the mean of whole-year student ages as of the run's reference date.
type RoomAvgAge struct {
	RoomID int     `json:"room_id" xml:"room_id"`
	Name   string  `json:"name" xml:"name"`
	AvgAge float64 `json:"avg_age" xml:"avg_age"`
}

// RoomAgeSpread is one record of the highest-age-spread report.
// AgeDiff is the oldest student's whole-year age minus the youngest's.
type RoomAgeSpread struct {
	RoomID  int    `json:"room_id" xml:"room_id"`
	Name    string `json:"name" xml:"name"`
	AgeDiff int    `json:"age_diff" xml:"age_diff"`
}

// RoomRef identifies a room in reports that carry no aggregate value,
// such as the mixed-sex report.
type RoomRef struct {
	RoomID int    `json:"room_id" xml:"room_id"`
	Name   string `json:"name" xml:"name"`
}

// ReportSet holds the result of all four reports from a single run.
// AsOf is the reference date used for every age computation in the set,
// captured once so the two age-based reports are mutually consistent.
type ReportSet struct {
	AsOf             time.Time
	Occupancy        []RoomCount
	LowestAvgAge     []RoomAvgAge
	HighestAgeSpread []RoomAgeSpread
	MixedSex         []RoomRef
}

// LoadResult reports how many records a load inserted.
type LoadResult struct {
	Rooms    int
	Students int
}

// ConnectionConfig holds PostgreSQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
}

// RunConfig contains all parameters needed for a full pipeline run
// (schema, load, reports, export).
type RunConfig struct {
	// RoomsPath is the path to the rooms JSON file
	RoomsPath string

	// StudentsPath is the path to the students JSON file
	StudentsPath string

	// Format selects the output serialization (json or xml)
	Format Format

	// OutputPath is where the report document is written.
	// "-" writes to stdout.
	OutputPath string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.RoomsPath == "" {
		errs = append(errs, fmt.Errorf("RoomsPath is required: %w", ErrInvalidConfig))
	}

	if c.StudentsPath == "" {
		errs = append(errs, fmt.Errorf("StudentsPath is required: %w", ErrInvalidConfig))
	}

	if c.Format != FormatJSON && c.Format != FormatXML {
		errs = append(errs, fmt.Errorf("Format must be json or xml, got %q: %w", c.Format, ErrInvalidConfig))
	}

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
