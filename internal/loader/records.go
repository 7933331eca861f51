// Package loader parses the rooms/students input files and replaces the
// database contents in a single transaction.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// Raw record shapes mirror the input files. Pointer fields distinguish
// a missing key from a zero value during validation.
type rawRoom struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type rawStudent struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	Room     *int    `json:"room"`
	Sex      *string `json:"sex"`
	Birthday *string `json:"birthday"`
}

// Accepted birthday layouts: plain ISO date, the timestamp shape used by
// the upstream data dumps, and RFC 3339.
var birthdayLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
}

// ReadRooms parses and validates the rooms file. Any invalid record fails
// the whole read; the error names the record's position.
func ReadRooms(path string) ([]roomstat.Room, error) {
	raw, err := readJSONArray(path)
	if err != nil {
		return nil, err
	}

	rooms := make([]roomstat.Room, 0, len(raw))
	for i, rec := range raw {
		var r rawRoom
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("rooms file %s: record %d: %v: %w", path, i+1, err, roomstat.ErrInvalidInput)
		}
		room, err := validateRoom(r)
		if err != nil {
			return nil, fmt.Errorf("rooms file %s: record %d: %w", path, i+1, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// ReadStudents parses and validates the students file with the same
// fail-fast semantics as ReadRooms.
func ReadStudents(path string) ([]roomstat.Student, error) {
	raw, err := readJSONArray(path)
	if err != nil {
		return nil, err
	}

	students := make([]roomstat.Student, 0, len(raw))
	for i, rec := range raw {
		var r rawStudent
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("students file %s: record %d: %v: %w", path, i+1, err, roomstat.ErrInvalidInput)
		}
		student, err := validateStudent(r)
		if err != nil {
			return nil, fmt.Errorf("students file %s: record %d: %w", path, i+1, err)
		}
		students = append(students, student)
	}
	return students, nil
}

// readJSONArray splits the file into raw records. Each record is decoded
// individually by the callers, so a type mismatch inside one record is
// reported with that record's position instead of failing the whole array.
func readJSONArray(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v: %w", path, err, roomstat.ErrInvalidInput)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, roomstat.ErrInvalidInput)
	}
	return records, nil
}

func validateRoom(r rawRoom) (roomstat.Room, error) {
	if r.ID == nil {
		return roomstat.Room{}, missingField("id")
	}
	if r.Name == nil || *r.Name == "" {
		return roomstat.Room{}, missingField("name")
	}
	return roomstat.Room{ID: *r.ID, Name: *r.Name}, nil
}

func validateStudent(r rawStudent) (roomstat.Student, error) {
	if r.ID == nil {
		return roomstat.Student{}, missingField("id")
	}
	if r.Name == nil || *r.Name == "" {
		return roomstat.Student{}, missingField("name")
	}
	if r.Room == nil {
		return roomstat.Student{}, missingField("room")
	}
	if r.Sex == nil {
		return roomstat.Student{}, missingField("sex")
	}
	if r.Birthday == nil {
		return roomstat.Student{}, missingField("birthday")
	}

	sex, err := roomstat.ParseSex(*r.Sex)
	if err != nil {
		return roomstat.Student{}, err
	}

	birthday, err := parseBirthday(*r.Birthday)
	if err != nil {
		return roomstat.Student{}, err
	}

	return roomstat.Student{
		ID:       *r.ID,
		Name:     *r.Name,
		Sex:      sex,
		Birthday: birthday,
		RoomID:   *r.Room,
	}, nil
}

func parseBirthday(s string) (time.Time, error) {
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable birthday %q (expected ISO-8601 date): %w", s, roomstat.ErrInvalidInput)
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q: %w", name, roomstat.ErrInvalidInput)
}
