// Package export serializes a ReportSet into a single JSON or XML document.
package export

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// jsonDocument keys each report by its stable name. Field order follows
// the pipeline: occupancy, the two ranked reports, mixed-sex.
type jsonDocument struct {
	AsOf             string                   `json:"as_of"`
	RoomStudentCount []roomstat.RoomCount     `json:"room_student_count"`
	LowestAvgAge     []roomstat.RoomAvgAge    `json:"lowest_avg_age_rooms"`
	HighestAgeDiff   []roomstat.RoomAgeSpread `json:"highest_age_diff_rooms"`
	MixedSexRooms    []roomstat.RoomRef       `json:"mixed_sex_rooms"`
}

// xmlDocument mirrors jsonDocument: one child element per report, one
// <room> element per record, record fields as child elements.
type xmlDocument struct {
	XMLName          xml.Name      `xml:"reports"`
	AsOf             string        `xml:"as_of,attr"`
	RoomStudentCount xmlRoomCounts `xml:"room_student_count"`
	LowestAvgAge     xmlAvgAges    `xml:"lowest_avg_age_rooms"`
	HighestAgeDiff   xmlAgeDiffs   `xml:"highest_age_diff_rooms"`
	MixedSexRooms    xmlRoomRefs   `xml:"mixed_sex_rooms"`
}

type xmlRoomCounts struct {
	Rooms []roomstat.RoomCount `xml:"room"`
}

type xmlAvgAges struct {
	Rooms []roomstat.RoomAvgAge `xml:"room"`
}

type xmlAgeDiffs struct {
	Rooms []roomstat.RoomAgeSpread `xml:"room"`
}

type xmlRoomRefs struct {
	Rooms []roomstat.RoomRef `xml:"room"`
}

// Exporter implements the roomstat.Exporter interface.
type Exporter struct{}

// NewExporter creates an Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export serializes the report set to the writer in the selected format.
// The document is marshaled in full before anything is written, so a
// serialization failure produces no partial output.
func (e *Exporter) Export(w io.Writer, set *roomstat.ReportSet, format roomstat.Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case roomstat.FormatJSON:
		data, err = e.marshalJSON(set)
	case roomstat.FormatXML:
		data, err = e.marshalXML(set)
	default:
		return fmt.Errorf("format %q: %w", format, roomstat.ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize report document: %v: %w", err, roomstat.ErrExportFailed)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report document: %v: %w", err, roomstat.ErrExportFailed)
	}
	return nil
}

func (e *Exporter) marshalJSON(set *roomstat.ReportSet) ([]byte, error) {
	doc := jsonDocument{
		AsOf:             set.AsOf.Format(time.DateOnly),
		RoomStudentCount: emptyIfNil(set.Occupancy),
		LowestAvgAge:     emptyIfNil(set.LowestAvgAge),
		HighestAgeDiff:   emptyIfNil(set.HighestAgeSpread),
		MixedSexRooms:    emptyIfNil(set.MixedSex),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (e *Exporter) marshalXML(set *roomstat.ReportSet) ([]byte, error) {
	doc := xmlDocument{
		AsOf:             set.AsOf.Format(time.DateOnly),
		RoomStudentCount: xmlRoomCounts{Rooms: set.Occupancy},
		LowestAvgAge:     xmlAvgAges{Rooms: set.LowestAvgAge},
		HighestAgeDiff:   xmlAgeDiffs{Rooms: set.HighestAgeSpread},
		MixedSexRooms:    xmlRoomRefs{Rooms: set.MixedSex},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// emptyIfNil keeps empty reports as [] rather than null in JSON output.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Verify Exporter implements the interface at compile time
var _ roomstat.Exporter = (*Exporter)(nil)
