package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/roomstat/pkg/roomstat"
)

func sampleReportSet() *roomstat.ReportSet {
	return &roomstat.ReportSet{
		AsOf: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Occupancy: []roomstat.RoomCount{
			{RoomID: 1, Name: "Room #1", Students: 2},
			{RoomID: 2, Name: "Room #2", Students: 0},
		},
		LowestAvgAge: []roomstat.RoomAvgAge{
			{RoomID: 1, Name: "Room #1", AvgAge: 20.5},
		},
		HighestAgeSpread: []roomstat.RoomAgeSpread{
			{RoomID: 1, Name: "Room #1", AgeDiff: 27},
		},
		MixedSex: []roomstat.RoomRef{
			{RoomID: 1, Name: "Room #1"},
		},
	}
}

func TestExport_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, sampleReportSet(), roomstat.FormatJSON))

	var doc struct {
		AsOf             string                   `json:"as_of"`
		RoomStudentCount []roomstat.RoomCount     `json:"room_student_count"`
		LowestAvgAge     []roomstat.RoomAvgAge    `json:"lowest_avg_age_rooms"`
		HighestAgeDiff   []roomstat.RoomAgeSpread `json:"highest_age_diff_rooms"`
		MixedSexRooms    []roomstat.RoomRef       `json:"mixed_sex_rooms"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2025-06-01", doc.AsOf)
	assert.Equal(t, sampleReportSet().Occupancy, doc.RoomStudentCount)
	assert.Equal(t, sampleReportSet().LowestAvgAge, doc.LowestAvgAge)
	assert.Equal(t, sampleReportSet().HighestAgeSpread, doc.HighestAgeDiff)
	assert.Equal(t, sampleReportSet().MixedSex, doc.MixedSexRooms)
}

func TestExport_XMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, sampleReportSet(), roomstat.FormatXML))

	var doc xmlDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2025-06-01", doc.AsOf)
	assert.Equal(t, sampleReportSet().Occupancy, doc.RoomStudentCount.Rooms)
	assert.Equal(t, sampleReportSet().LowestAvgAge, doc.LowestAvgAge.Rooms)
	assert.Equal(t, sampleReportSet().HighestAgeSpread, doc.HighestAgeDiff.Rooms)
	assert.Equal(t, sampleReportSet().MixedSex, doc.MixedSexRooms.Rooms)
}

func TestExport_FormatsAgree(t *testing.T) {
	// The same records must survive both serializations unchanged.
	var jsonBuf, xmlBuf bytes.Buffer
	set := sampleReportSet()
	require.NoError(t, NewExporter().Export(&jsonBuf, set, roomstat.FormatJSON))
	require.NoError(t, NewExporter().Export(&xmlBuf, set, roomstat.FormatXML))

	var fromJSON jsonDocument
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	var fromXML xmlDocument
	require.NoError(t, xml.Unmarshal(xmlBuf.Bytes(), &fromXML))

	assert.Equal(t, fromJSON.RoomStudentCount, fromXML.RoomStudentCount.Rooms)
	assert.Equal(t, fromJSON.LowestAvgAge, fromXML.LowestAvgAge.Rooms)
	assert.Equal(t, fromJSON.HighestAgeDiff, fromXML.HighestAgeDiff.Rooms)
	assert.Equal(t, fromJSON.MixedSexRooms, fromXML.MixedSexRooms.Rooms)
}

func TestExport_EmptyReportsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	set := &roomstat.ReportSet{AsOf: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, NewExporter().Export(&buf, set, roomstat.FormatJSON))

	out := buf.String()
	assert.NotContains(t, out, "null")
	assert.Contains(t, out, `"room_student_count": []`)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewExporter().Export(&buf, sampleReportSet(), roomstat.Format("csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, roomstat.ErrUnsupportedFormat))
	assert.Zero(t, buf.Len(), "nothing should be written on failure")
}

func TestExport_XMLHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, sampleReportSet(), roomstat.FormatXML))
	assert.True(t, strings.HasPrefix(buf.String(), xml.Header))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExport_WriteFailure(t *testing.T) {
	err := NewExporter().Export(failingWriter{}, sampleReportSet(), roomstat.FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, roomstat.ErrExportFailed))
}
