package services

import (
	"context"
	"io"
	"time"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

type mockSchemaManager struct {
	tablesErr  error
	indexesErr error
	tableCalls int
	indexCalls int
}

func (m *mockSchemaManager) CreateTables(_ context.Context) error {
	m.tableCalls++
	return m.tablesErr
}

func (m *mockSchemaManager) CreateIndexes(_ context.Context) error {
	m.indexCalls++
	return m.indexesErr
}

type mockDataLoader struct {
	result roomstat.LoadResult
	err    error
	calls  int
}

func (m *mockDataLoader) Load(_ context.Context, _, _ string) (roomstat.LoadResult, error) {
	m.calls++
	return m.result, m.err
}

type mockReporter struct {
	set   *roomstat.ReportSet
	err   error
	asOf  time.Time
	calls int
}

func (m *mockReporter) Reports(_ context.Context, asOf time.Time) (*roomstat.ReportSet, error) {
	m.calls++
	m.asOf = asOf
	if m.err != nil {
		return nil, m.err
	}
	if m.set != nil {
		return m.set, nil
	}
	return &roomstat.ReportSet{AsOf: asOf}, nil
}

type mockExporter struct {
	err     error
	calls   int
	payload string
	format  roomstat.Format
}

func (m *mockExporter) Export(w io.Writer, _ *roomstat.ReportSet, format roomstat.Format) error {
	m.calls++
	m.format = format
	if m.err != nil {
		return m.err
	}
	if m.payload == "" {
		m.payload = "{}"
	}
	_, err := io.WriteString(w, m.payload)
	return err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
