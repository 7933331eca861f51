// Package services wires the pipeline phases into a single run:
// schema, load, reports, export.
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// RunnerService implements the full pipeline over injected components.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type RunnerService struct {
	schema   roomstat.SchemaManager
	loader   roomstat.DataLoader
	reporter roomstat.Reporter
	exporter roomstat.Exporter
	logger   roomstat.Logger

	// now provides the as-of date for age computations; overridable in tests.
	now func() time.Time

	// stdout receives the document when OutputPath is "-"; overridable in tests.
	stdout io.Writer
}

// NewRunnerService creates a RunnerService with all dependencies injected.
// Panics on nil dependencies: these are wiring errors that should fail
// loudly at startup rather than surface as nil dereferences mid-run.
func NewRunnerService(
	schema roomstat.SchemaManager,
	loader roomstat.DataLoader,
	reporter roomstat.Reporter,
	exporter roomstat.Exporter,
	logger roomstat.Logger,
) *RunnerService {
	if schema == nil {
		panic("schema cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if exporter == nil {
		panic("exporter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &RunnerService{
		schema:   schema,
		loader:   loader,
		reporter: reporter,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
		stdout:   os.Stdout,
	}
}

// Run executes the pipeline: create schema, replace data, run the four
// reports, export the document. Every phase is fatal on error. The
// document is serialized to memory first and written out in one step, so
// a failure anywhere leaves no partial output behind.
func (s *RunnerService) Run(ctx context.Context, config roomstat.RunConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	s.logger.Verbose("creating schema")
	if err := s.schema.CreateTables(ctx); err != nil {
		return err
	}

	s.logger.Verbose("loading %s and %s", config.RoomsPath, config.StudentsPath)
	result, err := s.loader.Load(ctx, config.RoomsPath, config.StudentsPath)
	if err != nil {
		return err
	}
	s.logger.Info("loaded %d rooms and %d students", result.Rooms, result.Students)

	// One reference date for the whole report set keeps the two
	// age-based reports mutually consistent.
	asOf := s.now()
	s.logger.Verbose("running reports as of %s", asOf.Format(time.DateOnly))

	set, err := s.reporter.Reports(ctx, asOf)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(&buf, set, config.Format); err != nil {
		return err
	}

	return s.writeDocument(config.OutputPath, buf.Bytes())
}

func (s *RunnerService) writeDocument(path string, data []byte) error {
	if path == "-" {
		if _, err := s.stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write report document to stdout: %v: %w", err, roomstat.ErrExportFailed)
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %v: %w", dir, err, roomstat.ErrExportFailed)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report document %s: %v: %w", path, err, roomstat.ErrExportFailed)
	}

	s.logger.Info("report document written to %s", path)
	return nil
}
