package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vvka-141/roomstat/internal/db"
	testhelpers "github.com/vvka-141/roomstat/internal/testing"
	"github.com/vvka-141/roomstat/pkg/roomstat"
)

func TestStandardConnector_Connect(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	pool, err := db.NewStandardConnector(cfg).Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	var result int
	if err := pool.QueryRow(context.Background(), "SELECT 1").Scan(&result); err != nil {
		t.Fatalf("Query on connected pool failed: %v", err)
	}
	if result != 1 {
		t.Errorf("Expected 1, got %d", result)
	}
}

func TestStandardConnector_Connect_BadCredentials(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	cfg.Password = "definitely-wrong-password"

	_, err = db.NewStandardConnector(cfg).Connect(context.Background())
	if err == nil {
		t.Fatal("Expected authentication failure")
	}
	if !errors.Is(err, roomstat.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed, got: %v", err)
	}
	if roomstat.ExitCodeForError(err) != roomstat.ExitConnectionError {
		t.Errorf("Expected connection error exit code, got %d", roomstat.ExitCodeForError(err))
	}
}
