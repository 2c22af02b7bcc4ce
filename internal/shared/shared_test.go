package shared

import (
	"bytes"
	"testing"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" || second == "" {
		t.Fatal("expected non-empty ids")
	}
	if first == second {
		t.Errorf("expected unique ids, got %s twice", first)
	}
	if len(first) != 36 {
		t.Errorf("expected uuid format, got %q", first)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}
}

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("database should be reachable: %v", err)
	}

	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("failed to read busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("expected busy timeout of 5000ms, got %d", timeout)
	}
}
