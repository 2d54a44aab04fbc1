package backend

import (
	"context"
	"path/filepath"
	"testing"

	"bolso/internal/config"
)

func TestBuildMemory(t *testing.T) {
	cfg := &config.Config{DataBackend: "memory"}
	result, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected a store")
	}
	if result.Cleanup != nil {
		t.Fatalf("memory backend needs no cleanup")
	}
}

func TestBuildSQLite(t *testing.T) {
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "bolso.db"),
	}
	result, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Cleanup == nil {
		t.Fatalf("sqlite backend must provide cleanup")
	}
	if err := result.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestBuildUnknownType(t *testing.T) {
	cfg := &config.Config{DataBackend: "dynamo"}
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{Memory, SQLite, Sheets} {
		if !valid.IsValid() {
			t.Fatalf("%s should be valid", valid)
		}
	}
	if Type("redis").IsValid() {
		t.Fatalf("unknown type should be invalid")
	}
}
