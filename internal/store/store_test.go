package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]RecordStore {
	t.Helper()

	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("NewFile error: %v", err)
	}
	sqlite, err := NewSQLite(filepath.Join(dir, "db", "hirekit.db"))
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}

	stores := map[string]RecordStore{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Load(ctx, "jobTrackerPreferences"); err != nil || ok {
				t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
			}

			if err := s.Save(ctx, "jobTrackerPreferences", []byte(`{"minMatchScore":40}`)); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if err := s.Save(ctx, "jobTrackerPreferences", []byte(`{"minMatchScore":55}`)); err != nil {
				t.Fatalf("overwrite error: %v", err)
			}

			got, ok, err := s.Load(ctx, "jobTrackerPreferences")
			if err != nil || !ok {
				t.Fatalf("expected stored value, got ok=%v err=%v", ok, err)
			}
			if string(got) != `{"minMatchScore":55}` {
				t.Fatalf("unexpected value %s", got)
			}

			if err := s.Delete(ctx, "jobTrackerPreferences"); err != nil {
				t.Fatalf("Delete error: %v", err)
			}
			if err := s.Delete(ctx, "jobTrackerPreferences"); err != nil {
				t.Fatalf("deleting a missing key should succeed, got %v", err)
			}
			if _, ok, _ := s.Load(ctx, "jobTrackerPreferences"); ok {
				t.Fatalf("expected key to be gone")
			}
		})
	}
}

func TestRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, "  ", []byte("{}")); err == nil {
				t.Fatalf("expected error for empty key")
			}
			if _, _, err := s.Load(ctx, ""); err == nil {
				t.Fatalf("expected error for empty key")
			}
		})
	}
}

func TestFileStoreEscapesKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	key := "../escape/attempt"
	if err := s.Save(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.IsDir() {
			t.Fatalf("unexpected directory %q in store", e.Name())
		}
		if e.Name() == "..%2Fescape%2Fattempt.json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("escaped record file not found in %v", entries)
	}

	got, ok, err := s.Load(ctx, key)
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("unexpected load result %q ok=%v err=%v", got, ok, err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile error: %v", err)
	}
	if err := first.Save(ctx, "resumeBuilderData", []byte(`{"summary":"x"}`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	_ = first.Close()

	second, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile error: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if _, ok, err := second.Load(ctx, "resumeBuilderData"); err != nil || !ok {
		t.Fatalf("expected persisted record, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	value := []byte(`{"a":1}`)
	if err := m.Save(ctx, "k", value); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	value[0] = 'X'

	got, _, _ := m.Load(ctx, "k")
	if string(got) != `{"a":1}` {
		t.Fatalf("stored value was aliased: %s", got)
	}
	got[0] = 'Y'
	again, _, _ := m.Load(ctx, "k")
	if string(again) != `{"a":1}` {
		t.Fatalf("loaded value was aliased: %s", again)
	}

	if keys := m.Keys(); len(keys) != 1 || keys[0] != "k" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		backend Backend
		path    string
		wantErr bool
	}{
		{backend: BackendMemory},
		{backend: BackendFile, path: filepath.Join(dir, "files")},
		{backend: "", path: filepath.Join(dir, "default")},
		{backend: "SQLite", path: filepath.Join(dir, "hirekit.db")},
		{backend: "redis", wantErr: true},
		{backend: BackendFile, path: "", wantErr: true},
	}

	for _, tt := range tests {
		s, err := Open(tt.backend, tt.path)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Open(%q) expected error", tt.backend)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Open(%q) error: %v", tt.backend, err)
		}
		_ = s.Close()
	}
}
