package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeGarbageFile(dir string) error {
	return os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0o600)
}

func TestFileStoreSaveAndLoadRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	fs.SaveAsync("tools", "k1", persistedEntry{
		Value:     []byte(`"hello"`),
		CreatedAt: time.Now(),
		TTL:       time.Minute,
		Priority:  High,
		Tags:      []string{"a", "b"},
	})
	fs.Wait()

	records, err := fs.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Namespace != "tools" || rec.Key != "k1" {
		t.Errorf("record = %+v, want namespace=tools key=k1", rec)
	}
	if string(rec.Entry.Value) != `"hello"` {
		t.Errorf("value = %q, want %q", rec.Entry.Value, `"hello"`)
	}
	if rec.Entry.Priority != High {
		t.Errorf("priority = %v, want High", rec.Entry.Priority)
	}
}

func TestFileStoreDeleteRemovesRecord(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	fs.SaveAsync("tools", "k1", persistedEntry{Value: []byte(`"v"`), TTL: time.Minute})
	fs.Wait()

	fs.DeleteAsync("tools", "k1")
	fs.Wait()

	records, err := fs.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0 after delete", len(records))
	}
}

func TestFileStoreLoadAllSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	fs.SaveAsync("tools", "k1", persistedEntry{Value: []byte(`"v"`), TTL: time.Minute})
	fs.Wait()

	if err := writeGarbageFile(dir); err != nil {
		t.Fatalf("writeGarbageFile: %v", err)
	}

	records, err := fs.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error instead of skipping malformed file: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1 (malformed file skipped)", len(records))
	}
}

func TestFileStoreFilenameAndEnvelopeShape(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	fs.SaveAsync("research", "query:gdp", persistedEntry{
		Value:     []byte(`{"score":0.9}`),
		CreatedAt: time.UnixMilli(1700000000000),
		TTL:       90 * time.Second,
		Priority:  High,
		Tags:      []string{"econ"},
	})
	fs.Wait()

	sum := sha256.Sum256([]byte("query:gdp"))
	wantName := "cache_research_" + hex.EncodeToString(sum[:]) + ".json"
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("expected file %s, got error: %v", wantName, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("envelope did not decode: %v", err)
	}
	if string(env.Data) != `{"score":0.9}` {
		t.Errorf("data = %s, want raw JSON value", env.Data)
	}
	if env.Timestamp != 1700000000000 {
		t.Errorf("timestamp = %d, want ms-epoch 1700000000000", env.Timestamp)
	}
	if env.TTL != 90000 {
		t.Errorf("ttl = %d, want 90000ms", env.TTL)
	}
	if env.Priority != High {
		t.Errorf("priority = %v, want High", env.Priority)
	}
}

func TestEnginePreloadSkipsExpiredRecords(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	fs.SaveAsync("tools", "stale", persistedEntry{
		Value:     []byte(`"v"`),
		CreatedAt: time.Now().Add(-time.Hour),
		TTL:       time.Minute,
	})
	fs.SaveAsync("tools", "fresh", persistedEntry{
		Value:     []byte(`"v"`),
		CreatedAt: time.Now(),
		TTL:       time.Hour,
	})
	fs.Wait()

	e := NewEngine(Config{SweepInterval: time.Hour, Store: fs})
	defer e.Close()

	if err := e.Preload(context.Background()); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	if e.Has("tools", "stale") {
		t.Error("expected expired persisted entry to be skipped")
	}
	if !e.Has("tools", "fresh") {
		t.Error("expected unexpired persisted entry to be loaded")
	}
}
