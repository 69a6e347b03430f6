package cache

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestGetByTagsReturnsUnionNotIntersection(t *testing.T) {
	e := NewEngine(Config{SweepInterval: time.Hour})
	defer e.Close()
	ctx := context.Background()

	e.Set(ctx, "tools", "a", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"read"}})
	e.Set(ctx, "tools", "b", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"write"}})
	e.Set(ctx, "tools", "c", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"read", "write"}})

	entries := e.GetByTags("tools", []string{"read", "write"})

	var keys []string
	for _, ent := range entries {
		keys = append(keys, ent.Key)
	}
	sort.Strings(keys)

	if len(keys) != 3 {
		t.Fatalf("keys = %v, want all 3 entries (OR semantics)", keys)
	}
}

func TestGetByTagsDoesNotDoubleCountMultiTaggedEntry(t *testing.T) {
	e := NewEngine(Config{SweepInterval: time.Hour})
	defer e.Close()
	ctx := context.Background()

	e.Set(ctx, "tools", "c", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"read", "write"}})

	entries := e.GetByTags("tools", []string{"read", "write"})
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (deduped across matching tags)", len(entries))
	}
}

func TestInvalidateByTagsRemovesMatchingEntries(t *testing.T) {
	e := NewEngine(Config{SweepInterval: time.Hour})
	defer e.Close()
	ctx := context.Background()

	e.Set(ctx, "tools", "a", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"danger"}})
	e.Set(ctx, "tools", "b", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"safe"}})

	n := e.InvalidateByTags("tools", []string{"danger"})
	if n != 1 {
		t.Errorf("invalidated = %d, want 1", n)
	}
	if e.Has("tools", "a") {
		t.Error("expected tagged entry to be removed")
	}
	if !e.Has("tools", "b") {
		t.Error("expected untagged entry to survive")
	}
}

func TestInvalidateByTagsUnknownTagIsNoop(t *testing.T) {
	e := NewEngine(Config{SweepInterval: time.Hour})
	defer e.Close()
	ctx := context.Background()
	e.Set(ctx, "tools", "a", []byte("v"), SetOptions{TTL: time.Minute, Tags: []string{"safe"}})

	if n := e.InvalidateByTags("tools", []string{"missing"}); n != 0 {
		t.Errorf("invalidated = %d, want 0", n)
	}
	if !e.Has("tools", "a") {
		t.Error("expected entry to survive an invalidation with no matching tag")
	}
}

func TestGetByTagsExcludesExpiredEntries(t *testing.T) {
	e := NewEngine(Config{SweepInterval: time.Hour})
	defer e.Close()
	ctx := context.Background()
	e.Set(ctx, "tools", "a", []byte("v"), SetOptions{TTL: 5 * time.Millisecond, Tags: []string{"x"}})

	time.Sleep(15 * time.Millisecond)

	entries := e.GetByTags("tools", []string{"x"})
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0 for expired entry", len(entries))
	}
}
