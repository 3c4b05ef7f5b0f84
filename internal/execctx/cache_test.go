package execctx

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache_CapacityBound(t *testing.T) {
	cache := NewFileCache(5)

	for i := 1; i <= 6; i++ {
		cache.Put(&FileCacheEntry{
			Path:     fmt.Sprintf("file%d.txt", i),
			Content:  "content",
			LoadedAt: time.Now(),
		})
	}

	if cache.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", cache.Len())
	}

	// The least-recently-loaded entry is gone from both the ordered list
	// and the index.
	if _, ok := cache.Get("file1.txt"); ok {
		t.Error("file1.txt should have been evicted from the index")
	}
	for _, path := range cache.Paths() {
		if path == "file1.txt" {
			t.Error("file1.txt should have been evicted from the ordered list")
		}
	}
}

func TestFileCache_MostRecentFirst(t *testing.T) {
	cache := NewFileCache(5)
	cache.Put(&FileCacheEntry{Path: "a.txt"})
	cache.Put(&FileCacheEntry{Path: "b.txt"})
	cache.Put(&FileCacheEntry{Path: "c.txt"})

	paths := cache.Paths()
	want := []string{"c.txt", "b.txt", "a.txt"}
	for i, path := range want {
		if paths[i] != path {
			t.Fatalf("expected order %v, got %v", want, paths)
		}
	}
}

func TestFileCache_ReloadMovesToFront(t *testing.T) {
	cache := NewFileCache(5)
	cache.Put(&FileCacheEntry{Path: "a.txt", Content: "v1"})
	cache.Put(&FileCacheEntry{Path: "b.txt"})
	cache.Put(&FileCacheEntry{Path: "a.txt", Content: "v2"})

	if cache.Len() != 2 {
		t.Fatalf("reload must not duplicate, got %d entries", cache.Len())
	}
	if cache.Paths()[0] != "a.txt" {
		t.Errorf("reloaded entry should be first, got %v", cache.Paths())
	}
	entry, ok := cache.Get("a.txt")
	if !ok || entry.Content != "v2" {
		t.Errorf("expected refreshed content, got %+v", entry)
	}
}

func TestFileCache_DefaultCapacity(t *testing.T) {
	cache := NewFileCache(0)
	for i := 0; i < 10; i++ {
		cache.Put(&FileCacheEntry{Path: fmt.Sprintf("f%d", i)})
	}
	if cache.Len() != 5 {
		t.Errorf("expected default capacity 5, got %d", cache.Len())
	}
}

func TestLoadFile_EvictionThroughContext(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.WorkDir = dir
	opts.OwnerDir = dir
	opts.CacheCapacity = 5
	ctx := New(opts)

	for i := 1; i <= 6; i++ {
		name := fmt.Sprintf("file%d.txt", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
		result := ctx.LoadFile(name)
		if !result.Success {
			t.Fatalf("LoadFile(%s) failed: %s", name, result.Error)
		}
	}

	stats := ctx.GetStats()
	if stats.CachedFiles != 5 {
		t.Errorf("expected 5 cached files, got %d", stats.CachedFiles)
	}
	if _, ok := ctx.CachedFile("file1.txt"); ok {
		t.Error("oldest file should have been evicted")
	}
	if _, ok := ctx.CachedFile("file6.txt"); !ok {
		t.Error("newest file should be cached")
	}
}
