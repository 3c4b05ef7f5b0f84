package execctx

import (
	"time"
)

// FileCacheEntry is one cached file, keyed by the path string the caller
// originally supplied.
type FileCacheEntry struct {
	Path         string
	ResolvedPath string
	Content      string
	Size         int64
	LoadedAt     time.Time
}

// FileCache holds recently loaded files, most recently loaded first, with
// a hard capacity bound. The ordered list and the path index are always
// updated together and never diverge.
//
// FileCache is not internally synchronized; it is owned and mutated only
// by its execution context.
type FileCache struct {
	capacity int
	entries  []*FileCacheEntry
	index    map[string]*FileCacheEntry
}

// NewFileCache creates a cache bounded to capacity entries. A
// non-positive capacity falls back to the default of 5.
func NewFileCache(capacity int) *FileCache {
	if capacity <= 0 {
		capacity = 5
	}
	return &FileCache{
		capacity: capacity,
		index:    make(map[string]*FileCacheEntry),
	}
}

// Put inserts entry at the front. Re-loading an already cached path moves
// it to the front instead of duplicating it. When capacity is exceeded,
// the oldest entry and its index entry are evicted in the same step.
func (fc *FileCache) Put(entry *FileCacheEntry) {
	if existing, ok := fc.index[entry.Path]; ok {
		fc.remove(existing)
	}

	fc.entries = append([]*FileCacheEntry{entry}, fc.entries...)
	fc.index[entry.Path] = entry

	for len(fc.entries) > fc.capacity {
		oldest := fc.entries[len(fc.entries)-1]
		fc.entries = fc.entries[:len(fc.entries)-1]
		delete(fc.index, oldest.Path)
	}
}

// Get looks up a cached file by its originally supplied path.
func (fc *FileCache) Get(path string) (*FileCacheEntry, bool) {
	entry, ok := fc.index[path]
	return entry, ok
}

// Len reports the number of cached entries.
func (fc *FileCache) Len() int {
	return len(fc.entries)
}

// Paths returns the cached paths, most recently loaded first.
func (fc *FileCache) Paths() []string {
	paths := make([]string, len(fc.entries))
	for i, entry := range fc.entries {
		paths[i] = entry.Path
	}
	return paths
}

func (fc *FileCache) remove(entry *FileCacheEntry) {
	for i, e := range fc.entries {
		if e == entry {
			fc.entries = append(fc.entries[:i], fc.entries[i+1:]...)
			break
		}
	}
	delete(fc.index, entry.Path)
}
