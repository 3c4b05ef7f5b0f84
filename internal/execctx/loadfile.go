package execctx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LoadFile resolves path, reads the file and inserts it at the front of
// the file cache, indexed by the path string as supplied. Resolution
// tries, in order: the path itself if absolute, then relative to the
// current working directory, the owner directory, and the working
// directory recorded at context creation. The first existing regular
// file wins.
//
// Failures are structured, never raised, and never logged to the
// operation history.
func (c *Context) LoadFile(path string) *LoadResult {
	if path == "" {
		return &LoadResult{
			Error:        "ResolutionError: empty path",
			CacheEntries: c.cache.Len(),
		}
	}

	resolved, ok := c.resolveFile(path)
	if !ok {
		return &LoadResult{
			Error:        fmt.Sprintf("ResolutionError: no such file: %s", path),
			CacheEntries: c.cache.Len(),
		}
	}

	// Past this point the path resolved: anything that still goes wrong
	// is a read fault, not a resolution one.
	info, err := os.Stat(resolved)
	if err != nil {
		return &LoadResult{
			Error:        fmt.Sprintf("ReadError: %v", err),
			CacheEntries: c.cache.Len(),
		}
	}
	if info.Size() > c.maxFileSize {
		return &LoadResult{
			Error:        fmt.Sprintf("ReadError: %s exceeds max file size (%d bytes)", path, c.maxFileSize),
			CacheEntries: c.cache.Len(),
		}
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return &LoadResult{
			Error:        fmt.Sprintf("ReadError: %v", err),
			CacheEntries: c.cache.Len(),
		}
	}

	c.cache.Put(&FileCacheEntry{
		Path:         path,
		ResolvedPath: resolved,
		Content:      string(content),
		Size:         info.Size(),
		LoadedAt:     time.Now(),
	})

	return &LoadResult{
		Success:      true,
		Content:      string(content),
		ResolvedPath: resolved,
		Size:         info.Size(),
		CacheEntries: c.cache.Len(),
	}
}

// CachedFile looks up a previously loaded file by its original path.
func (c *Context) CachedFile(path string) (*FileCacheEntry, bool) {
	return c.cache.Get(path)
}

// CachedPaths lists cached paths, most recently loaded first.
func (c *Context) CachedPaths() []string {
	return c.cache.Paths()
}

// resolveFile returns the first candidate that exists as a regular file.
func (c *Context) resolveFile(path string) (string, bool) {
	var candidates []string
	if filepath.IsAbs(path) {
		candidates = []string{filepath.Clean(path)}
	} else {
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, path))
		}
		if c.ownerDir != "" {
			candidates = append(candidates, filepath.Join(c.ownerDir, path))
		}
		if c.workDir != "" {
			candidates = append(candidates, filepath.Join(c.workDir, path))
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}
