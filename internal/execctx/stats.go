package execctx

import (
	"time"
)

// maxRecentOperations bounds the history window returned by GetStats.
const maxRecentOperations = 5

// GetStats returns a read-only summary of the session. The recent
// operations are copies of a window over the history; the stored log is
// never truncated by reading it.
func (c *Context) GetStats() *Stats {
	stats := &Stats{
		SessionID:       c.sessionID,
		SessionDuration: time.Since(c.createdAt),
		TotalOperations: len(c.history),
		Successful:      c.successful,
		Failed:          c.failed,
		FilesCreated:    c.filesCreated,
		FilesModified:   c.filesModified,
		CachedFiles:     c.cache.Len(),
	}

	start := len(c.history) - maxRecentOperations
	if start < 0 {
		start = 0
	}
	stats.RecentOperations = append(stats.RecentOperations, c.history[start:]...)

	return stats
}

// History returns a copy of the full operation log, oldest first.
func (c *Context) History() []Operation {
	return append([]Operation(nil), c.history...)
}
