// Package execctx provides a persistent, timeout-bounded execution
// context for dynamically supplied JavaScript fragments. Variables
// survive across Execute calls within one session, every run is recorded
// in an append-only operation history, and loaded files are held in a
// small most-recently-loaded-first cache.
package execctx

import (
	"time"
)

// Options configures an execution context.
type Options struct {
	// WorkDir is the working directory recorded at context creation,
	// used as the last candidate when resolving relative paths.
	// Defaults to the process working directory.
	WorkDir string

	// OwnerDir is the directory owning this session (e.g. the project the
	// conversation is about). Used as a path-resolution candidate.
	OwnerDir string

	// CacheCapacity bounds the file cache (default: 5).
	CacheCapacity int

	// MaxFileSize is the largest file LoadFile and the in-VM fs helpers
	// will read, in bytes (default: 1MB).
	MaxFileSize int64
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		CacheCapacity: 5,
		MaxFileSize:   1024 * 1024,
	}
}

// Operation is one immutable history entry describing a single Execute
// invocation's outcome.
type Operation struct {
	Timestamp time.Time
	Code      string
	Success   bool
	Output    string
	Result    string
	Error     string
}

// ExecResult holds the outcome of one Execute call.
type ExecResult struct {
	// Success reports whether the run completed without fault or timeout.
	Success bool

	// Output is everything printed during the run, captured in full, plus
	// a trailing "Result: <value>" line when the result slot was set and
	// its value was not already printed.
	Output string

	// Result is the textual form of the result slot, if the executed code
	// set one.
	Result string

	// Error is the formatted failure ("<FaultKind>: <message>") when
	// Success is false.
	Error string

	// CodeExecuted echoes the code that ran.
	CodeExecuted string
}

// LoadResult holds the outcome of one LoadFile call.
type LoadResult struct {
	Success      bool
	Content      string
	ResolvedPath string
	Size         int64
	CacheEntries int
	Error        string
}

// Stats is a read-only summary of a session.
type Stats struct {
	SessionID       string
	SessionDuration time.Duration
	TotalOperations int
	Successful      int
	Failed          int
	FilesCreated    int
	FilesModified   int
	CachedFiles     int

	// RecentOperations holds copies of up to the 5 most recent history
	// entries, oldest first. It is a window over the log, never a
	// truncation of it.
	RecentOperations []Operation
}
