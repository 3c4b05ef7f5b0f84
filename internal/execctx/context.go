package execctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
)

// ResultSlot is the distinguished namespace name executed code may assign
// to surface a non-printed value. It is cleared before every run.
const ResultSlot = "result"

// Context is a persistent execution context for one session. The variable
// namespace, operation history and file cache live for the whole session:
// a variable bound in one Execute call is visible to every later call.
//
// Context is not internally synchronized. Concurrent Execute calls on the
// same context are undefined; callers must serialize access externally.
type Context struct {
	sessionID string
	createdAt time.Time

	namespace map[string]any
	history   []Operation
	cache     *FileCache
	fs        *FSModule

	ownerDir string
	workDir  string

	successful    int
	failed        int
	filesCreated  int
	filesModified int

	maxFileSize int64
}

// New creates a fresh execution context for a new session.
func New(opts Options) *Context {
	if opts.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WorkDir = wd
		}
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultOptions().MaxFileSize
	}

	c := &Context{
		sessionID:   uuid.New().String(),
		createdAt:   time.Now(),
		namespace:   make(map[string]any),
		cache:       NewFileCache(opts.CacheCapacity),
		ownerDir:    opts.OwnerDir,
		workDir:     opts.WorkDir,
		maxFileSize: opts.MaxFileSize,
	}
	c.fs = newFSModule(c, opts.WorkDir, opts.MaxFileSize)
	return c
}

// SessionID returns the unique identifier of this session.
func (c *Context) SessionID() string {
	return c.sessionID
}

// Var returns the current value of a namespace variable.
func (c *Context) Var(name string) (any, bool) {
	v, ok := c.namespace[name]
	return v, ok
}

// SetVar binds a namespace variable, making it visible to executed code.
func (c *Context) SetVar(name string, value any) {
	c.namespace[name] = value
}

// Reset destroys the session state and starts a new session in place:
// fresh namespace, history, cache, counters and session ID. This is the
// only way the operation history shrinks.
func (c *Context) Reset() {
	c.sessionID = uuid.New().String()
	c.createdAt = time.Now()
	c.namespace = make(map[string]any)
	c.history = nil
	c.cache = NewFileCache(c.cache.capacity)
	c.successful = 0
	c.failed = 0
	c.filesCreated = 0
	c.filesModified = 0
}

// Execute runs code against the persistent namespace, bounded by a
// wall-clock timeout. Printed output is captured in full, even when the
// run times out. Faults are caught and formatted, never propagated; a
// failed run leaves the namespace as it was and the context fully usable.
//
// The timeout abandons the single invocation via a VM interrupt; like any
// cooperative interruption it cannot preempt native work that never
// yields to the interpreter.
func (c *Context) Execute(code string, timeout time.Duration) *ExecResult {
	if strings.TrimSpace(code) == "" {
		// Validation failures never reach the history.
		return &ExecResult{
			Error:        "ValidationError: code is empty",
			CodeExecuted: code,
		}
	}

	// The result slot only ever reflects the current run.
	delete(c.namespace, ResultSlot)

	vm := goja.New()
	var printed strings.Builder
	if err := c.setupVM(vm, &printed); err != nil {
		return c.record(code, &ExecResult{
			Error:        fmt.Sprintf("SetupError: %v", err),
			CodeExecuted: code,
		})
	}

	// Each run gets its own VM and its own interrupt watcher, so a timer
	// that fires late can only ever hit this run's discarded VM, never a
	// later call.
	timeoutCtx, cancel := context.WithTimeout(context.Background(), timeout)
	done := make(chan struct{})
	go func() {
		select {
		case <-timeoutCtx.Done():
			if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
				vm.Interrupt("deadline exceeded")
			}
		case <-done:
		}
	}()

	val, err := vm.RunString(code)
	close(done)
	cancel()

	if err != nil {
		result := &ExecResult{
			Output:       printed.String(),
			Error:        formatFault(err, timeout),
			CodeExecuted: code,
		}
		return c.record(code, result)
	}

	// Persist the run's globals back into the namespace. Only a
	// successful run mutates session state.
	c.mergeVariables(vm, code)

	result := &ExecResult{
		Success:      true,
		Output:       printed.String(),
		CodeExecuted: code,
	}

	if resultText, ok := c.takeResultSlot(vm); ok {
		result.Result = resultText
		if !strings.Contains(result.Output, resultText) {
			if result.Output != "" && !strings.HasSuffix(result.Output, "\n") {
				result.Output += "\n"
			}
			result.Output += "Result: " + resultText + "\n"
		}
	} else if repr := formatValue(val); repr != "" {
		// Echo a bare final expression the way a REPL would, distinct
		// from the explicit result slot.
		if !strings.Contains(result.Output, repr) {
			if result.Output != "" && !strings.HasSuffix(result.Output, "\n") {
				result.Output += "\n"
			}
			result.Output += "=> " + repr + "\n"
		}
	}

	return c.record(code, result)
}

// record appends one immutable operation entry and updates the running
// counters. Every run ends here, success, fault or timeout alike.
func (c *Context) record(code string, result *ExecResult) *ExecResult {
	c.history = append(c.history, Operation{
		Timestamp: time.Now(),
		Code:      code,
		Success:   result.Success,
		Output:    result.Output,
		Result:    result.Result,
		Error:     result.Error,
	})
	if result.Success {
		c.successful++
	} else {
		c.failed++
	}
	return result
}

// mergeVariables exports the run's globals back into the persistent
// namespace. Enumerating the global object's own keys picks up fresh
// bindings, compound assignments and in-place mutations alike; names
// installed by the context itself are skipped.
func (c *Context) mergeVariables(vm *goja.Runtime, code string) {
	for _, name := range vm.GlobalObject().Keys() {
		c.mergeName(vm, name)
	}
	// let and const live in the global lexical environment rather than on
	// the global object, so the enumeration above misses them.
	for _, name := range declaredNames(code) {
		c.mergeName(vm, name)
	}
}

func (c *Context) mergeName(vm *goja.Runtime, name string) {
	if isReservedName(name) {
		return
	}
	val := vm.Get(name)
	if val == nil || goja.IsUndefined(val) {
		return
	}
	// Functions cannot survive the VM they were compiled in.
	if _, isFn := goja.AssertFunction(val); isFn {
		return
	}
	c.namespace[name] = val.Export()
}

// takeResultSlot reads the distinguished result slot from the VM, stores
// it in the namespace and returns its textual form.
func (c *Context) takeResultSlot(vm *goja.Runtime) (string, bool) {
	val := vm.Get(ResultSlot)
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return "", false
	}
	exported := val.Export()
	c.namespace[ResultSlot] = exported
	return fmt.Sprintf("%v", exported), true
}

// formatFault renders a run failure as "<FaultKind>: <message>".
func formatFault(err error, timeout time.Duration) string {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Sprintf("Timeout: execution exceeded %s", timeout)
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		msg := exception.Value().String()
		if strings.Contains(msg, ":") {
			// JS errors already stringify as "TypeError: ...".
			return msg
		}
		return "RuntimeError: " + msg
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "SyntaxError") {
		return msg
	}
	return "RuntimeError: " + msg
}

// formatValue renders a final expression value for display. Undefined and
// null render as empty, matching "nothing to show".
func formatValue(val goja.Value) string {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return ""
	}
	exported := val.Export()
	switch v := exported.(type) {
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprintf("%v", item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprintf("%v", exported)
	}
}

var declarationPattern = regexp.MustCompile(`\b(?:let|const)\s+([A-Za-z_]\w*)`)

// declaredNames finds names the code introduces with let or const.
func declaredNames(code string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range declarationPattern.FindAllStringSubmatch(code, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// isReservedName filters JavaScript keywords and the names the context
// itself installs into every VM.
func isReservedName(name string) bool {
	switch name {
	case "break", "case", "catch", "continue", "debugger", "default",
		"delete", "do", "else", "finally", "for", "function", "if", "in",
		"instanceof", "new", "return", "switch", "this", "throw", "try",
		"typeof", "var", "void", "while", "with", "let", "const", "class",
		"export", "extends", "import", "super", "yield", "true", "false",
		"null", "undefined":
		return true
	case "print", "console", "re", "fs", ResultSlot:
		return true
	}
	return false
}
