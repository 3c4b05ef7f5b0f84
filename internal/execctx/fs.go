package execctx

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
)

// FSModule exposes filesystem helpers to executed code. Reads are bounded
// by MaxFileSize; writes report back to the owning context so the session
// counters track files created and modified by executed code.
type FSModule struct {
	owner *Context

	// WorkDir anchors relative paths.
	WorkDir string

	// MaxFileSize is the largest file Read will return in full.
	MaxFileSize int64

	// ExcludeDirs is a list of directory names hidden from listings.
	ExcludeDirs []string
}

func newFSModule(owner *Context, workDir string, maxFileSize int64) *FSModule {
	return &FSModule{
		owner:       owner,
		WorkDir:     workDir,
		MaxFileSize: maxFileSize,
		ExcludeDirs: []string{".git", "node_modules", "__pycache__", ".venv", "vendor"},
	}
}

// resolvePath converts a path to an absolute path anchored at WorkDir.
func (f *FSModule) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(f.WorkDir, path))
}

// List returns the entries in a directory.
func (f *FSModule) List(path string) ([]map[string]any, error) {
	entries, err := os.ReadDir(f.resolvePath(path))
	if err != nil {
		return nil, err
	}

	var result []map[string]any
	for _, entry := range entries {
		if entry.IsDir() && f.isExcludedDir(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		result = append(result, map[string]any{
			"name":  entry.Name(),
			"isDir": entry.IsDir(),
			"size":  info.Size(),
		})
	}
	return result, nil
}

// Read reads a file's contents, truncating past MaxFileSize.
func (f *FSModule) Read(path string) (string, error) {
	resolved := f.resolvePath(path)

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrInvalid
	}

	if info.Size() > f.MaxFileSize {
		file, err := os.Open(resolved)
		if err != nil {
			return "", err
		}
		defer file.Close()

		buf := make([]byte, f.MaxFileSize)
		n, err := file.Read(buf)
		if err != nil {
			return "", err
		}
		return string(buf[:n]) + "\n... [truncated]", nil
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Write writes content to a file, creating it if needed, and bumps the
// session's created/modified counters.
func (f *FSModule) Write(path, content string) error {
	resolved := f.resolvePath(path)
	_, statErr := os.Stat(resolved)
	existed := statErr == nil

	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return err
	}

	if existed {
		f.owner.filesModified++
	} else {
		f.owner.filesCreated++
	}
	return nil
}

// Append appends content to a file, creating it if needed.
func (f *FSModule) Append(path, content string) error {
	resolved := f.resolvePath(path)
	_, statErr := os.Stat(resolved)
	existed := statErr == nil

	file, err := os.OpenFile(resolved, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return err
	}

	if existed {
		f.owner.filesModified++
	} else {
		f.owner.filesCreated++
	}
	return nil
}

// Glob finds files matching a glob pattern.
func (f *FSModule) Glob(pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(f.WorkDir, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, match := range matches {
		if f.containsExcludedDir(match) {
			continue
		}
		if rel, err := filepath.Rel(f.WorkDir, match); err == nil {
			result = append(result, rel)
		} else {
			result = append(result, match)
		}
	}
	return result, nil
}

// Exists checks if a file or directory exists.
func (f *FSModule) Exists(path string) bool {
	_, err := os.Stat(f.resolvePath(path))
	return err == nil
}

func (f *FSModule) isExcludedDir(name string) bool {
	for _, excluded := range f.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

func (f *FSModule) containsExcludedDir(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if f.isExcludedDir(part) {
			return true
		}
	}
	return false
}

// setupFSModule adds the 'fs' object with filesystem functions to the VM.
func setupFSModule(vm *goja.Runtime, fsModule *FSModule) error {
	fs := vm.NewObject()

	// fs.list(path) -> array of {name, isDir, size}
	list := func(call goja.FunctionCall) goja.Value {
		path := "."
		if len(call.Arguments) > 0 {
			path = call.Arguments[0].String()
		}
		result, err := fsModule.List(path)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(result)
	}
	if err := fs.Set("list", list); err != nil {
		return err
	}

	// fs.read(path) -> string content
	read := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("fs.read requires 1 argument: path"))
		}
		content, err := fsModule.Read(call.Arguments[0].String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(content)
	}
	if err := fs.Set("read", read); err != nil {
		return err
	}

	// fs.write(path, content)
	write := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("fs.write requires 2 arguments: path, content"))
		}
		if err := fsModule.Write(call.Arguments[0].String(), call.Arguments[1].String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}
	if err := fs.Set("write", write); err != nil {
		return err
	}

	// fs.append(path, content)
	appendFn := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("fs.append requires 2 arguments: path, content"))
		}
		if err := fsModule.Append(call.Arguments[0].String(), call.Arguments[1].String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}
	if err := fs.Set("append", appendFn); err != nil {
		return err
	}

	// fs.glob(pattern) -> array of matching paths
	glob := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("fs.glob requires 1 argument: pattern"))
		}
		matches, err := fsModule.Glob(call.Arguments[0].String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(matches)
	}
	if err := fs.Set("glob", glob); err != nil {
		return err
	}

	// fs.exists(path) -> boolean
	exists := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("fs.exists requires 1 argument: path"))
		}
		return vm.ToValue(fsModule.Exists(call.Arguments[0].String()))
	}
	if err := fs.Set("exists", exists); err != nil {
		return err
	}

	return vm.Set("fs", fs)
}
