package execctx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFSModule_WriteTracksCreatedAndModified(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.WorkDir = dir
	ctx := New(opts)

	result := ctx.Execute(`fs.write("out.txt", "hello")`, time.Second)
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}

	stats := ctx.GetStats()
	if stats.FilesCreated != 1 {
		t.Errorf("expected 1 file created, got %d", stats.FilesCreated)
	}
	if stats.FilesModified != 0 {
		t.Errorf("expected 0 files modified, got %d", stats.FilesModified)
	}

	if result := ctx.Execute(`fs.write("out.txt", "changed")`, time.Second); !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	stats = ctx.GetStats()
	if stats.FilesCreated != 1 || stats.FilesModified != 1 {
		t.Errorf("expected 1 created + 1 modified, got %d/%d", stats.FilesCreated, stats.FilesModified)
	}
}

func TestFSModule_ReadFromExecutedCode(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "input.txt"), []byte("line one"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.WorkDir = dir
	ctx := New(opts)

	result := ctx.Execute(`print(fs.read("input.txt"))`, time.Second)
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !strings.Contains(result.Output, "line one") {
		t.Errorf("expected file content in output, got: %q", result.Output)
	}
}

func TestFSModule_ReadMissingFileIsRecoverableFault(t *testing.T) {
	ctx := newTestContext(t)

	result := ctx.Execute(`fs.read("missing.txt")`, time.Second)
	if result.Success {
		t.Fatal("expected failure")
	}

	// The fault was recorded; the context keeps working.
	if after := ctx.Execute("print(\"ok\")", time.Second); !after.Success {
		t.Fatalf("context unusable after fs fault: %s", after.Error)
	}
}

func TestFSModule_ListExcludesHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, ".git"), 0o755)
	os.WriteFile(filepath.Join(dir, "main.txt"), []byte("x"), 0o644)

	opts := DefaultOptions()
	opts.WorkDir = dir
	ctx := New(opts)

	result := ctx.Execute(`entries = fs.list("."); print(entries.length)`, time.Second)
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !strings.Contains(result.Output, "1") {
		t.Errorf("expected 1 visible entry, got: %q", result.Output)
	}
}

func TestFSModule_Exists(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "there.txt"), []byte("x"), 0o644)

	opts := DefaultOptions()
	opts.WorkDir = dir
	ctx := New(opts)

	result := ctx.Execute(`print(fs.exists("there.txt"), fs.exists("gone.txt"))`, time.Second)
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !strings.Contains(result.Output, "true false") {
		t.Errorf("unexpected output: %q", result.Output)
	}
}
