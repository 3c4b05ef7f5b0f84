package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/itsmostafa/scriptflow/internal/execctx"
)

func newReplContext(t *testing.T) *execctx.Context {
	t.Helper()
	opts := execctx.DefaultOptions()
	opts.WorkDir = t.TempDir()
	return execctx.New(opts)
}

func TestHandleInput_PlainScriptLinesRun(t *testing.T) {
	ctx := newReplContext(t)
	var out bytes.Buffer

	handleInput(&out, ctx, "x = 10", time.Second)
	handleInput(&out, ctx, "print(x * 2)", time.Second)

	if strings.Contains(out.String(), "nothing to execute") {
		t.Fatalf("script lines were refused: %q", out.String())
	}
	if !strings.Contains(out.String(), "20") {
		t.Errorf("expected output to contain 20, got: %q", out.String())
	}
}

func TestHandleInput_ProseIsNotExecuted(t *testing.T) {
	ctx := newReplContext(t)
	var out bytes.Buffer

	handleInput(&out, ctx, "how has your day been so far?", time.Second)

	if !strings.Contains(out.String(), "nothing to execute") {
		t.Errorf("expected prose to be declined, got: %q", out.String())
	}
	if got := ctx.GetStats().TotalOperations; got != 0 {
		t.Errorf("prose should not reach the context, got %d operations", got)
	}
}

func TestHandleInput_FencedResponseGoesThroughExtraction(t *testing.T) {
	ctx := newReplContext(t)
	var out bytes.Buffer

	handleInput(&out, ctx, "Run this: ```js\nprint(\"fenced\")\n``` done.", time.Second)

	if !strings.Contains(out.String(), "fenced") {
		t.Errorf("expected fenced block output, got: %q", out.String())
	}
}
