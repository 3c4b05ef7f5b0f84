// Package pipeline composes the code-block extractor with one execution
// context: it pulls fragments out of a model response and runs them
// sequentially, isolating failures at fragment granularity.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/itsmostafa/scriptflow/internal/execctx"
	"github.com/itsmostafa/scriptflow/internal/extract"
)

// RunResult holds the outcome of processing one response text.
type RunResult struct {
	// BlocksFound is the number of fragments the extractor produced.
	BlocksFound int

	// BlocksExecuted is the number of fragments actually run.
	BlocksExecuted int

	// Results holds one execution result per executed fragment, in
	// extraction order.
	Results []*execctx.ExecResult

	// AllSucceeded is true only if every executed fragment succeeded.
	AllSucceeded bool

	// CombinedOutput concatenates each fragment's output, or its error
	// marker, in execution order.
	CombinedOutput string

	// CodeBlocks echoes the extracted fragments.
	CodeBlocks []string
}

// Run extracts code fragments from responseText and executes them
// sequentially against ctx. When autoExecute is false the fragments are
// returned unexecuted (a dry run). One fragment's failure does not stop
// the remaining fragments.
func Run(responseText string, ctx *execctx.Context, timeout time.Duration, autoExecute bool) *RunResult {
	blocks := extract.Extract(responseText)

	result := &RunResult{
		BlocksFound:  len(blocks),
		CodeBlocks:   extract.Texts(blocks),
		AllSucceeded: true,
	}

	if !autoExecute {
		return result
	}

	var combined strings.Builder
	for i, block := range blocks {
		execResult := ctx.Execute(block.Code, timeout)
		result.Results = append(result.Results, execResult)
		result.BlocksExecuted++

		if execResult.Success {
			combined.WriteString(execResult.Output)
		} else {
			result.AllSucceeded = false
			fmt.Fprintf(&combined, "[Error in block %d]: %s\n", i+1, execResult.Error)
		}
	}

	result.CombinedOutput = combined.String()
	return result
}
