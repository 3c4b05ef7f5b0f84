package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/itsmostafa/scriptflow/internal/config"
	"github.com/itsmostafa/scriptflow/internal/execctx"
	"github.com/itsmostafa/scriptflow/internal/extract"
	"github.com/itsmostafa/scriptflow/internal/intent"
	"github.com/itsmostafa/scriptflow/internal/pipeline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session with a persistent execution context",
	Long: `Repl keeps one execution context alive across inputs: variables bound
by one input are visible to the next. Plain script lines run directly;
pasted response text has its code blocks extracted first.

Meta commands: :stats, :load <path>, :reset, :quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		opts := execctx.DefaultOptions()
		opts.CacheCapacity = settings.CacheCapacity
		opts.MaxFileSize = settings.MaxFileSize
		opts.OwnerDir = settings.OwnerDir
		ctx := execctx.New(opts)
		timeout := time.Duration(settings.TimeoutSeconds) * time.Second

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "scriptflow session %s (:quit to exit)\n", ctx.SessionID())

		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		fmt.Fprint(out, "> ")
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
			case line == ":quit" || line == ":exit":
				return nil
			case line == ":stats":
				pipeline.FormatStats(out, ctx.GetStats())
			case line == ":reset":
				ctx.Reset()
				fmt.Fprintf(out, "session reset: %s\n", ctx.SessionID())
			case strings.HasPrefix(line, ":load "):
				load := ctx.LoadFile(strings.TrimSpace(strings.TrimPrefix(line, ":load ")))
				if load.Success {
					fmt.Fprintf(out, "loaded %s (%d bytes, %d cached)\n", load.ResolvedPath, load.Size, load.CacheEntries)
				} else {
					fmt.Fprintln(out, load.Error)
				}
			default:
				handleInput(out, ctx, line, timeout)
			}
			fmt.Fprint(out, "> ")
		}
		return scanner.Err()
	},
}

// handleInput routes one input line: fenced response text goes through
// extraction, script-shaped lines run directly, and only prose falls
// through to intent classification.
func handleInput(out io.Writer, ctx *execctx.Context, line string, timeout time.Duration) {
	if strings.Contains(line, "```") {
		result := pipeline.Run(line, ctx, timeout, true)
		pipeline.FormatRunSummary(out, result)
		return
	}

	if !extract.LooksLikeCode(line) {
		classified := intent.Classify(line)
		if !classified.Operational {
			fmt.Fprintf(out, "(%s, confidence %.2f) nothing to execute\n", classified.Intent, classified.Confidence)
			return
		}
	}

	execResult := ctx.Execute(line, timeout)
	if execResult.Success {
		fmt.Fprint(out, execResult.Output)
	} else {
		fmt.Fprintln(out, execResult.Error)
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
