package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/itsmostafa/scriptflow/internal/config"
	"github.com/itsmostafa/scriptflow/internal/execctx"
	"github.com/itsmostafa/scriptflow/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runTimeout  time.Duration
	runDry      bool
	runOwnerDir string
	runStats    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Extract and execute code blocks from a response text",
	Long: `Run reads a response text from a file (or stdin when the argument is
omitted or "-"), extracts its code blocks, and executes them in order
against a fresh session context. A failing block does not stop the
blocks after it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		responseText, err := readInput(args)
		if err != nil {
			return err
		}

		settings, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		opts := execctx.DefaultOptions()
		opts.CacheCapacity = settings.CacheCapacity
		opts.MaxFileSize = settings.MaxFileSize
		opts.OwnerDir = settings.OwnerDir
		if runOwnerDir != "" {
			opts.OwnerDir = runOwnerDir
		}
		ctx := execctx.New(opts)

		timeout := runTimeout
		if timeout <= 0 {
			timeout = time.Duration(settings.TimeoutSeconds) * time.Second
		}

		autoExecute := settings.AutoExecute && !runDry
		result := pipeline.Run(responseText, ctx, timeout, autoExecute)
		pipeline.FormatRunSummary(cmd.OutOrStdout(), result)

		if runStats {
			pipeline.FormatStats(cmd.OutOrStdout(), ctx.GetStats())
		}
		return nil
	},
}

func init() {
	runCmd.Flags().DurationVarP(&runTimeout, "timeout", "t", 0, "Per-block execution timeout (default from config)")
	runCmd.Flags().BoolVar(&runDry, "dry-run", false, "Extract blocks without executing them")
	runCmd.Flags().StringVar(&runOwnerDir, "owner-dir", "", "Session owner directory for path resolution")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "Print session stats after the run")

	rootCmd.AddCommand(runCmd)
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
