package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/scriptflow/internal/version"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "scriptflow",
	Short: "Natural-language-driven code execution",
	Long: `Scriptflow classifies user text for operational intent, extracts code
blocks from model responses, and executes them in a persistent,
timeout-bounded session context.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("scriptflow %s\n", version.String()))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
