package cmd

import (
	"strings"

	"github.com/itsmostafa/scriptflow/internal/intent"
	"github.com/itsmostafa/scriptflow/internal/pipeline"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Classify user text for operational intent",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := intent.Classify(strings.Join(args, " "))
		pipeline.FormatIntent(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
