package cmd

import (
	"fmt"

	"github.com/itsmostafa/scriptflow/internal/extract"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract code blocks from a response text without executing them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		responseText, err := readInput(args)
		if err != nil {
			return err
		}

		blocks := extract.Extract(responseText)
		if len(blocks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No code blocks found.")
			return nil
		}
		for i, block := range blocks {
			fmt.Fprintf(cmd.OutOrStdout(), "--- block %d (tier %d) ---\n%s\n", i+1, block.Tier, block.Code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
