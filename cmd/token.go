package cmd

import (
	"fmt"

	"github.com/pyneda/traversalprobe/lib"

	"github.com/spf13/cobra"
)

var tokenCount int

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate probe tokens",
	Long:  `Prints freshly generated tokens, the same kind the probe uploads, one per line.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenCount < 1 {
			return fmt.Errorf("count must be at least 1, got %d", tokenCount)
		}
		for i := 0; i < tokenCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), lib.GenerateBase36Token())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().IntVarP(&tokenCount, "count", "c", 1, "Number of tokens to generate")
}
