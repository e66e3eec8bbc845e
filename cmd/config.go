package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		file := viper.ConfigFileUsed()
		if file == "" {
			file = "none, using defaults"
		}
		output, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Using config file: %s\n", file)
		fmt.Fprintln(cmd.OutOrStdout(), "Current configuration:")
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump configuration to file",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		if outputPath == "" {
			return fmt.Errorf("output path is required")
		}

		if _, err := os.Stat(outputPath); err == nil && !force {
			return fmt.Errorf("file %s already exists, use --force to overwrite", outputPath)
		}

		dir := filepath.Dir(outputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}

		if err := viper.WriteConfigAs(outputPath); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", outputPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)

	configDumpCmd.Flags().StringP("output", "o", "config.yaml", "Output file path")
	configDumpCmd.Flags().BoolP("force", "f", false, "Force overwrite existing file")

	rootCmd.AddCommand(configCmd)
}
