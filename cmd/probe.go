package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyneda/traversalprobe/lib"
	"github.com/pyneda/traversalprobe/pkg/probe"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run the traversal write probe",
	Long: `Generates a random token, POSTs name=../<token>.txt and content=<token> as a form
to <target>/file and prints the parsed JSON response. Then GETs <target>/file/<token>.txt
and prints the response text. Both lines go to stdout, logs go to stderr.`,
	Example: `  traversalprobe probe
  traversalprobe probe --target http://127.0.0.1:9000 --count 2 --format table`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

// probeFlagKeys maps the probe flags to their configuration keys
var probeFlagKeys = map[string]string{
	"target":  "probe.target",
	"timeout": "probe.timeout",
	"count":   "probe.count",
	"format":  "probe.format",
}

func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "http://localhost:8080", "Base URL of the file upload service")
	cmd.Flags().Int("timeout", 0, "Per request timeout in seconds, 0 waits forever")
	cmd.Flags().Int("count", 1, "Number of sequential runs, each one with a fresh token")
	cmd.Flags().String("format", "", "Also write a summary of each run to stderr (text, pretty, json, yaml, table)")
}

// bindProbeFlags binds the flags of the command being executed, so root and probe can share keys
func bindProbeFlags(cmd *cobra.Command) error {
	for flag, key := range probeFlagKeys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	if err := bindProbeFlags(cmd); err != nil {
		return err
	}

	var formatType lib.FormatType
	if format := viper.GetString("probe.format"); format != "" {
		parsed, err := lib.ParseFormatType(format)
		if err != nil {
			return err
		}
		formatType = parsed
	}
	count := viper.GetInt("probe.count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	p, err := probe.New(probe.OptionsFromConfig(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runSequentially(ctx, p, count)
	if formatType != "" && len(results) > 0 {
		summary, formatErr := formatSummary(results, count, formatType)
		if formatErr != nil {
			log.Error().Err(formatErr).Msg("Error formatting probe summary")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), summary)
		}
	}
	return err
}

// formatSummary renders a single requested run as one item and repeated runs as a list
func formatSummary(results []probe.Result, count int, formatType lib.FormatType) (string, error) {
	if count == 1 {
		return lib.FormatSingleOutput(results[0], formatType)
	}
	return lib.FormatOutput(results, formatType)
}

// runSequentially runs the probe count times, stopping at the first failure
func runSequentially(ctx context.Context, p *probe.Probe, count int) ([]probe.Result, error) {
	var results []probe.Result
	for i := 0; i < count; i++ {
		result, err := p.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("run %d of %d: %w", i+1, count, err)
		}
		results = append(results, *result)
	}
	return results, nil
}

// logCommandError reports a failed command once, with the request details when a run failed
func logCommandError(err error) {
	event := log.Error().Err(err)
	var requestErr *probe.RequestError
	if errors.As(err, &requestErr) {
		event = event.Str("step", string(requestErr.Step)).
			Str("url", requestErr.URL).
			Str("category", requestErr.Category).
			Bool("timed_out", requestErr.TimedOut)
	}
	var parseErr *probe.ParseError
	if errors.As(err, &parseErr) {
		event = event.Int("status", parseErr.StatusCode).Str("body", parseErr.Body)
	}
	event.Msg("Command failed")
}

func init() {
	rootCmd.AddCommand(probeCmd)
	addProbeFlags(probeCmd)
}
