package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyneda/traversalprobe/lib"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const homeConfigFile = ".traversalprobe.yaml"

var cfgFile string
var debugLogging bool
var prettyLogs bool
var logFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "traversalprobe",
	Short: "Probe a file upload service for path traversal writes",
	Long: `Uploads a random token as ../<token>.txt to the POST /file endpoint of a file
upload service, prints the JSON response, then requests GET /file/<token>.txt
and prints the returned text.

Running it without a subcommand is the same as running "traversalprobe probe".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runProbe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if code := execute(); code != 0 {
		os.Exit(code)
	}
}

// execute runs the root command and returns the process exit code. Errors are logged once here,
// cobra itself is silenced.
func execute() int {
	if err := rootCmd.Execute(); err != nil {
		logCommandError(err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.traversalprobe.yaml, merged over config.yaml from /etc/traversalprobe/ or the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Use debug level logging")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", true, "Use pretty logging instead JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to the provided file")

	addProbeFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		pretty := prettyLogs
		if !cmd.Flags().Changed("pretty") {
			pretty = viper.GetString("logging.console.format") == "pretty"
		}
		path := logFile
		if path == "" && viper.GetBool("logging.file.enabled") {
			path = viper.GetString("logging.file.path")
		}
		if path != "" {
			lib.ZeroConsoleAndFileLog(path, pretty)
		} else {
			lib.ZeroConsoleLog(pretty)
		}
		lib.SetLogLevel(debugLogging)
		return nil
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.MergeInConfig(); err != nil {
			cobra.CheckErr(fmt.Errorf("could not read config file %s: %w", cfgFile, err))
		}
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		return
	}

	home, err := homedir.Dir()
	cobra.CheckErr(err)
	path, err := mergeHomeConfig(home)
	cobra.CheckErr(err)
	if path != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", path)
	}
}

// mergeHomeConfig merges $HOME/.traversalprobe.yaml when it exists and returns its path.
// Only the home directory is looked at, the config.yaml search paths are left to config.LoadConfig.
func mergeHomeConfig(home string) (string, error) {
	path := filepath.Join(home, homeConfigFile)
	if !lib.LocalFileExists(path) {
		return "", nil
	}
	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return "", fmt.Errorf("could not read config file %s: %w", path, err)
	}
	return path, nil
}
