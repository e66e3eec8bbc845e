package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables overriding configuration keys
const EnvPrefix = "TRAVERSALPROBE"

func LoadConfig() {
	SetDefaultConfig()
	viper.SetConfigName("config")                // name of config file (without extension)
	viper.SetConfigType("yaml")                  // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/traversalprobe/") // path to look for the config file in
	viper.AddConfigPath(".")                     // optionally look for config in the working directory
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("Config file not found, using defaults")
		} else {
			log.Panic().Err(err).Msg("Fatal error reading config file")
		}
	}
}

func SetDefaultConfig() {
	// Logging
	viper.SetDefault("logging.console.format", "pretty") // if it's not pretty, just outputs json
	viper.SetDefault("logging.file.enabled", false)
	viper.SetDefault("logging.file.path", "traversalprobe.log")

	// Navigation
	viper.SetDefault("navigation.proxy", "")

	// Probe
	viper.SetDefault("probe.target", "http://localhost:8080")
	viper.SetDefault("probe.timeout", 0)
	viper.SetDefault("probe.count", 1)
	viper.SetDefault("probe.format", "")
}
