package lib

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogTimeFormat = "2006-01-02T15:04:05.000"
)

// LogOutput is where console logs are written. Probe output goes to stdout, so it defaults to stderr.
var LogOutput io.Writer = os.Stderr

// consoleWriter returns the writer used for log output on the terminal.
func consoleWriter(pretty bool) io.Writer {
	if !pretty {
		return LogOutput
	}
	if runtime.GOOS == "windows" && LogOutput == os.Stderr {
		return zerolog.ConsoleWriter{Out: colorable.NewColorableStderr(), TimeFormat: LogTimeFormat}
	}
	return zerolog.ConsoleWriter{Out: LogOutput, NoColor: false, TimeFormat: LogTimeFormat}
}

// ZeroConsoleLog sets up the global logger to only write to the console
func ZeroConsoleLog(pretty bool) {
	log.Logger = zerolog.New(consoleWriter(pretty)).With().Timestamp().Logger()
}

// ZeroConsoleAndFileLog sets up the global logger to write both to the console and to the provided file.
// Falls back to console only logging if the file cannot be opened.
func ZeroConsoleAndFileLog(filename string, pretty bool) {
	var logFile *os.File
	var err error
	if !LocalFileExists(filename) {
		logFile, err = os.Create(filename)
	} else {
		logFile, err = os.OpenFile(filename, os.O_WRONLY|os.O_APPEND, 0666)
	}
	if err != nil {
		ZeroConsoleLog(pretty)
		log.Error().Err(err).Str("file", filename).Msg("Error setting up log file, logging to console only")
		return
	}

	mw := io.MultiWriter(logFile, consoleWriter(pretty))
	log.Logger = zerolog.New(mw).With().Timestamp().Logger()
}

// SetLogLevel sets the global log level
func SetLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
