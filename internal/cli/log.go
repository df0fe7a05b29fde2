package cli

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var validate = validator.New()

// registerLoggingFlags adds --loglevel and --logformat to cmd.
func registerLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "set the log format (text, json)")
}

// getBaseLogger builds the logger selected by the logging flags. Logs go
// to stderr so that stdout stays machine readable.
func getBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := getLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	format, _ := cmd.Flags().GetString("logformat")
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

func getLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	logLevel, _ := cmd.Flags().GetString("loglevel")
	if err := validate.Var(logLevel, "oneof=debug info warn error"); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return level, nil
}
