package cli

import (
	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/config"
	"github.com/fleetshift/fleetshift/internal/logging"
)

// setupLogging configures the package logger from the config file and the
// --debug flag, and stores it in the command context for downstream use.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// outputFormat resolves the effective output format: the --output flag wins,
// then the configured default.
func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format != "" {
		return format
	}
	return config.GetGlobal().Output.DefaultFormat
}
