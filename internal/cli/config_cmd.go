package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fleetshift/fleetshift/internal/config"
)

// newConfigCmd creates the config command group for inspecting and editing
// the fleetshift configuration file.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the fleetshift configuration",
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)
	return cmd
}

// configPath resolves the config file path from the --config flag, falling
// back to the default location.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path
	}
	return config.Path()
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(cmd)
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobal())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := configValue(config.GetGlobal(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(cmd)
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			config.SetGlobal(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// configValue reads a dotted config key.
func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	case "logging.file":
		return cfg.Logging.File, nil
	case "output.default_format":
		return cfg.Output.DefaultFormat, nil
	case "scenarios.database":
		return cfg.Scenarios.Database, nil
	case "server.listen":
		return cfg.Server.Listen, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// setConfigValue writes a dotted config key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		if value != "console" && value != "json" && value != "auto" {
			return fmt.Errorf("invalid logging format %q: must be console, json or auto", value)
		}
		cfg.Logging.Format = value
	case "logging.file":
		cfg.Logging.File = value
	case "output.default_format":
		if value != "table" && value != "json" {
			return fmt.Errorf("invalid output format %q: must be table or json", value)
		}
		cfg.Output.DefaultFormat = value
	case "scenarios.database":
		cfg.Scenarios.Database = value
	case "server.listen":
		cfg.Server.Listen = value
	case "defaults.fleet_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid fleet size %q: %w", value, err)
		}
		cfg.Defaults.FleetSize = &n
	case "defaults.diesel_price":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid diesel price %q: %w", value, err)
		}
		cfg.Defaults.DieselPrice = &f
	case "defaults.electricity_price":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid electricity price %q: %w", value, err)
		}
		cfg.Defaults.ElectricityPrice = &f
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
