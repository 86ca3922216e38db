package cmd

import (
	"fmt"

	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect GammaPad configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s\n", config.GetConfigPath())

		logger.Info("[Device]")
		logger.Infof("  Path: %s", valueOrNone(cfg.Device.Path))
		logger.Infof("  Grab: %v", cfg.Device.Grab)

		logger.Info("[Layout]")
		logger.Infof("  Dir: %s", cfg.Layout.Dir)
		logger.Infof("  File: %s", valueOrNone(cfg.Layout.File))

		logger.Info("[Gamepad]")
		logger.Infof("  Uinput: %s", cfg.Gamepad.UinputPath)
		logger.Infof("  Name: %s", cfg.Gamepad.Name)
		logger.Infof("  ID: %04x:%04x version %d", cfg.Gamepad.Vendor, cfg.Gamepad.Product, cfg.Gamepad.Version)

		logger.Info("[Mouse]")
		logger.Infof("  Enabled: %v", cfg.Mouse.Enabled)
		logger.Infof("  Name: %s", cfg.Mouse.Name)

		logger.Info("[Feedback]")
		logger.Infof("  Actuator: %s", cfg.Feedback.ActuatorPath)

		logger.Info("[Console]")
		logger.Infof("  Enabled: %v", cfg.Console.Enabled)
		logger.Infof("  Default duration: %s", cfg.Console.DefaultDuration)

		logger.Info("[Reactor]")
		logger.Infof("  Poll interval: %s", cfg.Reactor.PollInterval)

		logger.Info("[Logging]")
		logger.Infof("  Level: %s", valueOrNone(cfg.Logging.LogLevel))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
