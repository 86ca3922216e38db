package cmd

import (
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "gammapad [device]",
		Short: "GammaPad - Linux joystick virtualizer",
		Long: `GammaPad turns a physical joystick into a canonical virtual gamepad.
It remaps the physical scancodes with an optional key layout file, resolves
colliding axes, forwards live input through uinput, emulates force feedback on
a vibrator and accepts synthetic input from a console on stdin.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runGamepad,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default searches /etc/gammapad and ~/.config/gammapad)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	viper.BindPFlag("logging.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigPath(configFile)
	}
	if err := config.Init(); err != nil {
		return err
	}
	logger.SetLevel(config.Get().Logging.LogLevel)
	return nil
}
