// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Device   DeviceConfig   `mapstructure:"device"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Gamepad  GamepadConfig  `mapstructure:"gamepad"`
	Mouse    MouseConfig    `mapstructure:"mouse"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Console  ConsoleConfig  `mapstructure:"console"`
	Reactor  ReactorConfig  `mapstructure:"reactor"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// DeviceConfig selects the physical joystick
type DeviceConfig struct {
	Path string `mapstructure:"path"` // e.g. /dev/input/event3, empty runs without a physical device
	Grab bool   `mapstructure:"grab"` // Take the device exclusively
}

// LayoutConfig locates the scancode layout overlay
type LayoutConfig struct {
	Dir  string `mapstructure:"dir"`  // Searched for Vendor_XXXX_Product_XXXX.kl
	File string `mapstructure:"file"` // Explicit overlay, overrides Dir
}

// GamepadConfig describes the virtual gamepad
type GamepadConfig struct {
	UinputPath string `mapstructure:"uinput_path"`
	Name       string `mapstructure:"name"`
	Vendor     uint16 `mapstructure:"vendor"`
	Product    uint16 `mapstructure:"product"`
	Version    uint16 `mapstructure:"version"`
}

// MouseConfig describes the virtual mouse
type MouseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Name    string `mapstructure:"name"`
}

// FeedbackConfig contains force feedback settings
type FeedbackConfig struct {
	ActuatorPath string `mapstructure:"actuator_path"`
}

// ConsoleConfig contains settings for the stdin command console
type ConsoleConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultDuration time.Duration `mapstructure:"default_duration"`
}

// ReactorConfig contains event loop settings
type ReactorConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Device: DeviceConfig{
			Path: "",
			Grab: true,
		},
		Layout: LayoutConfig{
			Dir: "/system/usr/keylayout",
		},
		Gamepad: GamepadConfig{
			UinputPath: "/dev/uinput",
			Name:       "GammaPad Virtual Controller",
			Vendor:     0x045e,
			Product:    0x02fd,
			Version:    3,
		},
		Mouse: MouseConfig{
			Enabled: true,
			Name:    "GammaPad Virtual Mouse",
		},
		Feedback: FeedbackConfig{
			ActuatorPath: "/sys/class/timed_output/vibrator/enable",
		},
		Console: ConsoleConfig{
			Enabled:         true,
			DefaultDuration: 3 * time.Second,
		},
		Reactor: ReactorConfig{
			PollInterval: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("gammapad")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath("/etc/gammapad")

		// If running with sudo, try the real user's config
		if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
			viper.AddConfigPath(fmt.Sprintf("/home/%s/.config/gammapad", sudoUser))
		} else if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "gammapad"))
		}

		viper.AddConfigPath(".")
	}

	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	return nil
}

// Set each field individually so file values merge over defaults.
func setDefaults() {
	d := DefaultConfig
	viper.SetDefault("device.path", d.Device.Path)
	viper.SetDefault("device.grab", d.Device.Grab)

	viper.SetDefault("layout.dir", d.Layout.Dir)
	viper.SetDefault("layout.file", d.Layout.File)

	viper.SetDefault("gamepad.uinput_path", d.Gamepad.UinputPath)
	viper.SetDefault("gamepad.name", d.Gamepad.Name)
	viper.SetDefault("gamepad.vendor", d.Gamepad.Vendor)
	viper.SetDefault("gamepad.product", d.Gamepad.Product)
	viper.SetDefault("gamepad.version", d.Gamepad.Version)

	viper.SetDefault("mouse.enabled", d.Mouse.Enabled)
	viper.SetDefault("mouse.name", d.Mouse.Name)

	viper.SetDefault("feedback.actuator_path", d.Feedback.ActuatorPath)

	viper.SetDefault("console.enabled", d.Console.Enabled)
	viper.SetDefault("console.default_duration", d.Console.DefaultDuration)

	viper.SetDefault("reactor.poll_interval", d.Reactor.PollInterval)

	viper.SetDefault("logging.log_level", d.Logging.LogLevel)
}

// Validate rejects settings the runtime cannot work with
func (c *Config) Validate() error {
	if c.Gamepad.UinputPath == "" {
		return fmt.Errorf("gamepad.uinput_path must not be empty")
	}
	if c.Reactor.PollInterval <= 0 {
		return fmt.Errorf("reactor.poll_interval must be positive, got %s", c.Reactor.PollInterval)
	}
	if c.Console.DefaultDuration <= 0 {
		return fmt.Errorf("console.default_duration must be positive, got %s", c.Console.DefaultDuration)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// GetConfigPath returns the path of the config file in use, or the first
// location searched when none was found
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		return filepath.Join("/home", sudoUser, ".config", "gammapad", "gammapad.toml")
	}
	if os.Getuid() == 0 {
		return "/etc/gammapad/gammapad.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/gammapad/gammapad.toml"
	}
	return filepath.Join(home, ".config", "gammapad", "gammapad.toml")
}
