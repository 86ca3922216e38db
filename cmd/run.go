package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/console"
	"github.com/bnema/gammapad/internal/ff"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/bnema/gammapad/internal/reactor"
	"github.com/bnema/gammapad/internal/scheduler"
	"github.com/bnema/gammapad/internal/session"
	"github.com/bnema/gammapad/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// probe previews the same overlay, so --layout is shared.
	rootCmd.PersistentFlags().String("layout", "", "Key layout overlay file (overrides the vendor/product lookup)")

	flags := rootCmd.Flags()
	flags.Bool("no-grab", false, "Do not take the physical device exclusively")
	flags.String("actuator", "", "Vibrator control file")
	flags.Bool("no-console", false, "Do not read commands from stdin")
	flags.Bool("no-mouse", false, "Do not create the virtual mouse")

	viper.BindPFlag("layout.file", rootCmd.PersistentFlags().Lookup("layout"))
	viper.BindPFlag("feedback.actuator_path", flags.Lookup("actuator"))
}

func runGamepad(cmd *cobra.Command, args []string) error {
	cfg := *config.Get()
	if len(args) == 1 {
		cfg.Device.Path = args[0]
	}
	if noGrab, _ := cmd.Flags().GetBool("no-grab"); noGrab {
		cfg.Device.Grab = false
	}
	if noConsole, _ := cmd.Flags().GetBool("no-console"); noConsole {
		cfg.Console.Enabled = false
	}
	if noMouse, _ := cmd.Flags().GetBool("no-mouse"); noMouse {
		cfg.Mouse.Enabled = false
	}

	if _, err := os.Stat(cfg.Gamepad.UinputPath); err != nil {
		return fmt.Errorf("uinput is not available at %s: %w", cfg.Gamepad.UinputPath, err)
	}

	sess, err := session.Open(&cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("Failed to release devices", "error", err)
		}
	}()

	clk := clock.New()
	actuator := ff.SysfsActuator{Path: cfg.Feedback.ActuatorPath}
	opts := reactor.Options{
		Gamepad:         sess.Gamepad,
		Feedback:        ff.NewEngine(sess.Gamepad, actuator, clk),
		Scheduler:       scheduler.New(sess.Gamepad, clk),
		Clock:           clk,
		PollInterval:    cfg.Reactor.PollInterval,
		DefaultDuration: cfg.Console.DefaultDuration,
		Help:            printConsoleHelp,
	}
	if sess.HasPhysical() {
		opts.Physical = sess.Physical
		opts.Forwarder = sess.Forwarder()
	}
	if sess.Mouse != nil {
		opts.Mouse = sess.Mouse
	}
	if cfg.Console.Enabled {
		opts.Console = os.Stdin
		printConsoleHelp()
	}

	r, err := reactor.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize reactor: %w", err)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("GammaPad running", "gamepad", sess.Gamepad.Name(), "physical", cfg.Device.Path)
	if err := r.Run(ctx); err != nil {
		return err
	}
	logger.Info("Shutting down")
	return nil
}

func printConsoleHelp() {
	fmt.Fprintln(os.Stderr, ui.ConsoleHelp(console.ButtonNames(), console.AxisNames()))
}
