package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lcdmenu/app"
	"lcdmenu/config"
	"lcdmenu/device"
	"lcdmenu/device/button"
	"lcdmenu/device/console"
	"lcdmenu/device/tcell"
	"lcdmenu/menu"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	var script []string

	cmd := &cobra.Command{
		Use:          "lcdmenu",
		Short:        "Menus on a character LCD",
		Long:         `Shows a menu tree on a character grid display, in a terminal or on a plain console.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, script)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./lcdmenu.yaml)")
	flags.StringSliceVar(&script, "script", nil, "replay these triggers on the console instead of reading input")

	flags.Int("width", 16, "display width in cells")
	v.BindPFlag("display.width", flags.Lookup("width"))
	flags.Int("height", 2, "display height in cells")
	v.BindPFlag("display.height", flags.Lookup("height"))
	flags.StringP("mode", "m", config.ModeAuto, "display mode: auto, terminal or console")
	v.BindPFlag("display.mode", flags.Lookup("mode"))
	flags.String("menu", "", "yaml menu definition (default is the built-in demo)")
	v.BindPFlag("menu.file", flags.Lookup("menu"))
	flags.String("log-file", "lcdmenu.log", "log file")
	v.BindPFlag("log.file", flags.Lookup("log-file"))

	return cmd
}

func run(ctx context.Context, cfg *config.Config, script []string) error {
	logFile, err := os.OpenFile(cfg.Log.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(0)

	settings := app.DefaultSettings()
	if err := cfg.ApplySettings(settings); err != nil {
		return err
	}
	base, err := loadMenu(cfg, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	display, input, err := open(ctx, cfg, script)
	if err != nil {
		return err
	}
	defer display.Stop()

	inputs := []device.Input{input}
	buttons, err := cfg.Buttons()
	if err != nil {
		return err
	}
	if len(buttons) > 0 {
		poller := button.NewPoller(ctx, cfg.Input.PollInterval, buttons...)
		defer poller.Stop()
		inputs = append(inputs, poller)
	}
	merged := device.Merge(inputs...)
	context.AfterFunc(ctx, merged.Close)

	log.Printf("lcdmenu %v on %q", cfg.Size(), base.Name())
	err = app.New(base, display, merged, settings).Run(ctx)
	log.Printf("lcdmenu stopped: %v", err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadMenu(cfg *config.Config, settings *app.Settings) (*menu.Node, error) {
	if cfg.Menu.File == "" {
		return app.Demo(cfg.Size(), settings)
	}
	spec, err := config.LoadMenuFile(cfg.Menu.File)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", cfg.Menu.File, err)
	}
	return config.Build(spec, settings)
}

// open picks the display: a tcell terminal when attached to one, the console otherwise.
func open(ctx context.Context, cfg *config.Config, script []string) (device.Display, device.Input, error) {
	mode := cfg.Display.Mode
	if mode == config.ModeAuto {
		mode = config.ModeConsole
		if script == nil && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			mode = config.ModeTerminal
		}
	}

	if mode == config.ModeTerminal {
		keys, err := cfg.KeyMap()
		if err != nil {
			return nil, nil, err
		}
		d, err := tcell.NewDevice(ctx, cfg.Size(), keys)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		return d, d, nil
	}

	display := console.NewDisplay(os.Stdout, cfg.Size())
	if script != nil {
		input, err := device.ParseScript(script)
		if err != nil {
			return nil, nil, err
		}
		return display, input, nil
	}
	return display, console.NewInput(os.Stdin), nil
}
