package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lcdmenu/app"
	"lcdmenu/device"
	"lcdmenu/device/button"
	"lcdmenu/grid"
	"lcdmenu/menu"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("config: invalid")

const (
	ModeAuto     = "auto"
	ModeTerminal = "terminal"
	ModeConsole  = "console"
)

type Config struct {
	Display  Display        `mapstructure:"display"`
	Input    Input          `mapstructure:"input"`
	Log      Log            `mapstructure:"log"`
	Settings map[string]int `mapstructure:"settings"`
	Menu     Menu           `mapstructure:"menu"`
}

type Display struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Mode   string `mapstructure:"mode"`
}

type Input struct {
	Keys         []Key         `mapstructure:"keys"`
	Buttons      []Button      `mapstructure:"buttons"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Key binds a key name, as tcell reports it, to a trigger name. Keys are a list rather than a
// map because key names are case sensitive.
type Key struct {
	Key     string `mapstructure:"key"`
	Trigger string `mapstructure:"trigger"`
}

type Button struct {
	Name       string `mapstructure:"name"`
	Trigger    string `mapstructure:"trigger"`
	Pin        string `mapstructure:"pin"`
	ActiveLow  bool   `mapstructure:"active_low"`
	Continuous bool   `mapstructure:"continuous"`
}

type Log struct {
	File string `mapstructure:"file"`
}

type Menu struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("display.width", 16)
	v.SetDefault("display.height", 2)
	v.SetDefault("display.mode", ModeAuto)
	v.SetDefault("input.poll_interval", 20*time.Millisecond)
	v.SetDefault("log.file", "lcdmenu.log")
	v.SetDefault("menu.file", "")
}

// Load reads the configuration into v. An empty path searches for lcdmenu.yaml in the
// working directory and in ~/.config/lcdmenu; a missing file there is not an error.
// Environment variables prefixed with LCDMENU_ override the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("lcdmenu")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lcdmenu")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lcdmenu")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	var errs []error
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: display size %dx%d", ErrInvalidConfig, cfg.Display.Width, cfg.Display.Height))
	}
	switch cfg.Display.Mode {
	case ModeAuto, ModeTerminal, ModeConsole:
	default:
		errs = append(errs, fmt.Errorf("%w: display mode %q", ErrInvalidConfig, cfg.Display.Mode))
	}
	if _, err := cfg.KeyMap(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	for _, b := range cfg.Input.Buttons {
		if b.Pin == "" {
			errs = append(errs, fmt.Errorf("%w: button %q has no pin", ErrInvalidConfig, b.Name))
		}
		if _, err := menu.ParseTrigger(b.Trigger); err != nil {
			errs = append(errs, fmt.Errorf("%w: button %q: %w", ErrInvalidConfig, b.Name, err))
		}
	}
	if len(cfg.Input.Buttons) > 0 && cfg.Input.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: poll interval %v", ErrInvalidConfig, cfg.Input.PollInterval))
	}
	defaults := app.DefaultSettings()
	for name := range cfg.Settings {
		if _, err := defaults.Get(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}
	return errors.Join(errs...)
}

func (cfg *Config) Size() grid.Size {
	return grid.Size{Width: cfg.Display.Width, Height: cfg.Display.Height}
}

// KeyMap is the default key map with the configured keys on top.
func (cfg *Config) KeyMap() (device.KeyMap, error) {
	names := make(map[string]string, len(cfg.Input.Keys))
	for _, k := range cfg.Input.Keys {
		names[k.Key] = k.Trigger
	}
	return device.ParseKeyMap(names)
}

// ApplySettings overrides the defaults in settings with the configured values.
func (cfg *Config) ApplySettings(settings *app.Settings) error {
	for _, name := range app.SettingNames() {
		value, ok := cfg.Settings[name]
		if !ok {
			continue
		}
		if err := settings.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Buttons builds the configured push buttons reading sysfs GPIO value files.
func (cfg *Config) Buttons() ([]*button.Button, error) {
	buttons := make([]*button.Button, 0, len(cfg.Input.Buttons))
	for _, b := range cfg.Input.Buttons {
		trigger, err := menu.ParseTrigger(b.Trigger)
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", b.Name, err)
		}
		buttons = append(buttons, &button.Button{
			Name:       b.Name,
			Trigger:    trigger,
			Continuous: b.Continuous,
			Check:      button.Pin(b.Pin, b.ActiveLow),
		})
	}
	return buttons, nil
}
