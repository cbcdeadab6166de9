package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lcdmenu/app"
	"lcdmenu/grid"
	"lcdmenu/menu"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcdmenu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, grid.Size{Width: 16, Height: 2}, cfg.Size())
	assert.Equal(t, ModeAuto, cfg.Display.Mode)
	assert.Equal(t, 20*time.Millisecond, cfg.Input.PollInterval)
	assert.Equal(t, "lcdmenu.log", cfg.Log.File)
	assert.Empty(t, cfg.Menu.File)

	keys, err := cfg.KeyMap()
	require.NoError(t, err)
	assert.Equal(t, menu.Select, keys["Enter"])
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
display:
  width: 20
  height: 4
  mode: console
input:
  poll_interval: 50ms
  keys:
    - {key: "Rune[q]", trigger: left}
    - {key: "Rune[e]", trigger: right}
  buttons:
    - {name: ok, trigger: select, pin: /sys/class/gpio/gpio17/value, active_low: true}
settings:
  brightness: 40
  speed: 500
menu:
  file: menu.yaml
`)
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, grid.Size{Width: 20, Height: 4}, cfg.Size())
	assert.Equal(t, ModeConsole, cfg.Display.Mode)
	assert.Equal(t, 50*time.Millisecond, cfg.Input.PollInterval)
	assert.Equal(t, "menu.yaml", cfg.Menu.File)

	keys, err := cfg.KeyMap()
	require.NoError(t, err)
	assert.Equal(t, menu.Left, keys["Rune[q]"])
	assert.Equal(t, menu.Right, keys["Rune[e]"])
	assert.Equal(t, menu.Up, keys["Up"])

	buttons, err := cfg.Buttons()
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	assert.Equal(t, "ok", buttons[0].Name)
	assert.Equal(t, menu.Select, buttons[0].Trigger)
	assert.False(t, buttons[0].Continuous)

	settings := app.DefaultSettings()
	require.NoError(t, cfg.ApplySettings(settings))
	assert.Equal(t, 40, settings.Brightness)
	assert.Equal(t, 99, settings.Speed)
	assert.Equal(t, 50, settings.Contrast)
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LCDMENU_DISPLAY_WIDTH", "40")
	t.Setenv("LCDMENU_DISPLAY_MODE", "terminal")
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Display.Width)
	assert.Equal(t, ModeTerminal, cfg.Display.Mode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	for name, text := range map[string]string{
		"size":     "display: {width: 0}",
		"mode":     "display: {mode: lcd}",
		"key":      `input: {keys: [{key: "Rune[x]", trigger: jump}]}`,
		"pin":      "input: {buttons: [{name: ok, trigger: select}]}",
		"trigger":  "input: {buttons: [{name: ok, trigger: press, pin: /dev/null}]}",
		"interval": "input: {poll_interval: 0s, buttons: [{name: ok, trigger: select, pin: /dev/null}]}",
		"settings": "settings: {volume: 3}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, text))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
