package config

import (
	"strings"
	"testing"

	"lcdmenu/app"
	"lcdmenu/grid"
	"lcdmenu/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightsMenu = `
start: main
screens:
  - name: main
    size: [8, 2]
    navigate: true
    column:
      - text: Lights
        actions:
          - {triggers: [select], do: enter, target: lights}
      - text: Quit
  - name: lights
    size: [8, 1]
    row:
      - text: "Bri "
      - setting: brightness
    actions:
      - {triggers: [right], do: adjust, setting: brightness, by: 10}
      - {triggers: [left, select], do: back}
`

func buildMenu(t *testing.T, text string) (*menu.Node, *app.Settings) {
	t.Helper()
	spec, err := LoadMenu(strings.NewReader(text))
	require.NoError(t, err)
	settings := app.DefaultSettings()
	base, err := Build(spec, settings)
	require.NoError(t, err)
	return base, settings
}

func deliver(t *testing.T, base *menu.Node, trigger menu.Trigger) {
	t.Helper()
	handled, err := menu.Deliver(trigger, base.ScreenTop())
	require.NoError(t, err)
	require.True(t, handled, trigger.String())
}

func TestBuildNavigates(t *testing.T) {
	base, settings := buildMenu(t, lightsMenu)
	assert.Equal(t, "main", base.Name())
	assert.Equal(t, []string{"Lights  ", "Quit    "}, base.Block().Rows())

	deliver(t, base, menu.Select)
	lights := base.ScreenTop()
	assert.Equal(t, "lights", lights.Name())
	assert.Equal(t, []string{"Bri 80% "}, lights.Block().Rows())

	deliver(t, base, menu.Right)
	assert.Equal(t, 90, settings.Brightness)
	assert.Equal(t, []string{"Bri 90% "}, lights.Block().Rows())

	deliver(t, base, menu.Left)
	assert.Same(t, base, base.ScreenTop())

	deliver(t, base, menu.Down)
	assert.Equal(t, 1, base.SelectedIndex())
}

func TestBuildLayout(t *testing.T) {
	base, _ := buildMenu(t, `
screens:
  - name: home
    size: [7, 1]
    loop: true
    divider: "|"
    loop_divider: "~"
    cursor: [0, 0]
    row:
      - {text: A, size: [3, 1], align: [Center, top]}
      - {text: B}
`)
	assert.True(t, base.Looping())
	assert.Equal(t, menu.Inline, base.Orientation())
	assert.Equal(t, grid.Alignment{}, base.Alignment())
	assert.Equal(t, grid.Alignment{H: grid.Center, V: grid.Start}, base.Items()[0].Alignment())
	assert.Equal(t, menu.SizeFixed, base.Items()[0].SizeMode())
	assert.Equal(t, []string{" A |B  "}, base.Block().Rows())
	cursor, visible := base.RawCursor()
	assert.True(t, visible)
	assert.Equal(t, grid.Position{}, cursor)
}

func TestBuildStartDefaultsToFirstScreen(t *testing.T) {
	base, _ := buildMenu(t, `
screens:
  - {name: first, text: one}
  - {name: second, text: two}
`)
	assert.Equal(t, "first", base.Name())
}

func TestLoadMenuUnknownField(t *testing.T) {
	_, err := LoadMenu(strings.NewReader("screens:\n  - {name: main, text: hi, colour: red}\n"))
	assert.ErrorIs(t, err, ErrInvalidMenu)
}

func TestBuildInvalid(t *testing.T) {
	for name, text := range map[string]string{
		"empty":     "screens: []",
		"unnamed":   "screens: [{text: hi}]",
		"kind":      "screens: [{name: a, text: hi, column: [{text: x}]}]",
		"nokind":    "screens: [{name: a}]",
		"start":     "start: b\nscreens: [{name: a, text: hi}]",
		"duplicate": "screens: [{name: a, text: hi}, {name: a, text: ho}]",
		"setting":   "screens: [{name: a, setting: volume}]",
		"align":     "screens: [{name: a, text: hi, align: [left, sideways]}]",
		"size":      "screens: [{name: a, text: hi, size: [1]}]",
		"fill":      "screens: [{name: a, text: hi, size: [1, 1], fill: true}]",
		"divider":   "screens: [{name: a, text: hi, divider: x}]",
		"cursor":    "screens: [{name: a, text: hi, cursor: [0, 0], no_cursor: true}]",
		"target":    "screens: [{name: a, text: hi, actions: [{triggers: [select], do: enter, target: b}]}]",
		"trigger":   "screens: [{name: a, text: hi, actions: [{triggers: [press], do: back}]}]",
		"triggers":  "screens: [{name: a, text: hi, actions: [{do: back}]}]",
		"do":        "screens: [{name: a, text: hi, actions: [{triggers: [select], do: jump}]}]",
		"adjust":    "screens: [{name: a, text: hi, actions: [{triggers: [up], do: adjust, setting: volume, by: 1}]}]",
		"by":        "screens: [{name: a, text: hi, actions: [{triggers: [up], do: adjust, setting: speed}]}]",
	} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadMenu(strings.NewReader(text))
			require.NoError(t, err)
			_, err = Build(spec, app.DefaultSettings())
			assert.ErrorIs(t, err, ErrInvalidMenu)
		})
	}
}
