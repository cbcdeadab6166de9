package app

import (
	"context"
	"log"

	"lcdmenu/device"
	"lcdmenu/grid"
	"lcdmenu/menu"
)

// App drives a menu tree: it polls the input, routes every trigger to the screen on display
// and shows the re-rendered screen. Callbacks never render.
type App struct {
	base     *menu.Node
	display  device.Display
	input    device.Input
	settings *Settings
}

func New(base *menu.Node, display device.Display, input device.Input, settings *Settings) *App {
	return &App{base: base, display: display, input: input, settings: settings}
}

func (app *App) Settings() *Settings {
	return app.settings
}

// Screen is the node on display: the top of the screen stack rooted at the base node.
func (app *App) Screen() *menu.Node {
	return app.base.ScreenTop()
}

// Frame renders the screen cropped or padded to the display size.
func (app *App) Frame() (grid.Block, grid.Position, bool) {
	screen := app.Screen()
	size := app.display.Size()
	frame := grid.Translate(screen.Block(), size, grid.Position{}, false, grid.Filler)
	cursor, visible := screen.CursorPosition()
	return frame, cursor, visible && cursor.In(size)
}

func (app *App) Render() error {
	frame, cursor, visible := app.Frame()
	return app.display.Show(frame, cursor, visible)
}

func (app *App) Handle(trigger menu.Trigger) error {
	screen := app.Screen()
	handled, err := menu.Deliver(trigger, screen)
	if !handled {
		log.Printf("trigger %s not handled on %q", trigger, screen.Name())
	}
	return err
}

// Run renders the first frame, then handles triggers until the input ends or ctx is done.
// Action errors are logged, display errors end the loop.
func (app *App) Run(ctx context.Context) error {
	if err := app.Render(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		trigger, ok := app.input.Poll()
		if !ok {
			log.Printf("input ended")
			return nil
		}
		if err := app.Handle(trigger); err != nil {
			log.Printf("### %v", err)
		}
		if err := app.Render(); err != nil {
			return err
		}
	}
}
