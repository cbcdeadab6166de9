package tcell

import (
	"context"
	"image/color"
	"log"
	"os"
	"sync"

	"lcdmenu/device"
	"lcdmenu/grid"
	"lcdmenu/lifecycle"
	"lcdmenu/menu"
	"lcdmenu/stream"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

var (
	styleLcd    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x101010)).Background(tcell.NewHexColor(0x9fcf3f))
	styleBezel  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xdfdfdf)).Background(tcell.NewHexColor(0x001040))
	defStyle    = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	bezelOrigin = grid.Position{X: 1, Y: 1}
)

// Device shows the character grid inside a bezel on a terminal and turns key presses into
// triggers.
type Device struct {
	screen tcell.Screen
	size   grid.Size
	keys   device.KeyMap
	events *stream.Stream[menu.Trigger]
	lc     *lifecycle.Lifecycle

	mu    sync.Mutex
	frame grid.Block
	once  sync.Once

	output *termenv.Output
	fg, bg termenv.Color
}

func NewDevice(ctx context.Context, size grid.Size, keys device.KeyMap) (*Device, error) {
	output := termenv.NewOutput(os.Stdout)
	fg := output.ForegroundColor()
	bg := output.BackgroundColor()
	p := termenv.ColorProfile()
	output.SetBackgroundColor(p.FromColor(color.RGBA{0, 16, 64, 255}))
	output.SetForegroundColor(p.FromColor(color.RGBA{223, 223, 223, 255}))

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	d, err := newDevice(ctx, screen, size, keys)
	if err != nil {
		return nil, err
	}
	d.output, d.fg, d.bg = output, fg, bg
	return d, nil
}

func newDevice(ctx context.Context, screen tcell.Screen, size grid.Size, keys device.KeyMap) (*Device, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(defStyle)
	screen.HideCursor()

	d := &Device{
		screen: screen,
		size:   size,
		keys:   keys,
		events: stream.NewStream[menu.Trigger]("tcell keys"),
		lc:     lifecycle.New(ctx),
	}
	d.drawBezel()
	d.lc.Go(d.pollEvents)
	return d, nil
}

func (d *Device) pollEvents() {
	defer d.events.Close()
	for !d.lc.ShouldStop() {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return

		case *tcell.EventResize:
			d.redraw()

		case *tcell.EventKey:
			log.Printf("key: name=%v rune='%v' mod=%v", ev.Name(), ev.Rune(), ev.Modifiers())
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				return
			}
			if trigger, ok := d.keys[ev.Name()]; ok {
				d.events.Push(trigger)
			}
		}
	}
}

func (d *Device) Poll() (menu.Trigger, bool) {
	return d.events.Pull()
}

func (d *Device) Size() grid.Size {
	return d.size
}

func (d *Device) Show(frame grid.Block, cursor grid.Position, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, cell := range device.Diff(d.frame, frame) {
		pos := cell.Position.Add(bezelOrigin)
		d.screen.SetContent(pos.X, pos.Y, cell.Rune, nil, styleLcd)
	}
	d.frame = frame
	d.placeCursor(cursor, visible)
	d.screen.Show()
	return nil
}

func (d *Device) placeCursor(cursor grid.Position, visible bool) {
	if !visible || !cursor.In(d.size) {
		d.screen.HideCursor()
		return
	}
	pos := cursor.Add(bezelOrigin)
	d.screen.ShowCursor(pos.X, pos.Y)
}

func (d *Device) redraw() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Clear()
	d.drawBezel()
	for _, cell := range device.Diff(nil, d.frame) {
		pos := cell.Position.Add(bezelOrigin)
		d.screen.SetContent(pos.X, pos.Y, cell.Rune, nil, styleLcd)
	}
	d.screen.Sync()
}

func (d *Device) drawBezel() {
	w, h := d.size.Width+2, d.size.Height+2
	for x := 0; x < w; x++ {
		d.screen.SetContent(x, 0, tcell.RuneHLine, nil, styleBezel)
		d.screen.SetContent(x, h-1, tcell.RuneHLine, nil, styleBezel)
	}
	for y := 0; y < h; y++ {
		d.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBezel)
		d.screen.SetContent(w-1, y, tcell.RuneVLine, nil, styleBezel)
	}
	d.screen.SetContent(0, 0, tcell.RuneULCorner, nil, styleBezel)
	d.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, styleBezel)
	d.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, styleBezel)
	d.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, styleBezel)
	for y := 0; y < d.size.Height; y++ {
		for x := 0; x < d.size.Width; x++ {
			d.screen.SetContent(x+1, y+1, grid.Filler, nil, styleLcd)
		}
	}
}

// Stop releases the terminal. It is safe to call more than once.
func (d *Device) Stop() {
	d.once.Do(func() {
		d.screen.Fini()
		d.lc.Stop()
		if d.output != nil {
			d.output.SetForegroundColor(d.fg)
			d.output.SetBackgroundColor(d.bg)
		}
	})
}
