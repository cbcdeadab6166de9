package button

import (
	"bytes"
	"context"
	"log"
	"os"
	"time"

	"lcdmenu/lifecycle"
	"lcdmenu/menu"
	"lcdmenu/stream"
)

// Button is one push button sampled by a Poller.
type Button struct {
	Name    string
	Trigger menu.Trigger
	// Continuous repeats the trigger on every sample while the button is held.
	Continuous bool
	Check      func() bool

	pressed bool
}

// Update samples the button and reports whether it fires.
func (b *Button) Update() bool {
	pressed := b.Check()
	fire := pressed && (!b.pressed || b.Continuous)
	b.pressed = pressed
	return fire
}

// Pin reads a sysfs GPIO value file; an unreadable pin reads as released.
func Pin(path string, activeLow bool) func() bool {
	return func() bool {
		value, err := os.ReadFile(path)
		if err != nil {
			log.Printf("button pin %s: %v", path, err)
			return false
		}
		high := string(bytes.TrimSpace(value)) == "1"
		return high != activeLow
	}
}

// Poller samples its buttons at a fixed interval and queues the triggers they fire.
type Poller struct {
	buttons  []*Button
	interval time.Duration
	events   *stream.Stream[menu.Trigger]
	lc       *lifecycle.Lifecycle
}

func NewPoller(ctx context.Context, interval time.Duration, buttons ...*Button) *Poller {
	p := &Poller{
		buttons:  buttons,
		interval: interval,
		events:   stream.NewStream[menu.Trigger]("buttons"),
		lc:       lifecycle.New(ctx),
	}
	p.lc.Go(p.run)
	return p
}

func (p *Poller) run() {
	defer p.events.Close()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.lc.Context().Done():
			return
		case <-ticker.C:
			p.Scan()
		}
	}
}

// Scan samples every button once.
func (p *Poller) Scan() {
	for _, b := range p.buttons {
		if b.Update() {
			log.Printf("button %s: %s", b.Name, b.Trigger)
			p.events.Push(b.Trigger)
		}
	}
}

func (p *Poller) Poll() (menu.Trigger, bool) {
	return p.events.Pull()
}

func (p *Poller) Stop() {
	p.lc.Stop()
}
