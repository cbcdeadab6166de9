package device

import (
	"sync"

	"lcdmenu/menu"
	"lcdmenu/stream"
)

// Merged interleaves the triggers of several inputs in arrival order. It ends as soon as
// any of its inputs ends.
type Merged struct {
	events *stream.Stream[menu.Trigger]
	inputs []Input
	once   sync.Once
}

func Merge(inputs ...Input) *Merged {
	m := &Merged{events: stream.NewStream[menu.Trigger]("merged"), inputs: inputs}
	if len(inputs) == 0 {
		m.events.Close()
	}
	for _, input := range inputs {
		go m.pump(input)
	}
	return m
}

func (m *Merged) pump(input Input) {
	defer m.events.Close()
	for {
		trigger, ok := input.Poll()
		if !ok || !m.events.Push(trigger) {
			return
		}
	}
}

func (m *Merged) Poll() (menu.Trigger, bool) {
	return m.events.Pull()
}

// Close ends the merged input and stops the inputs that have a Stop method. An input without
// one keeps its reader blocked until it ends on its own.
func (m *Merged) Close() {
	m.events.Close()
	m.once.Do(func() {
		for _, input := range m.inputs {
			if s, ok := input.(interface{ Stop() }); ok {
				s.Stop()
			}
		}
	})
}
