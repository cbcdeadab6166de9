package button

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lcdmenu/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(states ...bool) func() bool {
	i := 0
	return func() bool {
		state := states[i]
		i++
		return state
	}
}

func fires(b *Button, samples int) []int {
	var result []int
	for i := 0; i < samples; i++ {
		if b.Update() {
			result = append(result, i)
		}
	}
	return result
}

func TestButtonFiresOnPressEdge(t *testing.T) {
	b := &Button{Name: "down", Trigger: menu.Down, Check: sequence(false, true, true, false, true)}
	assert.Equal(t, []int{1, 4}, fires(b, 5))
}

func TestContinuousButtonRepeats(t *testing.T) {
	b := &Button{Name: "down", Trigger: menu.Down, Continuous: true, Check: sequence(false, true, true, false, true)}
	assert.Equal(t, []int{1, 2, 4}, fires(b, 5))
}

func TestPin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))
	assert.True(t, Pin(path, false)())
	assert.False(t, Pin(path, true)())

	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0o644))
	assert.True(t, Pin(path, true)())
	assert.False(t, Pin(filepath.Join(t.TempDir(), "missing"), false)())
}

func TestPollerQueuesTriggers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	up := &Button{Name: "up", Trigger: menu.Up, Check: sequence(true, true)}
	sel := &Button{Name: "select", Trigger: menu.Select, Check: sequence(false, true)}
	poller := NewPoller(ctx, time.Hour, up, sel)

	poller.Scan()
	poller.Scan()
	trigger, ok := poller.Poll()
	require.True(t, ok)
	assert.Equal(t, menu.Up, trigger)
	trigger, ok = poller.Poll()
	require.True(t, ok)
	assert.Equal(t, menu.Select, trigger)

	cancel()
	_, ok = poller.Poll()
	assert.False(t, ok)
	poller.Stop()
}
