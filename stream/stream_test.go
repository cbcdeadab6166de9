package stream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPull(t *testing.T) {
	s := NewStream[int]("test")
	s.Push(1)
	s.Push(2)
	assert.Equal(t, 2, s.Len())
	v, ok := s.Pull()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, s.Len())
}

func TestPullWaitsForProducer(t *testing.T) {
	s := NewStream[string]("test")
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, msg := range []string{"a", "b", "c"} {
			s.Push(msg)
		}
		s.Close()
	}()

	var got []string
	for {
		msg, ok := s.Pull()
		if !ok {
			break
		}
		got = append(got, msg)
	}
	wg.Wait()
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.False(t, s.Push("d"))
}
