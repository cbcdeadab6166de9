package stream

import (
	"log"
	"sync"
)

// Stream is an unbounded FIFO handing elements from producer goroutines to one consumer.
type Stream[T any] struct {
	name     string
	elements []T
	closed   bool
	*sync.Cond
}

func NewStream[T any](name string) *Stream[T] {
	return &Stream[T]{
		Cond: sync.NewCond(&sync.Mutex{}),
		name: name,
	}
}

// Push reports false when the stream is already closed.
func (s *Stream[T]) Push(msg T) bool {
	s.Cond.L.Lock()
	defer s.Cond.L.Unlock()
	if s.closed {
		log.Printf("stream %s: push after close dropped", s.name)
		return false
	}
	s.elements = append(s.elements, msg)
	s.Cond.Signal()
	return true
}

// Pull blocks until an element is available. After Close it drains the remaining elements,
// then reports false.
func (s *Stream[T]) Pull() (T, bool) {
	s.Cond.L.Lock()
	defer s.Cond.L.Unlock()
	for len(s.elements) == 0 && !s.closed {
		s.Cond.Wait()
	}
	if len(s.elements) == 0 {
		var zero T
		return zero, false
	}
	msg := s.elements[0]
	s.elements = s.elements[1:]
	return msg, true
}

func (s *Stream[T]) Close() {
	s.Cond.L.Lock()
	s.closed = true
	s.Cond.Broadcast()
	s.Cond.L.Unlock()
}

func (s *Stream[T]) Len() int {
	s.Cond.L.Lock()
	defer s.Cond.L.Unlock()
	return len(s.elements)
}
