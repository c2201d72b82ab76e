package events

import "sync"

// Bus is an unbounded multi-producer single-consumer channel. Publish
// never blocks on a slow consumer: a pump goroutine buffers in-flight
// values in a slice between the producer side and the consumer side.
type Bus[T any] struct {
	in   chan T
	out  chan T
	done chan struct{}
	once sync.Once
}

// NewBus creates a bus and starts its pump goroutine.
func NewBus[T any]() *Bus[T] {
	b := &Bus[T]{
		in:   make(chan T),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go b.pump()
	return b
}

// Publish enqueues v. It returns false if the bus is closed; a false
// return after a racing Close means the value was dropped.
func (b *Bus[T]) Publish(v T) bool {
	select {
	case <-b.done:
		return false
	case b.in <- v:
		return true
	}
}

// Events returns the consumer side. The channel closes after Close, once
// every value published before the close has been delivered.
func (b *Bus[T]) Events() <-chan T {
	return b.out
}

// Close stops the bus. Safe to call more than once and from any
// goroutine.
func (b *Bus[T]) Close() {
	b.once.Do(func() {
		close(b.done)
	})
}

func (b *Bus[T]) pump() {
	var buf []T
	for {
		if len(buf) == 0 {
			select {
			case v := <-b.in:
				buf = append(buf, v)
			case <-b.done:
				close(b.out)
				return
			}
			continue
		}
		select {
		case v := <-b.in:
			buf = append(buf, v)
		case b.out <- buf[0]:
			buf = buf[1:]
		case <-b.done:
			for _, v := range buf {
				b.out <- v
			}
			close(b.out)
			return
		}
	}
}
