package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	b := NewBus[int]()
	defer b.Close()

	for i := 0; i < 100; i++ {
		assert.True(t, b.Publish(i))
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, i, <-b.Events())
	}
}

func TestBus_PublishNeverBlocksOnSlowConsumer(t *testing.T) {
	b := NewBus[int]()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10_000; i++ {
			b.Publish(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publisher blocked with no consumer attached")
	}
}

func TestBus_CloseDrainsBufferedValues(t *testing.T) {
	b := NewBus[int]()

	b.Publish(1)
	b.Publish(2)
	b.Close()

	var got []int
	for v := range b.Events() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestBus_PublishAfterCloseFails(t *testing.T) {
	b := NewBus[int]()
	b.Close()

	assert.False(t, b.Publish(42))
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	b := NewBus[int]()
	b.Close()
	b.Close()

	_, open := <-b.Events()
	assert.False(t, open)
}

func TestBus_ManyProducers(t *testing.T) {
	b := NewBus[int]()

	const producers = 8
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				require.True(t, b.Publish(i))
			}
		}()
	}

	go func() {
		wg.Wait()
		b.Close()
	}()

	count := 0
	for range b.Events() {
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}
