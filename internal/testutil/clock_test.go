package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqClock_Monotonic(t *testing.T) {
	c := NewSeqClock()

	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())

	c.Reset()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
}

func TestSeqClock_ConcurrentNext(t *testing.T) {
	c := NewSeqClock()

	const goroutines = 8
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Next()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*perGoroutine), c.Current())
}

func TestFixedIDGenerator(t *testing.T) {
	g := NewFixedIDGenerator("run-123")
	assert.Equal(t, "run-123", g.NewID())
	assert.Equal(t, "run-123", g.NewID())

	assert.Equal(t, "test-run-default", NewFixedIDGenerator("").NewID())
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := UUIDGenerator{}
	assert.NotEqual(t, g.NewID(), g.NewID())
}
