package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_Burst(t *testing.T) {
	krl := New(1, 3)
	defer krl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, krl.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, krl.Allow("10.0.0.1"), "burst exhausted")
}

func TestAllow_KeysIndependent(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
	assert.Equal(t, 2, krl.Len())
}

func TestAllow_Disabled(t *testing.T) {
	krl := New(0, 0)
	defer krl.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, krl.Allow("a"))
	}
}

func TestEvict(t *testing.T) {
	krl := NewWithTTL(1, 1, time.Minute)
	defer krl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	krl.now = func() time.Time { return now }

	krl.Allow("old")
	now = now.Add(2 * time.Minute)
	krl.Allow("fresh")

	assert.Equal(t, 1, krl.Evict())
	assert.Equal(t, 1, krl.Len())
}

func TestAllow_Concurrent(t *testing.T) {
	krl := New(1000, 1000)
	defer krl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			krl.Allow("shared")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, krl.Len())
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
