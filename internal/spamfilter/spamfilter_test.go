package spamfilter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFiltered(cooldown time.Duration) (*Filter, *clock) {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	f := New(cooldown)
	f.now = c.Now
	return f, c
}

func TestAllowCooldown(t *testing.T) {
	f, c := newFiltered(time.Second)

	assert.True(t, f.Allow(1), "first message passes")
	assert.False(t, f.Allow(1), "second message within cooldown is blocked")
	assert.True(t, f.Allow(2), "users are independent")

	c.Advance(500 * time.Millisecond)
	assert.False(t, f.Allow(1))

	c.Advance(500 * time.Millisecond)
	assert.True(t, f.Allow(1), "cooldown elapsed")
}

func TestAllowZeroCooldown(t *testing.T) {
	f, _ := newFiltered(0)
	for i := 0; i < 10; i++ {
		assert.True(t, f.Allow(1))
	}
}

func TestEvict(t *testing.T) {
	f, c := newFiltered(time.Second)
	f.Allow(1)
	c.Advance(time.Minute)
	f.Allow(2)

	assert.Equal(t, 1, f.Evict(30*time.Second))
	assert.Equal(t, 1, f.Len())

	// idle below the cooldown is raised to it, so user 2 stays blocked
	assert.Equal(t, 0, f.Evict(time.Millisecond))
	assert.False(t, f.Allow(2))
}

func TestRunStopsOnCancel(t *testing.T) {
	f := New(time.Millisecond)
	f.Allow(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return f.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
