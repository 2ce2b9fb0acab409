package cache

import (
	"sync"
	"testing"
	"time"
)

type countingCleaner struct {
	mu    sync.Mutex
	calls int
	ping  chan struct{}
}

func (c *countingCleaner) CleanExpired() int {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	select {
	case c.ping <- struct{}{}:
	default:
	}
	return 0
}

func TestManager_RunsRegisteredCleaners(t *testing.T) {
	cleaner := &countingCleaner{ping: make(chan struct{}, 1)}

	m := NewManager()
	m.Register(cleaner)
	m.StartCleanup(5 * time.Millisecond)

	select {
	case <-cleaner.ping:
	case <-time.After(2 * time.Second):
		t.Fatal("cleaner never ran")
	}

	m.Stop()

	cleaner.mu.Lock()
	calls := cleaner.calls
	cleaner.mu.Unlock()
	if calls == 0 {
		t.Error("expected at least one cleanup pass")
	}
}

func TestManager_StopEndsCleanupLoop(t *testing.T) {
	m := NewManager()
	m.Register(&countingCleaner{ping: make(chan struct{}, 1)})
	m.StartCleanup(time.Hour)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
