package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloaderLoadsEnqueuedURLs(t *testing.T) {
	var mu sync.Mutex
	downloaded := make(map[string]int)

	p := NewImagePreloader(func(url string) error {
		mu.Lock()
		downloaded[url]++
		mu.Unlock()
		return nil
	})

	p.Enqueue([]string{"https://example.com/a.png", "https://example.com/b.png"})

	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)

	assert.True(t, p.IsLoaded("https://example.com/a.png"))
	assert.True(t, p.IsLoaded("https://example.com/b.png"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, downloaded["https://example.com/a.png"])
	assert.Equal(t, 1, downloaded["https://example.com/b.png"])
}

func TestPreloaderSkipsDuplicatesAndEmptyURLs(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	p := NewImagePreloader(func(url string) error {
		calls.Add(1)
		<-release
		return nil
	})

	// Same URL queued three times while the first download is blocked
	p.Enqueue([]string{"https://example.com/a.png", ""})
	p.Enqueue([]string{"https://example.com/a.png"})
	p.Enqueue([]string{"https://example.com/a.png"})

	close(release)
	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), calls.Load(), "duplicate enqueues must download once")
	assert.False(t, p.IsLoaded(""), "empty URL is never tracked")

	// Re-enqueue after completion is also a no-op
	p.Enqueue([]string{"https://example.com/a.png"})
	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPreloaderBoundsConcurrency(t *testing.T) {
	var current, peak atomic.Int32
	release := make(chan struct{})

	p := NewImagePreloader(func(url string) error {
		n := current.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		<-release
		current.Add(-1)
		return nil
	})

	urls := make([]string, 20)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/%d.png", i)
	}
	p.Enqueue(urls)

	// All six slots fill while the rest wait in the queue
	require.Eventually(t, func() bool {
		return current.Load() == MaxConcurrentPreloads
	}, time.Second, 5*time.Millisecond)

	stats := p.Stats()
	assert.Equal(t, MaxConcurrentPreloads, stats.Loading)
	assert.Equal(t, len(urls)-MaxConcurrentPreloads, stats.Queued)

	close(release)
	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)

	assert.LessOrEqual(t, peak.Load(), int32(MaxConcurrentPreloads))
	assert.Equal(t, len(urls), p.Stats().Loaded)
}

func TestPreloaderFailedDownloadStaysUnloaded(t *testing.T) {
	p := NewImagePreloader(func(url string) error {
		if url == "https://example.com/bad.png" {
			return fmt.Errorf("connection reset")
		}
		return nil
	})

	p.Enqueue([]string{"https://example.com/bad.png", "https://example.com/good.png"})
	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)

	assert.False(t, p.IsLoaded("https://example.com/bad.png"))
	assert.True(t, p.IsLoaded("https://example.com/good.png"))

	// The failure is not retried on later enqueues of other URLs
	stats := p.Stats()
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 0, stats.Queued)
}

func TestPreloaderIsLoadedFalseWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	p := NewImagePreloader(func(url string) error {
		close(started)
		<-release
		return nil
	})

	p.Enqueue([]string{"https://example.com/slow.png"})
	<-started

	assert.False(t, p.IsLoaded("https://example.com/slow.png"))

	close(release)
	require.Eventually(t, func() bool {
		return p.IsLoaded("https://example.com/slow.png")
	}, time.Second, 5*time.Millisecond)
}

func TestPreloaderStatsSnapshot(t *testing.T) {
	p := NewImagePreloader(func(url string) error { return nil })

	stats := p.Stats()
	assert.Equal(t, PreloadStats{}, stats)

	p.Enqueue([]string{"https://example.com/a.png"})
	require.Eventually(t, p.Idle, time.Second, 5*time.Millisecond)

	stats = p.Stats()
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 1, stats.Total)
}
