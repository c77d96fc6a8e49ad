package service

import (
	"log"
	"sync"
)

// MaxConcurrentPreloads is the ceiling on simultaneous image downloads
const MaxConcurrentPreloads = 6

// PreloadStats is a snapshot of the preloader's progress
type PreloadStats struct {
	Loaded  int `json:"loaded"`
	Loading int `json:"loading"`
	Queued  int `json:"queued"`
	Total   int `json:"total"`
}

// ImagePreloader downloads image URLs ahead of rendering so that later
// requests are served from the local image cache. Downloads run with bounded
// concurrency; a failed download is logged and dropped, never retried.
// One instance is shared per process, owned by the application wiring.
type ImagePreloader struct {
	download func(url string) error

	mu       sync.Mutex
	loaded   map[string]bool
	loading  map[string]bool
	queued   map[string]bool
	queue    []string
	inFlight int
}

// NewImagePreloader creates a preloader that runs download for each URL.
// download must be safe for concurrent use.
func NewImagePreloader(download func(url string) error) *ImagePreloader {
	return &ImagePreloader{
		download: download,
		loaded:   make(map[string]bool),
		loading:  make(map[string]bool),
		queued:   make(map[string]bool),
	}
}

// Enqueue adds image URLs to the preload queue in FIFO order. URLs that are
// empty, already loaded, already queued or currently downloading are skipped,
// so enqueuing the same URL twice causes exactly one download.
func (p *ImagePreloader) Enqueue(urls []string) {
	p.mu.Lock()

	added := 0
	for _, url := range urls {
		if url == "" || p.loaded[url] || p.loading[url] || p.queued[url] {
			continue
		}
		p.queued[url] = true
		p.queue = append(p.queue, url)
		added++
	}

	if added > 0 {
		log.Printf("📥 Adding %d images to preload queue", added)
	}
	p.processQueueLocked()
	p.mu.Unlock()
}

// IsLoaded reports whether url completed downloading successfully. It stays
// false while the URL is queued or downloading, and permanently false after
// a failed download.
func (p *ImagePreloader) IsLoaded(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded[url]
}

// Stats returns a snapshot of the preloader's progress
func (p *ImagePreloader) Stats() PreloadStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PreloadStats{
		Loaded:  len(p.loaded),
		Loading: p.inFlight,
		Queued:  len(p.queue),
		Total:   len(p.loaded) + p.inFlight + len(p.queue),
	}
}

// Idle reports whether the queue is drained and no download is in flight
func (p *ImagePreloader) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight == 0 && len(p.queue) == 0
}

// processQueueLocked starts downloads while capacity remains.
// Caller must hold p.mu.
func (p *ImagePreloader) processQueueLocked() {
	for p.inFlight < MaxConcurrentPreloads && len(p.queue) > 0 {
		url := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.queued, url)

		if p.loaded[url] || p.loading[url] {
			continue
		}

		p.loading[url] = true
		p.inFlight++
		go p.run(url)
	}

	if p.inFlight == 0 && len(p.queue) == 0 && len(p.loaded) > 0 {
		log.Printf("🎉 Image preload queue drained (%d loaded)", len(p.loaded))
	}
}

// run downloads a single URL and then pulls the next queued one
func (p *ImagePreloader) run(url string) {
	err := p.download(url)

	p.mu.Lock()
	delete(p.loading, url)
	p.inFlight--
	if err != nil {
		log.Printf("❌ Failed to preload %s: %v", truncateURL(url), err)
	} else {
		p.loaded[url] = true
	}
	p.processQueueLocked()
	p.mu.Unlock()
}

func truncateURL(url string) string {
	if len(url) > 80 {
		return url[:80] + "..."
	}
	return url
}
