package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// Refresher loads sources in the background so the first request for a
// source does not pay for reading and decoding it.
type Refresher interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(name string)
}

type refresher struct {
	dashboard   DashboardService
	queue       chan string
	concurrency int
	interval    time.Duration
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewRefresher builds a refresher with concurrency workers. A positive
// interval also reloads every source periodically.
func NewRefresher(dashboard DashboardService, concurrency int, interval time.Duration) Refresher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &refresher{
		dashboard:   dashboard,
		queue:       make(chan string, 100),
		concurrency: concurrency,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start launches the workers and queues every configured source once.
func (r *refresher) Start(ctx context.Context) {
	log.Printf("🚀 Starting source refresher with %d workers\n", r.concurrency)

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.processQueue(ctx, i+1)
	}

	if r.interval > 0 {
		r.wg.Add(1)
		go r.pollSources()
	}

	r.enqueueAll()
}

func (r *refresher) Stop() {
	r.stopOnce.Do(func() {
		log.Println("🛑 Stopping source refresher...")
		close(r.stopChan)
		r.wg.Wait()
		log.Println("✅ Source refresher stopped")
	})
}

func (r *refresher) Enqueue(name string) {
	select {
	case r.queue <- name:
	case <-r.stopChan:
		log.Printf("⚠️  Refresher stopped, cannot load %q\n", name)
	}
}

func (r *refresher) enqueueAll() {
	r.Enqueue(r.dashboard.PairsSource())
	for _, name := range r.dashboard.Sources() {
		r.Enqueue(name)
	}
}

func (r *refresher) processQueue(ctx context.Context, workerID int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		case name := <-r.queue:
			// Failures are not cached, the next request retries the load.
			if err := r.dashboard.Warm(ctx, name); err != nil {
				log.Printf("⚠️  Worker #%d could not load %q: %v\n", workerID, name, err)
			}
		}
	}
}

func (r *refresher) pollSources() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.dashboard.ReloadAll()
			r.enqueueAll()
		}
	}
}
