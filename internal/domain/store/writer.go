package store

import (
	"context"
	"sync"

	"stokpano/internal/infrastructure/storage"
	"stokpano/pkg/logger"
)

// collectionWriter mirrors collection snapshots to the adapter on a
// background goroutine. Snapshots are latest-wins: if three mutations land
// before the writer gets scheduled, only the newest snapshot is written.
// This matches the store's weak-durability contract.
type collectionWriter struct {
	collection string
	adapter    *storage.Adapter
	log        *logger.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	latest  []storage.Document
	dirty   bool
	running bool
}

func newCollectionWriter(collection string, adapter *storage.Adapter, log *logger.Logger) *collectionWriter {
	w := &collectionWriter{
		collection: collection,
		adapter:    adapter,
		log:        log,
	}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// enqueue replaces the pending snapshot and starts the writer if needed.
func (w *collectionWriter) enqueue(docs []storage.Document) {
	w.mu.Lock()
	w.latest = docs
	w.dirty = true
	if !w.running {
		w.running = true
		go w.run()
	}
	w.mu.Unlock()
}

func (w *collectionWriter) run() {
	for {
		w.mu.Lock()
		if !w.dirty {
			w.running = false
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		docs := w.latest
		w.dirty = false
		w.mu.Unlock()

		// Persistence failures are logged, never surfaced: memory stays
		// authoritative for the session.
		if err := w.adapter.Save(context.Background(), w.collection, docs); err != nil {
			w.log.Errorw("snapshot write failed", "collection", w.collection, "error", err)
		}
	}
}

// wait blocks until no write is pending or in flight.
func (w *collectionWriter) wait() {
	w.mu.Lock()
	for w.running {
		w.idle.Wait()
	}
	w.mu.Unlock()
}
