// Package storage defines the persistence contract for the store and the
// fallback composition over its two backends.
//
// The primary backend is an embedded sqlite database; the fallback is a flat
// JSON-blob-per-collection file store. Both persist whole-collection
// snapshots (replace-all, not incremental): durable storage is a mirror of
// the in-memory state, never the other way around.
package storage

import (
	"context"
	"encoding/json"

	"stokpano/pkg/logger"
)

// Collection names shared by both backends.
const (
	CollectionLists   = "lists"
	CollectionFolders = "folders"
)

// Collections lists every known collection name.
func Collections() []string {
	return []string{CollectionLists, CollectionFolders}
}

// Document is one persisted entity: its id plus the JSON-encoded body.
// Backends treat the body as opaque.
type Document struct {
	ID   string
	Body json.RawMessage
}

// Backend reads and writes full collection snapshots.
type Backend interface {
	// Load returns every document of the collection, in saved order.
	// A collection that has never been saved yields an empty slice.
	Load(ctx context.Context, collection string) ([]Document, error)

	// Save replaces the entire collection with docs.
	Save(ctx context.Context, collection string, docs []Document) error

	// Wipe erases the named collections.
	Wipe(ctx context.Context, collections ...string) error

	Close() error
}

// Adapter composes the primary backend with the fallback. Every operation
// tries the primary first and degrades to the fallback on any error; callers
// never learn which backend served them.
type Adapter struct {
	primary  Backend
	fallback Backend
	log      *logger.Logger
}

// NewAdapter creates an Adapter. Either backend may be nil, in which case the
// other one carries all traffic.
func NewAdapter(primary, fallback Backend, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Nop()
	}
	return &Adapter{
		primary:  primary,
		fallback: fallback,
		log:      log.WithComponent("storage"),
	}
}

// Load reads the collection, falling back on primary failure. A collection
// absent from both backends is an empty slice, not an error.
func (a *Adapter) Load(ctx context.Context, collection string) ([]Document, error) {
	if a.primary != nil {
		docs, err := a.primary.Load(ctx, collection)
		if err == nil {
			return docs, nil
		}
		a.log.Warnw("primary load failed, using fallback", "collection", collection, "error", err)
	}
	if a.fallback == nil {
		return []Document{}, nil
	}
	docs, err := a.fallback.Load(ctx, collection)
	if err != nil {
		a.log.Errorw("fallback load failed", "collection", collection, "error", err)
		return []Document{}, nil
	}
	return docs, nil
}

// Save mirrors the snapshot, falling back on primary failure. The returned
// error is reported only when both backends fail; the in-memory state stays
// authoritative regardless.
func (a *Adapter) Save(ctx context.Context, collection string, docs []Document) error {
	if a.primary != nil {
		if err := a.primary.Save(ctx, collection, docs); err == nil {
			return nil
		} else {
			a.log.Warnw("primary save failed, using fallback", "collection", collection, "error", err)
		}
	}
	if a.fallback == nil {
		return nil
	}
	if err := a.fallback.Save(ctx, collection, docs); err != nil {
		a.log.Errorw("fallback save failed", "collection", collection, "error", err)
		return err
	}
	return nil
}

// Wipe erases the collections from both backends.
func (a *Adapter) Wipe(ctx context.Context, collections ...string) error {
	var firstErr error
	if a.primary != nil {
		if err := a.primary.Wipe(ctx, collections...); err != nil {
			a.log.Warnw("primary wipe failed", "error", err)
			firstErr = err
		}
	}
	if a.fallback != nil {
		if err := a.fallback.Wipe(ctx, collections...); err != nil {
			a.log.Warnw("fallback wipe failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close closes both backends.
func (a *Adapter) Close() error {
	var firstErr error
	if a.primary != nil {
		if err := a.primary.Close(); err != nil {
			firstErr = err
		}
	}
	if a.fallback != nil {
		if err := a.fallback.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
