// Package store is the in-memory source of truth for purchase lists and
// folders. Four collections (active/archived x lists/folders) live entirely
// in memory after the initial load; every mutation is applied synchronously
// under one lock and mirrored to durable storage asynchronously afterwards.
//
// Durability is best effort: a failed mirror write never rolls back the
// in-memory change, and two rapid mutations may collapse into one snapshot
// write (latest wins).
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stokpano/internal/core/id"
	"stokpano/internal/domain/folder"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/notify"
	"stokpano/internal/domain/stats"
	"stokpano/internal/infrastructure/storage"
	"stokpano/pkg/logger"
)

// Store owns the canonical collections.
type Store struct {
	mu      sync.Mutex
	adapter *storage.Adapter
	log     *logger.Logger
	hub     *notify.Hub
	now     func() time.Time

	lists           []*list.PurchaseList
	archivedLists   []*list.PurchaseList
	folders         []*folder.Folder
	archivedFolders []*folder.Folder

	statistics stats.Statistics

	listsWriter   *collectionWriter
	foldersWriter *collectionWriter
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithNotifications attaches a notification hub.
func WithNotifications(hub *notify.Hub) Option {
	return func(s *Store) { s.hub = hub }
}

// New loads both collections through the adapter, partitions them into
// active and archived by the soft-delete flag, and computes the initial
// statistics.
func New(ctx context.Context, adapter *storage.Adapter, log *logger.Logger, opts ...Option) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		adapter: adapter,
		log:     log.WithComponent("store"),
		hub:     notify.NewHub(100),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.listsWriter = newCollectionWriter(storage.CollectionLists, adapter, s.log)
	s.foldersWriter = newCollectionWriter(storage.CollectionFolders, adapter, s.log)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	listDocs, err := s.adapter.Load(ctx, storage.CollectionLists)
	if err != nil {
		return err
	}
	for _, d := range listDocs {
		l := &list.PurchaseList{}
		if err := json.Unmarshal(d.Body, l); err != nil {
			s.log.Warnw("skipping undecodable list", "id", d.ID, "error", err)
			continue
		}
		if l.Items == nil {
			l.Items = []list.Item{}
		}
		if l.IsDeleted {
			s.archivedLists = append(s.archivedLists, l)
		} else {
			s.lists = append(s.lists, l)
		}
	}

	folderDocs, err := s.adapter.Load(ctx, storage.CollectionFolders)
	if err != nil {
		return err
	}
	for _, d := range folderDocs {
		f := &folder.Folder{}
		if err := json.Unmarshal(d.Body, f); err != nil {
			s.log.Warnw("skipping undecodable folder", "id", d.ID, "error", err)
			continue
		}
		if f.IsDeleted {
			s.archivedFolders = append(s.archivedFolders, f)
		} else {
			s.folders = append(s.folders, f)
		}
	}

	s.statistics = stats.Compute(s.lists, s.now())
	stats.Rollup(s.lists, s.folders)

	s.log.Infow("store loaded",
		"lists", len(s.lists),
		"archived_lists", len(s.archivedLists),
		"folders", len(s.folders),
		"archived_folders", len(s.archivedFolders),
	)
	return nil
}

// Notifications exposes the intent hub.
func (s *Store) Notifications() *notify.Hub {
	return s.hub
}

// Flush waits for all in-flight persistence writes to finish.
func (s *Store) Flush() {
	s.listsWriter.wait()
	s.foldersWriter.wait()
}

// Close flushes pending writes and closes the adapter.
func (s *Store) Close() error {
	s.Flush()
	return s.adapter.Close()
}

// Wipe clears all four collections and erases both persistence backends.
// Intended for account/data reset flows only.
func (s *Store) Wipe(ctx context.Context) error {
	s.mu.Lock()
	s.lists = nil
	s.archivedLists = nil
	s.folders = nil
	s.archivedFolders = nil
	s.statistics = stats.Compute(nil, s.now())
	s.mu.Unlock()

	// Let in-flight snapshots land before erasing, so a racing write cannot
	// resurrect wiped data.
	s.Flush()
	err := s.adapter.Wipe(ctx, storage.Collections()...)

	s.emit(notify.LevelInfo, "All data cleared", "", nil)
	return err
}

// --- Read accessors ---
//
// Accessors return deep copies: the store is the sole writer of its
// collections and hands out snapshots, never live pointers.

// Lists returns the active lists in insertion order.
func (s *Store) Lists() []*list.PurchaseList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLists(s.lists)
}

// ArchivedLists returns the soft-deleted lists.
func (s *Store) ArchivedLists() []*list.PurchaseList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLists(s.archivedLists)
}

// Folders returns the active folders.
func (s *Store) Folders() []*folder.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFolders(s.folders)
}

// ArchivedFolders returns the soft-deleted folders.
func (s *Store) ArchivedFolders() []*folder.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFolders(s.archivedFolders)
}

// GetListByID returns the active list with the given id.
func (s *Store) GetListByID(listID id.ID) (*list.PurchaseList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l := s.activeListLocked(listID); l != nil {
		return l.Clone(), true
	}
	return nil, false
}

// GetFolderByID returns the active folder with the given id.
func (s *Store) GetFolderByID(folderID id.ID) (*folder.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.activeFolderLocked(folderID); f != nil {
		return f.Clone(), true
	}
	return nil, false
}

// ListsInFolder returns the active lists filed under the folder.
func (s *Store) ListsInFolder(folderID id.ID) []*list.PurchaseList {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*list.PurchaseList
	for _, l := range s.lists {
		if l.FolderID != nil && *l.FolderID == folderID {
			out = append(out, l.Clone())
		}
	}
	return out
}

// ListsByStatus returns the active lists in the given status.
func (s *Store) ListsByStatus(status list.Status) []*list.PurchaseList {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*list.PurchaseList
	for _, l := range s.lists {
		if l.Status == status {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Statistics returns the current derived statistics.
func (s *Store) Statistics() stats.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStatistics(s.statistics)
}

// --- Actor context ---

type actorKey struct{}

// WithActor records who is performing mutations; used for deletedBy stamps.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

func actorFrom(ctx context.Context) string {
	if name, ok := ctx.Value(actorKey{}).(string); ok {
		return name
	}
	return ""
}

// --- Internals ---

func (s *Store) activeListLocked(listID id.ID) *list.PurchaseList {
	for _, l := range s.lists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

func (s *Store) archivedListLocked(listID id.ID) *list.PurchaseList {
	for _, l := range s.archivedLists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

func (s *Store) activeFolderLocked(folderID id.ID) *folder.Folder {
	for _, f := range s.folders {
		if f.ID == folderID {
			return f
		}
	}
	return nil
}

func (s *Store) archivedFolderLocked(folderID id.ID) *folder.Folder {
	for _, f := range s.archivedFolders {
		if f.ID == folderID {
			return f
		}
	}
	return nil
}

// listsChangedLocked recomputes derived state and mirrors the lists
// collection. Folder rollups are persisted only when a cached value moved.
func (s *Store) listsChangedLocked() {
	s.statistics = stats.Compute(s.lists, s.now())
	if stats.Rollup(s.lists, s.folders) > 0 {
		s.persistFoldersLocked()
	}
	s.persistListsLocked()
}

// foldersChangedLocked refreshes rollups and mirrors the folders collection.
func (s *Store) foldersChangedLocked() {
	stats.Rollup(s.lists, s.folders)
	s.persistFoldersLocked()
}

func (s *Store) persistListsLocked() {
	docs := make([]storage.Document, 0, len(s.lists)+len(s.archivedLists))
	docs = appendListDocs(docs, s.lists, s.log)
	docs = appendListDocs(docs, s.archivedLists, s.log)
	s.listsWriter.enqueue(docs)
}

func (s *Store) persistFoldersLocked() {
	docs := make([]storage.Document, 0, len(s.folders)+len(s.archivedFolders))
	docs = appendFolderDocs(docs, s.folders, s.log)
	docs = appendFolderDocs(docs, s.archivedFolders, s.log)
	s.foldersWriter.enqueue(docs)
}

func appendListDocs(docs []storage.Document, lists []*list.PurchaseList, log *logger.Logger) []storage.Document {
	for _, l := range lists {
		body, err := json.Marshal(l)
		if err != nil {
			log.Errorw("marshal list", "id", l.ID, "error", err)
			continue
		}
		docs = append(docs, storage.Document{ID: l.ID.String(), Body: body})
	}
	return docs
}

func appendFolderDocs(docs []storage.Document, folders []*folder.Folder, log *logger.Logger) []storage.Document {
	for _, f := range folders {
		body, err := json.Marshal(f)
		if err != nil {
			log.Errorw("marshal folder", "id", f.ID, "error", err)
			continue
		}
		docs = append(docs, storage.Document{ID: f.ID.String(), Body: body})
	}
	return docs
}

func (s *Store) emit(level notify.Level, msg, desc string, undo *notify.Undo) {
	s.hub.Emit(notify.Notification{
		Level:       level,
		Message:     msg,
		Description: desc,
		Undo:        undo,
		At:          s.now(),
	})
}

func cloneLists(in []*list.PurchaseList) []*list.PurchaseList {
	out := make([]*list.PurchaseList, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}

func cloneFolders(in []*folder.Folder) []*folder.Folder {
	out := make([]*folder.Folder, len(in))
	for i, f := range in {
		out[i] = f.Clone()
	}
	return out
}

func cloneStatistics(in stats.Statistics) stats.Statistics {
	out := in
	out.ByStatus = make(map[list.Status]int, len(in.ByStatus))
	for k, v := range in.ByStatus {
		out.ByStatus[k] = v
	}
	out.ByPriority = make(map[list.Priority]int, len(in.ByPriority))
	for k, v := range in.ByPriority {
		out.ByPriority[k] = v
	}
	out.PendingApproval = append([]id.ID(nil), in.PendingApproval...)
	out.UpcomingDue = append([]id.ID(nil), in.UpcomingDue...)
	return out
}
