package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/entity"
	"stokpano/internal/core/id"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/notify"
)

const exportVersion = 1

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ExportOptions controls the export byte form.
type ExportOptions struct {
	// Compress wraps the JSON snapshot in a zstd frame.
	Compress bool
}

type exportEnvelope struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Lists      []*list.PurchaseList `json:"lists"`
}

// ExportLists serializes the addressed active lists to a transportable byte
// form. An empty id set exports every active list. Unknown ids are skipped.
func (s *Store) ExportLists(ctx context.Context, listIDs []id.ID, opts ExportOptions) ([]byte, error) {
	s.mu.Lock()
	var subset []*list.PurchaseList
	if len(listIDs) == 0 {
		subset = cloneLists(s.lists)
	} else {
		// Non-nil even when every id misses: an empty export is a valid
		// payload and must round-trip through the importer.
		subset = make([]*list.PurchaseList, 0, len(listIDs))
		for _, lid := range listIDs {
			if l := s.activeListLocked(lid); l != nil {
				subset = append(subset, l.Clone())
			}
		}
	}
	now := s.now()
	s.mu.Unlock()

	data, err := json.Marshal(exportEnvelope{
		Version:    exportVersion,
		ExportedAt: now,
		Lists:      subset,
	})
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("encode export: %w", err))
	}

	if opts.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("init compressor: %w", err))
		}
		defer enc.Close()
		data = enc.EncodeAll(data, nil)
	}
	return data, nil
}

// ImportLists parses a previously exported payload (plain or zstd-wrapped)
// and appends its lists as newly identified active lists. Existing ids are
// never overwritten: every imported list gets a fresh identity. A payload
// that cannot be decoded fails outright; nothing is imported partially.
func (s *Store) ImportLists(ctx context.Context, data []byte) ([]*list.PurchaseList, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("init decompressor: %w", err))
		}
		defer dec.Close()
		plain, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, apperror.NewParse("cannot decompress import payload", err)
		}
		data = plain
	}

	var env exportEnvelope
	envErr := json.Unmarshal(data, &env)
	if envErr != nil || (env.Version == 0 && env.Lists == nil) {
		// Accept a bare list array as well as the envelope form. A decoded
		// envelope with null or empty lists is a valid empty export, not a
		// parse failure.
		var bare []*list.PurchaseList
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			if envErr == nil {
				envErr = bareErr
			}
			return nil, apperror.NewParse("cannot decode import payload", envErr)
		}
		env.Lists = bare
	}
	if len(env.Lists) == 0 {
		return nil, nil
	}

	now := s.now()
	imported := make([]*list.PurchaseList, 0, len(env.Lists))
	for _, l := range env.Lists {
		if l == nil {
			continue
		}
		in := l.Clone()
		in.Base = entity.NewBase(now)
		if in.Name == "" {
			in.Name = "Untitled List"
		}
		if !list.ValidStatus(in.Status) {
			in.Status = list.StatusDraft
		}
		if !list.ValidPriority(in.Priority) {
			in.Priority = list.PriorityNormal
		}
		if in.Items == nil {
			in.Items = []list.Item{}
		}
		imported = append(imported, in)
	}

	s.mu.Lock()
	for _, l := range imported {
		if l.FolderID != nil && s.activeFolderLocked(*l.FolderID) == nil {
			l.FolderID = nil
		}
		s.lists = append(s.lists, l)
	}
	s.listsChangedLocked()
	out := cloneLists(imported)
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Lists imported",
		fmt.Sprintf("%d list(s) imported", len(imported)), nil)
	return out, nil
}
