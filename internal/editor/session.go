// Package editor wires the doctree and markdown sub-packages into the
// Block Editor Core's session lifecycle (§4.5): open a Section, edit its
// Document in memory, and save dirty containers back through
// repository.BlockRepository in one transaction.
package editor

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/editor/doctree"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// EditSession holds one Section's in-memory document plus the last saved
// snapshot. Dirty is computed by comparing Current against Saved with
// doctree.Diff, so the session itself carries no separate dirty flag
// beyond what the tree's pointer identity already encodes, except for
// the boolean returned by IsDirty for callers that just need a gate.
type EditSession struct {
	blocks    repository.BlockRepository
	sectionID entity.ID

	Saved   *doctree.Document
	Current *doctree.Document

	orderIndex map[entity.ID]int64
	metadata   map[entity.ID]entity.Document
}

// Open loads every Block in a Section, in display order, into a fresh
// EditSession. The returned session's Saved and Current point at the same
// Document value until the first edit diverges them.
func Open(ctx context.Context, blocks repository.BlockRepository, sectionID entity.ID) (*EditSession, error) {
	const pageSize = 10000
	rows, _, err := blocks.List(ctx, &repository.ListQuery{
		ParentID:   &sectionID,
		Pagination: repository.Pagination{PageNo: 1, PageSize: pageSize},
		FilterOrder: repository.FilterOrder{OrderBy: repository.DefaultSiblingOrder},
	})
	if err != nil {
		return nil, err
	}

	containers := make([]*doctree.Container, 0, len(rows))
	orderIndex := make(map[entity.ID]int64, len(rows))
	metadata := make(map[entity.ID]entity.Document, len(rows))
	for _, b := range rows {
		c, err := doctree.FromBlock(b)
		if err != nil {
			return nil, fmt.Errorf("parse block %s: %w", b.ID, err)
		}
		containers = append(containers, c)
		orderIndex[b.ID] = b.OrderIndex
		metadata[b.ID] = b.Metadata
	}

	doc := doctree.New(sectionID, containers)
	return &EditSession{
		blocks: blocks, sectionID: sectionID,
		Saved: doc, Current: doc,
		orderIndex: orderIndex, metadata: metadata,
	}, nil
}

// IsDirty reports whether any container differs from the saved snapshot,
// per the reference-identity rule in doctree.Diff.
func (s *EditSession) IsDirty() bool {
	for _, kind := range doctree.Diff(s.Saved, s.Current) {
		if kind != doctree.DirtyClean {
			return true
		}
	}
	return false
}

// Save serializes every dirty container to canonical source_text and
// issues one BlockRepository.BatchUpdate transaction (§4.5 "the entire
// save is one transaction"). On success, Current becomes the new Saved
// snapshot. On failure, Current and Saved are both left untouched so the
// dirty state is preserved exactly as before the attempt.
func (s *EditSession) Save(ctx context.Context) error {
	diff := doctree.Diff(s.Saved, s.Current)
	batch := repository.BlockBatch{}

	byID := make(map[entity.ID]*doctree.Container, len(s.Current.Containers))
	for i, c := range s.Current.Containers {
		byID[c.ID] = c
		s.orderIndex[c.ID] = int64(i + 1)
	}

	for id, kind := range diff {
		switch kind {
		case doctree.DirtyClean:
			continue
		case doctree.DirtyDelete:
			batch.Deletes = append(batch.Deletes, id)
			continue
		case doctree.DirtyCreate, doctree.DirtyUpdate:
			c := byID[id]
			b, err := doctree.ToBlock(c, s.sectionID, s.orderIndex[id], s.metadata[id])
			if err != nil {
				return fmt.Errorf("serialize block %s: %w", id, err)
			}
			if kind == doctree.DirtyCreate {
				batch.Creates = append(batch.Creates, b)
			} else {
				batch.Updates = append(batch.Updates, b)
			}
		}
	}

	if len(batch.Creates) == 0 && len(batch.Updates) == 0 && len(batch.Deletes) == 0 {
		s.Saved = s.Current
		return nil
	}

	if err := s.blocks.BatchUpdate(ctx, batch); err != nil {
		return err
	}
	s.Saved = s.Current
	return nil
}

// Discard drops in-memory edits, resetting Current back to the last saved
// snapshot without touching storage.
func (s *EditSession) Discard() {
	s.Current = s.Saved
}

// ConfirmNavigateAway implements the navigation-away guard (§4.5): callers
// must check IsDirty and obtain explicit confirmation before discarding or
// leaving an edit session; this helper centralizes that check so every
// front-end enforces it identically.
func (s *EditSession) ConfirmNavigateAway(confirmed bool) error {
	if s.IsDirty() && !confirmed {
		return entity.InvariantViolation("unsaved changes in section %s require confirmation before navigating away", s.sectionID)
	}
	return nil
}
