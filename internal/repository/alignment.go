package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// BlockAlignmentRepository manages BlockAlignments. They are disposable and
// rebuildable (§3), so in addition to the usual CRUD it exposes
// DeleteBySourceBlock for bulk invalidation and an AlignmentGap report
// (entities with a label in the source language missing in the target,
// §4.4) surfaced directly here since it is a read-only derived query, not a
// stored entity.
type BlockAlignmentRepository interface {
	Create(ctx context.Context, a *entity.BlockAlignment) (*entity.BlockAlignment, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.BlockAlignment, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.BlockAlignment, int64, error)
	Delete(ctx context.Context, id entity.ID) error
	DeleteBySourceBlock(ctx context.Context, sourceBlockID entity.ID) error
	AlignmentGaps(ctx context.Context, workID entity.ID, sourceLang, targetLang entity.Language) ([]AlignmentGap, error)
}

// AlignmentGap names a SemanticEntity with a label in the source language
// but none in the target language, within the scope of one Work.
type AlignmentGap struct {
	EntityID     entity.ID
	CanonicalLabel string
	SourceLabel  string
}
