package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// SemanticEntityRepository manages SemanticEntity records, which have no
// Work parent (§3 "semantic referent independent of any Work") — ListQuery
// is used for filtering only, ParentID is always nil.
type SemanticEntityRepository interface {
	Create(ctx context.Context, e *entity.SemanticEntity) (*entity.SemanticEntity, error)
	Update(ctx context.Context, e *entity.SemanticEntity) (*entity.SemanticEntity, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.SemanticEntity, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.SemanticEntity, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}

// EntityLabelRepository manages EntityLabels. ParentID on ListQuery is the
// owning SemanticEntity's identifier. Create enforces the (Entity,
// Language) uniqueness invariant from §3.
type EntityLabelRepository interface {
	Create(ctx context.Context, l *entity.EntityLabel) (*entity.EntityLabel, error)
	Update(ctx context.Context, l *entity.EntityLabel) (*entity.EntityLabel, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.EntityLabel, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.EntityLabel, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}

// EntityWorkMetadataRepository manages the per-Work overlay on a
// SemanticEntity. Its key is the (Entity, Work) pair, not a single
// identifier, so it uses its own Get/Delete signature instead of the
// common GetByID/Delete(id) shape.
type EntityWorkMetadataRepository interface {
	Upsert(ctx context.Context, m *entity.EntityWorkMetadata) (*entity.EntityWorkMetadata, error)
	Get(ctx context.Context, entityID, workID entity.ID) (*entity.EntityWorkMetadata, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.EntityWorkMetadata, int64, error)
	Delete(ctx context.Context, entityID, workID entity.ID) error
}
