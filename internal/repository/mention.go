package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// MentionRepository manages Mentions. ParentID on ListQuery is the owning
// Block's identifier for "list by block"; ListByEntity covers the
// complementary "list by entity" access pattern named in §4.4. Create
// enforces the (Block, Entity, Language) uniqueness invariant from §3.
type MentionRepository interface {
	Create(ctx context.Context, m *entity.Mention) (*entity.Mention, error)
	Update(ctx context.Context, m *entity.Mention) (*entity.Mention, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Mention, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Mention, int64, error)
	ListByEntity(ctx context.Context, entityID entity.ID, q *ListQuery) ([]*entity.Mention, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}
