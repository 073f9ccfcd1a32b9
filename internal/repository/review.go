package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// ReviewRepository manages Reviews. ListQuery's ParentID filters by scope
// identifier (work/document/section/block); callers pair it with a
// FilterOrder expression to additionally narrow by ScopeKind or Severity.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) (*entity.Review, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Review, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Review, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}
