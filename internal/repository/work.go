package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// WorkRepository is the root of the structural hierarchy (§3 "Work owns
// Documents"). Works have no parent, so List takes no ParentID.
type WorkRepository interface {
	Create(ctx context.Context, w *entity.Work) (*entity.Work, error)
	Update(ctx context.Context, w *entity.Work) (*entity.Work, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Work, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Work, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}
