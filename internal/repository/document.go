package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// DocRepository manages Docs (§3 "Document"), ordered children of a Work.
// ParentID on ListQuery is the owning Work's identifier.
type DocRepository interface {
	Create(ctx context.Context, d *entity.Doc) (*entity.Doc, error)
	Update(ctx context.Context, d *entity.Doc) (*entity.Doc, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Doc, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Doc, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}
