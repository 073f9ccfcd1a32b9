package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// BlockRepository manages Blocks. ParentID on ListQuery is the owning
// Section's identifier.
//
// BatchUpdate is the Editor Core's save primitive (§4.5 "the entire save is
// one transaction"): creates, updates, and deletes are issued together and
// either all apply or none do.
type BlockRepository interface {
	Create(ctx context.Context, b *entity.Block) (*entity.Block, error)
	Update(ctx context.Context, b *entity.Block) (*entity.Block, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Block, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Block, int64, error)
	Delete(ctx context.Context, id entity.ID) error
	BatchUpdate(ctx context.Context, batch BlockBatch) error
}

// BlockBatch is the create/update/delete set produced by one Editor Core
// save, keyed by the dirty-block classification in §4.5.
type BlockBatch struct {
	Creates []*entity.Block
	Updates []*entity.Block
	Deletes []entity.ID
}
