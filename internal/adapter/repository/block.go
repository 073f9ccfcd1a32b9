package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/block"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type blockRepository struct{ client *entdb.Client }

func NewBlockRepository(client *entdb.Client) repository.BlockRepository {
	return &blockRepository{client: client}
}

func (r *blockRepository) Create(ctx context.Context, b *entity.Block) (*entity.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Section.Get(ctx, b.SectionID); err != nil {
		return nil, translateEntError(fmt.Sprintf("section %s", b.SectionID), err)
	}
	if _, err := r.client.Block.Get(ctx, b.ID); err == nil {
		return nil, entity.Conflict(b.ID.String(), "block %s already exists", b.ID)
	}
	if b.OrderIndex == 0 {
		idx, err := r.nextOrderIndex(ctx, b.SectionID)
		if err != nil {
			return nil, err
		}
		b.OrderIndex = idx
	}
	row, err := r.createBuilder(r.client.Block.Create(), b).Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", b.ID), err)
	}
	return mapBlock(row), nil
}

func (r *blockRepository) createBuilder(create *entdb.BlockCreate, b *entity.Block) *entdb.BlockCreate {
	return create.
		SetID(b.ID).
		SetSectionID(b.SectionID).
		SetKind(string(b.Kind)).
		SetLanguage(b.Language.Code()).
		SetSourceText(b.SourceText).
		SetOrderIndex(b.OrderIndex).
		SetMetadata(b.Metadata.Clone())
}

func (r *blockRepository) Update(ctx context.Context, b *entity.Block) (*entity.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Block.UpdateOneID(b.ID).
		SetKind(string(b.Kind)).
		SetLanguage(b.Language.Code()).
		SetSourceText(b.SourceText).
		SetOrderIndex(b.OrderIndex).
		SetMetadata(b.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", b.ID), err)
	}
	return mapBlock(row), nil
}

func (r *blockRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Block.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", id), err)
	}
	return mapBlock(row), nil
}

func (r *blockRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Block, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p blockParams
	if err := filterexpr.Bind(q, &p, blockSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.Block.Query()
	if q.ParentID != nil {
		query = query.Where(block.SectionIDEQ(*q.ParentID))
	}
	if p.Language != "" {
		query = query.Where(block.LanguageEQ(p.Language))
	}
	if p.Kind != "" {
		query = query.Where(block.KindEQ(p.Kind))
	}
	query = applyBlockOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count blocks: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list blocks: %w", err)
	}
	out := make([]*entity.Block, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBlock(row))
	}
	return out, int64(total), nil
}

func (r *blockRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Block.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("block %s", id), err)
	}
	return nil
}

// BatchUpdate is the Editor Core's save primitive (§4.5, §5 "Every write
// operation that touches more than one row is performed inside a single
// transaction"). All creates, updates, and deletes of one save commit or
// roll back together.
func (r *blockRepository) BatchUpdate(ctx context.Context, batch repository.BlockBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := r.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin batch save transaction: %w", err)
	}

	for _, b := range batch.Creates {
		if _, err := r.createBuilder(tx.Block.Create(), b).Save(ctx); err != nil {
			return rollback(tx, translateEntError(fmt.Sprintf("block %s", b.ID), err))
		}
	}
	for _, b := range batch.Updates {
		_, err := tx.Block.UpdateOneID(b.ID).
			SetKind(string(b.Kind)).
			SetLanguage(b.Language.Code()).
			SetSourceText(b.SourceText).
			SetOrderIndex(b.OrderIndex).
			SetMetadata(b.Metadata.Clone()).
			Save(ctx)
		if err != nil {
			return rollback(tx, translateEntError(fmt.Sprintf("block %s", b.ID), err))
		}
	}
	for _, id := range batch.Deletes {
		if err := tx.Block.DeleteOneID(id).Exec(ctx); err != nil {
			return rollback(tx, translateEntError(fmt.Sprintf("block %s", id), err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch save transaction: %w", err)
	}
	return nil
}

func rollback(tx *entdb.Tx, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%w (rollback also failed: %v)", cause, rbErr)
	}
	return cause
}

func (r *blockRepository) nextOrderIndex(ctx context.Context, sectionID entity.ID) (int64, error) {
	top, err := r.client.Block.Query().
		Where(block.SectionIDEQ(sectionID)).
		Order(entdb.Desc(block.FieldOrderIndex)).
		First(ctx)
	if entdb.IsNotFound(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve next order index: %w", err)
	}
	return top.OrderIndex + 1, nil
}

func mapBlock(row *entdb.Block) *entity.Block {
	return &entity.Block{
		ID:         row.ID,
		SectionID:  row.SectionID,
		CreatedAt:  row.CreatedAt,
		Kind:       entity.BlockKind(row.Kind),
		Language:   entity.Language(row.Language),
		SourceText: row.SourceText,
		OrderIndex: row.OrderIndex,
		Metadata:   entity.Document(row.Metadata),
	}
}
