package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) BlockCreate(ctx context.Context, opts Options, b *entity.Block) (*entity.Block, error) {
	if b.ID == (entity.ID{}) {
		b.ID = entity.NewID()
	}
	b.Normalize()
	if opts.DryRun {
		return b, a.Out.Message(fmt.Sprintf("would create block %s (%s) under section %s", b.ID, b.Kind, b.SectionID))
	}
	created, err := a.Block.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(blockFields(created), created)
}

func (a *App) BlockGet(ctx context.Context, id entity.ID) (*entity.Block, error) {
	b, err := a.Block.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, a.Out.Record(blockFields(b), b)
}

func (a *App) BlockList(ctx context.Context, q *repository.ListQuery) ([]*entity.Block, error) {
	rows, _, err := a.Block.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, b := range rows {
		fieldRows = append(fieldRows, blockFields(b))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) BlockUpdate(ctx context.Context, b *entity.Block) (*entity.Block, error) {
	b.Normalize()
	updated, err := a.Block.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(blockFields(updated), updated)
}

func (a *App) BlockDelete(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete block %s", id))
	}
	if err := a.Block.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted block %s", id))
}

// BlockReorder rewrites OrderIndex for every Block in a Section to match the
// caller-supplied identifier order (§4.4 "block reordering"). It issues one
// BatchUpdate so the reorder is atomic even though every row changes.
func (a *App) BlockReorder(ctx context.Context, opts Options, sectionID entity.ID, orderedIDs []entity.ID) error {
	current, _, err := a.Block.List(ctx, &repository.ListQuery{ParentID: &sectionID, Pagination: repository.Pagination{PageNo: 1, PageSize: 10000}})
	if err != nil {
		return err
	}
	byID := make(map[entity.ID]*entity.Block, len(current))
	for _, b := range current {
		byID[b.ID] = b
	}
	if len(orderedIDs) != len(current) {
		return entity.InvalidInput("order", "reorder must name exactly the %d block(s) currently in section %s, got %d", len(current), sectionID, len(orderedIDs))
	}
	updates := make([]*entity.Block, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		b, ok := byID[id]
		if !ok {
			return entity.InvalidInput("order", "block %s is not in section %s", id, sectionID)
		}
		b.OrderIndex = int64(i + 1)
		updates = append(updates, b)
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would reorder %d block(s) in section %s", len(updates), sectionID))
	}
	if err := a.Block.BatchUpdate(ctx, repository.BlockBatch{Updates: updates}); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("reordered %d block(s) in section %s", len(updates), sectionID))
}

// BlockBatchUpdate saves every block in one BatchUpdate call (§4.5 "the
// entire save is one transaction"), the Resource Model's entry point for
// the Editor Session's keystroke-coalesced writes over the wire.
func (a *App) BlockBatchUpdate(ctx context.Context, blocks []*entity.Block) ([]*entity.Block, error) {
	for _, b := range blocks {
		b.Normalize()
	}
	if err := a.Block.BatchUpdate(ctx, repository.BlockBatch{Updates: blocks}); err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(blocks))
	for _, b := range blocks {
		fieldRows = append(fieldRows, blockFields(b))
	}
	return blocks, a.Out.List(fieldRows, blocks)
}

func blockFields(b *entity.Block) []output.Field {
	return []output.Field{
		{Key: "id", Value: b.ID.String()},
		{Key: "section_id", Value: b.SectionID.String()},
		{Key: "kind", Value: string(b.Kind)},
		{Key: "language", Value: b.Language.Code()},
		{Key: "order_index", Value: fmt.Sprintf("%d", b.OrderIndex)},
	}
}
