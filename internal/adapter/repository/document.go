package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/document"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type docRepository struct{ client *entdb.Client }

func NewDocRepository(client *entdb.Client) repository.DocRepository {
	return &docRepository{client: client}
}

func (r *docRepository) Create(ctx context.Context, d *entity.Doc) (*entity.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Work.Get(ctx, d.WorkID); err != nil {
		return nil, translateEntError(fmt.Sprintf("work %s", d.WorkID), err)
	}
	if _, err := r.client.Document.Get(ctx, d.ID); err == nil {
		return nil, entity.Conflict(d.ID.String(), "document %s already exists", d.ID)
	}
	if d.OrderIndex == 0 {
		idx, err := r.nextOrderIndex(ctx, d.WorkID)
		if err != nil {
			return nil, err
		}
		d.OrderIndex = idx
	}
	row, err := r.client.Document.Create().
		SetID(d.ID).
		SetWorkID(d.WorkID).
		SetNillableTitle(nilIfEmpty(d.Title)).
		SetOrderIndex(d.OrderIndex).
		SetMetadata(d.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("document %s", d.ID), err)
	}
	return mapDoc(row), nil
}

func (r *docRepository) Update(ctx context.Context, d *entity.Doc) (*entity.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Document.UpdateOneID(d.ID).
		SetNillableTitle(nilIfEmpty(d.Title)).
		SetOrderIndex(d.OrderIndex).
		SetMetadata(d.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("document %s", d.ID), err)
	}
	return mapDoc(row), nil
}

func (r *docRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Document.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("document %s", id), err)
	}
	return mapDoc(row), nil
}

func (r *docRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Doc, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p documentParams
	if err := filterexpr.Bind(q, &p, documentSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.Document.Query()
	if q.ParentID != nil {
		query = query.Where(document.WorkIDEQ(*q.ParentID))
	}
	if p.Title != "" {
		query = query.Where(document.TitleHasPrefix(p.Title))
	}
	query = applyDocumentOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	out := make([]*entity.Doc, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapDoc(row))
	}
	return out, int64(total), nil
}

func (r *docRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Document.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("document %s", id), err)
	}
	return nil
}

// nextOrderIndex assigns order_index as max+1 among siblings when the
// caller does not supply one (§4.3 "assigns order_index as max+1 within
// siblings when not supplied").
func (r *docRepository) nextOrderIndex(ctx context.Context, workID entity.ID) (int64, error) {
	top, err := r.client.Document.Query().
		Where(document.WorkIDEQ(workID)).
		Order(entdb.Desc(document.FieldOrderIndex)).
		First(ctx)
	if entdb.IsNotFound(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve next order index: %w", err)
	}
	return top.OrderIndex + 1, nil
}

func mapDoc(row *entdb.Document) *entity.Doc {
	return &entity.Doc{
		ID:         row.ID,
		WorkID:     row.WorkID,
		CreatedAt:  row.CreatedAt,
		Title:      derefStr(row.Title),
		OrderIndex: row.OrderIndex,
		Metadata:   entity.Document(row.Metadata),
	}
}
