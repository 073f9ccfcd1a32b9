package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/work"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type workRepository struct{ client *entdb.Client }

// NewWorkRepository constructs the ent-backed WorkRepository. Works have no
// parent, so unlike the other repositories this one has no FK-existence
// check to run on Create.
func NewWorkRepository(client *entdb.Client) repository.WorkRepository {
	return &workRepository{client: client}
}

func (r *workRepository) Create(ctx context.Context, w *entity.Work) (*entity.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Work.Get(ctx, w.ID); err == nil {
		return nil, entity.Conflict(w.ID.String(), "work %s already exists", w.ID)
	}
	row, err := r.client.Work.Create().
		SetID(w.ID).
		SetNillableTitle(nilIfEmpty(w.Title)).
		SetNillableDescription(nilIfEmpty(w.Description)).
		SetLanguage(w.Language.Code()).
		SetMetadata(w.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("work %s", w.ID), err)
	}
	return mapWork(row), nil
}

func (r *workRepository) Update(ctx context.Context, w *entity.Work) (*entity.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Work.UpdateOneID(w.ID).
		SetNillableTitle(nilIfEmpty(w.Title)).
		SetNillableDescription(nilIfEmpty(w.Description)).
		SetLanguage(w.Language.Code()).
		SetMetadata(w.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("work %s", w.ID), err)
	}
	return mapWork(row), nil
}

func (r *workRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Work.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("work %s", id), err)
	}
	return mapWork(row), nil
}

func (r *workRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Work, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p workParams
	if err := filterexpr.Bind(q, &p, workSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.Work.Query()
	if p.Title != "" {
		query = query.Where(work.TitleHasPrefix(p.Title))
	}
	if p.Language != "" {
		query = query.Where(work.LanguageEQ(p.Language))
	}
	query = applyWorkOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count works: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list works: %w", err)
	}
	out := make([]*entity.Work, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapWork(row))
	}
	return out, int64(total), nil
}

func (r *workRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Work.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("work %s", id), err)
	}
	return nil
}

func mapWork(row *entdb.Work) *entity.Work {
	return &entity.Work{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt,
		Title:       derefStr(row.Title),
		Description: derefStr(row.Description),
		Language:    entity.Language(row.Language),
		Metadata:    entity.Document(row.Metadata),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
