package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/section"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type sectionRepository struct{ client *entdb.Client }

func NewSectionRepository(client *entdb.Client) repository.SectionRepository {
	return &sectionRepository{client: client}
}

func (r *sectionRepository) Create(ctx context.Context, s *entity.Section) (*entity.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Document.Get(ctx, s.DocumentID); err != nil {
		return nil, translateEntError(fmt.Sprintf("document %s", s.DocumentID), err)
	}
	if s.ParentID != nil {
		parent, err := r.client.Section.Get(ctx, *s.ParentID)
		if err != nil {
			return nil, translateEntError(fmt.Sprintf("section %s", *s.ParentID), err)
		}
		if parent.DocumentID != s.DocumentID {
			return nil, entity.InvariantViolation("parent section %s belongs to a different document", *s.ParentID)
		}
	}
	if _, err := r.client.Section.Get(ctx, s.ID); err == nil {
		return nil, entity.Conflict(s.ID.String(), "section %s already exists", s.ID)
	}
	if s.OrderIndex == 0 {
		idx, err := r.nextOrderIndex(ctx, s.DocumentID)
		if err != nil {
			return nil, err
		}
		s.OrderIndex = idx
	}
	create := r.client.Section.Create().
		SetID(s.ID).
		SetDocumentID(s.DocumentID).
		SetNillableTitle(nilIfEmpty(s.Title)).
		SetOrderIndex(s.OrderIndex).
		SetMetadata(s.Metadata.Clone())
	if s.ParentID != nil {
		create = create.SetParentSectionID(*s.ParentID)
	}
	row, err := create.Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("section %s", s.ID), err)
	}
	return mapSection(row), nil
}

func (r *sectionRepository) Update(ctx context.Context, s *entity.Section) (*entity.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Section.UpdateOneID(s.ID).
		SetNillableTitle(nilIfEmpty(s.Title)).
		SetOrderIndex(s.OrderIndex).
		SetMetadata(s.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("section %s", s.ID), err)
	}
	return mapSection(row), nil
}

func (r *sectionRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Section.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("section %s", id), err)
	}
	return mapSection(row), nil
}

func (r *sectionRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Section, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p sectionParams
	if err := filterexpr.Bind(q, &p, sectionSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.Section.Query()
	if q.ParentID != nil {
		query = query.Where(section.DocumentIDEQ(*q.ParentID))
	}
	if p.Title != "" {
		query = query.Where(section.TitleHasPrefix(p.Title))
	}
	query = applySectionOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count sections: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list sections: %w", err)
	}
	out := make([]*entity.Section, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSection(row))
	}
	return out, int64(total), nil
}

func (r *sectionRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Section.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("section %s", id), err)
	}
	return nil
}

func (r *sectionRepository) nextOrderIndex(ctx context.Context, docID entity.ID) (int64, error) {
	top, err := r.client.Section.Query().
		Where(section.DocumentIDEQ(docID)).
		Order(entdb.Desc(section.FieldOrderIndex)).
		First(ctx)
	if entdb.IsNotFound(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve next order index: %w", err)
	}
	return top.OrderIndex + 1, nil
}

func mapSection(row *entdb.Section) *entity.Section {
	return &entity.Section{
		ID:         row.ID,
		DocumentID: row.DocumentID,
		ParentID:   row.ParentSectionID,
		CreatedAt:  row.CreatedAt,
		Title:      derefStr(row.Title),
		OrderIndex: row.OrderIndex,
		Metadata:   entity.Document(row.Metadata),
	}
}
