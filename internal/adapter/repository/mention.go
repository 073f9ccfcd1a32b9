package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/mention"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type mentionRepository struct{ client *entdb.Client }

func NewMentionRepository(client *entdb.Client) repository.MentionRepository {
	return &mentionRepository{client: client}
}

func (r *mentionRepository) Create(ctx context.Context, m *entity.Mention) (*entity.Mention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Block.Get(ctx, m.BlockID); err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", m.BlockID), err)
	}
	if _, err := r.client.SemanticEntity.Get(ctx, m.EntityID); err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", m.EntityID), err)
	}
	exists, err := r.client.Mention.Query().
		Where(mention.BlockIDEQ(m.BlockID), mention.EntityIDEQ(m.EntityID), mention.LanguageEQ(m.Language.Code())).
		Exist(ctx)
	if err != nil {
		return nil, fmt.Errorf("check mention uniqueness: %w", err)
	}
	if exists {
		return nil, entity.Conflict(m.ID.String(), "mention of entity %s already exists on block %s in %s", m.EntityID, m.BlockID, m.Language.Code())
	}
	row, err := r.client.Mention.Create().
		SetID(m.ID).
		SetBlockID(m.BlockID).
		SetEntityID(m.EntityID).
		SetLanguage(m.Language.Code()).
		SetFeatures(m.Features.Clone()).
		SetSurface(m.Surface).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("mention %s", m.ID), err)
	}
	return mapMention(row), nil
}

func (r *mentionRepository) Update(ctx context.Context, m *entity.Mention) (*entity.Mention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Mention.UpdateOneID(m.ID).
		SetFeatures(m.Features.Clone()).
		SetSurface(m.Surface).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("mention %s", m.ID), err)
	}
	return mapMention(row), nil
}

func (r *mentionRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Mention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Mention.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("mention %s", id), err)
	}
	return mapMention(row), nil
}

func (r *mentionRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Mention, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	query := r.client.Mention.Query()
	if q.ParentID != nil {
		query = query.Where(mention.BlockIDEQ(*q.ParentID))
	}
	return r.execList(ctx, query, q)
}

func (r *mentionRepository) ListByEntity(ctx context.Context, entityID entity.ID, q *repository.ListQuery) ([]*entity.Mention, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	query := r.client.Mention.Query().Where(mention.EntityIDEQ(entityID))
	return r.execList(ctx, query, q)
}

func (r *mentionRepository) execList(ctx context.Context, query *entdb.MentionQuery, q *repository.ListQuery) ([]*entity.Mention, int64, error) {
	var p mentionParams
	if err := filterexpr.Bind(q, &p, mentionSchema); err != nil {
		return nil, 0, err
	}
	if p.Language != "" {
		query = query.Where(mention.LanguageEQ(p.Language))
	}
	if p.Surface != "" {
		query = query.Where(mention.SurfaceHasPrefix(p.Surface))
	}
	query = applyMentionOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count mentions: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list mentions: %w", err)
	}
	out := make([]*entity.Mention, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMention(row))
	}
	return out, int64(total), nil
}

func (r *mentionRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Mention.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("mention %s", id), err)
	}
	return nil
}

func mapMention(row *entdb.Mention) *entity.Mention {
	return &entity.Mention{
		ID:        row.ID,
		BlockID:   row.BlockID,
		EntityID:  row.EntityID,
		Language:  entity.Language(row.Language),
		Features:  entity.Document(row.Features),
		Surface:   row.Surface,
		CreatedAt: row.CreatedAt,
	}
}
