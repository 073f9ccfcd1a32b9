package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/review"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type reviewRepository struct{ client *entdb.Client }

func NewReviewRepository(client *entdb.Client) repository.ReviewRepository {
	return &reviewRepository{client: client}
}

func (r *reviewRepository) Create(ctx context.Context, rv *entity.Review) (*entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Review.Create().
		SetID(rv.ID).
		SetScopeKind(string(rv.ScopeKind)).
		SetScopeID(rv.ScopeID).
		SetIssueType(rv.IssueType).
		SetMessage(rv.Message).
		SetSeverity(string(rv.Severity)).
		SetMetadata(rv.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("review %s", rv.ID), err)
	}
	return mapReview(row), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *entity.Review) (*entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Review.UpdateOneID(rv.ID).
		SetIssueType(rv.IssueType).
		SetMessage(rv.Message).
		SetSeverity(string(rv.Severity)).
		SetMetadata(rv.Metadata.Clone()).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("review %s", rv.ID), err)
	}
	return mapReview(row), nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.Review.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("review %s", id), err)
	}
	return mapReview(row), nil
}

func (r *reviewRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Review, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p reviewParams
	if err := filterexpr.Bind(q, &p, reviewSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.Review.Query()
	if q.ParentID != nil {
		query = query.Where(review.ScopeIDEQ(*q.ParentID))
	}
	if p.Severity != "" {
		query = query.Where(review.SeverityEQ(p.Severity))
	}
	if p.IssueType != "" {
		query = query.Where(review.IssueTypeEQ(p.IssueType))
	}
	query = applyReviewOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	out := make([]*entity.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapReview(row))
	}
	return out, int64(total), nil
}

func (r *reviewRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Review.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("review %s", id), err)
	}
	return nil
}

func mapReview(row *entdb.Review) *entity.Review {
	return &entity.Review{
		ID:        row.ID,
		ScopeKind: entity.ReviewScopeKind(row.ScopeKind),
		ScopeID:   row.ScopeID,
		IssueType: row.IssueType,
		Message:   row.Message,
		Severity:  entity.ReviewSeverity(row.Severity),
		Metadata:  entity.Document(row.Metadata),
		CreatedAt: row.CreatedAt,
	}
}
