package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) ReviewCreate(ctx context.Context, opts Options, r *entity.Review) (*entity.Review, error) {
	if r.ID == (entity.ID{}) {
		r.ID = entity.NewID()
	}
	if opts.DryRun {
		return r, a.Out.Message(fmt.Sprintf("would record %s review %q on %s %s", r.Severity, r.IssueType, r.ScopeKind, r.ScopeID))
	}
	created, err := a.Review.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(reviewFields(created), created)
}

func (a *App) ReviewGet(ctx context.Context, id entity.ID) (*entity.Review, error) {
	r, err := a.Review.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r, a.Out.Record(reviewFields(r), r)
}

func (a *App) ReviewList(ctx context.Context, q *repository.ListQuery) ([]*entity.Review, error) {
	rows, _, err := a.Review.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, r := range rows {
		fieldRows = append(fieldRows, reviewFields(r))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) ReviewUpdate(ctx context.Context, r *entity.Review) (*entity.Review, error) {
	updated, err := a.Review.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(reviewFields(updated), updated)
}

func (a *App) ReviewDelete(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete review %s", id))
	}
	if err := a.Review.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted review %s", id))
}

func reviewFields(r *entity.Review) []output.Field {
	return []output.Field{
		{Key: "id", Value: r.ID.String()},
		{Key: "scope_kind", Value: string(r.ScopeKind)},
		{Key: "scope_id", Value: r.ScopeID.String()},
		{Key: "issue_type", Value: r.IssueType},
		{Key: "severity", Value: string(r.Severity)},
		{Key: "message", Value: r.Message},
	}
}
