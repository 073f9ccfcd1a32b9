package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// WorkCreate implements "work init" (§4.4). Callers that don't supply an
// identifier get one minted here (entity.NewID), matching every other
// noun's create path.
func (a *App) WorkCreate(ctx context.Context, opts Options, w *entity.Work) (*entity.Work, error) {
	if w.ID == (entity.ID{}) {
		w.ID = entity.NewID()
	}
	if opts.DryRun {
		return w, a.Out.Message(fmt.Sprintf("would create work %s %q", w.ID, w.Title))
	}
	created, err := a.Work.Create(ctx, w)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(workFields(created), created)
}

func (a *App) WorkGet(ctx context.Context, id entity.ID) (*entity.Work, error) {
	w, err := a.Work.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return w, a.Out.Record(workFields(w), w)
}

func (a *App) WorkList(ctx context.Context, q *repository.ListQuery) ([]*entity.Work, error) {
	rows, _, err := a.Work.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, w := range rows {
		fieldRows = append(fieldRows, workFields(w))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) WorkUpdate(ctx context.Context, w *entity.Work) (*entity.Work, error) {
	updated, err := a.Work.Update(ctx, w)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(workFields(updated), updated)
}

// WorkDelete deletes a Work along with every Document nested under it,
// unless it has descendants and opts.Force is unset (§4.4 non-empty-parent
// guard). The descendant enumeration is performed up front so a dry-run or
// a rejected delete can name what would be lost.
func (a *App) WorkDelete(ctx context.Context, opts Options, id entity.ID) error {
	docs, _, err := a.Doc.List(ctx, &repository.ListQuery{ParentID: &id, Pagination: repository.Pagination{PageNo: 1, PageSize: 1000}})
	if err != nil {
		return err
	}
	if len(docs) > 0 && !opts.Force {
		names := make([]string, 0, len(docs))
		for _, d := range docs {
			names = append(names, d.ID.String())
		}
		return entity.InvariantViolation("work %s has %d document(s) %v; use --force to delete them too", id, len(docs), names)
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete work %s and %d document(s)", id, len(docs)))
	}
	for _, d := range docs {
		if err := a.DocDelete(ctx, opts, d.ID); err != nil {
			return err
		}
	}
	if err := a.Work.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted work %s", id))
}

func workFields(w *entity.Work) []output.Field {
	return []output.Field{
		{Key: "id", Value: w.ID.String()},
		{Key: "title", Value: w.Title},
		{Key: "language", Value: w.Language.Code()},
		{Key: "created_at", Value: w.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")},
	}
}
