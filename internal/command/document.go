package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) DocCreate(ctx context.Context, opts Options, d *entity.Doc) (*entity.Doc, error) {
	if d.ID == (entity.ID{}) {
		d.ID = entity.NewID()
	}
	if opts.DryRun {
		return d, a.Out.Message(fmt.Sprintf("would create document %s %q under work %s", d.ID, d.Title, d.WorkID))
	}
	created, err := a.Doc.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(docFields(created), created)
}

func (a *App) DocGet(ctx context.Context, id entity.ID) (*entity.Doc, error) {
	d, err := a.Doc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, a.Out.Record(docFields(d), d)
}

func (a *App) DocList(ctx context.Context, q *repository.ListQuery) ([]*entity.Doc, error) {
	rows, _, err := a.Doc.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, d := range rows {
		fieldRows = append(fieldRows, docFields(d))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) DocUpdate(ctx context.Context, d *entity.Doc) (*entity.Doc, error) {
	updated, err := a.Doc.Update(ctx, d)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(docFields(updated), updated)
}

// DocDelete deletes a Document and every Section nested under it, subject
// to the same non-empty-parent guard as WorkDelete.
func (a *App) DocDelete(ctx context.Context, opts Options, id entity.ID) error {
	sections, _, err := a.Section.List(ctx, &repository.ListQuery{ParentID: &id, Pagination: repository.Pagination{PageNo: 1, PageSize: 1000}})
	if err != nil {
		return err
	}
	if len(sections) > 0 && !opts.Force {
		names := make([]string, 0, len(sections))
		for _, s := range sections {
			names = append(names, s.ID.String())
		}
		return entity.InvariantViolation("document %s has %d section(s) %v; use --force to delete them too", id, len(sections), names)
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete document %s and %d section(s)", id, len(sections)))
	}
	for _, s := range sections {
		// Nested sections are removed by their top-level ancestor's
		// SectionDelete.
		if s.ParentID != nil {
			continue
		}
		if err := a.SectionDelete(ctx, opts, s.ID); err != nil {
			return err
		}
	}
	if err := a.Doc.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted document %s", id))
}

func docFields(d *entity.Doc) []output.Field {
	return []output.Field{
		{Key: "id", Value: d.ID.String()},
		{Key: "work_id", Value: d.WorkID.String()},
		{Key: "title", Value: d.Title},
		{Key: "order_index", Value: fmt.Sprintf("%d", d.OrderIndex)},
	}
}
