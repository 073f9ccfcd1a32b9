package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) SectionCreate(ctx context.Context, opts Options, s *entity.Section) (*entity.Section, error) {
	if s.ID == (entity.ID{}) {
		s.ID = entity.NewID()
	}
	if opts.DryRun {
		return s, a.Out.Message(fmt.Sprintf("would create section %s %q under document %s", s.ID, s.Title, s.DocumentID))
	}
	created, err := a.Section.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(sectionFields(created), created)
}

func (a *App) SectionGet(ctx context.Context, id entity.ID) (*entity.Section, error) {
	s, err := a.Section.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, a.Out.Record(sectionFields(s), s)
}

func (a *App) SectionList(ctx context.Context, q *repository.ListQuery) ([]*entity.Section, error) {
	rows, _, err := a.Section.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, s := range rows {
		fieldRows = append(fieldRows, sectionFields(s))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) SectionUpdate(ctx context.Context, s *entity.Section) (*entity.Section, error) {
	updated, err := a.Section.Update(ctx, s)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(sectionFields(updated), updated)
}

// childSections returns the Sections directly nested under parentID. Section
// nesting is carried on entity.Section.ParentID rather than as a ListQuery
// scope (§3: Sections list flat under their owning Document), so this scans
// the Document's full section list rather than issuing a narrower query.
func (a *App) childSections(ctx context.Context, documentID, parentID entity.ID) ([]*entity.Section, error) {
	all, _, err := a.Section.List(ctx, &repository.ListQuery{ParentID: &documentID, Pagination: repository.Pagination{PageNo: 1, PageSize: 10000}})
	if err != nil {
		return nil, err
	}
	var children []*entity.Section
	for _, s := range all {
		if s.ParentID != nil && *s.ParentID == parentID {
			children = append(children, s)
		}
	}
	return children, nil
}

// SectionDelete deletes a Section along with every nested Section and every
// Block it directly owns, subject to the non-empty-parent guard.
func (a *App) SectionDelete(ctx context.Context, opts Options, id entity.ID) error {
	s, err := a.Section.GetByID(ctx, id)
	if err != nil {
		return err
	}
	children, err := a.childSections(ctx, s.DocumentID, id)
	if err != nil {
		return err
	}
	blocks, _, err := a.Block.List(ctx, &repository.ListQuery{ParentID: &id, Pagination: repository.Pagination{PageNo: 1, PageSize: 10000}})
	if err != nil {
		return err
	}
	if (len(children) > 0 || len(blocks) > 0) && !opts.Force {
		return entity.InvariantViolation("section %s has %d nested section(s) and %d block(s); use --force to delete them too", id, len(children), len(blocks))
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete section %s, %d nested section(s) and %d block(s)", id, len(children), len(blocks)))
	}
	for _, c := range children {
		if err := a.SectionDelete(ctx, opts, c.ID); err != nil {
			return err
		}
	}
	for _, b := range blocks {
		if err := a.Block.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	if err := a.Section.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted section %s", id))
}

func sectionFields(s *entity.Section) []output.Field {
	parent := ""
	if s.ParentID != nil {
		parent = s.ParentID.String()
	}
	return []output.Field{
		{Key: "id", Value: s.ID.String()},
		{Key: "document_id", Value: s.DocumentID.String()},
		{Key: "parent_id", Value: parent},
		{Key: "title", Value: s.Title},
		{Key: "order_index", Value: fmt.Sprintf("%d", s.OrderIndex)},
	}
}
