package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// EntityCreate creates a SemanticEntity. Its Properties bag doubles as the
// "property" noun named in §4.4 — properties are set via EntityUpdate
// rather than a separate repository, since they live on the same row.
func (a *App) EntityCreate(ctx context.Context, opts Options, e *entity.SemanticEntity) (*entity.SemanticEntity, error) {
	if e.ID == (entity.ID{}) {
		e.ID = entity.NewID()
	}
	if e.Status == "" {
		e.Status = entity.EntityStatusActive
	}
	if opts.DryRun {
		return e, a.Out.Message(fmt.Sprintf("would create entity %s %q", e.ID, e.Label))
	}
	created, err := a.SemanticEntity.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(entityFields(created), created)
}

func (a *App) EntityGet(ctx context.Context, id entity.ID) (*entity.SemanticEntity, error) {
	e, err := a.SemanticEntity.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, a.Out.Record(entityFields(e), e)
}

func (a *App) EntityList(ctx context.Context, q *repository.ListQuery) ([]*entity.SemanticEntity, error) {
	rows, _, err := a.SemanticEntity.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, e := range rows {
		fieldRows = append(fieldRows, entityFields(e))
	}
	return rows, a.Out.List(fieldRows, rows)
}

// EntityUpdate persists SemanticEntity field changes, including the
// Properties bag (the "property set" operation named in §4.4).
func (a *App) EntityUpdate(ctx context.Context, e *entity.SemanticEntity) (*entity.SemanticEntity, error) {
	updated, err := a.SemanticEntity.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(entityFields(updated), updated)
}

// EntityDelete deletes a SemanticEntity. Cascading to EntityLabels,
// EntityWorkMetadata and Mentions is enforced at the schema FK level (see
// internal/adapter/repository/semantic.go), so no descendant enumeration is
// needed here the way WorkDelete/DocDelete/SectionDelete require one.
func (a *App) EntityDelete(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete entity %s", id))
	}
	if err := a.SemanticEntity.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted entity %s", id))
}

func entityFields(e *entity.SemanticEntity) []output.Field {
	return []output.Field{
		{Key: "id", Value: e.ID.String()},
		{Key: "type", Value: e.TypeTag},
		{Key: "label", Value: e.Label},
		{Key: "status", Value: string(e.Status)},
	}
}

// LabelAdd attaches a language-specific EntityLabel to a SemanticEntity
// (§4.4 "entity/label ... CRUD"); the (Entity, Language) uniqueness
// invariant is enforced by the repository.
func (a *App) LabelAdd(ctx context.Context, opts Options, l *entity.EntityLabel) (*entity.EntityLabel, error) {
	if l.ID == (entity.ID{}) {
		l.ID = entity.NewID()
	}
	if opts.DryRun {
		return l, a.Out.Message(fmt.Sprintf("would add %s label %q to entity %s", l.Language.Code(), l.BaseForm, l.EntityID))
	}
	created, err := a.EntityLabel.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(labelFields(created), created)
}

func (a *App) LabelList(ctx context.Context, q *repository.ListQuery) ([]*entity.EntityLabel, error) {
	rows, _, err := a.EntityLabel.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, l := range rows {
		fieldRows = append(fieldRows, labelFields(l))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) LabelUpdate(ctx context.Context, l *entity.EntityLabel) (*entity.EntityLabel, error) {
	updated, err := a.EntityLabel.Update(ctx, l)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(labelFields(updated), updated)
}

func (a *App) LabelRemove(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would remove label %s", id))
	}
	if err := a.EntityLabel.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("removed label %s", id))
}

func labelFields(l *entity.EntityLabel) []output.Field {
	return []output.Field{
		{Key: "id", Value: l.ID.String()},
		{Key: "entity_id", Value: l.EntityID.String()},
		{Key: "language", Value: l.Language.Code()},
		{Key: "base_form", Value: l.BaseForm},
	}
}

// NoteSet upserts the per-Work overlay on a SemanticEntity (§4.4 "... /note
// CRUD"): notes and metadata scoped to one Work without touching the
// entity's global record.
func (a *App) NoteSet(ctx context.Context, opts Options, m *entity.EntityWorkMetadata) (*entity.EntityWorkMetadata, error) {
	if opts.DryRun {
		return m, a.Out.Message(fmt.Sprintf("would set work note on entity %s for work %s", m.EntityID, m.WorkID))
	}
	saved, err := a.EntityWorkMeta.Upsert(ctx, m)
	if err != nil {
		return nil, err
	}
	return saved, a.Out.Record(noteFields(saved), saved)
}

func (a *App) NoteGet(ctx context.Context, entityID, workID entity.ID) (*entity.EntityWorkMetadata, error) {
	m, err := a.EntityWorkMeta.Get(ctx, entityID, workID)
	if err != nil {
		return nil, err
	}
	return m, a.Out.Record(noteFields(m), m)
}

func (a *App) NoteList(ctx context.Context, q *repository.ListQuery) ([]*entity.EntityWorkMetadata, error) {
	rows, _, err := a.EntityWorkMeta.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, m := range rows {
		fieldRows = append(fieldRows, noteFields(m))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) NoteClear(ctx context.Context, opts Options, entityID, workID entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would clear work note on entity %s for work %s", entityID, workID))
	}
	if err := a.EntityWorkMeta.Delete(ctx, entityID, workID); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("cleared work note on entity %s for work %s", entityID, workID))
}

func noteFields(m *entity.EntityWorkMetadata) []output.Field {
	return []output.Field{
		{Key: "entity_id", Value: m.EntityID.String()},
		{Key: "work_id", Value: m.WorkID.String()},
		{Key: "notes", Value: m.Notes},
	}
}
