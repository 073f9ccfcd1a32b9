package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/linguistics"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) MentionCreate(ctx context.Context, opts Options, m *entity.Mention) (*entity.Mention, error) {
	if m.ID == (entity.ID{}) {
		m.ID = entity.NewID()
	}
	if opts.DryRun {
		return m, a.Out.Message(fmt.Sprintf("would mention entity %s on block %s (%s)", m.EntityID, m.BlockID, m.Language.Code()))
	}
	created, err := a.Mention.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(mentionFields(created), created)
}

func (a *App) MentionGet(ctx context.Context, id entity.ID) (*entity.Mention, error) {
	m, err := a.Mention.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, a.Out.Record(mentionFields(m), m)
}

// MentionListByBlock implements the "list by block" access pattern (§4.4).
func (a *App) MentionListByBlock(ctx context.Context, q *repository.ListQuery) ([]*entity.Mention, error) {
	rows, _, err := a.Mention.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return rows, a.Out.List(mentionRows(rows), rows)
}

// MentionListByEntity implements the "list by entity" access pattern (§4.4).
func (a *App) MentionListByEntity(ctx context.Context, entityID entity.ID, q *repository.ListQuery) ([]*entity.Mention, error) {
	rows, _, err := a.Mention.ListByEntity(ctx, entityID, q)
	if err != nil {
		return nil, err
	}
	return rows, a.Out.List(mentionRows(rows), rows)
}

func (a *App) MentionUpdate(ctx context.Context, m *entity.Mention) (*entity.Mention, error) {
	updated, err := a.Mention.Update(ctx, m)
	if err != nil {
		return nil, err
	}
	return updated, a.Out.Record(mentionFields(updated), updated)
}

func (a *App) MentionDelete(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete mention %s", id))
	}
	if err := a.Mention.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted mention %s", id))
}

// MentionRender runs the Linguistics Interface (§4.7) over a Mention's
// Entity and grammatical Features to produce the text a front-end should
// display in place of the mention pill; it does not alter the stored
// Mention (the core never stores generated forms as canonical data).
func (a *App) MentionRender(ctx context.Context, id entity.ID, features linguistics.Features) (linguistics.Result, error) {
	m, err := a.Mention.GetByID(ctx, id)
	if err != nil {
		return linguistics.Result{}, err
	}
	e, err := a.SemanticEntity.GetByID(ctx, m.EntityID)
	if err != nil {
		return linguistics.Result{}, err
	}
	result := linguistics.SurfaceForm(m.Language, e.Label, features, e.Properties)
	return result, a.Out.Record([]output.Field{
		{Key: "text", Value: result.Text},
		{Key: "explanation", Value: result.Explanation},
	}, result)
}

func mentionRows(rows []*entity.Mention) [][]output.Field {
	out := make([][]output.Field, 0, len(rows))
	for _, m := range rows {
		out = append(out, mentionFields(m))
	}
	return out
}

func mentionFields(m *entity.Mention) []output.Field {
	return []output.Field{
		{Key: "id", Value: m.ID.String()},
		{Key: "block_id", Value: m.BlockID.String()},
		{Key: "entity_id", Value: m.EntityID.String()},
		{Key: "language", Value: m.Language.Code()},
		{Key: "surface", Value: m.Surface},
	}
}
