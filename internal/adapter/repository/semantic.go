package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/entitylabel"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/entityworkmetadata"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/mention"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/semanticentity"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type semanticEntityRepository struct{ client *entdb.Client }

func NewSemanticEntityRepository(client *entdb.Client) repository.SemanticEntityRepository {
	return &semanticEntityRepository{client: client}
}

func (r *semanticEntityRepository) Create(ctx context.Context, e *entity.SemanticEntity) (*entity.SemanticEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.SemanticEntity.Get(ctx, e.ID); err == nil {
		return nil, entity.Conflict(e.ID.String(), "entity %s already exists", e.ID)
	}
	row, err := r.client.SemanticEntity.Create().
		SetID(e.ID).
		SetTypeTag(e.TypeTag).
		SetLabel(e.Label).
		SetProperties(e.Properties.Clone()).
		SetStatus(string(e.Status)).
		SetNillableNotes(nilIfEmpty(e.Notes)).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", e.ID), err)
	}
	return mapSemanticEntity(row), nil
}

func (r *semanticEntityRepository) Update(ctx context.Context, e *entity.SemanticEntity) (*entity.SemanticEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.SemanticEntity.UpdateOneID(e.ID).
		SetTypeTag(e.TypeTag).
		SetLabel(e.Label).
		SetProperties(e.Properties.Clone()).
		SetStatus(string(e.Status)).
		SetNillableNotes(nilIfEmpty(e.Notes)).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", e.ID), err)
	}
	return mapSemanticEntity(row), nil
}

func (r *semanticEntityRepository) GetByID(ctx context.Context, id entity.ID) (*entity.SemanticEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.SemanticEntity.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", id), err)
	}
	return mapSemanticEntity(row), nil
}

func (r *semanticEntityRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.SemanticEntity, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p semanticEntityParams
	if err := filterexpr.Bind(q, &p, semanticEntitySchema); err != nil {
		return nil, 0, err
	}
	query := r.client.SemanticEntity.Query()
	if p.TypeTag != "" {
		query = query.Where(semanticentity.TypeTagEQ(p.TypeTag))
	}
	if p.Status != "" {
		query = query.Where(semanticentity.StatusEQ(p.Status))
	}
	query = applySemanticEntityOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count entities: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list entities: %w", err)
	}
	out := make([]*entity.SemanticEntity, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSemanticEntity(row))
	}
	return out, int64(total), nil
}

// Delete cascades to EntityLabels, EntityWorkMetadata, and Mentions (§3
// "Deleting an Entity cascades to all its Mentions and overlays"). The
// schema declares no foreign-key edges, so the dependent rows are deleted
// here first, then the entity row; the deletes do not share a transaction.
func (r *semanticEntityRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.client.Mention.Delete().Where(mention.EntityIDEQ(id)).Exec(ctx); err != nil {
		return fmt.Errorf("delete entity mentions: %w", err)
	}
	if _, err := r.client.EntityLabel.Delete().Where(entitylabel.EntityIDEQ(id)).Exec(ctx); err != nil {
		return fmt.Errorf("delete entity labels: %w", err)
	}
	if _, err := r.client.EntityWorkMetadata.Delete().Where(entityworkmetadata.EntityIDEQ(id)).Exec(ctx); err != nil {
		return fmt.Errorf("delete entity work metadata: %w", err)
	}
	if err := r.client.SemanticEntity.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("entity %s", id), err)
	}
	return nil
}

func mapSemanticEntity(row *entdb.SemanticEntity) *entity.SemanticEntity {
	return &entity.SemanticEntity{
		ID:         row.ID,
		CreatedAt:  row.CreatedAt,
		TypeTag:    row.TypeTag,
		Label:      row.Label,
		Properties: entity.Document(row.Properties),
		Status:     entity.EntityStatus(row.Status),
		Notes:      derefStr(row.Notes),
	}
}

type entityLabelRepository struct{ client *entdb.Client }

func NewEntityLabelRepository(client *entdb.Client) repository.EntityLabelRepository {
	return &entityLabelRepository{client: client}
}

func (r *entityLabelRepository) Create(ctx context.Context, l *entity.EntityLabel) (*entity.EntityLabel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.SemanticEntity.Get(ctx, l.EntityID); err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", l.EntityID), err)
	}
	exists, err := r.client.EntityLabel.Query().
		Where(entitylabel.EntityIDEQ(l.EntityID), entitylabel.LanguageEQ(l.Language.Code())).
		Exist(ctx)
	if err != nil {
		return nil, fmt.Errorf("check entity label uniqueness: %w", err)
	}
	if exists {
		return nil, entity.Conflict(l.Language.Code(), "entity %s already has a %s label", l.EntityID, l.Language.Code())
	}
	row, err := r.client.EntityLabel.Create().
		SetID(l.ID).
		SetEntityID(l.EntityID).
		SetLanguage(l.Language.Code()).
		SetBaseForm(l.BaseForm).
		SetAliases(cloneStrings(l.Aliases)).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity label %s", l.ID), err)
	}
	return mapEntityLabel(row), nil
}

func (r *entityLabelRepository) Update(ctx context.Context, l *entity.EntityLabel) (*entity.EntityLabel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.EntityLabel.UpdateOneID(l.ID).
		SetBaseForm(l.BaseForm).
		SetAliases(cloneStrings(l.Aliases)).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity label %s", l.ID), err)
	}
	return mapEntityLabel(row), nil
}

func (r *entityLabelRepository) GetByID(ctx context.Context, id entity.ID) (*entity.EntityLabel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.EntityLabel.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity label %s", id), err)
	}
	return mapEntityLabel(row), nil
}

func (r *entityLabelRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.EntityLabel, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p entityLabelParams
	if err := filterexpr.Bind(q, &p, entityLabelSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.EntityLabel.Query()
	if q.ParentID != nil {
		query = query.Where(entitylabel.EntityIDEQ(*q.ParentID))
	}
	if p.Language != "" {
		query = query.Where(entitylabel.LanguageEQ(p.Language))
	}
	query = applyEntityLabelOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count entity labels: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list entity labels: %w", err)
	}
	out := make([]*entity.EntityLabel, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEntityLabel(row))
	}
	return out, int64(total), nil
}

func (r *entityLabelRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.EntityLabel.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("entity label %s", id), err)
	}
	return nil
}

func mapEntityLabel(row *entdb.EntityLabel) *entity.EntityLabel {
	return &entity.EntityLabel{
		ID:       row.ID,
		EntityID: row.EntityID,
		Language: entity.Language(row.Language),
		BaseForm: row.BaseForm,
		Aliases:  append([]string(nil), row.Aliases...),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}

type entityWorkMetadataRepository struct{ client *entdb.Client }

func NewEntityWorkMetadataRepository(client *entdb.Client) repository.EntityWorkMetadataRepository {
	return &entityWorkMetadataRepository{client: client}
}

// Upsert writes the per-Work overlay keyed by (entity_id, work_id),
// creating on first write and replacing wholesale thereafter — there is no
// partial-field update for this entity (§3 "Primary key is (Entity, Work)").
func (r *entityWorkMetadataRepository) Upsert(ctx context.Context, m *entity.EntityWorkMetadata) (*entity.EntityWorkMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.SemanticEntity.Get(ctx, m.EntityID); err != nil {
		return nil, translateEntError(fmt.Sprintf("entity %s", m.EntityID), err)
	}
	if _, err := r.client.Work.Get(ctx, m.WorkID); err != nil {
		return nil, translateEntError(fmt.Sprintf("work %s", m.WorkID), err)
	}
	existing, err := r.client.EntityWorkMetadata.Query().
		Where(entityworkmetadata.EntityIDEQ(m.EntityID), entityworkmetadata.WorkIDEQ(m.WorkID)).
		Only(ctx)
	switch {
	case entdb.IsNotFound(err):
		row, createErr := r.client.EntityWorkMetadata.Create().
			SetID(entity.NewID()).
			SetEntityID(m.EntityID).
			SetWorkID(m.WorkID).
			SetNillableNotes(nilIfEmpty(m.Notes)).
			SetMetadata(m.Metadata.Clone()).
			Save(ctx)
		if createErr != nil {
			return nil, translateEntError("entity work metadata", createErr)
		}
		return mapEntityWorkMetadata(row), nil
	case err != nil:
		return nil, fmt.Errorf("lookup entity work metadata: %w", err)
	default:
		row, updateErr := existing.Update().
			SetNillableNotes(nilIfEmpty(m.Notes)).
			SetMetadata(m.Metadata.Clone()).
			Save(ctx)
		if updateErr != nil {
			return nil, translateEntError("entity work metadata", updateErr)
		}
		return mapEntityWorkMetadata(row), nil
	}
}

func (r *entityWorkMetadataRepository) Get(ctx context.Context, entityID, workID entity.ID) (*entity.EntityWorkMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.EntityWorkMetadata.Query().
		Where(entityworkmetadata.EntityIDEQ(entityID), entityworkmetadata.WorkIDEQ(workID)).
		Only(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("entity work metadata (%s, %s)", entityID, workID), err)
	}
	return mapEntityWorkMetadata(row), nil
}

func (r *entityWorkMetadataRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.EntityWorkMetadata, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p entityWorkMetadataParams
	if err := filterexpr.Bind(q, &p, entityWorkMetadataSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.EntityWorkMetadata.Query()
	if q.ParentID != nil {
		query = query.Where(entityworkmetadata.WorkIDEQ(*q.ParentID))
	}
	query = applyEntityWorkMetadataOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count entity work metadata: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list entity work metadata: %w", err)
	}
	out := make([]*entity.EntityWorkMetadata, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEntityWorkMetadata(row))
	}
	return out, int64(total), nil
}

func (r *entityWorkMetadataRepository) Delete(ctx context.Context, entityID, workID entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := r.client.EntityWorkMetadata.Delete().
		Where(entityworkmetadata.EntityIDEQ(entityID), entityworkmetadata.WorkIDEQ(workID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete entity work metadata: %w", err)
	}
	if n == 0 {
		return entity.NotFound("entity work metadata (%s, %s)", entityID, workID)
	}
	return nil
}

func mapEntityWorkMetadata(row *entdb.EntityWorkMetadata) *entity.EntityWorkMetadata {
	return &entity.EntityWorkMetadata{
		EntityID: row.EntityID,
		WorkID:   row.WorkID,
		Notes:    derefStr(row.Notes),
		Metadata: entity.Document(row.Metadata),
	}
}
