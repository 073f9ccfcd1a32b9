package repository

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/block"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/blockalignment"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/document"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/entitylabel"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/mention"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/section"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

type blockAlignmentRepository struct{ client *entdb.Client }

func NewBlockAlignmentRepository(client *entdb.Client) repository.BlockAlignmentRepository {
	return &blockAlignmentRepository{client: client}
}

func (r *blockAlignmentRepository) Create(ctx context.Context, a *entity.BlockAlignment) (*entity.BlockAlignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := r.client.Block.Get(ctx, a.SourceBlock); err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", a.SourceBlock), err)
	}
	if _, err := r.client.Block.Get(ctx, a.TargetBlock); err != nil {
		return nil, translateEntError(fmt.Sprintf("block %s", a.TargetBlock), err)
	}
	row, err := r.client.BlockAlignment.Create().
		SetID(a.ID).
		SetSourceBlockID(a.SourceBlock).
		SetTargetBlockID(a.TargetBlock).
		SetKind(a.Kind).
		SetConfidence(a.Confidence).
		Save(ctx)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("alignment %s", a.ID), err)
	}
	return mapAlignment(row), nil
}

func (r *blockAlignmentRepository) GetByID(ctx context.Context, id entity.ID) (*entity.BlockAlignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := r.client.BlockAlignment.Get(ctx, id)
	if err != nil {
		return nil, translateEntError(fmt.Sprintf("alignment %s", id), err)
	}
	return mapAlignment(row), nil
}

func (r *blockAlignmentRepository) List(ctx context.Context, q *repository.ListQuery) ([]*entity.BlockAlignment, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p blockAlignmentParams
	if err := filterexpr.Bind(q, &p, blockAlignmentSchema); err != nil {
		return nil, 0, err
	}
	query := r.client.BlockAlignment.Query()
	if q.ParentID != nil {
		query = query.Where(blockalignment.Or(
			blockalignment.SourceBlockIDEQ(*q.ParentID),
			blockalignment.TargetBlockIDEQ(*q.ParentID),
		))
	}
	if p.Kind != "" {
		query = query.Where(blockalignment.KindEQ(p.Kind))
	}
	query = applyBlockAlignmentOrder(query, p)
	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count alignments: %w", err)
	}
	rows, err := query.Offset(int(q.Offset())).Limit(int(q.PageSize)).All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list alignments: %w", err)
	}
	out := make([]*entity.BlockAlignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAlignment(row))
	}
	return out, int64(total), nil
}

func (r *blockAlignmentRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.BlockAlignment.DeleteOneID(id).Exec(ctx); err != nil {
		return translateEntError(fmt.Sprintf("alignment %s", id), err)
	}
	return nil
}

// DeleteBySourceBlock bulk-invalidates every alignment rooted at a source
// Block (§3 "Disposable/rebuildable"), used before recomputing alignments.
func (r *blockAlignmentRepository) DeleteBySourceBlock(ctx context.Context, sourceBlockID entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.client.BlockAlignment.Delete().
		Where(blockalignment.SourceBlockIDEQ(sourceBlockID)).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete alignments by source block: %w", err)
	}
	return nil
}

// AlignmentGaps implements the report named in §4.4/§8 scenario 6: for every
// alignment whose source Block sits inside workID, collect entities
// mentioned in the source Block (in sourceLang) and report those that have
// no EntityLabel in targetLang. There are no declared ent edges between
// Block→Section→Document→Work (§3's hierarchy is modeled as plain FK
// columns, matching the teacher's flat-column convention), so the work scope
// is resolved with three narrowing queries rather than a single joined one.
func (r *blockAlignmentRepository) AlignmentGaps(ctx context.Context, workID entity.ID, sourceLang, targetLang entity.Language) ([]repository.AlignmentGap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docIDs, err := r.client.Document.Query().Where(document.WorkIDEQ(workID)).IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve work documents: %w", err)
	}
	if len(docIDs) == 0 {
		return nil, nil
	}
	sectionIDs, err := r.client.Section.Query().Where(section.DocumentIDIn(docIDs...)).IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve work sections: %w", err)
	}
	if len(sectionIDs) == 0 {
		return nil, nil
	}
	blockIDs, err := r.client.Block.Query().Where(block.SectionIDIn(sectionIDs...)).IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve work blocks: %w", err)
	}
	if len(blockIDs) == 0 {
		return nil, nil
	}

	alignments, err := r.client.BlockAlignment.Query().
		Where(blockalignment.SourceBlockIDIn(blockIDs...)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list work alignments: %w", err)
	}

	seen := make(map[entity.ID]bool)
	var gaps []repository.AlignmentGap
	for _, al := range alignments {
		mentions, err := r.client.Mention.Query().
			Where(mention.BlockIDEQ(al.SourceBlockID), mention.LanguageEQ(sourceLang.Code())).
			All(ctx)
		if err != nil {
			return nil, fmt.Errorf("list source mentions: %w", err)
		}
		for _, m := range mentions {
			if seen[m.EntityID] {
				continue
			}
			seen[m.EntityID] = true

			srcLabel, err := r.client.EntityLabel.Query().
				Where(entitylabel.EntityIDEQ(m.EntityID), entitylabel.LanguageEQ(sourceLang.Code())).
				Only(ctx)
			if entdb.IsNotFound(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("lookup source label: %w", err)
			}

			hasTarget, err := r.client.EntityLabel.Query().
				Where(entitylabel.EntityIDEQ(m.EntityID), entitylabel.LanguageEQ(targetLang.Code())).
				Exist(ctx)
			if err != nil {
				return nil, fmt.Errorf("lookup target label: %w", err)
			}
			if hasTarget {
				continue
			}

			ent, err := r.client.SemanticEntity.Get(ctx, m.EntityID)
			if err != nil {
				return nil, fmt.Errorf("lookup entity %s: %w", m.EntityID, err)
			}
			gaps = append(gaps, repository.AlignmentGap{
				EntityID:       m.EntityID,
				CanonicalLabel: ent.Label,
				SourceLabel:    srcLabel.BaseForm,
			})
		}
	}
	return gaps, nil
}

func mapAlignment(row *entdb.BlockAlignment) *entity.BlockAlignment {
	return &entity.BlockAlignment{
		ID:          row.ID,
		SourceBlock: row.SourceBlockID,
		TargetBlock: row.TargetBlockID,
		Kind:        row.Kind,
		Confidence:  row.Confidence,
		CreatedAt:   row.CreatedAt,
	}
}
