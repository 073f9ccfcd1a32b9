package command

import (
	"context"
	"fmt"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

func (a *App) AlignmentCreate(ctx context.Context, opts Options, al *entity.BlockAlignment) (*entity.BlockAlignment, error) {
	if al.ID == (entity.ID{}) {
		al.ID = entity.NewID()
	}
	if opts.DryRun {
		return al, a.Out.Message(fmt.Sprintf("would align block %s -> %s (%s)", al.SourceBlock, al.TargetBlock, al.Kind))
	}
	created, err := a.Alignment.Create(ctx, al)
	if err != nil {
		return nil, err
	}
	return created, a.Out.Record(alignmentFields(created), created)
}

func (a *App) AlignmentGet(ctx context.Context, id entity.ID) (*entity.BlockAlignment, error) {
	al, err := a.Alignment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return al, a.Out.Record(alignmentFields(al), al)
}

func (a *App) AlignmentList(ctx context.Context, q *repository.ListQuery) ([]*entity.BlockAlignment, error) {
	rows, _, err := a.Alignment.List(ctx, q)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(rows))
	for _, al := range rows {
		fieldRows = append(fieldRows, alignmentFields(al))
	}
	return rows, a.Out.List(fieldRows, rows)
}

func (a *App) AlignmentDelete(ctx context.Context, opts Options, id entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete alignment %s", id))
	}
	if err := a.Alignment.Delete(ctx, id); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("deleted alignment %s", id))
}

// AlignmentRebuild invalidates every alignment rooted at sourceBlockID so a
// caller can recompute them, per §3's "disposable and rebuildable".
func (a *App) AlignmentRebuild(ctx context.Context, opts Options, sourceBlockID entity.ID) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would invalidate alignments rooted at block %s", sourceBlockID))
	}
	if err := a.Alignment.DeleteBySourceBlock(ctx, sourceBlockID); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("invalidated alignments rooted at block %s", sourceBlockID))
}

// AlignmentGaps runs the report named in §4.4/§8 scenario 6: SemanticEntitys
// mentioned from a Work's aligned source Blocks that have a label in
// sourceLang but none yet in targetLang.
func (a *App) AlignmentGaps(ctx context.Context, workID entity.ID, sourceLang, targetLang entity.Language) ([]repository.AlignmentGap, error) {
	gaps, err := a.Alignment.AlignmentGaps(ctx, workID, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}
	fieldRows := make([][]output.Field, 0, len(gaps))
	for _, g := range gaps {
		fieldRows = append(fieldRows, []output.Field{
			{Key: "entity_id", Value: g.EntityID.String()},
			{Key: "canonical_label", Value: g.CanonicalLabel},
			{Key: "source_label", Value: g.SourceLabel},
		})
	}
	return gaps, a.Out.List(fieldRows, gaps)
}

func alignmentFields(al *entity.BlockAlignment) []output.Field {
	return []output.Field{
		{Key: "id", Value: al.ID.String()},
		{Key: "source_block", Value: al.SourceBlock.String()},
		{Key: "target_block", Value: al.TargetBlock.String()},
		{Key: "kind", Value: al.Kind},
		{Key: "confidence", Value: fmt.Sprintf("%.4f", al.Confidence)},
	}
}
