package command

import (
	"context"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/linguistics"
)

// Inflect implements the ad hoc "littera inflect <entity> <language>
// [--feature=...]" command (§10, grounded on the original's cli/inflect.py):
// a thin CLI wrapper over the Linguistics Interface for surface-form
// queries outside of mention rendering.
func (a *App) Inflect(ctx context.Context, entityID entity.ID, language entity.Language, features linguistics.Features) (linguistics.Result, error) {
	e, err := a.SemanticEntity.GetByID(ctx, entityID)
	if err != nil {
		return linguistics.Result{}, err
	}
	result := linguistics.SurfaceForm(language, e.Label, features, e.Properties)
	fields := []output.Field{
		{Key: "text", Value: result.Text},
		{Key: "explanation", Value: result.Explanation},
	}
	return result, a.Out.Record(fields, result)
}
