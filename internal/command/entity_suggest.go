package command

import (
	"context"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/editor"
	"github.com/litteralabs/littera/internal/repository"
)

// EntitySuggest implements the read-only "entity suggest" command (§10,
// grounded on the original's cli/entity_suggest.py): given free text, it
// proposes existing SemanticEntitys whose labels fuzzy-match substrings of
// the text. It reuses editor.MatchCandidates, the same prefix/substring
// ranking the mention-discovery session uses, so the two surfaces never
// drift apart on what counts as a match.
func (a *App) EntitySuggest(ctx context.Context, text string) ([]editor.Candidate, error) {
	const pageSize = 10000
	entities, _, err := a.SemanticEntity.List(ctx, &repository.ListQuery{Pagination: repository.Pagination{PageNo: 1, PageSize: pageSize}})
	if err != nil {
		return nil, err
	}

	var candidates []editor.Candidate
	for _, e := range entities {
		candidates = append(candidates, editor.Candidate{EntityID: e.ID, Label: e.Label})
		labels, _, err := a.EntityLabel.List(ctx, &repository.ListQuery{ParentID: &e.ID, Pagination: repository.Pagination{PageNo: 1, PageSize: pageSize}})
		if err != nil {
			return nil, err
		}
		for _, l := range labels {
			candidates = append(candidates, editor.Candidate{EntityID: e.ID, Label: l.BaseForm})
			for _, alias := range l.Aliases {
				candidates = append(candidates, editor.Candidate{EntityID: e.ID, Label: alias})
			}
		}
	}

	matches := editor.MatchCandidates(candidates, text)
	fieldRows := make([][]output.Field, 0, len(matches))
	for _, m := range matches {
		fieldRows = append(fieldRows, []output.Field{
			{Key: "entity_id", Value: m.EntityID.String()},
			{Key: "label", Value: m.Label},
		})
	}
	return matches, a.Out.List(fieldRows, matches)
}
