package editor

import (
	"context"
	"sort"
	"strings"

	"github.com/litteralabs/littera/internal/editor/doctree"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// Candidate is one SemanticEntity offered during mention discovery, paired
// with the specific label string that matched the user's filter text.
type Candidate struct {
	EntityID entity.ID
	Label    string
}

// MentionSession is the discovery-session state machine named in §4.5:
// trigger, fetch-and-cache candidates once, filter by prefix/substring,
// then accept (insert an atomic mention node) or cancel (leave the
// document untouched). internal/command/entity_suggest.go reuses
// MatchCandidates for free-text entity suggestion (§10), so the matching
// rule lives here rather than duplicated at the Command Surface.
type MentionSession struct {
	entities repository.SemanticEntityRepository
	labels   repository.EntityLabelRepository

	cached  []Candidate
	fetched bool
}

// NewMentionSession begins a discovery session bound to the given
// repositories; candidates are not fetched until the first Filter call.
func NewMentionSession(entities repository.SemanticEntityRepository, labels repository.EntityLabelRepository) *MentionSession {
	return &MentionSession{entities: entities, labels: labels}
}

const discoveryPageSize = 10000

// fetch loads every SemanticEntity's labels once per session and caches
// the flattened (entity, label) pairs, so repeated keystrokes during one
// discovery session never re-query storage (§4.5 "cached after first
// fetch per session").
func (s *MentionSession) fetch(ctx context.Context) error {
	if s.fetched {
		return nil
	}
	rows, _, err := s.entities.List(ctx, &repository.ListQuery{Pagination: repository.Pagination{PageNo: 1, PageSize: discoveryPageSize}})
	if err != nil {
		return err
	}
	for _, e := range rows {
		s.cached = append(s.cached, Candidate{EntityID: e.ID, Label: e.Label})
		labels, _, err := s.labels.List(ctx, &repository.ListQuery{ParentID: &e.ID, Pagination: repository.Pagination{PageNo: 1, PageSize: discoveryPageSize}})
		if err != nil {
			return err
		}
		for _, l := range labels {
			s.cached = append(s.cached, Candidate{EntityID: e.ID, Label: l.BaseForm})
			for _, alias := range l.Aliases {
				s.cached = append(s.cached, Candidate{EntityID: e.ID, Label: alias})
			}
		}
	}
	s.fetched = true
	return nil
}

// Filter fetches (once) and returns every cached candidate whose label
// matches query by prefix or substring, per §4.5. Results are ordered
// prefix matches first, then substring matches, each group alphabetical.
// An empty or blank query returns every cached candidate in fetch order,
// unsorted.
func (s *MentionSession) Filter(ctx context.Context, query string) ([]Candidate, error) {
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	return MatchCandidates(s.cached, query), nil
}

// MatchCandidates ranks candidates against query by prefix/substring
// match, case-insensitively. Shared with internal/command/entity_suggest.go
// (§10 "Entity suggestion") so free-text suggestion and mention discovery
// use one matching rule.
func MatchCandidates(candidates []Candidate, query string) []Candidate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Candidate, len(candidates))
		copy(out, candidates)
		return out
	}

	var prefix, substr []Candidate
	for _, c := range candidates {
		lower := strings.ToLower(c.Label)
		switch {
		case strings.HasPrefix(lower, q):
			prefix = append(prefix, c)
		case strings.Contains(lower, q):
			substr = append(substr, c)
		}
	}
	sort.Slice(prefix, func(i, j int) bool { return prefix[i].Label < prefix[j].Label })
	sort.Slice(substr, func(i, j int) bool { return substr[i].Label < substr[j].Label })
	return append(prefix, substr...)
}

// Accept inserts an atomic mention node at the end of the target
// container's content, carrying the chosen candidate's entity identifier
// and cached display label, and returns the resulting Document. Cancel
// needs no method: the caller simply discards the session without calling
// Accept, leaving the document untouched per §4.5.
func Accept(doc *doctree.Document, containerID entity.ID, candidate Candidate) *doctree.Document {
	for _, c := range doc.Containers {
		if c.ID != containerID {
			continue
		}
		nodes := append(append([]doctree.ContentNode{}, c.Nodes...), doctree.ContentNode{
			Kind: doctree.NodeMention, EntityID: candidate.EntityID, Label: candidate.Label,
		})
		replacement := &doctree.Container{ID: c.ID, Kind: c.Kind, Language: c.Language, Nodes: nodes}
		return doc.ReplaceContainer(containerID, replacement)
	}
	return doc
}
