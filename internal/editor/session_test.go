package editor

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litteralabs/littera/internal/editor/doctree"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// fakeBlockRepo is an in-memory repository.BlockRepository, mirroring the
// teacher's usecase-test fakes (map + mutex, no real database) so EditSession
// behavior can be exercised without a Postgres cluster.
type fakeBlockRepo struct {
	mu        sync.Mutex
	blocks    map[entity.ID]*entity.Block
	batchErr  error
	lastBatch repository.BlockBatch
}

func newFakeBlockRepo(blocks ...*entity.Block) *fakeBlockRepo {
	r := &fakeBlockRepo{blocks: make(map[entity.ID]*entity.Block)}
	for _, b := range blocks {
		r.blocks[b.ID] = b
	}
	return r
}

func (r *fakeBlockRepo) Create(ctx context.Context, b *entity.Block) (*entity.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[b.ID] = b
	return b, nil
}

func (r *fakeBlockRepo) Update(ctx context.Context, b *entity.Block) (*entity.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[b.ID] = b
	return b, nil
}

func (r *fakeBlockRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok {
		return nil, entity.NotFound("block %s not found", id.String())
	}
	return b, nil
}

func (r *fakeBlockRepo) List(ctx context.Context, q *repository.ListQuery) ([]*entity.Block, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []*entity.Block
	for _, b := range r.blocks {
		if q.ParentID == nil || b.SectionID == *q.ParentID {
			rows = append(rows, b)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].OrderIndex < rows[j].OrderIndex })
	return rows, int64(len(rows)), nil
}

func (r *fakeBlockRepo) Delete(ctx context.Context, id entity.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, id)
	return nil
}

func (r *fakeBlockRepo) BatchUpdate(ctx context.Context, batch repository.BlockBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batchErr != nil {
		return r.batchErr
	}
	r.lastBatch = batch
	for _, b := range batch.Creates {
		r.blocks[b.ID] = b
	}
	for _, b := range batch.Updates {
		r.blocks[b.ID] = b
	}
	for _, id := range batch.Deletes {
		delete(r.blocks, id)
	}
	return nil
}

func mustBlock(sectionID entity.ID, order int64, text string) *entity.Block {
	b := &entity.Block{ID: entity.NewID(), SectionID: sectionID, Kind: entity.BlockKindProse, Language: entity.Language("en"), SourceText: text, OrderIndex: order}
	b.Normalize()
	return b
}

func TestOpen_LoadsBlocksIntoCurrentAndSaved(t *testing.T) {
	sectionID := entity.NewID()
	b1 := mustBlock(sectionID, 1, "first")
	b2 := mustBlock(sectionID, 2, "second")
	repo := newFakeBlockRepo(b1, b2)

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	assert.Same(t, s.Saved, s.Current, "a freshly opened session has no divergence yet")
	assert.Len(t, s.Current.Containers, 2)
	assert.False(t, s.IsDirty())
}

func TestSave_CleanSessionIssuesNoBatch(t *testing.T) {
	sectionID := entity.NewID()
	b1 := mustBlock(sectionID, 1, "only block")
	repo := newFakeBlockRepo(b1)

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	err = s.Save(context.Background())
	require.NoError(t, err)

	assert.Empty(t, repo.lastBatch.Creates)
	assert.Empty(t, repo.lastBatch.Updates)
	assert.Empty(t, repo.lastBatch.Deletes)
}

func TestSave_ClassifiesCreateUpdateDelete(t *testing.T) {
	sectionID := entity.NewID()
	kept := mustBlock(sectionID, 1, "kept as-is")
	toEdit := mustBlock(sectionID, 2, "before edit")
	toDelete := mustBlock(sectionID, 3, "to be removed")
	repo := newFakeBlockRepo(kept, toEdit, toDelete)

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	edited := s.Current.ReplaceContainer(toEdit.ID, &doctree.Container{
		ID: toEdit.ID, Kind: toEdit.Kind, Language: toEdit.Language,
		Nodes: []doctree.ContentNode{{Kind: doctree.NodeParagraph, Text: "after edit"}},
	})
	newID := entity.NewID()
	withNew := edited.Insert(len(edited.Containers), doctree.EmptyContainer(newID, entity.Language("en")))
	withoutDeleted := withNew.Delete(toDelete.ID)
	s.Current = withoutDeleted

	require.True(t, s.IsDirty())

	err = s.Save(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.lastBatch.Updates, 1)
	assert.Equal(t, toEdit.ID, repo.lastBatch.Updates[0].ID)
	assert.Equal(t, "after edit", repo.lastBatch.Updates[0].SourceText)

	require.Len(t, repo.lastBatch.Creates, 1)
	assert.Equal(t, newID, repo.lastBatch.Creates[0].ID)

	assert.Equal(t, []entity.ID{toDelete.ID}, repo.lastBatch.Deletes)

	// kept must not appear in any batch bucket, since it never changed.
	for _, b := range repo.lastBatch.Updates {
		assert.NotEqual(t, kept.ID, b.ID)
	}

	assert.Same(t, s.Current, s.Saved, "Save must promote Current to Saved on success")
}

func TestSave_DoesNotPromoteSnapshotOnFailure(t *testing.T) {
	sectionID := entity.NewID()
	b1 := mustBlock(sectionID, 1, "will fail to save")
	repo := newFakeBlockRepo(b1)
	repo.batchErr = assertError{"boom"}

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	prevSaved := s.Saved
	s.Current = s.Current.ReplaceContainer(b1.ID, &doctree.Container{
		ID: b1.ID, Kind: b1.Kind, Language: b1.Language,
		Nodes: []doctree.ContentNode{{Kind: doctree.NodeParagraph, Text: "edited"}},
	})

	err = s.Save(context.Background())
	require.Error(t, err)
	assert.Same(t, prevSaved, s.Saved, "a failed save must leave Saved untouched")
	assert.True(t, s.IsDirty(), "dirty state survives a failed save")
}

func TestDiscard_ResetsCurrentToSaved(t *testing.T) {
	sectionID := entity.NewID()
	b1 := mustBlock(sectionID, 1, "original")
	repo := newFakeBlockRepo(b1)

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	saved := s.Saved
	s.Current = s.Current.ReplaceContainer(b1.ID, &doctree.Container{
		ID: b1.ID, Kind: b1.Kind, Language: b1.Language,
		Nodes: []doctree.ContentNode{{Kind: doctree.NodeParagraph, Text: "scratch edit"}},
	})
	require.True(t, s.IsDirty())

	s.Discard()

	assert.Same(t, saved, s.Current)
	assert.False(t, s.IsDirty())
}

func TestConfirmNavigateAway(t *testing.T) {
	sectionID := entity.NewID()
	b1 := mustBlock(sectionID, 1, "text")
	repo := newFakeBlockRepo(b1)

	s, err := Open(context.Background(), repo, sectionID)
	require.NoError(t, err)

	assert.NoError(t, s.ConfirmNavigateAway(false), "a clean session never needs confirmation")

	s.Current = s.Current.ReplaceContainer(b1.ID, &doctree.Container{
		ID: b1.ID, Kind: b1.Kind, Language: b1.Language,
		Nodes: []doctree.ContentNode{{Kind: doctree.NodeParagraph, Text: "dirty now"}},
	})

	assert.Error(t, s.ConfirmNavigateAway(false))
	assert.NoError(t, s.ConfirmNavigateAway(true))
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
