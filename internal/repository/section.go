package repository

import (
	"context"

	"github.com/litteralabs/littera/internal/entity"
)

// SectionRepository manages Sections. ParentID on ListQuery is the owning
// Doc's identifier; a Section's optional parent Section is carried on the
// entity itself and is not a ListQuery scope (Sections list flat under
// their Doc, nesting is read off entity.Section.ParentID by the caller).
type SectionRepository interface {
	Create(ctx context.Context, s *entity.Section) (*entity.Section, error)
	Update(ctx context.Context, s *entity.Section) (*entity.Section, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Section, error)
	List(ctx context.Context, q *ListQuery) ([]*entity.Section, int64, error)
	Delete(ctx context.Context, id entity.ID) error
}
