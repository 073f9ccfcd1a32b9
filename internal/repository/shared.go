package repository

import "github.com/litteralabs/littera/internal/entity"

// Pagination holds pagination parameters for listing entities.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

func (p *Pagination) Offset() int32 { return (p.PageNo - 1) * p.PageSize }

// FilterOrder carries a CEL filter expression and an order-by clause,
// bound against a pkg/filterexpr.ResourceSchema by the adapter layer.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }

// DefaultSiblingOrder is the deterministic tie-break for listing children of
// a parent: order_index, then creation timestamp, then identifier.
const DefaultSiblingOrder = "order_index asc, created_at asc, id asc"

// ListQuery is the common shape for "list children of a parent" operations
// across every tree entity (Doc, Section, Block) and flat collections
// (SemanticEntity, Mention, Review).
type ListQuery struct {
	Pagination
	FilterOrder
	ParentID *entity.ID
}
