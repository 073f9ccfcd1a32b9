package repository

import (
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/block"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/blockalignment"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/document"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/entitylabel"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/entityworkmetadata"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/mention"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/review"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/section"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/semanticentity"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/work"
	"github.com/litteralabs/littera/pkg/filterexpr"
)

// This file declares, for every entity with a List operation, the
// pkg/filterexpr.ResourceSchema governing its CLI --filter/--order-by
// flags (see cmd's list commands) and the reflect-targetable params
// struct filterexpr.Bind populates. Each params struct is purely an
// intermediate: List methods read its fields back out to build ent
// predicates and Order calls, the same two-step shape the teacher's
// sqlc-backed repositories use with their own Params structs.

// --- Block ---

type blockParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Language, Kind             string
}

var blockSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"language": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Language"}},
		"kind":     {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Kind"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "order_index",
		FallbackKey:    "id",
		Fields: map[string]filterexpr.OrderField{
			"order_index": {}, "created_at": {}, "id": {},
		},
	},
}

func applyBlockOrder(q *entdb.BlockQuery, p blockParams) *entdb.BlockQuery {
	lookup := map[string]string{"order_index": block.FieldOrderIndex, "created_at": block.FieldCreatedAt, "id": block.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, block.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, block.FieldID))
}

// --- BlockAlignment ---

type blockAlignmentParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Kind                       string
}

var blockAlignmentSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"kind": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Kind"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"created_at": {}, "id": {}},
	},
}

func applyBlockAlignmentOrder(q *entdb.BlockAlignmentQuery, p blockAlignmentParams) *entdb.BlockAlignmentQuery {
	lookup := map[string]string{"created_at": blockalignment.FieldCreatedAt, "id": blockalignment.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, blockalignment.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, blockalignment.FieldID))
}

// --- Document ---

type documentParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Title                      string
}

var documentSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"title": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpSW: "Title"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "order_index",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"order_index": {}, "created_at": {}, "id": {}},
	},
}

func applyDocumentOrder(q *entdb.DocumentQuery, p documentParams) *entdb.DocumentQuery {
	lookup := map[string]string{"order_index": document.FieldOrderIndex, "created_at": document.FieldCreatedAt, "id": document.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, document.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, document.FieldID))
}

// --- Section ---

type sectionParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Title                      string
}

var sectionSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"title": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpSW: "Title"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "order_index",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"order_index": {}, "created_at": {}, "id": {}},
	},
}

func applySectionOrder(q *entdb.SectionQuery, p sectionParams) *entdb.SectionQuery {
	lookup := map[string]string{"order_index": section.FieldOrderIndex, "created_at": section.FieldCreatedAt, "id": section.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, section.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, section.FieldID))
}

// --- Mention ---

type mentionParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Language, Surface          string
}

var mentionSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"language": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Language"}},
		"surface":  {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpSW: "Surface"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"created_at": {}, "id": {}},
	},
}

func applyMentionOrder(q *entdb.MentionQuery, p mentionParams) *entdb.MentionQuery {
	lookup := map[string]string{"created_at": mention.FieldCreatedAt, "id": mention.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, mention.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, mention.FieldID))
}

// --- Review ---

type reviewParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Severity, IssueType        string
}

var reviewSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"severity":   {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Severity"}},
		"issue_type": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "IssueType"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"created_at": {}, "id": {}},
	},
}

func applyReviewOrder(q *entdb.ReviewQuery, p reviewParams) *entdb.ReviewQuery {
	lookup := map[string]string{"created_at": review.FieldCreatedAt, "id": review.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, review.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, review.FieldID))
}

// --- SemanticEntity ---

type semanticEntityParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	TypeTag, Status            string
}

var semanticEntitySchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"type_tag": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "TypeTag"}},
		"status":   {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Status"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"created_at": {}, "id": {}},
	},
}

func applySemanticEntityOrder(q *entdb.SemanticEntityQuery, p semanticEntityParams) *entdb.SemanticEntityQuery {
	lookup := map[string]string{"created_at": semanticentity.FieldCreatedAt, "id": semanticentity.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, semanticentity.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, semanticentity.FieldID))
}

// --- EntityLabel ---

type entityLabelParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Language                   string
}

var entityLabelSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"language": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Language"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "language",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"language": {}, "id": {}},
	},
}

func applyEntityLabelOrder(q *entdb.EntityLabelQuery, p entityLabelParams) *entdb.EntityLabelQuery {
	lookup := map[string]string{"language": entitylabel.FieldLanguage, "id": entitylabel.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, entitylabel.FieldLanguage), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, entitylabel.FieldID))
}

// --- EntityWorkMetadata ---

type entityWorkMetadataParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
}

var entityWorkMetadataSchema = filterexpr.ResourceSchema{
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "id",
		FallbackKey:    "work_id",
		Fields:         map[string]filterexpr.OrderField{"id": {}, "work_id": {}},
	},
}

func applyEntityWorkMetadataOrder(q *entdb.EntityWorkMetadataQuery, p entityWorkMetadataParams) *entdb.EntityWorkMetadataQuery {
	lookup := map[string]string{"id": entityworkmetadata.FieldID, "work_id": entityworkmetadata.FieldWorkID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, entityworkmetadata.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, entityworkmetadata.FieldWorkID))
}

// --- Work ---

type workParams struct {
	PrimaryKey, SecondaryKey   string
	PrimaryDesc, SecondaryDesc bool
	Title, Language            string
}

var workSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"title":    {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpSW: "Title"}},
		"language": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{filterexpr.OpEQ: "Language"}},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields:         map[string]filterexpr.OrderField{"created_at": {}, "id": {}},
	},
}

func applyWorkOrder(q *entdb.WorkQuery, p workParams) *entdb.WorkQuery {
	lookup := map[string]string{"created_at": work.FieldCreatedAt, "id": work.FieldID}
	return q.Order(orderFuncFrom(lookup, p.PrimaryKey, p.PrimaryDesc, work.FieldID), orderFuncFrom(lookup, p.SecondaryKey, p.SecondaryDesc, work.FieldID))
}

// orderFuncFrom resolves a schema order key to its ent column via lookup,
// falling back to fallback when key is unset (the zero value filterexpr.Bind
// never actually produces, since parseOrderBy always populates both keys,
// but Go's zero-value struct literals used in tests may skip Bind entirely).
func orderFuncFrom(lookup map[string]string, key string, desc bool, fallback string) entdb.OrderFunc {
	field, ok := lookup[key]
	if !ok {
		field = fallback
	}
	if desc {
		return entdb.Desc(field)
	}
	return entdb.Asc(field)
}
