package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litteralabs/littera/internal/editor/markdown"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// ExportDocument is the canonical JSON export tree named in §6: a single
// value whose struct field order (not map iteration) fixes the on-disk
// layout, so two exports of the same Work are byte-identical. Every
// map-valued field inside is an entity.Document, which serializes through
// its own sorted-key MarshalJSON.
type ExportDocument struct {
	Work      ExportedWork      `json:"work"`
	Documents []ExportedDoc     `json:"documents"`
	Entities  []ExportedEntity  `json:"entities,omitempty"`
	Mentions  []ExportedMention `json:"mentions,omitempty"`
}

type ExportedWork struct {
	ID          entity.ID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	Metadata    entity.Document `json:"metadata"`
}

type ExportedDoc struct {
	ID       entity.ID        `json:"id"`
	Title    string            `json:"title"`
	Order    int64             `json:"order_index"`
	Metadata entity.Document   `json:"metadata"`
	Sections []ExportedSection `json:"sections"`
}

type ExportedSection struct {
	ID       entity.ID         `json:"id"`
	ParentID *entity.ID        `json:"parent_id,omitempty"`
	Title    string            `json:"title"`
	Order    int64             `json:"order_index"`
	Metadata entity.Document   `json:"metadata"`
	Blocks   []ExportedBlock   `json:"blocks"`
}

type ExportedBlock struct {
	ID         entity.ID       `json:"id"`
	Kind       string          `json:"kind"`
	Language   string          `json:"language"`
	SourceText string          `json:"source_text"`
	Order      int64           `json:"order_index"`
	Metadata   entity.Document `json:"metadata"`
}

type ExportedEntity struct {
	ID         entity.ID              `json:"id"`
	TypeTag    string                 `json:"type"`
	Label      string                 `json:"label"`
	Status     string                 `json:"status"`
	Properties entity.Document        `json:"properties"`
	Labels     []ExportedEntityLabel  `json:"labels,omitempty"`
}

type ExportedEntityLabel struct {
	Language string   `json:"language"`
	BaseForm string   `json:"base_form"`
	Aliases  []string `json:"aliases,omitempty"`
}

type ExportedMention struct {
	ID       entity.ID       `json:"id"`
	BlockID  entity.ID       `json:"block_id"`
	EntityID entity.ID       `json:"entity_id"`
	Language string          `json:"language"`
	Surface  string          `json:"surface"`
	Features entity.Document `json:"features"`
}

const listAllPageSize = 10000

// ExportTree walks a Work's full Document/Section/Block hierarchy plus its
// mentioned Entities into one ExportDocument (§6 "canonical JSON export").
// Unlike internal/usecase/backup's driver-agnostic NDJSON dump (every ent
// table, used for whole-database backup/restore), this is a single Work's
// nested view, shaped for interchange between Littera installations.
func (a *App) ExportTree(ctx context.Context, workID entity.ID) (*ExportDocument, error) {
	w, err := a.Work.GetByID(ctx, workID)
	if err != nil {
		return nil, err
	}
	docs, _, err := a.Doc.List(ctx, &repository.ListQuery{ParentID: &workID, Pagination: repository.Pagination{PageNo: 1, PageSize: listAllPageSize}})
	if err != nil {
		return nil, err
	}

	out := &ExportDocument{
		Work: ExportedWork{ID: w.ID, Title: w.Title, Description: w.Description, Language: w.Language.Code(), Metadata: w.Metadata},
	}

	mentionedEntities := make(map[entity.ID]bool)
	var entityOrder []entity.ID

	for _, d := range docs {
		sections, _, err := a.Section.List(ctx, &repository.ListQuery{ParentID: &d.ID, Pagination: repository.Pagination{PageNo: 1, PageSize: listAllPageSize}})
		if err != nil {
			return nil, err
		}
		ed := ExportedDoc{ID: d.ID, Title: d.Title, Order: d.OrderIndex, Metadata: d.Metadata}
		for _, s := range sections {
			blocks, _, err := a.Block.List(ctx, &repository.ListQuery{ParentID: &s.ID, Pagination: repository.Pagination{PageNo: 1, PageSize: listAllPageSize}})
			if err != nil {
				return nil, err
			}
			es := ExportedSection{ID: s.ID, ParentID: s.ParentID, Title: s.Title, Order: s.OrderIndex, Metadata: s.Metadata}
			for _, b := range blocks {
				es.Blocks = append(es.Blocks, ExportedBlock{
					ID: b.ID, Kind: string(b.Kind), Language: b.Language.Code(),
					SourceText: b.SourceText, Order: b.OrderIndex, Metadata: b.Metadata,
				})
				mentions, _, err := a.Mention.List(ctx, &repository.ListQuery{ParentID: &b.ID, Pagination: repository.Pagination{PageNo: 1, PageSize: listAllPageSize}})
				if err != nil {
					return nil, err
				}
				for _, m := range mentions {
					out.Mentions = append(out.Mentions, ExportedMention{
						ID: m.ID, BlockID: m.BlockID, EntityID: m.EntityID,
						Language: m.Language.Code(), Surface: m.Surface, Features: m.Features,
					})
					if !mentionedEntities[m.EntityID] {
						mentionedEntities[m.EntityID] = true
						entityOrder = append(entityOrder, m.EntityID)
					}
				}
			}
			ed.Sections = append(ed.Sections, es)
		}
		out.Documents = append(out.Documents, ed)
	}

	for _, id := range entityOrder {
		e, err := a.SemanticEntity.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		labels, _, err := a.EntityLabel.List(ctx, &repository.ListQuery{ParentID: &id, Pagination: repository.Pagination{PageNo: 1, PageSize: listAllPageSize}})
		if err != nil {
			return nil, err
		}
		ee := ExportedEntity{ID: e.ID, TypeTag: e.TypeTag, Label: e.Label, Status: string(e.Status), Properties: e.Properties}
		for _, l := range labels {
			ee.Labels = append(ee.Labels, ExportedEntityLabel{Language: l.Language.Code(), BaseForm: l.BaseForm, Aliases: l.Aliases})
		}
		out.Entities = append(out.Entities, ee)
	}

	return out, nil
}

// WriteExportTree writes ExportTree's result straight to w as two-space-
// indented JSON, bypassing the Printer, so human mode gets the same encoding
// as JSON mode (a nested tree has no natural tabular rendering).
func (a *App) WriteExportTree(ctx context.Context, workID entity.ID, w io.Writer) error {
	doc, err := a.ExportTree(ctx, workID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteExportMarkdown concatenates a Work's Section headings (ATX,
// depth-prefixed by nesting) and canonicalized Block source_text (§6).
func (a *App) WriteExportMarkdown(ctx context.Context, workID entity.ID, w io.Writer) error {
	tree, err := a.ExportTree(ctx, workID)
	if err != nil {
		return err
	}
	for _, d := range tree.Documents {
		fmt.Fprintf(w, "# %s\n\n", d.Title)
		for _, s := range d.Sections {
			depth := sectionDepth(tree, d, s)
			fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", depth+1), s.Title)
			for _, b := range s.Blocks {
				canon, err := markdown.Canonicalize(b.SourceText)
				if err != nil {
					return fmt.Errorf("canonicalize block %s: %w", b.ID, err)
				}
				fmt.Fprintln(w, canon)
				fmt.Fprintln(w)
			}
		}
	}
	return nil
}

// sectionDepth counts a Section's nesting depth within its Document by
// walking ParentID chains through the already-loaded export tree, so the
// Markdown exporter doesn't need another repository round trip.
func sectionDepth(tree *ExportDocument, d ExportedDoc, s ExportedSection) int {
	byID := make(map[entity.ID]ExportedSection, len(d.Sections))
	for _, sec := range d.Sections {
		byID[sec.ID] = sec
	}
	depth := 1
	cur := s
	for cur.ParentID != nil {
		parent, ok := byID[*cur.ParentID]
		if !ok {
			break
		}
		depth++
		cur = parent
	}
	return depth
}

// ImportTree materializes an ExportDocument back into a fresh Work
// (identifiers preserved, per §8 round-trip requirement). It is the
// counterpart to ExportTree, intended for moving a single Work between
// installations; internal/usecase/backup.Service covers whole-database
// backup/restore instead.
func (a *App) ImportTree(ctx context.Context, doc *ExportDocument) error {
	w := &entity.Work{
		ID: doc.Work.ID, Title: doc.Work.Title, Description: doc.Work.Description,
		Language: entity.Language(doc.Work.Language), Metadata: doc.Work.Metadata,
	}
	if _, err := a.Work.Create(ctx, w); err != nil {
		return fmt.Errorf("import work %s: %w", w.ID, err)
	}
	for _, ed := range doc.Documents {
		d := &entity.Doc{ID: ed.ID, WorkID: w.ID, Title: ed.Title, OrderIndex: ed.Order, Metadata: ed.Metadata}
		if _, err := a.Doc.Create(ctx, d); err != nil {
			return fmt.Errorf("import document %s: %w", d.ID, err)
		}
		for _, es := range ed.Sections {
			s := &entity.Section{ID: es.ID, DocumentID: d.ID, ParentID: es.ParentID, Title: es.Title, OrderIndex: es.Order, Metadata: es.Metadata}
			if _, err := a.Section.Create(ctx, s); err != nil {
				return fmt.Errorf("import section %s: %w", s.ID, err)
			}
			for _, eb := range es.Blocks {
				b := &entity.Block{
					ID: eb.ID, SectionID: s.ID, Kind: entity.BlockKind(eb.Kind),
					Language: entity.Language(eb.Language), SourceText: eb.SourceText,
					OrderIndex: eb.Order, Metadata: eb.Metadata,
				}
				if _, err := a.Block.Create(ctx, b); err != nil {
					return fmt.Errorf("import block %s: %w", b.ID, err)
				}
			}
		}
	}
	for _, ee := range doc.Entities {
		e := &entity.SemanticEntity{ID: ee.ID, TypeTag: ee.TypeTag, Label: ee.Label, Status: entity.EntityStatus(ee.Status), Properties: ee.Properties}
		if _, err := a.SemanticEntity.Create(ctx, e); err != nil {
			return fmt.Errorf("import entity %s: %w", e.ID, err)
		}
		for _, el := range ee.Labels {
			l := &entity.EntityLabel{ID: entity.NewID(), EntityID: e.ID, Language: entity.Language(el.Language), BaseForm: el.BaseForm, Aliases: el.Aliases}
			if _, err := a.EntityLabel.Create(ctx, l); err != nil {
				return fmt.Errorf("import label for entity %s: %w", e.ID, err)
			}
		}
	}
	for _, em := range doc.Mentions {
		m := &entity.Mention{ID: em.ID, BlockID: em.BlockID, EntityID: em.EntityID, Language: entity.Language(em.Language), Surface: em.Surface, Features: em.Features}
		if _, err := a.Mention.Create(ctx, m); err != nil {
			return fmt.Errorf("import mention %s: %w", m.ID, err)
		}
	}
	return a.Out.Message(fmt.Sprintf("imported work %s (%d document(s))", w.ID, len(doc.Documents)))
}
