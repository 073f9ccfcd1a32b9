package mapping

import (
	"time"

	litterav1 "github.com/litteralabs/littera/api/gen/littera/v1"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/litteralabs/littera/internal/entity"
)

func ToPbWork(w *entity.Work) *litterav1.Work {
	return &litterav1.Work{
		Id:          w.ID.String(),
		Title:       w.Title,
		Description: w.Description,
		Language:    w.Language.Code(),
		CreatedAt:   timestamppb.New(w.CreatedAt),
	}
}

func FromPbWork(in *litterav1.Work) (*entity.Work, error) {
	w := &entity.Work{Title: in.GetTitle(), Description: in.GetDescription()}
	if in.GetId() != "" {
		id, err := entity.ParseID(in.GetId())
		if err != nil {
			return nil, err
		}
		w.ID = id
	}
	lang, err := entity.ParseLanguage(in.GetLanguage())
	if err != nil {
		return nil, err
	}
	w.Language = lang
	return w, nil
}

func ToPbDocument(d *entity.Doc) *litterav1.Document {
	return &litterav1.Document{
		Id:         d.ID.String(),
		WorkId:     d.WorkID.String(),
		Title:      d.Title,
		OrderIndex: d.OrderIndex,
		CreatedAt:  timestamppb.New(d.CreatedAt),
	}
}

func FromPbDocument(in *litterav1.Document) (*entity.Doc, error) {
	workID, err := entity.ParseID(in.GetWorkId())
	if err != nil {
		return nil, err
	}
	d := &entity.Doc{WorkID: workID, Title: in.GetTitle(), OrderIndex: in.GetOrderIndex()}
	if in.GetId() != "" {
		id, err := entity.ParseID(in.GetId())
		if err != nil {
			return nil, err
		}
		d.ID = id
	}
	return d, nil
}

func ToPbSection(s *entity.Section) *litterav1.Section {
	out := &litterav1.Section{
		Id:         s.ID.String(),
		DocumentId: s.DocumentID.String(),
		Title:      s.Title,
		OrderIndex: s.OrderIndex,
	}
	if s.ParentID != nil {
		parent := s.ParentID.String()
		out.ParentId = &parent
	}
	return out
}

func FromPbSection(in *litterav1.Section) (*entity.Section, error) {
	documentID, err := entity.ParseID(in.GetDocumentId())
	if err != nil {
		return nil, err
	}
	s := &entity.Section{DocumentID: documentID, Title: in.GetTitle(), OrderIndex: in.GetOrderIndex()}
	if in.GetId() != "" {
		id, err := entity.ParseID(in.GetId())
		if err != nil {
			return nil, err
		}
		s.ID = id
	}
	if in.ParentId != nil {
		parentID, err := entity.ParseID(in.GetParentId())
		if err != nil {
			return nil, err
		}
		s.ParentID = &parentID
	}
	return s, nil
}

func ToPbBlock(b *entity.Block) *litterav1.Block {
	return &litterav1.Block{
		Id:         b.ID.String(),
		SectionId:  b.SectionID.String(),
		Kind:       string(b.Kind),
		Language:   b.Language.Code(),
		SourceText: b.SourceText,
		OrderIndex: b.OrderIndex,
	}
}

func FromPbBlock(in *litterav1.Block) (*entity.Block, error) {
	sectionID, err := entity.ParseID(in.GetSectionId())
	if err != nil {
		return nil, err
	}
	lang, err := entity.ParseLanguage(in.GetLanguage())
	if err != nil {
		return nil, err
	}
	b := &entity.Block{
		SectionID:  sectionID,
		Kind:       entity.BlockKind(in.GetKind()),
		Language:   lang,
		SourceText: in.GetSourceText(),
		OrderIndex: in.GetOrderIndex(),
	}
	if in.GetId() != "" {
		id, err := entity.ParseID(in.GetId())
		if err != nil {
			return nil, err
		}
		b.ID = id
	}
	return b, nil
}

func ToPbEntity(e *entity.SemanticEntity) *litterav1.SemanticEntity {
	return &litterav1.SemanticEntity{
		Id:      e.ID.String(),
		TypeTag: e.TypeTag,
		Label:   e.Label,
		Status:  string(e.Status),
	}
}

func FromPbEntity(in *litterav1.SemanticEntity) (*entity.SemanticEntity, error) {
	e := &entity.SemanticEntity{TypeTag: in.GetTypeTag(), Label: in.GetLabel(), Status: entity.EntityStatus(in.GetStatus())}
	if in.GetId() != "" {
		id, err := entity.ParseID(in.GetId())
		if err != nil {
			return nil, err
		}
		e.ID = id
	}
	return e, nil
}

func ToPbMention(m *entity.Mention) *litterav1.Mention {
	return &litterav1.Mention{
		Id:       m.ID.String(),
		BlockId:  m.BlockID.String(),
		EntityId: m.EntityID.String(),
		Language: m.Language.Code(),
		Surface:  m.Surface,
	}
}

func FromPbMention(in *litterav1.Mention) (*entity.Mention, error) {
	blockID, err := entity.ParseID(in.GetBlockId())
	if err != nil {
		return nil, err
	}
	entityID, err := entity.ParseID(in.GetEntityId())
	if err != nil {
		return nil, err
	}
	lang, err := entity.ParseLanguage(in.GetLanguage())
	if err != nil {
		return nil, err
	}
	return &entity.Mention{BlockID: blockID, EntityID: entityID, Language: lang, Surface: in.GetSurface()}, nil
}

func ToPbAlignment(a *entity.BlockAlignment) *litterav1.BlockAlignment {
	return &litterav1.BlockAlignment{
		Id:          a.ID.String(),
		SourceBlock: a.SourceBlock.String(),
		TargetBlock: a.TargetBlock.String(),
		Kind:        a.Kind,
		Confidence:  a.Confidence,
	}
}

func FromPbAlignment(in *litterav1.BlockAlignment) (*entity.BlockAlignment, error) {
	source, err := entity.ParseID(in.GetSourceBlock())
	if err != nil {
		return nil, err
	}
	target, err := entity.ParseID(in.GetTargetBlock())
	if err != nil {
		return nil, err
	}
	return &entity.BlockAlignment{SourceBlock: source, TargetBlock: target, Kind: in.GetKind(), Confidence: in.GetConfidence()}, nil
}

func ToPbReview(r *entity.Review) *litterav1.Review {
	return &litterav1.Review{
		Id:        r.ID.String(),
		ScopeKind: string(r.ScopeKind),
		ScopeId:   r.ScopeID.String(),
		IssueType: r.IssueType,
		Message:   r.Message,
		Severity:  string(r.Severity),
	}
}

func timestampOrZero(t *timestamppb.Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.AsTime()
}
