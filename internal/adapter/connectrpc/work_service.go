package connectrpc

import (
	"context"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	litterav1 "github.com/litteralabs/littera/api/gen/littera/v1"
	"github.com/litteralabs/littera/api/gen/littera/v1/litterav1connect"
	"github.com/litteralabs/littera/internal/command"
	"github.com/litteralabs/littera/internal/adapter/mapping"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

var _ litterav1connect.WorkServiceHandler = (*WorkServiceServer)(nil)

// WorkServiceServer exposes internal/command.App over Connect + gRPC (§4.6),
// the Resource Model counterpart to the Command Surface's cmd/ package: both
// are thin argument-shaping layers in front of the same App methods.
type WorkServiceServer struct {
	litterav1connect.UnimplementedWorkServiceHandler
	app *command.App
}

func NewWorkServiceServer(app *command.App) *WorkServiceServer {
	return &WorkServiceServer{app: app}
}

const listAllPageSize = 10000

func (s *WorkServiceServer) CreateWork(ctx context.Context, req *connect.Request[litterav1.CreateWorkRequest]) (*connect.Response[litterav1.Work], error) {
	w, err := mapping.FromPbWork(req.Msg.GetWork())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.WorkCreate(ctx, command.Options{}, w)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbWork(created)), nil
}

func (s *WorkServiceServer) GetWork(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.Work], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	w, err := s.app.WorkGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbWork(w)), nil
}

func (s *WorkServiceServer) ListWorks(ctx context.Context, req *connect.Request[litterav1.ListWorksRequest]) (*connect.Response[litterav1.ListWorksResponse], error) {
	rows, err := s.app.WorkList(ctx, pageQuery(nil, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Work, 0, len(rows))
	for _, w := range rows {
		out = append(out, mapping.ToPbWork(w))
	}
	return connect.NewResponse(&litterav1.ListWorksResponse{Works: out}), nil
}

func (s *WorkServiceServer) UpdateWork(ctx context.Context, req *connect.Request[litterav1.Work]) (*connect.Response[litterav1.Work], error) {
	w, err := mapping.FromPbWork(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated, err := s.app.WorkUpdate(ctx, w)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbWork(updated)), nil
}

func (s *WorkServiceServer) DeleteWork(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.WorkDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) CreateDocument(ctx context.Context, req *connect.Request[litterav1.CreateDocumentRequest]) (*connect.Response[litterav1.Document], error) {
	d, err := mapping.FromPbDocument(req.Msg.GetDocument())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.DocCreate(ctx, command.Options{}, d)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbDocument(created)), nil
}

func (s *WorkServiceServer) GetDocument(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.Document], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	d, err := s.app.DocGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbDocument(d)), nil
}

func (s *WorkServiceServer) ListDocuments(ctx context.Context, req *connect.Request[litterav1.ListDocumentsRequest]) (*connect.Response[litterav1.ListDocumentsResponse], error) {
	workID, err := entity.ParseID(req.Msg.GetWorkId())
	if err != nil {
		return nil, toConnectError(err)
	}
	rows, err := s.app.DocList(ctx, pageQuery(&workID, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Document, 0, len(rows))
	for _, d := range rows {
		out = append(out, mapping.ToPbDocument(d))
	}
	return connect.NewResponse(&litterav1.ListDocumentsResponse{Documents: out}), nil
}

func (s *WorkServiceServer) UpdateDocument(ctx context.Context, req *connect.Request[litterav1.Document]) (*connect.Response[litterav1.Document], error) {
	d, err := mapping.FromPbDocument(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated, err := s.app.DocUpdate(ctx, d)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbDocument(updated)), nil
}

func (s *WorkServiceServer) DeleteDocument(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.DocDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) CreateSection(ctx context.Context, req *connect.Request[litterav1.CreateSectionRequest]) (*connect.Response[litterav1.Section], error) {
	sec, err := mapping.FromPbSection(req.Msg.GetSection())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.SectionCreate(ctx, command.Options{}, sec)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbSection(created)), nil
}

func (s *WorkServiceServer) GetSection(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.Section], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	sec, err := s.app.SectionGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbSection(sec)), nil
}

func (s *WorkServiceServer) ListSections(ctx context.Context, req *connect.Request[litterav1.ListSectionsRequest]) (*connect.Response[litterav1.ListSectionsResponse], error) {
	documentID, err := entity.ParseID(req.Msg.GetDocumentId())
	if err != nil {
		return nil, toConnectError(err)
	}
	rows, err := s.app.SectionList(ctx, pageQuery(&documentID, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Section, 0, len(rows))
	for _, sec := range rows {
		out = append(out, mapping.ToPbSection(sec))
	}
	return connect.NewResponse(&litterav1.ListSectionsResponse{Sections: out}), nil
}

func (s *WorkServiceServer) UpdateSection(ctx context.Context, req *connect.Request[litterav1.Section]) (*connect.Response[litterav1.Section], error) {
	sec, err := mapping.FromPbSection(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated, err := s.app.SectionUpdate(ctx, sec)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbSection(updated)), nil
}

func (s *WorkServiceServer) DeleteSection(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.SectionDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) CreateBlock(ctx context.Context, req *connect.Request[litterav1.CreateBlockRequest]) (*connect.Response[litterav1.Block], error) {
	b, err := mapping.FromPbBlock(req.Msg.GetBlock())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.BlockCreate(ctx, command.Options{}, b)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbBlock(created)), nil
}

func (s *WorkServiceServer) GetBlock(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.Block], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	b, err := s.app.BlockGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbBlock(b)), nil
}

func (s *WorkServiceServer) ListBlocks(ctx context.Context, req *connect.Request[litterav1.ListBlocksRequest]) (*connect.Response[litterav1.ListBlocksResponse], error) {
	sectionID, err := entity.ParseID(req.Msg.GetSectionId())
	if err != nil {
		return nil, toConnectError(err)
	}
	q := pageQuery(&sectionID, req.Msg.GetPageNo(), req.Msg.GetPageSize())
	q.FilterOrder = repository.FilterOrder{OrderBy: repository.DefaultSiblingOrder}
	rows, err := s.app.BlockList(ctx, q)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Block, 0, len(rows))
	for _, b := range rows {
		out = append(out, mapping.ToPbBlock(b))
	}
	return connect.NewResponse(&litterav1.ListBlocksResponse{Blocks: out}), nil
}

func (s *WorkServiceServer) UpdateBlock(ctx context.Context, req *connect.Request[litterav1.Block]) (*connect.Response[litterav1.Block], error) {
	b, err := mapping.FromPbBlock(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated, err := s.app.BlockUpdate(ctx, b)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbBlock(updated)), nil
}

func (s *WorkServiceServer) DeleteBlock(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.BlockDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// BatchUpdateBlocks implements the Editor Session's coalesced-save path
// (§4.2/§4.5) over the wire: every block lands in one transaction via
// command.App.BlockBatchUpdate.
func (s *WorkServiceServer) BatchUpdateBlocks(ctx context.Context, req *connect.Request[litterav1.BatchUpdateBlocksRequest]) (*connect.Response[litterav1.BatchUpdateBlocksResponse], error) {
	blocks := make([]*entity.Block, 0, len(req.Msg.GetBlocks()))
	for _, pb := range req.Msg.GetBlocks() {
		b, err := mapping.FromPbBlock(pb)
		if err != nil {
			return nil, toConnectError(err)
		}
		blocks = append(blocks, b)
	}
	updated, err := s.app.BlockBatchUpdate(ctx, blocks)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Block, 0, len(updated))
	for _, b := range updated {
		out = append(out, mapping.ToPbBlock(b))
	}
	return connect.NewResponse(&litterav1.BatchUpdateBlocksResponse{Blocks: out}), nil
}

func (s *WorkServiceServer) CreateEntity(ctx context.Context, req *connect.Request[litterav1.CreateEntityRequest]) (*connect.Response[litterav1.SemanticEntity], error) {
	e, err := mapping.FromPbEntity(req.Msg.GetEntity())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.EntityCreate(ctx, command.Options{}, e)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbEntity(created)), nil
}

func (s *WorkServiceServer) GetEntity(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.SemanticEntity], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	e, err := s.app.EntityGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbEntity(e)), nil
}

func (s *WorkServiceServer) ListEntities(ctx context.Context, req *connect.Request[litterav1.ListEntitiesRequest]) (*connect.Response[litterav1.ListEntitiesResponse], error) {
	rows, err := s.app.EntityList(ctx, pageQuery(nil, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.SemanticEntity, 0, len(rows))
	for _, e := range rows {
		out = append(out, mapping.ToPbEntity(e))
	}
	return connect.NewResponse(&litterav1.ListEntitiesResponse{Entities: out}), nil
}

func (s *WorkServiceServer) UpdateEntity(ctx context.Context, req *connect.Request[litterav1.SemanticEntity]) (*connect.Response[litterav1.SemanticEntity], error) {
	e, err := mapping.FromPbEntity(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated, err := s.app.EntityUpdate(ctx, e)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbEntity(updated)), nil
}

func (s *WorkServiceServer) DeleteEntity(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.EntityDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) CreateMention(ctx context.Context, req *connect.Request[litterav1.CreateMentionRequest]) (*connect.Response[litterav1.Mention], error) {
	m, err := mapping.FromPbMention(req.Msg.GetMention())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.MentionCreate(ctx, command.Options{}, m)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbMention(created)), nil
}

func (s *WorkServiceServer) GetMention(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[litterav1.Mention], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	m, err := s.app.MentionGet(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbMention(m)), nil
}

func (s *WorkServiceServer) ListMentions(ctx context.Context, req *connect.Request[litterav1.ListMentionsRequest]) (*connect.Response[litterav1.ListMentionsResponse], error) {
	blockID, err := entity.ParseID(req.Msg.GetBlockId())
	if err != nil {
		return nil, toConnectError(err)
	}
	rows, err := s.app.MentionListByBlock(ctx, pageQuery(&blockID, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Mention, 0, len(rows))
	for _, m := range rows {
		out = append(out, mapping.ToPbMention(m))
	}
	return connect.NewResponse(&litterav1.ListMentionsResponse{Mentions: out}), nil
}

func (s *WorkServiceServer) DeleteMention(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.MentionDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) CreateAlignment(ctx context.Context, req *connect.Request[litterav1.CreateAlignmentRequest]) (*connect.Response[litterav1.BlockAlignment], error) {
	a, err := mapping.FromPbAlignment(req.Msg.GetAlignment())
	if err != nil {
		return nil, toConnectError(err)
	}
	created, err := s.app.AlignmentCreate(ctx, command.Options{}, a)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbAlignment(created)), nil
}

func (s *WorkServiceServer) ListAlignments(ctx context.Context, req *connect.Request[litterav1.ListAlignmentsRequest]) (*connect.Response[litterav1.ListAlignmentsResponse], error) {
	blockID, err := entity.ParseID(req.Msg.GetBlockId())
	if err != nil {
		return nil, toConnectError(err)
	}
	rows, err := s.app.AlignmentList(ctx, pageQuery(&blockID, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.BlockAlignment, 0, len(rows))
	for _, a := range rows {
		out = append(out, mapping.ToPbAlignment(a))
	}
	return connect.NewResponse(&litterav1.ListAlignmentsResponse{Alignments: out}), nil
}

func (s *WorkServiceServer) DeleteAlignment(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.AlignmentDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) AlignmentGaps(ctx context.Context, req *connect.Request[litterav1.AlignmentGapsRequest]) (*connect.Response[litterav1.AlignmentGapsResponse], error) {
	workID, err := entity.ParseID(req.Msg.GetWorkId())
	if err != nil {
		return nil, toConnectError(err)
	}
	sourceLang, err := entity.ParseLanguage(req.Msg.GetSourceLanguage())
	if err != nil {
		return nil, toConnectError(err)
	}
	targetLang, err := entity.ParseLanguage(req.Msg.GetTargetLanguage())
	if err != nil {
		return nil, toConnectError(err)
	}
	gaps, err := s.app.AlignmentGaps(ctx, workID, sourceLang, targetLang)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.AlignmentGap, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, &litterav1.AlignmentGap{EntityId: g.EntityID.String(), CanonicalLabel: g.CanonicalLabel, SourceLabel: g.SourceLabel})
	}
	return connect.NewResponse(&litterav1.AlignmentGapsResponse{Gaps: out}), nil
}

func (s *WorkServiceServer) ListReviews(ctx context.Context, req *connect.Request[litterav1.ListReviewsRequest]) (*connect.Response[litterav1.ListReviewsResponse], error) {
	scopeID, err := entity.ParseID(req.Msg.GetScopeId())
	if err != nil {
		return nil, toConnectError(err)
	}
	rows, err := s.app.ReviewList(ctx, pageQuery(&scopeID, req.Msg.GetPageNo(), req.Msg.GetPageSize()))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*litterav1.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapping.ToPbReview(r))
	}
	return connect.NewResponse(&litterav1.ListReviewsResponse{Reviews: out}), nil
}

func (s *WorkServiceServer) DeleteReview(ctx context.Context, req *connect.Request[litterav1.IDRequest]) (*connect.Response[emptypb.Empty], error) {
	id, err := entity.ParseID(req.Msg.GetId())
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.app.ReviewDelete(ctx, command.Options{}, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *WorkServiceServer) Status(ctx context.Context, req *connect.Request[litterav1.StatusRequest]) (*connect.Response[litterav1.StatusResponse], error) {
	workID, err := entity.ParseID(req.Msg.GetWorkId())
	if err != nil {
		return nil, toConnectError(err)
	}
	st, err := s.app.Status(ctx, workID, nil)
	if err != nil {
		return nil, toConnectError(err)
	}
	counts := make(map[string]int32, len(st.ReviewCounts))
	for sev, n := range st.ReviewCounts {
		counts[string(sev)] = int32(n)
	}
	return connect.NewResponse(&litterav1.StatusResponse{
		ClusterRunning:         st.ClusterRunning,
		LeaseRemainingSeconds:  int64(st.LeaseRemaining.Seconds()),
		ReviewCounts:           counts,
	}), nil
}

func pageQuery(parentID *entity.ID, pageNo, pageSize int32) *repository.ListQuery {
	if pageNo <= 0 {
		pageNo = 1
	}
	if pageSize <= 0 || pageSize > listAllPageSize {
		pageSize = listAllPageSize
	}
	return &repository.ListQuery{
		ParentID:   parentID,
		Pagination: repository.Pagination{PageNo: pageNo, PageSize: pageSize},
	}
}
