package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/data/repos"
	types "github.com/voclab/voclab-backend/internal/domain"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

// AudioFileRequest carries the stored-file attributes for a source, target
// or result row.
type AudioFileRequest struct {
	Seq        int64  `json:"seq"`
	FileName   string `json:"file_name"`
	FileURL    string `json:"file_url"`
	FileLength int64  `json:"file_length"`
	FileSize   int64  `json:"file_size"`
	Extension  string `json:"extension"`
}

// TextRequest attaches a text annotation to the source row Seq points at.
type TextRequest struct {
	Seq  int64  `json:"seq"`
	Text string `json:"text"`
}

// UrlHandle identifies a stored row together with its retrievable URL.
type UrlHandle struct {
	Seq int64  `json:"seq"`
	URL string `json:"url"`
}

// TextHandle identifies a stored text row.
type TextHandle struct {
	Seq     int64  `json:"seq"`
	Comment string `json:"comment"`
}

// RowHandle confirms a row-order write.
type RowHandle struct {
	Seq      int64 `json:"seq"`
	RowOrder int   `json:"row_order"`
}

// ActivateHandle confirms an activation-state write.
type ActivateHandle struct {
	Seq      int64  `json:"seq"`
	Activate string `json:"activate"`
}

// PipelineRow is one composite view row: a source plus its most recent
// result and text, either of which may be absent.
type PipelineRow struct {
	Source       *types.VcSrcFile    `json:"source"`
	LatestResult *types.VcResultFile `json:"latest_result,omitempty"`
	LatestText   *types.VcText       `json:"latest_text,omitempty"`
}

type VcService interface {
	SrcSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest, projectSeq int64) (*UrlHandle, error)
	SrcSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*AudioFileRequest, projectSeq int64) ([]*UrlHandle, error)
	TrgSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest, projectSeq int64) (*UrlHandle, error)
	ResultSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest) (*UrlHandle, error)
	ResultSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*AudioFileRequest) ([]*UrlHandle, error)
	TextSave(ctx context.Context, tx *gorm.DB, req *TextRequest) (*TextHandle, error)
	TextSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*TextRequest) ([]*TextHandle, error)

	GetVcView(ctx context.Context, tx *gorm.DB, projectSeq int64) ([]*PipelineRow, error)
	GetSrcFile(ctx context.Context, tx *gorm.DB, srcSeq int64) (*UrlHandle, error)
	GetResultFile(ctx context.Context, tx *gorm.DB, resSeq int64) (*UrlHandle, error)

	UpdateText(ctx context.Context, tx *gorm.DB, vtSeq int64, newText string) (*TextHandle, error)
	UpdateRowOrder(ctx context.Context, tx *gorm.DB, srcSeq int64, newOrder int) (*RowHandle, error)
	UpdateRowOrderBatch(ctx context.Context, tx *gorm.DB, orders map[int64]int, seqs []int64) ([]*RowHandle, error)
	DeleteSrcFile(ctx context.Context, tx *gorm.DB, srcSeq int64) (*ActivateHandle, error)
	DeleteSrcFiles(ctx context.Context, tx *gorm.DB, srcSeqs []int64) ([]*ActivateHandle, error)

	SrcURLs(ctx context.Context, tx *gorm.DB, srcSeqs []int64) ([]*UrlHandle, error)
}

type vcService struct {
	db             *gorm.DB
	log            *logger.Logger
	vcRepo         repos.VcRepo
	srcFileRepo    repos.VcSrcFileRepo
	trgFileRepo    repos.VcTrgFileRepo
	resultFileRepo repos.VcResultFileRepo
	textRepo       repos.VcTextRepo
}

func NewVcService(
	db *gorm.DB,
	baseLog *logger.Logger,
	vcRepo repos.VcRepo,
	srcFileRepo repos.VcSrcFileRepo,
	trgFileRepo repos.VcTrgFileRepo,
	resultFileRepo repos.VcResultFileRepo,
	textRepo repos.VcTextRepo,
) VcService {
	serviceLog := baseLog.With("service", "VcService")
	return &vcService{
		db:             db,
		log:            serviceLog,
		vcRepo:         vcRepo,
		srcFileRepo:    srcFileRepo,
		trgFileRepo:    trgFileRepo,
		resultFileRepo: resultFileRepo,
		textRepo:       textRepo,
	}
}

func (vs *vcService) SrcSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest, projectSeq int64) (*UrlHandle, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}

	pipeline, err := vs.vcRepo.GetOrCreateByProSeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, fmt.Errorf("resolve pipeline for project %d: %w", projectSeq, err)
	}

	count, err := vs.srcFileRepo.CountByProSeq(ctx, tx, pipeline.ProSeq)
	if err != nil {
		return nil, err
	}

	row := &types.VcSrcFile{
		ProSeq:     pipeline.ProSeq,
		RowOrder:   int(count) + 1,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		FileLength: req.FileLength,
		FileSize:   req.FileSize,
		Extension:  req.Extension,
		Activate:   types.ActivateYes,
	}
	created, err := vs.srcFileRepo.Create(ctx, tx, []*types.VcSrcFile{row})
	if err != nil {
		return nil, err
	}
	return &UrlHandle{Seq: created[0].SrcSeq, URL: created[0].FileURL}, nil
}

// SrcSaveBatch recounts before every insert so rows created earlier in the
// same batch push later rows' order up.
func (vs *vcService) SrcSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*AudioFileRequest, projectSeq int64) ([]*UrlHandle, error) {
	handles := make([]*UrlHandle, 0, len(reqs))
	for _, req := range reqs {
		h, err := vs.SrcSave(ctx, tx, req, projectSeq)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (vs *vcService) TrgSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest, projectSeq int64) (*UrlHandle, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}

	pipeline, err := vs.vcRepo.GetOrCreateByProSeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, fmt.Errorf("resolve pipeline for project %d: %w", projectSeq, err)
	}

	row := &types.VcTrgFile{
		ProSeq:     pipeline.ProSeq,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		FileLength: req.FileLength,
		FileSize:   req.FileSize,
		Extension:  req.Extension,
	}
	created, err := vs.trgFileRepo.Create(ctx, tx, []*types.VcTrgFile{row})
	if err != nil {
		return nil, err
	}
	return &UrlHandle{Seq: created[0].TrgSeq, URL: created[0].FileURL}, nil
}

func (vs *vcService) ResultSave(ctx context.Context, tx *gorm.DB, req *AudioFileRequest) (*UrlHandle, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}

	src, err := vs.srcFileRepo.GetBySeq(ctx, tx, req.Seq)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: src file %d", pkgerrors.ErrNotFound, req.Seq)
	}

	row := &types.VcResultFile{
		SrcSeq:     src.SrcSeq,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		FileLength: req.FileLength,
		FileSize:   req.FileSize,
		Extension:  req.Extension,
	}
	created, err := vs.resultFileRepo.Create(ctx, tx, []*types.VcResultFile{row})
	if err != nil {
		return nil, err
	}
	return &UrlHandle{Seq: created[0].ResSeq, URL: created[0].FileURL}, nil
}

func (vs *vcService) ResultSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*AudioFileRequest) ([]*UrlHandle, error) {
	handles := make([]*UrlHandle, 0, len(reqs))
	for _, req := range reqs {
		h, err := vs.ResultSave(ctx, tx, req)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (vs *vcService) TextSave(ctx context.Context, tx *gorm.DB, req *TextRequest) (*TextHandle, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}

	src, err := vs.srcFileRepo.GetBySeq(ctx, tx, req.Seq)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: src file %d", pkgerrors.ErrNotFound, req.Seq)
	}

	row := &types.VcText{
		SrcSeq:  src.SrcSeq,
		Comment: req.Text,
		Length:  utf8.RuneCountInString(req.Text),
	}
	created, err := vs.textRepo.Create(ctx, tx, []*types.VcText{row})
	if err != nil {
		return nil, err
	}
	return &TextHandle{Seq: created[0].VtSeq, Comment: created[0].Comment}, nil
}

func (vs *vcService) TextSaveBatch(ctx context.Context, tx *gorm.DB, reqs []*TextRequest) ([]*TextHandle, error) {
	handles := make([]*TextHandle, 0, len(reqs))
	for _, req := range reqs {
		h, err := vs.TextSave(ctx, tx, req)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// GetVcView returns one composite row per source of the project's pipeline,
// soft-deleted rows included, in insertion order. Latest result and text are
// resolved by greatest sequence, absent when none exist.
func (vs *vcService) GetVcView(ctx context.Context, tx *gorm.DB, projectSeq int64) ([]*PipelineRow, error) {
	sources, err := vs.srcFileRepo.GetByProSeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, err
	}

	view := make([]*PipelineRow, 0, len(sources))
	for _, src := range sources {
		latestResult, err := vs.resultFileRepo.GetLatestBySrcSeq(ctx, tx, src.SrcSeq)
		if err != nil {
			return nil, err
		}
		latestText, err := vs.textRepo.GetLatestBySrcSeq(ctx, tx, src.SrcSeq)
		if err != nil {
			return nil, err
		}
		view = append(view, &PipelineRow{
			Source:       src,
			LatestResult: latestResult,
			LatestText:   latestText,
		})
	}
	return view, nil
}

func (vs *vcService) GetSrcFile(ctx context.Context, tx *gorm.DB, srcSeq int64) (*UrlHandle, error) {
	src, err := vs.srcFileRepo.GetBySeq(ctx, tx, srcSeq)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: src file %d", pkgerrors.ErrNotFound, srcSeq)
	}
	return &UrlHandle{Seq: src.SrcSeq, URL: src.FileURL}, nil
}

func (vs *vcService) GetResultFile(ctx context.Context, tx *gorm.DB, resSeq int64) (*UrlHandle, error) {
	res, err := vs.resultFileRepo.GetBySeq(ctx, tx, resSeq)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: result file %d", pkgerrors.ErrNotFound, resSeq)
	}
	return &UrlHandle{Seq: res.ResSeq, URL: res.FileURL}, nil
}

func (vs *vcService) UpdateText(ctx context.Context, tx *gorm.DB, vtSeq int64, newText string) (*TextHandle, error) {
	text, err := vs.textRepo.GetBySeq(ctx, tx, vtSeq)
	if err != nil {
		return nil, err
	}
	if text == nil {
		return nil, fmt.Errorf("%w: text %d", pkgerrors.ErrNotFound, vtSeq)
	}

	text.Comment = newText
	text.Length = utf8.RuneCountInString(newText)
	saved, err := vs.textRepo.Save(ctx, tx, text)
	if err != nil {
		return nil, err
	}
	return &TextHandle{Seq: saved.VtSeq, Comment: saved.Comment}, nil
}

func (vs *vcService) UpdateRowOrder(ctx context.Context, tx *gorm.DB, srcSeq int64, newOrder int) (*RowHandle, error) {
	src, err := vs.srcFileRepo.GetBySeq(ctx, tx, srcSeq)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: src file %d", pkgerrors.ErrNotFound, srcSeq)
	}

	src.RowOrder = newOrder
	saved, err := vs.srcFileRepo.Save(ctx, tx, src)
	if err != nil {
		return nil, err
	}
	return &RowHandle{Seq: saved.SrcSeq, RowOrder: saved.RowOrder}, nil
}

// UpdateRowOrderBatch applies each requested order as-is; siblings are never
// renumbered, duplicates and gaps pass through.
func (vs *vcService) UpdateRowOrderBatch(ctx context.Context, tx *gorm.DB, orders map[int64]int, seqs []int64) ([]*RowHandle, error) {
	handles := make([]*RowHandle, 0, len(seqs))
	for _, seq := range seqs {
		order, ok := orders[seq]
		if !ok {
			return nil, fmt.Errorf("%w: no row order supplied for src file %d", pkgerrors.ErrInvalidInput, seq)
		}
		h, err := vs.UpdateRowOrder(ctx, tx, seq, order)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (vs *vcService) DeleteSrcFile(ctx context.Context, tx *gorm.DB, srcSeq int64) (*ActivateHandle, error) {
	src, err := vs.srcFileRepo.GetBySeq(ctx, tx, srcSeq)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: src file %d", pkgerrors.ErrNotFound, srcSeq)
	}

	src.Activate = types.ActivateNo
	saved, err := vs.srcFileRepo.Save(ctx, tx, src)
	if err != nil {
		return nil, err
	}
	return &ActivateHandle{Seq: saved.SrcSeq, Activate: saved.Activate}, nil
}

func (vs *vcService) DeleteSrcFiles(ctx context.Context, tx *gorm.DB, srcSeqs []int64) ([]*ActivateHandle, error) {
	handles := make([]*ActivateHandle, 0, len(srcSeqs))
	for _, seq := range srcSeqs {
		h, err := vs.DeleteSrcFile(ctx, tx, seq)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (vs *vcService) SrcURLs(ctx context.Context, tx *gorm.DB, srcSeqs []int64) ([]*UrlHandle, error) {
	handles := make([]*UrlHandle, 0, len(srcSeqs))
	for _, seq := range srcSeqs {
		h, err := vs.GetSrcFile(ctx, tx, seq)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// BuildSrcRequests pairs normalized ingestion records with their stored
// URLs into source-save requests for one project.
func BuildSrcRequests(assets []*NormalizedAsset) []*AudioFileRequest {
	reqs := make([]*AudioFileRequest, 0, len(assets))
	for _, a := range assets {
		reqs = append(reqs, &AudioFileRequest{
			FileName:   a.OriginalName,
			FileURL:    a.URL,
			FileLength: a.DurationSeconds,
			FileSize:   a.SizeBytes,
			Extension:  a.Extension,
		})
	}
	return reqs
}

// BuildAudioRequest converts one normalized record targeting an existing row.
func BuildAudioRequest(a *NormalizedAsset, seq int64) *AudioFileRequest {
	return &AudioFileRequest{
		Seq:        seq,
		FileName:   a.OriginalName,
		FileURL:    a.URL,
		FileLength: a.DurationSeconds,
		FileSize:   a.SizeBytes,
		Extension:  a.Extension,
	}
}

// BuildTextRequests zips source seqs with their texts; inputs must be the
// same length.
func BuildTextRequests(srcSeqs []int64, texts []string) ([]*TextRequest, error) {
	if len(srcSeqs) != len(texts) {
		return nil, pkgerrors.ErrInvalidInput
	}
	reqs := make([]*TextRequest, 0, len(texts))
	for i, seq := range srcSeqs {
		reqs = append(reqs, &TextRequest{Seq: seq, Text: texts[i]})
	}
	return reqs, nil
}
