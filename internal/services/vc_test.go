package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

type fakeVcRepo struct {
	pipelines map[int64]*types.Vc
}

func newFakeVcRepo() *fakeVcRepo {
	return &fakeVcRepo{pipelines: map[int64]*types.Vc{}}
}

func (f *fakeVcRepo) GetByProSeq(_ context.Context, _ *gorm.DB, proSeq int64) (*types.Vc, error) {
	return f.pipelines[proSeq], nil
}

func (f *fakeVcRepo) GetOrCreateByProSeq(_ context.Context, _ *gorm.DB, proSeq int64) (*types.Vc, error) {
	if v, ok := f.pipelines[proSeq]; ok {
		return v, nil
	}
	v := &types.Vc{ProSeq: proSeq}
	f.pipelines[proSeq] = v
	return v, nil
}

type fakeSrcFileRepo struct {
	nextSeq int64
	rows    []*types.VcSrcFile
}

func (f *fakeSrcFileRepo) Create(_ context.Context, _ *gorm.DB, files []*types.VcSrcFile) ([]*types.VcSrcFile, error) {
	for _, file := range files {
		f.nextSeq++
		file.SrcSeq = f.nextSeq
		f.rows = append(f.rows, file)
	}
	return files, nil
}

func (f *fakeSrcFileRepo) GetBySeq(_ context.Context, _ *gorm.DB, srcSeq int64) (*types.VcSrcFile, error) {
	for _, row := range f.rows {
		if row.SrcSeq == srcSeq {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeSrcFileRepo) GetByProSeq(_ context.Context, _ *gorm.DB, proSeq int64) ([]*types.VcSrcFile, error) {
	var out []*types.VcSrcFile
	for _, row := range f.rows {
		if row.ProSeq == proSeq {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSrcFileRepo) CountByProSeq(_ context.Context, _ *gorm.DB, proSeq int64) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.ProSeq == proSeq {
			count++
		}
	}
	return count, nil
}

func (f *fakeSrcFileRepo) Save(_ context.Context, _ *gorm.DB, file *types.VcSrcFile) (*types.VcSrcFile, error) {
	for i, row := range f.rows {
		if row.SrcSeq == file.SrcSeq {
			f.rows[i] = file
			return file, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTrgFileRepo struct {
	nextSeq int64
	rows    []*types.VcTrgFile
}

func (f *fakeTrgFileRepo) Create(_ context.Context, _ *gorm.DB, files []*types.VcTrgFile) ([]*types.VcTrgFile, error) {
	for _, file := range files {
		f.nextSeq++
		file.TrgSeq = f.nextSeq
		f.rows = append(f.rows, file)
	}
	return files, nil
}

func (f *fakeTrgFileRepo) GetBySeq(_ context.Context, _ *gorm.DB, trgSeq int64) (*types.VcTrgFile, error) {
	for _, row := range f.rows {
		if row.TrgSeq == trgSeq {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeTrgFileRepo) GetByProSeq(_ context.Context, _ *gorm.DB, proSeq int64) ([]*types.VcTrgFile, error) {
	var out []*types.VcTrgFile
	for _, row := range f.rows {
		if row.ProSeq == proSeq {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeResultFileRepo struct {
	nextSeq int64
	rows    []*types.VcResultFile
}

func (f *fakeResultFileRepo) Create(_ context.Context, _ *gorm.DB, files []*types.VcResultFile) ([]*types.VcResultFile, error) {
	for _, file := range files {
		if file.ResSeq == 0 {
			f.nextSeq++
			file.ResSeq = f.nextSeq
		} else if file.ResSeq > f.nextSeq {
			f.nextSeq = file.ResSeq
		}
		f.rows = append(f.rows, file)
	}
	return files, nil
}

func (f *fakeResultFileRepo) GetBySeq(_ context.Context, _ *gorm.DB, resSeq int64) (*types.VcResultFile, error) {
	for _, row := range f.rows {
		if row.ResSeq == resSeq {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeResultFileRepo) GetLatestBySrcSeq(_ context.Context, _ *gorm.DB, srcSeq int64) (*types.VcResultFile, error) {
	var latest *types.VcResultFile
	for _, row := range f.rows {
		if row.SrcSeq != srcSeq {
			continue
		}
		if latest == nil || row.ResSeq > latest.ResSeq {
			latest = row
		}
	}
	return latest, nil
}

type fakeTextRepo struct {
	nextSeq int64
	rows    []*types.VcText
}

func (f *fakeTextRepo) Create(_ context.Context, _ *gorm.DB, texts []*types.VcText) ([]*types.VcText, error) {
	for _, text := range texts {
		f.nextSeq++
		text.VtSeq = f.nextSeq
		f.rows = append(f.rows, text)
	}
	return texts, nil
}

func (f *fakeTextRepo) GetBySeq(_ context.Context, _ *gorm.DB, vtSeq int64) (*types.VcText, error) {
	for _, row := range f.rows {
		if row.VtSeq == vtSeq {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeTextRepo) GetLatestBySrcSeq(_ context.Context, _ *gorm.DB, srcSeq int64) (*types.VcText, error) {
	var latest *types.VcText
	for _, row := range f.rows {
		if row.SrcSeq != srcSeq {
			continue
		}
		if latest == nil || row.VtSeq > latest.VtSeq {
			latest = row
		}
	}
	return latest, nil
}

func (f *fakeTextRepo) Save(_ context.Context, _ *gorm.DB, text *types.VcText) (*types.VcText, error) {
	for i, row := range f.rows {
		if row.VtSeq == text.VtSeq {
			f.rows[i] = text
			return text, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type vcFixture struct {
	service VcService
	vc      *fakeVcRepo
	src     *fakeSrcFileRepo
	trg     *fakeTrgFileRepo
	result  *fakeResultFileRepo
	text    *fakeTextRepo
}

func newVcFixture(t *testing.T) *vcFixture {
	t.Helper()
	f := &vcFixture{
		vc:     newFakeVcRepo(),
		src:    &fakeSrcFileRepo{},
		trg:    &fakeTrgFileRepo{},
		result: &fakeResultFileRepo{},
		text:   &fakeTextRepo{},
	}
	f.service = NewVcService(nil, testLogger(t), f.vc, f.src, f.trg, f.result, f.text)
	return f
}

func srcRequest(name string) *AudioFileRequest {
	return &AudioFileRequest{
		FileName:   name,
		FileURL:    "https://cdn.example.com/concat/audio/" + name,
		FileLength: 3,
		FileSize:   1024,
		Extension:  "WAV",
	}
}

func TestSrcSaveBatchAssignsSequentialRowOrder(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	reqs := []*AudioFileRequest{srcRequest("a.wav"), srcRequest("b.wav"), srcRequest("c.wav")}
	handles, err := f.service.SrcSaveBatch(ctx, nil, reqs, 7)
	if err != nil {
		t.Fatalf("SrcSaveBatch: err=%v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("SrcSaveBatch: want 3 handles got %d", len(handles))
	}
	for i, row := range f.src.rows {
		if row.RowOrder != i+1 {
			t.Fatalf("row order at %d: want %d got %d", i, i+1, row.RowOrder)
		}
	}
	if _, ok := f.vc.pipelines[7]; !ok {
		t.Fatal("pipeline was not lazily created")
	}
}

func TestSrcSaveCountsExistingRows(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	if _, err := f.service.SrcSave(ctx, nil, srcRequest("a.wav"), 7); err != nil {
		t.Fatalf("SrcSave: err=%v", err)
	}
	h, err := f.service.SrcSave(ctx, nil, srcRequest("b.wav"), 7)
	if err != nil {
		t.Fatalf("SrcSave: err=%v", err)
	}
	row, _ := f.src.GetBySeq(ctx, nil, h.Seq)
	if row.RowOrder != 2 {
		t.Fatalf("second row order: want 2 got %d", row.RowOrder)
	}
}

func TestDeleteSrcFilePreservesRowOrder(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	if _, err := f.service.SrcSaveBatch(ctx, nil, []*AudioFileRequest{srcRequest("a.wav"), srcRequest("b.wav")}, 7); err != nil {
		t.Fatalf("SrcSaveBatch: err=%v", err)
	}

	target := f.src.rows[0]
	handle, err := f.service.DeleteSrcFile(ctx, nil, target.SrcSeq)
	if err != nil {
		t.Fatalf("DeleteSrcFile: err=%v", err)
	}
	if handle.Activate != types.ActivateNo {
		t.Fatalf("activate: want N got %s", handle.Activate)
	}
	if target.RowOrder != 1 {
		t.Fatalf("deleted row order: want 1 got %d", target.RowOrder)
	}
	if f.src.rows[1].RowOrder != 2 {
		t.Fatalf("sibling row order: want 2 got %d", f.src.rows[1].RowOrder)
	}
	if f.src.rows[1].Activate != types.ActivateYes {
		t.Fatalf("sibling activate: want Y got %s", f.src.rows[1].Activate)
	}
}

func TestGetVcViewPicksMaxSeqResult(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	if _, err := f.service.SrcSave(ctx, nil, srcRequest("a.wav"), 7); err != nil {
		t.Fatalf("SrcSave: err=%v", err)
	}
	src := f.src.rows[0]

	f.result.Create(ctx, nil, []*types.VcResultFile{{ResSeq: 5, SrcSeq: src.SrcSeq, FileURL: "u5"}})
	f.result.Create(ctx, nil, []*types.VcResultFile{{ResSeq: 9, SrcSeq: src.SrcSeq, FileURL: "u9"}})

	view, err := f.service.GetVcView(ctx, nil, 7)
	if err != nil {
		t.Fatalf("GetVcView: err=%v", err)
	}
	if len(view) != 1 {
		t.Fatalf("GetVcView: want 1 row got %d", len(view))
	}
	if view[0].LatestResult == nil || view[0].LatestResult.ResSeq != 9 {
		t.Fatalf("latest result: want res_seq 9 got %+v", view[0].LatestResult)
	}
	if view[0].LatestText != nil {
		t.Fatalf("latest text: want absent got %+v", view[0].LatestText)
	}
}

func TestTextSaveRecomputesLength(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	if _, err := f.service.SrcSave(ctx, nil, srcRequest("a.wav"), 7); err != nil {
		t.Fatalf("SrcSave: err=%v", err)
	}
	src := f.src.rows[0]

	h, err := f.service.TextSave(ctx, nil, &TextRequest{Seq: src.SrcSeq, Text: "hello"})
	if err != nil {
		t.Fatalf("TextSave: err=%v", err)
	}
	if f.text.rows[0].Length != 5 {
		t.Fatalf("text length: want 5 got %d", f.text.rows[0].Length)
	}

	if _, err := f.service.UpdateText(ctx, nil, h.Seq, "longer comment"); err != nil {
		t.Fatalf("UpdateText: err=%v", err)
	}
	if f.text.rows[0].Length != 14 {
		t.Fatalf("updated length: want 14 got %d", f.text.rows[0].Length)
	}
	if f.text.rows[0].VtSeq != h.Seq {
		t.Fatalf("update changed identifier: want %d got %d", h.Seq, f.text.rows[0].VtSeq)
	}
	if len(f.text.rows) != 1 {
		t.Fatalf("update created a new row: want 1 got %d", len(f.text.rows))
	}
}

func TestUpdateRowOrderBatchAppliesValuesVerbatim(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	if _, err := f.service.SrcSaveBatch(ctx, nil, []*AudioFileRequest{srcRequest("a.wav"), srcRequest("b.wav")}, 7); err != nil {
		t.Fatalf("SrcSaveBatch: err=%v", err)
	}
	a, b := f.src.rows[0], f.src.rows[1]

	// Duplicates pass through untouched, no renumbering.
	orders := map[int64]int{a.SrcSeq: 5, b.SrcSeq: 5}
	handles, err := f.service.UpdateRowOrderBatch(ctx, nil, orders, []int64{a.SrcSeq, b.SrcSeq})
	if err != nil {
		t.Fatalf("UpdateRowOrderBatch: err=%v", err)
	}
	if len(handles) != 2 {
		t.Fatalf("UpdateRowOrderBatch: want 2 handles got %d", len(handles))
	}
	if a.RowOrder != 5 || b.RowOrder != 5 {
		t.Fatalf("row orders: want 5,5 got %d,%d", a.RowOrder, b.RowOrder)
	}
}

func TestResultSaveRequiresExistingSource(t *testing.T) {
	f := newVcFixture(t)
	ctx := context.Background()

	_, err := f.service.ResultSave(ctx, nil, &AudioFileRequest{Seq: 42, FileURL: "u"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("ResultSave: want ErrNotFound got %v", err)
	}
}
