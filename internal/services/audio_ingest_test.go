package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
)

type fakeBucket struct {
	uploads []string
	failAll bool
}

func (f *fakeBucket) UploadFile(_ context.Context, key string, file io.Reader) error {
	if f.failAll {
		return errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(file); err != nil {
		return err
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeBucket) DeleteFile(_ context.Context, key string) error { return nil }

func (f *fakeBucket) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeAudioFileRepo struct {
	nextSeq int64
	rows    map[int64]*types.AudioFile
}

func newFakeAudioFileRepo() *fakeAudioFileRepo {
	return &fakeAudioFileRepo{rows: map[int64]*types.AudioFile{}}
}

func (f *fakeAudioFileRepo) Create(_ context.Context, _ *gorm.DB, files []*types.AudioFile) ([]*types.AudioFile, error) {
	for _, file := range files {
		f.nextSeq++
		file.AudioFileSeq = f.nextSeq
		f.rows[file.AudioFileSeq] = file
	}
	return files, nil
}

func (f *fakeAudioFileRepo) GetBySeq(_ context.Context, _ *gorm.DB, seq int64) (*types.AudioFile, error) {
	return f.rows[seq], nil
}

func (f *fakeAudioFileRepo) GetByURL(_ context.Context, _ *gorm.DB, url string) (*types.AudioFile, error) {
	for _, row := range f.rows {
		if row.AudioURL == url {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeAudioFileRepo) GetByFileName(_ context.Context, _ *gorm.DB, name string) ([]*types.AudioFile, error) {
	var out []*types.AudioFile
	for seq := int64(1); seq <= f.nextSeq; seq++ {
		if row, ok := f.rows[seq]; ok && row.FileName == name {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAudioFileRepo) GetByExtensionPaged(_ context.Context, _ *gorm.DB, ext string, page, size int) ([]*types.AudioFile, int64, error) {
	var all []*types.AudioFile
	for seq := int64(1); seq <= f.nextSeq; seq++ {
		if row, ok := f.rows[seq]; ok && row.Extension == ext {
			all = append(all, row)
		}
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeAudioFileRepo) ExistsBySeq(_ context.Context, _ *gorm.DB, seq int64) (bool, error) {
	_, ok := f.rows[seq]
	return ok, nil
}

func (f *fakeAudioFileRepo) DeleteBySeqs(_ context.Context, _ *gorm.DB, seqs []int64) error {
	for _, seq := range seqs {
		delete(f.rows, seq)
	}
	return nil
}

// makeWav builds one second of 16-bit mono PCM silence.
func makeWav(t *testing.T) []byte {
	t.Helper()

	const sampleRate = 44100
	dataSize := uint32(sampleRate * 2)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

type ingestFixture struct {
	service AudioIngestService
	bucket  *fakeBucket
	repo    *fakeAudioFileRepo
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	f := &ingestFixture{
		bucket: &fakeBucket{},
		repo:   newFakeAudioFileRepo(),
	}
	f.service = NewAudioIngestService(nil, testLogger(t), f.repo, f.bucket)
	return f
}

func TestValidateBatchReturnsRejectedNames(t *testing.T) {
	f := newIngestFixture(t)

	candidates := []UploadCandidate{
		{FileName: "good.wav", Data: makeWav(t)},
		{FileName: "bad.txt", Data: []byte("not audio at all")},
		{FileName: "worse.bin", Data: []byte{0xde, 0xad}},
	}
	rejected := f.service.ValidateBatch(candidates)
	if len(rejected) != 2 {
		t.Fatalf("ValidateBatch: want 2 rejected got %d (%v)", len(rejected), rejected)
	}
	if rejected[0] != "bad.txt" || rejected[1] != "worse.bin" {
		t.Fatalf("ValidateBatch names: got %v", rejected)
	}
}

func TestIngestBatchEmpty(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.IngestBatch(context.Background(), nil)
	if !errors.Is(err, pkgerrors.ErrEmptyBatch) {
		t.Fatalf("IngestBatch empty: want ErrEmptyBatch got %v", err)
	}
}

func TestIngestBatchAllOrNothing(t *testing.T) {
	f := newIngestFixture(t)

	candidates := []UploadCandidate{
		{FileName: "a.wav", Data: makeWav(t)},
		{FileName: "b.wav", Data: makeWav(t)},
		{FileName: "c.wav", Data: makeWav(t)},
		{FileName: "readme.txt", Data: []byte("text file")},
	}
	_, err := f.service.IngestBatch(context.Background(), candidates)
	if !errors.Is(err, pkgerrors.ErrUnsupportedFormat) {
		t.Fatalf("IngestBatch: want ErrUnsupportedFormat got %v", err)
	}
	if len(f.bucket.uploads) != 0 {
		t.Fatalf("uploads after rejected batch: want 0 got %d", len(f.bucket.uploads))
	}
}

func TestIngestBatchPreservesOrder(t *testing.T) {
	f := newIngestFixture(t)

	candidates := []UploadCandidate{
		{FileName: "first.wav", Data: makeWav(t)},
		{FileName: "second.wav", Data: makeWav(t)},
		{FileName: "third.wav", Data: makeWav(t)},
	}
	assets, err := f.service.IngestBatch(context.Background(), candidates)
	if err != nil {
		t.Fatalf("IngestBatch: err=%v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("IngestBatch: want 3 assets got %d", len(assets))
	}
	if len(f.bucket.uploads) != 3 {
		t.Fatalf("uploads: want 3 got %d", len(f.bucket.uploads))
	}
	for i, want := range []string{"first.wav", "second.wav", "third.wav"} {
		if assets[i].OriginalName != want {
			t.Fatalf("asset %d name: want %q got %q", i, want, assets[i].OriginalName)
		}
		if assets[i].Extension != "WAV" {
			t.Fatalf("asset %d extension: want WAV got %q", i, assets[i].Extension)
		}
		if assets[i].DurationSeconds != 1 {
			t.Fatalf("asset %d duration: want 1 got %d", i, assets[i].DurationSeconds)
		}
		if !strings.HasPrefix(f.bucket.uploads[i], "concat/audio/") {
			t.Fatalf("upload key %d: want concat/audio/ prefix got %q", i, f.bucket.uploads[i])
		}
	}
}

func TestPersistAssetsRoundTrip(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	assets, err := f.service.IngestBatch(ctx, []UploadCandidate{{FileName: "keep.wav", Data: makeWav(t)}})
	if err != nil {
		t.Fatalf("IngestBatch: err=%v", err)
	}
	rows, err := f.service.PersistAssets(ctx, nil, assets)
	if err != nil {
		t.Fatalf("PersistAssets: err=%v", err)
	}
	if len(rows) != 1 || rows[0].AudioFileSeq == 0 {
		t.Fatalf("PersistAssets: want 1 row with assigned seq got %+v", rows)
	}

	got, err := f.service.GetAudioFile(ctx, nil, rows[0].AudioFileSeq)
	if err != nil {
		t.Fatalf("GetAudioFile: err=%v", err)
	}
	if got.FileName != "keep.wav" || got.Extension != "WAV" || got.FileLength != 1 {
		t.Fatalf("stored row: got %+v", got)
	}
	if len(got.Metadata) == 0 {
		t.Fatal("stored row: probe metadata missing")
	}

	byURL, err := f.service.GetAudioFileByURL(ctx, nil, got.AudioURL)
	if err != nil {
		t.Fatalf("GetAudioFileByURL: err=%v", err)
	}
	if byURL.AudioFileSeq != got.AudioFileSeq {
		t.Fatalf("GetAudioFileByURL: want seq %d got %d", got.AudioFileSeq, byURL.AudioFileSeq)
	}
}

func TestDeleteAudioFilesChecksExistence(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	assets, err := f.service.IngestBatch(ctx, []UploadCandidate{{FileName: "a.wav", Data: makeWav(t)}})
	if err != nil {
		t.Fatalf("IngestBatch: err=%v", err)
	}
	rows, err := f.service.PersistAssets(ctx, nil, assets)
	if err != nil {
		t.Fatalf("PersistAssets: err=%v", err)
	}

	err = f.service.DeleteAudioFiles(ctx, nil, []int64{rows[0].AudioFileSeq, 999})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("DeleteAudioFiles with missing seq: want ErrNotFound got %v", err)
	}
	if ok, _ := f.repo.ExistsBySeq(ctx, nil, rows[0].AudioFileSeq); !ok {
		t.Fatal("existing row was deleted despite failed existence check")
	}

	if err := f.service.DeleteAudioFiles(ctx, nil, []int64{rows[0].AudioFileSeq}); err != nil {
		t.Fatalf("DeleteAudioFiles: err=%v", err)
	}
	if ok, _ := f.repo.ExistsBySeq(ctx, nil, rows[0].AudioFileSeq); ok {
		t.Fatal("row still present after delete")
	}
}
