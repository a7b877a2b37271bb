package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/data/repos"
	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/audiometa"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"github.com/voclab/voclab-backend/internal/platform/gcp"
)

// audioUploadPrefix is the logical key prefix every ingested upload lands
// under in the bucket.
const audioUploadPrefix = "concat/audio"

// UploadCandidate is one raw file handed in by the upload handler.
type UploadCandidate struct {
	FileName string
	Data     []byte
}

// NormalizedAsset is the ingestion output for one candidate, ready to be
// persisted or forwarded to the pipeline layer.
type NormalizedAsset struct {
	URL             string         `json:"url"`
	Extension       string         `json:"extension"`
	SizeBytes       int64          `json:"size_bytes"`
	DurationSeconds int64          `json:"duration_seconds"`
	OriginalName    string         `json:"original_name"`
	Probe           audiometa.Info `json:"probe"`
}

type AudioIngestService interface {
	// ValidateBatch returns the original names of candidates that failed
	// audio detection. An empty result means the whole batch is acceptable.
	ValidateBatch(candidates []UploadCandidate) []string

	// IngestBatch uploads every candidate and returns normalized records in
	// input order. A single undetectable candidate fails the whole batch
	// before any upload happens.
	IngestBatch(ctx context.Context, candidates []UploadCandidate) ([]*NormalizedAsset, error)

	// PersistAssets bulk-inserts already-normalized records.
	PersistAssets(ctx context.Context, tx *gorm.DB, assets []*NormalizedAsset) ([]*types.AudioFile, error)

	GetAudioFile(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (*types.AudioFile, error)
	GetAudioFileByURL(ctx context.Context, tx *gorm.DB, audioURL string) (*types.AudioFile, error)
	GetAudioFileByName(ctx context.Context, tx *gorm.DB, fileName string) ([]*types.AudioFile, error)
	ListByExtensionPaged(ctx context.Context, tx *gorm.DB, extension string, page, size int) ([]*types.AudioFile, int64, error)
	DeleteAudioFiles(ctx context.Context, tx *gorm.DB, audioFileSeqs []int64) error
}

type audioIngestService struct {
	db            *gorm.DB
	log           *logger.Logger
	audioFileRepo repos.AudioFileRepo
	bucketService gcp.BucketService
}

func NewAudioIngestService(db *gorm.DB, baseLog *logger.Logger, audioFileRepo repos.AudioFileRepo, bucketService gcp.BucketService) AudioIngestService {
	serviceLog := baseLog.With("service", "AudioIngestService")
	return &audioIngestService{
		db:            db,
		log:           serviceLog,
		audioFileRepo: audioFileRepo,
		bucketService: bucketService,
	}
}

func (as *audioIngestService) ValidateBatch(candidates []UploadCandidate) []string {
	rejected := []string{}
	for _, c := range candidates {
		if !audiometa.Detect(c.Data) {
			as.log.Warn("upload candidate rejected, not a decodable audio file", "file_name", c.FileName)
			rejected = append(rejected, c.FileName)
		}
	}
	return rejected
}

func (as *audioIngestService) IngestBatch(ctx context.Context, candidates []UploadCandidate) ([]*NormalizedAsset, error) {
	if len(candidates) == 0 {
		return nil, pkgerrors.ErrEmptyBatch
	}

	// All-or-nothing gate: one bad file blocks the whole batch before any
	// bytes reach the bucket.
	if rejected := as.ValidateBatch(candidates); len(rejected) > 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrUnsupportedFormat, strings.Join(rejected, ", "))
	}

	assets := make([]*NormalizedAsset, 0, len(candidates))
	for _, c := range candidates {
		ext, err := audiometa.Extension(c.FileName)
		if err != nil {
			return nil, fmt.Errorf("extract extension of %q: %w", c.FileName, err)
		}
		info, err := audiometa.Probe(c.Data)
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", c.FileName, err)
		}

		key := fmt.Sprintf("%s/%s.%s", audioUploadPrefix, uuid.NewString(), strings.ToLower(ext))
		if err := as.bucketService.UploadFile(ctx, key, bytes.NewReader(c.Data)); err != nil {
			return nil, fmt.Errorf("upload %q: %w", c.FileName, err)
		}

		assets = append(assets, &NormalizedAsset{
			URL:             as.bucketService.GetPublicURL(key),
			Extension:       ext,
			SizeBytes:       int64(len(c.Data)),
			DurationSeconds: info.DurationSeconds,
			OriginalName:    c.FileName,
			Probe:           info,
		})
	}

	as.log.Info("ingested audio batch", "count", len(assets))
	return assets, nil
}

func (as *audioIngestService) PersistAssets(ctx context.Context, tx *gorm.DB, assets []*NormalizedAsset) ([]*types.AudioFile, error) {
	if len(assets) == 0 {
		return nil, pkgerrors.ErrEmptyBatch
	}

	rows := make([]*types.AudioFile, 0, len(assets))
	for _, a := range assets {
		meta, err := json.Marshal(a.Probe)
		if err != nil {
			return nil, fmt.Errorf("marshal probe metadata of %q: %w", a.OriginalName, err)
		}
		rows = append(rows, &types.AudioFile{
			FileName:   a.OriginalName,
			AudioURL:   a.URL,
			Extension:  a.Extension,
			FileSize:   a.SizeBytes,
			FileLength: a.DurationSeconds,
			Metadata:   datatypes.JSON(meta),
		})
	}
	return as.audioFileRepo.Create(ctx, tx, rows)
}

func (as *audioIngestService) GetAudioFile(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (*types.AudioFile, error) {
	f, err := as.audioFileRepo.GetBySeq(ctx, tx, audioFileSeq)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return f, nil
}

func (as *audioIngestService) GetAudioFileByURL(ctx context.Context, tx *gorm.DB, audioURL string) (*types.AudioFile, error) {
	f, err := as.audioFileRepo.GetByURL(ctx, tx, audioURL)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return f, nil
}

func (as *audioIngestService) GetAudioFileByName(ctx context.Context, tx *gorm.DB, fileName string) ([]*types.AudioFile, error) {
	return as.audioFileRepo.GetByFileName(ctx, tx, fileName)
}

func (as *audioIngestService) ListByExtensionPaged(ctx context.Context, tx *gorm.DB, extension string, page, size int) ([]*types.AudioFile, int64, error) {
	ext := strings.ToUpper(strings.TrimSpace(extension))
	if ext == "" {
		return nil, 0, pkgerrors.ErrInvalidInput
	}
	return as.audioFileRepo.GetByExtensionPaged(ctx, tx, ext, page, size)
}

func (as *audioIngestService) DeleteAudioFiles(ctx context.Context, tx *gorm.DB, audioFileSeqs []int64) error {
	if len(audioFileSeqs) == 0 {
		return pkgerrors.ErrInvalidInput
	}
	for _, seq := range audioFileSeqs {
		ok, err := as.audioFileRepo.ExistsBySeq(ctx, tx, seq)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: audio file %d", pkgerrors.ErrNotFound, seq)
		}
	}
	return as.audioFileRepo.DeleteBySeqs(ctx, tx, audioFileSeqs)
}
