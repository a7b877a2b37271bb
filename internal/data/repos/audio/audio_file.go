package audio

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type AudioFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.AudioFile) ([]*types.AudioFile, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (*types.AudioFile, error)
	GetByURL(ctx context.Context, tx *gorm.DB, audioURL string) (*types.AudioFile, error)
	GetByFileName(ctx context.Context, tx *gorm.DB, fileName string) ([]*types.AudioFile, error)
	GetByExtensionPaged(ctx context.Context, tx *gorm.DB, extension string, page int, size int) ([]*types.AudioFile, int64, error)
	ExistsBySeq(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (bool, error)
	DeleteBySeqs(ctx context.Context, tx *gorm.DB, audioFileSeqs []int64) error
}

type audioFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAudioFileRepo(db *gorm.DB, baseLog *logger.Logger) AudioFileRepo {
	repoLog := baseLog.With("repo", "AudioFileRepo")
	return &audioFileRepo{db: db, log: repoLog}
}

func (r *audioFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.AudioFile) ([]*types.AudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.AudioFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *audioFileRepo) GetBySeq(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (*types.AudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AudioFile
	if err := transaction.WithContext(ctx).
		Where("audio_file_seq = ?", audioFileSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *audioFileRepo) GetByURL(ctx context.Context, tx *gorm.DB, audioURL string) (*types.AudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AudioFile
	if err := transaction.WithContext(ctx).
		Where("audio_url = ?", audioURL).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetByFileName matches exact stored file names; names are not unique so this
// can return more than one row.
func (r *audioFileRepo) GetByFileName(ctx context.Context, tx *gorm.DB, fileName string) ([]*types.AudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AudioFile
	if err := transaction.WithContext(ctx).
		Where("file_name = ?", fileName).
		Order("audio_file_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *audioFileRepo) GetByExtensionPaged(ctx context.Context, tx *gorm.DB, extension string, page int, size int) ([]*types.AudioFile, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.AudioFile{}).
		Where("extension = ?", extension).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.AudioFile
	if err := transaction.WithContext(ctx).
		Where("extension = ?", extension).
		Order("audio_file_seq").
		Offset(page * size).
		Limit(size).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *audioFileRepo) ExistsBySeq(ctx context.Context, tx *gorm.DB, audioFileSeq int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AudioFile{}).
		Where("audio_file_seq = ?", audioFileSeq).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *audioFileRepo) DeleteBySeqs(ctx context.Context, tx *gorm.DB, audioFileSeqs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(audioFileSeqs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("audio_file_seq IN ?", audioFileSeqs).
		Delete(&types.AudioFile{}).Error
}
