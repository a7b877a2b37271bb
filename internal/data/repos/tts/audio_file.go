package tts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type TtsAudioFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *types.TtsAudioFile) (*types.TtsAudioFile, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, tafSeq int64) (*types.TtsAudioFile, error)
}

type ttsAudioFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTtsAudioFileRepo(db *gorm.DB, baseLog *logger.Logger) TtsAudioFileRepo {
	repoLog := baseLog.With("repo", "TtsAudioFileRepo")
	return &ttsAudioFileRepo{db: db, log: repoLog}
}

func (r *ttsAudioFileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.TtsAudioFile) (*types.TtsAudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *ttsAudioFileRepo) GetBySeq(ctx context.Context, tx *gorm.DB, tafSeq int64) (*types.TtsAudioFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TtsAudioFile
	if err := transaction.WithContext(ctx).
		Where("taf_seq = ?", tafSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
