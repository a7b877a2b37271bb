package tts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VoiceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, voices []*types.Voice) ([]*types.Voice, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, voiceSeq int64) (*types.Voice, error)
	GetByLanguage(ctx context.Context, tx *gorm.DB, language string) ([]*types.Voice, error)
}

type voiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoiceRepo(db *gorm.DB, baseLog *logger.Logger) VoiceRepo {
	repoLog := baseLog.With("repo", "VoiceRepo")
	return &voiceRepo{db: db, log: repoLog}
}

func (r *voiceRepo) Create(ctx context.Context, tx *gorm.DB, voices []*types.Voice) ([]*types.Voice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(voices) == 0 {
		return []*types.Voice{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&voices).Error; err != nil {
		return nil, err
	}
	return voices, nil
}

func (r *voiceRepo) GetBySeq(ctx context.Context, tx *gorm.DB, voiceSeq int64) (*types.Voice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Voice
	if err := transaction.WithContext(ctx).
		Where("voice_seq = ?", voiceSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *voiceRepo) GetByLanguage(ctx context.Context, tx *gorm.DB, language string) ([]*types.Voice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Voice
	if err := transaction.WithContext(ctx).
		Where("language = ? AND enabled = ?", language, types.ActivateYes).
		Order("voice_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
