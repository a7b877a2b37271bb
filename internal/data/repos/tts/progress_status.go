package tts

import (
	"context"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type TtsProgressStatusRepo interface {
	Create(ctx context.Context, tx *gorm.DB, status *types.TtsProgressStatus) (*types.TtsProgressStatus, error)
	GetByTsSeq(ctx context.Context, tx *gorm.DB, tsSeq int64) ([]*types.TtsProgressStatus, error)
	DeleteByTsSeq(ctx context.Context, tx *gorm.DB, tsSeq int64) error
}

type ttsProgressStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTtsProgressStatusRepo(db *gorm.DB, baseLog *logger.Logger) TtsProgressStatusRepo {
	repoLog := baseLog.With("repo", "TtsProgressStatusRepo")
	return &ttsProgressStatusRepo{db: db, log: repoLog}
}

func (r *ttsProgressStatusRepo) Create(ctx context.Context, tx *gorm.DB, status *types.TtsProgressStatus) (*types.TtsProgressStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}

// GetByTsSeq returns the full status history for a sentence, oldest first.
func (r *ttsProgressStatusRepo) GetByTsSeq(ctx context.Context, tx *gorm.DB, tsSeq int64) ([]*types.TtsProgressStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TtsProgressStatus
	if err := transaction.WithContext(ctx).
		Where("ts_seq = ?", tsSeq).
		Order("tps_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ttsProgressStatusRepo) DeleteByTsSeq(ctx context.Context, tx *gorm.DB, tsSeq int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("ts_seq = ?", tsSeq).
		Delete(&types.TtsProgressStatus{}).Error
}
