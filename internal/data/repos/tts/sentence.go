package tts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type TtsSentenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sentence *types.TtsSentence) (*types.TtsSentence, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, tsSeq int64) (*types.TtsSentence, error)
	GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.TtsSentence, error)
	Save(ctx context.Context, tx *gorm.DB, sentence *types.TtsSentence) (*types.TtsSentence, error)
	DeleteBySeq(ctx context.Context, tx *gorm.DB, tsSeq int64) error
}

type ttsSentenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTtsSentenceRepo(db *gorm.DB, baseLog *logger.Logger) TtsSentenceRepo {
	repoLog := baseLog.With("repo", "TtsSentenceRepo")
	return &ttsSentenceRepo{db: db, log: repoLog}
}

func (r *ttsSentenceRepo) Create(ctx context.Context, tx *gorm.DB, sentence *types.TtsSentence) (*types.TtsSentence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(sentence).Error; err != nil {
		return nil, err
	}
	return sentence, nil
}

func (r *ttsSentenceRepo) GetBySeq(ctx context.Context, tx *gorm.DB, tsSeq int64) (*types.TtsSentence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TtsSentence
	if err := transaction.WithContext(ctx).
		Preload("Voice").
		Preload("Style").
		Preload("TtsAudioFile").
		Where("ts_seq = ?", tsSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *ttsSentenceRepo) GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.TtsSentence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TtsSentence
	if err := transaction.WithContext(ctx).
		Preload("Voice").
		Preload("Style").
		Preload("TtsAudioFile").
		Where("pro_seq = ?", proSeq).
		Order("sort_order, ts_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ttsSentenceRepo) Save(ctx context.Context, tx *gorm.DB, sentence *types.TtsSentence) (*types.TtsSentence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(sentence).Error; err != nil {
		return nil, err
	}
	return sentence, nil
}

func (r *ttsSentenceRepo) DeleteBySeq(ctx context.Context, tx *gorm.DB, tsSeq int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("ts_seq = ?", tsSeq).
		Delete(&types.TtsSentence{}).Error
}
