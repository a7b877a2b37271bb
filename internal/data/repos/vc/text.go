package vc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VcTextRepo interface {
	Create(ctx context.Context, tx *gorm.DB, texts []*types.VcText) ([]*types.VcText, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, vtSeq int64) (*types.VcText, error)
	GetLatestBySrcSeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcText, error)
	Save(ctx context.Context, tx *gorm.DB, text *types.VcText) (*types.VcText, error)
}

type vcTextRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVcTextRepo(db *gorm.DB, baseLog *logger.Logger) VcTextRepo {
	repoLog := baseLog.With("repo", "VcTextRepo")
	return &vcTextRepo{db: db, log: repoLog}
}

func (r *vcTextRepo) Create(ctx context.Context, tx *gorm.DB, texts []*types.VcText) ([]*types.VcText, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(texts) == 0 {
		return []*types.VcText{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&texts).Error; err != nil {
		return nil, err
	}
	return texts, nil
}

func (r *vcTextRepo) GetBySeq(ctx context.Context, tx *gorm.DB, vtSeq int64) (*types.VcText, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcText
	if err := transaction.WithContext(ctx).
		Where("vt_seq = ?", vtSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetLatestBySrcSeq returns the annotation with the greatest vt_seq for the
// source row, same max-identifier rule as results.
func (r *vcTextRepo) GetLatestBySrcSeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcText, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcText
	if err := transaction.WithContext(ctx).
		Where("src_seq = ?", srcSeq).
		Order("vt_seq DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *vcTextRepo) Save(ctx context.Context, tx *gorm.DB, text *types.VcText) (*types.VcText, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(text).Error; err != nil {
		return nil, err
	}
	return text, nil
}
