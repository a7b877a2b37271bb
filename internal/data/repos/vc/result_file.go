package vc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VcResultFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.VcResultFile) ([]*types.VcResultFile, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, resSeq int64) (*types.VcResultFile, error)
	GetLatestBySrcSeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcResultFile, error)
}

type vcResultFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVcResultFileRepo(db *gorm.DB, baseLog *logger.Logger) VcResultFileRepo {
	repoLog := baseLog.With("repo", "VcResultFileRepo")
	return &vcResultFileRepo{db: db, log: repoLog}
}

func (r *vcResultFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.VcResultFile) ([]*types.VcResultFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.VcResultFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *vcResultFileRepo) GetBySeq(ctx context.Context, tx *gorm.DB, resSeq int64) (*types.VcResultFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcResultFile
	if err := transaction.WithContext(ctx).
		Where("res_seq = ?", resSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetLatestBySrcSeq resolves the current result of a source row as the one
// with the greatest res_seq. The max identifier is the latest-write proxy;
// timestamps are deliberately not consulted.
func (r *vcResultFileRepo) GetLatestBySrcSeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcResultFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcResultFile
	if err := transaction.WithContext(ctx).
		Where("src_seq = ?", srcSeq).
		Order("res_seq DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
