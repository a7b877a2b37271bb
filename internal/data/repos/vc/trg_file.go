package vc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VcTrgFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.VcTrgFile) ([]*types.VcTrgFile, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, trgSeq int64) (*types.VcTrgFile, error)
	GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.VcTrgFile, error)
}

type vcTrgFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVcTrgFileRepo(db *gorm.DB, baseLog *logger.Logger) VcTrgFileRepo {
	repoLog := baseLog.With("repo", "VcTrgFileRepo")
	return &vcTrgFileRepo{db: db, log: repoLog}
}

func (r *vcTrgFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.VcTrgFile) ([]*types.VcTrgFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.VcTrgFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *vcTrgFileRepo) GetBySeq(ctx context.Context, tx *gorm.DB, trgSeq int64) (*types.VcTrgFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcTrgFile
	if err := transaction.WithContext(ctx).
		Where("trg_seq = ?", trgSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *vcTrgFileRepo) GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.VcTrgFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VcTrgFile
	if err := transaction.WithContext(ctx).
		Where("pro_seq = ?", proSeq).
		Order("trg_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
