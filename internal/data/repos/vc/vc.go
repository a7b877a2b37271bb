package vc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VcRepo interface {
	GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Vc, error)
	GetOrCreateByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Vc, error)
}

type vcRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVcRepo(db *gorm.DB, baseLog *logger.Logger) VcRepo {
	repoLog := baseLog.With("repo", "VcRepo")
	return &vcRepo{db: db, log: repoLog}
}

func (r *vcRepo) GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Vc, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Vc
	if err := transaction.WithContext(ctx).
		Where("pro_seq = ?", proSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetOrCreateByProSeq is the only implicit-creation path in the system: the
// pipeline row is upserted inside the caller's transaction to avoid the
// duplicate-pipeline race of a separate find+create.
func (r *vcRepo) GetOrCreateByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Vc, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := types.Vc{ProSeq: proSeq}
	if err := transaction.WithContext(ctx).
		Where("pro_seq = ?", proSeq).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
