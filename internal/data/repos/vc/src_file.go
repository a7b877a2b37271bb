package vc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type VcSrcFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.VcSrcFile) ([]*types.VcSrcFile, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcSrcFile, error)
	GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.VcSrcFile, error)
	CountByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, file *types.VcSrcFile) (*types.VcSrcFile, error)
}

type vcSrcFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVcSrcFileRepo(db *gorm.DB, baseLog *logger.Logger) VcSrcFileRepo {
	repoLog := baseLog.With("repo", "VcSrcFileRepo")
	return &vcSrcFileRepo{db: db, log: repoLog}
}

func (r *vcSrcFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.VcSrcFile) ([]*types.VcSrcFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.VcSrcFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *vcSrcFileRepo) GetBySeq(ctx context.Context, tx *gorm.DB, srcSeq int64) (*types.VcSrcFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.VcSrcFile
	if err := transaction.WithContext(ctx).
		Where("src_seq = ?", srcSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetByProSeq returns every source row of the pipeline, soft-deleted ones
// included, in insertion order.
func (r *vcSrcFileRepo) GetByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) ([]*types.VcSrcFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VcSrcFile
	if err := transaction.WithContext(ctx).
		Where("pro_seq = ?", proSeq).
		Order("src_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vcSrcFileRepo) CountByProSeq(ctx context.Context, tx *gorm.DB, proSeq int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.VcSrcFile{}).
		Where("pro_seq = ?", proSeq).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *vcSrcFileRepo) Save(ctx context.Context, tx *gorm.DB, file *types.VcSrcFile) (*types.VcSrcFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}
