package tts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type StyleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, styles []*types.Style) ([]*types.Style, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, styleSeq int64) (*types.Style, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Style, error)
}

type styleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStyleRepo(db *gorm.DB, baseLog *logger.Logger) StyleRepo {
	repoLog := baseLog.With("repo", "StyleRepo")
	return &styleRepo{db: db, log: repoLog}
}

func (r *styleRepo) Create(ctx context.Context, tx *gorm.DB, styles []*types.Style) ([]*types.Style, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(styles) == 0 {
		return []*types.Style{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&styles).Error; err != nil {
		return nil, err
	}
	return styles, nil
}

func (r *styleRepo) GetBySeq(ctx context.Context, tx *gorm.DB, styleSeq int64) (*types.Style, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Style
	if err := transaction.WithContext(ctx).
		Where("style_seq = ?", styleSeq).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *styleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Style, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Style
	if err := transaction.WithContext(ctx).
		Order("style_seq").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
