package project

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
	GetBySeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Project, error)
	GetByMemberSeq(ctx context.Context, tx *gorm.DB, memberSeq int64) ([]*types.Project, error)
	Save(ctx context.Context, tx *gorm.DB, p *types.Project) (*types.Project, error)
	DeactivateBySeqs(ctx context.Context, tx *gorm.DB, proSeqs []int64) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(projects) == 0 {
		return []*types.Project{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) GetBySeq(ctx context.Context, tx *gorm.DB, proSeq int64) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Project
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

func (r *projectRepo) GetByMemberSeq(ctx context.Context, tx *gorm.DB, memberSeq int64) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	if err := transaction.WithContext(ctx).
		Where("member_seq = ? AND activate = ?", memberSeq, types.ActivateYes).
		Order("pro_seq DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) Save(ctx context.Context, tx *gorm.DB, p *types.Project) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) DeactivateBySeqs(ctx context.Context, tx *gorm.DB, proSeqs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(proSeqs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("pro_seq IN ?", proSeqs).
		Update("activate", types.ActivateNo).Error; err != nil {
		return err
	}
	return nil
}
