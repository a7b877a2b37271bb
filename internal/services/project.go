package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/data/repos"
	types "github.com/voclab/voclab-backend/internal/domain"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

// ProjectService owns the project rows the pipeline and sentence services
// validate against.
type ProjectService interface {
	Create(ctx context.Context, tx *gorm.DB, memberSeq int64) (*types.Project, error)
	List(ctx context.Context, tx *gorm.DB, memberSeq int64) ([]*types.Project, error)
	Rename(ctx context.Context, tx *gorm.DB, projectSeq int64, name string) (*types.Project, error)
	Delete(ctx context.Context, tx *gorm.DB, projectSeqs []int64) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, projectRepo repos.ProjectRepo) ProjectService {
	serviceLog := baseLog.With("service", "ProjectService")
	return &projectService{db: db, log: serviceLog, projectRepo: projectRepo}
}

func (ps *projectService) Create(ctx context.Context, tx *gorm.DB, memberSeq int64) (*types.Project, error) {
	p := &types.Project{
		MemberSeq: memberSeq,
		ProName:   "",
		Activate:  types.ActivateYes,
	}
	created, err := ps.projectRepo.Create(ctx, tx, []*types.Project{p})
	if err != nil {
		ps.log.Error("failed to create project", "member_seq", memberSeq, "error", err)
		return nil, err
	}
	return created[0], nil
}

func (ps *projectService) List(ctx context.Context, tx *gorm.DB, memberSeq int64) ([]*types.Project, error) {
	return ps.projectRepo.GetByMemberSeq(ctx, tx, memberSeq)
}

func (ps *projectService) Rename(ctx context.Context, tx *gorm.DB, projectSeq int64, name string) (*types.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.ErrInvalidInput
	}
	p, err := ps.projectRepo.GetBySeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, pkgerrors.ErrNotFound
	}
	p.ProName = name
	return ps.projectRepo.Save(ctx, tx, p)
}

func (ps *projectService) Delete(ctx context.Context, tx *gorm.DB, projectSeqs []int64) error {
	if len(projectSeqs) == 0 {
		return pkgerrors.ErrInvalidInput
	}
	return ps.projectRepo.DeactivateBySeqs(ctx, tx, projectSeqs)
}
