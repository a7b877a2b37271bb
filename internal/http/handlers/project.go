package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/http/response"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"github.com/voclab/voclab-backend/internal/services"
)

type ProjectHandler struct {
	db             *gorm.DB
	log            *logger.Logger
	projectService services.ProjectService
}

func NewProjectHandler(db *gorm.DB, log *logger.Logger, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		db:             db,
		log:            log.With("handler", "ProjectHandler"),
		projectService: projectService,
	}
}

type createProjectRequest struct {
	MemberSeq int64 `json:"member_seq" binding:"required"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), nil, req.MemberSeq)
	if err != nil {
		h.log.Error("Create project failed", "error", err)
		respondServiceError(c, "create_project_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	memberSeq, err := strconv.ParseInt(c.Param("memberSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_member_seq", err)
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), nil, memberSeq)
	if err != nil {
		h.log.Error("List projects failed", "error", err, "member_seq", memberSeq)
		respondServiceError(c, "list_projects_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}

type renameProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ProjectHandler) Rename(c *gin.Context) {
	projectSeq, err := strconv.ParseInt(c.Param("proSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	var req renameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	project, err := h.projectService.Rename(c.Request.Context(), nil, projectSeq, req.Name)
	if err != nil {
		h.log.Error("Rename project failed", "error", err, "pro_seq", projectSeq)
		respondServiceError(c, "rename_project_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

type deleteProjectsRequest struct {
	ProjectSeqs []int64 `json:"project_seqs" binding:"required"`
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	var req deleteProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return h.projectService.Delete(c.Request.Context(), tx, req.ProjectSeqs)
	}); err != nil {
		h.log.Error("Delete projects failed", "error", err)
		respondServiceError(c, "delete_projects_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": req.ProjectSeqs})
}
