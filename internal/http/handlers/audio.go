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

type AudioHandler struct {
	db            *gorm.DB
	log           *logger.Logger
	ingestService services.AudioIngestService
}

func NewAudioHandler(db *gorm.DB, log *logger.Logger, ingestService services.AudioIngestService) *AudioHandler {
	return &AudioHandler{
		db:            db,
		log:           log.With("handler", "AudioHandler"),
		ingestService: ingestService,
	}
}

func (h *AudioHandler) Get(c *gin.Context) {
	seq, err := strconv.ParseInt(c.Param("audioFileSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audio_file_seq", err)
		return
	}

	file, err := h.ingestService.GetAudioFile(c.Request.Context(), nil, seq)
	if err != nil {
		respondServiceError(c, "load_audio_file_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"audio_file": file})
}

// Search resolves an asset by exact URL or by original name.
func (h *AudioHandler) Search(c *gin.Context) {
	if url := c.Query("url"); url != "" {
		file, err := h.ingestService.GetAudioFileByURL(c.Request.Context(), nil, url)
		if err != nil {
			respondServiceError(c, "load_audio_file_failed", err)
			return
		}
		response.RespondOK(c, gin.H{"audio_files": []any{file}})
		return
	}
	if name := c.Query("name"); name != "" {
		files, err := h.ingestService.GetAudioFileByName(c.Request.Context(), nil, name)
		if err != nil {
			respondServiceError(c, "load_audio_files_failed", err)
			return
		}
		response.RespondOK(c, gin.H{"audio_files": files})
		return
	}
	response.RespondError(c, http.StatusBadRequest, "missing_query", nil)
}

func (h *AudioHandler) ListByExtension(c *gin.Context) {
	ext := c.Param("extension")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	files, total, err := h.ingestService.ListByExtensionPaged(c.Request.Context(), nil, ext, page, size)
	if err != nil {
		respondServiceError(c, "list_audio_files_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"audio_files": files, "total": total, "page": page, "size": size})
}

type deleteAudioFilesRequest struct {
	AudioFileSeqs []int64 `json:"audio_file_seqs" binding:"required"`
}

func (h *AudioHandler) Delete(c *gin.Context) {
	var req deleteAudioFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return h.ingestService.DeleteAudioFiles(c.Request.Context(), tx, req.AudioFileSeqs)
	}); err != nil {
		h.log.Error("Delete audio files failed", "error", err)
		respondServiceError(c, "delete_audio_files_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": req.AudioFileSeqs})
}
