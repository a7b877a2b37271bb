package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/http/response"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"github.com/voclab/voclab-backend/internal/services"
)

type TtsHandler struct {
	db         *gorm.DB
	log        *logger.Logger
	ttsService services.TtsSentenceService
}

func NewTtsHandler(db *gorm.DB, log *logger.Logger, ttsService services.TtsSentenceService) *TtsHandler {
	return &TtsHandler{
		db:         db,
		log:        log.With("handler", "TtsHandler"),
		ttsService: ttsService,
	}
}

func (h *TtsHandler) AddSentence(c *gin.Context) {
	projectSeq, err := strconv.ParseInt(c.Param("projectSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	var req services.SentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var view *services.SentenceView
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		v, err := h.ttsService.AddSentence(c.Request.Context(), tx, projectSeq, &req)
		if err != nil {
			return err
		}
		view = v
		return nil
	}); err != nil {
		h.log.Error("AddSentence failed", "error", err, "project_seq", projectSeq)
		respondServiceError(c, "add_sentence_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (h *TtsHandler) UpdateSentence(c *gin.Context) {
	projectSeq, err := strconv.ParseInt(c.Param("projectSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	tsSeq, err := strconv.ParseInt(c.Param("tsSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_sentence_seq", err)
		return
	}
	var req services.SentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var view *services.SentenceView
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		v, err := h.ttsService.UpdateSentence(c.Request.Context(), tx, projectSeq, tsSeq, &req)
		if err != nil {
			return err
		}
		view = v
		return nil
	}); err != nil {
		h.log.Error("UpdateSentence failed", "error", err, "ts_seq", tsSeq)
		respondServiceError(c, "update_sentence_failed", err)
		return
	}
	response.RespondOK(c, view)
}

// Batch wire shapes. Operation tags are resolved to the sealed op set right
// here; anything but CREATE or UPDATE never reaches the service.
type sentenceBatchItem struct {
	Operation string                    `json:"operation"`
	TsSeq     *int64                    `json:"ts_seq,omitempty"`
	Sentence  *services.SentenceRequest `json:"sentence"`
}

type sentenceBatchRequest struct {
	Items []sentenceBatchItem `json:"items" binding:"required"`
}

func decodeBatchOps(items []sentenceBatchItem) ([]services.SentenceBatchOp, error) {
	ops := make([]services.SentenceBatchOp, 0, len(items))
	for i, item := range items {
		switch item.Operation {
		case "CREATE":
			ops = append(ops, services.CreateSentenceOp{Sentence: item.Sentence})
		case "UPDATE":
			if item.TsSeq == nil {
				return nil, fmt.Errorf("%w: batch item %d missing ts_seq", pkgerrors.ErrInvalidInput, i)
			}
			ops = append(ops, services.UpdateSentenceOp{TsSeq: *item.TsSeq, Sentence: item.Sentence})
		default:
			return nil, fmt.Errorf("%w: batch item %d has invalid operation %q", pkgerrors.ErrInvalidInput, i, item.Operation)
		}
	}
	return ops, nil
}

func (h *TtsHandler) BatchSave(c *gin.Context) {
	projectSeq, err := strconv.ParseInt(c.Param("projectSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	var req sentenceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ops, err := decodeBatchOps(req.Items)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_batch", err)
		return
	}

	var views []*services.SentenceView
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		vs, err := h.ttsService.BatchSave(c.Request.Context(), tx, projectSeq, ops)
		if err != nil {
			return err
		}
		views = vs
		return nil
	}); err != nil {
		h.log.Error("BatchSave failed", "error", err, "project_seq", projectSeq)
		respondServiceError(c, "batch_save_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"sentences": views})
}

func (h *TtsHandler) GetSentence(c *gin.Context) {
	tsSeq, err := strconv.ParseInt(c.Param("tsSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_sentence_seq", err)
		return
	}

	view, err := h.ttsService.GetSentence(c.Request.Context(), nil, tsSeq)
	if err != nil {
		respondServiceError(c, "load_sentence_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (h *TtsHandler) GetSentenceList(c *gin.Context) {
	projectSeq, err := strconv.ParseInt(c.Param("projectSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}

	views, err := h.ttsService.GetSentenceList(c.Request.Context(), nil, projectSeq)
	if err != nil {
		respondServiceError(c, "list_sentences_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"sentences": views})
}

func (h *TtsHandler) DeleteSentence(c *gin.Context) {
	tsSeq, err := strconv.ParseInt(c.Param("tsSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_sentence_seq", err)
		return
	}

	deleted, err := h.ttsService.DeleteSentence(c.Request.Context(), nil, tsSeq)
	if err != nil {
		h.log.Error("DeleteSentence failed", "error", err, "ts_seq", tsSeq)
		respondServiceError(c, "delete_sentence_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": deleted})
}
