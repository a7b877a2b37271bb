package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/http/response"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"github.com/voclab/voclab-backend/internal/services"
)

type VcHandler struct {
	db            *gorm.DB
	log           *logger.Logger
	vcService     services.VcService
	ingestService services.AudioIngestService
}

func NewVcHandler(db *gorm.DB, log *logger.Logger, vcService services.VcService, ingestService services.AudioIngestService) *VcHandler {
	return &VcHandler{
		db:            db,
		log:           log.With("handler", "VcHandler"),
		vcService:     vcService,
		ingestService: ingestService,
	}
}

func readUploads(files []*multipart.FileHeader) ([]services.UploadCandidate, error) {
	candidates := make([]services.UploadCandidate, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, services.UploadCandidate{FileName: fh.Filename, Data: data})
	}
	return candidates, nil
}

func (h *VcHandler) GetView(c *gin.Context) {
	proSeq, err := strconv.ParseInt(c.Param("proSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}

	view, err := h.vcService.GetVcView(c.Request.Context(), nil, proSeq)
	if err != nil {
		h.log.Error("GetView failed", "error", err, "pro_seq", proSeq)
		respondServiceError(c, "load_vc_view_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"rows": view})
}

// UploadSrc ingests the multipart batch and registers every upload as a new
// ordered source row. Uploads happen before the transaction opens; the
// database writes are atomic.
func (h *VcHandler) UploadSrc(c *gin.Context) {
	proSeq, err := strconv.ParseInt(c.Param("proSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart", err)
		return
	}
	candidates, err := readUploads(form.File["files"])
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_upload", err)
		return
	}

	assets, err := h.ingestService.IngestBatch(c.Request.Context(), candidates)
	if err != nil {
		h.log.Warn("UploadSrc ingest rejected", "error", err, "pro_seq", proSeq)
		respondServiceError(c, "ingest_failed", err)
		return
	}

	var handles []*services.UrlHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.ingestService.PersistAssets(c.Request.Context(), tx, assets); err != nil {
			return err
		}
		hs, err := h.vcService.SrcSaveBatch(c.Request.Context(), tx, services.BuildSrcRequests(assets), proSeq)
		if err != nil {
			return err
		}
		handles = hs
		return nil
	}); err != nil {
		h.log.Error("UploadSrc failed", "error", err, "pro_seq", proSeq)
		respondServiceError(c, "save_src_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"src_files": handles})
}

// UploadTrg ingests exactly one target file for the pipeline.
func (h *VcHandler) UploadTrg(c *gin.Context) {
	proSeq, err := strconv.ParseInt(c.Param("proSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_seq", err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	candidates, err := readUploads([]*multipart.FileHeader{fh})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_upload", err)
		return
	}

	assets, err := h.ingestService.IngestBatch(c.Request.Context(), candidates)
	if err != nil {
		h.log.Warn("UploadTrg ingest rejected", "error", err, "pro_seq", proSeq)
		respondServiceError(c, "ingest_failed", err)
		return
	}

	var handle *services.UrlHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.ingestService.PersistAssets(c.Request.Context(), tx, assets); err != nil {
			return err
		}
		req := services.BuildSrcRequests(assets)[0]
		hd, err := h.vcService.TrgSave(c.Request.Context(), tx, req, proSeq)
		if err != nil {
			return err
		}
		handle = hd
		return nil
	}); err != nil {
		h.log.Error("UploadTrg failed", "error", err, "pro_seq", proSeq)
		respondServiceError(c, "save_trg_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"trg_file": handle})
}

type saveResultsRequest struct {
	Results []*services.AudioFileRequest `json:"results" binding:"required"`
}

func (h *VcHandler) SaveResults(c *gin.Context) {
	var req saveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var handles []*services.UrlHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		hs, err := h.vcService.ResultSaveBatch(c.Request.Context(), tx, req.Results)
		if err != nil {
			return err
		}
		handles = hs
		return nil
	}); err != nil {
		h.log.Error("SaveResults failed", "error", err)
		respondServiceError(c, "save_results_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"result_files": handles})
}

type saveTextsRequest struct {
	Texts []*services.TextRequest `json:"texts" binding:"required"`
}

func (h *VcHandler) SaveTexts(c *gin.Context) {
	var req saveTextsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var handles []*services.TextHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		hs, err := h.vcService.TextSaveBatch(c.Request.Context(), tx, req.Texts)
		if err != nil {
			return err
		}
		handles = hs
		return nil
	}); err != nil {
		h.log.Error("SaveTexts failed", "error", err)
		respondServiceError(c, "save_texts_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"texts": handles})
}

type updateTextRequest struct {
	Text string `json:"text"`
}

func (h *VcHandler) UpdateText(c *gin.Context) {
	vtSeq, err := strconv.ParseInt(c.Param("vtSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_text_seq", err)
		return
	}
	var req updateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	handle, err := h.vcService.UpdateText(c.Request.Context(), nil, vtSeq, req.Text)
	if err != nil {
		h.log.Error("UpdateText failed", "error", err, "vt_seq", vtSeq)
		respondServiceError(c, "update_text_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"text": handle})
}

type rowOrderItem struct {
	Seq      int64 `json:"seq"`
	RowOrder int   `json:"row_order"`
}

type updateRowOrderRequest struct {
	Items []rowOrderItem `json:"items" binding:"required"`
}

func (h *VcHandler) UpdateRowOrder(c *gin.Context) {
	var req updateRowOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(req.Items) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", pkgerrors.ErrEmptyBatch)
		return
	}

	orders := make(map[int64]int, len(req.Items))
	seqs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		orders[item.Seq] = item.RowOrder
		seqs = append(seqs, item.Seq)
	}

	var handles []*services.RowHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		hs, err := h.vcService.UpdateRowOrderBatch(c.Request.Context(), tx, orders, seqs)
		if err != nil {
			return err
		}
		handles = hs
		return nil
	}); err != nil {
		h.log.Error("UpdateRowOrder failed", "error", err)
		respondServiceError(c, "update_row_order_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"rows": handles})
}

type deleteSrcRequest struct {
	SrcSeqs []int64 `json:"src_seqs" binding:"required"`
}

func (h *VcHandler) DeleteSrc(c *gin.Context) {
	var req deleteSrcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var handles []*services.ActivateHandle
	if err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		hs, err := h.vcService.DeleteSrcFiles(c.Request.Context(), tx, req.SrcSeqs)
		if err != nil {
			return err
		}
		handles = hs
		return nil
	}); err != nil {
		h.log.Error("DeleteSrc failed", "error", err)
		respondServiceError(c, "delete_src_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": handles})
}

func (h *VcHandler) GetSrcFile(c *gin.Context) {
	srcSeq, err := strconv.ParseInt(c.Param("srcSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_src_seq", err)
		return
	}

	handle, err := h.vcService.GetSrcFile(c.Request.Context(), nil, srcSeq)
	if err != nil {
		respondServiceError(c, "load_src_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"src_file": handle})
}

func (h *VcHandler) GetResultFile(c *gin.Context) {
	resSeq, err := strconv.ParseInt(c.Param("resSeq"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_res_seq", err)
		return
	}

	handle, err := h.vcService.GetResultFile(c.Request.Context(), nil, resSeq)
	if err != nil {
		respondServiceError(c, "load_result_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"result_file": handle})
}

type srcURLsRequest struct {
	SrcSeqs []int64 `json:"src_seqs" binding:"required"`
}

func (h *VcHandler) GetSrcURLs(c *gin.Context) {
	var req srcURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	handles, err := h.vcService.SrcURLs(c.Request.Context(), nil, req.SrcSeqs)
	if err != nil {
		respondServiceError(c, "load_src_urls_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"src_files": handles})
}
