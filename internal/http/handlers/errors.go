package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voclab/voclab-backend/internal/http/response"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
)

// respondServiceError maps the sentinel taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, pkgerrors.ErrInvalidInput),
		errors.Is(err, pkgerrors.ErrEmptyBatch):
		response.RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, pkgerrors.ErrUnsupportedFormat),
		errors.Is(err, pkgerrors.ErrUnreadableAudio):
		response.RespondError(c, http.StatusUnprocessableEntity, code, err)
	default:
		response.RespondError(c, http.StatusInternalServerError, code, err)
	}
}
