package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propera/pdc_backend/internal/apperrors"
)

// respondWithError maps service errors onto HTTP statuses and writes the JSON
// error body. Internal failures get a generic message so repo details never
// leak to clients.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidDateRange):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrIllegalTransition),
		errors.Is(err, apperrors.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrDuplicateInstrument),
		errors.Is(err, apperrors.ErrDuplicateRequest):
		logger.Warn("Request conflicted with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidBankAccount):
		logger.Warn("Deposit account rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
