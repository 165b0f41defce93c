package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storage-api/internal/application/services"
)

var clientErrors = []struct {
	err    error
	status int
}{
	{services.ErrFileNotFound, http.StatusNotFound},
	{services.ErrFolderNotFound, http.StatusNotFound},
	{services.ErrPositionNotFound, http.StatusNotFound},
	{services.ErrPositionCodeExists, http.StatusConflict},
	{services.ErrDuplicateFolderName, http.StatusBadRequest},
	{services.ErrQuotaExceeded, http.StatusBadRequest},
	{services.ErrNoFile, http.StatusBadRequest},
	{services.ErrBlockedFileType, http.StatusBadRequest},
	{services.ErrInvalidInput, http.StatusBadRequest},
}

// respondError writes the client-facing form of a service error. Anything
// outside the known taxonomy is logged and reported as fallback.
func respondError(c *gin.Context, logger *zap.Logger, op, fallback string, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			c.JSON(ce.status, gin.H{"error": err.Error()})
			return
		}
	}

	if errors.Is(err, services.ErrBlobStore) {
		c.JSON(http.StatusBadGateway, gin.H{"error": services.ErrBlobStore.Error()})
		logger.Error(op+" error", zap.Error(err))
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	logger.Error(op+" error", zap.Error(err))
}
