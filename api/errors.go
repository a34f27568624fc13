package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"casino/service"
)

// respondError maps service-layer errors onto HTTP status codes. Internal
// details of persistence and transfer failures stay in the logs.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var perr *service.PersistenceError
	var terr *service.ExternalTransferError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
	case errors.Is(err, service.ErrFreerollUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "freeroll already used"})
	case errors.As(err, &terr):
		log.WithError(err).Error("External transfer failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "transfer service unavailable"})
	case errors.As(err, &perr):
		log.WithError(err).Error("Persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		log.WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
