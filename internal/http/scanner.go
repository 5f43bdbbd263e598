package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendance-server/internal/scanner"
)

func (h *Handler) scannerStatus(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scanner not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.scanner.State().String()})
}

// scannerCapture runs one full capture cycle: device check, claim, sample,
// release. The sample is returned as an opaque blob for storage in
// biometric_data; failures are surfaced for the UI to offer a retry.
func (h *Handler) scannerCapture(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scanner not configured"})
		return
	}

	ctx := c.Request.Context()
	if err := h.scanner.CheckDevices(ctx); err != nil {
		c.JSON(scannerStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	if err := h.scanner.StartCapture(ctx); err != nil {
		c.JSON(scannerStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	defer func() {
		if err := h.scanner.StopCapture(); err != nil && h.logger != nil {
			h.logger.Warnf("stop capture: %v", err)
		}
	}()

	sample, err := h.scanner.CaptureSample(ctx)
	if err != nil {
		c.JSON(scannerStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sample":  sample,
	})
}

func scannerStatusCode(err error) int {
	switch {
	case errors.Is(err, scanner.ErrDeviceNotFound):
		return http.StatusNotFound
	case errors.Is(err, scanner.ErrNotChecked),
		errors.Is(err, scanner.ErrAlreadyCapturing),
		errors.Is(err, scanner.ErrNotCapturing):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
