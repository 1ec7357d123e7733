package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"healthqueue-be/internal/service"
)

type QRCodeController struct {
	queueService service.QueueService
	baseURL      string
}

func NewQRCodeController(queueService service.QueueService, baseURL string) *QRCodeController {
	return &QRCodeController{
		queueService: queueService,
		baseURL:      baseURL,
	}
}

// GenerateQRCode handles GET /api/v1/queues/:id/qrcode - generates a QR code
// pointing at the queue entry's public page, for printing at the reception desk
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	id, ok := queueID(c)
	if !ok {
		return
	}

	// Only issue codes for entries that exist
	if _, err := qc.queueService.GetQueue(id); err != nil {
		respondError(c, err)
		return
	}

	entryURL := fmt.Sprintf("%s/queues/%d", qc.baseURL, id)

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(entryURL, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
