package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthqueue-be/internal/middleware"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/service"
)

type QueueController struct {
	queueService service.QueueService
}

func NewQueueController(queueService service.QueueService) *QueueController {
	return &QueueController{
		queueService: queueService,
	}
}

func queueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
		return 0, false
	}
	return id, true
}

// CreateQueue handles POST /api/v1/queues
func (qc *QueueController) CreateQueue(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req models.QueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := qc.queueService.CreateQueue(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetQueue handles GET /api/v1/queues/:id - public single-entry read
func (qc *QueueController) GetQueue(c *gin.Context) {
	id, ok := queueID(c)
	if !ok {
		return
	}

	response, err := qc.queueService.GetQueue(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateQueue handles PATCH /api/v1/queues/:id - owner only
func (qc *QueueController) UpdateQueue(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	id, ok := queueID(c)
	if !ok {
		return
	}

	var req models.QueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := qc.queueService.UpdateQueue(id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteQueue handles DELETE /api/v1/queues/:id - owner only
func (qc *QueueController) DeleteQueue(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	id, ok := queueID(c)
	if !ok {
		return
	}

	if err := qc.queueService.DeleteQueue(id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your queue has been deleted!",
	})
}

// ListQueues handles GET /api/v1/queues - public paginated listing across
// all owners, most recent first
func (qc *QueueController) ListQueues(c *gin.Context) {
	page, perPage := parsePagination(c)

	response, err := qc.queueService.ListQueues(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListUserQueues handles GET /api/v1/users/:username/queues - public
// paginated listing of one user's entries
func (qc *QueueController) ListUserQueues(c *gin.Context) {
	page, perPage := parsePagination(c)

	response, err := qc.queueService.ListUserQueues(c.Param("username"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
