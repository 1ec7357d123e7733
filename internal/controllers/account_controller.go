package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"healthqueue-be/internal/middleware"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/service"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type AccountController struct {
	accountService service.AccountService
}

func NewAccountController(accountService service.AccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// GetAccount handles GET /api/v1/account
func (ac *AccountController) GetAccount(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	response, err := ac.accountService.GetAccount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateAccount handles PATCH /api/v1/account as a multipart form: username
// and email fields, plus an optional "picture" image file.
func (ac *AccountController) UpdateAccount(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req models.UpdateAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid picture upload",
		})
		return
	}

	var response *models.AccountResponse
	if fileHeader != nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedImageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Profile picture must be a jpg or png file",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read picture upload",
			})
			return
		}
		defer file.Close()

		response, err = ac.accountService.UpdateAccount(userID, &req, file, ext)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		response, err = ac.accountService.UpdateAccount(userID, &req, nil, "")
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}
