package admin

import (
	"errors"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", nil)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadFileTooLarge):
			respondError(c, response.CodeBadRequest, "file exceeds the size limit", nil)
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			respondError(c, response.CodeBadRequest, "file type is not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "upload failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
