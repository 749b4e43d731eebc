package admin

import (
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeInvalid, Code: response.CodeBadRequest, Key: "error.upload_type_invalid"},
	{Target: service.ErrUploadImageInvalid, Code: response.CodeBadRequest, Key: "error.upload_image_invalid"},
}

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	scene := c.DefaultPostForm("scene", service.UploadSceneCommon)

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
