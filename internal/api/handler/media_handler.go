package handler

import (
	"Halation/internal/pkg/response"
	"Halation/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload 上传照片，返回原图与缩略图的对象名
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := h.mediaService.UploadPhoto(c.Request.Context(), file.Filename, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
