package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/minio"
	"Halation/internal/pkg/util"
	"context"
	"io"
	"path"
	"strings"
	"time"

	log "log/slog"

	"github.com/google/uuid"
)

type MediaService interface {
	UploadPhoto(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error)
	DeletePhoto(ctx context.Context, objectName string) error
}

type MediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &MediaServiceImpl{}
}

// UploadPhoto 上传照片原图并生成缩略图，仅接受图片类型
func (s *MediaServiceImpl) UploadPhoto(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error) {
	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	prefix := time.Now().Format("2006/01/02/") + uuid.NewString()
	objectName := prefix + path.Ext(filename)

	fileKey, err := minio.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, UnExpectedError
	}

	out := &dto.MediaUploadDTO{PhotoURL: fileKey}

	// 缩略图生成失败不阻断上传，客户端退回原图
	if _, err = reader.Seek(0, io.SeekStart); err == nil {
		thumb, width, height, thumbErr := util.MakeThumbnail(reader)
		if thumbErr != nil {
			log.WarnContext(ctx, "thumbnail generation failed", "object", fileKey, "err", thumbErr)
			return out, nil
		}

		thumbName := prefix + "_thumb.jpg"
		thumbKey, upErr := minio.UploadFile(ctx, thumbName, thumb, int64(thumb.Len()), "image/jpeg")
		if upErr != nil {
			log.WarnContext(ctx, "thumbnail upload failed", "object", thumbName, "err", upErr)
			return out, nil
		}

		out.ThumbnailURL = thumbKey
		out.Width = width
		out.Height = height
	}

	return out, nil
}

func (s *MediaServiceImpl) DeletePhoto(ctx context.Context, objectName string) error {
	return minio.DeleteFile(ctx, objectName)
}
