package minio

import (
	"Halation/internal/api/config"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetAccessURL 获取文件访问地址。公开桶直接拼接外网地址，
// 否则签发 24 小时有效的预签名链接
func GetAccessURL(ctx context.Context, objectName string) (string, error) {
	cfg := config.Cfg.MinIO

	if cfg.UsePublicLink {
		protocol := "http"
		if cfg.InternalUseSSL {
			protocol = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.ExternalEndpoint, MainBucket, objectName), nil
	}

	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	u, err := Client.PresignedGetObject(ctx, MainBucket, objectName, 24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign url: %w", err)
	}
	return u.String(), nil
}
