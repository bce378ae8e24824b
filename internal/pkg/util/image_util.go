package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const thumbnailMaxEdge = 512

// MakeThumbnail 解码原图并生成等比缩略图，输出 JPEG 字节流及其尺寸
func MakeThumbnail(r io.Reader) (*bytes.Buffer, int, int, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("图片解码失败: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailMaxEdge, thumbnailMaxEdge, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err = imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, 0, fmt.Errorf("缩略图编码失败: %w", err)
	}

	bounds := thumb.Bounds()
	return buf, bounds.Dx(), bounds.Dy(), nil
}
