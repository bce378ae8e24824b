package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 嗅探前 512 字节判定 MIME，不信任客户端声明，
// 完成后将读取位置复位
func GetSafeContentType(r io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
