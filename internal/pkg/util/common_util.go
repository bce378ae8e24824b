package util

import (
	"Halation/internal/pkg/consts"
	"strconv"
	"time"
)

// ClampPage 统一修正分页参数：page 最小为 1，pageSize 越界时回退默认值
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > consts.MaxPageSize {
		pageSize = consts.DefaultPageSize
	}
	return page, pageSize
}

// MonthWindow 返回 t 所在自然月的 [起点, 下月起点)
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// StrSliceToUInt64Slice 将字符串切片解析为 uint64 切片
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	result := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
