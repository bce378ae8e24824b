package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPage(t *testing.T) {
	page, pageSize := ClampPage(0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	page, pageSize = ClampPage(-3, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	page, pageSize = ClampPage(2, 10000)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, pageSize)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2025, time.March, 15, 18, 30, 0, 0, time.UTC)
	start, end := MonthWindow(now)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), end)
}

// 12月窗口应跨年滚动到次年1月
func TestMonthWindow_YearRollover(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	start, end := MonthWindow(now)

	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	ids, err := StrSliceToUInt64Slice([]string{"1", "42", "18446744073709551615"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42, 18446744073709551615}, ids)

	_, err = StrSliceToUInt64Slice([]string{"1", "abc"})
	assert.Error(t, err)

	ids, err = StrSliceToUInt64Slice(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
