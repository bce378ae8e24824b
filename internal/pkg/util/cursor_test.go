package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	sortValues := []interface{}{float64(1735689600000), "173"}

	cursor := EncodeCursor(sortValues)
	require.NotEmpty(t, cursor)

	decoded, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, sortValues, decoded)
}

func TestCursorEmpty(t *testing.T) {
	assert.Empty(t, EncodeCursor(nil))

	decoded, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeCursorInvalid(t *testing.T) {
	_, err := DecodeCursor("not-base64!!!")
	assert.Error(t, err)

	// 合法 Base64 但不是 JSON 数组
	_, err = DecodeCursor("aGVsbG8=")
	assert.Error(t, err)
}
