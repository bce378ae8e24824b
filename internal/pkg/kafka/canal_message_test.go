package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanalMessage(t *testing.T) {
	payload := `{
		"database": "halation",
		"table": "likes",
		"type": "INSERT",
		"ts": 1735689600000,
		"data": [{"user_id": "7", "target_kind": "1", "target_id": "42"}]
	}`
	msg := &sarama.ConsumerMessage{Value: []byte(payload)}

	canalMsg, err := ToCanalMessage(msg, "likes")
	require.NoError(t, err)
	assert.Equal(t, INSERT, canalMsg.Type)
	require.Len(t, canalMsg.Data, 1)
	assert.Equal(t, uint64(42), StrToUint64(canalMsg.Data[0]["target_id"]))
}

func TestToCanalMessage_Rejections(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(`{"table": "likes", "data": [{"id": "1"}]}`)}
	_, err := ToCanalMessage(msg, "votes")
	assert.Error(t, err, "表名不匹配的消息应拒绝")

	msg = &sarama.ConsumerMessage{Value: []byte(`{"table": "likes", "data": []}`)}
	_, err = ToCanalMessage(msg, "likes")
	assert.Error(t, err)

	msg = &sarama.ConsumerMessage{Value: []byte(`not json`)}
	_, err = ToCanalMessage(msg, "likes")
	assert.Error(t, err)
}

func TestStrConversions(t *testing.T) {
	assert.Equal(t, "", StrToString(nil))
	assert.Equal(t, "abc", StrToString("abc"))

	assert.Equal(t, uint64(42), StrToUint64("42"))
	assert.Equal(t, uint64(0), StrToUint64("not a number"))
	assert.Equal(t, uint64(0), StrToUint64(nil))

	assert.Equal(t, -3, StrToInt("-3"))

	parsed := StrToDateTime("2026-01-02 15:04:05")
	assert.Equal(t, time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local), parsed)
	assert.True(t, StrToDateTime("garbage").IsZero())
}
