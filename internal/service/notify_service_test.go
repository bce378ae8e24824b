package service

import (
	"Halation/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifyFixture struct {
	svc     NotifyService
	boxRepo *fakeNotifyBoxRepo
}

func newNotifyFixture() *notifyFixture {
	f := &notifyFixture{boxRepo: &fakeNotifyBoxRepo{}}
	f.svc = NewNotifyService(f.boxRepo)
	return f
}

func TestNotify_SkipsSelf(t *testing.T) {
	f := newNotifyFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 1, Type: mongo.NotifyTypePostLike}))
	assert.Empty(t, f.boxRepo.docs)

	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 2, Type: mongo.NotifyTypePostLike}))
	require.Len(t, f.boxRepo.docs, 1)
	assert.False(t, f.boxRepo.docs[0].CreatedAt.IsZero())
}

func TestGetNotifications_Pagination(t *testing.T) {
	f := newNotifyFixture()
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 2, Type: mongo.NotifyTypePostLike, Content: "x"}))
	}

	out, err := f.svc.GetNotifications(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Len(t, out.List, 10)
	assert.True(t, out.HasMore)
	assert.Equal(t, int64(11), out.UnreadCount)

	out, err = f.svc.GetNotifications(ctx, 1, 2, 10)
	require.NoError(t, err)
	assert.Len(t, out.List, 1)
	assert.False(t, out.HasMore)
}

func TestGetNotifications_ClampsPage(t *testing.T) {
	f := newNotifyFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 2, Type: mongo.NotifyTypeFollowed}))
	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 3, Type: mongo.NotifyTypeFollowed}))

	// 负 page_size 回落默认值，不能把负数透传到存储层
	out, err := f.svc.GetNotifications(ctx, 1, 1, -3)
	require.NoError(t, err)
	assert.Len(t, out.List, 2)
	assert.False(t, out.HasMore)

	out, err = f.svc.GetNotifications(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, out.List, 2)
}

func TestNotify_ReadAndDelete(t *testing.T) {
	f := newNotifyFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 2, Type: mongo.NotifyTypePostComment}))
	require.NoError(t, f.svc.Notify(ctx, &mongo.NotifyModel{ReceiverID: 1, SenderID: 3, Type: mongo.NotifyTypePostComment}))
	id := f.boxRepo.docs[0].ID.Hex()

	require.NoError(t, f.svc.MarkAsRead(ctx, 1, id))
	unread, err := f.svc.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// 别人的信箱里找不到这条
	assert.ErrorIs(t, f.svc.MarkAsRead(ctx, 9, id), ErrNotifyNotFound)
	assert.ErrorIs(t, f.svc.DeleteNotification(ctx, 9, id), ErrNotifyNotFound)

	require.NoError(t, f.svc.MarkAllAsRead(ctx, 1))
	unread, err = f.svc.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, unread)

	require.NoError(t, f.svc.DeleteAllNotifications(ctx, 1))
	out, err := f.svc.GetNotifications(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, out.List)
}
