package service

import (
	"Halation/internal/model"
	"Halation/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engagementFixture struct {
	svc         EngagementService
	postRepo    *fakePostRepo
	commentRepo *fakeCommentRepo
	blogRepo    *fakeBlogRepo
	engRepo     *fakeEngagementRepo
	notify      *fakeNotifyService
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()
	f := &engagementFixture{
		postRepo:    newFakePostRepo(),
		commentRepo: newFakeCommentRepo(),
		blogRepo:    newFakeBlogRepo(),
		engRepo:     newFakeEngagementRepo(),
		notify:      &fakeNotifyService{},
	}
	f.svc = NewEngagementService(f.engRepo, f.postRepo, f.commentRepo, f.blogRepo, f.notify)

	require.NoError(t, f.postRepo.CreatePost(context.Background(), &model.Post{UserID: 100, PhotoURL: "p.jpg"}))
	require.NoError(t, f.commentRepo.CreateComment(context.Background(), &model.Comment{PostID: u64ptr(1), UserID: 200, Content: "nice"}))
	require.NoError(t, f.blogRepo.CreateBlog(context.Background(), &model.Blog{UserID: 300, Title: "t", Content: "c"}))
	return f
}

func TestLikePost(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	target := model.LikeTarget{Kind: model.LikeTargetPost, ID: 1}

	require.NoError(t, f.svc.Like(ctx, 7, target))

	liked, err := f.engRepo.CheckLikeExists(ctx, 7, target)
	require.NoError(t, err)
	assert.True(t, liked)

	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, uint64(100), f.notify.sent[0].ReceiverID)
	assert.Equal(t, mongo.NotifyTypePostLike, f.notify.sent[0].Type)
}

// 重复点赞静默吸收，不产生第二条通知
func TestLikePost_Duplicate(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	target := model.LikeTarget{Kind: model.LikeTargetPost, ID: 1}

	require.NoError(t, f.svc.Like(ctx, 7, target))
	require.NoError(t, f.svc.Like(ctx, 7, target))

	count, err := f.engRepo.GetLikeCount(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, f.notify.sent, 1)
}

func TestLike_TargetMissing(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()

	err := f.svc.Like(ctx, 7, model.LikeTarget{Kind: model.LikeTargetPost, ID: 999})
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = f.svc.Like(ctx, 7, model.LikeTarget{Kind: model.LikeTargetComment, ID: 999})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	err = f.svc.Like(ctx, 7, model.LikeTarget{Kind: model.LikeTargetBlog, ID: 999})
	assert.ErrorIs(t, err, ErrBlogNotFound)

	err = f.svc.Like(ctx, 7, model.LikeTarget{Kind: 0, ID: 1})
	assert.ErrorIs(t, err, ErrLikeTargetInvalid)
}

func TestLikeCommentAndBlog_NotifyAuthor(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Like(ctx, 7, model.LikeTarget{Kind: model.LikeTargetComment, ID: 1}))
	require.NoError(t, f.svc.Like(ctx, 7, model.LikeTarget{Kind: model.LikeTargetBlog, ID: 1}))

	require.Len(t, f.notify.sent, 2)
	assert.Equal(t, uint64(200), f.notify.sent[0].ReceiverID)
	assert.Equal(t, mongo.NotifyTypeCommentLike, f.notify.sent[0].Type)
	assert.Equal(t, uint64(300), f.notify.sent[1].ReceiverID)
	assert.Equal(t, mongo.NotifyTypeBlogLike, f.notify.sent[1].Type)
}

func TestUnlike_Idempotent(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	target := model.LikeTarget{Kind: model.LikeTargetPost, ID: 1}

	require.NoError(t, f.svc.Like(ctx, 7, target))
	require.NoError(t, f.svc.Unlike(ctx, 7, target))
	require.NoError(t, f.svc.Unlike(ctx, 7, target))

	liked, err := f.engRepo.CheckLikeExists(ctx, 7, target)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestVotePost(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.VotePost(ctx, 7, 1))

	voted, err := f.engRepo.CheckVoteExists(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, voted)

	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, mongo.NotifyTypePostVote, f.notify.sent[0].Type)
}

// 每用户每帖一票，重复投票静默吸收
func TestVotePost_OnePerUser(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.VotePost(ctx, 7, 1))
	require.NoError(t, f.svc.VotePost(ctx, 7, 1))

	count, err := f.engRepo.GetVoteCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, f.notify.sent, 1)
}

func TestVotePost_Missing(t *testing.T) {
	f := newEngagementFixture(t)
	err := f.svc.VotePost(context.Background(), 7, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRevokeVote_Idempotent(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.VotePost(ctx, 7, 1))
	require.NoError(t, f.svc.RevokeVote(ctx, 7, 1))
	require.NoError(t, f.svc.RevokeVote(ctx, 7, 1))

	voted, err := f.engRepo.CheckVoteExists(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, voted)
}
