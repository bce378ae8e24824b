package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	svc         CommentService
	commentRepo *fakeCommentRepo
	postRepo    *fakePostRepo
	blogRepo    *fakeBlogRepo
	userRepo    *fakeUserRepo
	notify      *fakeNotifyService
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	f := &commentFixture{
		commentRepo: newFakeCommentRepo(),
		postRepo:    newFakePostRepo(),
		blogRepo:    newFakeBlogRepo(),
		userRepo:    newFakeUserRepo(),
		notify:      &fakeNotifyService{},
	}
	f.commentRepo.posts = f.postRepo
	f.commentRepo.blogs = f.blogRepo
	f.svc = NewCommentService(f.commentRepo, f.postRepo, f.blogRepo, newFakeEngagementRepo(), f.userRepo, f.notify)

	ctx := context.Background()
	author := "author"
	require.NoError(t, f.userRepo.CreateUser(ctx, &model.User{Username: &author, Nickname: "作者"}))
	commenter := "commenter"
	require.NoError(t, f.userRepo.CreateUser(ctx, &model.User{Username: &commenter, Nickname: "评论者"}))
	require.NoError(t, f.postRepo.CreatePost(ctx, &model.Post{UserID: 1, PhotoURL: "p.jpg"}))
	require.NoError(t, f.blogRepo.CreateBlog(ctx, &model.Blog{UserID: 1, Title: "暗房手记", Content: "..."}))
	return f
}

func TestCreateComment(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	out, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, Content: "好照片"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.PostID)
	assert.Equal(t, "好照片", out.Content)
	assert.Equal(t, "评论者", out.Nickname)

	// 帖子作者收到评论通知
	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, uint64(1), f.notify.sent[0].ReceiverID)
	assert.Equal(t, "好照片", f.notify.sent[0].Content)
}

func TestCreateComment_PostMissing(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.CreateComment(context.Background(), 2, &dto.CommentCreateDTO{PostID: 99, Content: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateComment_ReplyNotifiesParentAuthor(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	parent, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, Content: "顶楼"})
	require.NoError(t, err)

	_, err = f.svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: 1, ParentID: &parent.ID, Content: "回复"})
	require.NoError(t, err)

	// 第二条通知发给楼主而不是帖子作者
	require.Len(t, f.notify.sent, 2)
	assert.Equal(t, uint64(2), f.notify.sent[1].ReceiverID)
}

func TestCreateComment_ParentValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	missing := uint64(404)
	_, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, ParentID: &missing, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentParentMissing)

	// 父评论属于另一个帖子
	require.NoError(t, f.postRepo.CreatePost(ctx, &model.Post{UserID: 1, PhotoURL: "q.jpg"}))
	other, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 2, Content: "别处"})
	require.NoError(t, err)

	_, err = f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, ParentID: &other.ID, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentParentMismatch)
}

func TestGetPostComments_Pagination(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		_, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, Content: "c"})
		require.NoError(t, err)
	}

	out, err := f.svc.GetPostComments(ctx, 1, 0, 1, 10)
	require.NoError(t, err)
	assert.Len(t, out.List, 10)
	assert.True(t, out.HasMore)

	out, err = f.svc.GetPostComments(ctx, 1, 0, 2, 10)
	require.NoError(t, err)
	assert.Len(t, out.List, 1)
	assert.False(t, out.HasMore)
}

func TestDeleteComment_Permissions(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	out, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, Content: "x"})
	require.NoError(t, err)

	// 路人无权删除
	err = f.svc.DeleteComment(ctx, out.ID, 77)
	assert.ErrorIs(t, err, UnauthorizedError)

	// 帖子作者可删他人评论
	require.NoError(t, f.svc.DeleteComment(ctx, out.ID, 1))

	err = f.svc.DeleteComment(ctx, out.ID, 1)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCreateComment_OnBlog(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	out, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{BlogID: 1, Content: "写得好"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.BlogID)
	assert.Zero(t, out.PostID)

	// 随笔作者收到评论通知
	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, uint64(1), f.notify.sent[0].ReceiverID)
	assert.Equal(t, mongo.NotifyTypeBlogComment, f.notify.sent[0].Type)

	// 事务内同步随笔评论数
	blog, err := f.blogRepo.GetBlog(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, blog.CommentCount)

	list, err := f.svc.GetBlogComments(ctx, 1, 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.List, 1)
	assert.Equal(t, "写得好", list.List[0].Content)
}

func TestCreateComment_TargetValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	// 目标必须二选一
	_, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{Content: "x"})
	assert.ErrorIs(t, err, ErrCommentTargetMissing)

	_, err = f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, BlogID: 1, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentTargetMissing)

	_, err = f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{BlogID: 99, Content: "x"})
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestCreateComment_ReplyAcrossTargets(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	parent, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: 1, Content: "顶楼"})
	require.NoError(t, err)

	// 帖子下的楼不能在随笔里回复
	_, err = f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{BlogID: 1, ParentID: &parent.ID, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentParentMismatch)
}

func TestDeleteComment_BlogAuthor(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	out, err := f.svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{BlogID: 1, Content: "x"})
	require.NoError(t, err)

	// 随笔作者可删他人评论，评论数随之回落
	require.NoError(t, f.svc.DeleteComment(ctx, out.ID, 1))
	blog, err := f.blogRepo.GetBlog(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, blog.CommentCount)
}
