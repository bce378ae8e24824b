package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	svc      PostService
	postRepo *fakePostRepo
	userRepo *fakeUserRepo
}

func newPostFixture(t *testing.T) *postFixture {
	f := &postFixture{
		postRepo: newFakePostRepo(),
		userRepo: newFakeUserRepo(),
	}
	name := "author"
	require.NoError(t, f.userRepo.CreateUser(context.Background(), &model.User{Username: &name, Nickname: "作者"}))
	f.svc = NewPostService(f.postRepo, newFakeEngagementRepo(), f.userRepo)
	return f
}

func TestCreatePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreatePost(ctx, 1, &dto.CreatePostDTO{
		Caption:   "黄昏的盐田",
		PhotoURL:  "photos/1.jpg",
		Lens:      "50mm f/1.4",
		FilmStock: "Portra 400",
	})
	require.NoError(t, err)
	assert.Equal(t, "黄昏的盐田", res.Caption)
	assert.Equal(t, "作者", res.Nickname)
	// 对象名换取了公开桶直链
	assert.Equal(t, "http://cdn.test/halation/photos/1.jpg", res.PhotoURL)
}

func TestCreatePost_AuthorChecks(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	req := &dto.CreatePostDTO{PhotoURL: "photos/1.jpg"}

	_, err := f.svc.CreatePost(ctx, 404, req)
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, _ := f.userRepo.GetUserById(ctx, 1)
	user.IsBan = true
	_, err = f.svc.CreatePost(ctx, 1, req)
	assert.ErrorIs(t, err, ErrUserBan)

	_, err = f.svc.CreatePost(ctx, 1, &dto.CreatePostDTO{})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdatePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 1, &dto.CreatePostDTO{PhotoURL: "photos/1.jpg", Caption: "旧标题"})
	require.NoError(t, err)

	caption := "新标题"
	res, err := f.svc.UpdatePost(ctx, created.ID, 1, &dto.UpdatePostDTO{Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, "新标题", res.Caption)

	// 未提交的字段保持不变
	stored, _ := f.postRepo.GetPost(ctx, created.ID)
	assert.Equal(t, "photos/1.jpg", stored.PhotoURL)

	_, err = f.svc.UpdatePost(ctx, created.ID, 77, &dto.UpdatePostDTO{Caption: &caption})
	assert.ErrorIs(t, err, UnauthorizedError)

	_, err = f.svc.UpdatePost(ctx, 404, 1, &dto.UpdatePostDTO{Caption: &caption})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 1, &dto.CreatePostDTO{PhotoURL: "photos/1.jpg"})
	require.NoError(t, err)

	err = f.svc.DeletePost(ctx, created.ID, 77)
	assert.ErrorIs(t, err, UnauthorizedError)

	require.NoError(t, f.svc.DeletePost(ctx, created.ID, 1))

	_, err = f.svc.GetPost(ctx, created.ID, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = f.svc.DeletePost(ctx, created.ID, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetUserPosts_EchoesPageSize(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	require.NoError(t, f.postRepo.CreatePost(ctx, &model.Post{UserID: 1, PhotoURL: "a.jpg"}))
	require.NoError(t, f.postRepo.CreatePost(ctx, &model.Post{UserID: 1, PhotoURL: "b.jpg"}))

	out, err := f.svc.GetUserPosts(ctx, 1, 0, 1, 20)
	require.NoError(t, err)
	assert.Len(t, out.List, 2)
	assert.Equal(t, 20, out.PageSize)

	// 非法 page_size 回显收敛后的默认值
	out, err = f.svc.GetUserPosts(ctx, 1, 0, 1, -7)
	require.NoError(t, err)
	assert.Len(t, out.List, 2)
	assert.Equal(t, consts.DefaultPageSize, out.PageSize)
}
