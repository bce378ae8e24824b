package service

import (
	"Halation/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedFixture struct {
	svc            FeedService
	postRepo       *fakePostRepo
	followRepo     *fakeFollowRepo
	engagementRepo *fakeEngagementRepo
}

func newFeedFixture() *feedFixture {
	f := &feedFixture{
		postRepo:       newFakePostRepo(),
		followRepo:     newFakeFollowRepo(),
		engagementRepo: newFakeEngagementRepo(),
	}
	followSvc := NewUserFollowService(f.followRepo, &fakeNotifyService{})
	postSvc := NewPostService(f.postRepo, f.engagementRepo, newFakeUserRepo())
	f.svc = NewFeedService(f.postRepo, followSvc, postSvc)
	return f
}

func (f *feedFixture) addPost(t *testing.T, authorID uint64, votes int, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:    authorID,
		Caption:   "caption",
		VoteCount: votes,
		CreatedAt: createdAt,
	}
	require.NoError(t, f.postRepo.CreatePost(context.Background(), post))
	return post
}

func (f *feedFixture) follow(t *testing.T, followerID, followingID uint64) {
	t.Helper()
	_, err := f.followRepo.CreateUserFollow(context.Background(), &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestGetUserFeed_FollowedAuthorsAndSelf(t *testing.T) {
	f := newFeedFixture()
	ctx := context.Background()
	now := time.Now()

	f.follow(t, 1, 2)
	mine := f.addPost(t, 1, 0, now.Add(-2*time.Hour))
	followed := f.addPost(t, 2, 0, now.Add(-1*time.Hour))
	f.addPost(t, 3, 0, now) // 未关注的作者不该出现

	feed, err := f.svc.GetUserFeed(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.List, 2)
	assert.False(t, feed.HasMore)
	// 发布时间倒序
	assert.Equal(t, followed.ID, feed.List[0].ID)
	assert.Equal(t, mine.ID, feed.List[1].ID)
}

func TestGetUserFeed_Pagination(t *testing.T) {
	f := newFeedFixture()
	ctx := context.Background()
	now := time.Now()

	f.follow(t, 1, 2)
	for i := 0; i < 11; i++ {
		f.addPost(t, 2, 0, now.Add(-time.Duration(i)*time.Minute))
	}

	page1, err := f.svc.GetUserFeed(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.List, 10)
	assert.True(t, page1.HasMore)

	page2, err := f.svc.GetUserFeed(ctx, 1, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.List, 1)
	assert.False(t, page2.HasMore)
}

func TestGetMonthlyTopPosts(t *testing.T) {
	f := newFeedFixture()
	ctx := context.Background()
	now := time.Now()

	second := f.addPost(t, 2, 3, now)
	first := f.addPost(t, 3, 7, now)
	// 零票与窗口外的作品不上榜
	f.addPost(t, 4, 0, now)
	f.addPost(t, 5, 99, now.AddDate(0, -2, 0))

	_, err := f.engagementRepo.CreateVote(ctx, &model.Vote{UserID: 1, PostID: first.ID, Value: 1})
	require.NoError(t, err)

	posts, err := f.svc.GetMonthlyTopPosts(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// 按票数倒序
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	// 观看者的投票标记
	assert.True(t, posts[0].IsVoted)
	assert.False(t, posts[1].IsVoted)

	// 第二页为空，榜单尾部之外同样为空
	posts, err = f.svc.GetMonthlyTopPosts(ctx, 1, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
	posts, err = f.svc.GetMonthlyTopPosts(ctx, 1, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetSurroundingPosts(t *testing.T) {
	f := newFeedFixture()
	ctx := context.Background()
	// 固定在月中，避免跨月窗口影响
	base := time.Date(2026, 5, 15, 12, 0, 0, 0, time.Local)

	older := f.addPost(t, 2, 0, base.Add(-2*time.Hour))
	middle := f.addPost(t, 2, 0, base.Add(-1*time.Hour))
	newer := f.addPost(t, 2, 0, base)
	f.addPost(t, 2, 0, base.AddDate(0, -1, 0)) // 别的月份不算邻居

	res, err := f.svc.GetSurroundingPosts(ctx, middle.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, res.Prev)
	require.NotNil(t, res.Next)
	assert.Equal(t, older.ID, res.Prev.ID)
	assert.Equal(t, newer.ID, res.Next.ID)

	// 最新一张没有后邻
	res, err = f.svc.GetSurroundingPosts(ctx, newer.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, res.Next)
	require.NotNil(t, res.Prev)
	assert.Equal(t, middle.ID, res.Prev.ID)

	_, err = f.svc.GetSurroundingPosts(ctx, 404, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
