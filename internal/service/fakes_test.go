package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/mongo"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 包内共享的内存假实现，按接口逐一覆盖。
// Redis 未初始化时各缓存辅助函数自动退化为直通，服务层可独立测试。

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUserPassword(_ context.Context, id uint64, hashed string) error {
	if u, ok := f.users[id]; ok {
		u.Password = &hashed
	}
	return nil
}

func (f *fakeUserRepo) UpdateUserFollowCounts(_ context.Context, id uint64, followerCount, followingCount int64) error {
	if u, ok := f.users[id]; ok {
		u.FollowerCount = int(followerCount)
		u.FollowingCount = int(followingCount)
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint64) error {
	if u, ok := f.users[id]; ok {
		u.IsDelete = true
	}
	return nil
}

type fakeFollowRepo struct {
	follows map[[2]uint64]*model.UserFollow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[[2]uint64]*model.UserFollow)}
}

func (f *fakeFollowRepo) list(pick func(*model.UserFollow) bool) []*model.UserFollow {
	out := make([]*model.UserFollow, 0)
	for _, uf := range f.follows {
		if pick(uf) {
			out = append(out, uf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate(items []*model.UserFollow, limit, offset int) []*model.UserFollow {
	if offset >= len(items) {
		return []*model.UserFollow{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (f *fakeFollowRepo) GetUserFollowers(_ context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	return paginate(f.list(func(uf *model.UserFollow) bool { return uf.FollowingID == userID }), limit, offset), nil
}

func (f *fakeFollowRepo) GetUserFollowing(_ context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	return paginate(f.list(func(uf *model.UserFollow) bool { return uf.FollowerID == userID }), limit, offset), nil
}

func (f *fakeFollowRepo) GetFollowingIDs(_ context.Context, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	for _, uf := range f.follows {
		if uf.FollowerID == userID {
			ids = append(ids, uf.FollowingID)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetUserFollowerCount(_ context.Context, userID uint64) (int64, error) {
	return int64(len(f.list(func(uf *model.UserFollow) bool { return uf.FollowingID == userID }))), nil
}

func (f *fakeFollowRepo) GetUserFollowingCount(_ context.Context, userID uint64) (int64, error) {
	return int64(len(f.list(func(uf *model.UserFollow) bool { return uf.FollowerID == userID }))), nil
}

func (f *fakeFollowRepo) GetUserFollow(_ context.Context, userID uint64, followingID uint64) (*model.UserFollow, error) {
	return f.follows[[2]uint64{userID, followingID}], nil
}

func (f *fakeFollowRepo) CreateUserFollow(_ context.Context, uf *model.UserFollow) (bool, error) {
	key := [2]uint64{uf.FollowerID, uf.FollowingID}
	if _, ok := f.follows[key]; ok {
		return false, nil
	}
	f.follows[key] = uf
	return true, nil
}

func (f *fakeFollowRepo) DeleteUserFollow(_ context.Context, uf *model.UserFollow) (bool, error) {
	key := [2]uint64{uf.FollowerID, uf.FollowingID}
	if _, ok := f.follows[key]; !ok {
		return false, nil
	}
	delete(f.follows, key)
	return true, nil
}

type fakePostRepo struct {
	posts  map[uint64]*model.Post
	nextID uint64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint64]*model.Post), nextID: 1}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	post.ID = f.nextID
	f.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	return p, nil
}

func (f *fakePostRepo) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	out := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.posts[id]; ok && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) sorted(pick func(*model.Post) bool) []*model.Post {
	out := make([]*model.Post, 0)
	for _, p := range f.posts {
		if !p.IsDeleted && pick(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakePostRepo) GetPostsByAuthors(_ context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, error) {
	authors := make(map[uint64]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	all := f.sorted(func(p *model.Post) bool { return authors[p.UserID] })
	if offset >= len(all) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakePostRepo) GetUserPosts(_ context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	return f.GetPostsByAuthors(context.Background(), []uint64{userID}, limit, offset)
}

func (f *fakePostRepo) GetMonthlyTopPosts(_ context.Context, start, end time.Time, limit, offset int) ([]*model.Post, error) {
	out := make([]*model.Post, 0)
	for _, p := range f.posts {
		if !p.IsDeleted && p.VoteCount > 0 && !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VoteCount > out[j].VoteCount })
	if offset >= len(out) {
		return []*model.Post{}, nil
	}
	end2 := offset + limit
	if end2 > len(out) {
		end2 = len(out)
	}
	return out[offset:end2], nil
}

func (f *fakePostRepo) GetSurroundingPosts(_ context.Context, post *model.Post, start, end time.Time) (*model.Post, *model.Post, error) {
	var prev, next *model.Post
	for _, p := range f.posts {
		if p.IsDeleted || p.ID == post.ID || p.CreatedAt.Before(start) || !p.CreatedAt.Before(end) {
			continue
		}
		if p.CreatedAt.Before(post.CreatedAt) {
			if prev == nil || p.CreatedAt.After(prev.CreatedAt) {
				prev = p
			}
		} else if p.CreatedAt.After(post.CreatedAt) {
			if next == nil || p.CreatedAt.Before(next.CreatedAt) {
				next = p
			}
		}
	}
	return prev, next, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, post *model.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) UpdatePostCounters(_ context.Context, id uint64, likeCount, voteCount, commentCount int64) error {
	if p, ok := f.posts[id]; ok {
		p.LikeCount = int(likeCount)
		p.VoteCount = int(voteCount)
		p.CommentCount = int(commentCount)
	}
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	if p, ok := f.posts[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[uint64]*model.Comment
	nextID   uint64

	// 可选挂接，模拟真实仓储在事务内维护实体评论数
	posts *fakePostRepo
	blogs *fakeBlogRepo
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint64]*model.Comment), nextID: 1}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	f.comments[comment.ID] = comment
	f.bumpEntityCount(comment, 1)
	return nil
}

func (f *fakeCommentRepo) bumpEntityCount(comment *model.Comment, delta int) {
	if comment.PostID != nil && f.posts != nil {
		if p, ok := f.posts.posts[*comment.PostID]; ok {
			p.CommentCount += delta
		}
	}
	if comment.BlogID != nil && f.blogs != nil {
		if b, ok := f.blogs.blogs[*comment.BlogID]; ok {
			b.CommentCount += delta
		}
	}
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	return f.pick(func(c *model.Comment) bool { return c.PostID != nil && *c.PostID == postID }, limit, offset)
}

func (f *fakeCommentRepo) GetCommentsByBlogID(_ context.Context, blogID uint64, limit, offset int) ([]*model.Comment, error) {
	return f.pick(func(c *model.Comment) bool { return c.BlogID != nil && *c.BlogID == blogID }, limit, offset)
}

func (f *fakeCommentRepo) pick(match func(*model.Comment) bool, limit, offset int) ([]*model.Comment, error) {
	out := make([]*model.Comment, 0)
	for _, c := range f.comments {
		if !c.IsDeleted && match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []*model.Comment{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeCommentRepo) GetCommentCountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for _, c := range f.comments {
		if c.PostID != nil && *c.PostID == postID && !c.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) GetCommentCountByBlogID(_ context.Context, blogID uint64) (int64, error) {
	var count int64
	for _, c := range f.comments {
		if c.BlogID != nil && *c.BlogID == blogID && !c.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) UpdateCommentLikeCount(_ context.Context, commentID uint64, likeCount int64) error {
	if c, ok := f.comments[commentID]; ok {
		c.LikeCount = int(likeCount)
	}
	return nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, commentID uint64) (bool, error) {
	c, ok := f.comments[commentID]
	if !ok || c.IsDeleted {
		return false, nil
	}
	c.IsDeleted = true
	f.bumpEntityCount(c, -1)
	return true, nil
}

type fakeBlogRepo struct {
	blogs  map[uint64]*model.Blog
	nextID uint64
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[uint64]*model.Blog), nextID: 1}
}

func (f *fakeBlogRepo) CreateBlog(_ context.Context, blog *model.Blog) error {
	blog.ID = f.nextID
	f.nextID++
	blog.CreatedAt = time.Now()
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogRepo) GetBlog(_ context.Context, id uint64) (*model.Blog, error) {
	b, ok := f.blogs[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	return b, nil
}

func (f *fakeBlogRepo) GetBlogs(_ context.Context, limit, offset int) ([]*model.Blog, error) {
	out := make([]*model.Blog, 0)
	for _, b := range f.blogs {
		if !b.IsDeleted {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*model.Blog{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeBlogRepo) GetUserBlogs(_ context.Context, userID uint64, limit, offset int) ([]*model.Blog, error) {
	all, _ := f.GetBlogs(context.Background(), len(f.blogs)+1, 0)
	out := make([]*model.Blog, 0)
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return []*model.Blog{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeBlogRepo) UpdateBlog(_ context.Context, blog *model.Blog) error {
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogRepo) UpdateBlogCounters(_ context.Context, id uint64, likeCount, commentCount int64) error {
	if b, ok := f.blogs[id]; ok {
		b.LikeCount = int(likeCount)
		b.CommentCount = int(commentCount)
	}
	return nil
}

func (f *fakeBlogRepo) DeleteBlog(_ context.Context, id uint64) error {
	if b, ok := f.blogs[id]; ok {
		b.IsDeleted = true
	}
	return nil
}

type fakeEngagementRepo struct {
	likes map[string]bool
	votes map[string]bool
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{likes: make(map[string]bool), votes: make(map[string]bool)}
}

func likeKey(userID uint64, target model.LikeTarget) string {
	return fmt.Sprintf("%d:%d:%d", userID, target.Kind, target.ID)
}

func (f *fakeEngagementRepo) CreateLike(_ context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	key := likeKey(userID, target)
	if f.likes[key] {
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeEngagementRepo) DeleteLike(_ context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	key := likeKey(userID, target)
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

func (f *fakeEngagementRepo) CheckLikeExists(_ context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	return f.likes[likeKey(userID, target)], nil
}

func (f *fakeEngagementRepo) GetLikeCount(_ context.Context, target model.LikeTarget) (int64, error) {
	var count int64
	suffix := fmt.Sprintf(":%d:%d", target.Kind, target.ID)
	for key := range f.likes {
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			count++
		}
	}
	return count, nil
}

func voteKey(userID, postID uint64) string {
	return fmt.Sprintf("%d:%d", userID, postID)
}

func (f *fakeEngagementRepo) CreateVote(_ context.Context, vote *model.Vote) (bool, error) {
	key := voteKey(vote.UserID, vote.PostID)
	if f.votes[key] {
		return false, nil
	}
	f.votes[key] = true
	return true, nil
}

func (f *fakeEngagementRepo) DeleteVote(_ context.Context, userID, postID uint64) (bool, error) {
	key := voteKey(userID, postID)
	if !f.votes[key] {
		return false, nil
	}
	delete(f.votes, key)
	return true, nil
}

func (f *fakeEngagementRepo) CheckVoteExists(_ context.Context, userID, postID uint64) (bool, error) {
	return f.votes[voteKey(userID, postID)], nil
}

func (f *fakeEngagementRepo) GetVoteCount(_ context.Context, postID uint64) (int64, error) {
	var count int64
	suffix := fmt.Sprintf(":%d", postID)
	for key := range f.votes {
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			count++
		}
	}
	return count, nil
}

func u64ptr(v uint64) *uint64 { return &v }

// fakeNotifyBoxRepo 内存信箱，按写入倒序返回
type fakeNotifyBoxRepo struct {
	docs []*mongo.NotifyModel
}

func (f *fakeNotifyBoxRepo) CreateNotification(_ context.Context, msg *mongo.NotifyModel) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	f.docs = append(f.docs, msg)
	return nil
}

func (f *fakeNotifyBoxRepo) GetNotificationList(_ context.Context, userID uint64, limit, offset int64) ([]*mongo.NotifyModel, error) {
	mine := make([]*mongo.NotifyModel, 0)
	for i := len(f.docs) - 1; i >= 0; i-- {
		if f.docs[i].ReceiverID == userID {
			mine = append(mine, f.docs[i])
		}
	}
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("negative limit or offset")
	}
	if offset >= int64(len(mine)) {
		return []*mongo.NotifyModel{}, nil
	}
	end := offset + limit
	if end > int64(len(mine)) {
		end = int64(len(mine))
	}
	return mine[offset:end], nil
}

func (f *fakeNotifyBoxRepo) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	for _, d := range f.docs {
		if d.ReceiverID == userID && d.ID.Hex() == msgID {
			d.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (f *fakeNotifyBoxRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	for _, d := range f.docs {
		if d.ReceiverID == userID {
			d.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotifyBoxRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for _, d := range f.docs {
		if d.ReceiverID == userID && !d.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifyBoxRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongo.NotifyModel, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeNotifyBoxRepo) DeleteNotification(_ context.Context, userID uint64, msgID string) error {
	for i, d := range f.docs {
		if d.ReceiverID == userID && d.ID.Hex() == msgID {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (f *fakeNotifyBoxRepo) DeleteAllNotifications(_ context.Context, userID uint64) error {
	kept := f.docs[:0]
	for _, d := range f.docs {
		if d.ReceiverID != userID {
			kept = append(kept, d)
		}
	}
	f.docs = kept
	return nil
}

// fakeNotifyService 只记录投递的通知
type fakeNotifyService struct {
	sent []*mongo.NotifyModel
}

func (f *fakeNotifyService) Notify(_ context.Context, msg *mongo.NotifyModel) error {
	if msg.ReceiverID == msg.SenderID {
		return nil
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeNotifyService) GetNotifications(context.Context, uint64, int, int) (*dto.NotifyListDTO, error) {
	return &dto.NotifyListDTO{}, nil
}

func (f *fakeNotifyService) MarkAsRead(context.Context, uint64, string) error { return nil }

func (f *fakeNotifyService) MarkAllAsRead(context.Context, uint64) error { return nil }

func (f *fakeNotifyService) GetUnreadCount(context.Context, uint64) (int64, error) { return 0, nil }

func (f *fakeNotifyService) DeleteNotification(context.Context, uint64, string) error { return nil }

func (f *fakeNotifyService) DeleteAllNotifications(context.Context, uint64) error { return nil }

type fakeMailService struct {
	sentTo   []string
	goodCode string
}

func (f *fakeMailService) SendResetCode(_ context.Context, email string) error {
	f.sentTo = append(f.sentTo, email)
	return nil
}

func (f *fakeMailService) CheckResetCode(_ context.Context, _ string, code string) error {
	if code != f.goodCode {
		return ErrCodeIncorrect
	}
	return nil
}

func (f *fakeMailService) ConsumeResetCode(context.Context, string) error { return nil }

type fakeConvRepo struct {
	convs     map[uint64]*model.Conversation
	byPeerKey map[string]*model.Conversation
	members   map[uint64][]*model.ConversationMember
	nextID    uint64
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		convs:     make(map[uint64]*model.Conversation),
		byPeerKey: make(map[string]*model.Conversation),
		members:   make(map[uint64][]*model.ConversationMember),
		nextID:    1,
	}
}

func (f *fakeConvRepo) CreateConversation(_ context.Context, conv *model.Conversation, members []*model.ConversationMember) error {
	conv.ID = f.nextID
	f.nextID++
	f.convs[conv.ID] = conv
	f.byPeerKey[conv.PeerKey] = conv
	for _, m := range members {
		m.ConversationID = conv.ID
		f.members[conv.ID] = append(f.members[conv.ID], m)
	}
	return nil
}

func (f *fakeConvRepo) GetConversation(_ context.Context, convID uint64) (*model.Conversation, error) {
	conv, ok := f.convs[convID]
	if !ok {
		return nil, errors.New("conversation not found")
	}
	return conv, nil
}

func (f *fakeConvRepo) GetConversationByPeerKey(_ context.Context, peerKey string) (*model.Conversation, error) {
	conv, ok := f.byPeerKey[peerKey]
	if !ok {
		return nil, errors.New("conversation not found")
	}
	return conv, nil
}

func (f *fakeConvRepo) IsMember(_ context.Context, convID uint64, userID uint64) (bool, error) {
	for _, m := range f.members[convID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConvRepo) UpdateReadSeq(_ context.Context, convID, userID, seq uint64) error {
	for _, m := range f.members[convID] {
		if m.UserID == userID {
			m.ReadMsgSeq = seq
		}
	}
	return nil
}

func (f *fakeConvRepo) IncrMaxSeq(_ context.Context, convID uint64, lastMsg string, senderID uint64) (uint64, error) {
	conv, ok := f.convs[convID]
	if !ok {
		return 0, errors.New("conversation not found")
	}
	conv.MaxMsgSeq++
	conv.LastMsgContent = lastMsg
	conv.LastSenderID = senderID
	conv.LastMessageAt = time.Now()
	return conv.MaxMsgSeq, nil
}

func (f *fakeConvRepo) GetUserConversationMemList(_ context.Context, userID uint64) ([]*model.ConversationMember, error) {
	out := make([]*model.ConversationMember, 0)
	for convID, members := range f.members {
		for _, m := range members {
			if m.UserID == userID {
				copied := *m
				copied.Conversation = *f.convs[convID]
				copied.UnreadCount = f.convs[convID].MaxMsgSeq - m.ReadMsgSeq
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeConvRepo) GetConvPeersReadSeq(_ context.Context, convIDs []uint64, peerIDs []uint64) (map[uint64]uint64, error) {
	peers := make(map[uint64]bool, len(peerIDs))
	for _, id := range peerIDs {
		peers[id] = true
	}
	out := make(map[uint64]uint64)
	for _, convID := range convIDs {
		for _, m := range f.members[convID] {
			if peers[m.UserID] {
				out[convID] = m.ReadMsgSeq
			}
		}
	}
	return out, nil
}

func (f *fakeConvRepo) GetTotalUnreadCount(_ context.Context, userID uint64) (int64, error) {
	var total int64
	for convID, members := range f.members {
		for _, m := range members {
			if m.UserID == userID {
				total += int64(f.convs[convID].MaxMsgSeq - m.ReadMsgSeq)
			}
		}
	}
	return total, nil
}

type fakeMessageRepo struct {
	messages  map[uint64][]*mongo.Message
	failSave  bool
	lastLimit int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uint64][]*mongo.Message)}
}

func (f *fakeMessageRepo) SaveMessage(_ context.Context, msg *mongo.Message) error {
	if f.failSave {
		return errors.New("mongo unavailable")
	}
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], msg)
	return nil
}

func (f *fakeMessageRepo) GetHistory(_ context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*mongo.Message, error) {
	f.lastLimit = pageSize
	all := f.messages[convID]
	out := make([]*mongo.Message, 0, pageSize)
	for i := len(all) - 1; i >= 0 && len(out) < pageSize; i-- {
		if lastSeq == 0 || all[i].Seq < lastSeq {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) GetMessageBySeq(_ context.Context, convID uint64, seq uint64) (*mongo.Message, error) {
	for _, m := range f.messages[convID] {
		if m.Seq == seq {
			return m, nil
		}
	}
	return nil, nil
}
