package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"time"
)

const MonthlyTopLimit = 20

type FeedService interface {
	GetUserFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostWaterfallDTO, error)
	GetMonthlyTopPosts(ctx context.Context, viewerID uint64, page, pageSize int) ([]*dto.PostDTO, error)
	GetSurroundingPosts(ctx context.Context, postID, viewerID uint64) (*dto.PostNeighborsDTO, error)
}

type FeedServiceImpl struct {
	postRepo      repository.PostRepo
	followService UserFollowService
	postService   PostService
}

func NewFeedService(postRepo repository.PostRepo, followService UserFollowService, postService PostService) FeedService {
	return &FeedServiceImpl{
		postRepo:      postRepo,
		followService: followService,
		postService:   postService,
	}
}

// GetUserFeed 关注流：关注的作者加上自己，按发布时间倒序
func (s *FeedServiceImpl) GetUserFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostWaterfallDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)

	authorIDs, err := s.followService.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	posts, err := s.postRepo.GetPostsByAuthors(ctx, authorIDs, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	list, err := s.postService.BuildPostDTOs(ctx, posts, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PostWaterfallDTO{List: list, HasMore: hasMore, PageSize: pageSize}, nil
}

// GetMonthlyTopPosts 本月投票榜，只收录自然月窗口内且得票为正的作品。
// 优先读定时任务维护的 ZSET 榜单，未就绪时回源数据库。
// 榜单只保留前 MonthlyTopLimit 名，翻出尾部返回空列表
func (s *FeedServiceImpl) GetMonthlyTopPosts(ctx context.Context, viewerID uint64, page, pageSize int) ([]*dto.PostDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	offset := (page - 1) * pageSize
	if offset >= MonthlyTopLimit {
		return []*dto.PostDTO{}, nil
	}
	if offset+pageSize > MonthlyTopLimit {
		pageSize = MonthlyTopLimit - offset
	}

	start, end := util.MonthWindow(time.Now())

	posts, err := s.loadBoardPosts(ctx, start, offset, pageSize)
	if err != nil || len(posts) == 0 {
		posts, err = s.postRepo.GetMonthlyTopPosts(ctx, start, end, pageSize, offset)
		if err != nil {
			return nil, err
		}
	}
	return s.postService.BuildPostDTOs(ctx, posts, viewerID)
}

// GetSurroundingPosts 作品详情页的同月前后邻居
func (s *FeedServiceImpl) GetSurroundingPosts(ctx context.Context, postID, viewerID uint64) (*dto.PostNeighborsDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	start, end := util.MonthWindow(post.CreatedAt)
	prev, next, err := s.postRepo.GetSurroundingPosts(ctx, post, start, end)
	if err != nil {
		return nil, err
	}

	res := &dto.PostNeighborsDTO{}
	if prev != nil {
		dtos, err := s.postService.BuildPostDTOs(ctx, []*model.Post{prev}, viewerID)
		if err != nil {
			return nil, err
		}
		res.Prev = dtos[0]
	}
	if next != nil {
		dtos, err := s.postService.BuildPostDTOs(ctx, []*model.Post{next}, viewerID)
		if err != nil {
			return nil, err
		}
		res.Next = dtos[0]
	}
	return res, nil
}

func (s *FeedServiceImpl) loadBoardPosts(ctx context.Context, monthStart time.Time, offset, pageSize int) ([]*model.Post, error) {
	boardKey := consts.MonthlyTopPostsKey + monthStart.Format("2006-01")
	members, err := redis.ZRevRange(ctx, boardKey, int64(offset), int64(offset+pageSize-1))
	if err != nil || len(members) == 0 {
		return nil, err
	}

	ids, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按榜单名次重排
	byID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return ordered, nil
}
