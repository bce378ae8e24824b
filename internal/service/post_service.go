package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/minio"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID uint64, viewerID uint64) (*dto.PostDTO, error)
	GetUserPosts(ctx context.Context, authorID, viewerID uint64, page, pageSize int) (*dto.PostWaterfallDTO, error)
	UpdatePost(ctx context.Context, postID, userID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID, userID uint64) error
	BuildPostDTOs(ctx context.Context, posts []*model.Post, viewerID uint64) ([]*dto.PostDTO, error)
}

type PostServiceImpl struct {
	postRepo       repository.PostRepo
	engagementRepo repository.EngagementRepo
	userRepo       repository.UserRepo
}

func NewPostService(postRepo repository.PostRepo, engagementRepo repository.EngagementRepo, userRepo repository.UserRepo) PostService {
	return &PostServiceImpl{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
	}
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}

	post := &model.Post{
		UserID:       userID,
		Caption:      req.Caption,
		PhotoURL:     req.PhotoURL,
		ThumbnailURL: req.ThumbURL,
		Lens:         req.Lens,
		FilmStock:    req.FilmStock,
		Camera:       req.Camera,
		Settings:     req.Settings,
		Status:       consts.PostStatusNormal,
	}

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	post.User = user
	return s.buildPostDTO(ctx, post, userID), nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, postID uint64, viewerID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.User == nil {
		post.User, err = s.userRepo.GetUserById(ctx, post.UserID)
		if err != nil {
			return nil, err
		}
	}
	return s.buildPostDTO(ctx, post, viewerID), nil
}

func (s *PostServiceImpl) GetUserPosts(ctx context.Context, authorID, viewerID uint64, page, pageSize int) (*dto.PostWaterfallDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)

	posts, err := s.postRepo.GetUserPosts(ctx, authorID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	list, err := s.BuildPostDTOs(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.PostWaterfallDTO{List: list, HasMore: hasMore, PageSize: pageSize}, nil
}

// UpdatePost 仅作者本人可编辑标题与拍摄参数
func (s *PostServiceImpl) UpdatePost(ctx context.Context, postID, userID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, UnauthorizedError
	}

	if err = copier.CopyWithOption(post, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.buildPostDTO(ctx, post, userID), nil
}

// DeletePost 仅作者本人可删，删除后丢弃计数缓存
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID, userID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	idStr := strconv.FormatUint(postID, 10)
	_ = redis.DeleteKey(ctx, consts.PostLikeKey+idStr)
	_ = redis.DeleteKey(ctx, consts.PostVoteKey+idStr)
	_ = redis.DeleteKey(ctx, consts.PostCommentKey+idStr)

	// 摘除榜单与待对账集合里的残留
	monthStart, _ := util.MonthWindow(time.Now())
	_ = redis.ZRem(ctx, consts.MonthlyTopPostsKey+monthStart.Format("2006-01"), idStr)
	_ = redis.SRem(ctx, consts.PostDirtyKey, postID)
	return nil
}

func (s *PostServiceImpl) BuildPostDTOs(ctx context.Context, posts []*model.Post, viewerID uint64) ([]*dto.PostDTO, error) {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		list = append(list, s.buildPostDTO(ctx, post, viewerID))
	}
	return list, nil
}

func (s *PostServiceImpl) buildPostDTO(ctx context.Context, post *model.Post, viewerID uint64) *dto.PostDTO {
	idStr := strconv.FormatUint(post.ID, 10)

	out := &dto.PostDTO{
		ID:           post.ID,
		Caption:      post.Caption,
		PhotoURL:     s.resolveURL(ctx, post.PhotoURL),
		ThumbnailURL: s.resolveURL(ctx, post.ThumbnailURL),
		Lens:         post.Lens,
		FilmStock:    post.FilmStock,
		Camera:       post.Camera,
		Settings:     post.Settings,
		LikeCount:    s.getCachedCount(ctx, consts.PostLikeKey+idStr, int64(post.LikeCount)),
		VoteCount:    s.getCachedCount(ctx, consts.PostVoteKey+idStr, int64(post.VoteCount)),
		CommentCount: s.getCachedCount(ctx, consts.PostCommentKey+idStr, int64(post.CommentCount)),
		CreatedAt:    post.CreatedAt.Format(time.DateTime),
		UpdatedAt:    post.UpdatedAt.Format(time.DateTime),
		UserID:       post.UserID,
	}

	if post.User != nil {
		out.Nickname = post.User.Nickname
		out.AvatarURL = post.User.AvatarURL
	}

	if viewerID != 0 {
		out.IsLiked, _ = s.engagementRepo.CheckLikeExists(ctx, viewerID, model.LikeTarget{Kind: model.LikeTargetPost, ID: post.ID})
		out.IsVoted, _ = s.engagementRepo.CheckVoteExists(ctx, viewerID, post.ID)
	}
	return out
}

// getCachedCount 计数缓存未命中时以冗余列回填
func (s *PostServiceImpl) getCachedCount(ctx context.Context, key string, fallback int64) int64 {
	if val, hit, err := redis.GetInt64(ctx, key); err == nil && hit {
		return val
	}
	_ = redis.SetWithExpiration(ctx, key, fallback, time.Hour*1)
	return fallback
}

// resolveURL 对象名换取外链，失败时退回原值
func (s *PostServiceImpl) resolveURL(ctx context.Context, objectName string) string {
	if objectName == "" {
		return ""
	}
	url, err := minio.GetAccessURL(ctx, objectName)
	if err != nil {
		return objectName
	}
	return url
}
