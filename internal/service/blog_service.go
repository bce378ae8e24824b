package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"strconv"
	"time"
)

type BlogService interface {
	CreateBlog(ctx context.Context, userID uint64, req *dto.BlogCreateDTO) (*dto.BlogDTO, error)
	GetBlog(ctx context.Context, blogID, viewerID uint64) (*dto.BlogDTO, error)
	GetBlogs(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.BlogWaterfallDTO, error)
	GetUserBlogs(ctx context.Context, authorID, viewerID uint64, page, pageSize int) (*dto.BlogWaterfallDTO, error)
	UpdateBlog(ctx context.Context, blogID, userID uint64, req *dto.BlogUpdateDTO) error
	DeleteBlog(ctx context.Context, blogID, userID uint64) error
}

type BlogServiceImpl struct {
	blogRepo       repository.BlogRepo
	engagementRepo repository.EngagementRepo
	userRepo       repository.UserRepo
}

func NewBlogService(blogRepo repository.BlogRepo, engagementRepo repository.EngagementRepo, userRepo repository.UserRepo) BlogService {
	return &BlogServiceImpl{
		blogRepo:       blogRepo,
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
	}
}

func (s *BlogServiceImpl) CreateBlog(ctx context.Context, userID uint64, req *dto.BlogCreateDTO) (*dto.BlogDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	blog := &model.Blog{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.blogRepo.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}

	blog.User, _ = s.userRepo.GetUserById(ctx, userID)
	return s.buildBlogDTO(ctx, blog, userID), nil
}

func (s *BlogServiceImpl) GetBlog(ctx context.Context, blogID, viewerID uint64) (*dto.BlogDTO, error) {
	blog, err := s.blogRepo.GetBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return s.buildBlogDTO(ctx, blog, viewerID), nil
}

func (s *BlogServiceImpl) GetBlogs(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.BlogWaterfallDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	blogs, err := s.blogRepo.GetBlogs(ctx, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildWaterfall(ctx, blogs, viewerID, pageSize), nil
}

func (s *BlogServiceImpl) GetUserBlogs(ctx context.Context, authorID, viewerID uint64, page, pageSize int) (*dto.BlogWaterfallDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	blogs, err := s.blogRepo.GetUserBlogs(ctx, authorID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildWaterfall(ctx, blogs, viewerID, pageSize), nil
}

func (s *BlogServiceImpl) UpdateBlog(ctx context.Context, blogID, userID uint64, req *dto.BlogUpdateDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	blog, err := s.blogRepo.GetBlog(ctx, blogID)
	if err != nil {
		return err
	}
	if blog == nil {
		return ErrBlogNotFound
	}
	if blog.UserID != userID {
		return UnauthorizedError
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	return s.blogRepo.UpdateBlog(ctx, blog)
}

func (s *BlogServiceImpl) DeleteBlog(ctx context.Context, blogID, userID uint64) error {
	blog, err := s.blogRepo.GetBlog(ctx, blogID)
	if err != nil {
		return err
	}
	if blog == nil {
		return ErrBlogNotFound
	}
	if blog.UserID != userID {
		return UnauthorizedError
	}

	if err = s.blogRepo.DeleteBlog(ctx, blogID); err != nil {
		return err
	}
	idStr := strconv.FormatUint(blogID, 10)
	_ = redis.DeleteKey(ctx, consts.BlogLikeKey+idStr)
	_ = redis.DeleteKey(ctx, consts.BlogCommentKey+idStr)
	return nil
}

func (s *BlogServiceImpl) buildWaterfall(ctx context.Context, blogs []*model.Blog, viewerID uint64, pageSize int) *dto.BlogWaterfallDTO {
	hasMore := len(blogs) > pageSize
	if hasMore {
		blogs = blogs[:pageSize]
	}

	list := make([]*dto.BlogDTO, 0, len(blogs))
	for _, blog := range blogs {
		list = append(list, s.buildBlogDTO(ctx, blog, viewerID))
	}
	return &dto.BlogWaterfallDTO{List: list, HasMore: hasMore}
}

func (s *BlogServiceImpl) buildBlogDTO(ctx context.Context, blog *model.Blog, viewerID uint64) *dto.BlogDTO {
	out := &dto.BlogDTO{
		ID:           blog.ID,
		Title:        blog.Title,
		Content:      blog.Content,
		LikeCount:    int64(blog.LikeCount),
		CommentCount: int64(blog.CommentCount),
		CreatedAt:    blog.CreatedAt.Format(time.DateTime),
		UpdatedAt:    blog.UpdatedAt.Format(time.DateTime),
		UserID:       blog.UserID,
	}

	idStr := strconv.FormatUint(blog.ID, 10)
	if val, hit, err := redis.GetInt64(ctx, consts.BlogLikeKey+idStr); err == nil && hit {
		out.LikeCount = val
	}
	if val, hit, err := redis.GetInt64(ctx, consts.BlogCommentKey+idStr); err == nil && hit {
		out.CommentCount = val
	}

	if blog.User != nil {
		out.Nickname = blog.User.Nickname
		out.AvatarURL = blog.User.AvatarURL
	}

	if viewerID != 0 {
		out.IsLiked, _ = s.engagementRepo.CheckLikeExists(ctx, viewerID, model.LikeTarget{Kind: model.LikeTargetBlog, ID: blog.ID})
	}
	return out
}
