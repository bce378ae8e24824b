package repository

import (
	"Halation/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type BlogRepo interface {
	CreateBlog(ctx context.Context, blog *model.Blog) error
	GetBlog(ctx context.Context, id uint64) (*model.Blog, error)
	GetBlogs(ctx context.Context, limit, offset int) ([]*model.Blog, error)
	GetUserBlogs(ctx context.Context, userID uint64, limit, offset int) ([]*model.Blog, error)
	UpdateBlog(ctx context.Context, blog *model.Blog) error
	UpdateBlogCounters(ctx context.Context, id uint64, likeCount, commentCount int64) error
	DeleteBlog(ctx context.Context, id uint64) error
}

type BlogRepoImpl struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) BlogRepo {
	return &BlogRepoImpl{db: db}
}

func (s *BlogRepoImpl) CreateBlog(ctx context.Context, blog *model.Blog) error {
	return s.db.WithContext(ctx).Create(blog).Error
}

func (s *BlogRepoImpl) GetBlog(ctx context.Context, id uint64) (*model.Blog, error) {
	var blog model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = 0").
		First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

func (s *BlogRepoImpl) GetBlogs(ctx context.Context, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = 0").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) GetUserBlogs(ctx context.Context, userID uint64, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ? AND is_deleted = 0", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) UpdateBlog(ctx context.Context, blog *model.Blog) error {
	return s.db.WithContext(ctx).Updates(blog).Error
}

func (s *BlogRepoImpl) UpdateBlogCounters(ctx context.Context, id uint64, likeCount, commentCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Blog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"like_count":    likeCount,
			"comment_count": commentCount,
		}).Error
}

func (s *BlogRepoImpl) DeleteBlog(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Blog{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
