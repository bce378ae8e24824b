package repository

import (
	"Halation/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, error)
	GetUserPosts(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error)
	GetMonthlyTopPosts(ctx context.Context, start, end time.Time, limit, offset int) ([]*model.Post, error)
	GetSurroundingPosts(ctx context.Context, post *model.Post, start, end time.Time) (prev, next *model.Post, err error)
	UpdatePost(ctx context.Context, post *model.Post) error
	UpdatePostCounters(ctx context.Context, id uint64, likeCount, voteCount, commentCount int64) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// CreatePost 创建帖子并在同一事务内维护作者的作品数
func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", post.UserID).
			Update("post_count", gorm.Expr("post_count + 1")).Error
	})
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = 0").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("id IN ? AND is_deleted = 0", ids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthors 按作者集合取帖子，发布时间倒序。
// 调用方多取一条来探测是否还有下一页。
func (s PostRepoImpl) GetPostsByAuthors(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id IN ? AND is_deleted = 0", authorIDs).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// GetUserPosts 获取某个用户的作品列表
func (s PostRepoImpl) GetUserPosts(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ? AND is_deleted = 0", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// GetMonthlyTopPosts 查询时间窗口内得票最多的帖子，零票不入榜
func (s PostRepoImpl) GetMonthlyTopPosts(ctx context.Context, start, end time.Time, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("created_at >= ? AND created_at < ? AND vote_count > 0 AND is_deleted = 0", start, end).
		Order("vote_count desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// GetSurroundingPosts 取同一时间窗口内发布时间相邻的前后两张作品
func (s PostRepoImpl) GetSurroundingPosts(ctx context.Context, post *model.Post, start, end time.Time) (*model.Post, *model.Post, error) {
	var prev, next model.Post

	err := s.db.WithContext(ctx).Preload("User").
		Where("created_at >= ? AND created_at < ? AND created_at < ? AND is_deleted = 0", start, end, post.CreatedAt).
		Order("created_at desc").
		First(&prev).Error
	hasPrev := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	err = s.db.WithContext(ctx).Preload("User").
		Where("created_at >= ? AND created_at < ? AND created_at > ? AND is_deleted = 0", start, end, post.CreatedAt).
		Order("created_at asc").
		First(&next).Error
	hasNext := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var prevPtr, nextPtr *model.Post
	if hasPrev {
		prevPtr = &prev
	}
	if hasNext {
		nextPtr = &next
	}
	return prevPtr, nextPtr, nil
}

func (s PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

// UpdatePostCounters 覆写冗余计数列，供对账任务回源重算后落库
func (s PostRepoImpl) UpdatePostCounters(ctx context.Context, id uint64, likeCount, voteCount, commentCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"like_count":    likeCount,
			"vote_count":    voteCount,
			"comment_count": commentCount,
		}).Error
}

// DeletePost 软删除帖子并回退作者作品数
func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Post{}).
			Where("id = ? AND is_deleted = 0", id).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		var userID uint64
		if err := tx.Model(&model.Post{}).Select("user_id").
			Where("id = ?", id).Scan(&userID).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ? AND post_count > 0", userID).
			Update("post_count", gorm.Expr("post_count - 1")).Error
	})
}
