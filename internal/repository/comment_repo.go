package repository

import (
	"Halation/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentsByBlogID(ctx context.Context, blogID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetCommentCountByBlogID(ctx context.Context, blogID uint64) (int64, error)
	UpdateCommentLikeCount(ctx context.Context, commentID uint64, likeCount int64) error
	DeleteComment(ctx context.Context, commentID uint64) (bool, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

// CreateComment 创建评论并在同一事务内维护所属实体的评论数
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return bumpCommentCount(tx, comment, +1)
	})
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Where("is_deleted = 0").
		First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID 评论按发布时间正序返回，回复树由调用方组装
func (s *CommentRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ? AND is_deleted = 0", postID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentsByBlogID(ctx context.Context, blogID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("blog_id = ? AND is_deleted = 0", blogID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_deleted = 0", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) GetCommentCountByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("blog_id = ? AND is_deleted = 0", blogID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) UpdateCommentLikeCount(ctx context.Context, commentID uint64, likeCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("like_count", likeCount).Error
}

// DeleteComment 软删除评论，归属实体取自被删行本身，避免信任调用方参数
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Where("id = ? AND is_deleted = 0", commentID).
			First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		result := tx.Model(&model.Comment{}).
			Where("id = ? AND is_deleted = 0", commentID).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true

		return bumpCommentCount(tx, &comment, -1)
	})
	return removed, err
}

// bumpCommentCount 按评论挂载的实体更新对应的冗余计数列
func bumpCommentCount(tx *gorm.DB, comment *model.Comment, delta int) error {
	expr := gorm.Expr("comment_count + ?", delta)
	switch {
	case comment.PostID != nil:
		q := tx.Model(&model.Post{}).Where("id = ?", *comment.PostID)
		if delta < 0 {
			q = q.Where("comment_count > 0")
		}
		return q.Update("comment_count", expr).Error
	case comment.BlogID != nil:
		q := tx.Model(&model.Blog{}).Where("id = ?", *comment.BlogID)
		if delta < 0 {
			q = q.Where("comment_count > 0")
		}
		return q.Update("comment_count", expr).Error
	}
	return nil
}
