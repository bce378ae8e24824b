package repository

import (
	"Halation/internal/model"
	"context"

	"gorm.io/gorm"
)

type EngagementRepo interface {
	CreateLike(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error)
	DeleteLike(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error)
	CheckLikeExists(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error)
	GetLikeCount(ctx context.Context, target model.LikeTarget) (int64, error)

	CreateVote(ctx context.Context, vote *model.Vote) (bool, error)
	DeleteVote(ctx context.Context, userID, postID uint64) (bool, error)
	CheckVoteExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetVoteCount(ctx context.Context, postID uint64) (int64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db: db}
}

// counterModel 目标类型对应的计数宿主表
func counterModel(kind model.LikeTargetKind) interface{} {
	switch kind {
	case model.LikeTargetComment:
		return &model.Comment{}
	case model.LikeTargetBlog:
		return &model.Blog{}
	default:
		return &model.Post{}
	}
}

// CreateLike 写入点赞并累加目标计数。唯一索引冲突说明已点过，
// 吸收为 false，事务内不再动计数。
func (s *EngagementRepoImpl) CreateLike(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &model.Like{UserID: userID}
		target.Fill(like)

		if err := tx.Create(like).Error; err != nil {
			if IsDuplicateKeyErr(err) {
				return nil
			}
			return err
		}
		created = true

		return tx.Model(counterModel(target.Kind)).
			Where("id = ?", target.ID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
	return created, err
}

// DeleteLike 删除点赞，受影响行数为 0 时静默吸收
func (s *EngagementRepoImpl) DeleteLike(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID).
			Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true

		return tx.Model(counterModel(target.Kind)).
			Where("id = ? AND like_count > 0", target.ID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
	return removed, err
}

func (s *EngagementRepoImpl) CheckLikeExists(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID).
		Count(&count).Error
	return count > 0, err
}

func (s *EngagementRepoImpl) GetLikeCount(ctx context.Context, target model.LikeTarget) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where(target.Column()+" = ?", target.ID).
		Count(&count).Error
	return count, err
}

// CreateVote 写入投票并累加帖子票数，复合主键冲突吸收为 false
func (s *EngagementRepoImpl) CreateVote(ctx context.Context, vote *model.Vote) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			if IsDuplicateKeyErr(err) {
				return nil
			}
			return err
		}
		created = true

		return tx.Model(&model.Post{}).
			Where("id = ?", vote.PostID).
			Update("vote_count", gorm.Expr("vote_count + ?", vote.Value)).Error
	})
	return created, err
}

// DeleteVote 撤票，票值从被删行读出，保证增减对称
func (s *EngagementRepoImpl) DeleteVote(ctx context.Context, userID, postID uint64) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote model.Vote
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&vote)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return nil
			}
			return result.Error
		}

		if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		removed = true

		return tx.Model(&model.Post{}).
			Where("id = ? AND vote_count >= ?", postID, vote.Value).
			Update("vote_count", gorm.Expr("vote_count - ?", vote.Value)).Error
	})
	return removed, err
}

func (s *EngagementRepoImpl) CheckVoteExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *EngagementRepoImpl) GetVoteCount(ctx context.Context, postID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
