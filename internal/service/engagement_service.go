package service

import (
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/mongo"
	"Halation/internal/pkg/redis"
	"Halation/internal/repository"
	"context"
	"strconv"
)

type EngagementService interface {
	Like(ctx context.Context, userID uint64, target model.LikeTarget) error
	Unlike(ctx context.Context, userID uint64, target model.LikeTarget) error
	VotePost(ctx context.Context, userID, postID uint64) error
	RevokeVote(ctx context.Context, userID, postID uint64) error
}

type EngagementServiceImpl struct {
	engagementRepo repository.EngagementRepo
	postRepo       repository.PostRepo
	commentRepo    repository.CommentRepo
	blogRepo       repository.BlogRepo
	notifyService  NotifyService
}

func NewEngagementService(
	engagementRepo repository.EngagementRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	blogRepo repository.BlogRepo,
	notifyService NotifyService,
) EngagementService {
	return &EngagementServiceImpl{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		blogRepo:       blogRepo,
		notifyService:  notifyService,
	}
}

// Like 点赞。目标不存在时报错，重复点赞静默成功
func (s *EngagementServiceImpl) Like(ctx context.Context, userID uint64, target model.LikeTarget) error {
	authorID, notifyType, err := s.resolveTarget(ctx, target)
	if err != nil {
		return err
	}

	created, err := s.engagementRepo.CreateLike(ctx, userID, target)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	s.invalidateLikeCount(ctx, target)

	if s.notifyService != nil {
		_ = s.notifyService.Notify(ctx, &mongo.NotifyModel{
			ReceiverID: authorID,
			SenderID:   userID,
			Type:       notifyType,
			TargetID:   target.ID,
		})
	}
	return nil
}

// Unlike 取消点赞。点赞不存在时视为已完成
func (s *EngagementServiceImpl) Unlike(ctx context.Context, userID uint64, target model.LikeTarget) error {
	if _, _, err := s.resolveTarget(ctx, target); err != nil {
		return err
	}

	removed, err := s.engagementRepo.DeleteLike(ctx, userID, target)
	if err != nil {
		return err
	}
	if removed {
		s.invalidateLikeCount(ctx, target)
	}
	return nil
}

func (s *EngagementServiceImpl) VotePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	created, err := s.engagementRepo.CreateVote(ctx, &model.Vote{
		UserID: userID,
		PostID: postID,
		Value:  1,
	})
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	_ = redis.DeleteKey(ctx, consts.PostVoteKey+strconv.FormatUint(postID, 10))

	if s.notifyService != nil {
		_ = s.notifyService.Notify(ctx, &mongo.NotifyModel{
			ReceiverID: post.UserID,
			SenderID:   userID,
			Type:       mongo.NotifyTypePostVote,
			TargetID:   postID,
		})
	}
	return nil
}

func (s *EngagementServiceImpl) RevokeVote(ctx context.Context, userID, postID uint64) error {
	removed, err := s.engagementRepo.DeleteVote(ctx, userID, postID)
	if err != nil {
		return err
	}
	if removed {
		_ = redis.DeleteKey(ctx, consts.PostVoteKey+strconv.FormatUint(postID, 10))
	}
	return nil
}

// resolveTarget 校验目标存在并取作者与通知类型
func (s *EngagementServiceImpl) resolveTarget(ctx context.Context, target model.LikeTarget) (uint64, int8, error) {
	switch target.Kind {
	case model.LikeTargetPost:
		post, err := s.postRepo.GetPost(ctx, target.ID)
		if err != nil {
			return 0, 0, err
		}
		if post == nil {
			return 0, 0, ErrPostNotFound
		}
		return post.UserID, mongo.NotifyTypePostLike, nil
	case model.LikeTargetComment:
		comment, err := s.commentRepo.GetCommentByID(ctx, target.ID)
		if err != nil {
			return 0, 0, err
		}
		if comment == nil {
			return 0, 0, ErrCommentNotFound
		}
		return comment.UserID, mongo.NotifyTypeCommentLike, nil
	case model.LikeTargetBlog:
		blog, err := s.blogRepo.GetBlog(ctx, target.ID)
		if err != nil {
			return 0, 0, err
		}
		if blog == nil {
			return 0, 0, ErrBlogNotFound
		}
		return blog.UserID, mongo.NotifyTypeBlogLike, nil
	default:
		return 0, 0, ErrLikeTargetInvalid
	}
}

func (s *EngagementServiceImpl) invalidateLikeCount(ctx context.Context, target model.LikeTarget) {
	idStr := strconv.FormatUint(target.ID, 10)
	switch target.Kind {
	case model.LikeTargetPost:
		_ = redis.DeleteKey(ctx, consts.PostLikeKey+idStr)
	case model.LikeTargetComment:
		_ = redis.DeleteKey(ctx, consts.CommentLikeKey+idStr)
	case model.LikeTargetBlog:
		_ = redis.DeleteKey(ctx, consts.BlogLikeKey+idStr)
	}
}
