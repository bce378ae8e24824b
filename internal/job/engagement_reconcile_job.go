package job

import (
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/logger"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EngagementReconcileJob 对账互动计数。三个脏集分别覆盖
// 帖子（赞/票/评论）、评论（赞）和随笔（赞/评论），统一回源重算
type EngagementReconcileJob struct {
	postRepo       repository.PostRepo
	commentRepo    repository.CommentRepo
	blogRepo       repository.BlogRepo
	engagementRepo repository.EngagementRepo
}

func NewEngagementReconcileJob(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	blogRepo repository.BlogRepo,
	engagementRepo repository.EngagementRepo,
) *EngagementReconcileJob {
	return &EngagementReconcileJob{
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		blogRepo:       blogRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *EngagementReconcileJob) Run() {
	traceID := "job-engagement-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	s.reconcilePosts(ctx)
	s.reconcileComments(ctx)
	s.reconcileBlogs(ctx)
}

func (s *EngagementReconcileJob) reconcilePosts(ctx context.Context) {
	postIDs, ok := drainDirtySet(ctx, consts.PostDirtyKey)
	if !ok {
		return
	}

	for _, postID := range postIDs {
		likeCount, err := s.engagementRepo.GetLikeCount(ctx, model.LikeTarget{Kind: model.LikeTargetPost, ID: postID})
		if err != nil {
			log.ErrorContext(ctx, "count post likes error", "post_id", postID, "err", err)
			continue
		}
		voteCount, err := s.engagementRepo.GetVoteCount(ctx, postID)
		if err != nil {
			log.ErrorContext(ctx, "count post votes error", "post_id", postID, "err", err)
			continue
		}
		commentCount, err := s.commentRepo.GetCommentCountByPostID(ctx, postID)
		if err != nil {
			log.ErrorContext(ctx, "count post comments error", "post_id", postID, "err", err)
			continue
		}

		if err = s.postRepo.UpdatePostCounters(ctx, postID, likeCount, voteCount, commentCount); err != nil {
			log.ErrorContext(ctx, "update post counters error", "post_id", postID, "err", err)
			continue
		}

		idStr := strconv.FormatUint(postID, 10)
		_ = redis.SetWithExpiration(ctx, consts.PostLikeKey+idStr, likeCount, time.Hour)
		_ = redis.SetWithExpiration(ctx, consts.PostVoteKey+idStr, voteCount, time.Hour)
		_ = redis.SetWithExpiration(ctx, consts.PostCommentKey+idStr, commentCount, time.Hour)
	}

	log.InfoContext(ctx, "post counters reconciled", "posts", len(postIDs))
}

func (s *EngagementReconcileJob) reconcileComments(ctx context.Context) {
	commentIDs, ok := drainDirtySet(ctx, consts.CommentLikeDirtyKey)
	if !ok {
		return
	}

	for _, commentID := range commentIDs {
		likeCount, err := s.engagementRepo.GetLikeCount(ctx, model.LikeTarget{Kind: model.LikeTargetComment, ID: commentID})
		if err != nil {
			log.ErrorContext(ctx, "count comment likes error", "comment_id", commentID, "err", err)
			continue
		}
		if err = s.commentRepo.UpdateCommentLikeCount(ctx, commentID, likeCount); err != nil {
			log.ErrorContext(ctx, "update comment like count error", "comment_id", commentID, "err", err)
			continue
		}
		_ = redis.SetWithExpiration(ctx, consts.CommentLikeKey+strconv.FormatUint(commentID, 10), likeCount, time.Hour)
	}

	log.InfoContext(ctx, "comment counters reconciled", "comments", len(commentIDs))
}

func (s *EngagementReconcileJob) reconcileBlogs(ctx context.Context) {
	blogIDs, ok := drainDirtySet(ctx, consts.BlogDirtyKey)
	if !ok {
		return
	}

	for _, blogID := range blogIDs {
		likeCount, err := s.engagementRepo.GetLikeCount(ctx, model.LikeTarget{Kind: model.LikeTargetBlog, ID: blogID})
		if err != nil {
			log.ErrorContext(ctx, "count blog likes error", "blog_id", blogID, "err", err)
			continue
		}
		commentCount, err := s.commentRepo.GetCommentCountByBlogID(ctx, blogID)
		if err != nil {
			log.ErrorContext(ctx, "count blog comments error", "blog_id", blogID, "err", err)
			continue
		}
		if err = s.blogRepo.UpdateBlogCounters(ctx, blogID, likeCount, commentCount); err != nil {
			log.ErrorContext(ctx, "update blog counters error", "blog_id", blogID, "err", err)
			continue
		}
		idStr := strconv.FormatUint(blogID, 10)
		_ = redis.SetWithExpiration(ctx, consts.BlogLikeKey+idStr, likeCount, time.Hour)
		_ = redis.SetWithExpiration(ctx, consts.BlogCommentKey+idStr, commentCount, time.Hour)
	}

	log.InfoContext(ctx, "blog counters reconciled", "blogs", len(blogIDs))
}

// drainDirtySet 改名夺取脏集并解析成员，空集或出错返回 ok=false
func drainDirtySet(ctx context.Context, dirtyKey string) ([]uint64, bool) {
	processingKey := dirtyKey + ":processing"
	if err := redis.Rename(ctx, dirtyKey, processingKey); err != nil {
		return nil, false
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "key", dirtyKey, "err", err)
		return nil, false
	}

	ids, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "convert dirty set error", "key", dirtyKey, "err", err)
		return nil, false
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "key", dirtyKey, "err", err)
	}
	return ids, true
}
