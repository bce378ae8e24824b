package job

import (
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/logger"
	"Halation/internal/pkg/redis"
	"Halation/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FollowReconcileJob 对账关注计数：CDC 把关注关系变更过的用户标脏，
// 这里回源 COUNT 重算，覆写 users 表冗余列并刷新计数缓存
type FollowReconcileJob struct {
	userRepo   repository.UserRepo
	followRepo repository.UserFollowRepo
}

func NewFollowReconcileJob(userRepo repository.UserRepo, followRepo repository.UserFollowRepo) *FollowReconcileJob {
	return &FollowReconcileJob{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *FollowReconcileJob) Run() {
	traceID := "job-follow-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	userIDs, ok := drainDirtySet(ctx, consts.UserFollowDirtyKey)
	if !ok {
		return
	}

	for _, userID := range userIDs {
		followerCount, err := s.followRepo.GetUserFollowerCount(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "count followers error", "user_id", userID, "err", err)
			continue
		}
		followingCount, err := s.followRepo.GetUserFollowingCount(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "count following error", "user_id", userID, "err", err)
			continue
		}

		if err = s.userRepo.UpdateUserFollowCounts(ctx, userID, followerCount, followingCount); err != nil {
			log.ErrorContext(ctx, "update follow counts error", "user_id", userID, "err", err)
			continue
		}

		idStr := strconv.FormatUint(userID, 10)
		_ = redis.SetWithExpiration(ctx, consts.UserFollowerCountKey+idStr, followerCount, time.Hour)
		_ = redis.SetWithExpiration(ctx, consts.UserFollowingCountKey+idStr, followingCount, time.Hour)
	}

	log.InfoContext(ctx, "follow counts reconciled", "users", len(userIDs))
}
