package job

import (
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/logger"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"Halation/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// MonthlyTopJob 定期重建本月投票榜的 ZSET。
// 榜单读路径优先走 ZSET，这里保证它与数据库的得票数据收敛
type MonthlyTopJob struct {
	postRepo repository.PostRepo
}

func NewMonthlyTopJob(postRepo repository.PostRepo) *MonthlyTopJob {
	return &MonthlyTopJob{postRepo: postRepo}
}

func (s *MonthlyTopJob) Run() {
	traceID := "job-monthly-top-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	start, end := util.MonthWindow(time.Now())
	month := start.Format("2006-01")

	// 多实例部署时只允许一个实例重建
	lockKey := consts.MonthlyTopInitLock + month
	uuidStr := uuid.NewString()
	lock, err := redis.TryLock(ctx, lockKey, uuidStr, 5*time.Minute, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, lockKey, uuidStr)

	posts, err := s.postRepo.GetMonthlyTopPosts(ctx, start, end, service.MonthlyTopLimit, 0)
	if err != nil {
		log.ErrorContext(ctx, "load monthly top posts error", "err", err)
		return
	}

	boardKey := consts.MonthlyTopPostsKey + month
	if err = redis.DeleteKey(ctx, boardKey); err != nil {
		log.ErrorContext(ctx, "reset monthly board error", "err", err)
		return
	}
	for _, post := range posts {
		if err = redis.ZAdd(ctx, boardKey, float64(post.VoteCount), strconv.FormatUint(post.ID, 10)); err != nil {
			log.ErrorContext(ctx, "fill monthly board error", "post_id", post.ID, "err", err)
			return
		}
	}
	// 截断超出榜单容量的尾部
	if err = redis.ZRemRangeByRank(ctx, boardKey, 0, int64(-service.MonthlyTopLimit-1)); err != nil {
		log.ErrorContext(ctx, "trim monthly board error", "err", err)
	}
	// 月末换榜后旧榜保留一段时间便于回看
	if err = redis.Expire(ctx, boardKey, 40*24*time.Hour); err != nil {
		log.ErrorContext(ctx, "set monthly board ttl error", "err", err)
	}

	log.InfoContext(ctx, "monthly top board rebuilt", "month", month, "size", len(posts))
}
