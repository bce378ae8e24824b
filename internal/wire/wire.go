package wire

import (
	"Halation/internal/api"
	"Halation/internal/api/config"
	"Halation/internal/api/handler"
	"Halation/internal/job"
	"Halation/internal/pkg/cron"
	"Halation/internal/pkg/es"
	"Halation/internal/pkg/kafka"
	pkgmongo "Halation/internal/pkg/mongo"
	"Halation/internal/repository"
	"Halation/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	ChatService  service.ChatService
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	engagementRepo := repository.NewEngagementRepo(db)
	blogRepo := repository.NewBlogRepo(db)
	conversationRepo := repository.NewConversationRepo(db)

	messageRepo := pkgmongo.NewMessageRepo(mongoDB)
	notifyBoxRepo := pkgmongo.NewNotifyBoxRepo(mongoDB)

	userESRepo := es.NewUserRepo()
	postESRepo := es.NewPostRepo(es.Client)

	notifyService := service.NewNotifyService(notifyBoxRepo)
	mailService := service.NewMailService()
	followService := service.NewUserFollowService(userFollowRepo, notifyService)
	userService := service.NewUserService(userRepo, followService, mailService)
	postService := service.NewPostService(postRepo, engagementRepo, userRepo)
	feedService := service.NewFeedService(postRepo, followService, postService)
	commentService := service.NewCommentService(commentRepo, postRepo, blogRepo, engagementRepo, userRepo, notifyService)
	engagementService := service.NewEngagementService(engagementRepo, postRepo, commentRepo, blogRepo, notifyService)
	blogService := service.NewBlogService(blogRepo, engagementRepo, userRepo)
	mediaService := service.NewMediaService()
	chatService := service.NewChatService(conversationRepo, messageRepo, userRepo, notifyService)
	searchService := service.NewSearchService(userESRepo, postESRepo)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		UserFollowHandler: handler.NewUserFollowHandler(followService, userService),
		PostHandler:       handler.NewPostHandler(postService, feedService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		EngagementHandler: handler.NewEngagementHandler(engagementService),
		BlogHandler:       handler.NewBlogHandler(blogService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		ChatHandler:       handler.NewChatHandler(chatService),
		WsHandler:         handler.NewWsHandler(),
		NotifyHandler:     handler.NewNotifyHandler(notifyService),
		SearchHandler:     handler.NewSearchHandler(searchService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, userESRepo, postESRepo, userRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewFollowReconcileJob(userRepo, userFollowRepo),
		job.NewEngagementReconcileJob(postRepo, commentRepo, blogRepo, engagementRepo),
		job.NewMonthlyTopJob(postRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		ChatService:  chatService,
	}, nil
}
