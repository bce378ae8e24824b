package api

import (
	"Halation/internal/api/middleware"
	"Halation/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/password/forgot", group.UserHandler.ForgotPassword)
			userGroup.PUT("/password/reset", group.UserHandler.ResetPassword)

			authOptGroup := userGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:id/profile", group.UserHandler.GetProfile)
				authOptGroup.GET("/handle/:username", group.UserHandler.GetProfileByUsername)
				authOptGroup.GET("/:id/posts", group.PostHandler.GetUserPosts)
				authOptGroup.GET("/:id/blogs", group.BlogHandler.GetUserBlogs)
				authOptGroup.GET("/:id/followers", group.UserFollowHandler.GetFollowers)
				authOptGroup.GET("/:id/following", group.UserFollowHandler.GetFollowing)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/profile", group.UserHandler.GetMyProfile)
				authGroup.PUT("/profile", group.UserHandler.UpdateProfile)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.POST("/:id/follow", group.UserFollowHandler.Follow)
				authGroup.DELETE("/:id/follow", group.UserFollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/latest", group.SearchHandler.LatestPosts)
				authOptGroup.GET("/top/monthly", group.PostHandler.MonthlyTop)
				authOptGroup.GET("/:id", group.PostHandler.Get)
				authOptGroup.GET("/:id/surrounding", group.PostHandler.Surrounding)
				authOptGroup.GET("/:id/comments", group.CommentHandler.List)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.Create)
				authGroup.PUT("/:id", group.PostHandler.Update)
				authGroup.DELETE("/:id", group.PostHandler.Delete)
				authGroup.GET("/feed", group.PostHandler.Feed)

				authGroup.POST("/:id/like", group.EngagementHandler.LikePost)
				authGroup.DELETE("/:id/like", group.EngagementHandler.UnlikePost)
				authGroup.POST("/:id/vote", group.EngagementHandler.VotePost)
				authGroup.DELETE("/:id/vote", group.EngagementHandler.RevokeVote)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.POST("", group.CommentHandler.Create)
			commentGroup.DELETE("/:id", group.CommentHandler.Delete)
			commentGroup.POST("/:id/like", group.EngagementHandler.LikeComment)
			commentGroup.DELETE("/:id/like", group.EngagementHandler.UnlikeComment)
		}

		blogGroup := apiGroup.Group("/blogs")
		{
			authOptGroup := blogGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.BlogHandler.List)
				authOptGroup.GET("/:id", group.BlogHandler.Get)
				authOptGroup.GET("/:id/comments", group.CommentHandler.ListForBlog)
			}

			authGroup := blogGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.BlogHandler.Create)
				authGroup.PUT("/:id", group.BlogHandler.Update)
				authGroup.DELETE("/:id", group.BlogHandler.Delete)
				authGroup.POST("/:id/like", group.EngagementHandler.LikeBlog)
				authGroup.DELETE("/:id/like", group.EngagementHandler.UnlikeBlog)
			}
		}

		searchGroup := apiGroup.Group("/search")
		{
			searchGroup.GET("/users", group.SearchHandler.SearchUsers)
			searchGroup.GET("/posts", group.SearchHandler.SearchPosts)
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WsHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.ChatHandler.SendMessage)
				authGroup.GET("/history", group.ChatHandler.GetChatHistory)
				authGroup.GET("/list", group.ChatHandler.GetConversationList)
				authGroup.GET("/unread", group.ChatHandler.GetTotalUnread)
				authGroup.POST("/read", group.ChatHandler.MarkAsRead)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("/list", group.NotifyHandler.GetNotifications)
			notifyGroup.GET("/unread", group.NotifyHandler.GetUnreadCount)
			notifyGroup.POST("/read", group.NotifyHandler.MarkRead)
			notifyGroup.POST("/read/all", group.NotifyHandler.MarkAllRead)
			notifyGroup.DELETE("/:id", group.NotifyHandler.Delete)
			notifyGroup.DELETE("", group.NotifyHandler.DeleteAll)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
