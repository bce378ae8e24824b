package api

import "Halation/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	PostHandler       *handler.PostHandler
	CommentHandler    *handler.CommentHandler
	EngagementHandler *handler.EngagementHandler
	BlogHandler       *handler.BlogHandler
	MediaHandler      *handler.MediaHandler
	ChatHandler       *handler.ChatHandler
	WsHandler         *handler.WsHandler
	NotifyHandler     *handler.NotifyHandler
	SearchHandler     *handler.SearchHandler
}
