package handler

import (
	"Halation/internal/api/dto"
	"Halation/internal/pkg/response"
	"Halation/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage 发送私信
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetUint64("user_id")

	res, err := h.chatService.SendMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MarkAsRead 标记已读
func (h *ChatHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	err := h.chatService.MarkAsRead(c.Request.Context(), userID, req.ConversationID, req.Sequence)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetChatHistory 拉取历史消息
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	convID, _ := strconv.ParseUint(c.Query("conversation_id"), 10, 64)
	lastSeq, _ := strconv.ParseUint(c.Query("last_seq"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	userID := c.GetUint64("user_id")

	res, err := h.chatService.GetChatHistory(c.Request.Context(), userID, convID, lastSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetConversationList 会话列表
func (h *ChatHandler) GetConversationList(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := h.chatService.GetConversationList(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetTotalUnread 私信未读总数
func (h *ChatHandler) GetTotalUnread(c *gin.Context) {
	userID := c.GetUint64("user_id")
	count, err := h.chatService.GetTotalUnread(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": count})
}
