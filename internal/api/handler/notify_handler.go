package handler

import (
	"Halation/internal/pkg/response"
	"Halation/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotifyHandler struct {
	notifyService service.NotifyService
}

func NewNotifyHandler(notifyService service.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService}
}

// GetNotifications 通知列表
func (h *NotifyHandler) GetNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	userID := c.GetUint64("user_id")

	list, err := h.notifyService.GetNotifications(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount 未读数
func (h *NotifyHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	unread, err := h.notifyService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

// MarkRead 标记单条已读
func (h *NotifyHandler) MarkRead(c *gin.Context) {
	var req struct {
		MsgID string `json:"msg_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.notifyService.MarkAsRead(c.Request.Context(), userID, req.MsgID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *NotifyHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := h.notifyService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除单条通知
func (h *NotifyHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := h.notifyService.DeleteNotification(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteAll 清空信箱
func (h *NotifyHandler) DeleteAll(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := h.notifyService.DeleteAllNotifications(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
