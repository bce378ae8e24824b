package handler

import (
	"Halation/internal/model"
	"Halation/internal/pkg/response"
	"Halation/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// LikePost 点赞作品
func (h *EngagementHandler) LikePost(c *gin.Context) {
	h.like(c, model.LikeTargetPost)
}

// UnlikePost 取消点赞作品
func (h *EngagementHandler) UnlikePost(c *gin.Context) {
	h.unlike(c, model.LikeTargetPost)
}

// LikeComment 点赞评论
func (h *EngagementHandler) LikeComment(c *gin.Context) {
	h.like(c, model.LikeTargetComment)
}

// UnlikeComment 取消点赞评论
func (h *EngagementHandler) UnlikeComment(c *gin.Context) {
	h.unlike(c, model.LikeTargetComment)
}

// LikeBlog 点赞博客
func (h *EngagementHandler) LikeBlog(c *gin.Context) {
	h.like(c, model.LikeTargetBlog)
}

// UnlikeBlog 取消点赞博客
func (h *EngagementHandler) UnlikeBlog(c *gin.Context) {
	h.unlike(c, model.LikeTargetBlog)
}

// VotePost 每月最佳投票
func (h *EngagementHandler) VotePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = h.engagementService.VotePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RevokeVote 撤销投票
func (h *EngagementHandler) RevokeVote(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = h.engagementService.RevokeVote(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *EngagementHandler) like(c *gin.Context, kind model.LikeTargetKind) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	err = h.engagementService.Like(c.Request.Context(), userID, model.LikeTarget{Kind: kind, ID: targetID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *EngagementHandler) unlike(c *gin.Context, kind model.LikeTargetKind) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	err = h.engagementService.Unlike(c.Request.Context(), userID, model.LikeTarget{Kind: kind, ID: targetID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
