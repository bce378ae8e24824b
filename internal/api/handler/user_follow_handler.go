package handler

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/response"
	"Halation/internal/pkg/util"
	"Halation/internal/service"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followService service.UserFollowService
	userService   service.UserService
}

func NewUserFollowHandler(followService service.UserFollowService, userService service.UserService) *UserFollowHandler {
	return &UserFollowHandler{
		followService: followService,
		userService:   userService,
	}
}

// Follow 关注指定用户
func (h *UserFollowHandler) Follow(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	err = h.followService.CreateUserFollow(c.Request.Context(), &model.UserFollow{
		FollowerID:  userID,
		FollowingID: targetID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Unfollow 取消关注
func (h *UserFollowHandler) Unfollow(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	err = h.followService.DeleteUserFollow(c.Request.Context(), &model.UserFollow{
		FollowerID:  userID,
		FollowingID: targetID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFollowers 粉丝列表
func (h *UserFollowHandler) GetFollowers(c *gin.Context) {
	h.followList(c, h.followService.GetUserFollowers, true)
}

// GetFollowing 关注列表
func (h *UserFollowHandler) GetFollowing(c *gin.Context) {
	h.followList(c, h.followService.GetUserFollowing, false)
}

func (h *UserFollowHandler) followList(
	c *gin.Context,
	fetch func(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error),
	isFollowerList bool,
) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = util.ClampPage(page, pageSize)

	follows, err := fetch(c.Request.Context(), userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	hasMore := len(follows) > pageSize
	if hasMore {
		follows = follows[:pageSize]
	}

	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		if isFollowerList {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FollowingID)
		}
	}

	cards, err := h.userService.GetUserCards(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.FollowListDTO{List: cards, HasMore: hasMore})
}
