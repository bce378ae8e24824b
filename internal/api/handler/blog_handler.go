package handler

import (
	"Halation/internal/api/dto"
	"Halation/internal/pkg/response"
	"Halation/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// Create 发布博客
func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.BlogCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	res, err := h.blogService.CreateBlog(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Get 博客详情
func (h *BlogHandler) Get(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")

	res, err := h.blogService.GetBlog(c.Request.Context(), blogID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// List 全站博客瀑布流
func (h *BlogHandler) List(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := h.blogService.GetBlogs(c.Request.Context(), viewerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetUserBlogs 某用户的博客列表
func (h *BlogHandler) GetUserBlogs(c *gin.Context) {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := h.blogService.GetUserBlogs(c.Request.Context(), authorID, viewerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Update 修改自己的博客
func (h *BlogHandler) Update(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.BlogUpdateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = h.blogService.UpdateBlog(c.Request.Context(), blogID, userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除自己的博客
func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = h.blogService.DeleteBlog(c.Request.Context(), blogID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
