package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/mongo"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"strconv"
	"time"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetPostComments(ctx context.Context, postID, viewerID uint64, page, pageSize int) (*dto.CommentListDTO, error)
	GetBlogComments(ctx context.Context, blogID, viewerID uint64, page, pageSize int) (*dto.CommentListDTO, error)
	DeleteComment(ctx context.Context, commentID, userID uint64) error
}

type CommentServiceImpl struct {
	commentRepo    repository.CommentRepo
	postRepo       repository.PostRepo
	blogRepo       repository.BlogRepo
	engagementRepo repository.EngagementRepo
	userRepo       repository.UserRepo
	notifyService  NotifyService
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	blogRepo repository.BlogRepo,
	engagementRepo repository.EngagementRepo,
	userRepo repository.UserRepo,
	notifyService NotifyService,
) CommentService {
	return &CommentServiceImpl{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		blogRepo:       blogRepo,
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		notifyService:  notifyService,
	}
}

// CreateComment 发布评论。目标是作品或随笔二选一，父评论必须属于同一目标
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if (req.PostID == 0) == (req.BlogID == 0) {
		return nil, ErrCommentTargetMissing
	}

	var (
		entityAuthor uint64
		notifyType   int8
		targetID     uint64
	)
	switch {
	case req.PostID != 0:
		post, err := s.postRepo.GetPost(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		entityAuthor = post.UserID
		notifyType = mongo.NotifyTypePostComment
		targetID = req.PostID
	default:
		blog, err := s.blogRepo.GetBlog(ctx, req.BlogID)
		if err != nil {
			return nil, err
		}
		if blog == nil {
			return nil, ErrBlogNotFound
		}
		entityAuthor = blog.UserID
		notifyType = mongo.NotifyTypeBlogComment
		targetID = req.BlogID
	}

	notifyReceiver := entityAuthor
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCommentParentMissing
		}
		if !sameCommentTarget(parent, req.PostID, req.BlogID) {
			return nil, ErrCommentParentMismatch
		}
		notifyReceiver = parent.UserID
	}

	comment := &model.Comment{
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if req.PostID != 0 {
		comment.PostID = &req.PostID
	} else {
		comment.BlogID = &req.BlogID
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateCommentCount(ctx, comment)

	if s.notifyService != nil {
		_ = s.notifyService.Notify(ctx, &mongo.NotifyModel{
			ReceiverID: notifyReceiver,
			SenderID:   userID,
			Type:       notifyType,
			TargetID:   targetID,
			Content:    req.Content,
		})
	}

	comment.User, _ = s.userRepo.GetUserById(ctx, userID)
	return s.buildCommentDTO(ctx, comment, userID), nil
}

// GetPostComments 作品评论列表，按发布时间正序
func (s *CommentServiceImpl) GetPostComments(ctx context.Context, postID, viewerID uint64, page, pageSize int) (*dto.CommentListDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildCommentList(ctx, comments, viewerID, pageSize), nil
}

// GetBlogComments 随笔评论列表，同一套正序分页
func (s *CommentServiceImpl) GetBlogComments(ctx context.Context, blogID, viewerID uint64, page, pageSize int) (*dto.CommentListDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)

	blog, err := s.blogRepo.GetBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	comments, err := s.commentRepo.GetCommentsByBlogID(ctx, blogID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildCommentList(ctx, comments, viewerID, pageSize), nil
}

// DeleteComment 评论作者或所属实体作者可删
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, commentID, userID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.UserID != userID {
		entityAuthor, err := s.commentEntityAuthor(ctx, comment)
		if err != nil {
			return err
		}
		if entityAuthor != userID {
			return UnauthorizedError
		}
	}

	removed, err := s.commentRepo.DeleteComment(ctx, commentID)
	if err != nil {
		return err
	}
	if removed {
		s.invalidateCommentCount(ctx, comment)
		_ = redis.DeleteKey(ctx, consts.CommentLikeKey+strconv.FormatUint(commentID, 10))
	}
	return nil
}

func (s *CommentServiceImpl) commentEntityAuthor(ctx context.Context, comment *model.Comment) (uint64, error) {
	if comment.PostID != nil {
		post, err := s.postRepo.GetPost(ctx, *comment.PostID)
		if err != nil {
			return 0, err
		}
		if post == nil {
			return 0, nil
		}
		return post.UserID, nil
	}
	if comment.BlogID != nil {
		blog, err := s.blogRepo.GetBlog(ctx, *comment.BlogID)
		if err != nil {
			return 0, err
		}
		if blog == nil {
			return 0, nil
		}
		return blog.UserID, nil
	}
	return 0, nil
}

func (s *CommentServiceImpl) invalidateCommentCount(ctx context.Context, comment *model.Comment) {
	if comment.PostID != nil {
		_ = redis.DeleteKey(ctx, consts.PostCommentKey+strconv.FormatUint(*comment.PostID, 10))
	}
	if comment.BlogID != nil {
		_ = redis.DeleteKey(ctx, consts.BlogCommentKey+strconv.FormatUint(*comment.BlogID, 10))
	}
}

func (s *CommentServiceImpl) buildCommentList(ctx context.Context, comments []*model.Comment, viewerID uint64, pageSize int) *dto.CommentListDTO {
	hasMore := len(comments) > pageSize
	if hasMore {
		comments = comments[:pageSize]
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		list = append(list, s.buildCommentDTO(ctx, comment, viewerID))
	}
	return &dto.CommentListDTO{List: list, HasMore: hasMore}
}

func (s *CommentServiceImpl) buildCommentDTO(ctx context.Context, comment *model.Comment, viewerID uint64) *dto.CommentDTO {
	out := &dto.CommentDTO{
		ID:        comment.ID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		LikeCount: int64(comment.LikeCount),
		CreatedAt: comment.CreatedAt.Format(time.DateTime),
		UserID:    comment.UserID,
	}
	if comment.PostID != nil {
		out.PostID = *comment.PostID
	}
	if comment.BlogID != nil {
		out.BlogID = *comment.BlogID
	}

	idStr := strconv.FormatUint(comment.ID, 10)
	if val, hit, err := redis.GetInt64(ctx, consts.CommentLikeKey+idStr); err == nil && hit {
		out.LikeCount = val
	}

	if comment.User != nil {
		out.Nickname = comment.User.Nickname
		out.AvatarURL = comment.User.AvatarURL
	}

	if viewerID != 0 {
		out.IsLiked, _ = s.engagementRepo.CheckLikeExists(ctx, viewerID, model.LikeTarget{Kind: model.LikeTargetComment, ID: comment.ID})
	}
	return out
}

// sameCommentTarget 父评论必须与回复挂在同一篇作品或随笔上
func sameCommentTarget(parent *model.Comment, postID, blogID uint64) bool {
	if postID != 0 {
		return parent.PostID != nil && *parent.PostID == postID
	}
	return parent.BlogID != nil && *parent.BlogID == blogID
}
