package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/pkg/es"
	"Halation/internal/pkg/util"
	"context"
	"time"
)

type SearchService interface {
	SearchUsers(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchUserListDTO, error)
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchPostListDTO, error)
	GetLatestPosts(ctx context.Context, cursor string, pageSize int) (*dto.SearchPostListDTO, error)
}

type SearchServiceImpl struct {
	userESRepo es.UserRepo
	postESRepo es.PostRepo
}

func NewSearchService(userESRepo es.UserRepo, postESRepo es.PostRepo) SearchService {
	return &SearchServiceImpl{
		userESRepo: userESRepo,
		postESRepo: postESRepo,
	}
}

func (s *SearchServiceImpl) SearchUsers(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchUserListDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	if (page-1)*pageSize >= es.MaxSearchDepth {
		return &dto.SearchUserListDTO{List: []*dto.UserCardDTO{}}, nil
	}

	users, err := s.userESRepo.SearchUsers(ctx, keyword, (page-1)*pageSize, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(users) > pageSize
	if hasMore {
		users = users[:pageSize]
	}

	list := make([]*dto.UserCardDTO, 0, len(users))
	for _, u := range users {
		list = append(list, &dto.UserCardDTO{
			UserID:    u.ID,
			Username:  u.Username,
			Nickname:  u.Nickname,
			AvatarURL: u.AvatarURL,
			Bio:       u.Bio,
		})
	}
	return &dto.SearchUserListDTO{List: list, HasMore: hasMore}, nil
}

func (s *SearchServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchPostListDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	if (page-1)*pageSize >= es.MaxSearchDepth {
		return &dto.SearchPostListDTO{List: []*dto.PostDTO{}}, nil
	}

	posts, err := s.postESRepo.SearchPosts(ctx, keyword, (page-1)*pageSize, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}
	return &dto.SearchPostListDTO{List: s.toPostDTOs(posts), HasMore: hasMore}, nil
}

// GetLatestPosts 最新作品流，search_after 游标翻页
func (s *SearchServiceImpl) GetLatestPosts(ctx context.Context, cursor string, pageSize int) (*dto.SearchPostListDTO, error) {
	_, pageSize = util.ClampPage(1, pageSize)

	lastSortValues, err := util.DecodeCursor(cursor)
	if err != nil {
		return nil, ErrParamInvalid
	}

	posts, err := s.postESRepo.GetLatestPostsByCursor(ctx, lastSortValues, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	nextCursor := ""
	if hasMore && len(posts) > 0 {
		nextCursor = util.EncodeCursor(posts[len(posts)-1].Sort)
	}
	return &dto.SearchPostListDTO{List: s.toPostDTOs(posts), HasMore: hasMore, Cursor: nextCursor}, nil
}

// toPostDTOs 搜索结果直接以索引里的冗余字段组装，不回源 MySQL
func (s *SearchServiceImpl) toPostDTOs(posts []*es.PostES) []*dto.PostDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, &dto.PostDTO{
			ID:           p.ID,
			Caption:      p.Caption,
			ThumbnailURL: p.ThumbnailURL,
			Lens:         p.Lens,
			FilmStock:    p.FilmStock,
			Camera:       p.Camera,
			LikeCount:    int64(p.LikeCount),
			VoteCount:    int64(p.VoteCount),
			CommentCount: int64(p.CommentCount),
			CreatedAt:    p.CreatedAt.Format(time.DateTime),
			UpdatedAt:    p.UpdatedAt.Format(time.DateTime),
			UserID:       p.UserID,
			Nickname:     p.UserNickname,
			AvatarURL:    p.UserAvatar,
		})
	}
	return list
}
