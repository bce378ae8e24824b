package es

import (
	"Halation/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type PostRepo interface {
	SearchPosts(ctx context.Context, queryText string, from, size int) ([]*PostES, error)
	GetLatestPostsByCursor(ctx context.Context, lastSortValues []interface{}, size int) ([]*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
	UpdatePostUserDetail(ctx context.Context, userID uint64, newNickname string, newAvatar string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPosts 文本检索：说明文案权重最高，其次是器材字段
func (s *PostRepoImpl) SearchPosts(ctx context.Context, queryText string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"status": {Value: consts.PostStatusNormal}}},
				},
				Must: []types.Query{
					{MultiMatch: &types.MultiMatchQuery{
						Query:  queryText,
						Fields: []string{"caption^3", "camera", "lens", "film_stock"},
					}},
				},
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

// GetLatestPostsByCursor 以 SearchAfter 游标拉取最新帖子
func (s *PostRepoImpl) GetLatestPostsByCursor(ctx context.Context, lastSortValues []interface{}, size int) ([]*PostES, error) {
	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"status": {Value: consts.PostStatusNormal},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		Size(size)

	// 注入游标
	if len(lastSortValues) > 0 {
		searchAfterValues := make([]types.FieldValue, len(lastSortValues))
		for i, v := range lastSortValues {
			searchAfterValues[i] = v
		}
		req.SearchAfter(searchAfterValues...)
	}

	return s.executeSearch(ctx, req)
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)
	_, err := s.client.Delete(PostIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				log.Warn("Post already deleted or not found in ES", "id", id)
				return nil
			}
		}
		return err
	}
	return nil
}

// UpdatePostUserDetail 作者资料变更后批量刷新帖子文档中的冗余字段
func (s *PostRepoImpl) UpdatePostUserDetail(ctx context.Context, userID uint64, newNickname string, newAvatar string) error {
	nicknameJSON, _ := json.Marshal(newNickname)
	avatarJSON, _ := json.Marshal(newAvatar)

	params := map[string]json.RawMessage{
		"new_nickname": nicknameJSON,
		"new_avatar":   avatarJSON,
	}

	scriptSource := "ctx._source.user_nickname = params.new_nickname; ctx._source.user_avatar = params.new_avatar;"

	req := s.client.UpdateByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"user_id": {Value: userID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		}).
		Conflicts(conflicts.Proceed)

	resp, err := req.Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: update user detail failed: %w", err)
	}

	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: update user detail has failures, count: %d", len(resp.Failures))
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var post PostES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			post.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				post.Sort[i] = v
			}
		}
		results = append(results, &post)
	}
	return results, nil
}
