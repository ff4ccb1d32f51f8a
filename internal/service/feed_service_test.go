package service

import (
	"context"
	"testing"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newFeedService(posts *postRepoStub, users *userRepoStub, follows *followRepoStub, tags *tagRepoStub) *FeedService {
	if posts == nil {
		posts = noopPostRepo()
	}
	if users == nil {
		users = noopUserRepo()
	}
	if follows == nil {
		follows = noopFollowRepo()
	}
	if tags == nil {
		tags = noopTagRepo()
	}
	return NewFeedService(posts, users, follows, tags)
}

func TestFeedService_ForYou_UsesStoredPreference(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(id uint) (*models.User, error) {
		return &models.User{ID: id, PreferredTags: []string{"Go", "databases"}}, nil
	}

	posts := noopPostRepo()
	var gotQuery repositories.PostQuery
	posts.findFn = func(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
		gotQuery = q
		return []models.Post{}, nil
	}

	svc := newFeedService(posts, users, nil, nil)
	_, err := svc.ForYou(context.Background(), 7, nil, Pagination{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "databases"}, gotQuery.TagsAny)
	assert.Equal(t, int64(5), gotQuery.Skip)
	assert.Equal(t, int64(5), gotQuery.Limit)
	assert.Equal(t, repositories.SortNewest, gotQuery.Sort)
}

func TestFeedService_ForYou_OverrideWinsOverPreference(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(id uint) (*models.User, error) {
		t.Fatal("stored preference must not be consulted when an override is given")
		return nil, nil
	}

	posts := noopPostRepo()
	var gotQuery repositories.PostQuery
	posts.findFn = func(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
		gotQuery = q
		return []models.Post{}, nil
	}

	svc := newFeedService(posts, users, nil, nil)
	_, err := svc.ForYou(context.Background(), 7, []string{"Rust", "rust "}, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, gotQuery.TagsAny)
}

func TestFeedService_ForYou_EmptyTagSetMatchesAllPublished(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(id uint) (*models.User, error) {
		return &models.User{ID: id, PreferredTags: nil}, nil
	}

	posts := noopPostRepo()
	var findQuery, countQuery repositories.PostQuery
	posts.findFn = func(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
		findQuery = q
		return []models.Post{}, nil
	}
	posts.countFn = func(_ context.Context, q repositories.PostQuery) (int64, error) {
		countQuery = q
		return 42, nil
	}

	svc := newFeedService(posts, users, nil, nil)
	page, err := svc.ForYou(context.Background(), 7, nil, Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)

	// no tag filter applied: the feed degrades to all published posts
	assert.Empty(t, findQuery.TagsAny)
	assert.Empty(t, countQuery.TagsAny)
	assert.Equal(t, int64(42), page.Total)
}

func TestFeedService_Following_EmptySetReturnsEmptyPage(t *testing.T) {
	t.Parallel()

	follows := noopFollowRepo()
	follows.getFollowingIDsFn = func(_ uint) ([]uint, error) { return []uint{}, nil }

	posts := noopPostRepo()
	posts.findFn = func(_ context.Context, _ repositories.PostQuery) ([]models.Post, error) {
		t.Fatal("no store query may run for an empty following set")
		return nil, nil
	}
	posts.countFn = func(_ context.Context, _ repositories.PostQuery) (int64, error) {
		t.Fatal("no store query may run for an empty following set")
		return 0, nil
	}

	svc := newFeedService(posts, nil, follows, nil)
	page, err := svc.Following(context.Background(), 7, Pagination{Page: 3})
	require.NoError(t, err)

	assert.Empty(t, page.Posts)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, int64(3), page.Page)
}

func TestFeedService_Following_FiltersByAuthors(t *testing.T) {
	t.Parallel()

	follows := noopFollowRepo()
	follows.getFollowingIDsFn = func(_ uint) ([]uint, error) { return []uint{2, 3}, nil }

	posts := noopPostRepo()
	var gotQuery repositories.PostQuery
	posts.findFn = func(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
		gotQuery = q
		return []models.Post{}, nil
	}

	svc := newFeedService(posts, nil, follows, nil)
	_, err := svc.Following(context.Background(), 7, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, gotQuery.AuthorIDs)
	assert.Equal(t, repositories.SortNewest, gotQuery.Sort)
}

func TestFeedService_Explore_TotalIsCorpusCount(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.countFn = func(_ context.Context, q repositories.PostQuery) (int64, error) {
		assert.Empty(t, q.TagsAny)
		assert.Nil(t, q.AuthorIDs)
		return 20, nil
	}
	var sampleSize, sampleSkip int64
	posts.sampleFn = func(_ context.Context, size, skip int64) ([]models.Post, error) {
		sampleSize = size
		sampleSkip = skip
		return make([]models.Post, 5), nil
	}

	svc := newFeedService(posts, nil, nil, nil)
	page, err := svc.Explore(context.Background(), Pagination{Page: 1, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(20), page.Total)
	assert.Equal(t, int64(5), sampleSize)
	assert.Equal(t, int64(0), sampleSkip)
}

func TestFeedService_Explore_IndependentDrawPerRequest(t *testing.T) {
	t.Parallel()

	draws := 0
	posts := noopPostRepo()
	posts.countFn = func(_ context.Context, _ repositories.PostQuery) (int64, error) { return 20, nil }
	posts.sampleFn = func(_ context.Context, size, _ int64) ([]models.Post, error) {
		draws++
		// each request re-samples; two calls for the same page may differ
		out := make([]models.Post, size)
		for i := range out {
			out[i] = models.Post{ID: primitive.NewObjectID()}
		}
		return out, nil
	}

	svc := newFeedService(posts, nil, nil, nil)
	ctx := context.Background()
	first, err := svc.Explore(ctx, Pagination{Page: 1, Limit: 5})
	require.NoError(t, err)
	second, err := svc.Explore(ctx, Pagination{Page: 1, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, draws)
	assert.Equal(t, first.Total, second.Total)
}

func TestFeedService_ByTag_UnknownName(t *testing.T) {
	t.Parallel()

	tags := noopTagRepo()
	tags.getByNameFn = func(_ context.Context, name string) (*models.Tag, error) {
		return nil, models.NewNotFoundError("tag", name)
	}

	svc := newFeedService(nil, nil, nil, tags)
	_, err := svc.ByTag(context.Background(), "nonexistent")
	assertAppErrCode(t, err, models.CodeNotFound)
}

func TestFeedService_ByTag_Unpaged(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	var gotQuery repositories.PostQuery
	posts.findFn = func(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
		gotQuery = q
		return make([]models.Post, 13), nil
	}

	svc := newFeedService(posts, nil, nil, nil)
	page, err := svc.ByTag(context.Background(), " Go ")
	require.NoError(t, err)

	assert.Equal(t, "go", gotQuery.Tag)
	assert.Zero(t, gotQuery.Limit, "exact-tag feed returns the full matching set")
	assert.Equal(t, int64(13), page.Total)
	assert.Equal(t, int64(1), page.Page)
	assert.Len(t, page.Posts, 13)
}

func TestFeedService_AttachesAuthorProjection(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.findFn = func(_ context.Context, _ repositories.PostQuery) ([]models.Post, error) {
		return []models.Post{
			{ID: primitive.NewObjectID(), AuthorID: 1},
			{ID: primitive.NewObjectID(), AuthorID: 2},
			{ID: primitive.NewObjectID(), AuthorID: 1},
		}, nil
	}

	users := noopUserRepo()
	var requested []uint
	users.getByIDsFn = func(ids []uint) ([]models.User, error) {
		requested = ids
		return []models.User{
			{ID: 1, DisplayName: "Ada", Handle: "ada", AvatarURL: "https://cdn.example/a.png", Email: "ada@example.com"},
			{ID: 2, DisplayName: "Brin", Handle: "brin"},
		}, nil
	}

	svc := newFeedService(posts, users, nil, nil)
	page, err := svc.ForYou(context.Background(), 0, []string{"go"}, Pagination{})
	require.NoError(t, err)

	// authors are fetched once per distinct id
	assert.ElementsMatch(t, []uint{1, 2}, requested)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, "ada", page.Posts[0].Author.Handle)
	assert.Equal(t, "brin", page.Posts[1].Author.Handle)
	assert.Equal(t, "Ada", page.Posts[2].Author.DisplayName)
}

func TestPagination_Normalize(t *testing.T) {
	t.Parallel()

	p := Pagination{}.Normalize()
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, DefaultFeedLimit, p.Limit)
	assert.Equal(t, int64(0), p.Skip())

	p = Pagination{Page: 4, Limit: 25}.Normalize()
	assert.Equal(t, int64(75), p.Skip())
}
