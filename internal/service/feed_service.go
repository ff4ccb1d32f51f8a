package service

import (
	"context"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
)

// DefaultFeedLimit is the page size used when the caller does not pick one.
const DefaultFeedLimit int64 = 10

// Pagination carries 1-based feed paging parameters.
type Pagination struct {
	Page  int64
	Limit int64
}

// Normalize clamps paging parameters to their defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultFeedLimit
	}
	return p
}

// Skip returns the number of items preceding the requested page.
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// feedStrategy selects the posts and total for one feed variant. The
// FeedService wraps every strategy with the same pagination handling and
// author projection.
type feedStrategy interface {
	selectPosts(ctx context.Context) ([]models.Post, int64, error)
}

// FeedService assembles the four feed variants over the content store and
// the social graph.
type FeedService struct {
	posts   repositories.PostRepository
	users   repositories.UserRepository
	follows repositories.FollowRepository
	tags    repositories.TagRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	tags repositories.TagRepository,
) *FeedService {
	return &FeedService{posts: posts, users: users, follows: follows, tags: tags}
}

// tagFeed matches published posts whose tag list intersects a set. An
// empty set degrades to all published posts on purpose.
type tagFeed struct {
	posts repositories.PostRepository
	tags  []string
	p     Pagination
}

func (f *tagFeed) selectPosts(ctx context.Context) ([]models.Post, int64, error) {
	q := repositories.PostQuery{
		TagsAny: f.tags,
		Sort:    repositories.SortNewest,
	}
	total, err := f.posts.CountPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Skip = f.p.Skip()
	q.Limit = f.p.Limit
	posts, err := f.posts.FindPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// followingFeed matches published posts authored by anyone the caller
// follows. An empty following set yields an empty page, never a fallback
// to global content.
type followingFeed struct {
	posts   repositories.PostRepository
	follows repositories.FollowRepository
	userID  uint
	p       Pagination
}

func (f *followingFeed) selectPosts(ctx context.Context) ([]models.Post, int64, error) {
	ids, err := f.follows.GetFollowingIDs(f.userID)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []models.Post{}, 0, nil
	}

	q := repositories.PostQuery{
		AuthorIDs: ids,
		Sort:      repositories.SortNewest,
	}
	total, err := f.posts.CountPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Skip = f.p.Skip()
	q.Limit = f.p.Limit
	posts, err := f.posts.FindPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// exploreFeed draws a fresh random sample per request. Pages are not
// stable and not guaranteed disjoint; total reflects the whole published
// corpus rather than the sample.
type exploreFeed struct {
	posts repositories.PostRepository
	p     Pagination
}

func (f *exploreFeed) selectPosts(ctx context.Context) ([]models.Post, int64, error) {
	total, err := f.posts.CountPublished(ctx, repositories.PostQuery{})
	if err != nil {
		return nil, 0, err
	}
	posts, err := f.posts.SamplePublished(ctx, f.p.Limit, f.p.Skip())
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// exactTagFeed returns every published post carrying one canonical tag,
// unpaged. Unknown names are NotFound, unlike the OR-matching tag feed.
type exactTagFeed struct {
	posts repositories.PostRepository
	tags  repositories.TagRepository
	name  string
}

func (f *exactTagFeed) selectPosts(ctx context.Context) ([]models.Post, int64, error) {
	canonical := models.NormalizeTag(f.name)
	if canonical == "" {
		return nil, 0, models.NewValidationError("tag name must not be empty")
	}
	tag, err := f.tags.GetTagByName(ctx, canonical)
	if err != nil {
		return nil, 0, err
	}

	posts, err := f.posts.FindPublished(ctx, repositories.PostQuery{
		Tag:  tag.Name,
		Sort: repositories.SortNewest,
	})
	if err != nil {
		return nil, 0, err
	}
	return posts, int64(len(posts)), nil
}

// ForYou returns the personalized tag feed. When the caller supplies no
// override, their stored preferred tags are used; an empty set (either
// way) degrades to all published posts.
func (s *FeedService) ForYou(ctx context.Context, userID uint, override []string, p Pagination) (*models.FeedPage, error) {
	p = p.Normalize()

	tags := override
	if tags == nil && userID > 0 {
		user, err := s.users.GetUserByID(userID)
		if err != nil {
			return nil, err
		}
		tags = user.PreferredTags
	}

	return s.assemble(ctx, &tagFeed{posts: s.posts, tags: dedupeNormalized(tags), p: p}, p.Page)
}

// Following returns the social-graph feed for a user.
func (s *FeedService) Following(ctx context.Context, userID uint, p Pagination) (*models.FeedPage, error) {
	p = p.Normalize()
	return s.assemble(ctx, &followingFeed{posts: s.posts, follows: s.follows, userID: userID, p: p}, p.Page)
}

// Explore returns a best-effort discovery page of random published posts.
func (s *FeedService) Explore(ctx context.Context, p Pagination) (*models.FeedPage, error) {
	p = p.Normalize()
	return s.assemble(ctx, &exploreFeed{posts: s.posts, p: p}, p.Page)
}

// ByTag returns the full, unpaged set of published posts under one tag.
func (s *FeedService) ByTag(ctx context.Context, name string) (*models.FeedPage, error) {
	return s.assemble(ctx, &exactTagFeed{posts: s.posts, tags: s.tags, name: name}, 1)
}

// assemble runs a strategy and applies the shared post-processing: attach
// the author projection to every post and wrap the result in the wire page
// shape.
func (s *FeedService) assemble(ctx context.Context, strategy feedStrategy, page int64) (*models.FeedPage, error) {
	posts, total, err := strategy.selectPosts(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.attachAuthors(posts)
	if err != nil {
		return nil, err
	}

	return &models.FeedPage{Posts: views, Total: total, Page: page}, nil
}

func (s *FeedService) attachAuthors(posts []models.Post) ([]models.PostView, error) {
	idSet := make(map[uint]struct{}, len(posts))
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		if _, ok := idSet[p.AuthorID]; !ok {
			idSet[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}

	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].ToCompact()
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.PostView{Post: p, Author: authors[p.AuthorID]}
	}
	return views, nil
}
