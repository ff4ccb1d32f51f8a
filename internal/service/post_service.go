package service

import (
	"context"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/storage"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// PostService owns post lifecycle: creation, owner-only edits, the slug
// invariant, tag association and image cleanup.
type PostService struct {
	posts repositories.PostRepository
	tags  *TagService
	blobs storage.BlobStore
	log   zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, tags *TagService, blobs storage.BlobStore, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, tags: tags, blobs: blobs, log: log}
}

// registerTags runs the submitted names through the registry (one
// association event per canonical tag) and returns the canonical list that
// gets stored on the post.
func (s *PostService) registerTags(ctx context.Context, names []string) ([]string, error) {
	tags, err := s.tags.EnsureExists(ctx, names)
	if err != nil {
		return nil, err
	}
	canonical := make([]string, len(tags))
	for i, t := range tags {
		canonical[i] = t.Name
	}
	return canonical, nil
}

// CreatePost creates a post for the author. The slug is derived from the
// title; tag names are normalized and counted as association events.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	slug := models.Slugify(req.Title)
	if slug == "" {
		return nil, models.NewValidationError("title must contain at least one alphanumeric character")
	}

	tags := []string{}
	if len(req.Tags) > 0 {
		var err error
		if tags, err = s.registerTags(ctx, req.Tags); err != nil {
			return nil, err
		}
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &models.Post{
		AuthorID:    authorID,
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		ContentHTML: req.ContentHTML,
		Tags:        tags,
		Published:   published,
		ImageURLs:   req.ImageURLs,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a post and bumps its view counter. The bump is a
// store-side atomic increment; a failed bump does not fail the read.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncrementViews(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("post_id", id).Msg("failed to increment view count")
	}
	return post, nil
}

// UpdatePost applies an owner-only edit. A title change recomputes the
// slug; a tag change re-registers the submitted set (usage counters are
// lifetime totals and only go up); removed images are deleted from the
// blob store best-effort.
func (s *PostService) UpdatePost(ctx context.Context, id string, callerID uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.NewForbiddenError("only the post author may edit it")
	}

	patch := bson.M{}
	if req.Title != "" && req.Title != post.Title {
		slug := models.Slugify(req.Title)
		if slug == "" {
			return nil, models.NewValidationError("title must contain at least one alphanumeric character")
		}
		patch["title"] = req.Title
		patch["slug"] = slug
	}
	if req.Content != nil {
		patch["content"] = req.Content
	}
	if req.ContentHTML != "" {
		patch["content_html"] = req.ContentHTML
	}
	if req.Published != nil {
		patch["published"] = *req.Published
	}
	if req.Tags != nil {
		tags, err := s.registerTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		patch["tags"] = tags
	}
	if req.ImageURLs != nil {
		patch["image_urls"] = req.ImageURLs
		s.cleanupImages(ctx, post.ImageURLs, req.ImageURLs)
	}

	if len(patch) == 0 {
		return post, nil
	}
	if err := s.posts.UpdatePost(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.posts.GetPostByID(ctx, id)
}

// DeletePost removes a post, owner-only. Comments referencing it are left
// alone; its images are cleaned up best-effort.
func (s *PostService) DeletePost(ctx context.Context, id string, callerID uint) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return models.NewForbiddenError("only the post author may delete it")
	}

	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.cleanupImages(ctx, post.ImageURLs, nil)
	return nil
}

// cleanupImages deletes blobs present in old but not in updated. Failures
// are logged and suppressed: losing a stale asset must not fail the edit
// that replaced it.
func (s *PostService) cleanupImages(ctx context.Context, old, updated []string) {
	if s.blobs == nil {
		return
	}
	keep := make(map[string]struct{}, len(updated))
	for _, url := range updated {
		keep[url] = struct{}{}
	}
	for _, url := range old {
		if _, ok := keep[url]; ok {
			continue
		}
		if _, err := s.blobs.DeleteByURL(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("failed to delete replaced image")
		}
	}
}

// ListPublished lists published posts for the set-based endpoint, with an
// optional single-tag filter and newest/oldest/popular ordering.
func (s *PostService) ListPublished(ctx context.Context, sort repositories.PostSort, tagFilter string, p Pagination) ([]models.Post, int64, error) {
	p = p.Normalize()

	q := repositories.PostQuery{
		Tag:  models.NormalizeTag(tagFilter),
		Sort: sort,
	}
	total, err := s.posts.CountPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Skip = p.Skip()
	q.Limit = p.Limit
	posts, err := s.posts.FindPublished(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor lists every post by one author, drafts included.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.posts.GetPostsByAuthorID(ctx, authorID)
}
