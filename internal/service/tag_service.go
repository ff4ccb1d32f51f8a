package service

import (
	"context"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
)

// TagService is the registry for the shared tag vocabulary. It owns
// normalization, de-duplication and the usage counters; nothing else
// writes tag documents.
type TagService struct {
	tags repositories.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tags repositories.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// dedupeNormalized normalizes a batch of names and drops duplicates and
// blanks, preserving first-seen order.
func dedupeNormalized(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := models.NormalizeTag(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// EnsureExists resolves a batch of tag names to canonical tags, bumping
// each tag's usage counter exactly once per batch. Duplicates and synonyms
// inside one call are collapsed before any store access, so a batch of
// three spellings of the same tag counts as one association event.
func (s *TagService) EnsureExists(ctx context.Context, names []string) ([]models.Tag, error) {
	deduped := dedupeNormalized(names)
	if len(deduped) == 0 {
		return nil, models.NewValidationError("at least one non-empty tag name is required")
	}

	tags := make([]models.Tag, 0, len(deduped))
	for _, name := range deduped {
		tag, err := s.tags.UpsertIncrement(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// Rename changes a tag's canonical name. Renaming onto a name another tag
// already owns fails with Conflict and leaves the tag untouched.
func (s *TagService) Rename(ctx context.Context, id, newName string) (*models.Tag, error) {
	name := models.NormalizeTag(newName)
	if name == "" {
		return nil, models.NewValidationError("tag name must not be empty")
	}
	return s.tags.RenameTag(ctx, id, name)
}

// FindByName resolves a (raw) name to its canonical tag.
func (s *TagService) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	canonical := models.NormalizeTag(name)
	if canonical == "" {
		return nil, models.NewValidationError("tag name must not be empty")
	}
	return s.tags.GetTagByName(ctx, canonical)
}

// List returns all tags, most used first.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListTags(ctx)
}

// SetFeatured toggles the featured flag on a tag.
func (s *TagService) SetFeatured(ctx context.Context, id string, featured bool) (*models.Tag, error) {
	return s.tags.SetFeatured(ctx, id, featured)
}

// Remove deletes a tag from the vocabulary. Usage counters elsewhere are
// lifetime totals and are not rewritten.
func (s *TagService) Remove(ctx context.Context, id string) error {
	return s.tags.DeleteTag(ctx, id)
}
