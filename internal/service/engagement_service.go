package service

import (
	"context"
	"errors"
	"strings"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementService owns like/unlike state and the threaded comment model,
// including the reply-count invariant on parent comments.
type EngagementService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(posts repositories.PostRepository, comments repositories.CommentRepository) *EngagementService {
	return &EngagementService{posts: posts, comments: comments}
}

// LikePost adds the caller to a post's like set. Liking a post twice is a
// no-op, not an error; the post's current state is returned either way.
func (s *EngagementService) LikePost(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	return s.posts.AddLike(ctx, postID, userID)
}

// UnlikePost removes the caller from a post's like set. Unliking a post
// the caller never liked is a no-op.
func (s *EngagementService) UnlikePost(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	return s.posts.RemoveLike(ctx, postID, userID)
}

// LikeComment adds the caller to a comment's like set. Unlike post likes,
// a repeat like is rejected with InvalidState.
func (s *EngagementService) LikeComment(ctx context.Context, commentID string, userID uint) error {
	modified, err := s.comments.AddLike(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !modified {
		return models.NewInvalidStateError("comment already liked")
	}
	return nil
}

// UnlikeComment removes the caller from a comment's like set, rejecting
// the call with InvalidState when the caller had not liked it.
func (s *EngagementService) UnlikeComment(ctx context.Context, commentID string, userID uint) error {
	modified, err := s.comments.RemoveLike(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !modified {
		return models.NewInvalidStateError("comment not liked")
	}
	return nil
}

// CreateCommentInput carries the fields for a new comment or reply.
type CreateCommentInput struct {
	PostID   string
	AuthorID uint
	Content  string
	ParentID string // empty for a top-level comment
}

// CreateComment creates a comment, optionally as a reply. A reply's
// insertion and the parent's reply-count bump are one logical operation:
// if the bump cannot be applied the comment is removed again and the call
// fails. Both writes run on a cancel-shielded context so a caller abort
// cannot leave the counter and the comment disagreeing.
func (s *EngagementService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("comment content must not be empty")
	}

	post, err := s.posts.GetPostByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	var parentID *primitive.ObjectID
	if in.ParentID != "" {
		parent, err := s.comments.GetCommentByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
		id := parent.ID
		parentID = &id
	}

	comment := &models.Comment{
		PostID:   post.ID,
		ParentID: parentID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := s.comments.CreateComment(writeCtx, comment); err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := s.comments.IncrementReplyCount(writeCtx, parentID.Hex(), 1); err != nil {
			// keep the reply-count invariant: take the reply back out
			_ = s.comments.DeleteComment(writeCtx, comment.ID.Hex())
			return nil, err
		}
	}
	return comment, nil
}

// UpdateComment replaces a comment's content. Only the original author may
// edit.
func (s *EngagementService) UpdateComment(ctx context.Context, commentID string, callerID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("comment content must not be empty")
	}

	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, models.NewForbiddenError("only the comment author may edit it")
	}

	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

// DeleteComment removes a comment. Only the original author may delete.
// Deleting a reply decrements the parent's reply counter; deleting a
// parent leaves its replies in place, orphaned.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID string, callerID uint) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return models.NewForbiddenError("only the comment author may delete it")
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := s.comments.DeleteComment(writeCtx, commentID); err != nil {
		return err
	}

	if comment.ParentID != nil {
		err := s.comments.IncrementReplyCount(writeCtx, comment.ParentID.Hex(), -1)
		if err != nil {
			// A missing parent means this was already an orphaned reply.
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return nil
			}
			return err
		}
	}
	return nil
}

// ListComments returns every comment on a post, oldest first.
func (s *EngagementService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByPostID(ctx, postID)
}
