package service

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
)

// CommentService owns the comment lifecycle and keeps the parent post's
// commentsCount in step by adjusting it exactly once per create/delete.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, userRepo: userRepo}
}

type CreateCommentInput struct {
	PostID   uint
	AuthorID uint
	Content  string
}

func (s *CommentService) AddComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewInvalidRequestError("content is required")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, notFoundOr(err, "post")
	}
	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	comment := &models.Comment{
		PostID:      in.PostID,
		AuthorID:    &author.ID,
		Content:     in.Content,
		CommentDate: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.postRepo.AdjustCommentsCount(ctx, in.PostID, +1); err != nil {
		return nil, err
	}
	comment.AuthorNickname = author.Nickname
	comment.AuthorProfile = author.Profile
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, "post")
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	authors := newAuthorDirectory(s.userRepo)
	for _, comment := range comments {
		if err := authors.decorateComment(ctx, comment); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// GetComment resolves a comment under its post; a valid comment id
// addressed through the wrong post is a miss, not a hit.
func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, postID, commentID)
	if err != nil {
		return nil, notFoundOr(err, "comment")
	}
	authors := newAuthorDirectory(s.userRepo)
	if err := authors.decorateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

type UpdateCommentInput struct {
	PostID    uint
	CommentID uint
	CallerID  uint
	Content   string
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewInvalidRequestError("content is required")
	}
	comment, err := s.commentRepo.GetByID(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, notFoundOr(err, "comment")
	}
	if comment.AuthorID == nil || *comment.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError()
	}
	comment.Content = in.Content
	comment.CommentDate = time.Now()
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID, callerID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, postID, commentID)
	if err != nil {
		return notFoundOr(err, "comment")
	}
	if comment.AuthorID == nil || *comment.AuthorID != callerID {
		return models.NewForbiddenError()
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return notFoundOr(err, "comment")
	}
	return s.postRepo.AdjustCommentsCount(ctx, postID, -1)
}
