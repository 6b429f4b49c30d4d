package service

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
)

// PostService owns the post aggregate: the post row, its likes and its
// three counters. All like/view/comment-count writes go through here as
// single atomic adjustments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo, userRepo: userRepo}
}

type CreatePostInput struct {
	AuthorID  uint
	Title     string
	Content   string
	PostImage string
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewInvalidRequestError("title and content are required")
	}
	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	post := &models.Post{
		AuthorID:  &author.ID,
		Title:     in.Title,
		Content:   in.Content,
		PostImage: in.PostImage,
		PostDate:  time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.AuthorNickname = author.Nickname
	post.AuthorProfile = author.Profile
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	authors := newAuthorDirectory(s.userRepo)
	for _, post := range posts {
		if err := authors.decoratePost(ctx, post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// GetPost is a read with a side effect: every successful detail fetch
// counts one view, applied as an atomic increment before the response is
// assembled. The returned post carries its enriched comments.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if err := s.postRepo.IncrementView(ctx, postID); err != nil {
		return nil, err
	}
	post.View++

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	authors := newAuthorDirectory(s.userRepo)
	if err := authors.decoratePost(ctx, post); err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if err := authors.decorateComment(ctx, comment); err != nil {
			return nil, err
		}
	}
	post.Comments = comments
	return post, nil
}

type UpdatePostInput struct {
	PostID    uint
	CallerID  uint
	Title     string
	Content   string
	PostImage string
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewInvalidRequestError("title and content are required")
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, notFoundOr(err, "post")
	}
	if post.AuthorID == nil || *post.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError()
	}
	post.Title = in.Title
	post.Content = in.Content
	// An empty postImage keeps the existing image; only a new value replaces it.
	if in.PostImage != "" {
		post.PostImage = in.PostImage
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes dependents first, then the post. The steps are
// sequential, not transactional: a failure can orphan nothing worse than
// an already-half-deleted post that a retry finishes off.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return notFoundOr(err, "post")
	}
	if post.AuthorID == nil || *post.AuthorID != callerID {
		return models.NewForbiddenError()
	}
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.DeleteLikesByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return notFoundOr(err, "post")
	}
	return nil
}

// AddLike performs the conditional insert that closes the duplicate-like
// race, then adjusts the counter by exactly one. The fresh likeCount is
// re-read so the response reflects concurrent likes.
func (s *PostService) AddLike(ctx context.Context, postID, userID uint) (int, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, notFoundOr(err, "post")
	}
	inserted, err := s.postRepo.InsertLike(ctx, postID, userID)
	if err != nil {
		return 0, err
	}
	if !inserted {
		return 0, models.NewConflictError("like_already_exists")
	}
	if err := s.postRepo.AdjustLikeCount(ctx, postID, +1); err != nil {
		return 0, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return 0, notFoundOr(err, "post")
	}
	return post.LikeCount, nil
}

// RemoveLike deletes the caller's like if present and adjusts the counter
// by exactly minus one, floored at zero by the repository.
func (s *PostService) RemoveLike(ctx context.Context, postID, userID uint) (int, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, notFoundOr(err, "post")
	}
	removed, err := s.postRepo.DeleteLike(ctx, postID, userID)
	if err != nil {
		return 0, err
	}
	if !removed {
		return 0, models.NewNotFoundError("like")
	}
	if err := s.postRepo.AdjustLikeCount(ctx, postID, -1); err != nil {
		return 0, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return 0, notFoundOr(err, "post")
	}
	return post.LikeCount, nil
}
