package server

import (
	"github.com/gofiber/fiber/v2"

	"agora/internal/models"
	"agora/internal/service"
)

// CreateComment handles POST /api/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.Context(), service.CreateCommentInput{
		PostID:   postID,
		AuthorID: s.callerID(c),
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "comment_created", fiber.Map{
		"commentId": comment.ID,
	})
}

// GetComments handles GET /api/posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "comments_loaded", comments)
}

// GetComment handles GET /api/posts/:postId/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	comment, err := s.commentService.GetComment(c.Context(), postID, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "comment_loaded", comment)
}

// UpdateComment handles PATCH /api/posts/:postId/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		PostID:    postID,
		CommentID: commentID,
		CallerID:  s.callerID(c),
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "comment_updated", fiber.Map{
		"commentId": comment.ID,
	})
}

// DeleteComment handles DELETE /api/posts/:postId/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.Context(), postID, commentID, s.callerID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "comment_deleted", nil)
}
