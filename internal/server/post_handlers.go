package server

import (
	"github.com/gofiber/fiber/v2"

	"agora/internal/models"
	"agora/internal/service"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		PostImage string `json:"postImage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  s.callerID(c),
		Title:     req.Title,
		Content:   req.Content,
		PostImage: req.PostImage,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "post_created", fiber.Map{
		"postId": post.ID,
	})
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "posts_loaded", posts)
}

// GetPost handles GET /api/posts/:postId. Each hit counts one view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "post_loaded", post)
}

// UpdatePost handles PATCH /api/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		PostImage string `json:"postImage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:    postID,
		CallerID:  s.callerID(c),
		Title:     req.Title,
		Content:   req.Content,
		PostImage: req.PostImage,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "post_updated", fiber.Map{
		"postId": post.ID,
	})
}

// DeletePost handles DELETE /api/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.Context(), postID, s.callerID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "post_deleted", nil)
}

// AddLike handles POST /api/posts/:postId/likes
func (s *Server) AddLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	likeCount, err := s.postService.AddLike(c.Context(), postID, s.callerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "like_added", fiber.Map{
		"likeCount": likeCount,
	})
}

// RemoveLike handles DELETE /api/posts/:postId/likes
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	likeCount, err := s.postService.RemoveLike(c.Context(), postID, s.callerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "like_canceled", fiber.Map{
		"likeCount": likeCount,
	})
}
