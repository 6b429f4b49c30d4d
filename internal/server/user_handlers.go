package server

import (
	"github.com/gofiber/fiber/v2"

	"agora/internal/models"
	"agora/internal/service"
)

// GetUserProfile handles GET /api/users/:userId (public profile).
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "user_loaded", user.Public())
}

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), s.callerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "user_loaded", user)
}

// UpdateMyProfile handles PUT /api/users/me.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Nickname string `json:"nickname"`
		Profile  string `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}
	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   s.callerID(c),
		Nickname: req.Nickname,
		Profile:  req.Profile,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "user_updated", user)
}

// UpdateMyPassword handles PATCH /api/users/me/password.
func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}
	if err := s.userService.UpdatePassword(c.Context(), s.callerID(c), req.Password); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "password_updated", nil)
}

// DeleteMyAccount handles DELETE /api/users/me. The deletion cascade removes
// the caller's likes and anonymizes their posts and comments.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), s.callerID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "account_deleted", nil)
}
