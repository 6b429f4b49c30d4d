package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"agora/internal/models"
	"agora/internal/service"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
		Profile  string `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	user, err := s.authService.Signup(c.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Profile:  req.Profile,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusCreated, "account_created", fiber.Map{
		"userId": user.ID,
		"token":  token,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
	}

	user, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, "login_success", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. The token's jti is blacklisted in
// Redis until the token would expire anyway; without Redis the logout is
// acknowledged but the token stays valid until expiry.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis != nil {
		if jti, ok := c.Locals("jti").(string); ok && jti != "" {
			ttl := 7 * 24 * time.Hour
			if exp, ok := c.Locals("tokenExp").(int64); ok {
				if remaining := time.Until(time.Unix(exp, 0)); remaining > 0 {
					ttl = remaining
				}
			}
			if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl).Err(); err != nil {
				return models.RespondWithError(c, models.NewInternalError(err))
			}
		}
	}
	return models.Respond(c, fiber.StatusOK, "logout_success", nil)
}

// EmailAvailable handles GET /api/auth/email-available?email=
func (s *Server) EmailAvailable(c *fiber.Ctx) error {
	if err := s.authService.EmailAvailable(c.Context(), c.Query("email")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "email_available", nil)
}

// NicknameAvailable handles GET /api/auth/nickname-available?nickname=
func (s *Server) NicknameAvailable(c *fiber.Ctx) error {
	if err := s.authService.NicknameAvailable(c.Context(), c.Query("nickname")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "nickname_available", nil)
}

// generateToken creates the session JWT for the given user.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10), // Subject (user ID as string)
		"nickname": user.Nickname,                           // Cached in token for display
		"iss":      "agora-api",                             // Issuer
		"aud":      "agora-client",                          // Audience
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),      // Expiration (7 days)
		"iat":      now.Unix(),                              // Issued at
		"nbf":      now.Unix(),                              // Not before
		"jti":      s.generateJTI(),                         // JWT ID, used for revocation
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
