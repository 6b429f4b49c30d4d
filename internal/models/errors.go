package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is a domain error carrying the wire token clients switch on
// (Code), the HTTP status to respond with, and an internal detail that is
// logged but never sent to clients.
type AppError struct {
	Code   string
	Status int
	Detail string
	Err    error
}

func (e *AppError) Error() string {
	msg := e.Code
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidRequestError(detail string) *AppError {
	return &AppError{Code: "invalid_request", Status: fiber.StatusBadRequest, Detail: detail}
}

func NewInvalidFileError(detail string) *AppError {
	return &AppError{Code: "invalid_file", Status: fiber.StatusBadRequest, Detail: detail}
}

func NewUnauthorizedError(detail string) *AppError {
	return &AppError{Code: "unauthorized", Status: fiber.StatusUnauthorized, Detail: detail}
}

func NewInvalidAccountError() *AppError {
	return &AppError{Code: "invalid_account", Status: fiber.StatusUnauthorized}
}

func NewInvalidPasswordError() *AppError {
	return &AppError{Code: "invalid_password", Status: fiber.StatusUnauthorized}
}

func NewForbiddenError() *AppError {
	return &AppError{Code: "forbidden_action", Status: fiber.StatusForbidden}
}

// NewNotFoundError builds the resource-specific token, e.g. "post" becomes
// "post_not_found".
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: resource + "_not_found", Status: fiber.StatusNotFound}
}

// NewConflictError is used for the *_already_exists family of tokens.
func NewConflictError(code string) *AppError {
	return &AppError{Code: code, Status: fiber.StatusConflict}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: "internal_server_error", Status: fiber.StatusInternalServerError, Err: err}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Respond writes the standard {message, data} envelope.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Message: message, Data: data})
}

// RespondWithError writes the envelope for a failed operation. Anything that
// is not an AppError is masked as internal_server_error so infrastructure
// detail never reaches a client.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return Respond(c, appErr.Status, appErr.Code, nil)
	}
	return Respond(c, fiber.StatusInternalServerError, "internal_server_error", nil)
}
