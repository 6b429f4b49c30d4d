package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/config"
	"agora/internal/models"
	"agora/internal/repository/filestore"
)

// envelope mirrors the {message, data} shape every endpoint answers with.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) dataMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &m))
	return m
}

func (e envelope) dataList(t *testing.T) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &l))
	return l
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	store, err := filestore.Open(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Port:          "8080",
		Env:           "test",
		JWTSecret:     "unit-test-secret",
		StorageDriver: "file",
		UploadDir:     t.TempDir(),
		BaseURL:       "http://localhost:8080",
	}
	srv := NewServerWithDeps(cfg, store.Users(), store.Posts(), store.Comments(), nil)
	// The same app construction Start serves, minus the Listen.
	return srv.buildApp()
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// signup registers an account and returns its id and session token.
func signup(t *testing.T, app *fiber.App, email, nickname string) (uint, string) {
	t.Helper()
	status, env := request(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email":    email,
		"password": "Passw0rd!",
		"nickname": nickname,
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, "account_created", env.Message)
	data := env.dataMap(t)
	return uint(data["userId"].(float64)), data["token"].(string)
}

func createPost(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()
	status, env := request(t, app, fiber.MethodPost, "/api/posts/", token, fiber.Map{
		"title":   title,
		"content": "body",
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, "post_created", env.Message)
	return uint(env.dataMap(t)["postId"].(float64))
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)

	userID, token := signup(t, app, "member@board.dev", "member")
	assert.NotZero(t, userID)
	assert.NotEmpty(t, token)

	// The email is now taken.
	status, env := request(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": "member@board.dev", "password": "Passw0rd!", "nickname": "other",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "email_already_exists", env.Message)

	status, env = request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "member@board.dev", "password": "Wrong0rd!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid_password", env.Message)

	status, env = request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "nobody@board.dev", "password": "Passw0rd!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid_account", env.Message)

	status, env = request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "member@board.dev", "password": "Passw0rd!",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "login_success", env.Message)
	data := env.dataMap(t)
	assert.NotEmpty(t, data["token"])
	// The password hash never leaves the server.
	assert.NotContains(t, string(env.Data), "password")
}

func TestAvailabilityProbes(t *testing.T) {
	app := newTestApp(t)

	status, env := request(t, app, fiber.MethodGet, "/api/auth/email-available?email=free@board.dev", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "email_available", env.Message)

	signup(t, app, "taken@board.dev", "taken")

	status, env = request(t, app, fiber.MethodGet, "/api/auth/email-available?email=taken@board.dev", "", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "already_exists", env.Message)

	status, env = request(t, app, fiber.MethodGet, "/api/auth/nickname-available?nickname=taken", "", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "already_exists", env.Message)

	status, env = request(t, app, fiber.MethodGet, "/api/auth/nickname-available?nickname=free", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "nickname_available", env.Message)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	status, env := request(t, app, fiber.MethodPost, "/api/posts/", "", fiber.Map{"title": "t", "content": "c"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", env.Message)

	status, env = request(t, app, fiber.MethodPost, "/api/posts/", "not-a-jwt", fiber.Map{"title": "t", "content": "c"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", env.Message)
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)

	_, ownerToken := signup(t, app, "owner@board.dev", "owner")
	_, otherToken := signup(t, app, "other@board.dev", "other")

	postID := createPost(t, app, ownerToken, "first post")

	// The listing is public and carries the enriched author.
	status, env := request(t, app, fiber.MethodGet, "/api/posts/", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "posts_loaded", env.Message)
	list := env.dataList(t)
	require.Len(t, list, 1)
	assert.Equal(t, "owner", list[0]["authorNickname"])

	// Every detail fetch counts one view.
	path := fmt.Sprintf("/api/posts/%d", postID)
	status, env = request(t, app, fiber.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "post_loaded", env.Message)
	assert.Equal(t, float64(1), env.dataMap(t)["view"])

	_, env = request(t, app, fiber.MethodGet, path, "", nil)
	assert.Equal(t, float64(2), env.dataMap(t)["view"])

	// Only the author may edit.
	status, env = request(t, app, fiber.MethodPatch, path, otherToken, fiber.Map{"title": "hijack", "content": "x"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "forbidden_action", env.Message)

	status, env = request(t, app, fiber.MethodPatch, path, ownerToken, fiber.Map{"title": "edited", "content": "x"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "post_updated", env.Message)

	status, env = request(t, app, fiber.MethodDelete, path, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = request(t, app, fiber.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "post_deleted", env.Message)

	status, env = request(t, app, fiber.MethodGet, path, "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "post_not_found", env.Message)
}

func TestPostIDValidation(t *testing.T) {
	app := newTestApp(t)

	status, env := request(t, app, fiber.MethodGet, "/api/posts/abc", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", env.Message)
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)

	_, ownerToken := signup(t, app, "owner@board.dev", "owner")
	_, otherToken := signup(t, app, "other@board.dev", "other")
	postID := createPost(t, app, ownerToken, "discussed")

	commentsPath := fmt.Sprintf("/api/posts/%d/comments", postID)

	status, env := request(t, app, fiber.MethodPost, commentsPath, otherToken, fiber.Map{"content": "first!"})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "comment_created", env.Message)
	commentID := uint(env.dataMap(t)["commentId"].(float64))

	// The parent post's counter follows.
	_, env = request(t, app, fiber.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil)
	assert.Equal(t, float64(1), env.dataMap(t)["commentsCount"])

	status, env = request(t, app, fiber.MethodGet, commentsPath, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "comments_loaded", env.Message)
	list := env.dataList(t)
	require.Len(t, list, 1)
	assert.Equal(t, "other", list[0]["authorNickname"])

	commentPath := fmt.Sprintf("%s/%d", commentsPath, commentID)

	status, env = request(t, app, fiber.MethodPatch, commentPath, ownerToken, fiber.Map{"content": "hijack"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "forbidden_action", env.Message)

	status, env = request(t, app, fiber.MethodPatch, commentPath, otherToken, fiber.Map{"content": "edited"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "comment_updated", env.Message)

	status, env = request(t, app, fiber.MethodDelete, commentPath, otherToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "comment_deleted", env.Message)

	// Deleting again is a miss, and the counter does not go negative.
	status, env = request(t, app, fiber.MethodDelete, commentPath, otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "comment_not_found", env.Message)

	_, env = request(t, app, fiber.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil)
	assert.Equal(t, float64(0), env.dataMap(t)["commentsCount"])
}

func TestLikeFlow(t *testing.T) {
	app := newTestApp(t)

	_, ownerToken := signup(t, app, "owner@board.dev", "owner")
	_, likerToken := signup(t, app, "liker@board.dev", "liker")
	postID := createPost(t, app, ownerToken, "likeable")

	likesPath := fmt.Sprintf("/api/posts/%d/likes", postID)

	status, env := request(t, app, fiber.MethodPost, likesPath, likerToken, nil)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "like_added", env.Message)
	assert.Equal(t, float64(1), env.dataMap(t)["likeCount"])

	status, env = request(t, app, fiber.MethodPost, likesPath, likerToken, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "like_already_exists", env.Message)

	status, env = request(t, app, fiber.MethodDelete, likesPath, likerToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "like_canceled", env.Message)
	assert.Equal(t, float64(0), env.dataMap(t)["likeCount"])

	status, env = request(t, app, fiber.MethodDelete, likesPath, likerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "like_not_found", env.Message)
}

func TestUserProfileLifecycle(t *testing.T) {
	app := newTestApp(t)

	userID, token := signup(t, app, "member@board.dev", "member")
	createPost(t, app, token, "left behind")

	status, env := request(t, app, fiber.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user_loaded", env.Message)
	assert.Equal(t, "member", env.dataMap(t)["nickname"])

	// Public profile by id.
	status, env = request(t, app, fiber.MethodGet, fmt.Sprintf("/api/users/%d", userID), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "member", env.dataMap(t)["nickname"])

	status, env = request(t, app, fiber.MethodGet, "/api/users/999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "user_not_found", env.Message)

	status, env = request(t, app, fiber.MethodPut, "/api/users/me", token, fiber.Map{"nickname": "renamed"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user_updated", env.Message)
	assert.Equal(t, "renamed", env.dataMap(t)["nickname"])

	status, env = request(t, app, fiber.MethodPatch, "/api/users/me/password", token, fiber.Map{"password": "N3wPass!x"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "password_updated", env.Message)

	status, _ = request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "member@board.dev", "password": "N3wPass!x",
	})
	assert.Equal(t, fiber.StatusOK, status)

	status, env = request(t, app, fiber.MethodDelete, "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "account_deleted", env.Message)

	status, env = request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "member@board.dev", "password": "N3wPass!x",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid_account", env.Message)

	// The post survives with the Unknown placeholder.
	_, env = request(t, app, fiber.MethodGet, "/api/posts/", "", nil)
	list := env.dataList(t)
	require.Len(t, list, 1)
	assert.Equal(t, models.UnknownAuthorNickname, list[0]["authorNickname"])
}

func TestLogoutWithoutRedis(t *testing.T) {
	app := newTestApp(t)

	_, token := signup(t, app, "member@board.dev", "member")

	status, env := request(t, app, fiber.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "logout_success", env.Message)

	// Without Redis there is no revocation list; the token stays valid
	// until it expires.
	status, _ = request(t, app, fiber.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUploadPostImage(t *testing.T) {
	app := newTestApp(t)

	_, token := signup(t, app, "member@board.dev", "member")
	postID := createPost(t, app, token, "illustrated")
	path := fmt.Sprintf("/api/posts/%d/image", postID)

	upload := func(filename string, content []byte) (int, envelope) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("postImage", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(fiber.MethodPost, path, &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		return resp.StatusCode, env
	}

	status, env := upload("shot.png", []byte("\x89PNG\r\n\x1a\n0000000000"))
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Image_upload_success", env.Message)
	assert.Contains(t, env.dataMap(t)["filePath"], "/uploads/")

	status, env = upload("script.sh", []byte("#!/bin/sh\necho nope\n"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid_file", env.Message)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Storage string `json:"storage"`
			Redis   string `json:"redis"`
		} `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Storage)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
