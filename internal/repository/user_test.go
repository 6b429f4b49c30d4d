package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "member@board.dev", Password: "hash", Nickname: "member"}
	require.NoError(t, users.Create(ctx, user))

	got, err := users.GetByEmail(ctx, "member@board.dev")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = users.GetByEmail(ctx, "nobody@board.dev")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_ExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Email: "taken@board.dev", Password: "x", Nickname: "taken"}))

	taken, err := users.EmailExists(ctx, "taken@board.dev")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailExists(ctx, "free@board.dev")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = users.NicknameExists(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.NicknameExists(ctx, "free")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	leaver := &models.User{Email: "leaver@board.dev", Password: "x", Nickname: "leaver"}
	stayer := &models.User{Email: "stayer@board.dev", Password: "x", Nickname: "stayer"}
	require.NoError(t, users.Create(ctx, leaver))
	require.NoError(t, users.Create(ctx, stayer))

	// The stayer's post is liked by the leaver; the leaver also wrote a
	// post and a comment.
	stayerPost := &models.Post{AuthorID: &stayer.ID, Title: "keeps", Content: "x", PostDate: time.Now()}
	leaverPost := &models.Post{AuthorID: &leaver.ID, Title: "orphaned", Content: "x", PostDate: time.Now()}
	require.NoError(t, posts.Create(ctx, stayerPost))
	require.NoError(t, posts.Create(ctx, leaverPost))

	inserted, err := posts.InsertLike(ctx, stayerPost.ID, leaver.ID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, posts.AdjustLikeCount(ctx, stayerPost.ID, +1))

	comment := &models.Comment{PostID: stayerPost.ID, AuthorID: &leaver.ID, Content: "bye", CommentDate: time.Now()}
	require.NoError(t, comments.Create(ctx, comment))

	require.NoError(t, users.DeleteCascade(ctx, leaver.ID))

	// Account is gone.
	_, err = users.GetByID(ctx, leaver.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The like is removed and the counter repaired in the same transaction.
	got, err := posts.GetByID(ctx, stayerPost.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
	removed, err := posts.DeleteLike(ctx, stayerPost.ID, leaver.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	// Content survives with authorship nulled.
	orphan, err := posts.GetByID(ctx, leaverPost.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AuthorID)

	gotComment, err := comments.GetByID(ctx, stayerPost.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, gotComment.AuthorID)

	// Deleting again reports the missing account.
	err = users.DeleteCascade(ctx, leaver.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
