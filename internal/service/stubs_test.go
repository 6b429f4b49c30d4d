package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
	"agora/internal/repository"
)

// The stubs below implement the repository ports with function fields, so
// each test wires exactly the calls it expects. Unset getters miss, unset
// mutations succeed.

type stubUserRepo struct {
	createFn         func(ctx context.Context, user *models.User) error
	getByIDFn        func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	emailExistsFn    func(ctx context.Context, email string) (bool, error)
	nicknameExistsFn func(ctx context.Context, nickname string) (bool, error)
	updateFn         func(ctx context.Context, user *models.User) error
	deleteCascadeFn  func(ctx context.Context, id uint) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn == nil {
		return nil, repository.ErrNotFound
	}
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if s.emailExistsFn == nil {
		return false, nil
	}
	return s.emailExistsFn(ctx, email)
}

func (s *stubUserRepo) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	if s.nicknameExistsFn == nil {
		return false, nil
	}
	return s.nicknameExistsFn(ctx, nickname)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, user)
}

func (s *stubUserRepo) DeleteCascade(ctx context.Context, id uint) error {
	if s.deleteCascadeFn == nil {
		return nil
	}
	return s.deleteCascadeFn(ctx, id)
}

type stubPostRepo struct {
	createFn              func(ctx context.Context, post *models.Post) error
	getByIDFn             func(ctx context.Context, id uint) (*models.Post, error)
	listFn                func(ctx context.Context) ([]*models.Post, error)
	updateFn              func(ctx context.Context, post *models.Post) error
	deleteFn              func(ctx context.Context, id uint) error
	deleteLikesByPostFn   func(ctx context.Context, postID uint) error
	incrementViewFn       func(ctx context.Context, id uint) error
	adjustLikeCountFn     func(ctx context.Context, id uint, delta int) error
	adjustCommentsCountFn func(ctx context.Context, id uint, delta int) error
	insertLikeFn          func(ctx context.Context, postID, userID uint) (bool, error)
	deleteLikeFn          func(ctx context.Context, postID, userID uint) (bool, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubPostRepo) List(ctx context.Context) ([]*models.Post, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubPostRepo) DeleteLikesByPost(ctx context.Context, postID uint) error {
	if s.deleteLikesByPostFn == nil {
		return nil
	}
	return s.deleteLikesByPostFn(ctx, postID)
}

func (s *stubPostRepo) IncrementView(ctx context.Context, id uint) error {
	if s.incrementViewFn == nil {
		return nil
	}
	return s.incrementViewFn(ctx, id)
}

func (s *stubPostRepo) AdjustLikeCount(ctx context.Context, id uint, delta int) error {
	if s.adjustLikeCountFn == nil {
		return nil
	}
	return s.adjustLikeCountFn(ctx, id, delta)
}

func (s *stubPostRepo) AdjustCommentsCount(ctx context.Context, id uint, delta int) error {
	if s.adjustCommentsCountFn == nil {
		return nil
	}
	return s.adjustCommentsCountFn(ctx, id, delta)
}

func (s *stubPostRepo) InsertLike(ctx context.Context, postID, userID uint) (bool, error) {
	if s.insertLikeFn == nil {
		return false, nil
	}
	return s.insertLikeFn(ctx, postID, userID)
}

func (s *stubPostRepo) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	if s.deleteLikeFn == nil {
		return false, nil
	}
	return s.deleteLikeFn(ctx, postID, userID)
}

type stubCommentRepo struct {
	createFn       func(ctx context.Context, comment *models.Comment) error
	getByIDFn      func(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	listByPostFn   func(ctx context.Context, postID uint) ([]*models.Comment, error)
	updateFn       func(ctx context.Context, comment *models.Comment) error
	deleteFn       func(ctx context.Context, id uint) error
	deleteByPostFn func(ctx context.Context, postID uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	if s.getByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return s.getByIDFn(ctx, postID, commentID)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPostFn == nil {
		return nil, nil
	}
	return s.listByPostFn(ctx, postID)
}

func (s *stubCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, comment)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubCommentRepo) DeleteByPost(ctx context.Context, postID uint) error {
	if s.deleteByPostFn == nil {
		return nil
	}
	return s.deleteByPostFn(ctx, postID)
}

// requireCode asserts that err is an AppError carrying the given wire token.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
