package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"
)

// UserService covers the account lifecycle after signup: profile reads and
// edits, password change and account deletion.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

type UpdateProfileInput struct {
	UserID   uint
	Nickname string
	Profile  string
}

// UpdateProfile changes nickname and/or profile image. An empty field
// means "leave it alone"; a changed nickname is re-validated for policy
// and uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	if in.Nickname != "" && in.Nickname != user.Nickname {
		if err := validation.ValidateNickname(in.Nickname); err != nil {
			return nil, models.NewInvalidRequestError(err.Error())
		}
		taken, err := s.userRepo.NicknameExists(ctx, in.Nickname)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("nickname_already_exists")
		}
		user.Nickname = in.Nickname
	}
	if in.Profile != "" {
		user.Profile = in.Profile
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uint, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewInvalidRequestError(err.Error())
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hash)
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount runs the deletion cascade: the user's likes disappear
// (with the affected posts' likeCount fixed), their posts and comments
// stay behind with authorship nulled, and the account is removed.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return notFoundOr(err, "user")
	}
	return nil
}
