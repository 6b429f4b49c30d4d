package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"
)

// AuthService handles signup, login and the availability probes.
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupInput struct {
	Email    string
	Password string
	Nickname string
	Profile  string
}

// Signup validates the account policies, rejects taken identities and
// creates the user with a bcrypt password hash. Uniqueness is checked
// before the insert; the store's unique constraints back it up.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	taken, err := s.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("email_already_exists")
	}
	taken, err = s.userRepo.NicknameExists(ctx, in.Nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("nickname_already_exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	profile := in.Profile
	if profile == "" {
		profile = models.DefaultProfileURL
	}
	user := &models.User{
		Email:    in.Email,
		Password: string(hash),
		Nickname: in.Nickname,
		Profile:  profile,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login distinguishes an unknown email (invalid_account) from a wrong
// password (invalid_password); both answer 401.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidAccountError()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidPasswordError()
	}
	return user, nil
}

// EmailAvailable reports nil when the email is well-formed and free.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return models.NewInvalidRequestError(err.Error())
	}
	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflictError("already_exists")
	}
	return nil
}

// NicknameAvailable reports nil when the nickname passes policy and is free.
func (s *AuthService) NicknameAvailable(ctx context.Context, nickname string) error {
	if err := validation.ValidateNickname(nickname); err != nil {
		return models.NewInvalidRequestError(err.Error())
	}
	taken, err := s.userRepo.NicknameExists(ctx, nickname)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflictError("already_exists")
	}
	return nil
}
