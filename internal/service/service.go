// Package service implements the board's business logic on top of the
// repository ports. Services are the only writers of the denormalized
// post counters, and all domain errors are decided here before any
// mutation happens.
package service

import (
	"context"
	"errors"

	"agora/internal/models"
	"agora/internal/repository"
)

// notFoundOr maps the repository sentinel to the resource-specific wire
// error and passes everything else through untouched.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(resource)
	}
	return err
}

// authorDirectory memoizes author lookups while one request enriches a
// batch of posts or comments, so a listing never hits the user store twice
// for the same author.
type authorDirectory struct {
	users repository.UserRepository
	cache map[uint]*models.User
}

func newAuthorDirectory(users repository.UserRepository) *authorDirectory {
	return &authorDirectory{users: users, cache: map[uint]*models.User{}}
}

// info resolves an author id to display fields, substituting the Unknown
// placeholder when the author id is nil or the account no longer exists.
func (d *authorDirectory) info(ctx context.Context, id *uint) (nickname, profile string, err error) {
	if id == nil {
		return models.UnknownAuthorNickname, models.DefaultProfileURL, nil
	}
	if user, ok := d.cache[*id]; ok {
		if user == nil {
			return models.UnknownAuthorNickname, models.DefaultProfileURL, nil
		}
		return user.Nickname, user.Profile, nil
	}
	user, err := d.users.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			d.cache[*id] = nil
			return models.UnknownAuthorNickname, models.DefaultProfileURL, nil
		}
		return "", "", err
	}
	d.cache[*id] = user
	return user.Nickname, user.Profile, nil
}

func (d *authorDirectory) decoratePost(ctx context.Context, post *models.Post) error {
	nickname, profile, err := d.info(ctx, post.AuthorID)
	if err != nil {
		return err
	}
	post.AuthorNickname = nickname
	post.AuthorProfile = profile
	return nil
}

func (d *authorDirectory) decorateComment(ctx context.Context, comment *models.Comment) error {
	nickname, profile, err := d.info(ctx, comment.AuthorID)
	if err != nil {
		return err
	}
	comment.AuthorNickname = nickname
	comment.AuthorProfile = profile
	return nil
}
