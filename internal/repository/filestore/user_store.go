package filestore

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
)

type userStore struct {
	s *Store
}

func toUser(rec userRecord) *models.User {
	return &models.User{
		ID:        rec.UserID,
		Email:     rec.Email,
		Password:  rec.Password,
		Nickname:  rec.Nickname,
		Profile:   rec.Profile,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (u *userStore) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return err
	}
	now := time.Now()
	user.ID = nextID(records, func(r userRecord) uint { return r.UserID })
	user.CreatedAt = now
	user.UpdatedAt = now
	records = append(records, userRecord{
		UserID:    user.ID,
		Email:     user.Email,
		Password:  user.Password,
		Nickname:  user.Nickname,
		Profile:   user.Profile,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	return u.s.saveUsers(records)
}

func (u *userStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.UserID == id {
			return toUser(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return toUser(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (u *userStore) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (u *userStore) Update(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	records, err := u.s.loadUsers()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.UserID == user.ID {
			user.UpdatedAt = time.Now()
			records[i].Email = user.Email
			records[i].Password = user.Password
			records[i].Nickname = user.Nickname
			records[i].Profile = user.Profile
			records[i].UpdatedAt = user.UpdatedAt
			return u.s.saveUsers(records)
		}
	}
	return repository.ErrNotFound
}

// DeleteCascade applies the account cascade without transactional cover:
// posts first (likes removed, likeCount fixed, authorship nulled), then
// comments, then the user record last, so a partial failure leaves the
// user present and the operation retryable.
func (u *userStore) DeleteCascade(ctx context.Context, id uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.s.loadUsers()
	if err != nil {
		return err
	}
	idx := -1
	for i, rec := range users {
		if rec.UserID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}

	posts, err := u.s.loadPosts()
	if err != nil {
		return err
	}
	for i := range posts {
		likes := posts[i].Likes[:0]
		for _, uid := range posts[i].Likes {
			if uid != id {
				likes = append(likes, uid)
			}
		}
		posts[i].Likes = likes
		posts[i].LikeCount = len(likes)
		if posts[i].Author != nil && *posts[i].Author == id {
			posts[i].Author = nil
		}
	}
	if err := u.s.savePosts(posts); err != nil {
		return err
	}

	comments, err := u.s.loadComments()
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].CommentAuthor != nil && *comments[i].CommentAuthor == id {
			comments[i].CommentAuthor = nil
		}
	}
	if err := u.s.saveComments(comments); err != nil {
		return err
	}

	users = append(users[:idx], users[idx+1:]...)
	return u.s.saveUsers(users)
}
