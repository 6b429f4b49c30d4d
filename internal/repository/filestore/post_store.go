package filestore

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
)

type postStore struct {
	s *Store
}

func toPost(rec postRecord) *models.Post {
	return &models.Post{
		ID:            rec.PostID,
		AuthorID:      rec.Author,
		Title:         rec.Title,
		Content:       rec.Content,
		PostImage:     rec.PostImage,
		PostDate:      rec.PostDate,
		LikeCount:     rec.LikeCount,
		View:          rec.View,
		CommentsCount: rec.CommentsCount,
	}
}

func (p *postStore) Create(ctx context.Context, post *models.Post) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return err
	}
	post.ID = nextID(records, func(r postRecord) uint { return r.PostID })
	records = append(records, postRecord{
		PostID:        post.ID,
		Author:        post.AuthorID,
		Title:         post.Title,
		Content:       post.Content,
		PostImage:     post.PostImage,
		PostDate:      post.PostDate,
		Likes:         []uint{},
		LikeCount:     post.LikeCount,
		View:          post.View,
		CommentsCount: post.CommentsCount,
	})
	return p.s.savePosts(records)
}

func (p *postStore) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.PostID == id {
			return toPost(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns posts newest first, matching the relational backend's order.
func (p *postStore) List(ctx context.Context) ([]*models.Post, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return nil, err
	}
	posts := make([]*models.Post, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		posts = append(posts, toPost(records[i]))
	}
	return posts, nil
}

// Update persists the editable fields only; likes and counters are owned
// by their dedicated operations.
func (p *postStore) Update(ctx context.Context, post *models.Post) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.PostID == post.ID {
			records[i].Title = post.Title
			records[i].Content = post.Content
			records[i].PostImage = post.PostImage
			return p.s.savePosts(records)
		}
	}
	return repository.ErrNotFound
}

func (p *postStore) Delete(ctx context.Context, id uint) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.PostID == id {
			records = append(records[:i], records[i+1:]...)
			return p.s.savePosts(records)
		}
	}
	return repository.ErrNotFound
}

func (p *postStore) DeleteLikesByPost(ctx context.Context, postID uint) error {
	return p.mutate(postID, func(rec *postRecord) {
		rec.Likes = []uint{}
		rec.LikeCount = 0
	})
}

func (p *postStore) IncrementView(ctx context.Context, id uint) error {
	return p.mutate(id, func(rec *postRecord) {
		rec.View++
	})
}

func (p *postStore) AdjustLikeCount(ctx context.Context, id uint, delta int) error {
	return p.mutate(id, func(rec *postRecord) {
		rec.LikeCount += delta
		if rec.LikeCount < 0 {
			rec.LikeCount = 0
		}
	})
}

func (p *postStore) AdjustCommentsCount(ctx context.Context, id uint, delta int) error {
	return p.mutate(id, func(rec *postRecord) {
		rec.CommentsCount += delta
		if rec.CommentsCount < 0 {
			rec.CommentsCount = 0
		}
	})
}

func (p *postStore) InsertLike(ctx context.Context, postID, userID uint) (bool, error) {
	inserted := false
	err := p.mutate(postID, func(rec *postRecord) {
		for _, uid := range rec.Likes {
			if uid == userID {
				return
			}
		}
		rec.Likes = append(rec.Likes, userID)
		inserted = true
	})
	return inserted, err
}

func (p *postStore) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	removed := false
	err := p.mutate(postID, func(rec *postRecord) {
		for i, uid := range rec.Likes {
			if uid == userID {
				rec.Likes = append(rec.Likes[:i], rec.Likes[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed, err
}

func (p *postStore) mutate(id uint, fn func(*postRecord)) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	records, err := p.s.loadPosts()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].PostID == id {
			fn(&records[i])
			return p.s.savePosts(records)
		}
	}
	return repository.ErrNotFound
}
