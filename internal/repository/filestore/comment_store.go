package filestore

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
)

type commentStore struct {
	s *Store
}

func toComment(rec commentRecord) *models.Comment {
	return &models.Comment{
		ID:          rec.CommentID,
		PostID:      rec.PostID,
		AuthorID:    rec.CommentAuthor,
		Content:     rec.Content,
		CommentDate: rec.CommentDate,
	}
}

func (c *commentStore) Create(ctx context.Context, comment *models.Comment) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return err
	}
	comment.ID = nextID(records, func(r commentRecord) uint { return r.CommentID })
	records = append(records, commentRecord{
		CommentID:     comment.ID,
		PostID:        comment.PostID,
		CommentAuthor: comment.AuthorID,
		Content:       comment.Content,
		CommentDate:   comment.CommentDate,
	})
	return c.s.saveComments(records)
}

func (c *commentStore) GetByID(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.CommentID == commentID && rec.PostID == postID {
			return toComment(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *commentStore) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return nil, err
	}
	var comments []*models.Comment
	for _, rec := range records {
		if rec.PostID == postID {
			comments = append(comments, toComment(rec))
		}
	}
	return comments, nil
}

func (c *commentStore) Update(ctx context.Context, comment *models.Comment) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.CommentID == comment.ID {
			records[i].Content = comment.Content
			records[i].CommentDate = comment.CommentDate
			return c.s.saveComments(records)
		}
	}
	return repository.ErrNotFound
}

func (c *commentStore) Delete(ctx context.Context, id uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.CommentID == id {
			records = append(records[:i], records[i+1:]...)
			return c.s.saveComments(records)
		}
	}
	return repository.ErrNotFound
}

func (c *commentStore) DeleteByPost(ctx context.Context, postID uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	records, err := c.s.loadComments()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if rec.PostID != postID {
			kept = append(kept, rec)
		}
	}
	return c.s.saveComments(kept)
}
