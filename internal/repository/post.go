package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/models"
)

// PostRepository handles post rows, the likes attached to them and the
// post's denormalized counters. Counter adjustments are single atomic
// UPDATE statements floored at zero; nothing here ever recounts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	DeleteLikesByPost(ctx context.Context, postID uint) error
	IncrementView(ctx context.Context, id uint) error
	AdjustLikeCount(ctx context.Context, id uint, delta int) error
	AdjustCommentsCount(ctx context.Context, id uint, delta int) error
	// InsertLike reports whether a row was actually inserted; false means
	// the (post, user) pair already existed.
	InsertLike(ctx context.Context, postID, userID uint) (bool, error)
	// DeleteLike reports whether a row was actually removed.
	DeleteLike(ctx context.Context, postID, userID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Order("post_date DESC, id DESC").Find(&posts).Error
	return posts, err
}

// Update persists the editable fields only. A full-row save would write the
// counters back from the caller's snapshot, reverting any like or view that
// landed since the read.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Model(post).Updates(map[string]any{
		"title":      post.Title,
		"content":    post.Content,
		"post_image": post.PostImage,
	}).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) DeleteLikesByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}

func (r *postRepository) IncrementView(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view", gorm.Expr("view + 1")).Error
}

func (r *postRepository) AdjustLikeCount(ctx context.Context, id uint, delta int) error {
	return r.adjustCounter(ctx, "like_count", id, delta)
}

func (r *postRepository) AdjustCommentsCount(ctx context.Context, id uint, delta int) error {
	return r.adjustCounter(ctx, "comments_count", id, delta)
}

// adjustCounter applies a single ±delta update, clamped at zero so a stray
// double-decrement can never drive a counter negative.
func (r *postRepository) adjustCounter(ctx context.Context, column string, id uint, delta int) error {
	expr := fmt.Sprintf("CASE WHEN %s + ? < 0 THEN 0 ELSE %s + ? END", column, column)
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(expr, delta, delta)).Error
}

func (r *postRepository) InsertLike(ctx context.Context, postID, userID uint) (bool, error) {
	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
