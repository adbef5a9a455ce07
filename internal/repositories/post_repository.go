package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error)
	CreateRetweet(ctx context.Context, userID, originalID uint, content string) (*models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID uint) (bool, error)
	RecountPost(ctx context.Context, postID uint) error
	ReconcileCounters(ctx context.Context) (int64, error)
}

// PostgresPostRepository implements PostRepository over gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// ValidateContent normalizes post content and enforces 1..MaxPostLength
// characters.
func ValidateContent(content string, max int) (string, error) {
	c := models.NormalizeContent(content)
	if c == "" {
		return "", apperrors.Validation("content is required")
	}
	if models.ContentLength(c) > max {
		return "", apperrors.Validation("content exceeds maximum length")
	}
	return c, nil
}

// CreatePost inserts an original post with zeroed counters.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	c, err := ValidateContent(content, models.MaxPostLength)
	if err != nil {
		return nil, err
	}
	post := models.NewPost(userID, c, models.Original{})
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return post, nil
}

// CreateRetweet inserts a retweet of originalID and bumps the original's
// retweets_count in the same transaction. Without content the original's body
// is reused.
func (r *PostgresPostRepository) CreateRetweet(ctx context.Context, userID, originalID uint, content string) (*models.Post, error) {
	var retweet *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original models.Post
		if err := tx.Select("id", "user_id", "content").First(&original, originalID).Error; err != nil {
			return storeErr(err, apperrors.ErrPostNotFound)
		}

		body := original.Content
		if models.NormalizeContent(content) != "" {
			c, err := ValidateContent(content, models.MaxPostLength)
			if err != nil {
				return err
			}
			body = c
		}

		retweet = models.NewPost(userID, body, models.Retweet{OriginalID: original.ID})
		if err := tx.Omit(clause.Associations).Create(retweet).Error; err != nil {
			return apperrors.FromStore(err)
		}

		res := tx.Model(&models.Post{}).Where("id = ?", original.ID).
			UpdateColumn("retweets_count", gorm.Expr("retweets_count + 1"))
		if res.Error != nil {
			return apperrors.FromStore(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrPostNotFound
		}

		return notify(tx, &models.Notification{
			Type:        models.NotificationRetweet,
			ActorID:     userID,
			RecipientID: original.UserID,
			PostID:      &original.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return retweet, nil
}

// GetPostByID loads a post with its author and, for retweets, the original
// post with the original's author.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("OriginalPost.User").
		First(&post, id).Error
	if err != nil {
		return nil, storeErr(err, apperrors.ErrPostNotFound)
	}
	return &post, nil
}

// DeletePost removes postID if userID owns it and reports whether a row was
// deleted. Absent and not-owned posts are indistinguishable to the caller.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, postID, userID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Select("id", "original_post_id").
			Where("id = ? AND user_id = ?", postID, userID).
			Take(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.FromStore(err)
		}

		res := tx.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
		if res.Error != nil {
			return apperrors.FromStore(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		if rt, ok := post.Variant().(models.Retweet); ok {
			err := tx.Model(&models.Post{}).
				Where("id = ? AND retweets_count > 0", rt.OriginalID).
				UpdateColumn("retweets_count", gorm.Expr("retweets_count - 1")).Error
			if err != nil {
				return apperrors.FromStore(err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

const recountSQL = `UPDATE posts SET
	likes_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id),
	retweets_count = (SELECT COUNT(*) FROM posts AS rt WHERE rt.original_post_id = posts.id),
	comments_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)`

const driftCondition = `
	likes_count <> (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)
	OR retweets_count <> (SELECT COUNT(*) FROM posts AS rt WHERE rt.original_post_id = posts.id)
	OR comments_count <> (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)`

// RecountPost recomputes one post's counters from the source rows.
func (r *PostgresPostRepository) RecountPost(ctx context.Context, postID uint) error {
	res := r.db.WithContext(ctx).Exec(recountSQL+" WHERE posts.id = ?", postID)
	if res.Error != nil {
		return apperrors.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// ReconcileCounters repairs every post whose counters drifted from the
// source rows and returns the number of posts fixed.
func (r *PostgresPostRepository) ReconcileCounters(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(recountSQL + " WHERE" + driftCondition)
	if res.Error != nil {
		return 0, apperrors.FromStore(res.Error)
	}
	return res.RowsAffected, nil
}
