package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, postID, userID uint) (models.LikeResult, error)
	IsLikedBy(ctx context.Context, postID, userID uint) (bool, error)
	GetLikeInfo(ctx context.Context, postID, viewerID uint) (models.LikeInfo, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	EnrichLikes(ctx context.Context, posts []models.FeedPost, viewerID uint) error
}

// PostgresLikeRepository implements LikeRepository over gorm
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the (userID, postID) like. The like row and likes_count
// change together in one transaction; the returned count is read back after
// the update inside that transaction.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeResult, error) {
	var result models.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").First(&post, postID).Error; err != nil {
			return storeErr(err, apperrors.ErrPostNotFound)
		}

		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return apperrors.FromStore(res.Error)
		}

		delta := -1
		if res.RowsAffected == 0 {
			like := &models.Like{UserID: userID, PostID: postID}
			if err := tx.Omit(clause.Associations).Create(like).Error; err != nil {
				return apperrors.FromStore(err)
			}
			delta = 1
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var count int64
		if err := tx.Model(&models.Post{}).Select("likes_count").Where("id = ?", postID).
			Row().Scan(&count); err != nil {
			return apperrors.FromStore(err)
		}
		result = models.LikeResult{Liked: delta > 0, LikeCount: count}

		if !result.Liked {
			return nil
		}
		return notify(tx, &models.Notification{
			Type:        models.NotificationLike,
			ActorID:     userID,
			RecipientID: post.UserID,
			PostID:      &post.ID,
		})
	})
	if err != nil {
		return models.LikeResult{}, err
	}
	return result, nil
}

// IsLikedBy checks if a user has liked a specific post
func (r *PostgresLikeRepository) IsLikedBy(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, apperrors.FromStore(err)
	}
	return count > 0, nil
}

// GetLikeInfo returns the like count and, for a non-zero viewer, whether the
// viewer liked the post. Anonymous viewers always see liked=false.
func (r *PostgresLikeRepository) GetLikeInfo(ctx context.Context, postID, viewerID uint) (models.LikeInfo, error) {
	info := models.LikeInfo{PostID: postID}
	var post models.Post
	err := r.db.WithContext(ctx).Select("id", "likes_count").First(&post, postID).Error
	if err != nil {
		return info, storeErr(err, apperrors.ErrPostNotFound)
	}
	info.LikeCount = post.LikesCount

	if viewerID != 0 {
		liked, err := r.IsLikedBy(ctx, postID, viewerID)
		if err != nil {
			return info, err
		}
		info.Liked = liked
	}
	return info, nil
}

// LikedPostIDs returns which of postIDs userID has liked, in one query.
func (r *PostgresLikeRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(postIDs) == 0 {
		return result, nil
	}
	var liked []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

// EnrichLikes sets Liked on every post (and attached original) for viewerID.
func (r *PostgresLikeRepository) EnrichLikes(ctx context.Context, posts []models.FeedPost, viewerID uint) error {
	if viewerID == 0 || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		if p.OriginalPost != nil {
			ids = append(ids, p.OriginalPost.ID)
		}
	}
	liked, err := r.LikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Liked = liked[posts[i].ID]
		if posts[i].OriginalPost != nil {
			posts[i].OriginalPost.Liked = liked[posts[i].OriginalPost.ID]
		}
	}
	return nil
}
