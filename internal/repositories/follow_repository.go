package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, page models.Page) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint, page models.Page) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository over gorm
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Follow creates the edge followerID -> followingID. The existence check is a
// fast path; the unique index decides races.
func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return apperrors.ErrSelfFollow
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.Select("id").First(&target, followingID).Error; err != nil {
			return storeErr(err, apperrors.ErrUserNotFound)
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return apperrors.FromStore(err)
		}
		if count > 0 {
			return apperrors.ErrAlreadyFollowing
		}

		follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Omit(clause.Associations).Create(follow).Error; err != nil {
			if err = apperrors.FromStore(err); errors.Is(err, apperrors.ErrConflict) {
				return apperrors.ErrAlreadyFollowing
			}
			return err
		}

		return notify(tx, &models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     followerID,
			RecipientID: followingID,
		})
	})
}

// Unfollow removes the edge; a missing edge is an error, not a no-op.
func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return apperrors.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFollowing
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, apperrors.FromStore(err)
	}
	return count > 0, nil
}

// GetFollowers lists users following userID, most recent first.
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint, page models.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&users).Error
	return users, apperrors.FromStore(err)
}

// GetFollowing lists users followed by userID, most recent first.
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint, page models.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&users).Error
	return users, apperrors.FromStore(err)
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, apperrors.FromStore(err)
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, apperrors.FromStore(err)
}
