package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	GetByRecipientID(ctx context.Context, recipientID uint, page models.Page) ([]models.NotificationView, int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, recipientID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// notify records n inside the caller's transaction. Users are not notified
// about their own actions.
func notify(tx *gorm.DB, n *models.Notification) error {
	if n.ActorID == n.RecipientID {
		return nil
	}
	return apperrors.FromStore(tx.Omit(clause.Associations).Create(n).Error)
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, page models.Page) ([]models.NotificationView, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromStore(err)
	}

	var notifications []models.Notification
	err := db.Preload("Actor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, apperrors.FromStore(err)
	}

	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = models.NotificationView{Notification: n}
		if n.Actor != nil {
			views[i].Actor = n.Actor.ToCompact()
		}
	}
	return views, total, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, apperrors.FromStore(err)
}

// MarkAsRead only touches notifications addressed to recipientID.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID, recipientID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return apperrors.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
	return apperrors.FromStore(err)
}
