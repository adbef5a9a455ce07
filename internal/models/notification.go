package models

import "time"

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationRetweet = "retweet"
	NotificationFollow  = "follow"
)

// Notification represents a user notification
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;not null;index"`
	ActorID     uint      `json:"actor_id" gorm:"not null;index"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index"`
	PostID      *uint     `json:"post_id" gorm:"index"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Actor     *User `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Recipient *User `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Post      *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// NotificationView is a notification with the actor's public profile.
type NotificationView struct {
	Notification
	Actor UserCompact `json:"actor"`
}
