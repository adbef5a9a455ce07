package models

import "time"

// MaxCommentLength is measured in runes.
const MaxCommentLength = 500

// Comment represents a comment on a post. ParentID is set on replies; replies
// are one level deep.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Content   string    `json:"content" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Post   *Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User   *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Parent *Comment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	ID        uint            `json:"id"`
	PostID    uint            `json:"post_id"`
	ParentID  *uint           `json:"parent_id"`
	Content   string          `json:"content"`
	Author    UserCompact     `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
	Replies   []CommentThread `json:"replies,omitempty"`
}

// ToThread converts a comment with a preloaded User.
func (c *Comment) ToThread() CommentThread {
	t := CommentThread{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		t.Author = c.User.ToCompact()
	}
	return t
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,notblank,content=500"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,min=1"`
}
