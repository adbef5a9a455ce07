package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	AddComment(ctx context.Context, userID, postID uint, content string, parentID *uint) (*models.Comment, error)
	GetComments(ctx context.Context, postID uint, page models.Page) ([]models.CommentThread, error)
}

// PostgresCommentRepository implements CommentRepository over gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// AddComment inserts a comment and increments the post's comments_count in
// one transaction. A reply to a reply is attached to the top-level comment.
func (r *PostgresCommentRepository) AddComment(ctx context.Context, userID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	body, err := ValidateContent(content, models.MaxCommentLength)
	if err != nil {
		return nil, err
	}

	var comment *models.Comment
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").First(&post, postID).Error; err != nil {
			return storeErr(err, apperrors.ErrPostNotFound)
		}

		comment = &models.Comment{PostID: postID, UserID: userID, Content: body}
		if parentID != nil {
			var parent models.Comment
			err := tx.Select("id", "parent_id").
				Where("id = ? AND post_id = ?", *parentID, postID).
				Take(&parent).Error
			if err != nil {
				return storeErr(err, apperrors.ErrCommentNotFound)
			}
			root := parent.ID
			if parent.ParentID != nil {
				root = *parent.ParentID
			}
			comment.ParentID = &root
		}

		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return apperrors.FromStore(err)
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
			return apperrors.FromStore(err)
		}

		return notify(tx, &models.Notification{
			Type:        models.NotificationComment,
			ActorID:     userID,
			RecipientID: post.UserID,
			PostID:      &post.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func withAuthorProfile(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "avatar_url")
}

// GetComments returns top-level comments newest first, each with its direct
// replies oldest first.
func (r *PostgresCommentRepository) GetComments(ctx context.Context, postID uint, page models.Page) ([]models.CommentThread, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	if count == 0 {
		return nil, apperrors.ErrPostNotFound
	}

	var top []models.Comment
	err := db.Preload("User", withAuthorProfile).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&top).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	threads := make([]models.CommentThread, len(top))
	if len(top) == 0 {
		return threads, nil
	}

	ids := make([]uint, len(top))
	index := make(map[uint]int, len(top))
	for i := range top {
		threads[i] = top[i].ToThread()
		ids[i] = top[i].ID
		index[top[i].ID] = i
	}

	var replies []models.Comment
	err = db.Preload("User", withAuthorProfile).
		Where("parent_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	for i := range replies {
		pos := index[*replies[i].ParentID]
		threads[pos].Replies = append(threads[pos].Replies, replies[i].ToThread())
	}
	return threads, nil
}
