package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/search"
)

// FeedRepository composes flat post lists for feeds, timelines and search.
type FeedRepository interface {
	GetAllPosts(ctx context.Context, authorID, viewerID uint, page models.Page) ([]models.FeedPost, error)
	GetTimeline(ctx context.Context, userID uint, page models.Page) ([]models.FeedPost, error)
	Search(ctx context.Context, query string, viewerID uint, page models.Page) ([]models.FeedPost, error)
}

// PostgresFeedRepository implements FeedRepository over gorm
type PostgresFeedRepository struct {
	db    *gorm.DB
	likes LikeRepository
}

// NewPostgresFeedRepository creates a new PostgresFeedRepository
func NewPostgresFeedRepository(db *gorm.DB, likes LikeRepository) *PostgresFeedRepository {
	return &PostgresFeedRepository{db: db, likes: likes}
}

const feedColumns = `posts.id, posts.content, posts.user_id,
	users.username, users.wallet_address, users.avatar_url,
	posts.likes_count, posts.retweets_count, posts.comments_count,
	posts.original_post_id, posts.created_at`

func (r *PostgresFeedRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select(feedColumns).
		Joins("JOIN users ON users.id = posts.user_id")
}

// GetAllPosts returns the global feed, or one author's posts when authorID
// is non-zero.
func (r *PostgresFeedRepository) GetAllPosts(ctx context.Context, authorID, viewerID uint, page models.Page) ([]models.FeedPost, error) {
	q := r.base(ctx)
	if authorID != 0 {
		q = q.Where("posts.user_id = ?", authorID)
	}
	return r.list(ctx, q, viewerID, page)
}

// GetTimeline returns posts by userID and everyone userID follows.
func (r *PostgresFeedRepository) GetTimeline(ctx context.Context, userID uint, page models.Page) ([]models.FeedPost, error) {
	followees := r.db.WithContext(ctx).
		Table("follows").
		Select("following_id").
		Where("follower_id = ?", userID)
	q := r.base(ctx).Where("posts.user_id = ? OR posts.user_id IN (?)", userID, followees)
	return r.list(ctx, q, userID, page)
}

// Search matches post content against query. Input that sanitizes to
// nothing yields an empty result.
func (r *PostgresFeedRepository) Search(ctx context.Context, query string, viewerID uint, page models.Page) ([]models.FeedPost, error) {
	q := r.base(ctx)
	if isPostgres(r.db) {
		tsq := search.Sanitize(query)
		if tsq == "" {
			return []models.FeedPost{}, nil
		}
		q = q.Where("posts.search_vector @@ to_tsquery('english', ?)", tsq)
	} else {
		tokens := search.Tokens(query)
		if len(tokens) == 0 {
			return []models.FeedPost{}, nil
		}
		for _, tok := range tokens {
			q = q.Where("LOWER(posts.content) LIKE ?"+likeEscapeClause, containsPattern(tok))
		}
	}
	return r.list(ctx, q, viewerID, page)
}

func (r *PostgresFeedRepository) list(ctx context.Context, q *gorm.DB, viewerID uint, page models.Page) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(page.Limit).Offset(page.Offset).
		Scan(&posts).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	if err := r.attachOriginals(ctx, posts); err != nil {
		return nil, err
	}
	if err := r.likes.EnrichLikes(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachOriginals loads every referenced original in one query and attaches
// it one level deep.
func (r *PostgresFeedRepository) attachOriginals(ctx context.Context, posts []models.FeedPost) error {
	var ids []uint
	seen := make(map[uint]bool)
	for i := range posts {
		posts[i].Flatten()
		if id := posts[i].OriginalPostID; id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var originals []models.FeedPost
	if err := r.base(ctx).Where("posts.id IN ?", ids).Scan(&originals).Error; err != nil {
		return apperrors.FromStore(err)
	}
	byID := make(map[uint]models.FeedPost, len(originals))
	for _, o := range originals {
		o.Flatten()
		byID[o.ID] = o
	}
	for i := range posts {
		if id := posts[i].OriginalPostID; id != nil {
			if o, ok := byID[*id]; ok {
				posts[i].OriginalPost = &o
			}
		}
	}
	return nil
}
