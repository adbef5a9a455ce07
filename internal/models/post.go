package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxPostLength is measured in runes after NFC normalization.
const MaxPostLength = 280

// Post is a user-authored unit of content. A retweet is a post whose
// OriginalPostID is set; use Variant to branch on the two shapes.
type Post struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	Content        string    `json:"content" gorm:"size:280;not null"`
	OriginalPostID *uint     `json:"original_post_id" gorm:"index"`
	LikesCount     int64     `json:"likes_count" gorm:"not null;default:0;check:chk_posts_likes_count,likes_count >= 0"`
	RetweetsCount  int64     `json:"retweets_count" gorm:"not null;default:0;check:chk_posts_retweets_count,retweets_count >= 0"`
	CommentsCount  int64     `json:"comments_count" gorm:"not null;default:0;check:chk_posts_comments_count,comments_count >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time `json:"updated_at"`

	User         *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	OriginalPost *Post `json:"-" gorm:"foreignKey:OriginalPostID;constraint:OnDelete:CASCADE"`
}

// PostVariant is either Original or Retweet.
type PostVariant interface {
	isPostVariant()
}

// Original marks a post authored from scratch.
type Original struct{}

// Retweet marks a post that re-shares OriginalID.
type Retweet struct {
	OriginalID uint
}

func (Original) isPostVariant() {}
func (Retweet) isPostVariant()  {}

// NewPost builds an unsaved post of the given variant with zeroed counters.
func NewPost(userID uint, content string, variant PostVariant) *Post {
	p := &Post{UserID: userID, Content: content}
	if rt, ok := variant.(Retweet); ok {
		id := rt.OriginalID
		p.OriginalPostID = &id
	}
	return p
}

// Variant reports whether p is an original post or a retweet.
func (p *Post) Variant() PostVariant {
	if p.OriginalPostID == nil {
		return Original{}
	}
	return Retweet{OriginalID: *p.OriginalPostID}
}

// IsRetweet is shorthand for a Retweet variant check.
func (p *Post) IsRetweet() bool {
	_, ok := p.Variant().(Retweet)
	return ok
}

// NormalizeContent trims surrounding whitespace and applies NFC so that
// composed and decomposed input count the same number of characters.
func NormalizeContent(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ContentLength returns the number of characters in normalized content.
func ContentLength(s string) int {
	return utf8.RuneCountInString(s)
}

// PostDetail is a post with its author and, for retweets, one level of the
// original post.
type PostDetail struct {
	ID             uint        `json:"id"`
	Content        string      `json:"content"`
	UserID         uint        `json:"user_id"`
	Author         UserCompact `json:"author"`
	IsRetweet      bool        `json:"is_retweet"`
	OriginalPostID *uint       `json:"original_post_id"`
	OriginalPost   *PostDetail `json:"original_post,omitempty"`
	LikesCount     int64       `json:"likes_count"`
	RetweetsCount  int64       `json:"retweets_count"`
	CommentsCount  int64       `json:"comments_count"`
	Liked          bool        `json:"liked"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ToDetail converts a post with preloaded User (and OriginalPost.User) into
// its response shape. The original's own original is not expanded.
func (p *Post) ToDetail() PostDetail {
	d := PostDetail{
		ID:             p.ID,
		Content:        p.Content,
		UserID:         p.UserID,
		IsRetweet:      p.IsRetweet(),
		OriginalPostID: p.OriginalPostID,
		LikesCount:     p.LikesCount,
		RetweetsCount:  p.RetweetsCount,
		CommentsCount:  p.CommentsCount,
		CreatedAt:      p.CreatedAt,
	}
	if p.User != nil {
		d.Author = p.User.ToCompact()
	}
	if p.OriginalPost != nil {
		orig := *p.OriginalPost
		orig.OriginalPost = nil
		od := orig.ToDetail()
		d.OriginalPost = &od
	}
	return d
}

// FeedPost is the flat feed/search record: author fields are promoted to the
// top level and likes/retweets alias the raw counters.
type FeedPost struct {
	ID             uint      `json:"id" gorm:"column:id"`
	Content        string    `json:"content" gorm:"column:content"`
	UserID         uint      `json:"user_id" gorm:"column:user_id"`
	Username       string    `json:"username" gorm:"column:username"`
	WalletAddress  *string   `json:"wallet_address" gorm:"column:wallet_address"`
	AvatarURL      string    `json:"avatar_url" gorm:"column:avatar_url"`
	LikesCount     int64     `json:"likes_count" gorm:"column:likes_count"`
	RetweetsCount  int64     `json:"retweets_count" gorm:"column:retweets_count"`
	CommentsCount  int64     `json:"comments_count" gorm:"column:comments_count"`
	Likes          int64     `json:"likes" gorm:"-"`
	Retweets       int64     `json:"retweets" gorm:"-"`
	IsRetweet      bool      `json:"is_retweet" gorm:"-"`
	OriginalPostID *uint     `json:"original_post_id" gorm:"column:original_post_id"`
	OriginalPost   *FeedPost `json:"original_post,omitempty" gorm:"-"`
	Liked          bool      `json:"liked" gorm:"-"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

// Flatten fills the derived alias fields from the raw columns.
func (f *FeedPost) Flatten() {
	f.Likes = f.LikesCount
	f.Retweets = f.RetweetsCount
	f.IsRetweet = f.OriginalPostID != nil
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,notblank,content=280"`
}

type CreateRetweetRequest struct {
	Content string `json:"content" validate:"omitempty,content=280"`
}

// LikeResult is the state after a toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// LikeInfo is the like state of one post as seen by an optional viewer.
type LikeInfo struct {
	PostID    uint  `json:"post_id"`
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}
