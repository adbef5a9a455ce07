package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	feedRepository repositories.FeedRepository
	likeRepository repositories.LikeRepository
	paging         Paging
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, feedRepo repositories.FeedRepository, likeRepo repositories.LikeRepository, paging Paging) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		feedRepository: feedRepo,
		likeRepository: likeRepo,
		paging:         paging,
	}
}

// RegisterPostRoutes registers routes that write posts
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/retweet", h.Retweet)
}

// RegisterPostReadRoutes registers routes that read posts
func (h *PostHandler) RegisterPostReadRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postRepository.CreatePost(c.Request().Context(), getUserIDFromContext(c), req.Content)
	if err != nil {
		return err
	}
	return h.respondWithDetail(c, http.StatusCreated, post.ID)
}

// Retweet re-shares :id, optionally with new content
func (h *PostHandler) Retweet(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateRetweetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	retweet, err := h.postRepository.CreateRetweet(c.Request().Context(), getUserIDFromContext(c), postID, req.Content)
	if err != nil {
		return err
	}
	return h.respondWithDetail(c, http.StatusCreated, retweet.ID)
}

// GetPost retrieves a post by ID with the viewer's like state
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	return h.respondWithDetail(c, http.StatusOK, postID)
}

// respondWithDetail renders postID as a PostDetail, with its author, the
// expanded original for retweets and the viewer's like state.
func (h *PostHandler) respondWithDetail(c echo.Context, status int, postID uint) error {
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	detail := post.ToDetail()

	ids := []uint{detail.ID}
	if detail.OriginalPost != nil {
		ids = append(ids, detail.OriginalPost.ID)
	}
	liked, err := h.likeRepository.LikedPostIDs(ctx, getUserIDFromContext(c), ids)
	if err != nil {
		return err
	}
	detail.Liked = liked[detail.ID]
	if detail.OriginalPost != nil {
		detail.OriginalPost.Liked = liked[detail.OriginalPost.ID]
	}
	return c.JSON(status, detail)
}

// GetPosts returns the global feed, or one author's posts with ?user_id=
func (h *PostHandler) GetPosts(c echo.Context) error {
	var authorID uint
	if s := c.QueryParam("user_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil || id == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		authorID = uint(id)
	}
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	posts, err := h.feedRepository.GetAllPosts(c.Request().Context(), authorID, getUserIDFromContext(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse("posts", posts, page))
}

// DeletePost deletes a post owned by the authenticated user. A post that
// does not exist and one owned by someone else both yield 404.
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.postRepository.DeletePost(c.Request().Context(), postID, getUserIDFromContext(c))
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrPostNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
