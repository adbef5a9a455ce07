package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedRepository repositories.FeedRepository
	paging         Paging
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository, paging Paging) *FeedHandler {
	return &FeedHandler{feedRepository: feedRepo, paging: paging}
}

// RegisterFeedRoutes registers the authenticated timeline route
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/timeline", h.GetTimeline)
}

// RegisterSearchRoutes registers post search
func (h *FeedHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// GetTimeline returns posts by the current user and everyone they follow
func (h *FeedHandler) GetTimeline(c echo.Context) error {
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	posts, err := h.feedRepository.GetTimeline(c.Request().Context(), getUserIDFromContext(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse("posts", posts, page))
}

// Search runs a full-text post search for ?q=
func (h *FeedHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	posts, err := h.feedRepository.Search(c.Request().Context(), query, getUserIDFromContext(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse("posts", posts, page))
}
