package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo}
}

// RegisterLikeRoutes registers the like toggle route
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// RegisterLikeReadRoutes registers the like info route
func (h *LikeHandler) RegisterLikeReadRoutes(g *echo.Group) {
	g.GET("/posts/:id/likes", h.GetLikeInfo)
}

// ToggleLike likes :id, or unlikes it if already liked
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.likeRepository.ToggleLike(c.Request().Context(), postID, getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetLikeInfo returns the like count and the viewer's like state
func (h *LikeHandler) GetLikeInfo(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	info, err := h.likeRepository.GetLikeInfo(c.Request().Context(), postID, getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}
