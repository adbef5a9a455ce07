package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	paging           Paging
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, paging Paging) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		paging:           paging,
	}
}

// RegisterFollowRoutes registers routes that change follow edges
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// RegisterFollowListRoutes registers the public follower listings
func (h *FollowHandler) RegisterFollowListRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.Follow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowers lists users following :id
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.list(c, h.followRepository.GetFollowers, "followers")
}

// GetFollowing lists users :id follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.list(c, h.followRepository.GetFollowing, "following")
}

func (h *FollowHandler) list(c echo.Context, fetch func(ctx context.Context, userID uint, page models.Page) ([]models.User, error), key string) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, userID); err != nil {
		return err
	}
	users, err := fetch(ctx, userID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse(key, publicUsers(users, getUserIDFromContext(c)), page))
}
