package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	paging         Paging
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, paging Paging) *UserHandler {
	return &UserHandler{userRepository: userRepo, paging: paging}
}

// RegisterProfileRoutes registers the authenticated user's own profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterUserRoutes registers public user lookup routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/by-username/:username", h.GetUserByUsername)
	g.GET("/users/by-wallet/:address", h.GetUserByWallet)
	g.GET("/users/:id", h.GetUser)
}

// GetUser returns a profile with follow stats relative to the viewer
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	viewerID := getUserIDFromContext(c)
	user, err := h.userRepository.GetUserWithStats(c.Request().Context(), id, viewerID)
	if err != nil {
		return err
	}
	user.User = publicUser(user.User, viewerID)
	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername looks a user up by exact username
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicUser(*user, getUserIDFromContext(c)))
}

// GetUserByWallet looks a user up by wallet address
func (h *UserHandler) GetUserByWallet(c echo.Context) error {
	user, err := h.userRepository.GetUserByWallet(c.Request().Context(), c.Param("address"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicUser(*user, getUserIDFromContext(c)))
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	user, err := h.userRepository.GetUserWithStats(c.Request().Context(), userID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the allow-listed profile fields of the authenticated user
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers searches usernames containing q
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), query, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse("users", publicUsers(users, getUserIDFromContext(c)), page))
}

// listResponse wraps a page of items in the standard list envelope.
func listResponse[T any](key string, items []T, page models.Page) echo.Map {
	if items == nil {
		items = []T{}
	}
	return echo.Map{
		"success": true,
		"data":    echo.Map{key: items},
		"meta": echo.Map{
			"limit":  page.Limit,
			"offset": page.Offset,
			"count":  len(items),
		},
	}
}
