package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/middleware"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

// Paging holds the configured page size bounds.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPaging matches the store defaults.
var DefaultPaging = Paging{DefaultLimit: models.DefaultLimit, MaxLimit: models.MaxLimit}

// Page reads limit plus offset or 1-based page from the query string.
func (p Paging) Page(c echo.Context) (models.Page, error) {
	limit := p.DefaultLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return models.Page{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = n
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}

	offset := 0
	if s := c.QueryParam("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return models.Page{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid offset")
		}
		offset = n
	} else if s := c.QueryParam("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n-1 > math.MaxInt32/limit {
			return models.Page{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid page")
		}
		offset = (n - 1) * limit
	}
	return models.Page{Limit: limit, Offset: offset}, nil
}

// getUserIDFromContext returns the authenticated user ID, 0 when anonymous.
func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserID(c)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// publicUser hides private fields unless viewer is the user.
func publicUser(u models.User, viewerID uint) models.User {
	if u.ID != viewerID {
		u.Email = nil
	}
	return u
}

func publicUsers(users []models.User, viewerID uint) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = publicUser(u, viewerID)
	}
	return out
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
