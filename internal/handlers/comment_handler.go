package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	paging            Paging
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, paging Paging) *CommentHandler {
	return &CommentHandler{commentRepository: commentRepo, paging: paging}
}

// RegisterCommentRoutes registers the comment write route
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// RegisterCommentReadRoutes registers the comment listing route
func (h *CommentHandler) RegisterCommentReadRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
}

// CreateComment adds a comment or a reply to :id
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentRepository.AddComment(c.Request().Context(), getUserIDFromContext(c), postID, req.Content, req.ParentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost returns threaded comments for :id
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.paging.Page(c)
	if err != nil {
		return err
	}

	threads, err := h.commentRepository.GetComments(c.Request().Context(), postID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse("comments", threads, page))
}
