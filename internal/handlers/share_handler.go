package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ShareHandler tracks share events and serves share counts
type ShareHandler struct {
	shareRepository repositories.ShareRepository
	postRepository  repositories.PostRepository
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareRepo repositories.ShareRepository, postRepo repositories.PostRepository) *ShareHandler {
	return &ShareHandler{
		shareRepository: shareRepo,
		postRepository:  postRepo,
	}
}

// RegisterShareRoutes registers share-related routes
func (h *ShareHandler) RegisterShareRoutes(g *echo.Group) {
	g.POST("/shares", h.TrackShare)
	g.GET("/shares", h.GetShareCount)
}

// TrackShare logs that a user shared a post. No uniqueness: repeat shares of
// the same post all get logged.
func (h *ShareHandler) TrackShare(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateShareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	_, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	share := &models.Share{
		UserID:   currentUserID,
		PostID:   req.PostID,
		Platform: req.Platform,
	}

	if err := h.shareRepository.CreateShare(share); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Share tracked successfully."})
}

// GetShareCount returns the share count and per-platform breakdown for a post
func (h *ShareHandler) GetShareCount(c echo.Context) error {
	postID := c.QueryParam("post")
	if postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "post param required.")
	}

	count, err := h.shareRepository.CountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, count)
}
