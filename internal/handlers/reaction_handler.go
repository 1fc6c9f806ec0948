package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
	"github.com/inkstream/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionService *services.ReactionService
	dispatcher      *services.NotificationDispatcher
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService, dispatcher *services.NotificationDispatcher) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		dispatcher:      dispatcher,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/reactions", h.SubmitReaction)
	g.GET("/reactions", h.ListReactions)
	g.DELETE("/reactions/:id", h.RemoveReaction)
}

// SubmitReaction submits a like or dislike for a post or comment. The same
// endpoint toggles an identical reaction off and switches a differing one.
func (h *ReactionHandler) SubmitReaction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SubmitReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.reactionService.Submit(c.Request().Context(), currentUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTarget), errors.Is(err, services.ErrMalformedReference):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Target not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	switch outcome.Kind {
	case services.OutcomeCreated:
		// Notify only on storage-level creation; switches re-use the same row.
		h.dispatcher.ReactionCreated(c.Request().Context(), outcome.Reaction)
		return c.JSON(http.StatusCreated, outcome.Reaction)
	case services.OutcomeSwitched:
		return c.JSON(http.StatusOK, echo.Map{"switched": true, "reaction": outcome.Reaction})
	default:
		return c.JSON(http.StatusOK, echo.Map{"toggled_off": true, "detail": "Reaction removed."})
	}
}

// ListReactions lists reactions, optionally filtered by post and type
func (h *ReactionHandler) ListReactions(c echo.Context) error {
	var filter repositories.ReactionFilter
	if postID := c.QueryParam("post"); postID != "" {
		filter.PostID = &postID
	}
	if t := c.QueryParam("type"); t != "" {
		reactionType := models.ReactionType(t)
		if !reactionType.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction type")
		}
		filter.Type = &reactionType
	}

	reactions, err := h.reactionService.List(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reactions)
}

// RemoveReaction deletes a reaction; only its owner or an admin may do so
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction ID")
	}

	if err := h.reactionService.Remove(c.Request().Context(), claims.UserID, claims.Role, uint(reactionID)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
		case errors.Is(err, services.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "Not allowed.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.NoContent(http.StatusNoContent)
}
