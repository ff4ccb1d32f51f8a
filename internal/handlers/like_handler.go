package handlers

import (
	"net/http"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagementService *service.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagementService *service.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.POST("/comments/:id/likes", h.LikeComment)
	g.DELETE("/comments/:id/likes", h.UnlikeComment)
}

// LikePost handles liking a post. Repeat likes are no-ops.
func (h *LikeHandler) LikePost(c echo.Context) error {
	post, err := h.engagementService.LikePost(c.Request().Context(), c.Param("post_id"), userIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UnlikePost handles unliking a post. Unliking a never-liked post is a no-op.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	post, err := h.engagementService.UnlikePost(c.Request().Context(), c.Param("post_id"), userIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// LikeComment handles liking a comment. Repeat likes are rejected.
func (h *LikeHandler) LikeComment(c echo.Context) error {
	if err := h.engagementService.LikeComment(c.Request().Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlikeComment handles unliking a comment the caller previously liked.
func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	if err := h.engagementService.UnlikeComment(c.Request().Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
